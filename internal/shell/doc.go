// Package shell implements the interactive Google Drive shell.
//
// The shell reads one line at a time, tokenizes it with quote awareness,
// and dispatches to a closed set of commands: ls, cd, search, pull, push,
// rm, mv, recover, info, share, clear and exit. Remote paths are virtual
// slash-delimited paths resolved against the session's working directory
// by the resolver package; local paths for pull and push are relative to
// the user's home directory unless absolute.
//
// Execution is strictly single-threaded and synchronous: a command runs
// to completion, blocking network calls included, before the next prompt
// is shown. The only state carried between commands is the Session
// (working directory ID and display path). No command failure terminates
// the shell; errors are printed and the loop continues.
package shell
