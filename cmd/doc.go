// Package cmd implements the command-line interface for drivesh.
//
// This package provides the following commands:
//   - shell: Start the interactive Google Drive shell
//   - auth: Authorize drivesh to access a Google account
//   - version: Display version information
//
// The shell command is the default command when no subcommand is specified.
package cmd
