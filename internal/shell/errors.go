package shell

import "fmt"

// UsageError is returned when a command is invoked with bad or missing
// arguments. The shell prints the usage string and continues.
type UsageError struct {
	Command string
	Usage   string
	Reason  string
}

func (e *UsageError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("usage: %s", e.Usage)
	}
	return fmt.Sprintf("%s\nusage: %s", e.Reason, e.Usage)
}

// UnknownCommandError is returned when the first token of an input line
// does not name a command.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("command %q is not recognized as a valid command", e.Name)
}

// LocalIOError wraps a local filesystem failure during pull or push.
type LocalIOError struct {
	Path string
	Err  error
}

func (e *LocalIOError) Error() string {
	return fmt.Sprintf("local path %q: %v", e.Path, e.Err)
}

func (e *LocalIOError) Unwrap() error {
	return e.Err
}
