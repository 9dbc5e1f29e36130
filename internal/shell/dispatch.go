package shell

import (
	"context"
	"errors"
	"io"
	"time"

	shellwords "github.com/mattn/go-shellwords"
	"github.com/spf13/pflag"

	"github.com/mallamanno/drivesh/internal/instrumentation"
	"github.com/mallamanno/drivesh/internal/logging"
)

// Outcome tells the caller whether the loop should keep going.
type Outcome int

const (
	Continue Outcome = iota
	Exit
)

// commandNames is the closed set of shell commands, in help display order.
var commandNames = []string{
	"ls", "cd", "search", "pull", "push", "rm", "mv",
	"recover", "info", "share", "clear", "exit",
}

// Usage strings, printed on UsageError and with --help.
const (
	usageLs      = "ls [-l|--verbose] [-a|--all] [-s|--starred] [--dir PATH | PATH]"
	usageCd      = "cd PATH"
	usageSearch  = "search [-f|--fuzzy] TERM"
	usagePull    = "pull [-f|--folder] [-r|--recursive] REMOTE LOCAL"
	usagePush    = "push [-f|--folder] [-r|--recursive] LOCAL REMOTE"
	usageRm      = "rm [-d|--delete] REMOTE"
	usageMv      = "mv START END"
	usageRecover = "recover REMOTE"
	usageInfo    = "info REMOTE"
	usageShare   = "share [-r|--reader|-w|--writer|-o|--owner] [-l|--link] [--delete] REMOTE [EMAIL...]"
	usageClear   = "clear"
	usageExit    = "exit"
)

// Dispatch parses one input line and executes the command it names.
// Tokenization respects quoting, so file names may contain spaces. All
// command failures are returned for the caller to print; none of them
// terminate the shell.
func (s *Shell) Dispatch(ctx context.Context, line string) (Outcome, error) {
	words, err := shellwords.Parse(line)
	if err != nil {
		return Continue, &UsageError{Reason: "cannot parse input: " + err.Error(), Usage: "see individual command usage"}
	}
	if len(words) == 0 {
		return Continue, nil
	}

	name, args := words[0], words[1:]

	start := time.Now()
	outcome, err := s.run(ctx, name, args)
	elapsed := time.Since(start)

	status := logging.StatusSuccess
	result := instrumentation.ResultSuccess
	if err != nil {
		status = logging.StatusError
		result = instrumentation.ResultError
	}
	s.logger.Debug("command dispatched",
		logging.Command(name),
		logging.Status(status),
		logging.Duration(elapsed),
		logging.Err(err))
	s.metrics.RecordCommand(ctx, name, result, elapsed)

	return outcome, err
}

// run maps the command name onto its handler. The command set is closed;
// anything else is an UnknownCommandError.
func (s *Shell) run(ctx context.Context, name string, args []string) (Outcome, error) {
	switch name {
	case "ls":
		return Continue, s.cmdLs(ctx, args)
	case "cd":
		return Continue, s.cmdCd(ctx, args)
	case "search":
		return Continue, s.cmdSearch(ctx, args)
	case "pull":
		return Continue, s.cmdPull(ctx, args)
	case "push":
		return Continue, s.cmdPush(ctx, args)
	case "rm":
		return Continue, s.cmdRm(ctx, args)
	case "mv":
		return Continue, s.cmdMv(ctx, args)
	case "recover":
		return Continue, s.cmdRecover(ctx, args)
	case "info":
		return Continue, s.cmdInfo(ctx, args)
	case "share":
		return Continue, s.cmdShare(ctx, args)
	case "clear":
		s.clearScreen()
		return Continue, nil
	case "exit":
		s.clearScreen()
		return Exit, nil
	default:
		return Continue, &UnknownCommandError{Name: name}
	}
}

// newFlagSet builds a pflag set for one command.
func newFlagSet(command string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(command, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// parseFlags parses command arguments. Parse errors become UsageErrors;
// --help is treated as a UsageError without a reason, which prints just
// the usage string.
func parseFlags(fs *pflag.FlagSet, command, usage string, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return &UsageError{Command: command, Usage: usage}
		}
		return &UsageError{Command: command, Usage: usage, Reason: err.Error()}
	}
	return nil
}

// requireArgs checks the positional argument count after flag parsing.
func requireArgs(fs *pflag.FlagSet, command, usage string, min, max int) error {
	n := fs.NArg()
	if n < min || (max >= 0 && n > max) {
		return &UsageError{Command: command, Usage: usage, Reason: "wrong number of arguments"}
	}
	return nil
}
