package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/mallamanno/drivesh/internal/drive"
	"github.com/mallamanno/drivesh/internal/instrumentation"
	"github.com/mallamanno/drivesh/internal/resolver"
)

// Config carries the collaborators of a Shell.
type Config struct {
	// Drive is the Drive service adapter. Required.
	Drive Service

	// RootID is the file ID of the Drive root folder. Required.
	RootID string

	// Logger receives structured command logs. Defaults to a discard logger.
	Logger *slog.Logger

	// Metrics records per-command metrics. Defaults to a no-op recorder.
	Metrics *instrumentation.CommandMetrics

	// Stdout is where command output is printed. Defaults to os.Stdout.
	Stdout io.Writer

	// HomeDir anchors relative local paths for pull and push. Defaults to
	// the current user's home directory.
	HomeDir string
}

// Shell is the interactive Google Drive shell: a readline loop feeding a
// single-threaded command dispatcher. One command runs at a time; the only
// mutable state between commands is the Session.
type Shell struct {
	drive    Service
	resolver *resolver.Resolver
	session  *Session
	logger   *slog.Logger
	metrics  *instrumentation.CommandMetrics
	stdout   io.Writer
	homeDir  string
	username string
}

// New creates a Shell from the given configuration.
func New(cfg Config) (*Shell, error) {
	if cfg.Drive == nil {
		return nil, fmt.Errorf("drive service is required")
	}
	if cfg.RootID == "" {
		return nil, fmt.Errorf("root folder ID is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = &instrumentation.CommandMetrics{}
	}
	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	homeDir := cfg.HomeDir
	if homeDir == "" {
		var err error
		homeDir, err = os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine home directory: %w", err)
		}
	}

	username := "drive"
	if u, err := user.Current(); err == nil && u.Username != "" {
		username = u.Username
	}

	return &Shell{
		drive:    cfg.Drive,
		resolver: resolver.New(cfg.Drive, cfg.RootID),
		session:  NewSession(cfg.RootID),
		logger:   logger,
		metrics:  metrics,
		stdout:   stdout,
		homeDir:  homeDir,
		username: username,
	}, nil
}

// Session exposes the working-directory state, mainly for tests.
func (s *Shell) Session() *Session {
	return s.session
}

// Run reads lines and dispatches them until exit or EOF. The error return
// covers startup failures only; command failures are printed and the loop
// continues.
func (s *Shell) Run(ctx context.Context) error {
	historyFile := ""
	if cacheDir, err := os.UserCacheDir(); err == nil {
		historyFile = filepath.Join(cacheDir, "drivesh", "history")
		_ = os.MkdirAll(filepath.Dir(historyFile), 0700)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt(),
		HistoryFile:     historyFile,
		AutoComplete:    newCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize line editor: %w", err)
	}
	defer rl.Close()

	s.clearScreen()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil { // io.EOF on Ctrl-D
			return nil
		}

		outcome, err := s.Dispatch(ctx, line)
		if err != nil {
			s.printError(err)
		}
		if outcome == Exit {
			return nil
		}

		// The working directory may have changed
		rl.SetPrompt(s.prompt())
	}
}

// prompt renders "user@google-drive:~/path$ " with the original color
// scheme: green identity, blue path.
func (s *Shell) prompt() string {
	identity := color.New(color.FgGreen).Sprintf("%s@google-drive", s.username)
	path := color.New(color.FgBlue).Sprint("~" + s.session.Current())
	return identity + ":" + path + "$ "
}

func newCompleter() readline.AutoCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(commandNames))
	for _, name := range commandNames {
		items = append(items, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(items...)
}

// printError renders a command failure in red and keeps the shell alive.
// Remote service failures print the message the API returned.
func (s *Shell) printError(err error) {
	red := color.New(color.FgRed)

	var driveErr *drive.Error
	if errors.As(err, &driveErr) {
		red.Fprintf(s.stdout, "drive error: %s\n", driveErr.Message())
		return
	}

	red.Fprintln(s.stdout, err.Error())
}
