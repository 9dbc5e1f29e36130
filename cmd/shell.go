package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mallamanno/drivesh/internal/drive"
	"github.com/mallamanno/drivesh/internal/instrumentation"
	"github.com/mallamanno/drivesh/internal/logging"
	"github.com/mallamanno/drivesh/internal/shell"
)

func newShellCmd() *cobra.Command {
	var account string
	var verbose bool
	var debugMetrics bool

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive Google Drive shell",
		Long: `Open an interactive shell against your Google Drive. Commands map onto
familiar names (ls, cd, pull, push, rm, mv, search, recover, info, share)
and remote paths work like filesystem paths, with a current working
directory tracked per session.

Run 'drivesh auth' first to authorize access to your account.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := logging.WithAccount(
				slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
				account)

			if !drive.HasTokenForAccount(account) {
				return fmt.Errorf("no Google OAuth token found for account %q, run 'drivesh auth --account %s' first", account, account)
			}

			client, err := drive.NewClientForAccount(ctx, account)
			if err != nil {
				return fmt.Errorf("failed to create Drive client for account %s: %w", account, err)
			}

			root, err := client.Root(ctx)
			if err != nil {
				return fmt.Errorf("failed to look up the Drive root folder: %w", err)
			}

			instrConfig := instrumentation.DefaultConfig()
			instrConfig.ServiceVersion = version
			instrConfig.Enabled = debugMetrics
			provider, err := instrumentation.NewProvider(ctx, instrConfig)
			if err != nil {
				return fmt.Errorf("failed to initialize instrumentation: %w", err)
			}
			defer func() {
				if err := provider.Shutdown(ctx); err != nil {
					logger.Warn("failed to shut down instrumentation", logging.Err(err))
				}
			}()

			sh, err := shell.New(shell.Config{
				Drive:   client,
				RootID:  root.ID,
				Logger:  logger,
				Metrics: provider.Metrics(),
			})
			if err != nil {
				return fmt.Errorf("failed to create shell: %w", err)
			}

			return sh.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use (default: 'default')")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Enable debug logging to stderr")
	cmd.Flags().BoolVar(&debugMetrics, "debug-metrics", false, "Collect per-command metrics and dump them on exit")
	return cmd
}
