package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mallamanno/drivesh/internal/google"
)

func newAuthCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize drivesh to access a Google account",
		Long: `Print the Google OAuth authorization URL, then exchange the code pasted
by the user for a token. The token is cached locally and reused by the
shell command until it is revoked or expires.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if google.HasTokenForAccount(account) {
				fmt.Printf("A token for account %q already exists. Continuing will replace it.\n", account)
			}

			fmt.Println("Open the following URL in your browser and approve access:")
			fmt.Println()
			fmt.Printf("  %s\n", google.GetAuthURLForAccount(account))
			fmt.Println()
			fmt.Print("Paste the authorization code here: ")

			reader := bufio.NewReader(os.Stdin)
			code, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read authorization code: %w", err)
			}
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("no authorization code given")
			}

			ctx := context.Background()
			if err := google.SaveTokenForAccount(ctx, account, code); err != nil {
				return fmt.Errorf("failed to save token for account %s: %w", account, err)
			}

			fmt.Printf("Token saved for account %q.\n", account)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use (default: 'default')")
	return cmd
}
