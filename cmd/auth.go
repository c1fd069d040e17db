package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ourassistants/checkinsync/internal/google"
)

func newAuthCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "auth [authorization-code]",
		Short: "Authorize access to Google Calendar and Drive",
		Long: `Run the OAuth flow for the Google-backed sources. Without an argument,
prints the authorization URL and reads the code interactively; with an
argument, exchanges that code directly. Tokens are cached per account
under ~/.cache/checkinsync.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if err := google.MigrateDefaultToken(); err != nil {
				return err
			}

			var authCode string
			if len(args) == 1 {
				authCode = strings.TrimSpace(args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Visit this URL to authorize access:\n\n  %s\n\nEnter the authorization code: ", google.GetAuthURL())
				reader := bufio.NewReader(cmd.InOrStdin())
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("failed to read authorization code: %w", err)
				}
				authCode = strings.TrimSpace(line)
			}
			if authCode == "" {
				return fmt.Errorf("no authorization code provided")
			}

			if err := google.SaveTokenForAccount(ctx, account, authCode); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Token saved for account %q\n", account)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to store the token under")
	return cmd
}
