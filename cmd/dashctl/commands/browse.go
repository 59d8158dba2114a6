package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Raymond9734/invoices-dashboard/internal/client"
	"github.com/Raymond9734/invoices-dashboard/internal/tui"
)

func browseCmd() *cobra.Command {
	var (
		apiURL   string
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Search the invoices listing from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return errors.New("--email and --password are required")
			}
			if apiURL == "" {
				apiURL = cfg.API.BaseURL
			}

			c, err := client.New(apiURL)
			if err != nil {
				return err
			}

			state, err := c.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if state != nil {
				return fmt.Errorf("login rejected: %s", state.Message)
			}

			return tui.Run(cmd.Context(), c, cfg.Search.Debounce)
		},
	}

	cmd.Flags().StringVar(&apiURL, "api", "", "API base URL (default API_BASE_URL)")
	cmd.Flags().StringVarP(&email, "email", "e", "", "login email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "login password")
	return cmd
}
