// Package commands implements the dashctl subcommands.
package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Raymond9734/invoices-dashboard/internal/config"
)

var (
	cfg    *config.Config
	logger *slog.Logger

	verbose bool
)

func Execute() error {
	root := &cobra.Command{
		Use:          "dashctl",
		Short:        "Operate the invoices dashboard",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)

			var err error
			cfg, err = config.Load()
			return err
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(migrateCmd(), seedCmd(), browseCmd())
	return root.Execute()
}
