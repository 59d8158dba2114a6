package commands

import (
	"github.com/spf13/cobra"

	"github.com/Raymond9734/invoices-dashboard/internal/db"
)

func migrateCmd() *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations (or roll back one with --down)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if down {
				return db.Rollback(cfg.Database.URL(), logger)
			}
			return db.Migrate(cfg.Database.URL(), logger)
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "roll back the latest migration")
	return cmd
}
