package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Raymond9734/invoices-dashboard/internal/auth"
	"github.com/Raymond9734/invoices-dashboard/internal/db"
)

func seedCmd() *cobra.Command {
	var migrateFirst bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load placeholder users, customers, invoices and revenue",
		RunE: func(cmd *cobra.Command, args []string) error {
			if migrateFirst {
				if err := db.Migrate(cfg.Database.URL(), logger); err != nil {
					return err
				}
			}

			database, err := db.New(db.Config{
				Host:     cfg.Database.Host,
				Port:     cfg.Database.Port,
				User:     cfg.Database.User,
				Password: cfg.Database.Password,
				DBName:   cfg.Database.DBName,
				SSLMode:  cfg.Database.SSLMode,
			})
			if err != nil {
				return err
			}
			defer database.Close()

			if err := db.Seed(cmd.Context(), database.DB, db.PlaceholderData(), auth.HashPassword, logger); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Database seeded successfully.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrateFirst, "migrate", true, "apply migrations before seeding")
	return cmd
}
