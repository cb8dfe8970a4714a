package main

import (
	"fmt"

	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the embedded goose migrations",
}

func init() {
	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			RunE: withMigrator(func(cmd *cobra.Command, m *database.Migrator) error {
				return m.Up(cmd.Context())
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			RunE: withMigrator(func(cmd *cobra.Command, m *database.Migrator) error {
				return m.Down(cmd.Context())
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			RunE: withMigrator(func(cmd *cobra.Command, m *database.Migrator) error {
				lines, err := m.Status(cmd.Context())
				if err != nil {
					return err
				}
				for _, line := range lines {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			}),
		},
	)
}

func withMigrator(fn func(cmd *cobra.Command, m *database.Migrator) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		migrator, err := database.NewMigrator(cfg.DatabaseURL())
		if err != nil {
			return err
		}
		defer migrator.Close()
		return fn(cmd, migrator)
	}
}
