package commands

import (
	"guate-servicios/database"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

var _ Migrations = (*database.Migrator)(nil)

func openMigrations() (Migrations, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	m, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func newMigrateCmd(rt runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrations(rt, func(m Migrations) error {
				if err := m.Up(); err != nil {
					return err
				}
				cmd.Println("Migrations applied")
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back every migration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrations(rt, func(m Migrations) error {
				if err := m.Down(); err != nil {
					return err
				}
				cmd.Println("Migrations rolled back")
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrations(rt, func(m Migrations) error {
				v, dirty, err := m.Version()
				if err != nil {
					return err
				}
				if v == 0 {
					cmd.Println("No migrations applied")
					return nil
				}
				cmd.Printf("Schema version %d (dirty: %t)\n", v, dirty)
				return nil
			})
		},
	})

	return cmd
}

func withMigrations(rt runtime, fn func(Migrations) error) error {
	m, err := rt.openMigrations()
	if err != nil {
		return oops.Code("MIGRATION_INIT_FAILED").Wrap(err)
	}
	defer func() { _ = m.Close() }()
	return fn(m)
}
