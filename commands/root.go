// Package commands is the guate-servicios command line: the HTTP server
// plus the database maintenance tasks.
package commands

import (
	"context"
	"log/slog"
	"os"

	"guate-servicios/app"
	"guate-servicios/config"
	"guate-servicios/services"
	"guate-servicios/utils"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// Maintenance is what the seed, clean, check and backfill commands drive.
type Maintenance interface {
	Seed(ctx context.Context) (*services.SeedResult, error)
	Clean(ctx context.Context) error
	Check(ctx context.Context, sample int) (*services.CheckReport, error)
	Backfill(ctx context.Context) (*services.BackfillResult, error)
}

// Migrations is what the migrate commands drive.
type Migrations interface {
	Up() error
	Down() error
	Version() (uint, bool, error)
	Close() error
}

type runtime struct {
	openMaintenance func(ctx context.Context) (Maintenance, func(), error)
	openMigrations  func() (Migrations, error)
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(runtime{
		openMaintenance: openMaintenance,
		openMigrations:  openMigrations,
	})
}

func newRootCmd(rt runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "guate-servicios",
		Short:        "Guate Servicios - technician directory API",
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCmd(rt))
	cmd.AddCommand(newMigrateCmd(rt))
	cmd.AddCommand(newSeedCmd(rt))
	cmd.AddCommand(newCleanCmd(rt))
	cmd.AddCommand(newCheckCmd(rt))
	cmd.AddCommand(newBackfillCmd(rt))

	return cmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, oops.Code("CONFIG_INVALID").Wrap(err)
	}
	config.SetupLogger(cfg)
	return cfg, nil
}

func openMaintenance(ctx context.Context) (Maintenance, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	pool, err := config.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, oops.Code("DB_CONNECT_FAILED").Wrap(err)
	}

	repos := app.NewRepositories(pool)
	svc := services.NewMaintenanceService(
		repos.Users,
		repos.Categories,
		repos.Technicians,
		repos.Services,
		repos.Reviews,
		repos.Maintenance,
		utils.NewPasswordHasher(),
		slog.Default(),
	)
	return svc, func() { config.CloseDB(pool) }, nil
}
