package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BheruLalM/edustore-api/internal/app"
	"github.com/BheruLalM/edustore-api/internal/config"
	"github.com/BheruLalM/edustore-api/internal/infra/database/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
	Long: `Migrations are embedded into the binary.

Subcommands:
  up    - apply all pending migrations
  down  - roll back all migrations`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(postgres.MigrateUp)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back all migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(postgres.MigrateDown)
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
}

func runMigrate(dir postgres.MigrateDirection) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("failed load config: %w", err)
	}
	logger := app.NewLogger(cfg.AppEnv, cfg.LogLevel).With().Str("component", "migrate").Logger()
	if err := postgres.Migrate(cfg.GetDSN(), dir, logger); err != nil {
		return fmt.Errorf("migrate %s: %w", dir, err)
	}
	logger.Info().Str("direction", string(dir)).Msg("migrations applied")
	return nil
}
