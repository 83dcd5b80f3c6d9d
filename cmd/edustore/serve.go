package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/BheruLalM/edustore-api/internal/app"
	"github.com/BheruLalM/edustore-api/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("failed load config: %w", err)
	}
	logger := app.NewLogger(cfg.AppEnv, cfg.LogLevel)

	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("build failed")
		return err
	}
	return a.Run(ctx)
}
