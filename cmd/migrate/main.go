// Command migrate applies the embedded schema migrations to the configured
// database.
package main

import (
	"context"
	"log/slog"
	"os"

	"roomledger/internal/handler/middleware"
	"roomledger/internal/infra/db"
	"roomledger/internal/pkg/config"
)

func main() {
	cfg, err := config.LoadMigrateConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	if err := db.Migrate(context.Background(), cfg.DB, logger); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
	logger.Info("database is up to date")
}
