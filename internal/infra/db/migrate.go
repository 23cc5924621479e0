package db

import (
	"context"
	"database/sql"
	"log/slog"

	"roomledger/internal/pkg/config"
	"roomledger/internal/pkg/errs"
	"roomledger/migrations"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver for goose
	"github.com/pressly/goose/v3"
)

// Migrate applies every pending embedded migration over a dedicated
// database/sql connection; goose does not run on pgxpool.
func Migrate(ctx context.Context, cfg config.DBConfig, logger *slog.Logger) error {
	sqlDB, err := sql.Open("pgx", cfg.BuildDSN())
	if err != nil {
		return errs.Wrap(err, "failed to open migration connection")
	}
	defer sqlDB.Close()

	return MigrateDB(ctx, sqlDB, logger)
}

func MigrateDB(ctx context.Context, sqlDB *sql.DB, logger *slog.Logger) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations.FS)
	if err != nil {
		return errs.Wrap(err, "failed to create migration provider")
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return errs.Wrap(err, "failed to apply migrations")
	}
	for _, r := range results {
		logger.Info("migration applied", "version", r.Source.Version, "path", r.Source.Path, "duration", r.Duration)
	}
	return nil
}
