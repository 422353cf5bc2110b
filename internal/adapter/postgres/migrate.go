package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/heartmarshall/konjug-backend/migrations"
)

// Migrate applies all pending goose migrations from the embedded migration set.
// goose needs a *sql.DB, so the pool is wrapped with the pgx stdlib adapter.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	return MigrateFS(ctx, pool, migrations.FS, logger)
}

// MigrateFS is Migrate with an explicit migration filesystem.
func MigrateFS(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS, logger *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	for _, r := range results {
		logger.Info("migration applied",
			slog.Int64("version", r.Source.Version),
			slog.Duration("duration", r.Duration),
		)
	}
	return nil
}

// MigrationStatus reports the current and latest available schema versions.
func MigrationStatus(ctx context.Context, pool *pgxpool.Pool) (current, latest int64, err error) {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return 0, 0, fmt.Errorf("goose new provider: %w", err)
	}

	current, latest, err = provider.GetVersions(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("goose versions: %w", err)
	}
	return current, latest, nil
}

// Schema reports migration state of a live database.
type Schema struct {
	pool *pgxpool.Pool
}

// NewSchema creates a Schema for pool.
func NewSchema(pool *pgxpool.Pool) *Schema {
	return &Schema{pool: pool}
}

// Version returns the applied and the latest embedded schema versions.
func (s *Schema) Version(ctx context.Context) (current, latest int64, err error) {
	return MigrationStatus(ctx, s.pool)
}
