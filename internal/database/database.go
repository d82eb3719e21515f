package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/minesweeper-engine/internal/config"
)

func Connect(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := config.NewPgxpoolConfig()
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	return pool, nil
}

// Migrate applies every pending migration found under "migrations" in the
// given filesystem. The caller closes the returned migrator.
func Migrate(migrations fs.FS) (*migrate.Migrate, error) {
	url, err := config.DbURL()
	if err != nil {
		return nil, err
	}
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("unable to create migrations iofs: %w", err)
	}
	migrator, err := migrate.NewWithSourceInstance("iofs", source, url)
	if err != nil {
		return nil, fmt.Errorf("unable to create migrator: %w", err)
	}
	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		migrator.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return migrator, nil
}

// ConnectAndMigrate brings the schema up to date, releases the migrator's
// own connection and opens the pool the application queries through.
func ConnectAndMigrate(ctx context.Context, migrations fs.FS) (*pgxpool.Pool, error) {
	migrator, err := Migrate(migrations)
	if err != nil {
		return nil, err
	}
	srcErr, dbErr := migrator.Close()
	if err := errors.Join(srcErr, dbErr); err != nil {
		return nil, fmt.Errorf("unable to close migrator: %w", err)
	}
	return Connect(ctx)
}
