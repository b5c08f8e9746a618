package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"souq-be/internal/config"
	"souq-be/internal/logger"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

// NewDatabase opens and pings the SQL database selected by the storage
// driver. It returns the database handle and the dialect name.
func NewDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, string, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		db, err := newDatabaseWithDriver(ctx, "postgres", cfg.PostgresDSN())
		return db, config.DriverPostgres, err
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
				return nil, "", fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		db, err := newDatabaseWithDriver(ctx, "sqlite", cfg.SQLitePath)
		if err == nil {
			// sqlite allows a single writer; serialise through one connection.
			db.SetMaxOpenConns(1)
		}
		return db, config.DriverSQLite, err
	default:
		return nil, "", fmt.Errorf("driver %q has no SQL database", cfg.StorageDriver)
	}
}

func newDatabaseWithDriver(ctx context.Context, driverName, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err = db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	logger.FromCtx(ctx).Info("Database connection established", zap.String("driver", driverName))
	return db, nil
}
