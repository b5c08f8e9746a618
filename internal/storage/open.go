package storage

import (
	"context"

	"souq-be/internal/config"
	"souq-be/internal/db"
	"souq-be/internal/logger"

	"go.uber.org/zap"
)

// Open builds the backend selected by cfg.StorageDriver, wrapped in a Quota
// when a limit is configured.
func Open(ctx context.Context, cfg *config.Config) (Backend, error) {
	var backend Backend

	switch cfg.StorageDriver {
	case config.DriverMemory, "":
		backend = NewMemory()
	default:
		database, dialect, err := db.NewDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		s, err := NewSQL(ctx, database, dialect)
		if err != nil {
			_ = database.Close()
			return nil, err
		}
		backend = s
	}

	if cfg.StorageQuotaBytes > 0 {
		backend = NewQuota(backend, cfg.StorageQuotaBytes)
	}

	logger.FromCtx(ctx).Info("storage backend ready",
		zap.String("driver", cfg.StorageDriver),
		zap.Int64("quota_bytes", cfg.StorageQuotaBytes),
	)
	return backend, nil
}
