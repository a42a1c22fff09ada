package backend

import (
	"context"
	"fmt"
	"log/slog"

	"expensetracker/internal/backend/memory"
	s3store "expensetracker/internal/backend/s3"
	"expensetracker/internal/backend/sqlite"
)

// Factory creates object stores from configuration.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// Create builds the backend selected by cfg.Type.
func (f *Factory) Create(ctx context.Context, cfg Config) (*Result, error) {
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}

	switch cfg.Type {
	case S3Backend:
		store, err := s3store.New(ctx, cfg.Region, cfg.Bucket, cfg.ObjectKey)
		if err != nil {
			return nil, fmt.Errorf("initialize s3 backend: %w", err)
		}
		f.logger.Info("Initialized S3 backend",
			"bucket", cfg.Bucket, "key", cfg.ObjectKey, "region", cfg.Region)
		return &Result{Store: store}, nil

	case SQLiteBackend:
		store, err := sqlite.New(cfg.SQLiteDBPath, cfg.StoreID)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		f.logger.Info("Initialized SQLite backend",
			"db_path", cfg.SQLiteDBPath, "store_id", cfg.StoreID)
		return &Result{Store: store, Cleanup: store.Close}, nil

	case MemoryBackend:
		f.logger.Info("Initialized memory backend")
		return &Result{Store: memory.New()}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}
