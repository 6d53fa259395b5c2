package database

import (
	"context"
	"fmt"

	"foodtruth/internal/config"
	"foodtruth/internal/repository"

	"github.com/rs/zerolog"
)

// OpenStore opens the backend selected by cfg and wraps it as a repository.Store.
func OpenStore(ctx context.Context, cfg config.StoreConfig, logger zerolog.Logger) (repository.Store, error) {
	logger = logger.With().Str("component", "store").Str("backend", cfg.Backend).Logger()

	switch cfg.Backend {
	case config.BackendMemory:
		return repository.NewMemoryStore(), nil

	case config.BackendBadger:
		db, err := OpenBadger(cfg.Badger, logger)
		if err != nil {
			return nil, err
		}
		return repository.NewBadgerStore(db, logger), nil

	case config.BackendSQLite:
		db, err := OpenSQLite(ctx, cfg.SQLite.Path, logger)
		if err != nil {
			return nil, err
		}
		return repository.NewSQLiteStore(db, logger), nil

	case config.BackendPostgres:
		pool, err := NewPool(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		return repository.NewPostgresStore(pool, logger), nil

	case config.BackendRedis:
		client, err := NewRedisClient(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
		return repository.NewRedisStore(client, cfg.Redis.Namespace, logger), nil
	}

	return nil, fmt.Errorf("unsupported store backend: %s", cfg.Backend)
}
