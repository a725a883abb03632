package tokenstore

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/concert-frontend/internal/config"
	"github.com/spec-kit/concert-frontend/internal/persistence"
	"github.com/spec-kit/concert-frontend/internal/repository"
)

// Open builds the store selected by cfg.Token.Store. The returned func
// releases backend connections.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Store, func(), error) {
	var (
		backend Backend
		closer  = func() {}
	)

	switch cfg.Token.Store {
	case config.StoreMemory:
		backend = NewMemoryBackend()
	case config.StoreFile:
		backend = NewFileBackend(cfg.Token.FilePath)
	case config.StoreRedis:
		rdb := persistence.NewRedis(ctx, cfg.Redis, logger)
		backend = NewRedisBackend(rdb.Client, cfg.Token.RedisKeyPrefix)
		closer = rdb.Close
	case config.StorePostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
				pg.Close()
				return nil, nil, fmt.Errorf("run migrations: %w", err)
			}
		}
		backend = NewPostgresBackend(repository.NewStateRepository(pg.PoolHandle()))
		closer = pg.Close
	default:
		return nil, nil, fmt.Errorf("unknown token store %q", cfg.Token.Store)
	}

	store, err := New(ctx, backend, Options{
		Origin: cfg.API.FrontendURL,
		MaxAge: cfg.Token.CookieMaxAge(),
		Logger: logger.Named("tokenstore"),
	})
	if err != nil {
		closer()
		return nil, nil, err
	}
	logger.Debug("token store ready", zap.String("backend", cfg.Token.Store))
	return store, closer, nil
}
