package application

import (
	"context"
	"fmt"
	"log/slog"

	"nycschools/internal/config"
	"nycschools/internal/domain/service/favorite"
	"nycschools/internal/infrastructure/persistence"
	"nycschools/pkg/application/connectors"
	"nycschools/pkg/logx"
)

// newFavoriteStorage opens the configured favorites backend. The returned
// func releases its connections.
func newFavoriteStorage(ctx context.Context, cfg config.Config) (favorite.Storage, func(), error) {
	logger(ctx).Info("favorites backend selected", slog.String(logx.FieldBackend, cfg.Favorites.Backend))

	switch cfg.Favorites.Backend {
	case config.BackendMemory:
		return persistence.NewMemoryStore(), func() {}, nil
	case config.BackendRedis:
		rc := &connectors.Redis{
			Username:       cfg.Redis.Username,
			Password:       cfg.Redis.Password,
			Address:        cfg.Redis.Address,
			DatabaseNumber: cfg.Redis.DB,
			PoolSize:       cfg.Redis.PoolSize,
		}

		client, err := rc.Client(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("connectors.Redis.Client: %w", err)
		}

		return persistence.NewRedisStore(client, cfg.App.Name+":"), func() { rc.Close(ctx) }, nil
	case config.BackendPostgres:
		pg := &connectors.Postgres{
			DSN:             cfg.Postgres.DSN,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		}

		db, err := pg.Client(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("connectors.Postgres.Client: %w", err)
		}

		store := persistence.NewPostgresStore(db)

		if err := store.EnsureSchema(ctx); err != nil {
			pg.Close(ctx)
			return nil, nil, fmt.Errorf("store.EnsureSchema: %w", err)
		}

		return store, func() { pg.Close(ctx) }, nil
	default:
		return persistence.NewFileStore(cfg.Favorites.File), func() {}, nil
	}
}
