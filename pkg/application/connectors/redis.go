package connectors

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	"nycschools/pkg/logx"
)

// Redis лениво создаёт клиента и проверяет соединение через PING.
type Redis struct {
	value          *redis.Client
	err            error
	Username       string
	Password       string
	Address        string
	DatabaseNumber int
	PoolSize       int
	init           sync.Once
}

// Client возвращает клиента, подключаясь при первом вызове.
func (r *Redis) Client(ctx context.Context) (*redis.Client, error) {
	r.init.Do(func() {
		client := redis.NewClient(&redis.Options{
			//nolint:exhaustruct
			Network:  "tcp",
			Addr:     r.Address,
			Username: r.Username,
			Password: r.Password,
			DB:       r.DatabaseNumber,
			PoolSize: r.PoolSize,
		})

		if err := client.Ping(ctx).Err(); err != nil {
			r.err = fmt.Errorf("redisClient.Ping: %w", err)
			_ = client.Close()

			return
		}

		r.value = client

		logger(ctx).Info(
			"redis connected",
			slog.String("address", r.Address),
			slog.Int("database", r.DatabaseNumber),
		)
	})

	return r.value, r.err
}

// Close закрывает клиента. Без подключения ничего не делает.
func (r *Redis) Close(ctx context.Context) {
	if r.value == nil {
		return
	}

	if err := r.value.Close(); err != nil {
		logger(ctx).Error("redisClient.Close", logx.Error(err))
	}

	logger(ctx).Info(
		"redis disconnected",
		slog.String("address", r.Address),
		slog.Int("database", r.DatabaseNumber),
	)
}
