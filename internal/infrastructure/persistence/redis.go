package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"nycschools/internal/domain"
	"nycschools/pkg/errcodes"
)

// RedisStore keeps each slot as a JSON array under a plain string key.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

// Get maps redis.Nil to ok=false.
func (s *RedisStore) Get(ctx context.Context, key string) ([]string, bool, error) {
	b, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, domain.WrapError(err, errcodes.StorageError, "persistence.RedisStore.Get")
	}

	var ids []string

	if err := json.Unmarshal(b, &ids); err != nil {
		return nil, false, domain.WrapError(
			fmt.Errorf("json.Unmarshal: %w", err), errcodes.StorageError, "persistence.RedisStore.Get")
	}

	return ids, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}

	b, err := json.Marshal(ids)
	if err != nil {
		return domain.WrapError(fmt.Errorf("json.Marshal: %w", err), errcodes.StorageError, "persistence.RedisStore.Set")
	}

	if err := s.client.Set(ctx, s.prefix+key, b, 0).Err(); err != nil {
		return domain.WrapError(err, errcodes.StorageError, "persistence.RedisStore.Set")
	}

	return nil
}
