package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLockStore is a LockStore backed by Redis SETNX, safe across
// multiple worker processes.
type RedisLockStore struct {
	client *redis.Client
}

func NewRedisLockStore(url string) (*RedisLockStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisLockStore{client: redis.NewClient(opts)}, nil
}

func (s *RedisLockStore) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, key, "1", ttl).Result()
}

func (s *RedisLockStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *RedisLockStore) Close() error {
	return s.client.Close()
}
