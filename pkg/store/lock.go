package store

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// LockStore provides best-effort mutual exclusion for per-document
// operations. Acquire returns false when another holder owns the key.
type LockStore interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// LocalLockStore is a single-process LockStore backed by go-cache.
// Used in tests and as a fallback when Redis is not configured.
type LocalLockStore struct {
	cache *cache.Cache
}

func NewLocalLockStore() *LocalLockStore {
	// purge expired locks every minute
	return &LocalLockStore{
		cache: cache.New(cache.NoExpiration, 1*time.Minute),
	}
}

func (s *LocalLockStore) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if err := s.cache.Add(key, struct{}{}, ttl); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *LocalLockStore) Release(ctx context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}
