// README: TTL cache stores shared by the advisor and weather services (memory and Redis).
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Store is a key/value cache with a fixed per-instance TTL. Values are stored as
// JSON, so every Get hands back a fresh copy.
type Store interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	TTL() time.Duration
}

// MemoryStore keeps entries in process memory.
type MemoryStore struct {
	c   *gocache.Cache
	ttl time.Duration
}

// NewMemoryStore returns a store whose entries expire after ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	cleanup := ttl / 10
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &MemoryStore{c: gocache.New(ttl, cleanup), ttl: ttl}
}

func (s *MemoryStore) Get(_ context.Context, key string, dst any) (bool, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return false, fmt.Errorf("cache: unexpected value type %T for %s", v, key)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	s.c.Set(key, b, gocache.DefaultExpiration)
	return nil
}

func (s *MemoryStore) TTL() time.Duration { return s.ttl }

// Len reports the number of live entries.
func (s *MemoryStore) Len() int { return s.c.ItemCount() }

// RedisStore keeps entries in Redis under a namespace prefix.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore returns a store writing keys as prefix+key with the given TTL.
func NewRedisStore(rdb *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache: redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	if err := s.rdb.Set(ctx, s.prefix+key, b, s.ttl).Err(); err != nil {
		return fmt.Errorf("cache: redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) TTL() time.Duration { return s.ttl }

// Key returns the full Redis key for key.
func (s *RedisStore) Key(key string) string { return s.prefix + key }
