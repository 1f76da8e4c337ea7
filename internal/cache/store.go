package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dice-stats/internal/clock"
	"github.com/dice-stats/internal/config"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrCacheMiss is returned when the requested key is not found in cache.
	ErrCacheMiss = errors.New("cache: key not found")

	// ErrCacheSerialization is returned when encoding or decoding fails.
	ErrCacheSerialization = errors.New("cache: serialization failed")

	// ErrCacheKeyEmpty is returned when an empty key is provided.
	ErrCacheKeyEmpty = errors.New("cache: key cannot be empty")
)

// Store holds encoded values under string keys
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// OpenStore creates the store selected by the cache backend. The returned
// close function releases its connections.
func OpenStore(cfg *config.Config, logger *slog.Logger) (Store, func() error, error) {
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		store, err := NewRedisStore(&cfg.Redis, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case config.CacheBackendMemory, "":
		return NewMemoryStore(nil), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// RedisStore keeps cache entries in Redis
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisStore connects to Redis and verifies the connection
func NewRedisStore(cfg *config.RedisConfig, logger *slog.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return NewRedisStoreFromClient(client, logger), nil
}

// NewRedisStoreFromClient wraps an existing client
func NewRedisStoreFromClient(client *redis.Client, logger *slog.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		logger: logger,
	}
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Get returns the stored bytes or ErrCacheMiss
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrCacheKeyEmpty
	}
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("getting cache key: %w", err)
	}
	return data, nil
}

// Set stores the bytes with a TTL, zero meaning no expiry
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return ErrCacheKeyEmpty
	}
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("setting cache key: %w", err)
	}
	return nil
}

// Delete removes keys
func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("deleting cache keys: %w", err)
	}
	return nil
}

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

// memorySweepInterval bounds how often Set scans for expired entries
const memorySweepInterval = time.Minute

// MemoryStore keeps cache entries in process memory. Expired entries are
// dropped on read and swept periodically from Set.
type MemoryStore struct {
	mu        sync.RWMutex
	items     map[string]memoryItem
	clock     clock.Clock
	nextSweep time.Time
}

// NewMemoryStore creates an empty in-process store
func NewMemoryStore(clk clock.Clock) *MemoryStore {
	if clk == nil {
		clk = &clock.DefaultClock{}
	}
	return &MemoryStore{
		items: make(map[string]memoryItem),
		clock: clk,
	}
}

// Get returns the stored bytes or ErrCacheMiss. Expired entries are dropped.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrCacheKeyEmpty
	}

	s.mu.RLock()
	item, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrCacheMiss
	}

	if !item.expiresAt.IsZero() && !s.clock.Now().Before(item.expiresAt) {
		s.mu.Lock()
		if current, ok := s.items[key]; ok && current.expiresAt.Equal(item.expiresAt) {
			delete(s.items, key)
		}
		s.mu.Unlock()
		return nil, ErrCacheMiss
	}

	return item.value, nil
}

// Set stores the bytes with a TTL, zero meaning no expiry
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return ErrCacheKeyEmpty
	}

	now := s.clock.Now()
	item := memoryItem{value: value}
	if ttl > 0 {
		item.expiresAt = now.Add(ttl)
	}

	s.mu.Lock()
	if !now.Before(s.nextSweep) {
		s.sweepLocked(now)
		s.nextSweep = now.Add(memorySweepInterval)
	}
	s.items[key] = item
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) sweepLocked(now time.Time) {
	for key, item := range s.items {
		if !item.expiresAt.IsZero() && !now.Before(item.expiresAt) {
			delete(s.items, key)
		}
	}
}

func (s *MemoryStore) size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Delete removes keys
func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	for _, key := range keys {
		delete(s.items, key)
	}
	s.mu.Unlock()
	return nil
}
