// Package cache memoizes expensive derived values behind a pluggable store.
package cache

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dice-stats/internal/config"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Cache wraps a Store with a TTL, a key prefix and miss collapsing
type Cache struct {
	store    Store
	ttl      time.Duration
	prefix   string
	disabled bool
	group    singleflight.Group
	logger   *slog.Logger
}

// New creates a cache over the given store
func New(store Store, cfg *config.CacheConfig, logger *slog.Logger) *Cache {
	return &Cache{
		store:    store,
		ttl:      cfg.TTL,
		prefix:   cfg.KeyPrefix,
		disabled: cfg.Disabled || store == nil,
		logger:   logger,
	}
}

// Disabled reports whether every lookup goes straight to the loader
func (c *Cache) Disabled() bool {
	return c == nil || c.disabled
}

// Remember returns the value cached under key, calling load on a miss and
// storing its result. Concurrent misses on one key share a single load that
// is detached from cancellation, so one caller giving up never fails the
// others. Store failures are logged and never fail the call.
func Remember[T any](ctx context.Context, c *Cache, key string, load func(ctx context.Context) (T, error)) (T, error) {
	if c.Disabled() {
		return load(ctx)
	}

	fullKey := c.prefix + key
	var value T

	data, err := c.store.Get(ctx, fullKey)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &value); err == nil {
			c.logger.Debug("cache hit", "key", fullKey)
			return value, nil
		}
		c.logger.Warn("discarding undecodable cache entry", "key", fullKey)
	case errors.Is(err, ErrCacheMiss):
		c.logger.Debug("cache miss", "key", fullKey)
	default:
		c.logger.Warn("cache lookup failed", "key", fullKey, "error", err)
	}

	ch := c.group.DoChan(fullKey, func() (any, error) {
		loadCtx := context.WithoutCancel(ctx)
		loaded, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		encoded, err := json.Marshal(loaded)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCacheSerialization, err)
		}
		if err := c.store.Set(loadCtx, fullKey, encoded, c.ttl); err != nil {
			c.logger.Warn("cache store failed", "key", fullKey, "error", err)
		}
		return encoded, nil
	})

	select {
	case <-ctx.Done():
		return value, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return value, res.Err
		}
		if err := json.Unmarshal(res.Val.([]byte), &value); err != nil {
			return value, fmt.Errorf("%w: %v", ErrCacheSerialization, err)
		}
		return value, nil
	}
}

// Key joins key parts with colons
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// HashIDs returns an order independent digest of an id set for use in keys
func HashIDs(ids []uuid.UUID) string {
	sorted := make([]string, len(ids))
	for i, id := range ids {
		sorted[i] = id.String()
	}
	slices.Sort(sorted)

	digest := xxhash.New()
	for _, id := range sorted {
		_, _ = digest.WriteString(id)
		_, _ = digest.WriteString(",")
	}
	return hex.EncodeToString(digest.Sum(nil))
}
