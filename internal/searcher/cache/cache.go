// Package cache memoises search results in Redis. Entries hold the matching
// record positions and are keyed by a fingerprint of the loaded records, the
// strategy and the raw key, so results from one data set never leak into
// another.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	pkgredis "github.com/Adithya-Monish-Kumar-K/people-search/pkg/redis"
	"golang.org/x/sync/singleflight"
)

const keyPrefix = "people-search:"

// Store is the subset of the Redis client the cache needs.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) (int64, error)
}

type QueryCache struct {
	store       Store
	ttl         time.Duration
	fingerprint string
	group       singleflight.Group
	logger      *slog.Logger
	hits        atomic.Int64
	misses      atomic.Int64
}

// New creates a cache scoped to the data set identified by fingerprint.
func New(store Store, ttl time.Duration, fingerprint string) *QueryCache {
	return &QueryCache{
		store:       store,
		ttl:         ttl,
		fingerprint: fingerprint,
		logger:      slog.Default().With("component", "query-cache"),
	}
}

// Fingerprint hashes lines in order. Two collections share cache entries
// only if their records are identical.
func Fingerprint(lines []string) string {
	h := sha256.New()
	for _, line := range lines {
		h.Write([]byte(line))
		h.Write([]byte{'\n'})
	}
	return fmt.Sprintf("%x", h.Sum(nil)[:12])
}

func (c *QueryCache) Get(ctx context.Context, strategy, key string) ([]int, bool) {
	cacheKey := c.buildKey(strategy, key)
	data, err := c.store.Get(ctx, cacheKey)
	if err != nil {
		if !pkgredis.IsMiss(err) {
			c.logger.Error("cache get failed", "key", cacheKey, "error", err)
		}
		c.misses.Add(1)
		return nil, false
	}
	var positions []int
	if err := json.Unmarshal(data, &positions); err != nil {
		c.logger.Error("cache unmarshal failed", "key", cacheKey, "error", err)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	c.logger.Debug("cache hit", "strategy", strategy, "key", key)
	return positions, true
}

func (c *QueryCache) Set(ctx context.Context, strategy, key string, positions []int) {
	cacheKey := c.buildKey(strategy, key)
	data, err := json.Marshal(positions)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", cacheKey, "error", err)
		return
	}
	if err := c.store.Set(ctx, cacheKey, data, c.ttl); err != nil {
		c.logger.Error("cache set failed", "key", cacheKey, "error", err)
	}
}

// GetOrCompute returns cached positions or computes and stores them.
// Concurrent misses for the same query share one computation.
func (c *QueryCache) GetOrCompute(
	ctx context.Context,
	strategy, key string,
	computeFn func() []int,
) ([]int, bool) {
	if positions, ok := c.Get(ctx, strategy, key); ok {
		return positions, true
	}
	val, _, _ := c.group.Do(c.buildKey(strategy, key), func() (interface{}, error) {
		positions := computeFn()
		c.Set(ctx, strategy, key, positions)
		return positions, nil
	})
	return val.([]int), false
}

// Invalidate removes the entries of every data set.
func (c *QueryCache) Invalidate(ctx context.Context) error {
	deleted, err := c.store.DeleteByPrefix(ctx, keyPrefix)
	if err != nil {
		return fmt.Errorf("invalidating cache: %w", err)
	}
	c.logger.Info("cache invalidated", "keys_deleted", deleted)
	return nil
}

func (c *QueryCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// buildKey does not normalise key: sub-keys are order and whitespace
// sensitive, and the strategy name is matched exactly.
func (c *QueryCache) buildKey(strategy, key string) string {
	raw := fmt.Sprintf("%s\x00%s", strategy, key)
	hash := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%s%s:%x", keyPrefix, c.fingerprint, hash[:16])
}
