// Package redis stores memoised people-search results in Redis. Values are
// opaque byte payloads written with a TTL; stale data sets are removed in
// bulk by key prefix.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Adithya-Monish-Kumar-K/people-search/pkg/config"
	"github.com/redis/go-redis/v9"
)

// scanBatch is the COUNT hint for each SCAN page during prefix deletes.
const scanBatch = 100

// ErrMiss is returned by Get when no result is stored under the key.
var ErrMiss = redis.Nil

// Client is a Redis connection pool used as a result store.
type Client struct {
	rdb *redis.Client
}

// NewClient connects to cfg.Addr and fails unless the server answers a PING
// before ctx is done or five seconds pass, whichever comes first.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connecting to result store %s: %w", cfg.Addr, err)
	}
	return &Client{rdb: rdb}, nil
}

// Get returns the payload stored under key, or ErrMiss.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	return c.rdb.Get(ctx, key).Bytes()
}

// Set stores payload under key until ttl elapses. A zero ttl keeps it
// forever.
func (c *Client) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, payload, ttl).Err()
}

// DeleteByPrefix removes every key starting with prefix and reports how many
// were removed. Each SCAN page is deleted with a single UNLINK.
func (c *Client) DeleteByPrefix(ctx context.Context, prefix string) (int64, error) {
	var removed int64
	iter := c.rdb.Scan(ctx, 0, prefix+"*", scanBatch).Iterator()
	page := make([]string, 0, scanBatch)
	flush := func() error {
		if len(page) == 0 {
			return nil
		}
		n, err := c.rdb.Unlink(ctx, page...).Result()
		if err != nil {
			return fmt.Errorf("unlinking %d keys under %s: %w", len(page), prefix, err)
		}
		removed += n
		page = page[:0]
		return nil
	}
	for iter.Next(ctx) {
		page = append(page, iter.Val())
		if len(page) == scanBatch {
			if err := flush(); err != nil {
				return removed, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("scanning keys under %s: %w", prefix, err)
	}
	return removed, flush()
}

// IsMiss reports whether err means the key holds no result.
func IsMiss(err error) bool {
	return errors.Is(err, redis.Nil)
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping backs the readiness check.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
