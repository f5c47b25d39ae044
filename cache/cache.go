// Package cache provides a Redis-backed memoization layer for fetched pages
// and derived records.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client wraps a Redis connection used for memoization.
type Client struct {
	rdb *redis.Client
}

// New connects to Redis at addr. The connection is lazy; a Redis that is
// down surfaces as cache misses, not hard errors.
func New(addr string) *Client {
	return &Client{
		rdb: redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   0,
		}),
	}
}

// Memoize caches the result of fn in Redis under key for ttl. Cache failures
// fall through to calling fn; only fn's own error is ever returned.
func Memoize[T any](ctx context.Context, c *Client, key string, ttl time.Duration, fn func() (T, error)) (T, error) {
	var result T

	cachedData, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		if jsonErr := json.Unmarshal(cachedData, &result); jsonErr == nil {
			return result, nil
		}
	}

	result, err = fn()
	if err != nil {
		return result, err
	}

	cacheData, _ := json.Marshal(result)
	c.rdb.Set(ctx, key, cacheData, ttl)

	return result, nil
}
