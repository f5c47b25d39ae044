package fetch

import (
	"context"
	"time"

	"snowscraper/cache"
)

// CachedFetcher memoizes another Fetcher's results in Redis. Snow report
// pages change at most a few times per day, so a short TTL removes most of
// the upstream load without staleness concerns.
type CachedFetcher struct {
	inner Fetcher
	cache *cache.Client
	ttl   time.Duration
}

// NewCachedFetcher wraps inner with a Redis memoization layer.
func NewCachedFetcher(inner Fetcher, c *cache.Client, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{inner: inner, cache: c, ttl: ttl}
}

func (f *CachedFetcher) Fetch(ctx context.Context, url string) (string, error) {
	return cache.Memoize(ctx, f.cache, "page:"+url, f.ttl, func() (string, error) {
		return f.inner.Fetch(ctx, url)
	})
}
