package fetch

import (
	"context"
	"time"

	"snowscraper/browser"
)

// BrowserFetcher fetches pages through a headless browser pool. It first
// tries the plain HTTP client and only renders the page when the response is
// empty or blocked.
type BrowserFetcher struct {
	plain   Fetcher
	pool    *browser.Pool
	timeout time.Duration
}

// NewBrowserFetcher wraps plain with a browser-rendered fallback.
func NewBrowserFetcher(plain Fetcher, pool *browser.Pool, timeout time.Duration) *BrowserFetcher {
	return &BrowserFetcher{plain: plain, pool: pool, timeout: timeout}
}

func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	html, err := f.plain.Fetch(ctx, url)
	if err == nil && len(html) > 512 {
		return html, nil
	}
	return f.pool.FetchURL(url, f.timeout)
}
