// Package browser provides a pool of headless Chrome contexts used as a
// fallback when a snow report page comes back empty or blocked over plain
// HTTP.
package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// Pool manages a fixed number of reusable browser contexts.
type Pool struct {
	size        int
	contexts    chan context.Context
	cancelFuncs map[context.Context]context.CancelFunc
	allocCtx    context.Context
	allocCancel context.CancelFunc
	initOnce    sync.Once
	mu          sync.Mutex
	initialized bool
}

// New creates a browser pool of the given size. Browsers are launched
// lazily on first use.
func New(size int) *Pool {
	return &Pool{
		size:        size,
		contexts:    make(chan context.Context, size),
		cancelFuncs: make(map[context.Context]context.CancelFunc),
	}
}

// Initialize launches the browser instances. Called automatically on first
// fetch.
func (pool *Pool) Initialize() {
	pool.mu.Lock()
	defer pool.mu.Unlock()

	if pool.initialized {
		return
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("ignore-certificate-errors", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"),
	)

	pool.allocCtx, pool.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)

	for i := 0; i < pool.size; i++ {
		ctx, cancel := chromedp.NewContext(pool.allocCtx, chromedp.WithLogf(func(format string, args ...interface{}) {}))

		if err := chromedp.Run(ctx, chromedp.Navigate("about:blank")); err != nil {
			fmt.Printf("Error initializing browser: %v\n", err)
			cancel()
			continue
		}

		pool.contexts <- ctx
		pool.cancelFuncs[ctx] = cancel
	}

	pool.initialized = true
}

// GetContext borrows a browser context from the pool. The returned function
// must be called to return the context.
func (pool *Pool) GetContext() (context.Context, func(), error) {
	pool.initOnce.Do(pool.Initialize)

	select {
	case ctx := <-pool.contexts:
		returnCtx := func() {
			// Clear state before the next borrower.
			refreshCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()

			_ = chromedp.Run(refreshCtx,
				network.ClearBrowserCookies(),
				chromedp.Navigate("about:blank"),
			)

			select {
			case pool.contexts <- ctx:
			default:
			}
		}
		return ctx, returnCtx, nil

	case <-time.After(10 * time.Second):
		return nil, nil, fmt.Errorf("timeout getting browser context from pool")
	}
}

// FetchURL navigates to a URL in a pooled browser and returns the rendered
// HTML.
func (pool *Pool) FetchURL(url string, timeout time.Duration) (string, error) {
	ctx, returnCtx, err := pool.GetContext()
	if err != nil {
		return "", fmt.Errorf("failed to get browser context: %v", err)
	}
	defer returnCtx()

	var htmlContent string

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err = chromedp.Run(timeoutCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(1000*time.Millisecond),
		chromedp.OuterHTML(`html`, &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL content: %v", err)
	}

	return htmlContent, nil
}

// Shutdown closes all browser instances.
func (pool *Pool) Shutdown() {
	pool.mu.Lock()
	defer pool.mu.Unlock()

	if !pool.initialized {
		return
	}

	for ctx, cancel := range pool.cancelFuncs {
		cancel()
		delete(pool.cancelFuncs, ctx)
	}

	if pool.allocCancel != nil {
		pool.allocCancel()
	}

	for len(pool.contexts) > 0 {
		<-pool.contexts
	}

	pool.initialized = false
}
