package fetch

import (
	"compress/gzip"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/require"
)

func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.Header.Get("User-Agent"), "Firefox")
		require.Contains(t, r.Header.Get("Accept-Encoding"), "br")
		fmt.Fprint(w, "<html>plain</html>")
	}))
	defer srv.Close()

	c := NewClient(5 * time.Second)
	html, err := c.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "<html>plain</html>", html)
}

func TestClientFetchGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		fmt.Fprint(gz, "<html>gzipped</html>")
		require.NoError(t, gz.Close())
	}))
	defer srv.Close()

	c := NewClient(5 * time.Second)
	html, err := c.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "<html>gzipped</html>", html)
}

func TestClientFetchBrotli(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "br")
		bw := brotli.NewWriter(w)
		fmt.Fprint(bw, "<html>br</html>")
		require.NoError(t, bw.Close())
	}))
	defer srv.Close()

	c := NewClient(5 * time.Second)
	html, err := c.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "<html>br</html>", html)
}

func TestClientFetchNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(5 * time.Second)
	_, err := c.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	require.Contains(t, err.Error(), "403")
}

func TestBrowserFetcherSkipsPoolOnGoodResponse(t *testing.T) {
	big := "<html>" + strings.Repeat("x", 600) + "</html>"
	plain := Func(func(_ context.Context, _ string) (string, error) {
		return big, nil
	})

	// A nil pool proves the fallback path is never entered.
	f := NewBrowserFetcher(plain, nil, time.Second)
	html, err := f.Fetch(context.Background(), "https://example.com/")
	require.NoError(t, err)
	require.Equal(t, big, html)
}
