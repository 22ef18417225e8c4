// Package http implements vcfolio.Fetcher and vcfolio.SitemapService over
// plain HTTP. The fetcher does not execute JavaScript; it serves as the
// fallback behind the browser fetcher for pages that render without it.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"vcfolio"
)

// DefaultFetchTimeout bounds a single HTTP request.
const DefaultFetchTimeout = 20 * time.Second

// DefaultUserAgent identifies requests to portfolio sites. Some of them
// refuse the Go default agent outright.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// Ensure Fetcher implements vcfolio.Fetcher at compile time.
var _ vcfolio.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML over HTTP without rendering it.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.client = &http.Client{Timeout: f.timeout}
	return f
}

// Fetch retrieves the raw HTML served at url.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", vcfolio.Errorf(vcfolio.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", vcfolio.Errorf(vcfolio.EUNAVAILABLE, "failed to fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", vcfolio.Errorf(vcfolio.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", vcfolio.Errorf(vcfolio.EUNAVAILABLE, "failed to read %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. A no-op for the HTTP fetcher.
func (f *Fetcher) Close() error {
	return nil
}
