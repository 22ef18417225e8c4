package scrape

import (
	"context"
	"errors"
	"log/slog"

	"vcfolio"
)

// Ensure FallbackFetcher implements vcfolio.Fetcher at compile time.
var _ vcfolio.Fetcher = (*FallbackFetcher)(nil)

// FallbackFetcher tries a primary fetcher and, on failure, a secondary
// one. Used to back the browser fetcher with a plain HTTP fetch for pages
// that render fine without JavaScript.
type FallbackFetcher struct {
	primary   vcfolio.Fetcher
	secondary vcfolio.Fetcher
	logger    *slog.Logger
}

// NewFallbackFetcher creates a new FallbackFetcher. A nil logger discards
// output.
func NewFallbackFetcher(primary, secondary vcfolio.Fetcher, logger *slog.Logger) *FallbackFetcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FallbackFetcher{primary: primary, secondary: secondary, logger: logger}
}

// Fetch delegates to the primary fetcher, falling back on error.
func (f *FallbackFetcher) Fetch(ctx context.Context, url string) (string, error) {
	html, err := f.primary.Fetch(ctx, url)
	if err == nil {
		return html, nil
	}
	if ctx.Err() != nil {
		return "", err
	}

	f.logger.Warn("primary fetch failed, trying fallback", "url", url, "err", err)
	return f.secondary.Fetch(ctx, url)
}

// Close closes both fetchers.
func (f *FallbackFetcher) Close() error {
	return errors.Join(f.primary.Close(), f.secondary.Close())
}
