package vcfolio

import "context"

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content, including scroll-triggered lazy loading.
type Fetcher interface {
	// Fetch navigates to the URL, waits for the page to render, and
	// returns the rendered HTML. The context controls timeout and
	// cancellation. Navigation errors, render timeouts, and implausibly
	// short content all surface uniformly as errors; callers treat any
	// failure as "no content" and move on.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources (e.g. the browser session).
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
