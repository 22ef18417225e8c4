// Package rod provides a browser-based implementation of vcfolio.Fetcher
// using Chrome automation. It renders JavaScript-heavy portfolio pages and
// triggers scroll-based lazy loading before reading the page source.
package rod

import (
	"context"
	"fmt"
	"time"

	"vcfolio"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Defaults match the behavior of scraping portfolio pages by hand: tens
// of seconds for a page to load and a couple of seconds for lazy content
// to arrive after each scroll.
const (
	DefaultFetchTimeout     = 20 * time.Second
	DefaultScrollPause      = 2 * time.Second
	DefaultMaxScrolls       = 10
	DefaultMinContentLength = 1000
)

// Ensure Fetcher implements vcfolio.Fetcher at compile time.
var _ vcfolio.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using a headless Chrome browser.
// A single browser session is launched per Fetcher and released by Close.
type Fetcher struct {
	browser  *rod.Browser
	launcher *launcher.Launcher

	timeout     time.Duration
	scrollPause time.Duration
	maxScrolls  int
	minContent  int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-fetch timeout covering navigation,
// rendering, and scrolling. Defaults to DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

// WithScrollPause sets the pause between scroll-to-bottom attempts,
// giving lazy-loaded content time to arrive. Defaults to DefaultScrollPause.
func WithScrollPause(d time.Duration) Option {
	return func(f *Fetcher) { f.scrollPause = d }
}

// WithMaxScrolls bounds the number of scroll attempts when the page height
// never stabilizes (e.g. infinite feeds). Defaults to DefaultMaxScrolls.
func WithMaxScrolls(n int) Option {
	return func(f *Fetcher) { f.maxScrolls = n }
}

// WithMinContentLength sets the minimum page source size in bytes below
// which a fetch is treated as failed. Defaults to DefaultMinContentLength.
func WithMinContentLength(n int) Option {
	return func(f *Fetcher) { f.minContent = n }
}

// NewFetcher launches a headless Chrome browser and returns a Fetcher.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		scrollPause: DefaultScrollPause,
		maxScrolls:  DefaultMaxScrolls,
		minContent:  DefaultMinContentLength,
	}
	for _, opt := range opts {
		opt(f)
	}

	lnchr := launcher.New().
		NoSandbox(true).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("disable-extensions").
		Set("disable-software-rasterizer").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = lnchr
	return f, nil
}

// Fetch navigates to the URL, waits for the page body, scrolls until the
// page height stabilizes, and returns the rendered HTML. Content shorter
// than the minimum length is rejected as a failed fetch.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	// The body element must exist before we read or scroll anything;
	// returning on first byte yields empty shells on SPA sites.
	if _, err := page.Element("body"); err != nil {
		return "", err
	}

	if err := f.scrollUntilStable(ctx, page); err != nil {
		return "", err
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	if len(html) < f.minContent {
		return "", vcfolio.Errorf(vcfolio.EUNAVAILABLE,
			"page source too short for %s (%d bytes)", url, len(html))
	}

	return html, nil
}

// scrollUntilStable scrolls to the bottom of the page repeatedly until
// document.body.scrollHeight is unchanged across two consecutive
// observations, or the attempt bound is reached. Hitting the bound is not
// an error; the caller reads whatever was last rendered.
func (f *Fetcher) scrollUntilStable(ctx context.Context, page *rod.Page) error {
	lastHeight, err := pageHeight(page)
	if err != nil {
		return err
	}

	for i := 0; i < f.maxScrolls; i++ {
		if _, err := page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(f.scrollPause):
		}

		height, err := pageHeight(page)
		if err != nil {
			return err
		}
		if height == lastHeight {
			return nil
		}
		lastHeight = height
	}

	return nil
}

func pageHeight(page *rod.Page) (int, error) {
	res, err := page.Eval(`() => document.body.scrollHeight`)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}

// Close releases the browser session and its launcher process.
func (f *Fetcher) Close() error {
	err := f.browser.Close()
	if f.launcher != nil {
		f.launcher.Kill()
	}
	return err
}
