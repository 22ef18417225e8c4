package vcfolio

import "context"

// SitemapService discovers URLs from a site's sitemap. It is a
// supplementary candidate-link source for portfolio pages whose navigation
// is invisible to markup harvesting.
type SitemapService interface {
	// DiscoverURLs returns same-host URLs from the site's sitemap,
	// checking robots.txt for sitemap directives before falling back to
	// /sitemap.xml. When baseURL has a non-root path, only URLs under
	// that path prefix are returned.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
