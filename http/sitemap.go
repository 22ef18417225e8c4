package http

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"vcfolio"

	"github.com/beevik/etree"
)

// Ensure SitemapService implements vcfolio.SitemapService at compile time.
var _ vcfolio.SitemapService = (*SitemapService)(nil)

// SitemapService discovers candidate URLs from a site's sitemaps. Sitemaps
// see past the JavaScript navigation that hides some portfolio links from
// markup harvesting.
type SitemapService struct {
	client    *http.Client
	userAgent string
}

// NewSitemapService creates a SitemapService using the given client.
// A nil client falls back to http.DefaultClient.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client, userAgent: DefaultUserAgent}
}

// DiscoverURLs returns the sitemap URLs of baseURL's site that share its
// host. Sitemap locations come from robots.txt Sitemap directives, falling
// back to /sitemap.xml. When baseURL has a non-root path, only URLs under
// that path prefix are returned. No sitemap is not an error: the result is
// simply empty.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, vcfolio.Errorf(vcfolio.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}
	if base.Host == "" {
		return nil, vcfolio.Errorf(vcfolio.EINVALID, "base URL %q has no host", baseURL)
	}

	sitemaps := s.locateSitemaps(ctx, base)
	if len(sitemaps) == 0 {
		return nil, nil
	}

	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	var urls []string
	for _, sitemapURL := range sitemaps {
		found, err := s.readSitemap(ctx, sitemapURL, seenSitemaps)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// A broken sitemap is a degraded source, not a failed run.
			continue
		}
		for _, u := range found {
			if keepURL(u, base) && !seenURLs[u] {
				seenURLs[u] = true
				urls = append(urls, u)
			}
		}
	}

	return urls, nil
}

// keepURL reports whether u belongs to base's host and, when base has a
// non-root path, sits under that path.
func keepURL(rawURL string, base *url.URL) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if !strings.EqualFold(u.Host, base.Host) {
		return false
	}

	prefix := base.Path
	if prefix == "" || prefix == "/" {
		return true
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(u.Path, prefix) || u.Path+"/" == prefix
}

// locateSitemaps finds the site's sitemap URLs: robots.txt directives
// first, /sitemap.xml second.
func (s *SitemapService) locateSitemaps(ctx context.Context, base *url.URL) []string {
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	if sitemaps := s.sitemapsFromRobots(ctx, root.JoinPath("robots.txt").String()); len(sitemaps) > 0 {
		return sitemaps
	}

	fallback := root.JoinPath("sitemap.xml").String()
	if s.exists(ctx, fallback) {
		return []string{fallback}
	}
	return nil
}

// sitemapsFromRobots extracts Sitemap directives from robots.txt. Any
// failure yields no sitemaps.
func (s *SitemapService) sitemapsFromRobots(ctx context.Context, robotsURL string) []string {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		rest, ok := cutPrefixFold(line, "sitemap:")
		if !ok {
			continue
		}
		if sitemapURL := strings.TrimSpace(rest); sitemapURL != "" {
			sitemaps = append(sitemaps, sitemapURL)
		}
	}
	return sitemaps
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}

// readSitemap fetches and parses one sitemap. A sitemapindex recurses into
// its child sitemaps; a urlset yields its locations.
func (s *SitemapService) readSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, vcfolio.Errorf(vcfolio.EINTERNAL, "failed to parse sitemap %s: %v", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, vcfolio.Errorf(vcfolio.EINTERNAL, "empty sitemap %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		var urls []string
		for _, child := range locations(root, "sitemap") {
			found, err := s.readSitemap(ctx, child, seen)
			if err != nil {
				if ctx.Err() != nil {
					return nil, err
				}
				continue
			}
			urls = append(urls, found...)
		}
		return urls, nil
	}

	return locations(root, "url"), nil
}

// locations collects trimmed <loc> values from root's children with the
// given tag.
func locations(root *etree.Element, tag string) []string {
	var urls []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

func (s *SitemapService) get(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, vcfolio.Errorf(vcfolio.EINVALID, "invalid URL %q: %v", targetURL, err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, vcfolio.Errorf(vcfolio.EUNAVAILABLE, "failed to fetch %s: %v", targetURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, vcfolio.Errorf(vcfolio.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, targetURL)
	}
	return resp.Body, nil
}

func (s *SitemapService) exists(ctx context.Context, targetURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
