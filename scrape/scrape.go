package scrape

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"vcfolio"
	"vcfolio/bloom"

	"github.com/cespare/xxhash/v2"
)

// visitedCapacity sizes the dedup filter. Portfolio pages rarely yield
// more than a few thousand distinct company links, and the filter degrades
// gracefully past its estimate.
const visitedCapacity = 4096

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types emitted while a run proceeds.
const (
	ProgressLinksDiscovered ProgressType = iota
	ProgressCompanyStarted
	ProgressCompanyCompleted
	ProgressCompanyFailed
	ProgressFinished
)

// ProgressEvent reports pipeline progress. Per-item failures surface here
// and in the log; they never interrupt the run.
type ProgressEvent struct {
	Type      ProgressType
	URL       string
	Completed int
	Total     int
	Err       error
}

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// Scraper orchestrates a scraping run: portfolio page to company links to
// extracted records. Execution is strictly sequential: one fetch and one
// model call in flight at a time, sharing a single browser session.
//
// Fetcher, Harvester, Classifier, Normalizer, and Extractor are required.
// Sitemaps, Limiter, Converter, and Pages are optional.
type Scraper struct {
	Fetcher    vcfolio.Fetcher
	Harvester  vcfolio.LinkHarvester
	Classifier vcfolio.LinkClassifier
	Normalizer vcfolio.ContentNormalizer
	Extractor  vcfolio.CompanyExtractor

	// Sitemaps adds sitemap URLs to the harvested candidates.
	Sitemaps vcfolio.SitemapService

	// Limiter paces fetches per domain.
	Limiter vcfolio.DomainLimiter

	// Converter and Pages store markdown snapshots of fetched company
	// pages; both must be set for snapshots to be written.
	Converter vcfolio.Converter
	Pages     vcfolio.PageStore

	Logger   *slog.Logger
	Progress ProgressFunc
}

// Run scrapes every portfolio URL and returns the extracted records.
//
// Two conditions abort the run: zero company links discovered across all
// portfolio pages, and zero valid records extracted from the discovered
// links. Both return ENOTFOUND. Every other failure is scoped to its URL
// and the run continues.
func (s *Scraper) Run(ctx context.Context, portfolioURLs []string) ([]*vcfolio.Company, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	// Collect company URLs from every portfolio page, remembering which
	// portfolio each came from for record provenance. The visited filter
	// drops links that several portfolio pages share, so each company URL
	// is visited once per run.
	visited := bloom.NewFilter(visitedCapacity, 0.001)
	sourceOf := make(map[string]string)
	var companyURLs []string
	for _, portfolioURL := range portfolioURLs {
		for _, u := range s.discoverCompanyURLs(ctx, portfolioURL, logger) {
			if visited.Seen(u) {
				continue
			}
			sourceOf[u] = portfolioURL
			companyURLs = append(companyURLs, u)
		}
	}

	// Lexicographic order keeps runs deterministic regardless of the
	// order the model returned the links in.
	sort.Strings(companyURLs)

	if len(companyURLs) == 0 {
		s.abortPages()
		return nil, vcfolio.Errorf(vcfolio.ENOTFOUND, "no company links discovered")
	}

	logger.Info("company links discovered", "count", len(companyURLs))
	s.progress(ProgressEvent{Type: ProgressLinksDiscovered, Total: len(companyURLs)})

	records, err := s.extractAll(ctx, companyURLs, sourceOf, logger)
	if err != nil {
		s.abortPages()
		return nil, err
	}

	if len(records) == 0 {
		s.abortPages()
		return nil, vcfolio.Errorf(vcfolio.ENOTFOUND, "no valid company records extracted")
	}

	if s.Pages != nil {
		if err := s.Pages.Commit(); err != nil {
			logger.Error("failed to commit page snapshots", "err", err)
		}
	}

	s.progress(ProgressEvent{Type: ProgressFinished, Completed: len(records), Total: len(companyURLs)})
	return records, nil
}

// discoverCompanyURLs fetches one portfolio page and classifies its
// harvested links. Every failure is soft and yields zero URLs for this
// portfolio page.
func (s *Scraper) discoverCompanyURLs(ctx context.Context, portfolioURL string, logger *slog.Logger) []string {
	html, err := s.Fetcher.Fetch(ctx, portfolioURL)
	if err != nil {
		logger.Error("failed to fetch portfolio page", "url", portfolioURL, "err", err)
		return nil
	}

	candidates := s.Harvester.HarvestLinks(html)

	if s.Sitemaps != nil {
		sitemapURLs, err := s.Sitemaps.DiscoverURLs(ctx, portfolioURL)
		if err != nil {
			logger.Warn("sitemap discovery failed", "url", portfolioURL, "err", err)
		} else {
			candidates = appendMissing(candidates, sitemapURLs)
		}
	}

	if len(candidates) == 0 {
		logger.Error("no candidate links harvested", "url", portfolioURL)
		return nil
	}
	logger.Info("candidate links harvested", "url", portfolioURL, "count", len(candidates))

	return s.Classifier.ClassifyLinks(ctx, candidates, portfolioURL)
}

// extractAll visits company URLs one at a time and extracts records.
// A failure on one URL never aborts the batch.
func (s *Scraper) extractAll(ctx context.Context, companyURLs []string, sourceOf map[string]string, logger *slog.Logger) ([]*vcfolio.Company, error) {
	contentSeen := make(map[uint64]string)

	var records []*vcfolio.Company
	for i, companyURL := range companyURLs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		s.progress(ProgressEvent{Type: ProgressCompanyStarted, URL: companyURL, Completed: i, Total: len(companyURLs)})

		if err := s.waitForDomain(ctx, companyURL); err != nil {
			return nil, err
		}

		html, err := s.Fetcher.Fetch(ctx, companyURL)
		if err != nil {
			logger.Error("failed to fetch company page", "url", companyURL, "err", err)
			s.progress(ProgressEvent{Type: ProgressCompanyFailed, URL: companyURL, Completed: i + 1, Total: len(companyURLs), Err: err})
			continue
		}

		// Portfolio sites often alias several URLs to one company page;
		// identical renders are extracted once.
		hash := xxhash.Sum64String(html)
		if dup, ok := contentSeen[hash]; ok {
			logger.Info("skipping duplicate page content", "url", companyURL, "duplicate_of", dup)
			continue
		}
		contentSeen[hash] = companyURL

		s.savePage(ctx, companyURL, html, logger)

		text := s.Normalizer.Normalize(html)

		company, err := s.Extractor.Extract(ctx, text, companyURL, sourceOf[companyURL])
		if err != nil {
			logger.Error("discarding invalid record", "url", companyURL, "err", err)
			s.progress(ProgressEvent{Type: ProgressCompanyFailed, URL: companyURL, Completed: i + 1, Total: len(companyURLs), Err: err})
			continue
		}

		records = append(records, company)
		s.progress(ProgressEvent{Type: ProgressCompanyCompleted, URL: companyURL, Completed: i + 1, Total: len(companyURLs)})
	}

	return records, nil
}

func (s *Scraper) waitForDomain(ctx context.Context, rawURL string) error {
	if s.Limiter == nil {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	return s.Limiter.Wait(ctx, u.Host)
}

// savePage stores a markdown snapshot of the fetched page when a snapshot
// store is configured. Snapshot failures are logged, never fatal.
func (s *Scraper) savePage(ctx context.Context, pageURL, html string, logger *slog.Logger) {
	if s.Pages == nil || s.Converter == nil {
		return
	}

	markdown, err := s.Converter.Convert(html)
	if err != nil {
		logger.Warn("failed to convert page snapshot", "url", pageURL, "err", err)
		return
	}

	page := &vcfolio.Page{URL: pageURL, Title: pageTitle(html), Content: markdown}
	if err := s.Pages.Save(ctx, page); err != nil {
		logger.Warn("failed to save page snapshot", "url", pageURL, "err", err)
	}
}

func (s *Scraper) abortPages() {
	if s.Pages != nil {
		_ = s.Pages.Abort()
	}
}

func (s *Scraper) progress(event ProgressEvent) {
	if s.Progress != nil {
		s.Progress(event)
	}
}

// appendMissing appends items from extra that are not already present.
func appendMissing(candidates, extra []string) []string {
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		seen[c] = true
	}
	for _, e := range extra {
		if !seen[e] {
			seen[e] = true
			candidates = append(candidates, e)
		}
	}
	return candidates
}

var titlePattern = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

func pageTitle(html string) string {
	m := titlePattern.FindStringSubmatch(html)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
