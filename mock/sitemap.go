package mock

import (
	"context"

	"vcfolio"
)

var _ vcfolio.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of vcfolio.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL)
}
