package mock

import (
	"context"

	"vcfolio"
)

var _ vcfolio.CompanyExtractor = (*CompanyExtractor)(nil)

// CompanyExtractor is a mock implementation of vcfolio.CompanyExtractor.
type CompanyExtractor struct {
	ExtractFn func(ctx context.Context, text, pageURL, sourceURL string) (*vcfolio.Company, error)
}

func (e *CompanyExtractor) Extract(ctx context.Context, text, pageURL, sourceURL string) (*vcfolio.Company, error) {
	return e.ExtractFn(ctx, text, pageURL, sourceURL)
}
