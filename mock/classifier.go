package mock

import (
	"context"

	"vcfolio"
)

var _ vcfolio.LinkClassifier = (*LinkClassifier)(nil)

// LinkClassifier is a mock implementation of vcfolio.LinkClassifier.
type LinkClassifier struct {
	ClassifyLinksFn func(ctx context.Context, candidates []string, sourceURL string) []string
}

func (c *LinkClassifier) ClassifyLinks(ctx context.Context, candidates []string, sourceURL string) []string {
	return c.ClassifyLinksFn(ctx, candidates, sourceURL)
}
