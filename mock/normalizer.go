package mock

import "vcfolio"

var _ vcfolio.ContentNormalizer = (*ContentNormalizer)(nil)

// ContentNormalizer is a mock implementation of vcfolio.ContentNormalizer.
type ContentNormalizer struct {
	NormalizeFn func(html string) string
}

func (n *ContentNormalizer) Normalize(html string) string {
	return n.NormalizeFn(html)
}
