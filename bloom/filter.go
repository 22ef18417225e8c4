// Package bloom provides a within-run visited-URL set backed by a Bloom
// filter.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter tracks URLs that have already been visited during a run.
// False positives are possible (a never-visited URL may be skipped);
// false negatives are not.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given
// false positive rate. A zero n is bumped to a small minimum so an empty
// estimate doesn't degenerate the filter.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 16
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Seen reports whether the URL was already recorded, and records it.
// The first call for a URL returns false, subsequent calls return true.
func (f *Filter) Seen(url string) bool {
	return f.f.TestAndAddString(url)
}
