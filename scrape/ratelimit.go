package scrape

import (
	"context"
	"sync"

	"vcfolio"

	"golang.org/x/time/rate"
)

// Ensure DomainLimiter implements vcfolio.DomainLimiter at compile time.
var _ vcfolio.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter paces fetches with a token bucket per domain, so visiting
// many companies hosted on one portfolio site stays polite while fetches
// to unrelated domains are not delayed.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// per domain with a burst of 1.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
