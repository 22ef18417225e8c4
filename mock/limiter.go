package mock

import (
	"context"

	"vcfolio"
)

var _ vcfolio.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of vcfolio.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.WaitFn(ctx, domain)
}
