package scrape_test

import (
	"context"
	"testing"
	"time"

	"vcfolio"
	"vcfolio/scrape"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ vcfolio.DomainLimiter = (*scrape.DomainLimiter)(nil)

func TestDomainLimiter_Wait_FirstRequestImmediate(t *testing.T) {
	t.Parallel()

	limiter := scrape.NewDomainLimiter(1.0)

	start := time.Now()
	err := limiter.Wait(context.Background(), "vc.example")

	require.NoError(t, err)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestDomainLimiter_Wait_PacesSameDomain(t *testing.T) {
	t.Parallel()

	limiter := scrape.NewDomainLimiter(10.0) // 100ms between requests

	ctx := context.Background()
	require.NoError(t, limiter.Wait(ctx, "vc.example"))

	start := time.Now()
	require.NoError(t, limiter.Wait(ctx, "vc.example"))

	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestDomainLimiter_Wait_DomainsAreIndependent(t *testing.T) {
	t.Parallel()

	limiter := scrape.NewDomainLimiter(1.0)

	ctx := context.Background()
	require.NoError(t, limiter.Wait(ctx, "a.example"))

	start := time.Now()
	require.NoError(t, limiter.Wait(ctx, "b.example"))

	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestDomainLimiter_Wait_ContextCancellation(t *testing.T) {
	t.Parallel()

	limiter := scrape.NewDomainLimiter(0.1) // 10s between requests

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, limiter.Wait(ctx, "vc.example"))
	err := limiter.Wait(ctx, "vc.example")

	require.Error(t, err)
}
