package pipeline

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/clipper"
	"golang.org/x/time/rate"
)

var _ clipper.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter throttles fetches per domain with a token bucket per
// host. Different domains proceed independently; requests to the same
// domain are spaced by the configured rate.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// LimiterOption configures a DomainLimiter.
type LimiterOption func(*DomainLimiter)

// WithBurst sets how many requests a domain may issue back to back
// before the rate applies. The default burst is 1.
func WithBurst(n int) LimiterOption {
	return func(d *DomainLimiter) {
		if n > 0 {
			d.burst = n
		}
	}
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per
// second to each domain.
func NewDomainLimiter(rps float64, opts ...LimiterOption) *DomainLimiter {
	d := &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    1,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Wait blocks until the domain's bucket allows a request, or the
// context is canceled.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), d.burst)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// domainOf extracts the host of a URL for rate limiting. Unparseable
// URLs yield "" and are not throttled.
func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
