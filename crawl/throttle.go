package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/spellbook"
	"golang.org/x/time/rate"
)

// DefaultInterval is the pause between requests to the wiki.
const DefaultInterval = 300 * time.Millisecond

var _ spellbook.RateLimiter = (*Throttle)(nil)

// Throttle spaces requests at a fixed interval using a token bucket with a
// burst of 1. A non-positive interval disables throttling.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle creates a Throttle allowing one request per interval.
func NewThrottle(interval time.Duration) *Throttle {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Throttle{limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until the next request may be sent.
// Returns an error if the context is canceled before the wait completes.
func (t *Throttle) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}
