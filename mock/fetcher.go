package mock

import (
	"context"

	"github.com/fwojciec/spellbook"
)

var _ spellbook.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of spellbook.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ spellbook.RateLimiter = (*RateLimiter)(nil)

// RateLimiter is a mock implementation of spellbook.RateLimiter.
type RateLimiter struct {
	WaitFn func(ctx context.Context) error
}

func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.WaitFn(ctx)
}
