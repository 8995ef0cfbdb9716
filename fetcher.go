package spellbook

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the page at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// RateLimiter spaces out requests to the remote wiki.
type RateLimiter interface {
	// Wait blocks until the next request may be sent.
	// Returns an error if the context is canceled first.
	Wait(ctx context.Context) error
}
