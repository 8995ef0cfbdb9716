package slog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/spellbook"
)

// Ensure LoggingFetcher implements spellbook.Fetcher.
var _ spellbook.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging. Pages are identified by
// their slug; the full URL is only logged for failed fetches.
type LoggingFetcher struct {
	next   spellbook.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next spellbook.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the page.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		slug := pageSlug(url)
		if err != nil {
			f.logger.Info("page fetch failed",
				"slug", slug,
				"url", url,
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		f.logger.Debug("page fetched",
			"slug", slug,
			"bytes", len(html),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// pageSlug returns the part of a wiki page URL after the category colon.
func pageSlug(url string) string {
	if i := strings.LastIndex(url, ":"); i >= 0 && !strings.HasPrefix(url[i:], "://") {
		return url[i+1:]
	}
	return url
}
