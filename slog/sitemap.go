// Package slog decorates spellbook services with structured logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/spellbook"
)

// Ensure LoggingSitemapService implements spellbook.SitemapService.
var _ spellbook.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with logging. A sitemap
// that lists no pages of the category is logged as a warning, since the
// scrape that follows will save nothing.
type LoggingSitemapService struct {
	next   spellbook.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next spellbook.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverSlugs delegates to the wrapped service and logs the slugs found.
func (s *LoggingSitemapService) DiscoverSlugs(ctx context.Context, sitemapURL string, category string) (slugs []string, err error) {
	defer func(begin time.Time) {
		if err == nil && len(slugs) == 0 {
			s.logger.Warn("sitemap lists no pages",
				"sitemap", sitemapURL,
				"category", category,
			)
			return
		}
		attrs := []any{
			"sitemap", sitemapURL,
			"category", category,
			"slugs", len(slugs),
			"duration", time.Since(begin),
		}
		if len(slugs) > 0 {
			attrs = append(attrs, "first", slugs[0], "last", slugs[len(slugs)-1])
		}
		if err != nil {
			attrs = append(attrs, "err", err)
		}
		s.logger.Info("sitemap discovery", attrs...)
	}(time.Now())
	return s.next.DiscoverSlugs(ctx, sitemapURL, category)
}
