package mock

import (
	"context"

	"github.com/fwojciec/spellbook"
)

var _ spellbook.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of spellbook.SitemapService.
type SitemapService struct {
	DiscoverSlugsFn func(ctx context.Context, sitemapURL string, category string) ([]string, error)
}

func (s *SitemapService) DiscoverSlugs(ctx context.Context, sitemapURL string, category string) ([]string, error) {
	return s.DiscoverSlugsFn(ctx, sitemapURL, category)
}
