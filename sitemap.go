package spellbook

import "context"

// SitemapService discovers page slugs from a wiki sitemap.
type SitemapService interface {
	// DiscoverSlugs returns the slugs of sitemap locations in the given
	// category. For a location such as "http://host/spell:fireball" and
	// category "spell", the slug is "fireball". Sitemap indexes are
	// resolved recursively and duplicates are dropped.
	DiscoverSlugs(ctx context.Context, sitemapURL string, category string) ([]string, error)
}
