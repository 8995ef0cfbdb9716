package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/spellbook"
)

// Ensure SitemapService implements spellbook.SitemapService.
var _ spellbook.SitemapService = (*SitemapService)(nil)

// SitemapService discovers wiki page slugs from sitemaps via HTTP.
type SitemapService struct {
	client    *http.Client
	userAgent string
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client, userAgent: DefaultUserAgent}
}

// DiscoverSlugs returns the slugs of every sitemap location in category.
// Returns an empty slice (not nil) when nothing matches.
func (s *SitemapService) DiscoverSlugs(ctx context.Context, sitemapURL string, category string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	locs, err := s.processSitemap(ctx, sitemapURL, make(map[string]bool))
	if err != nil {
		return nil, err
	}

	marker := category + ":"
	slugs := []string{}
	seen := make(map[string]bool)
	for _, loc := range locs {
		if !strings.Contains(loc, marker) {
			continue
		}
		slug := loc[strings.LastIndex(loc, ":")+1:]
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		slugs = append(slugs, slug)
	}

	return slugs, nil
}

// processSitemap fetches and parses a sitemap, handling both urlset and sitemapindex.
func (s *SitemapService) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Avoid processing the same sitemap twice
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := get(ctx, s.client, sitemapURL, s.userAgent)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML")
	}

	if root.Tag == "sitemapindex" {
		return s.processSitemapIndex(ctx, root, seen)
	}

	return locations(root, "url"), nil
}

// processSitemapIndex processes a <sitemapindex> element recursively.
func (s *SitemapService) processSitemapIndex(ctx context.Context, root *etree.Element, seen map[string]bool) ([]string, error) {
	var all []string
	for _, sitemapURL := range locations(root, "sitemap") {
		locs, err := s.processSitemap(ctx, sitemapURL, seen)
		if err != nil {
			return nil, err
		}
		all = append(all, locs...)
	}
	return all, nil
}

// locations returns the trimmed <loc> text of each tag child of root.
func locations(root *etree.Element, tag string) []string {
	var locs []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			locs = append(locs, u)
		}
	}
	return locs
}
