package crawl

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/spellbook"
)

// SpellCategory is the wiki category holding spell pages.
const SpellCategory = "spell"

// Scraper downloads every spell page listed in the wiki sitemap into the
// archive. Requests are sequential and spaced by Limiter.
type Scraper struct {
	Sitemaps spellbook.SitemapService
	Fetcher  spellbook.Fetcher
	Archive  spellbook.DocumentArchive
	Limiter  spellbook.RateLimiter
	BaseURL  string
}

// ScrapeResult holds the outcome of a scrape.
type ScrapeResult struct {
	Saved  int
	Failed int
	Bytes  int
}

// SitemapURL returns the sitemap address for the wiki.
func (s *Scraper) SitemapURL() string {
	return strings.TrimSuffix(s.BaseURL, "/") + "/sitemap.xml"
}

// PageURL returns the address of the spell page for slug.
func (s *Scraper) PageURL(slug string) string {
	return strings.TrimSuffix(s.BaseURL, "/") + "/" + SpellCategory + ":" + slug
}

// Scrape fetches all spell pages and commits them to the archive. Pending
// pages from an earlier run are discarded first.
// A page that fails to fetch is reported and counted; the scrape goes on.
// Cancellation, archive errors, or a scrape that saved nothing discard the
// pending pages and leave the previous archive in place.
func (s *Scraper) Scrape(ctx context.Context, progress ProgressFunc) (result *ScrapeResult, err error) {
	slugs, err := s.Sitemaps.DiscoverSlugs(ctx, s.SitemapURL(), SpellCategory)
	if err != nil {
		return nil, fmt.Errorf("sitemap discovery: %w", err)
	}

	// Pages left pending by an interrupted scrape must not be committed
	// with this one.
	if err := s.Archive.Abort(); err != nil {
		return nil, fmt.Errorf("clearing pending pages: %w", err)
	}

	defer func() {
		if err != nil {
			_ = s.Archive.Abort()
		}
	}()

	total := len(slugs)
	progress.emit(ProgressEvent{Type: ProgressStarted, Total: total})

	result = &ScrapeResult{}
	for i, slug := range slugs {
		if s.Limiter != nil {
			if err := s.Limiter.Wait(ctx); err != nil {
				return result, err
			}
		}

		url := s.PageURL(slug)
		html, err := s.Fetcher.Fetch(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.Failed++
			progress.emit(ProgressEvent{Type: ProgressFailed, Completed: i + 1, Total: total, Slug: slug, Error: err})
			continue
		}

		doc := &spellbook.Document{Slug: slug, URL: url, HTML: html}
		if err := s.Archive.Save(ctx, doc); err != nil {
			return result, fmt.Errorf("archiving %s: %w", slug, err)
		}

		result.Saved++
		result.Bytes += len(html)
		progress.emit(ProgressEvent{Type: ProgressCompleted, Completed: i + 1, Total: total, Slug: slug})
	}

	if result.Saved == 0 {
		return result, spellbook.Errorf(spellbook.ENOTFOUND, "no spell pages fetched from %s", s.BaseURL)
	}

	if err := s.Archive.Commit(); err != nil {
		return result, fmt.Errorf("committing archive: %w", err)
	}

	progress.emit(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return result, nil
}
