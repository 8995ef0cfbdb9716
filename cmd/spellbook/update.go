package main

import (
	"fmt"

	"github.com/fwojciec/spellbook/crawl"
)

// Run executes the scrape and rebuilds the database from the new archive.
func (c *UpdateCmd) Run(deps *Dependencies) error {
	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d spells\n", event.Total)
		case crawl.ProgressCompleted:
			deps.Logger.Debug("fetched", "slug", event.Slug, "n", event.Completed, "total", event.Total)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", crawl.TruncateSlug(event.Slug, 40), event.Error)
		}
	}

	fmt.Fprintf(deps.Stdout, "Scraping %s\n", deps.Scraper.BaseURL)
	result, err := deps.Scraper.Scrape(deps.Ctx, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error scraping: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Saved %d pages (%s, %d failed)\n",
		result.Saved, crawl.FormatBytes(result.Bytes), result.Failed)

	return rebuild(deps)
}
