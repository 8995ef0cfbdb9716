package main

import (
	"fmt"

	"github.com/fwojciec/spellbook"
	"github.com/fwojciec/spellbook/crawl"
)

// Run executes the rebuild.
func (c *InitializeCmd) Run(deps *Dependencies) error {
	return rebuild(deps)
}

// rebuild drops the store and imports every archived page.
func rebuild(deps *Dependencies) error {
	docs, err := deps.Archive.Documents(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", spellbook.ErrorMessage(err))
		if spellbook.ErrorCode(err) == spellbook.ENOTFOUND {
			fmt.Fprintln(deps.Stderr, "Hint: Run 'spellbook --update' to download the spell pages first")
		}
		return err
	}

	importer := &crawl.Importer{
		Extractor: deps.Extractor,
		Spells:    deps.Spells,
		Reset:     true,
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressSkipped:
			deps.Logger.Debug("skipped page", "slug", event.Slug, "err", event.Error)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  failed %s: %v\n", event.Slug, event.Error)
		}
	}

	result, err := importer.Import(deps.Ctx, docs, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", spellbook.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "Database successfully recreated.")
	fmt.Fprintf(deps.Stdout, "  %d spells (%d skipped, %d duplicates, %d failed)\n",
		result.Created, result.Skipped, result.Duplicates, result.Failed)
	return nil
}
