package crawl

import (
	"context"
	"fmt"

	"github.com/fwojciec/spellbook"
	"github.com/fwojciec/spellbook/bloom"
)

// Importer turns archived pages into stored spells.
type Importer struct {
	Extractor spellbook.Extractor
	Spells    spellbook.SpellService

	// Reset drops every stored spell before importing.
	Reset bool
}

// ImportResult holds the outcome of an import.
type ImportResult struct {
	Created    int
	Skipped    int
	Duplicates int
	Failed     int
}

// Import extracts and stores each document in order. Unparseable pages are
// skipped, names already stored are left untouched, and store failures are
// counted without stopping the batch. Each stored spell is committed on its
// own, so an interrupted import keeps what it already wrote.
func (i *Importer) Import(ctx context.Context, docs []*spellbook.Document, progress ProgressFunc) (*ImportResult, error) {
	if i.Reset {
		if err := i.Spells.Reset(ctx); err != nil {
			return nil, fmt.Errorf("resetting store: %w", err)
		}
	}

	seen, err := i.loadNames(ctx, len(docs))
	if err != nil {
		return nil, err
	}

	total := len(docs)
	progress.emit(ProgressEvent{Type: ProgressStarted, Total: total})

	result := &ImportResult{}
	for n, doc := range docs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		event := ProgressEvent{Completed: n + 1, Total: total, Slug: doc.Slug}
		event.Type, event.Error = i.importOne(ctx, doc, seen, result)
		progress.emit(event)
	}

	progress.emit(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return result, nil
}

func (i *Importer) importOne(ctx context.Context, doc *spellbook.Document, seen *bloom.Filter, result *ImportResult) (ProgressType, error) {
	spell, err := i.Extractor.Extract(doc.HTML)
	if err != nil {
		if spellbook.ErrorCode(err) == spellbook.EUNPARSEABLE {
			result.Skipped++
			return ProgressSkipped, err
		}
		result.Failed++
		return ProgressFailed, err
	}

	if seen.Test(spell.Name) {
		exists, err := i.Spells.SpellExists(ctx, spell.Name)
		if err != nil {
			result.Failed++
			return ProgressFailed, err
		}
		if exists {
			result.Duplicates++
			return ProgressDuplicate, nil
		}
	}

	if err := i.Spells.CreateSpell(ctx, spell); err != nil {
		if spellbook.ErrorCode(err) == spellbook.ECONFLICT {
			result.Duplicates++
			return ProgressDuplicate, nil
		}
		result.Failed++
		return ProgressFailed, err
	}

	seen.Add(spell.Name)
	result.Created++
	return ProgressCompleted, nil
}

// loadNames seeds a filter with the names already in the store.
func (i *Importer) loadNames(ctx context.Context, incoming int) (*bloom.Filter, error) {
	var names []string
	if !i.Reset {
		var err error
		names, err = i.Spells.SpellNames(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading spell names: %w", err)
		}
	}

	seen := bloom.NewFilter(uint(len(names)+incoming), bloom.DefaultFalsePositiveRate)
	for _, name := range names {
		seen.Add(name)
	}
	return seen, nil
}
