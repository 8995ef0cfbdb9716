package mock

import "github.com/fwojciec/spellbook"

var _ spellbook.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of spellbook.Extractor.
type Extractor struct {
	ExtractFn func(raw string) (*spellbook.Spell, error)
}

func (e *Extractor) Extract(raw string) (*spellbook.Spell, error) {
	return e.ExtractFn(raw)
}
