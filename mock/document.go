package mock

import (
	"context"

	"github.com/fwojciec/spellbook"
)

var _ spellbook.DocumentArchive = (*DocumentArchive)(nil)

// DocumentArchive is a mock implementation of spellbook.DocumentArchive.
type DocumentArchive struct {
	SaveFn      func(ctx context.Context, doc *spellbook.Document) error
	CommitFn    func() error
	AbortFn     func() error
	DocumentsFn func(ctx context.Context) ([]*spellbook.Document, error)
}

func (a *DocumentArchive) Save(ctx context.Context, doc *spellbook.Document) error {
	return a.SaveFn(ctx, doc)
}

func (a *DocumentArchive) Commit() error {
	return a.CommitFn()
}

func (a *DocumentArchive) Abort() error {
	return a.AbortFn()
}

func (a *DocumentArchive) Documents(ctx context.Context) ([]*spellbook.Document, error) {
	return a.DocumentsFn(ctx)
}
