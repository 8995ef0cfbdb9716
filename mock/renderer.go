package mock

import (
	"io"

	"github.com/fwojciec/spellbook"
)

var _ spellbook.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of spellbook.Renderer.
type Renderer struct {
	RenderFn      func(w io.Writer, spell *spellbook.Spell) error
	RenderQueryFn func(w io.Writer, result *spellbook.QueryResult) error
}

func (r *Renderer) Render(w io.Writer, spell *spellbook.Spell) error {
	return r.RenderFn(w, spell)
}

func (r *Renderer) RenderQuery(w io.Writer, result *spellbook.QueryResult) error {
	return r.RenderQueryFn(w, result)
}
