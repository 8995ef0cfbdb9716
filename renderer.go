package spellbook

import "io"

// Renderer writes human-readable output for the terminal.
type Renderer interface {
	// Render writes a full spell description.
	Render(w io.Writer, spell *Spell) error

	// RenderQuery writes the result of a raw query as a table.
	RenderQuery(w io.Writer, result *QueryResult) error
}
