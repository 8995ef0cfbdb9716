// Package lipgloss renders spells for the terminal using lipgloss.
package lipgloss

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fwojciec/spellbook"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"
)

// DefaultWidth is the wrap width used when the terminal size is unknown.
const DefaultWidth = 80

// Ensure Renderer implements spellbook.Renderer at compile time.
var _ spellbook.Renderer = (*Renderer)(nil)

// Renderer writes a spell as a bold-headed, word-wrapped text block.
type Renderer struct {
	width int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWidth sets the wrap width.
// Defaults to DefaultWidth if not specified.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
	}
}

// NewRenderer creates a new Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{width: DefaultWidth}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TerminalWidth returns the column count of f when it is a terminal,
// and DefaultWidth otherwise.
func TerminalWidth(f *os.File) int {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return DefaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// Render writes spell to w. Styling is dropped when w is not a terminal.
func (r *Renderer) Render(w io.Writer, spell *spellbook.Spell) error {
	bold := lipgloss.NewRenderer(w).NewStyle().Bold(true)
	strong := func(s string) string {
		lines := strings.Split(s, "\n")
		for i, line := range lines {
			lines[i] = bold.Render(line)
		}
		return strings.Join(lines, "\n")
	}

	var b strings.Builder

	b.WriteString("\n" + spell.Name + "\n")
	b.WriteString(strong(Header(spell)) + "\n\n")

	b.WriteString(strong("Casting Time: "+spell.CastingTime) + "\n")
	b.WriteString(strong("Range: "+spell.Range) + "\n")
	b.WriteString(strong(r.wrap("Components: "+Components(spell))) + "\n")
	b.WriteString(strong("Duration: "+spell.Duration) + "\n\n")

	for _, p := range spell.Description {
		b.WriteString(r.wrap(strings.TrimLeft(p, " \t")) + "\n")
		// List items run together.
		if !strings.HasPrefix(p, "*") {
			b.WriteString("\n")
		}
	}

	for _, t := range spell.Tables {
		if len(t) == 0 {
			continue
		}
		b.WriteString(renderTable(t) + "\n\n")
	}

	b.WriteString(strong(r.wrap("Spell Lists: "+strings.Join(spell.SpellLists, ", "))) + "\n")
	b.WriteString(strong(r.wrap("Source: "+spell.Source)) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Renderer) wrap(s string) string {
	return wordwrap.String(s, r.width)
}

// Header returns the level line, e.g. "3rd-level evocation" or
// "evocation cantrip".
func Header(spell *spellbook.Spell) string {
	if spell.IsCantrip() {
		return spell.School + " cantrip"
	}
	return fmt.Sprintf("%d%s-level %s", spell.Level, ordinal(spell.Level), spell.School)
}

// Components returns the component line, e.g. "V, S, M (a tiny bell)".
func Components(spell *spellbook.Spell) string {
	var parts []string
	if spell.Components.Verbal {
		parts = append(parts, "V")
	}
	if spell.Components.Somatic {
		parts = append(parts, "S")
	}
	if spell.Components.Material {
		m := "M"
		if spell.MaterialComponents != nil {
			m += " (" + *spell.MaterialComponents + ")"
		}
		parts = append(parts, m)
	}
	return strings.Join(parts, ", ")
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// RenderQuery writes the columns and rows of a query result as a table,
// followed by the row count.
func (r *Renderer) RenderQuery(w io.Writer, result *spellbook.QueryResult) error {
	out := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(result.Columns...).
		Rows(result.Rows...).
		String()

	_, err := fmt.Fprintf(w, "%s\n(%d %s)\n", out, len(result.Rows), plural(len(result.Rows), "row"))
	return err
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// renderTable draws a table with the first row as its header.
func renderTable(t spellbook.Table) string {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(t[0]...)
	if len(t) > 1 {
		tbl = tbl.Rows(t[1:]...)
	}
	return tbl.String()
}
