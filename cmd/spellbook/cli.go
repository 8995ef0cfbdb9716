package main

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/fwojciec/spellbook"
	"github.com/fwojciec/spellbook/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Spells    spellbook.SpellService
	Extractor spellbook.Extractor
	Resolver  spellbook.Resolver
	Renderer  spellbook.Renderer
	Archive   spellbook.DocumentArchive
	Scraper   *crawl.Scraper
}

// CLI defines the command-line interface structure for Kong.
// At most one mode flag may be given; without one, the positional words
// are looked up as a spell name. The filter flags turn a run into a search.
type CLI struct {
	Spell      []string `arg:"" optional:"" help:"Spell to look up (approximate name)"`
	Update     bool     `short:"u" xor:"mode" help:"Scrape the wiki and rebuild the database"`
	Initialize bool     `short:"i" xor:"mode" help:"Delete the database and rebuild it from archived pages"`
	SQL        bool     `short:"s" name:"sql" xor:"mode" help:"Run SQL queries read from stdin, q to quit"`
	Name       string   `short:"n" xor:"mode" placeholder:"WORD" help:"List spells whose name contains WORD"`
	Contains   []string `short:"c" xor:"mode" sep:"none" placeholder:"PHRASE" help:"List spells whose description contains PHRASE"`

	Level  *int   `short:"l" group:"Search filters" help:"Only spells of this level (0 for cantrips)"`
	School string `group:"Search filters" help:"Only spells of this school"`
	List   string `group:"Search filters" placeholder:"CLASS" help:"Only spells on this class spell list"`
	Limit  int    `group:"Search filters" help:"Show at most this many spells"`
	Offset int    `group:"Search filters" help:"Skip this many spells"`

	Verbose bool `short:"v" help:"Log progress and store calls"`
}

// Runner is a selected CLI mode.
type Runner interface {
	Run(deps *Dependencies) error
}

// Command returns the mode selected by the parsed flags, or nil when there
// is nothing to do.
func (c *CLI) Command() Runner {
	switch {
	case c.Update:
		return &UpdateCmd{}
	case c.Initialize:
		return &InitializeCmd{}
	case c.SQL:
		return &SQLCmd{}
	case c.Name != "" || len(c.Contains) > 0 || c.filtered():
		return &SearchCmd{Filter: c.filter()}
	case len(c.Spell) > 0:
		return &LookupCmd{Query: strings.Join(c.Spell, " ")}
	}
	return nil
}

// filtered reports whether a level, school or list filter was given.
func (c *CLI) filtered() bool {
	return c.Level != nil || c.School != "" || c.List != ""
}

// filter builds the search filter from the flags.
func (c *CLI) filter() spellbook.SpellFilter {
	f := spellbook.SpellFilter{
		Level:  c.Level,
		Limit:  c.Limit,
		Offset: c.Offset,
	}

	words := strings.Join(c.Spell, " ")
	switch {
	case len(c.Contains) > 0:
		// The phrase may run on into the positional words: -c mote of fire.
		phrase := strings.Join(append(c.Contains, c.Spell...), " ")
		f.DescriptionContains = &phrase
	case c.Name != "":
		f.NameContains = &c.Name
	case words != "":
		// With only filter flags, the words narrow the names: --level 3 fire.
		f.NameContains = &words
	}

	if c.School != "" {
		f.School = &c.School
	}
	if c.List != "" {
		f.SpellList = &c.List
	}
	return f
}

// UpdateCmd scrapes the wiki into the archive, then rebuilds the database.
type UpdateCmd struct{}

// InitializeCmd rebuilds the database from the archive.
type InitializeCmd struct{}

// SQLCmd runs raw queries read line by line from stdin.
type SQLCmd struct{}

// SearchCmd lists the names of spells matching Filter.
type SearchCmd struct {
	Filter spellbook.SpellFilter
}

// LookupCmd resolves Query to a stored spell and renders it.
type LookupCmd struct {
	Query string
}
