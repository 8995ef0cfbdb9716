package spellbook

import (
	"context"
	"strings"
)

// Spell represents one spell page extracted from the wiki.
// Names are unique case-insensitively; the stored case is preserved.
type Spell struct {
	Name        string `json:"name"`
	Level       int    `json:"level"`
	School      string `json:"school"`
	Source      string `json:"source"`
	CastingTime string `json:"castingTime"`
	Range       string `json:"range"`
	Duration    string `json:"duration"`

	Components Components `json:"components"`

	// MaterialComponents is nil when the spell has no material component
	// or the component line does not spell one out.
	MaterialComponents *string `json:"materialComponents"`

	// Description paragraphs. A paragraph starting with "*" is a list item;
	// emphasized spans are surrounded by "*".
	Description []string `json:"description"`
	Tables      []Table  `json:"tables"`
	SpellLists  []string `json:"spellLists"`

	// ContentHash identifies the raw page the spell was extracted from.
	ContentHash string `json:"contentHash"`
}

// Components holds the verbal, somatic and material flags of a spell.
type Components struct {
	Verbal   bool `json:"verbal"`
	Somatic  bool `json:"somatic"`
	Material bool `json:"material"`
}

// Table is a block of rows, each row an ordered list of cells.
type Table [][]string

// IsCantrip reports whether the spell is a cantrip (level 0).
func (s *Spell) IsCantrip() bool {
	return s.Level == 0
}

// Validate returns an error if the spell contains invalid fields.
func (s *Spell) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return Errorf(EINVALID, "spell name required")
	}
	if s.Level < 0 {
		return Errorf(EINVALID, "spell %q: level must not be negative", s.Name)
	}
	required := []struct {
		field string
		value string
	}{
		{"school", s.School},
		{"source", s.Source},
		{"casting time", s.CastingTime},
		{"range", s.Range},
		{"duration", s.Duration},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return Errorf(EINVALID, "spell %q: %s required", s.Name, r.field)
		}
	}
	if s.MaterialComponents != nil && !s.Components.Material {
		return Errorf(EINVALID, "spell %q: material components without material flag", s.Name)
	}
	return nil
}

// SpellService represents a service for managing stored spells.
type SpellService interface {
	// Reset drops every stored spell and recreates empty storage.
	Reset(ctx context.Context) error

	// CreateSpell stores a new spell.
	// Returns ECONFLICT if a spell with the same name (ignoring case) exists.
	CreateSpell(ctx context.Context, spell *Spell) error

	// SpellExists reports whether a spell with the name exists, ignoring case.
	SpellExists(ctx context.Context, name string) (bool, error)

	// FindSpellByName retrieves a spell by name, ignoring case.
	// Returns ENOTFOUND if the spell does not exist.
	FindSpellByName(ctx context.Context, name string) (*Spell, error)

	// FindSpells retrieves spells matching the filter, ordered by name.
	FindSpells(ctx context.Context, filter SpellFilter) ([]*Spell, error)

	// SpellNames returns the names of all stored spells in insertion order.
	SpellNames(ctx context.Context) ([]string, error)

	// Query runs a raw query against the store and returns its rows.
	// The query text is trusted; errors are returned as-is.
	Query(ctx context.Context, query string) (*QueryResult, error)
}

// SpellFilter represents a filter for FindSpells.
type SpellFilter struct {
	NameContains        *string `json:"nameContains"`
	DescriptionContains *string `json:"descriptionContains"`
	Level               *int    `json:"level"`
	School              *string `json:"school"`
	SpellList           *string `json:"spellList"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// QueryResult holds the rows returned by a raw query, rendered as text.
type QueryResult struct {
	Columns []string
	Rows    [][]string
}
