package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fwojciec/spellbook"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ spellbook.SpellService = (*SpellService)(nil)

const spellColumns = `name, level, school, source, casting_time, s_range,
	verbal, somatic, material, material_components, duration,
	description, tables, spell_lists, content_hash`

// SpellService implements spellbook.SpellService using SQLite.
type SpellService struct {
	db *DB
}

// NewSpellService creates a new SpellService.
func NewSpellService(db *DB) *SpellService {
	return &SpellService{db: db}
}

// Reset drops all spells and recreates the schema.
func (s *SpellService) Reset(ctx context.Context) error {
	return s.db.Reset(ctx)
}

// CreateSpell stores a new spell. The insert is committed on its own.
func (s *SpellService) CreateSpell(ctx context.Context, spell *spellbook.Spell) error {
	if err := spell.Validate(); err != nil {
		return err
	}

	description, err := encodeJSON("description", nonNil(spell.Description))
	if err != nil {
		return err
	}
	tables, err := encodeJSON("tables", nonNil(spell.Tables))
	if err != nil {
		return err
	}
	spellLists, err := encodeJSON("spell_lists", nonNil(spell.SpellLists))
	if err != nil {
		return err
	}

	var material sql.NullString
	if spell.MaterialComponents != nil {
		material = sql.NullString{String: *spell.MaterialComponents, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO spells (`+spellColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, spell.Name, spell.Level, spell.School, spell.Source, spell.CastingTime, spell.Range,
		spell.Components.Verbal, spell.Components.Somatic, spell.Components.Material, material,
		spell.Duration, description, tables, spellLists, spell.ContentHash)

	if isUniqueViolation(err) {
		return spellbook.Errorf(spellbook.ECONFLICT, "spell %q already exists", spell.Name)
	}
	return err
}

// SpellExists reports whether a spell with the name exists, ignoring case.
func (s *SpellService) SpellExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM spells WHERE lower(name) = lower(?))
	`, name).Scan(&exists)
	return exists, err
}

// FindSpellByName retrieves a spell by name, ignoring case.
func (s *SpellService) FindSpellByName(ctx context.Context, name string) (*spellbook.Spell, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+spellColumns+`
		FROM spells
		WHERE lower(name) = lower(?)
	`, name)

	spell, err := scanSpell(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, spellbook.Errorf(spellbook.ENOTFOUND, "spell %q not found", name)
	}
	if err != nil {
		return nil, err
	}
	return spell, nil
}

// FindSpells retrieves spells matching the filter, ordered by name.
func (s *SpellService) FindSpells(ctx context.Context, filter spellbook.SpellFilter) ([]*spellbook.Spell, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + spellColumns + " FROM spells WHERE 1=1")

	if filter.NameContains != nil {
		query.WriteString(` AND name LIKE ? ESCAPE '\'`)
		args = append(args, containsPattern(*filter.NameContains))
	}
	if filter.DescriptionContains != nil {
		// Matched per paragraph against the decoded text.
		query.WriteString(` AND EXISTS (SELECT 1 FROM json_each(spells.description) AS p WHERE p.value LIKE ? ESCAPE '\')`)
		args = append(args, containsPattern(*filter.DescriptionContains))
	}
	if filter.Level != nil {
		query.WriteString(" AND level = ?")
		args = append(args, *filter.Level)
	}
	if filter.School != nil {
		query.WriteString(" AND lower(school) = lower(?)")
		args = append(args, *filter.School)
	}
	if filter.SpellList != nil {
		query.WriteString(" AND EXISTS (SELECT 1 FROM json_each(spells.spell_lists) AS l WHERE lower(l.value) = lower(?))")
		args = append(args, *filter.SpellList)
	}

	query.WriteString(" ORDER BY name ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	spells := []*spellbook.Spell{}
	for rows.Next() {
		spell, err := scanSpell(rows)
		if err != nil {
			return nil, err
		}
		spells = append(spells, spell)
	}

	return spells, rows.Err()
}

// SpellNames returns all spell names in insertion order.
func (s *SpellService) SpellNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM spells ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// Query runs query as given and returns every row as text.
func (s *SpellService) Query(ctx context.Context, query string) (*spellbook.QueryResult, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &spellbook.QueryResult{Columns: columns, Rows: [][]string{}}
	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		result.Rows = append(result.Rows, row)
	}

	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSpell(row rowScanner) (*spellbook.Spell, error) {
	var spell spellbook.Spell
	var material sql.NullString
	var description, tables, spellLists string

	if err := row.Scan(&spell.Name, &spell.Level, &spell.School, &spell.Source, &spell.CastingTime, &spell.Range,
		&spell.Components.Verbal, &spell.Components.Somatic, &spell.Components.Material, &material,
		&spell.Duration, &description, &tables, &spellLists, &spell.ContentHash); err != nil {
		return nil, err
	}

	if material.Valid {
		spell.MaterialComponents = &material.String
	}
	if err := decodeJSON(description, "description", &spell.Description); err != nil {
		return nil, err
	}
	if err := decodeJSON(tables, "tables", &spell.Tables); err != nil {
		return nil, err
	}
	if err := decodeJSON(spellLists, "spell_lists", &spell.SpellLists); err != nil {
		return nil, err
	}

	return &spell, nil
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) || errors.Is(err, sqlite3.CONSTRAINT_PRIMARYKEY)
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// nonNil keeps empty list columns encoded as "[]" rather than "null".
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
