package mock

import (
	"context"

	"github.com/fwojciec/spellbook"
)

var _ spellbook.SpellService = (*SpellService)(nil)

// SpellService is a mock implementation of spellbook.SpellService.
type SpellService struct {
	ResetFn           func(ctx context.Context) error
	CreateSpellFn     func(ctx context.Context, spell *spellbook.Spell) error
	SpellExistsFn     func(ctx context.Context, name string) (bool, error)
	FindSpellByNameFn func(ctx context.Context, name string) (*spellbook.Spell, error)
	FindSpellsFn      func(ctx context.Context, filter spellbook.SpellFilter) ([]*spellbook.Spell, error)
	SpellNamesFn      func(ctx context.Context) ([]string, error)
	QueryFn           func(ctx context.Context, query string) (*spellbook.QueryResult, error)
}

func (s *SpellService) Reset(ctx context.Context) error {
	return s.ResetFn(ctx)
}

func (s *SpellService) CreateSpell(ctx context.Context, spell *spellbook.Spell) error {
	return s.CreateSpellFn(ctx, spell)
}

func (s *SpellService) SpellExists(ctx context.Context, name string) (bool, error) {
	return s.SpellExistsFn(ctx, name)
}

func (s *SpellService) FindSpellByName(ctx context.Context, name string) (*spellbook.Spell, error) {
	return s.FindSpellByNameFn(ctx, name)
}

func (s *SpellService) FindSpells(ctx context.Context, filter spellbook.SpellFilter) ([]*spellbook.Spell, error) {
	return s.FindSpellsFn(ctx, filter)
}

func (s *SpellService) SpellNames(ctx context.Context) ([]string, error) {
	return s.SpellNamesFn(ctx)
}

func (s *SpellService) Query(ctx context.Context, query string) (*spellbook.QueryResult, error) {
	return s.QueryFn(ctx, query)
}
