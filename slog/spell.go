package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/spellbook"
)

// Ensure LoggingSpellService implements spellbook.SpellService.
var _ spellbook.SpellService = (*LoggingSpellService)(nil)

// LoggingSpellService wraps a SpellService with logging.
type LoggingSpellService struct {
	next   spellbook.SpellService
	logger *slog.Logger
}

// NewLoggingSpellService creates a new LoggingSpellService.
func NewLoggingSpellService(next spellbook.SpellService, logger *slog.Logger) *LoggingSpellService {
	return &LoggingSpellService{next: next, logger: logger}
}

func (s *LoggingSpellService) Reset(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("reset spells",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Reset(ctx)
}

func (s *LoggingSpellService) CreateSpell(ctx context.Context, spell *spellbook.Spell) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create spell",
			"name", spell.Name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateSpell(ctx, spell)
}

func (s *LoggingSpellService) SpellExists(ctx context.Context, name string) (exists bool, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("spell exists",
			"name", name,
			"exists", exists,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SpellExists(ctx, name)
}

func (s *LoggingSpellService) FindSpellByName(ctx context.Context, name string) (spell *spellbook.Spell, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find spell",
			"name", name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSpellByName(ctx, name)
}

func (s *LoggingSpellService) FindSpells(ctx context.Context, filter spellbook.SpellFilter) (spells []*spellbook.Spell, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find spells",
			"count", len(spells),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSpells(ctx, filter)
}

func (s *LoggingSpellService) SpellNames(ctx context.Context) (names []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("spell names",
			"count", len(names),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SpellNames(ctx)
}

func (s *LoggingSpellService) Query(ctx context.Context, query string) (result *spellbook.QueryResult, err error) {
	defer func(begin time.Time) {
		rows := 0
		if result != nil {
			rows = len(result.Rows)
		}
		s.logger.Info("query",
			"sql", query,
			"rows", rows,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Query(ctx, query)
}
