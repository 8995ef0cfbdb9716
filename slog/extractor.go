package slog

import (
	"errors"
	"log/slog"
	"time"

	"github.com/fwojciec/spellbook"
)

// Ensure LoggingExtractor implements spellbook.Extractor.
var _ spellbook.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging. Unparseable pages are
// logged at debug level with the failure reason; they are counted by the
// importer.
type LoggingExtractor struct {
	next   spellbook.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next spellbook.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the result.
func (e *LoggingExtractor) Extract(raw string) (spell *spellbook.Spell, err error) {
	defer func(begin time.Time) {
		var failure *spellbook.ParseFailure
		if errors.As(err, &failure) {
			e.logger.Debug("unparseable page",
				"name", failure.Name,
				"reason", failure.Reason,
			)
			return
		}
		var name string
		if spell != nil {
			name = spell.Name
		}
		e.logger.Info("extract",
			"name", name,
			"bytes", len(raw),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(raw)
}
