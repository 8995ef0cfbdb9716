// Package levenshtein resolves free-text spell names using edit-distance
// similarity scores.
package levenshtein

import (
	"github.com/fwojciec/spellbook"
)

// Ensure Resolver implements spellbook.Resolver at compile time.
var _ spellbook.Resolver = (*Resolver)(nil)

// Resolver picks the best scoring name for a query.
type Resolver struct {
	threshold int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithThreshold sets the minimum accepted score.
// Defaults to spellbook.DefaultThreshold if not specified.
func WithThreshold(score int) Option {
	return func(r *Resolver) {
		r.threshold = score
	}
}

// NewResolver creates a new Resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{threshold: spellbook.DefaultThreshold}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the name that best matches query.
func (r *Resolver) Resolve(query string, names []string) (*spellbook.Match, error) {
	if len(names) == 0 {
		return nil, spellbook.Errorf(spellbook.ENOMATCH, "no spells to match %q against", query)
	}

	var best *spellbook.Match
	for _, name := range names {
		score := Score(query, name)
		if best == nil || score > best.Score {
			best = &spellbook.Match{Name: name, Score: score}
		}
		if score == 100 {
			break
		}
	}

	if best.Score < r.threshold {
		return nil, spellbook.Errorf(spellbook.ENOMATCH,
			"no spell matches %q (closest %q scored %d)", query, best.Name, best.Score)
	}
	return best, nil
}
