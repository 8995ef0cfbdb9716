package mock

import "github.com/fwojciec/spellbook"

var _ spellbook.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of spellbook.Resolver.
type Resolver struct {
	ResolveFn func(query string, names []string) (*spellbook.Match, error)
}

func (r *Resolver) Resolve(query string, names []string) (*spellbook.Match, error) {
	return r.ResolveFn(query, names)
}
