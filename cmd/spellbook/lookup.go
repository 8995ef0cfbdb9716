package main

import (
	"fmt"

	"github.com/fwojciec/spellbook"
)

// Run executes the lookup. An unknown spell is reported on stdout and is
// not an error.
func (c *LookupCmd) Run(deps *Dependencies) error {
	names, err := deps.Spells.SpellNames(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", spellbook.ErrorMessage(err))
		return err
	}

	match, err := deps.Resolver.Resolve(c.Query, names)
	if spellbook.ErrorCode(err) == spellbook.ENOMATCH {
		deps.Logger.Debug("no match", "query", c.Query, "err", err)
		return c.invalid(deps)
	} else if err != nil {
		return err
	}

	spell, err := deps.Spells.FindSpellByName(deps.Ctx, match.Name)
	if spellbook.ErrorCode(err) == spellbook.ENOTFOUND {
		return c.invalid(deps)
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", spellbook.ErrorMessage(err))
		return err
	}

	return deps.Renderer.Render(deps.Stdout, spell)
}

func (c *LookupCmd) invalid(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "Invalid Spell (%s)\n", c.Query)
	return nil
}
