package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/spellbook"
)

// Run prints the names of matching spells, one per tab-indented line.
func (c *SearchCmd) Run(deps *Dependencies) error {
	spells, err := deps.Spells.FindSpells(deps.Ctx, c.Filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", spellbook.ErrorMessage(err))
		return err
	}

	if len(spells) == 0 {
		fmt.Fprintln(deps.Stdout, "No spells found.")
		return nil
	}

	names := make([]string, len(spells))
	for i, s := range spells {
		names[i] = s.Name
	}
	fmt.Fprintf(deps.Stdout, "\t%s\n", strings.Join(names, "\n\t"))
	return nil
}
