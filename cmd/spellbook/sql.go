package main

import (
	"bufio"
	"fmt"
	"strings"
)

// Prompt is printed before each query is read.
const Prompt = "> "

// Run executes queries from stdin until "q" or end of input. A failing
// query is reported and the loop continues.
func (c *SQLCmd) Run(deps *Dependencies) error {
	scanner := bufio.NewScanner(deps.Stdin)
	for {
		fmt.Fprint(deps.Stdout, Prompt)
		if !scanner.Scan() {
			fmt.Fprintln(deps.Stdout)
			return scanner.Err()
		}

		query := strings.TrimSpace(scanner.Text())
		switch query {
		case "":
			continue
		case "q":
			return nil
		}

		result, err := deps.Spells.Query(deps.Ctx, query)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			continue
		}
		if err := deps.Renderer.RenderQuery(deps.Stdout, result); err != nil {
			return err
		}
	}
}
