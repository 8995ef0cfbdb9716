package main_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/fwojciec/spellbook"
	main "github.com/fwojciec/spellbook/cmd/spellbook"
	"github.com/fwojciec/spellbook/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLCmd_Run(t *testing.T) {
	t.Parallel()

	renderer := &mock.Renderer{
		RenderQueryFn: func(w io.Writer, result *spellbook.QueryResult) error {
			_, err := fmt.Fprintf(w, "%d rows\n", len(result.Rows))
			return err
		},
	}

	t.Run("runs each line until q", func(t *testing.T) {
		t.Parallel()

		var queries []string
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Stdin = strings.NewReader("SELECT name FROM spells\n\nSELECT 1\nq\nSELECT 2\n")
		deps.Renderer = renderer
		deps.Spells = &mock.SpellService{
			QueryFn: func(_ context.Context, query string) (*spellbook.QueryResult, error) {
				queries = append(queries, query)
				return &spellbook.QueryResult{Columns: []string{"x"}, Rows: [][]string{{"1"}}}, nil
			},
		}

		err := (&main.SQLCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []string{"SELECT name FROM spells", "SELECT 1"}, queries)
		assert.Equal(t, "> 1 rows\n> > 1 rows\n> ", stdout.String())
	})

	t.Run("reports a failing query and keeps reading", func(t *testing.T) {
		t.Parallel()

		calls := 0
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Stdin = strings.NewReader("SELEC oops\nSELECT 1\n")
		deps.Renderer = renderer
		deps.Spells = &mock.SpellService{
			QueryFn: func(_ context.Context, query string) (*spellbook.QueryResult, error) {
				calls++
				if calls == 1 {
					return nil, errors.New(`near "SELEC": syntax error`)
				}
				return &spellbook.QueryResult{Columns: []string{"1"}, Rows: [][]string{{"1"}}}, nil
			},
		}

		err := (&main.SQLCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 2, calls)
		assert.Equal(t, "error: near \"SELEC\": syntax error\n", stderr.String())
		assert.Contains(t, stdout.String(), "1 rows")
	})

	t.Run("ends on end of input", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Stdin = strings.NewReader("")

		err := (&main.SQLCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "> \n", stdout.String())
	})
}
