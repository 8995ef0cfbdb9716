package goquery_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/spellbook"
	"github.com/fwojciec/spellbook/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spellPage builds a page the way the wiki lays one out: a separator div
// first, the spell blocks, and a footer div last.
func spellPage(title string, blocks ...string) string {
	return `<!DOCTYPE html>
<html>
<head><title>` + title + `</title></head>
<body>
<div id="page-content">
<div class="content-separator" style="display: none:"></div>
` + strings.Join(blocks, "\n") + `
<div class="page-tags"></div>
</div>
</body>
</html>`
}

const fireballStats = `<p><strong>Casting Time:</strong> 1 action<br />
<strong>Range:</strong> 150 feet<br />
<strong>Components:</strong> V, S, M (a tiny ball of bat guano and sulfur)<br />
<strong>Duration:</strong> Instantaneous</p>`

func fireballPage() string {
	return spellPage("Fireball - Spells - D&amp;D 5th Edition",
		`<p>Source: Core Rulebook</p>`,
		`<p><em>3rd-level evocation</em></p>`,
		fireballStats,
		`<p>A bright streak flashes from your pointing finger to a point you choose within range.</p>`,
		`<p><strong><em>At Higher Levels.</em></strong> When you cast this spell using a spell slot of 4th level or higher, the damage increases.</p>`,
		`<p><strong><em>Spell Lists.</em></strong> <a href="/spells:sorcerer">Sorcerer</a>, <a href="/spells:wizard">Wizard</a></p>`,
	)
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts a leveled spell end to end", func(t *testing.T) {
		t.Parallel()

		spell, err := goquery.NewExtractor().Extract(fireballPage())
		require.NoError(t, err)

		assert.Equal(t, "Fireball", spell.Name)
		assert.Equal(t, 3, spell.Level)
		assert.Equal(t, "evocation", spell.School)
		assert.Equal(t, "Core Rulebook", spell.Source)
		assert.Equal(t, "1 action", spell.CastingTime)
		assert.Equal(t, "150 feet", spell.Range)
		assert.Equal(t, "Instantaneous", spell.Duration)
		assert.Equal(t, spellbook.Components{Verbal: true, Somatic: true, Material: true}, spell.Components)
		require.NotNil(t, spell.MaterialComponents)
		assert.Equal(t, "a tiny ball of bat guano and sulfur", *spell.MaterialComponents)
		assert.Equal(t, []string{"Sorcerer", "Wizard"}, spell.SpellLists)
		assert.Empty(t, spell.Tables)
		assert.NotEmpty(t, spell.ContentHash)
	})

	t.Run("name is the title text before the separator", func(t *testing.T) {
		t.Parallel()

		page := strings.Replace(fireballPage(), "Fireball - Spells", "Tasha's Hideous Laughter - Spells", 1)

		spell, err := goquery.NewExtractor().Extract(page)
		require.NoError(t, err)
		assert.Equal(t, "Tasha's Hideous Laughter", spell.Name)
	})

	t.Run("turns the higher levels emphasis into a heading", func(t *testing.T) {
		t.Parallel()

		spell, err := goquery.NewExtractor().Extract(fireballPage())
		require.NoError(t, err)

		require.Len(t, spell.Description, 2)
		assert.Equal(t, "A bright streak flashes from your pointing finger to a point you choose within range.", spell.Description[0])
		assert.Equal(t, "\x1b[1mAt Higher Levels.\x1b[0m\nWhen you cast this spell using a spell slot of 4th level or higher, the damage increases.", spell.Description[1])
	})

	t.Run("cantrip takes the school from the first token", func(t *testing.T) {
		t.Parallel()

		page := spellPage("Fire Bolt - Spells - D&amp;D 5th Edition",
			`<p>Source: Core Rulebook</p>`,
			`<p><em>Evocation cantrip</em></p>`,
			`<p><strong>Casting Time:</strong> 1 action<br />
<strong>Range:</strong> 120 feet<br />
<strong>Components:</strong> V, S<br />
<strong>Duration:</strong> Instantaneous</p>`,
			`<p>You hurl a mote of fire at a creature or object within range.</p>`,
			`<p><strong><em>Spell Lists.</em></strong> <a href="/spells:sorcerer">Sorcerer</a>, <a href="/spells:wizard">Wizard</a></p>`,
		)

		spell, err := goquery.NewExtractor().Extract(page)
		require.NoError(t, err)

		assert.Equal(t, 0, spell.Level)
		assert.True(t, spell.IsCantrip())
		assert.Equal(t, "Evocation", spell.School)
		assert.Equal(t, spellbook.Components{Verbal: true, Somatic: true}, spell.Components)
		assert.Nil(t, spell.MaterialComponents)
	})

	t.Run("ritual suffix stays in the school", func(t *testing.T) {
		t.Parallel()

		page := strings.Replace(fireballPage(), "3rd-level evocation", "1st-level divination (ritual)", 1)

		spell, err := goquery.NewExtractor().Extract(page)
		require.NoError(t, err)

		assert.Equal(t, 1, spell.Level)
		assert.Equal(t, "divination (ritual)", spell.School)
	})

	t.Run("material without parenthetical has no payload", func(t *testing.T) {
		t.Parallel()

		page := strings.Replace(fireballPage(), "V, S, M (a tiny ball of bat guano and sulfur)", "V, M", 1)

		spell, err := goquery.NewExtractor().Extract(page)
		require.NoError(t, err)

		assert.Equal(t, spellbook.Components{Verbal: true, Material: true}, spell.Components)
		assert.Nil(t, spell.MaterialComponents)
	})

	t.Run("material payload is the first parenthetical", func(t *testing.T) {
		t.Parallel()

		page := strings.Replace(fireballPage(), "V, S, M (a tiny ball of bat guano and sulfur)", "V, S, M (a tiny bell)", 1)

		spell, err := goquery.NewExtractor().Extract(page)
		require.NoError(t, err)

		assert.Equal(t, spellbook.Components{Verbal: true, Somatic: true, Material: true}, spell.Components)
		require.NotNil(t, spell.MaterialComponents)
		assert.Equal(t, "a tiny bell", *spell.MaterialComponents)
	})

	t.Run("material text does not set component letters", func(t *testing.T) {
		t.Parallel()

		page := strings.Replace(fireballPage(), "V, S, M (a tiny ball of bat guano and sulfur)", "V, M (Some Sand)", 1)

		spell, err := goquery.NewExtractor().Extract(page)
		require.NoError(t, err)

		assert.False(t, spell.Components.Somatic)
		require.NotNil(t, spell.MaterialComponents)
		assert.Equal(t, "Some Sand", *spell.MaterialComponents)
	})

	t.Run("marks list items and emphasis", func(t *testing.T) {
		t.Parallel()

		page := spellPage("Confusion - Spells - D&amp;D 5th Edition",
			`<p>Source: Core Rulebook</p>`,
			`<p><em>4th-level enchantment</em></p>`,
			fireballStats,
			`<p>Each creature must make a <em>Wisdom</em> saving throw.</p>`,
			`<ul>
<li>The creature uses all its movement.</li>
<li>The creature does not move.</li>
</ul>`,
			`<p><strong><em>Spell Lists.</em></strong> <a href="/spells:bard">Bard</a></p>`,
		)

		spell, err := goquery.NewExtractor().Extract(page)
		require.NoError(t, err)

		require.Len(t, spell.Description, 2)
		assert.Equal(t, "Each creature must make a *Wisdom* saving throw.", spell.Description[0])
		assert.Equal(t, "* The creature uses all its movement.\n* The creature does not move.", spell.Description[1])
		assert.Equal(t, []string{"Bard"}, spell.SpellLists)
	})

	t.Run("folds non-ASCII text and entities", func(t *testing.T) {
		t.Parallel()

		page := strings.Replace(fireballPage(),
			"A bright streak flashes from your pointing finger to a point you choose within range.",
			"The creature’s speed &amp; reach — halved.", 1)

		spell, err := goquery.NewExtractor().Extract(page)
		require.NoError(t, err)

		assert.Equal(t, "The creature's speed & reach -- halved.", spell.Description[0])
	})

	t.Run("parses tables out of the description", func(t *testing.T) {
		t.Parallel()

		page := spellPage("Prismatic Spray - Spells - D&amp;D 5th Edition",
			`<p>Source: Core Rulebook</p>`,
			`<p><em>7th-level evocation</em></p>`,
			fireballStats,
			`<p>Eight rays of light flash from your hand.</p>`,
			`<table class="wiki-content-table">
<tr>
<th>d8</th>
<th>Color</th>
</tr>
<tr>
<td>1</td>
<td>Red</td>
</tr>
</table>`,
			`<p><strong><em>Spell Lists.</em></strong> <a href="/spells:sorcerer">Sorcerer</a>, <a href="/spells:wizard">Wizard</a></p>`,
		)

		spell, err := goquery.NewExtractor().Extract(page)
		require.NoError(t, err)

		assert.Equal(t, []string{"Eight rays of light flash from your hand."}, spell.Description)
		require.Len(t, spell.Tables, 1)
		assert.Equal(t, spellbook.Table{{"d8", "Color"}, {"1", "Red"}}, spell.Tables[0])
	})

	t.Run("page without spell lists has empty lists", func(t *testing.T) {
		t.Parallel()

		page := spellPage("Fireball - Spells - D&amp;D 5th Edition",
			`<p>Source: Core Rulebook</p>`,
			`<p><em>3rd-level evocation</em></p>`,
			fireballStats,
			`<p>Boom.</p>`,
		)

		spell, err := goquery.NewExtractor().Extract(page)
		require.NoError(t, err)

		assert.Equal(t, []string{}, spell.SpellLists)
		assert.Equal(t, []string{"Boom."}, spell.Description)
	})

	t.Run("same page hashes the same", func(t *testing.T) {
		t.Parallel()

		ext := goquery.NewExtractor()
		a, err := ext.Extract(fireballPage())
		require.NoError(t, err)
		b, err := ext.Extract(fireballPage())
		require.NoError(t, err)

		assert.Equal(t, a.ContentHash, b.ContentHash)
	})
}

func TestExtractor_Extract_Unparseable(t *testing.T) {
	t.Parallel()

	assertFailure := func(t *testing.T, err error, name string) *spellbook.ParseFailure {
		t.Helper()
		require.Error(t, err)
		assert.Equal(t, spellbook.EUNPARSEABLE, spellbook.ErrorCode(err))
		var failure *spellbook.ParseFailure
		require.True(t, errors.As(err, &failure))
		assert.Equal(t, name, failure.Name)
		return failure
	}

	t.Run("stat block with five fields", func(t *testing.T) {
		t.Parallel()

		page := strings.Replace(fireballPage(),
			"<strong>Duration:</strong> Instantaneous",
			"<strong>Duration:</strong> Instantaneous<br />\n<strong>Note:</strong> extra", 1)

		spell, err := goquery.NewExtractor().Extract(page)
		assert.Nil(t, spell)
		failure := assertFailure(t, err, "Fireball")
		assert.Contains(t, failure.Reason, "stat block has 5 fields")
	})

	t.Run("stat block with three fields", func(t *testing.T) {
		t.Parallel()

		page := strings.Replace(fireballPage(), "<strong>Range:</strong> 150 feet<br />\n", "", 1)

		_, err := goquery.NewExtractor().Extract(page)
		failure := assertFailure(t, err, "Fireball")
		assert.Contains(t, failure.Reason, "stat block has 3 fields")
	})

	t.Run("title without separator", func(t *testing.T) {
		t.Parallel()

		page := strings.Replace(fireballPage(), "Fireball - Spells - D&amp;D 5th Edition", "Fireball", 1)

		_, err := goquery.NewExtractor().Extract(page)
		assertFailure(t, err, "")
	})

	t.Run("missing page content", func(t *testing.T) {
		t.Parallel()

		page := `<html><head><title>Fireball - Spells</title></head><body><p>Not found</p></body></html>`

		_, err := goquery.NewExtractor().Extract(page)
		assertFailure(t, err, "Fireball")
	})

	t.Run("level line without a digit", func(t *testing.T) {
		t.Parallel()

		page := strings.Replace(fireballPage(), "3rd-level evocation", "Third-level evocation", 1)

		_, err := goquery.NewExtractor().Extract(page)
		assertFailure(t, err, "Fireball")
	})

	t.Run("blank stat field", func(t *testing.T) {
		t.Parallel()

		page := strings.Replace(fireballPage(), "<strong>Range:</strong> 150 feet", "<strong>Range:</strong>", 1)

		_, err := goquery.NewExtractor().Extract(page)
		failure := assertFailure(t, err, "Fireball")
		assert.Contains(t, failure.Reason, "range required")
	})
}
