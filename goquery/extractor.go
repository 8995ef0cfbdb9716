// Package goquery extracts spells from wiki pages using goquery.
package goquery

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/spellbook"
	"github.com/mozillazg/go-unidecode"
	"golang.org/x/net/html"
)

// Ensure Extractor implements spellbook.Extractor at compile time.
var _ spellbook.Extractor = (*Extractor)(nil)

// Page layout of a wiki spell page. Field labels are removed by length.
const (
	titleSeparator   = " - "
	sourcePrefix     = len("Source: ")
	castingPrefix    = len("Casting Time: ")
	rangePrefix      = len("Range: ")
	componentsPrefix = len("Components: ")
	durationPrefix   = len("Duration: ")
	spellListsPrefix = len("Spell Lists. ")
	spellListsMarker = "Spell Lists"
	statBlockFields  = 4

	higherLevels        = "*At Higher Levels.* "
	higherLevelsHeading = "\x1b[1mAt Higher Levels.\x1b[0m\n"
)

var (
	emphasisTag     = regexp.MustCompile(`<.?em>`)
	anyTag          = regexp.MustCompile(`<[^>]*>`)
	materialPayload = regexp.MustCompile(`\((.*?)\)`)
)

// Extractor parses dnd5e wikidot spell pages.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses one spell page.
//
// The page content is expected to hold, in order, a source line, a
// level/school line, a four-line stat block, and any number of body
// blocks (paragraphs, lists, tables and the spell list line).
func (e *Extractor) Extract(raw string) (*spellbook.Spell, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, &spellbook.ParseFailure{Reason: fmt.Sprintf("parse HTML: %v", err)}
	}

	name, ok := titleName(doc.Find("title").First().Text())
	if !ok {
		return nil, &spellbook.ParseFailure{Reason: "title has no spell name"}
	}

	blocks := contentBlocks(doc.Find("div#page-content").First())
	if len(blocks) < 3 {
		return nil, &spellbook.ParseFailure{
			Name:   name,
			Reason: fmt.Sprintf("page has %d content blocks, want at least 3", len(blocks)),
		}
	}

	spell := &spellbook.Spell{
		Name:        name,
		Source:      strings.TrimSpace(cut(blocks[0].Text(), sourcePrefix)),
		Description: []string{},
		Tables:      []spellbook.Table{},
		SpellLists:  []string{},
		ContentHash: hashContent(raw),
	}

	if err := parseLevel(spell, blocks[1].Text()); err != nil {
		return nil, &spellbook.ParseFailure{Name: name, Reason: err.Error()}
	}

	if err := parseStatBlock(spell, blocks[2].Text()); err != nil {
		return nil, &spellbook.ParseFailure{Name: name, Reason: err.Error()}
	}

	for _, block := range blocks[3:] {
		text := block.Text()
		switch {
		case strings.Contains(text, spellListsMarker):
			spell.SpellLists = parseSpellLists(text)
		case block.Is("table") || block.Find("table").Length() > 0:
			spell.Tables = append(spell.Tables, parseTable(text))
		default:
			paragraph, err := parseParagraph(block)
			if err != nil {
				return nil, &spellbook.ParseFailure{Name: name, Reason: err.Error()}
			}
			spell.Description = append(spell.Description, paragraph)
		}
	}

	if err := spell.Validate(); err != nil {
		return nil, &spellbook.ParseFailure{Name: name, Reason: spellbook.ErrorMessage(err)}
	}

	return spell, nil
}

// titleName returns the part of the page title before the first separator.
func titleName(title string) (string, bool) {
	idx := strings.Index(title, titleSeparator)
	if idx < 0 {
		return "", false
	}
	name := strings.TrimSpace(title[:idx])
	return name, name != ""
}

// contentBlocks returns the child nodes of the page content, without
// blank text nodes and comments, and without the leading separator and
// trailing footer nodes the wiki wraps every page in.
func contentBlocks(content *goquery.Selection) []*goquery.Selection {
	var blocks []*goquery.Selection
	content.Contents().Each(func(_ int, s *goquery.Selection) {
		n := s.Get(0)
		switch n.Type {
		case html.CommentNode:
			return
		case html.TextNode:
			if strings.TrimSpace(n.Data) == "" {
				return
			}
		}
		blocks = append(blocks, s)
	})
	if len(blocks) < 2 {
		return nil
	}
	return blocks[1 : len(blocks)-1]
}

// parseLevel reads lines such as "3rd-level evocation" or "Evocation cantrip".
func parseLevel(spell *spellbook.Spell, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return fmt.Errorf("empty level line")
	}

	if strings.Contains(strings.ToLower(line), "cantrip") {
		spell.Level = 0
		spell.School = strings.Split(line, " ")[0]
		return nil
	}

	level, err := strconv.Atoi(line[:1])
	if err != nil {
		return fmt.Errorf("level line %q does not start with a digit", line)
	}
	spell.Level = level

	if _, school, ok := strings.Cut(line, " "); ok {
		spell.School = strings.TrimSpace(school)
	}
	return nil
}

// parseStatBlock reads the casting time, range, components and duration lines.
func parseStatBlock(spell *spellbook.Spell, text string) error {
	fields := strings.Split(text, "\n")
	if len(fields) != statBlockFields {
		return fmt.Errorf("stat block has %d fields, want %d", len(fields), statBlockFields)
	}

	spell.CastingTime = strings.TrimSpace(cut(fields[0], castingPrefix))
	spell.Range = strings.TrimSpace(cut(fields[1], rangePrefix))
	spell.Duration = strings.TrimSpace(cut(fields[3], durationPrefix))

	components := strings.TrimSpace(cut(fields[2], componentsPrefix))
	spell.Components, spell.MaterialComponents = parseComponents(components)
	return nil
}

// parseComponents reads a line such as "V, S, M (a tiny bell)".
// Letters are only looked for ahead of the material parenthetical.
func parseComponents(line string) (spellbook.Components, *string) {
	letters, _, _ := strings.Cut(line, "(")
	c := spellbook.Components{
		Verbal:   strings.Contains(letters, "V"),
		Somatic:  strings.Contains(letters, "S"),
		Material: strings.Contains(letters, "M"),
	}
	if !c.Material {
		return c, nil
	}
	m := materialPayload.FindStringSubmatch(line)
	if m == nil {
		return c, nil
	}
	payload := strings.TrimSpace(m[1])
	return c, &payload
}

// parseSpellLists reads a line such as "Spell Lists. Sorcerer, Wizard".
func parseSpellLists(text string) []string {
	lists := []string{}
	for _, name := range strings.Split(cut(strings.TrimSpace(text), spellListsPrefix), ", ") {
		if name = strings.TrimSpace(name); name != "" {
			lists = append(lists, name)
		}
	}
	return lists
}

// parseTable splits table text into rows on blank-line runs and into
// cells on single newlines.
func parseTable(text string) spellbook.Table {
	table := spellbook.Table{}
	for _, chunk := range strings.Split(text, "\n\n\n") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		table = append(table, strings.Split(chunk, "\n"))
	}
	return table
}

// parseParagraph flattens a body block to ASCII text, marking emphasis
// and list items with "*".
func parseParagraph(block *goquery.Selection) (string, error) {
	markup, err := goquery.OuterHtml(block)
	if err != nil {
		return "", fmt.Errorf("render paragraph: %w", err)
	}

	text := emphasisTag.ReplaceAllString(markup, "*")
	text = strings.ReplaceAll(text, "<li>", "* ")
	text = anyTag.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	text = unidecode.Unidecode(text)
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, higherLevels, higherLevelsHeading)
	return text, nil
}

// cut drops the first n bytes of s, returning "" when s is shorter.
func cut(s string, n int) string {
	if len(s) < n {
		return ""
	}
	return s[n:]
}

// hashContent computes the xxHash of a raw page as a hex string.
func hashContent(raw string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(raw))
}
