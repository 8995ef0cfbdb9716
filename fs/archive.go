// Package fs keeps raw wiki pages on disk.
package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/spellbook"
)

// Ext is the file extension of archived pages.
const Ext = ".html"

// Ensure Archive implements spellbook.DocumentArchive at compile time.
var _ spellbook.DocumentArchive = (*Archive)(nil)

// Archive implements spellbook.DocumentArchive with atomic update semantics.
// Pages are saved to a temporary directory, then moved into place on Commit.
type Archive struct {
	baseDir string
	name    string
}

// NewArchive creates a new Archive.
// baseDir is the parent directory, name is the archive directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewArchive(baseDir, name string) *Archive {
	return &Archive{
		baseDir: baseDir,
		name:    name,
	}
}

func (a *Archive) tempDir() string {
	return filepath.Join(a.baseDir, a.name+".tmp")
}

func (a *Archive) finalDir() string {
	return filepath.Join(a.baseDir, a.name)
}

// FileName returns the archive file name for a slug.
// Example: spell:fire/bolt → spell:fire_bolt.html
func FileName(slug string) string {
	return strings.ReplaceAll(slug, "/", "_") + Ext
}

// Save writes the raw page to the pending archive.
func (a *Archive) Save(ctx context.Context, doc *spellbook.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(a.tempDir(), 0755); err != nil {
		return err
	}

	path := filepath.Join(a.tempDir(), FileName(doc.Slug))
	return os.WriteFile(path, []byte(doc.HTML), 0644)
}

// Commit replaces the archive with the pending pages.
func (a *Archive) Commit() error {
	if _, err := os.Stat(a.tempDir()); err != nil {
		return fmt.Errorf("nothing to commit: %w", err)
	}

	if err := os.RemoveAll(a.finalDir()); err != nil {
		return err
	}

	return os.Rename(a.tempDir(), a.finalDir())
}

// Abort discards the pending pages.
func (a *Archive) Abort() error {
	return os.RemoveAll(a.tempDir())
}

// Documents reads every committed page, ordered by file name.
func (a *Archive) Documents(ctx context.Context) ([]*spellbook.Document, error) {
	entries, err := os.ReadDir(a.finalDir())
	if errors.Is(err, os.ErrNotExist) {
		return nil, spellbook.Errorf(spellbook.ENOTFOUND, "no archived pages in %s", a.finalDir())
	}
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Ext) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	docs := make([]*spellbook.Document, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(a.finalDir(), name)
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, &spellbook.Document{
			Slug: strings.TrimSuffix(name, Ext),
			URL:  path,
			HTML: string(b),
		})
	}

	return docs, nil
}
