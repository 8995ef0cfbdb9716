package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/spellbook"
	"github.com/fwojciec/spellbook/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Atomic Page Archive
// The archive uses a temp directory so a failed scrape never clobbers the last good one.

func TestArchive_SaveWritesToTempDirectory(t *testing.T) {
	t.Parallel()

	// Given an archive targeting a directory
	base := t.TempDir()
	archive := fs.NewArchive(base, "pages")

	// When I save a page
	err := archive.Save(context.Background(), &spellbook.Document{
		Slug: "fireball",
		URL:  "http://dnd5e.wikidot.com/spell:fireball",
		HTML: "<html>fireball</html>",
	})

	// Then no error occurs
	require.NoError(t, err)

	// And the raw HTML exists in the temp directory
	content, err := os.ReadFile(filepath.Join(base, "pages.tmp", "fireball.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html>fireball</html>", string(content))

	// And the final directory does not exist yet
	_, err = os.Stat(filepath.Join(base, "pages"))
	assert.True(t, os.IsNotExist(err), "final directory should not exist until commit")
}

func TestArchive_CommitReplacesPreviousArchive(t *testing.T) {
	t.Parallel()

	// Given a committed archive with an old page
	base := t.TempDir()
	archive := fs.NewArchive(base, "pages")
	ctx := context.Background()
	require.NoError(t, archive.Save(ctx, &spellbook.Document{Slug: "old", HTML: "old"}))
	require.NoError(t, archive.Commit())

	// When a new scrape saves a different page and commits
	require.NoError(t, archive.Save(ctx, &spellbook.Document{Slug: "new", HTML: "new"}))
	require.NoError(t, archive.Commit())

	// Then only the new page remains
	docs, err := archive.Documents(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "new", docs[0].Slug)

	// And the temp directory is gone
	_, err = os.Stat(filepath.Join(base, "pages.tmp"))
	assert.True(t, os.IsNotExist(err), "temp directory should be removed after commit")
}

func TestArchive_CommitWithoutPagesFails(t *testing.T) {
	t.Parallel()

	// Given an archive with nothing saved
	archive := fs.NewArchive(t.TempDir(), "pages")

	// When I commit
	err := archive.Commit()

	// Then it fails rather than wiping the archive
	require.Error(t, err)
}

func TestArchive_AbortKeepsPreviousArchive(t *testing.T) {
	t.Parallel()

	// Given a committed archive and a pending page
	base := t.TempDir()
	archive := fs.NewArchive(base, "pages")
	ctx := context.Background()
	require.NoError(t, archive.Save(ctx, &spellbook.Document{Slug: "shield", HTML: "shield"}))
	require.NoError(t, archive.Commit())
	require.NoError(t, archive.Save(ctx, &spellbook.Document{Slug: "aid", HTML: "aid"}))

	// When I abort
	err := archive.Abort()

	// Then the pending pages are gone
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "pages.tmp"))
	assert.True(t, os.IsNotExist(err), "temp directory should be removed after abort")

	// And the committed archive is untouched
	docs, err := archive.Documents(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "shield", docs[0].Slug)
}

func TestArchive_DocumentsOrderedByFileName(t *testing.T) {
	t.Parallel()

	// Given pages saved out of order, plus a stray file
	base := t.TempDir()
	archive := fs.NewArchive(base, "pages")
	ctx := context.Background()
	for _, slug := range []string{"wish", "aid", "fireball"} {
		require.NoError(t, archive.Save(ctx, &spellbook.Document{Slug: slug, HTML: "<p>" + slug + "</p>"}))
	}
	require.NoError(t, os.WriteFile(filepath.Join(base, "pages.tmp", "notes.txt"), []byte("x"), 0644))
	require.NoError(t, archive.Commit())

	// When I read the archive
	docs, err := archive.Documents(ctx)

	// Then pages come back sorted with their content
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "aid", docs[0].Slug)
	assert.Equal(t, "fireball", docs[1].Slug)
	assert.Equal(t, "wish", docs[2].Slug)
	assert.Equal(t, "<p>aid</p>", docs[0].HTML)
	assert.Equal(t, filepath.Join(base, "pages", "aid.html"), docs[0].URL)
}

func TestArchive_DocumentsWithoutArchive(t *testing.T) {
	t.Parallel()

	// Given no committed archive
	archive := fs.NewArchive(t.TempDir(), "pages")

	// When I read it
	docs, err := archive.Documents(context.Background())

	// Then it reports not found
	assert.Nil(t, docs)
	assert.Equal(t, spellbook.ENOTFOUND, spellbook.ErrorCode(err))
}

func TestArchive_SaveRejectsEmptyPage(t *testing.T) {
	t.Parallel()

	archive := fs.NewArchive(t.TempDir(), "pages")

	err := archive.Save(context.Background(), &spellbook.Document{Slug: "aid"})

	assert.Equal(t, spellbook.EINVALID, spellbook.ErrorCode(err))
}

func TestFileName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "fireball.html", fs.FileName("fireball"))
	assert.Equal(t, "a_b.html", fs.FileName("a/b"))
}
