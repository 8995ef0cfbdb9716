package spellbook

import "context"

// Document is one raw spell page as fetched from the wiki.
type Document struct {
	Slug string

	// URL is where the page was fetched from, or the file path for pages
	// read back from an archive.
	URL  string
	HTML string
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.Slug == "" {
		return Errorf(EINVALID, "document slug required")
	}
	if d.HTML == "" {
		return Errorf(EINVALID, "document %q has no content", d.Slug)
	}
	return nil
}

// DocumentArchive keeps raw pages on disk so the store can be rebuilt
// without hitting the network. Save writes to a pending location; Commit
// replaces the archive with the pending pages; Abort discards them.
type DocumentArchive interface {
	Save(ctx context.Context, doc *Document) error
	Commit() error
	Abort() error

	// Documents returns the committed pages ordered by slug.
	Documents(ctx context.Context) ([]*Document, error)
}
