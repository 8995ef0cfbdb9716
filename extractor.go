package spellbook

import "fmt"

// Extractor parses one raw spell page into a Spell.
type Extractor interface {
	// Extract parses raw page HTML.
	// Pages that do not have the expected block structure are reported
	// as a *ParseFailure, which carries the EUNPARSEABLE code.
	Extract(raw string) (*Spell, error)
}

// ParseFailure reports a page that could not be decomposed into a Spell.
// Name is empty when the failure happened before the title was read.
type ParseFailure struct {
	Name   string
	Reason string
}

// Error implements the error interface.
func (f *ParseFailure) Error() string {
	if f.Name == "" {
		return fmt.Sprintf("unparseable page: %s", f.Reason)
	}
	return fmt.Sprintf("unparseable page %q: %s", f.Name, f.Reason)
}

// Unwrap exposes the failure as an EUNPARSEABLE application error.
func (f *ParseFailure) Unwrap() error {
	return Errorf(EUNPARSEABLE, "%s", f.Reason)
}
