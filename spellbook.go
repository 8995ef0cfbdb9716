// Package spellbook provides a local, CLI-based spell reference.
// It scrapes the spell pages of a public wiki, extracts them into
// structured records, stores them in SQLite, and looks spells up by
// approximate name for display in a terminal.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, levenshtein/).
package spellbook
