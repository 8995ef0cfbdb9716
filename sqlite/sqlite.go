// Package sqlite provides SQLite-based storage implementations for spellbook services.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time; the import commits each spell on its own.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// Reset drops the spell table and recreates the schema.
func (db *DB) Reset(ctx context.Context) error {
	if _, err := db.db.ExecContext(ctx, "DROP TABLE IF EXISTS spells"); err != nil {
		return fmt.Errorf("failed to drop spells: %w", err)
	}
	return db.createSchema()
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS spells (
			name TEXT PRIMARY KEY NOT NULL CHECK (trim(name, ' ') != ''),
			level INTEGER NOT NULL CHECK (level > -1),
			school TEXT NOT NULL CHECK (trim(school, ' ') != ''),
			source TEXT NOT NULL CHECK (trim(source, ' ') != ''),
			casting_time TEXT NOT NULL CHECK (trim(casting_time, ' ') != ''),
			s_range TEXT NOT NULL CHECK (trim(s_range, ' ') != ''),
			verbal BOOLEAN NOT NULL,
			somatic BOOLEAN NOT NULL,
			material BOOLEAN NOT NULL,
			material_components TEXT,
			duration TEXT NOT NULL CHECK (trim(duration, ' ') != ''),
			description TEXT NOT NULL DEFAULT '[]',
			tables TEXT NOT NULL DEFAULT '[]',
			spell_lists TEXT NOT NULL DEFAULT '[]',
			content_hash TEXT NOT NULL DEFAULT ''
		);

		CREATE UNIQUE INDEX IF NOT EXISTS idx_spells_name_nocase ON spells(lower(name));
	`

	_, err := db.db.Exec(schema)
	return err
}
