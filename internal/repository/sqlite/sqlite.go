// Package sqlite implements the repository interfaces on SQLite.
//
// Two tables live here, used by different binaries:
//   - recent_snippets: the CLI's local index of recently created snippets
//   - blobs: storage for blobd, the self-hostable blob service
//
// modernc.org/sqlite is a pure-Go translation of SQLite — no CGo, no C
// compiler, cross-compiles everywhere Go does. The blank import below
// registers it with database/sql under the driver name "sqlite".
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides the repository methods.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" for throwaway databases in tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Surface a bad path or permissions problem now rather than on the
	// first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight. The CLI is
	// effectively single-writer, but blobd serves concurrent requests.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}
	return db, nil
}

// Close closes the connection pool. Callers should defer this right after New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the tables. CREATE TABLE IF NOT EXISTS keeps this
// idempotent, so it is safe to run on every start.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS recent_snippets (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			blob_id    TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_recent_snippets_created_at ON recent_snippets(created_at);
		CREATE INDEX IF NOT EXISTS idx_recent_snippets_blob_id ON recent_snippets(blob_id);
	`)
	if err != nil {
		return fmt.Errorf("creating recent_snippets table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS blobs (
			id         TEXT PRIMARY KEY,
			content    TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating blobs table: %w", err)
	}

	return nil
}
