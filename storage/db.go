// Package storage keeps a sqlite journal of handled commands for the
// dashboard and usage statistics. Clipboard slots themselves are never
// persisted.
package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"
)

type DB struct {
	conn *sql.DB
}

// Open opens the database and initializes the schema
func Open(dataDir string) (*DB, error) {
	dbPath := filepath.Join(dataDir, "clipdeck.db")

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the database schema
func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS command_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,

		command TEXT NOT NULL,
		slot INTEGER NOT NULL,
		char_count INTEGER NOT NULL,

		success BOOLEAN NOT NULL,
		detail TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_command_runs_timestamp ON command_runs(timestamp);
	CREATE INDEX IF NOT EXISTS idx_command_runs_command ON command_runs(command);
	`

	_, err := db.conn.Exec(schema)
	return err
}
