package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// It enables foreign keys on every pooled connection, waits on locks held by
// other connections instead of failing, and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS vaults (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			root_path TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			vault_id INTEGER NOT NULL,
			rel_path TEXT NOT NULL,
			folder TEXT NOT NULL,
			title TEXT,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			hash TEXT NOT NULL,
			FOREIGN KEY (vault_id) REFERENCES vaults(id),
			UNIQUE (vault_id, rel_path)
		);`,
		`CREATE TABLE IF NOT EXISTS headlines (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			note_id TEXT NOT NULL,
			headline_index INTEGER NOT NULL,
			line INTEGER NOT NULL,
			level INTEGER NOT NULL,
			keyword TEXT NOT NULL DEFAULT '',
			priority TEXT NOT NULL DEFAULT '',
			raw TEXT NOT NULL,
			path TEXT NOT NULL,
			tags TEXT NOT NULL DEFAULT '[]',
			planning TEXT NOT NULL DEFAULT '',
			properties TEXT NOT NULL DEFAULT '{}',
			FOREIGN KEY (note_id) REFERENCES notes(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS headline_tags (
			headline_id INTEGER NOT NULL,
			tag TEXT NOT NULL,
			FOREIGN KEY (headline_id) REFERENCES headlines(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_headlines_note ON headlines (note_id, headline_index);`,
		`CREATE INDEX IF NOT EXISTS idx_headlines_keyword ON headlines (keyword);`,
		`CREATE INDEX IF NOT EXISTS idx_headline_tags_tag ON headline_tags (tag);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	return nil
}

// parseDBTime parses a DATETIME value as returned by SQLite.
func parseDBTime(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		// Try alternative format (the driver may hand back RFC3339)
		t, err = time.Parse(time.RFC3339Nano, value)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", value, err)
		}
	}
	return t, nil
}
