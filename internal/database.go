package internal

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const pageCacheSchema = `
CREATE TABLE IF NOT EXISTS archive_pages (
	channel    TEXT    NOT NULL,
	day        TEXT    NOT NULL,
	body       TEXT    NOT NULL,
	fetched_at INTEGER NOT NULL,
	PRIMARY KEY (channel, day)
)`

// OpenDatabase opens the SQLite database at path, creating it if needed
func OpenDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

// migrateDatabase creates the page cache table if it does not exist
func migrateDatabase(db *sql.DB) error {
	if _, err := db.Exec(pageCacheSchema); err != nil {
		return fmt.Errorf("failed to create archive_pages table: %w", err)
	}
	return nil
}
