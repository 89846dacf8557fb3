package internal

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	pageCacheFile = "archive.db"
	dayLayout     = "2006-01-02"
)

// PageCache stores archive pages of completed days in SQLite
type PageCache struct {
	db   *sql.DB
	path string
}

// CachedPage describes one cached archive page
type CachedPage struct {
	Channel   string    `json:"channel" yaml:"channel"`
	Day       time.Time `json:"day" yaml:"day"`
	Size      int       `json:"size" yaml:"size"`
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`
}

// OpenPageCache opens (or creates) the page cache inside dir
func OpenPageCache(dir string) (*PageCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &StorageError{Path: dir, Op: "open", Err: err}
	}
	path := filepath.Join(dir, pageCacheFile)
	db, err := OpenDatabase(path)
	if err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}
	cache, err := NewPageCache(db, path)
	if err != nil {
		db.Close()
		return nil, err
	}
	return cache, nil
}

// NewPageCache wraps an open database, creating the schema if needed
func NewPageCache(db *sql.DB, path string) (*PageCache, error) {
	if err := migrateDatabase(db); err != nil {
		return nil, &StorageError{Path: path, Op: "migrate", Err: err}
	}
	return &PageCache{db: db, path: path}, nil
}

// Path returns the database location
func (pc *PageCache) Path() string {
	return pc.path
}

// Get returns the cached page of channel for day, if any
func (pc *PageCache) Get(channel string, day time.Time) (string, bool, error) {
	var body string
	err := pc.db.QueryRow(
		"SELECT body FROM archive_pages WHERE channel = ? AND day = ?",
		channel, day.UTC().Format(dayLayout),
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StorageError{Path: pc.path, Op: "read", Err: err}
	}
	return body, true, nil
}

// Put stores the page of channel for day, replacing any previous copy
func (pc *PageCache) Put(channel string, day time.Time, body string) error {
	_, err := pc.db.Exec(
		"INSERT OR REPLACE INTO archive_pages (channel, day, body, fetched_at) VALUES (?, ?, ?, ?)",
		channel, day.UTC().Format(dayLayout), body, time.Now().Unix(),
	)
	if err != nil {
		return &StorageError{Path: pc.path, Op: "write", Err: err}
	}
	return nil
}

// List returns all cached pages ordered by channel and day
func (pc *PageCache) List() ([]CachedPage, error) {
	rows, err := pc.db.Query(
		"SELECT channel, day, length(body), fetched_at FROM archive_pages ORDER BY channel, day",
	)
	if err != nil {
		return nil, &StorageError{Path: pc.path, Op: "read", Err: err}
	}
	defer rows.Close()

	var pages []CachedPage
	for rows.Next() {
		var (
			page      CachedPage
			day       string
			fetchedAt int64
		)
		if err := rows.Scan(&page.Channel, &day, &page.Size, &fetchedAt); err != nil {
			return nil, &StorageError{Path: pc.path, Op: "read", Err: fmt.Errorf("scan failed: %w", err)}
		}
		page.Day, err = time.Parse(dayLayout, day)
		if err != nil {
			LogWarn("Skipping cached page with bad day %q: %v", day, err)
			continue
		}
		page.FetchedAt = time.Unix(fetchedAt, 0)
		pages = append(pages, page)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Path: pc.path, Op: "read", Err: fmt.Errorf("rows iteration error: %w", err)}
	}
	return pages, nil
}

// Clear removes every cached page and returns how many were removed
func (pc *PageCache) Clear() (int64, error) {
	res, err := pc.db.Exec("DELETE FROM archive_pages")
	if err != nil {
		return 0, &StorageError{Path: pc.path, Op: "clear", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &StorageError{Path: pc.path, Op: "clear", Err: err}
	}
	return n, nil
}

// Close closes the underlying database
func (pc *PageCache) Close() error {
	return pc.db.Close()
}
