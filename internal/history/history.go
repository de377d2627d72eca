// Package history keeps a local log of everything published, for auditing
// with the history command. Generation and fetching never consult it.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one successful publish.
type Entry struct {
	ID        int64
	Kind      string // "post", "comment" or "reply"
	Digest    string
	RemoteID  string
	RemoteURL string
	PostedAt  time.Time
}

// Store is a sqlite-backed publish log.
type Store struct {
	conn *sql.DB
}

// DefaultPath places the database next to the artifact files.
func DefaultPath() string {
	if path := os.Getenv("SOCIALMON_HISTORY"); path != "" {
		return path
	}
	return filepath.Join("output", "history.db")
}

func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS published (
		id INTEGER PRIMARY KEY,
		kind TEXT NOT NULL,
		digest TEXT NOT NULL,
		remote_id TEXT NOT NULL,
		remote_url TEXT,
		posted_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_published_posted ON published(posted_at DESC);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Record appends one publish to the log.
func (s *Store) Record(kind, digest, remoteID, remoteURL string, postedAt time.Time) error {
	_, err := s.conn.Exec(
		`INSERT INTO published (kind, digest, remote_id, remote_url, posted_at) VALUES (?, ?, ?, ?, ?)`,
		kind, digest, remoteID, remoteURL, postedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record publish: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first.
func (s *Store) List(limit int) ([]Entry, error) {
	rows, err := s.conn.Query(`
		SELECT id, kind, digest, remote_id, COALESCE(remote_url, ''), posted_at
		FROM published
		ORDER BY posted_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Digest, &e.RemoteID, &e.RemoteURL, &e.PostedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
