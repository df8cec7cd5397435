// Package history persists backup cycle outcomes to a sqlite database so
// the host can show what happened while no one was watching.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Entry is one recorded backup cycle.
type Entry struct {
	ID         int64
	StartedAt  time.Time
	Duration   time.Duration
	Mode       string
	Status     string
	SnapshotID string
	Pruned     int
	Error      string
}

// Store writes and reads cycle history.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS cycles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at TIMESTAMP NOT NULL,
	duration_ms INTEGER NOT NULL,
	mode TEXT NOT NULL,
	status TEXT NOT NULL,
	snapshot_id TEXT,
	pruned INTEGER NOT NULL DEFAULT 0,
	error TEXT
);
CREATE INDEX IF NOT EXISTS idx_cycles_started_at ON cycles(started_at);
`

// Open opens (and if needed initializes) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history db: %w", err)
	}
	return &Store{db: db}, nil
}

// Record appends one cycle entry.
func (s *Store) Record(e Entry) error {
	_, err := s.db.Exec(
		"INSERT INTO cycles (started_at, duration_ms, mode, status, snapshot_id, pruned, error) VALUES (?, ?, ?, ?, ?, ?, ?)",
		e.StartedAt, e.Duration.Milliseconds(), e.Mode, e.Status, nullString(e.SnapshotID), e.Pruned, nullString(e.Error),
	)
	if err != nil {
		return fmt.Errorf("recording cycle: %w", err)
	}
	return nil
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		"SELECT id, started_at, duration_ms, mode, status, COALESCE(snapshot_id, ''), pruned, COALESCE(error, '') FROM cycles ORDER BY started_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying cycles: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		var durationMS int64
		if err := rows.Scan(&e.ID, &e.StartedAt, &durationMS, &e.Mode, &e.Status, &e.SnapshotID, &e.Pruned, &e.Error); err != nil {
			return nil, fmt.Errorf("scanning cycle row: %w", err)
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}
