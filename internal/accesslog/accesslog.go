// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package accesslog records handled search requests in a SQLite database.
// Only request metadata is stored; result items are never persisted.
package accesslog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const defaultRecentLimit = 20

// Record is one handled request.
type Record struct {
	Time     time.Time     `json:"time" yaml:"time"`
	Method   string        `json:"method" yaml:"method"`
	Query    string        `json:"query" yaml:"query"`
	Status   int           `json:"status" yaml:"status"`
	Items    int           `json:"items" yaml:"items"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Store manages the access log database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the access log at path and creates the schema if it
// does not exist.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating access log directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS requests (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts TEXT NOT NULL,
			method TEXT NOT NULL,
			query TEXT NOT NULL,
			status INTEGER NOT NULL,
			items INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_requests_ts ON requests(ts)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one request.
func (s *Store) Record(ctx context.Context, r Record) error {
	if r.Time.IsZero() {
		r.Time = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO requests (ts, method, query, status, items, duration_ms) VALUES (?, ?, ?, ?, ?, ?)`,
		r.Time.UTC().Format(time.RFC3339Nano), r.Method, r.Query, r.Status, r.Items, r.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("inserting access record: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first. A non-positive limit
// uses the default of 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT ts, method, query, status, items, duration_ms FROM requests ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying access log: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r     Record
			ts    string
			durMS int64
		)
		if err := rows.Scan(&ts, &r.Method, &r.Query, &r.Status, &r.Items, &durMS); err != nil {
			return nil, fmt.Errorf("scanning access record: %w", err)
		}
		r.Time, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp %q: %w", ts, err)
		}
		r.Duration = time.Duration(durMS) * time.Millisecond
		records = append(records, r)
	}
	return records, rows.Err()
}
