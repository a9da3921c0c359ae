// Package store persists detected events in a local SQLite database.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // CGO-free SQLite

	"github.com/pymovements/pymovements/internal/events"
)

// Store is a SQLite-backed event archive. Events are grouped by recording:
// one recording per processed input, identified by a UUID.
type Store struct {
	db *sql.DB
}

// Recording identifies one processed gaze input.
type Recording struct {
	ID           string
	CreatedUTC   int64
	Source       string
	SamplingRate float64
}

// Open opens (or creates) the database at path and ensures the schema
// exists. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	// WAL + busy timeout to avoid "database is locked"
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS recordings(
	  id            TEXT    PRIMARY KEY,
	  created_utc   INTEGER NOT NULL,
	  source        TEXT    NOT NULL,
	  sampling_rate REAL    NOT NULL
	);
	CREATE TABLE IF NOT EXISTS events(
	  id           INTEGER PRIMARY KEY,
	  recording_id TEXT    NOT NULL REFERENCES recordings(id),
	  name         TEXT    NOT NULL,
	  onset        INTEGER NOT NULL,
	  "offset"     INTEGER NOT NULL,
	  duration     INTEGER NOT NULL,
	  CHECK (onset <= "offset")
	);
	CREATE INDEX IF NOT EXISTS idx_events_recording ON events(recording_id);
	CREATE INDEX IF NOT EXISTS idx_events_name      ON events(name);
	`)
	if err != nil {
		return fmt.Errorf("failed to create database tables: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateRecording registers a new recording and returns it with a fresh ID.
func (s *Store) CreateRecording(source string, samplingRate float64) (Recording, error) {
	if samplingRate <= 0 {
		return Recording{}, fmt.Errorf("sampling rate must be positive, got %v", samplingRate)
	}

	rec := Recording{
		ID:           uuid.NewString(),
		CreatedUTC:   time.Now().UTC().Unix(),
		Source:       source,
		SamplingRate: samplingRate,
	}
	_, err := s.db.Exec(
		`INSERT INTO recordings(id, created_utc, source, sampling_rate) VALUES(?, ?, ?, ?)`,
		rec.ID, rec.CreatedUTC, rec.Source, rec.SamplingRate,
	)
	if err != nil {
		return Recording{}, fmt.Errorf("failed to insert recording: %w", err)
	}
	return rec, nil
}

// InsertEvents stores events under a recording in one transaction. Events
// are validated before any row is written.
func (s *Store) InsertEvents(recordingID string, evs events.List) error {
	for i, e := range evs {
		if e.Name == "" {
			return fmt.Errorf("event %d has an empty name", i)
		}
		if e.Onset > e.Offset {
			return fmt.Errorf("event %d (%q) onset %d is after offset %d", i, e.Name, e.Onset, e.Offset)
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO events(recording_id, name, onset, "offset", duration) VALUES(?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range evs {
		if _, err := stmt.Exec(recordingID, e.Name, e.Onset, e.Offset, e.Duration()); err != nil {
			return fmt.Errorf("failed to insert event %q [%d, %d]: %w", e.Name, e.Onset, e.Offset, err)
		}
	}
	return tx.Commit()
}

// Events returns the events of a recording in insertion order. A non-empty
// name restricts the result to that event type.
func (s *Store) Events(recordingID, name string) (events.List, error) {
	query := `SELECT name, onset, "offset" FROM events WHERE recording_id = ?`
	args := []any{recordingID}
	if name != "" {
		query += ` AND name = ?`
		args = append(args, name)
	}
	query += ` ORDER BY id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var evs events.List
	for rows.Next() {
		var e events.Event
		if err := rows.Scan(&e.Name, &e.Onset, &e.Offset); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		evs = append(evs, e)
	}
	return evs, rows.Err()
}

// Recordings returns all recordings, newest first.
func (s *Store) Recordings() ([]Recording, error) {
	rows, err := s.db.Query(
		`SELECT id, created_utc, source, sampling_rate FROM recordings ORDER BY created_utc DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recordings: %w", err)
	}
	defer rows.Close()

	var recs []Recording
	for rows.Next() {
		var r Recording
		if err := rows.Scan(&r.ID, &r.CreatedUTC, &r.Source, &r.SamplingRate); err != nil {
			return nil, fmt.Errorf("failed to scan recording: %w", err)
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}
