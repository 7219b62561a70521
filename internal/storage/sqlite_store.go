package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hourlog/hourlog/internal/models"
)

// migrations are applied in order; schema_version records the last one
// applied so reopening an old database upgrades it in place.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS notes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ts TEXT NOT NULL,
		text TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notes_ts ON notes(ts)`,
}

// SQLiteStore is the database-backed note log, selected when the notes
// path ends in .db. The flat text file remains the default format.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create notes directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return err
	}

	var version int
	err := s.db.QueryRow(`SELECT version FROM schema_version`).Scan(&version)
	switch {
	case err == sql.ErrNoRows:
		if _, err := s.db.Exec(`INSERT INTO schema_version (version) VALUES (0)`); err != nil {
			return err
		}
	case err != nil:
		return err
	}

	for i := version; i < len(migrations); i++ {
		if _, err := s.db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if _, err := s.db.Exec(`UPDATE schema_version SET version = ?`, i+1); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) ensureOpen() error {
	if s.db != nil {
		return nil
	}
	return s.Init()
}

func (s *SQLiteStore) Append(note models.Note) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}

	_, err := s.db.Exec(`INSERT INTO notes (ts, text) VALUES (?, ?)`,
		note.Time.UTC().Format(time.RFC3339), note.Text)
	if err != nil {
		return fmt.Errorf("failed to append note: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ForDay(day string, loc *time.Location) ([]models.Note, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}

	// Day boundaries are local; timestamps are stored as UTC RFC3339,
	// which compares correctly as text within the fixed format.
	start, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid day %q: %w", day, err)
	}
	end := start.AddDate(0, 0, 1)

	rows, err := s.db.Query(
		`SELECT ts, text FROM notes WHERE ts >= ? AND ts < ? ORDER BY ts ASC`,
		start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

func (s *SQLiteStore) Recent(n int) ([]models.Note, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`SELECT ts, text FROM notes ORDER BY ts DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

func (s *SQLiteStore) Path() string {
	return s.path
}

func scanNotes(rows *sql.Rows) ([]models.Note, error) {
	var notes []models.Note
	for rows.Next() {
		var ts, text string
		if err := rows.Scan(&ts, &text); err != nil {
			return notes, fmt.Errorf("failed to scan note: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			// Tolerate rows written by other tools; skip what we
			// cannot interpret.
			continue
		}
		notes = append(notes, models.Note{Time: parsed, Text: text})
	}
	return notes, rows.Err()
}
