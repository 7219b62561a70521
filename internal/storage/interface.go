package storage

import (
	"time"

	"github.com/hourlog/hourlog/internal/models"
)

// NoteStore is an append-only log of activity notes, queryable by calendar
// day. Implementations must tolerate backdated appends (reconciled notes
// carry the boundary they describe, not the instant they were typed) and
// must never mutate or delete existing records.
type NoteStore interface {
	// Lifecycle
	Init() error
	Close() error

	// Records
	Append(models.Note) error
	ForDay(day string, loc *time.Location) ([]models.Note, error)
	Recent(n int) ([]models.Note, error)

	// Utils
	Path() string
}
