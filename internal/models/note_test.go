package models

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestNewNoteTrimsText(t *testing.T) {
	at := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	note, ok := NewNote(at, "  fixed the build  ")
	if !ok {
		t.Fatal("expected note to be created")
	}
	if note.Text != "fixed the build" {
		t.Errorf("expected trimmed text, got %q", note.Text)
	}
	if !note.Time.Equal(at) {
		t.Errorf("expected time %v, got %v", at, note.Time)
	}
}

func TestNewNoteRejectsEmpty(t *testing.T) {
	if _, ok := NewNote(time.Now(), "   "); ok {
		t.Error("expected whitespace-only text to be rejected")
	}
	if _, ok := NewNote(time.Now(), ""); ok {
		t.Error("expected empty text to be rejected")
	}
}

func TestPreviewKeepsShortText(t *testing.T) {
	if got := Preview("fixed the build", 50); got != "fixed the build" {
		t.Errorf("expected text unchanged, got %q", got)
	}
}

func TestPreviewTruncatesOnRuneBoundary(t *testing.T) {
	// Each rune here is multiple bytes; a byte-indexed cut would split one.
	text := strings.Repeat("työpäivä ", 10)
	got := Preview(text, 50)

	if !utf8.ValidString(got) {
		t.Fatalf("preview is not valid UTF-8: %q", got)
	}
	if n := len([]rune(got)); n != 50 {
		t.Errorf("expected 50 runes, got %d", n)
	}
	if !strings.HasPrefix(text, got) {
		t.Errorf("preview %q is not a prefix of the text", got)
	}
}

func TestNoteDayUsesLocation(t *testing.T) {
	// 23:30 UTC on the 10th is already the 11th at UTC+2.
	at := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)
	note, _ := NewNote(at, "late note")

	if got := note.Day(time.UTC); got != "2025-03-10" {
		t.Errorf("expected UTC day 2025-03-10, got %q", got)
	}
	if got := note.Day(time.FixedZone("UTC+2", 2*3600)); got != "2025-03-11" {
		t.Errorf("expected local day 2025-03-11, got %q", got)
	}
}
