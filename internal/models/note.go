package models

import (
	"strings"
	"time"
)

// Note is a single timestamped activity record. Notes are append-only:
// once written they are never edited or deleted by the core.
type Note struct {
	Time time.Time `json:"time"`
	Text string    `json:"text"`
}

// NewNote trims the text and stamps the note with the given instant.
// Returns ok=false when the trimmed text is empty (declined prompts
// and blank submissions produce no record).
func NewNote(at time.Time, text string) (Note, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Note{}, false
	}
	return Note{Time: at, Text: text}, true
}

// Day returns the note's local calendar date in YYYY-MM-DD form.
func (n Note) Day(loc *time.Location) string {
	return n.Time.In(loc).Format("2006-01-02")
}

// Preview shortens s to at most max runes for confirmation messages.
// Truncation happens on rune boundaries so multibyte text is never cut
// mid-character.
func Preview(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
