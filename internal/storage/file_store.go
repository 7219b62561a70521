package storage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hourlog/hourlog/internal/models"
)

// FileStore keeps notes in a newline-delimited text file, one record per
// line:
//
//	<RFC3339 UTC timestamp> | <note text>
//
// Only the first "|" separates the fields, so note text may contain pipes.
// Appends rely on O_APPEND semantics; there is no other locking.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create notes directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("failed to create notes file: %w", err)
	}
	return f.Close()
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) Append(note models.Note) error {
	// A record is one line; embedded newlines would split it.
	text := strings.ReplaceAll(strings.TrimSpace(note.Text), "\n", " ")
	if text == "" {
		return fmt.Errorf("refusing to append empty note")
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("failed to open notes file: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("%s | %s\n", note.Time.UTC().Format(time.RFC3339), text)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to append note: %w", err)
	}
	return nil
}

func (s *FileStore) ForDay(day string, loc *time.Location) ([]models.Note, error) {
	notes, err := s.readAll()
	if err != nil {
		return nil, err
	}

	var out []models.Note
	for _, n := range notes {
		if n.Day(loc) == day {
			out = append(out, n)
		}
	}

	// Backdated reconciliation notes may have been appended out of order.
	sort.Slice(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})
	return out, nil
}

func (s *FileStore) Recent(n int) ([]models.Note, error) {
	notes, err := s.readAll()
	if err != nil {
		return nil, err
	}

	sort.Slice(notes, func(i, j int) bool {
		return notes[i].Time.After(notes[j].Time)
	})
	if n >= 0 && len(notes) > n {
		notes = notes[:n]
	}
	return notes, nil
}

func (s *FileStore) Path() string {
	return s.path
}

// readAll parses every well-formed line, silently skipping anything
// malformed. An unreadable or missing file yields an empty result, not an
// error that would take the prompt loop down with it.
func (s *FileStore) readAll() ([]models.Note, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read notes file: %w", err)
	}
	defer f.Close()

	var notes []models.Note
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if note, ok := parseLine(scanner.Text()); ok {
			notes = append(notes, note)
		}
	}
	if err := scanner.Err(); err != nil {
		return notes, fmt.Errorf("failed to scan notes file: %w", err)
	}
	return notes, nil
}

func parseLine(line string) (models.Note, bool) {
	idx := strings.Index(line, "|")
	if idx < 0 {
		return models.Note{}, false
	}

	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(line[:idx]))
	if err != nil {
		return models.Note{}, false
	}

	text := strings.TrimSpace(line[idx+1:])
	if text == "" {
		return models.Note{}, false
	}

	return models.Note{Time: ts, Text: text}, true
}
