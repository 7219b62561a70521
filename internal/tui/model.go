package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hourlog/hourlog/internal/constants"
	"github.com/hourlog/hourlog/internal/models"
	"github.com/hourlog/hourlog/internal/storage"
)

// Model is a read-only day browser over the notes log. Left and right
// move between days; notes are reloaded on every day change so edits
// made by the watcher show up on navigation.
type Model struct {
	store storage.NoteStore
	loc   *time.Location

	day    time.Time // midnight of the displayed day, in loc
	notes  []models.Note
	err    error
	offset int // first visible note line

	keys     KeyMap
	help     help.Model
	quitting bool
	width    int
	height   int
}

func NewModel(store storage.NoteStore, loc *time.Location) Model {
	if loc == nil {
		loc = time.Local
	}
	m := Model{
		store: store,
		loc:   loc,
		day:   midnight(time.Now(), loc),
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
	m.loadDay()
	return m
}

func midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) loadDay() {
	m.notes, m.err = m.store.ForDay(m.day.Format(constants.DateFormat), m.loc)
	m.offset = 0
}

func (m *Model) setDay(day time.Time) {
	m.day = day
	m.loadDay()
}

// visibleLines is how many note rows fit between the header and the help
// bar. The fallback covers the window size message not having arrived yet.
func (m Model) visibleLines() int {
	if m.height == 0 {
		return 20
	}
	n := m.height - 6
	if n < 1 {
		n = 1
	}
	return n
}
