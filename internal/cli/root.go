package cli

import (
	"fmt"
	"time"

	"github.com/hourlog/hourlog/internal/constants"
	"github.com/hourlog/hourlog/internal/storage"
)

type Context struct {
	Notes    storage.NoteStore
	Settings *storage.SettingsStore
	State    *storage.StateStore
	Loc      *time.Location
}

func (ctx *Context) location() *time.Location {
	if ctx.Loc != nil {
		return ctx.Loc
	}
	return time.Local
}

// parseDay resolves "today", "yesterday", or YYYY-MM-DD to a canonical
// date string.
func parseDay(s string, loc *time.Location) (string, error) {
	switch s {
	case "today", "":
		return time.Now().In(loc).Format(constants.DateFormat), nil
	case "yesterday":
		return time.Now().In(loc).AddDate(0, 0, -1).Format(constants.DateFormat), nil
	}

	parsed, err := time.ParseInLocation(constants.DateFormat, s, loc)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, use YYYY-MM-DD, 'today' or 'yesterday': %w", s, err)
	}
	return parsed.Format(constants.DateFormat), nil
}
