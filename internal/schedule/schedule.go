package schedule

import (
	"time"
)

// Config describes the check-in schedule: a daily work-hours window and a
// prompt cadence anchored at the window's start.
type Config struct {
	StartHour int           // 0..23, wall clock
	EndHour   int           // 0..23, wall clock; EndHour < StartHour wraps midnight
	Frequency time.Duration // whole minutes between check-ins

	// Suppressed silences all prompts for the rest of the calendar day it
	// was set on (SuppressedOn, YYYY-MM-DD). It expires on day change.
	Suppressed   bool
	SuppressedOn string

	Location *time.Location
}

func (c Config) loc() *time.Location {
	if c.Location != nil {
		return c.Location
	}
	return time.Local
}

// degenerate reports whether the config can never produce a check-in.
// StartHour == EndHour is a zero-length window and is defined as "never
// in work hours" rather than a 24h window.
func (c Config) degenerate() bool {
	return c.Frequency < time.Minute || c.StartHour == c.EndHour
}

// SuppressedAt reports whether end-of-day suppression covers the given
// instant. Suppression only holds on the calendar day it was set.
func (c Config) SuppressedAt(t time.Time) bool {
	return c.Suppressed && c.SuppressedOn == t.In(c.loc()).Format("2006-01-02")
}

// IsWorkHour reports whether t falls inside the configured work window,
// judged by the local hour of day. Minutes and seconds are irrelevant.
func IsWorkHour(t time.Time, cfg Config) bool {
	if cfg.degenerate() {
		return false
	}
	h := t.In(cfg.loc()).Hour()
	if cfg.StartHour <= cfg.EndHour {
		return h >= cfg.StartHour && h < cfg.EndHour
	}
	// Overnight window wrapping midnight.
	return h >= cfg.StartHour || h < cfg.EndHour
}

// NextAligned returns the first check-in instant strictly after the given
// time. Check-ins lie on a fixed grid: whole multiples of cfg.Frequency
// past a day's work-start instant. Keeping the grid anchored at work-start
// means rescheduling never drifts it.
//
// When the next grid point falls outside work hours (past the window's end)
// the result is the following day's work-start. ok is false for configs
// that can never fire.
func NextAligned(after time.Time, cfg Config) (time.Time, bool) {
	if cfg.degenerate() {
		return time.Time{}, false
	}

	loc := cfg.loc()
	after = after.In(loc)

	anchor := time.Date(after.Year(), after.Month(), after.Day(), cfg.StartHour, 0, 0, 0, loc)
	// An overnight window that has wrapped past midnight is still on the
	// grid anchored at the previous day's work-start.
	if cfg.StartHour > cfg.EndHour && after.Hour() < cfg.StartHour {
		anchor = anchor.AddDate(0, 0, -1)
	}

	next := anchor
	if !next.After(after) {
		steps := after.Sub(anchor)/cfg.Frequency + 1
		next = anchor.Add(steps * cfg.Frequency)
	}

	if IsWorkHour(next, cfg) {
		return next, true
	}

	// Ran off the end of today's window; resume at the next work-start.
	day := anchor.AddDate(0, 0, 1)
	return time.Date(day.Year(), day.Month(), day.Day(), cfg.StartHour, 0, 0, 0, loc), true
}
