package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/hourlog/hourlog/internal/backup"
	"github.com/hourlog/hourlog/internal/constants"
	"github.com/hourlog/hourlog/internal/platform"
	"github.com/hourlog/hourlog/internal/schedule"
	"github.com/hourlog/hourlog/internal/validation"
)

// DoctorCmd checks the pieces the watcher depends on and reports what it
// finds. It never mutates anything.
type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	defer ctx.Notes.Close()
	fail := 0

	// Notes log readable?
	if notes, err := ctx.Notes.Recent(1); err != nil {
		fmt.Printf("FAIL notes log %s: %v\n", ctx.Notes.Path(), err)
		fail++
	} else if len(notes) == 0 {
		fmt.Printf("ok   notes log %s (empty)\n", ctx.Notes.Path())
	} else {
		fmt.Printf("ok   notes log %s (last note %s)\n",
			ctx.Notes.Path(), notes[0].Time.In(ctx.location()).Format("2006-01-02 15:04"))
	}

	// Settings valid?
	settings := ctx.Settings.Load()
	if err := validation.ValidateSettings(settings); err != nil {
		fmt.Printf("FAIL settings: %v\n", err)
		fail++
	} else {
		fmt.Printf("ok   settings (%02d:00-%02d:00 every %dm)\n",
			settings.WorkStartHour, settings.WorkEndHour, settings.FrequencyMinutes)
		for _, w := range validation.Warnings(settings) {
			fmt.Printf("warn %s\n", w)
		}
	}

	// Schedule sanity: when would the next check-in land?
	now := time.Now().In(ctx.location())
	cfg := settings.ScheduleConfig(now, ctx.location())
	if next, ok := schedule.NextAligned(now, cfg); ok {
		fmt.Printf("ok   next check-in %s\n", next.Format("2006-01-02 15:04"))
	} else {
		fmt.Printf("warn schedule can never fire with the current settings\n")
	}
	if cfg.SuppressedAt(now) {
		fmt.Printf("warn end-of-day suppression is active, check-ins paused until tomorrow\n")
	}

	// Watcher running?
	lockPath := filepath.Join(filepath.Dir(ctx.State.Path()), constants.LockfileName)
	if pid, running := platform.LockHolder(lockPath); running {
		fmt.Printf("ok   watcher running (pid %d)\n", pid)
	} else if pid != 0 {
		fmt.Printf("warn stale lockfile from pid %d, watcher not running\n", pid)
	} else {
		fmt.Printf("warn watcher not running\n")
	}

	// Watermark?
	state := ctx.State.Load()
	if state.LastCheck.IsZero() {
		fmt.Printf("warn no check-in watermark yet, first watch run starts fresh\n")
	} else {
		fmt.Printf("ok   last accounted check-in %s\n",
			state.LastCheck.In(ctx.location()).Format("2006-01-02 15:04"))
	}

	// Backups?
	if backups, err := backup.NewManager(ctx.Notes.Path()).ListBackups(); err != nil || len(backups) == 0 {
		fmt.Printf("warn no backups yet, run 'hourlog backup'\n")
	} else {
		fmt.Printf("ok   %d backups, newest %s\n",
			len(backups), backups[0].Timestamp.Format("2006-01-02 15:04"))
	}

	if fail > 0 {
		return fmt.Errorf("%d check(s) failed", fail)
	}
	fmt.Println("All checks passed.")
	return nil
}
