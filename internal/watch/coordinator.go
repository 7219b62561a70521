package watch

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/hourlog/hourlog/internal/models"
	"github.com/hourlog/hourlog/internal/schedule"
	"github.com/hourlog/hourlog/internal/storage"
)

// State is the coordinator's timer state.
type State int

const (
	// Idle: no deadline armed (degenerate schedule or not started).
	Idle State = iota
	// Armed: exactly one deadline scheduled.
	Armed
	// Firing: handling a tick; not reentrant.
	Firing
)

// PromptSink solicits a note for a nominal check-in time. missed marks a
// reconciled boundary being surfaced after the fact. ok is false when the
// user declines.
type PromptSink interface {
	PromptForNote(nominal time.Time, missed bool) (text string, ok bool)
}

// maxReconcilePasses bounds the catch-up loop: each pass may block on
// modal prompts, during which new boundaries can elapse.
const maxReconcilePasses = 32

// Coordinator owns the single outstanding check-in deadline and the
// lastCheck high-water mark. It is a single logical actor: the run loop
// funnels every event (deadline, wake, sleep, config change) into
// sequential handler calls, so lastCheck updates never interleave.
type Coordinator struct {
	notes    storage.NoteStore
	settings *storage.SettingsStore
	state    *storage.StateStore
	sink     PromptSink
	loc      *time.Location
	logger   *log.Logger

	now func() time.Time

	st        State
	lastCheck time.Time
	deadline  time.Time
}

func NewCoordinator(notes storage.NoteStore, settings *storage.SettingsStore, state *storage.StateStore, sink PromptSink, loc *time.Location, logger *log.Logger) *Coordinator {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Coordinator{
		notes:    notes,
		settings: settings,
		state:    state,
		sink:     sink,
		loc:      loc,
		logger:   logger,
		now:      time.Now,
		st:       Idle,
	}
}

// State returns the current timer state.
func (c *Coordinator) State() State {
	return c.st
}

// Deadline returns the armed deadline; zero when Idle.
func (c *Coordinator) Deadline() time.Time {
	return c.deadline
}

// LastCheck returns the high-water mark.
func (c *Coordinator) LastCheck() time.Time {
	return c.lastCheck
}

// config reloads the schedule from the settings store. Settings may be
// changed by another hourlog process while the watcher runs, so they are
// never cached across events.
func (c *Coordinator) config(now time.Time) schedule.Config {
	return c.settings.Load().ScheduleConfig(now, c.loc)
}

// Start restores the watermark and arms the first deadline. A zero
// watermark means first run: no reconciliation, just initialize the mark.
// Otherwise the gap since the last run is reconciled like a wake.
func (c *Coordinator) Start() {
	c.lastCheck = c.state.Load().LastCheck
	if c.lastCheck.IsZero() {
		c.advance(c.now())
	} else {
		c.reconcile()
	}
	c.Arm()
}

// Arm computes the next aligned deadline and transitions Idle -> Armed.
// Re-arming replaces any previously scheduled deadline; there is at most
// one outstanding.
func (c *Coordinator) Arm() {
	now := c.now()
	next, ok := schedule.NextAligned(now, c.config(now))
	if !ok {
		c.deadline = time.Time{}
		c.st = Idle
		return
	}
	c.deadline = next
	c.st = Armed
}

// HandleDeadline runs the regular per-tick check: prompt if the nominal
// boundary is inside work hours and not suppressed, advance the mark, then
// re-arm one fixed frequency step past the old deadline so the grid never
// drifts. A prompt can block for a long time; boundaries that elapse while
// it is open are reconciled before re-arming.
func (c *Coordinator) HandleDeadline() {
	if c.st != Armed {
		return
	}
	c.st = Firing

	nominal := c.deadline
	now := c.now()
	cfg := c.config(now)

	if schedule.IsWorkHour(nominal, cfg) && !cfg.SuppressedAt(nominal) {
		c.prompt(nominal, false)
	}
	// Account for the fired boundary before reconciling, so it is not
	// re-surfaced as missed; reconcile then picks up anything that elapsed
	// while the prompt was open and advances the mark to the present.
	c.advance(nominal)
	c.reconcile()

	next := nominal.Add(cfg.Frequency)
	if next.After(c.now()) && schedule.IsWorkHour(next, cfg) {
		c.deadline = next
		c.st = Armed
		return
	}
	c.Arm()
}

// HandleWake reconciles every boundary missed while the machine slept,
// then discards the stale deadline and re-arms fresh.
func (c *Coordinator) HandleWake() {
	c.st = Firing
	c.reconcile()
	c.Arm()
}

// HandleSleep records the mark at the imminent-suspend signal. Timer state
// is left alone; the OS stops delivering ticks while asleep.
func (c *Coordinator) HandleSleep() {
	c.advance(c.now())
}

// HandleConfigChanged invalidates the current deadline and re-arms against
// the mutated schedule without firing the old deadline.
func (c *Coordinator) HandleConfigChanged() {
	c.deadline = time.Time{}
	c.st = Idle
	c.Arm()
}

// reconcile surfaces one ordered prompt per work-hours boundary strictly
// between lastCheck and now, then advances the mark to now exactly once.
// Declining one prompt does not affect the rest, and a prompt or append
// failure never stalls the grid. Because each prompt is modal, the pass
// repeats with a fresh now until no new boundaries have elapsed.
func (c *Coordinator) reconcile() {
	for i := 0; i < maxReconcilePasses; i++ {
		now := c.now()
		cfg := c.config(now)

		missed := schedule.MissedBetween(c.lastCheck, now, cfg)
		for _, boundary := range missed {
			if cfg.SuppressedAt(boundary) {
				continue
			}
			c.prompt(boundary, true)
		}
		c.advance(now)

		if len(missed) == 0 {
			return
		}
	}
}

// prompt drives the sink for one boundary and appends the accepted note.
// Missed boundaries are recorded at the boundary itself, not at the time
// the user finally typed the note, so the note lands on the hour it
// describes.
func (c *Coordinator) prompt(nominal time.Time, missed bool) {
	text, ok := c.sink.PromptForNote(nominal, missed)
	if !ok {
		return
	}

	at := nominal
	if !missed {
		at = c.now()
	}
	note, ok := models.NewNote(at, text)
	if !ok {
		return
	}
	if err := c.notes.Append(note); err != nil {
		c.logger.Error("failed to save note", "at", nominal.Format(time.RFC3339), "err", err)
	}
}

// advance moves the high-water mark forward and persists it. The mark
// never rewinds.
func (c *Coordinator) advance(t time.Time) {
	if !t.After(c.lastCheck) {
		return
	}
	c.lastCheck = t
	if err := c.state.Save(storage.WatchState{Version: 1, LastCheck: t}); err != nil {
		c.logger.Error("failed to persist watermark", "err", err)
	}
}
