package watch

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hourlog/hourlog/internal/storage"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

type promptCall struct {
	nominal time.Time
	missed  bool
}

type fakeSink struct {
	calls []promptCall

	// reply decides the response per call; defaults to accepting with a
	// fixed text.
	reply func(nominal time.Time, missed bool) (string, bool)
}

func (s *fakeSink) PromptForNote(nominal time.Time, missed bool) (string, bool) {
	s.calls = append(s.calls, promptCall{nominal: nominal, missed: missed})
	if s.reply != nil {
		return s.reply(nominal, missed)
	}
	return "did things", true
}

type fixture struct {
	coord *Coordinator
	sink  *fakeSink
	clock *fakeClock
	notes *storage.FileStore
	state *storage.StateStore
	sets  *storage.SettingsStore
}

func day(hour, min int) time.Time {
	return time.Date(2025, 3, 10, hour, min, 0, 0, time.UTC)
}

func newFixture(t *testing.T, settings storage.Settings, now time.Time) *fixture {
	t.Helper()
	dir := t.TempDir()

	notes := storage.NewFileStore(filepath.Join(dir, "notes.txt"))
	if err := notes.Init(); err != nil {
		t.Fatalf("failed to init notes: %v", err)
	}

	sets := storage.NewSettingsStore(filepath.Join(dir, "settings.json"))
	if err := sets.Save(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	state := storage.NewStateStore(filepath.Join(dir, "state.json"))
	sink := &fakeSink{}
	clock := &fakeClock{t: now}

	logger := log.New(io.Discard)
	coord := NewCoordinator(notes, sets, state, sink, time.UTC, logger)
	coord.now = clock.Now

	return &fixture{coord: coord, sink: sink, clock: clock, notes: notes, state: state, sets: sets}
}

func workdaySettings() storage.Settings {
	return storage.Settings{WorkStartHour: 9, WorkEndHour: 17, FrequencyMinutes: 60}
}

func TestStart_FirstRunInitializesMarkWithoutPrompts(t *testing.T) {
	f := newFixture(t, workdaySettings(), day(10, 15))

	f.coord.Start()

	if len(f.sink.calls) != 0 {
		t.Errorf("first run must not prompt, got %d prompts", len(f.sink.calls))
	}
	if !f.coord.LastCheck().Equal(day(10, 15)) {
		t.Errorf("lastCheck = %v, want now", f.coord.LastCheck())
	}
	if f.coord.State() != Armed {
		t.Errorf("state = %v, want Armed", f.coord.State())
	}
	if want := day(11, 0); !f.coord.Deadline().Equal(want) {
		t.Errorf("deadline = %v, want %v", f.coord.Deadline(), want)
	}
}

func TestStart_RestartGapIsReconciled(t *testing.T) {
	f := newFixture(t, workdaySettings(), day(12, 30))

	// A previous run left the watermark at 09:00.
	if err := f.state.Save(storage.WatchState{Version: 1, LastCheck: day(9, 0)}); err != nil {
		t.Fatal(err)
	}

	f.coord.Start()

	want := []time.Time{day(10, 0), day(11, 0), day(12, 0)}
	if len(f.sink.calls) != len(want) {
		t.Fatalf("got %d prompts, want %d: %+v", len(f.sink.calls), len(want), f.sink.calls)
	}
	for i, call := range f.sink.calls {
		if !call.nominal.Equal(want[i]) {
			t.Errorf("prompt %d at %v, want %v", i, call.nominal, want[i])
		}
		if !call.missed {
			t.Errorf("prompt %d should be marked missed", i)
		}
	}
	if !f.coord.LastCheck().Equal(day(12, 30)) {
		t.Errorf("lastCheck = %v, want 12:30", f.coord.LastCheck())
	}
}

func TestHandleWake_EmitsEachMissedBoundaryOnce(t *testing.T) {
	f := newFixture(t, workdaySettings(), day(9, 0))
	f.coord.Start()
	f.sink.calls = nil

	f.clock.t = day(12, 30)
	f.coord.HandleWake()

	want := []time.Time{day(10, 0), day(11, 0), day(12, 0)}
	if len(f.sink.calls) != len(want) {
		t.Fatalf("got %d prompts, want %d", len(f.sink.calls), len(want))
	}
	for i := range want {
		if !f.sink.calls[i].nominal.Equal(want[i]) {
			t.Errorf("prompt %d at %v, want %v", i, f.sink.calls[i].nominal, want[i])
		}
	}

	// Notes are backdated to the boundary they describe.
	notes, err := f.notes.ForDay("2025-03-10", time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 3 {
		t.Fatalf("expected 3 notes, got %d", len(notes))
	}
	for i := range want {
		if !notes[i].Time.Equal(want[i]) {
			t.Errorf("note %d timestamped %v, want boundary %v", i, notes[i].Time, want[i])
		}
	}

	if !f.coord.LastCheck().Equal(day(12, 30)) {
		t.Errorf("lastCheck = %v, want 12:30", f.coord.LastCheck())
	}

	// A second wake at the same instant must not re-prompt anything.
	f.sink.calls = nil
	f.coord.HandleWake()
	if len(f.sink.calls) != 0 {
		t.Errorf("double wake re-prompted %d boundaries", len(f.sink.calls))
	}
}

func TestHandleWake_OvernightSleepPromptsNothing(t *testing.T) {
	f := newFixture(t, workdaySettings(), day(23, 0))
	f.coord.Start()
	f.sink.calls = nil

	next := time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC)
	f.clock.t = next
	f.coord.HandleWake()

	if len(f.sink.calls) != 0 {
		t.Errorf("expected no prompts after overnight sleep, got %d", len(f.sink.calls))
	}
	if !f.coord.LastCheck().Equal(next) {
		t.Errorf("lastCheck = %v, want 08:00", f.coord.LastCheck())
	}
	if want := time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC); !f.coord.Deadline().Equal(want) {
		t.Errorf("deadline = %v, want %v", f.coord.Deadline(), want)
	}
}

func TestHandleWake_DecliningOnePromptKeepsTheRest(t *testing.T) {
	f := newFixture(t, workdaySettings(), day(9, 0))
	f.coord.Start()
	f.sink.calls = nil
	f.sink.reply = func(nominal time.Time, missed bool) (string, bool) {
		if nominal.Equal(day(11, 0)) {
			return "", false // skip this one
		}
		return "caught up", true
	}

	f.clock.t = day(12, 30)
	f.coord.HandleWake()

	if len(f.sink.calls) != 3 {
		t.Fatalf("expected all 3 boundaries prompted, got %d", len(f.sink.calls))
	}

	notes, err := f.notes.ForDay("2025-03-10", time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 saved notes after one skip, got %d", len(notes))
	}
}

func TestHandleWake_SuppressionSilencesReconciledPrompts(t *testing.T) {
	settings := workdaySettings()
	settings.EODDate = day(9, 30).Format(time.RFC3339)
	f := newFixture(t, settings, day(9, 0))
	f.coord.Start()
	f.sink.calls = nil

	f.clock.t = day(12, 30)
	f.coord.HandleWake()

	if len(f.sink.calls) != 0 {
		t.Errorf("suppressed day still prompted %d times", len(f.sink.calls))
	}
	if !f.coord.LastCheck().Equal(day(12, 30)) {
		t.Errorf("mark must advance even when suppressed, got %v", f.coord.LastCheck())
	}
}

func TestHandleDeadline_RegularTickPromptsAndReArms(t *testing.T) {
	f := newFixture(t, workdaySettings(), day(10, 15))
	f.coord.Start()
	f.sink.calls = nil

	f.clock.t = day(11, 0)
	f.coord.HandleDeadline()

	if len(f.sink.calls) != 1 {
		t.Fatalf("expected 1 regular prompt, got %d", len(f.sink.calls))
	}
	if f.sink.calls[0].missed {
		t.Error("regular tick should not be marked missed")
	}
	if !f.sink.calls[0].nominal.Equal(day(11, 0)) {
		t.Errorf("nominal = %v, want 11:00", f.sink.calls[0].nominal)
	}

	// Fixed-step re-arm: old deadline + frequency, not a recomputation.
	if want := day(12, 0); !f.coord.Deadline().Equal(want) {
		t.Errorf("deadline = %v, want %v", f.coord.Deadline(), want)
	}
	if f.coord.State() != Armed {
		t.Errorf("state = %v, want Armed", f.coord.State())
	}
}

func TestHandleDeadline_LastTickOfDayReArmsTomorrow(t *testing.T) {
	f := newFixture(t, workdaySettings(), day(15, 30))
	f.coord.Start()
	f.sink.calls = nil

	f.clock.t = day(16, 0)
	f.coord.HandleDeadline()

	// 17:00 is outside the window, so the next deadline is tomorrow 09:00.
	want := time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)
	if !f.coord.Deadline().Equal(want) {
		t.Errorf("deadline = %v, want %v", f.coord.Deadline(), want)
	}
}

func TestHandleDeadline_BlockedPromptReconcilesElapsedBoundaries(t *testing.T) {
	f := newFixture(t, workdaySettings(), day(10, 15))
	f.coord.Start()
	f.sink.calls = nil

	// The 11:00 dialog sits open until 13:05; 12:00 and 13:00 elapse
	// while it blocks and must be reconciled afterwards.
	first := true
	f.sink.reply = func(nominal time.Time, missed bool) (string, bool) {
		if first {
			first = false
			f.clock.t = day(13, 5)
		}
		return "long meeting", true
	}

	f.clock.t = day(11, 0)
	f.coord.HandleDeadline()

	if len(f.sink.calls) != 3 {
		t.Fatalf("expected regular prompt plus 2 reconciled, got %d: %+v", len(f.sink.calls), f.sink.calls)
	}
	if f.sink.calls[0].missed || !f.sink.calls[1].missed || !f.sink.calls[2].missed {
		t.Errorf("missed flags wrong: %+v", f.sink.calls)
	}
	if !f.sink.calls[1].nominal.Equal(day(12, 0)) || !f.sink.calls[2].nominal.Equal(day(13, 0)) {
		t.Errorf("reconciled nominals wrong: %+v", f.sink.calls[1:])
	}
	if !f.coord.LastCheck().Equal(day(13, 5)) {
		t.Errorf("lastCheck = %v, want 13:05", f.coord.LastCheck())
	}
}

func TestHandleDeadline_SuppressedTickStillAdvances(t *testing.T) {
	settings := workdaySettings()
	settings.EODDate = day(9, 30).Format(time.RFC3339)
	f := newFixture(t, settings, day(10, 15))
	f.coord.Start()
	f.sink.calls = nil

	f.clock.t = day(11, 0)
	f.coord.HandleDeadline()

	if len(f.sink.calls) != 0 {
		t.Errorf("suppressed tick prompted")
	}
	if !f.coord.LastCheck().Equal(day(11, 0)) {
		t.Errorf("lastCheck = %v, want 11:00", f.coord.LastCheck())
	}
	if want := day(12, 0); !f.coord.Deadline().Equal(want) {
		t.Errorf("grid must keep advancing under suppression, deadline = %v", f.coord.Deadline())
	}
}

func TestHandleConfigChanged_ReArmsWithoutDoubleFire(t *testing.T) {
	f := newFixture(t, workdaySettings(), day(10, 15))
	f.coord.Start()

	oldDeadline := f.coord.Deadline()
	if !oldDeadline.Equal(day(11, 0)) {
		t.Fatalf("precondition: deadline = %v", oldDeadline)
	}

	// Frequency drops to 30 minutes while Armed.
	settings := workdaySettings()
	settings.FrequencyMinutes = 30
	if err := f.sets.Save(settings); err != nil {
		t.Fatal(err)
	}

	f.coord.HandleConfigChanged()

	if want := day(10, 30); !f.coord.Deadline().Equal(want) {
		t.Errorf("deadline = %v, want %v under new frequency", f.coord.Deadline(), want)
	}

	// The old deadline is dead: delivering it must be a no-op because the
	// machine re-armed. Firing the new one prompts exactly once.
	f.sink.calls = nil
	f.clock.t = day(10, 30)
	f.coord.HandleDeadline()
	if len(f.sink.calls) != 1 {
		t.Errorf("expected exactly one prompt after re-arm, got %d", len(f.sink.calls))
	}
}

func TestHandleSleep_RecordsMarkWithoutTouchingTimer(t *testing.T) {
	f := newFixture(t, workdaySettings(), day(10, 15))
	f.coord.Start()

	deadline := f.coord.Deadline()
	f.clock.t = day(10, 45)
	f.coord.HandleSleep()

	if !f.coord.LastCheck().Equal(day(10, 45)) {
		t.Errorf("lastCheck = %v, want sleep instant", f.coord.LastCheck())
	}
	if !f.coord.Deadline().Equal(deadline) {
		t.Errorf("sleep must not change the armed deadline")
	}
	if f.coord.State() != Armed {
		t.Errorf("state = %v, want Armed", f.coord.State())
	}
}

func TestMarkNeverRewinds(t *testing.T) {
	f := newFixture(t, workdaySettings(), day(12, 0))
	f.coord.Start()

	f.clock.t = day(11, 0) // clock stepped backwards
	f.coord.HandleSleep()

	if !f.coord.LastCheck().Equal(day(12, 0)) {
		t.Errorf("lastCheck rewound to %v", f.coord.LastCheck())
	}
}

func TestDegenerateScheduleGoesIdle(t *testing.T) {
	settings := storage.Settings{WorkStartHour: 9, WorkEndHour: 9, FrequencyMinutes: 60}
	f := newFixture(t, settings, day(10, 0))

	f.coord.Start()

	if f.coord.State() != Idle {
		t.Errorf("state = %v, want Idle for zero-length window", f.coord.State())
	}
	if !f.coord.Deadline().IsZero() {
		t.Errorf("expected no deadline, got %v", f.coord.Deadline())
	}
}

func TestWatermarkPersistedAcrossCoordinators(t *testing.T) {
	f := newFixture(t, workdaySettings(), day(10, 15))
	f.coord.Start()

	// A fresh coordinator over the same state file starts from the
	// persisted mark, not from zero.
	logger := log.New(io.Discard)
	sink := &fakeSink{}
	coord := NewCoordinator(f.notes, f.sets, f.state, sink, time.UTC, logger)
	clock := &fakeClock{t: day(12, 30)}
	coord.now = clock.Now

	coord.Start()

	want := []time.Time{day(11, 0), day(12, 0)}
	if len(sink.calls) != len(want) {
		t.Fatalf("restart reconciliation got %d prompts, want %d", len(sink.calls), len(want))
	}
	for i := range want {
		if !sink.calls[i].nominal.Equal(want[i]) {
			t.Errorf("prompt %d at %v, want %v", i, sink.calls[i].nominal, want[i])
		}
	}
}
