package watch

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// DefaultHeartbeat is how often the run loop checks for clock gaps and
	// settings changes.
	DefaultHeartbeat = 30 * time.Second

	// DefaultWakeGap is the wall-clock jump between heartbeats that is
	// treated as a resume from sleep. Timers do not fire while the host
	// is suspended, so a large gap is the wake signal.
	DefaultWakeGap = 2 * time.Minute
)

// Watcher runs the coordinator as a foreground loop. All OS asynchrony
// (deadline expiry, the heartbeat, context cancellation) is funneled
// through one select, so coordinator handlers always run sequentially.
type Watcher struct {
	coord  *Coordinator
	logger *log.Logger

	// Heartbeat and WakeGap are overridable for tests.
	Heartbeat time.Duration
	WakeGap   time.Duration
}

func NewWatcher(coord *Coordinator, logger *log.Logger) *Watcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Watcher{
		coord:     coord,
		logger:    logger,
		Heartbeat: DefaultHeartbeat,
		WakeGap:   DefaultWakeGap,
	}
}

// Run blocks until the context is canceled. Cancellation is treated like a
// will-sleep signal: the watermark is recorded so the next start can
// reconcile the gap.
func (w *Watcher) Run(ctx context.Context) error {
	w.coord.Start()
	w.logState()

	heartbeat := time.NewTicker(w.Heartbeat)
	defer heartbeat.Stop()

	lastBeat := time.Now()
	lastMod := w.settingsModTime()

	for {
		var deadlineC <-chan time.Time
		var timer *time.Timer
		if d := w.coord.Deadline(); !d.IsZero() {
			timer = time.NewTimer(time.Until(d))
			deadlineC = timer.C
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			w.coord.HandleSleep()
			w.logger.Info("watcher stopped")
			return nil

		case <-deadlineC:
			w.coord.HandleDeadline()
			w.logState()

		case <-heartbeat.C:
			now := time.Now()
			if now.Sub(lastBeat) > w.WakeGap {
				w.logger.Info("wake detected", "gap", now.Sub(lastBeat).Round(time.Second))
				w.coord.HandleWake()
				w.logState()
			}
			lastBeat = now

			if mod := w.settingsModTime(); mod != lastMod {
				lastMod = mod
				w.logger.Info("settings changed, re-arming")
				w.coord.HandleConfigChanged()
				w.logState()
			}
		}

		if timer != nil {
			timer.Stop()
		}
	}
}

func (w *Watcher) settingsModTime() time.Time {
	info, err := os.Stat(w.coord.settings.Path())
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func (w *Watcher) logState() {
	if d := w.coord.Deadline(); !d.IsZero() {
		w.logger.Info("next check-in armed", "at", d.Format("2006-01-02 15:04"))
	} else {
		w.logger.Info("idle: current schedule never prompts")
	}
}
