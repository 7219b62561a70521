package prompt

import (
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/hourlog/hourlog/internal/constants"
	"github.com/hourlog/hourlog/internal/models"
)

// missedPrefill seeds the missed-hour dialog; users usually just finish
// the sentence.
const missedPrefill = "System was asleep - "

// Terminal asks for notes through interactive forms on the controlling
// terminal. It implements watch.PromptSink.
type Terminal struct {
	loc      *time.Location
	notifier *Notifier
}

func NewTerminal(loc *time.Location, notifier *Notifier) *Terminal {
	if loc == nil {
		loc = time.Local
	}
	return &Terminal{loc: loc, notifier: notifier}
}

// PromptForNote blocks on a modal form until the user saves or declines.
// The user may leave it open indefinitely; that is accepted behavior, and
// the watch loop reconciles elapsed boundaries afterwards.
func (t *Terminal) PromptForNote(nominal time.Time, missed bool) (string, bool) {
	var text string

	title := "Hourly Check-in"
	description := "What did you do in the last hour?"
	if missed {
		local := nominal.In(t.loc).Format("3:04 PM")
		title = "Missed Check-in"
		description = "What were you working on around " + local + "?\n(Your system was asleep or the app wasn't running)"
		text = missedPrefill
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(title).
				Description(description).
				Value(&text),
		),
	)

	if err := form.Run(); err != nil {
		// Aborted (esc / ctrl+c) counts as a decline.
		return "", false
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}

	if t.notifier != nil && !missed {
		t.notifier.Notify("Note Saved", models.Preview(text, constants.NotePreviewLen))
	}
	return text, true
}
