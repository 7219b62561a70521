package cli

import (
	"fmt"
	"time"

	"github.com/hourlog/hourlog/internal/logger"
	"github.com/hourlog/hourlog/internal/prompt"
)

// EodCmd toggles end-of-day suppression. While active, scheduled
// check-ins are skipped for the rest of the calendar day; the flag
// clears itself on the next day.
type EodCmd struct{}

func (c *EodCmd) Run(ctx *Context) error {
	settings := ctx.Settings.Load()
	now := time.Now().In(ctx.location())
	notifier := prompt.NewNotifier(logger.Console())

	if settings.ScheduleConfig(now, ctx.location()).SuppressedAt(now) {
		settings.EODDate = ""
		if err := ctx.Settings.Save(settings); err != nil {
			return err
		}
		fmt.Println("Notifications resumed.")
		notifier.Notify("Notifications Resumed", "Check-ins are active again.")
		return nil
	}

	settings.EODDate = now.Format(time.RFC3339)
	if err := ctx.Settings.Save(settings); err != nil {
		return err
	}
	fmt.Println("Done for the day. Check-ins are paused until tomorrow.")
	notifier.Notify("EOD Activated", "No more check-ins today.")
	return nil
}
