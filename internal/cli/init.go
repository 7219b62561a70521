package cli

import "fmt"

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Notes.Init(); err != nil {
		return err
	}

	settings := ctx.Settings.Load()
	if err := ctx.Settings.Save(settings); err != nil {
		return err
	}

	fmt.Printf("Initialized notes log at: %s\n", ctx.Notes.Path())
	fmt.Printf("Settings file at: %s\n", ctx.Settings.Path())
	fmt.Printf("Work hours %d:00-%d:00, check-in every %d minutes.\n",
		settings.WorkStartHour, settings.WorkEndHour, settings.FrequencyMinutes)
	return nil
}
