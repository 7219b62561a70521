package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/hourlog/hourlog/internal/logger"
	"github.com/hourlog/hourlog/internal/prompt"
	"github.com/hourlog/hourlog/internal/storage"
	"github.com/hourlog/hourlog/internal/validation"
)

type SettingsCmd struct {
	Start     int  `short:"s" default:"-1" help:"Work start hour (0-23)."`
	End       int  `short:"e" default:"-1" help:"Work end hour (0-23)."`
	Frequency int  `short:"f" default:"0" help:"Minutes between check-ins."`
	Show      bool `help:"Print current settings and exit."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	current := ctx.Settings.Load()

	if c.Show {
		printSettings(current)
		return nil
	}

	updated := current
	interactive := c.Start < 0 && c.End < 0 && c.Frequency <= 0

	if interactive {
		var err error
		updated, err = settingsForm(current)
		if err != nil {
			return err
		}
	} else {
		if c.Start >= 0 {
			updated.WorkStartHour = c.Start
		}
		if c.End >= 0 {
			updated.WorkEndHour = c.End
		}
		if c.Frequency > 0 {
			updated.FrequencyMinutes = c.Frequency
		}
	}

	if err := validation.ValidateSettings(updated); err != nil {
		return fmt.Errorf("settings unchanged: %w", err)
	}

	if err := ctx.Settings.Save(updated); err != nil {
		return err
	}

	fmt.Println("Settings saved.")
	for _, w := range validation.Warnings(updated) {
		fmt.Printf("warning: %s\n", w)
	}
	printSettings(updated)

	notifier := prompt.NewNotifier(logger.Console())
	notifier.Notify("Settings Saved",
		fmt.Sprintf("Check-ins every %d minutes, %02d:00-%02d:00.",
			updated.FrequencyMinutes, updated.WorkStartHour, updated.WorkEndHour))
	return nil
}

func settingsForm(current storage.Settings) (storage.Settings, error) {
	start := strconv.Itoa(current.WorkStartHour)
	end := strconv.Itoa(current.WorkEndHour)
	freq := strconv.Itoa(current.FrequencyMinutes)

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Work start hour (0-23)").
			Value(&start).
			Validate(hourField),
		huh.NewInput().
			Title("Work end hour (0-23)").
			Value(&end).
			Validate(hourField),
		huh.NewInput().
			Title("Minutes between check-ins").
			Value(&freq).
			Validate(minutesField),
	))
	if err := form.Run(); err != nil {
		return current, err
	}

	updated := current
	updated.WorkStartHour, _ = strconv.Atoi(start)
	updated.WorkEndHour, _ = strconv.Atoi(end)
	updated.FrequencyMinutes, _ = strconv.Atoi(freq)
	return updated, nil
}

func hourField(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > 23 {
		return fmt.Errorf("must be a whole hour between 0 and 23")
	}
	return nil
}

func minutesField(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number of minutes")
	}
	return nil
}

func printSettings(s storage.Settings) {
	fmt.Printf("Work hours:  %02d:00 - %02d:00\n", s.WorkStartHour, s.WorkEndHour)
	fmt.Printf("Frequency:   every %d minutes\n", s.FrequencyMinutes)
	fmt.Printf("Login item:  %t\n", s.LaunchAtLogin)
	if s.EODDate != "" {
		fmt.Printf("EOD set at:  %s\n", s.EODDate)
	}
}
