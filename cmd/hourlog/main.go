package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/hourlog/hourlog/internal/cli"
	"github.com/hourlog/hourlog/internal/constants"
	"github.com/hourlog/hourlog/internal/storage"
)

var CLI struct {
	Version  kong.VersionFlag
	Notes    string `help:"Notes log path. A .db extension selects the SQLite store." type:"path" default:"~/.notes.txt"`
	Timezone string `help:"IANA timezone for day boundaries (defaults to the system zone)."`

	Init     cli.InitCmd     `cmd:"" help:"Create the notes log and default settings."`
	Watch    cli.WatchCmd    `cmd:"" help:"Run the check-in watcher." default:"1"`
	Note     cli.NoteCmd     `cmd:"" help:"Record a note right now."`
	Summary  cli.SummaryCmd  `cmd:"" help:"Show notes for a day."`
	Tui      cli.TuiCmd      `cmd:"" help:"Browse notes interactively."`
	Eod      cli.EodCmd      `cmd:"" help:"Pause check-ins until tomorrow."`
	Settings cli.SettingsCmd `cmd:"" help:"View or change work hours and frequency."`
	Login    cli.LoginCmd    `cmd:"" help:"Manage launch-at-login."`
	Backup   cli.BackupCmd   `cmd:"" help:"Back up the notes log."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Check the installation."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("hourlog"),
		kong.Description("Hourly check-in prompts with an append-only notes log"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.3.0"},
	)

	var notes storage.NoteStore
	if strings.HasSuffix(CLI.Notes, ".db") {
		notes = storage.NewSQLiteStore(CLI.Notes)
	} else {
		notes = storage.NewFileStore(CLI.Notes)
	}

	dir := filepath.Dir(CLI.Notes)
	appCtx := &cli.Context{
		Notes:    notes,
		Settings: storage.NewSettingsStore(filepath.Join(dir, constants.DefaultSettingsFileName)),
		State:    storage.NewStateStore(filepath.Join(dir, constants.DefaultStateFileName)),
	}

	if CLI.Timezone != "" {
		loc, err := time.LoadLocation(CLI.Timezone)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: unknown timezone %q\n", CLI.Timezone)
			os.Exit(1)
		}
		appCtx.Loc = loc
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
