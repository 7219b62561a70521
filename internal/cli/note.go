package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/hourlog/hourlog/internal/constants"
	"github.com/hourlog/hourlog/internal/logger"
	"github.com/hourlog/hourlog/internal/models"
	"github.com/hourlog/hourlog/internal/prompt"
)

type NoteCmd struct {
	Text []string `arg:"" optional:"" help:"Note text; prompts interactively when omitted."`
}

func (c *NoteCmd) Run(ctx *Context) error {
	if err := ctx.Notes.Init(); err != nil {
		return err
	}
	defer ctx.Notes.Close()

	now := time.Now()
	text := strings.TrimSpace(strings.Join(c.Text, " "))
	notifier := prompt.NewNotifier(logger.Console())

	fromArgs := text != ""
	if !fromArgs {
		sink := prompt.NewTerminal(ctx.Loc, notifier)
		entered, ok := sink.PromptForNote(now, false)
		if !ok {
			fmt.Println("No note saved.")
			return nil
		}
		// The sink already confirmed via notification.
		text = entered
	}

	note, ok := models.NewNote(now, text)
	if !ok {
		return fmt.Errorf("note text must not be empty")
	}
	if err := ctx.Notes.Append(note); err != nil {
		return err
	}

	preview := models.Preview(note.Text, constants.NotePreviewLen)
	if fromArgs {
		notifier.Notify("Note Saved", preview)
	}
	fmt.Printf("Saved note for %s: %s\n", now.In(ctx.location()).Format(constants.TimeFormat), preview)
	return nil
}
