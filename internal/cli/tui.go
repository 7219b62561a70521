package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hourlog/hourlog/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.Notes.Init(); err != nil {
		return err
	}
	defer ctx.Notes.Close()

	p := tea.NewProgram(tui.NewModel(ctx.Notes, ctx.location()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
