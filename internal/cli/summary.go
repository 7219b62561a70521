package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/hourlog/hourlog/internal/constants"
)

var (
	summaryHeaderStyle = lipgloss.NewStyle().Bold(true)
	summaryTimeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

type SummaryCmd struct {
	Date   string `arg:"" optional:"" default:"today" help:"Day to summarize (YYYY-MM-DD, 'today' or 'yesterday')."`
	Recent int    `short:"r" default:"0" help:"Show the most recent N notes across all days instead."`
}

func (c *SummaryCmd) Run(ctx *Context) error {
	if err := ctx.Notes.Init(); err != nil {
		return err
	}
	defer ctx.Notes.Close()

	if c.Recent > 0 {
		return c.runRecent(ctx)
	}

	day, err := parseDay(c.Date, ctx.location())
	if err != nil {
		return err
	}

	notes, err := ctx.Notes.ForDay(day, ctx.location())
	if err != nil {
		return err
	}

	if len(notes) == 0 {
		fmt.Printf("No notes recorded for %s\n", day)
		return nil
	}

	fmt.Println(summaryHeaderStyle.Render(fmt.Sprintf("%d notes recorded on %s:", len(notes), day)))
	fmt.Println()
	for _, n := range notes {
		stamp := summaryTimeStyle.Render("[" + n.Time.In(ctx.location()).Format(constants.TimeFormat) + "]")
		fmt.Printf("%s %s\n", stamp, n.Text)
	}
	return nil
}

func (c *SummaryCmd) runRecent(ctx *Context) error {
	notes, err := ctx.Notes.Recent(c.Recent)
	if err != nil {
		return err
	}

	if len(notes) == 0 {
		fmt.Println("No notes recorded yet.")
		return nil
	}

	fmt.Println(summaryHeaderStyle.Render(fmt.Sprintf("Most recent %d notes:", len(notes))))
	fmt.Println()
	for _, n := range notes {
		local := n.Time.In(ctx.location())
		stamp := summaryTimeStyle.Render("[" + local.Format(constants.DateFormat+" "+constants.TimeFormat) + "]")
		fmt.Printf("%s %s\n", stamp, n.Text)
	}
	return nil
}
