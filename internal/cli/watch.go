package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/hourlog/hourlog/internal/constants"
	"github.com/hourlog/hourlog/internal/logger"
	"github.com/hourlog/hourlog/internal/platform"
	"github.com/hourlog/hourlog/internal/prompt"
	"github.com/hourlog/hourlog/internal/watch"
)

type WatchCmd struct {
	Debug bool `help:"Log at debug level."`
}

// Run starts the foreground check-in watcher. It holds a lockfile so only
// one watcher prompts at a time, and it treats shutdown like going to
// sleep: the watermark is saved so the next start reconciles the gap.
func (c *WatchCmd) Run(ctx *Context) error {
	if err := ctx.Notes.Init(); err != nil {
		return err
	}
	defer ctx.Notes.Close()

	lockPath := filepath.Join(filepath.Dir(ctx.State.Path()), constants.LockfileName)
	lock, err := platform.AcquireLock(lockPath)
	if err != nil {
		return err
	}
	defer lock.Release()

	lg, err := logger.New(logger.Config{
		Debug: c.Debug,
		Dir:   filepath.Dir(ctx.State.Path()),
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	notifier := prompt.NewNotifier(lg)
	sink := prompt.NewTerminal(ctx.Loc, notifier)
	coord := watch.NewCoordinator(ctx.Notes, ctx.Settings, ctx.State, sink, ctx.Loc, lg)
	watcher := watch.NewWatcher(coord, lg)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching for check-ins (notes: %s). Ctrl-C to stop.\n", ctx.Notes.Path())
	return watcher.Run(runCtx)
}
