package cli

import (
	"fmt"
	"path/filepath"

	"github.com/hourlog/hourlog/internal/backup"
)

type BackupCmd struct {
	Create BackupCreateCmd `cmd:"" default:"1" help:"Back up the notes log."`
	List   BackupListCmd   `cmd:"" help:"List existing backups."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Notes.Path())
	path, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	fmt.Printf("Backup created: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Notes.Path())
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}

	if len(backups) == 0 {
		fmt.Printf("No backups found in %s\n", mgr.GetBackupDir())
		return nil
	}

	fmt.Printf("%d backups in %s:\n", len(backups), mgr.GetBackupDir())
	for _, b := range backups {
		fmt.Printf("  %s  %8d bytes  %s\n",
			b.Timestamp.Format("2006-01-02 15:04:05"), b.Size, filepath.Base(b.Path))
	}
	return nil
}
