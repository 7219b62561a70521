package platform

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/go-ps"
)

var findProcessFunc = ps.FindProcess

// Lockfile marks a running watcher so a second instance refuses to start.
// Format: <pid>|<run id>. A lockfile whose pid no longer maps to a live
// hourlog process is stale and silently replaced.
type Lockfile struct {
	path  string
	RunID string
}

func AcquireLock(path string) (*Lockfile, error) {
	if pid, running := lockHolder(path); running {
		return nil, fmt.Errorf("another watcher is already running (pid %d)", pid)
	}

	l := &Lockfile{path: path, RunID: uuid.New().String()}
	content := fmt.Sprintf("%d|%s\n", os.Getpid(), l.RunID)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return l, nil
}

func (l *Lockfile) Release() error {
	return os.Remove(l.path)
}

// LockHolder reports whether the lockfile at path belongs to a live
// watcher process. Used by doctor and by AcquireLock.
func LockHolder(path string) (pid int, running bool) {
	return lockHolder(path)
}

func lockHolder(path string) (int, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}

	parts := strings.SplitN(strings.TrimSpace(string(content)), "|", 2)
	pid, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return pid, false
	}
	if !strings.HasPrefix(process.Executable(), "hourlog") {
		// PID was recycled by an unrelated process.
		return pid, false
	}
	return pid, true
}
