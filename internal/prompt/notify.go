package prompt

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Notifier delivers best-effort desktop notifications through whatever the
// host platform provides. Delivery failures are logged and otherwise
// ignored; nothing in the schedule depends on a notification arriving.
type Notifier struct {
	logger *log.Logger

	// execCommand is swapped out in tests.
	execCommand func(name string, arg ...string) *exec.Cmd
}

func NewNotifier(logger *log.Logger) *Notifier {
	if logger == nil {
		logger = log.Default()
	}
	return &Notifier{logger: logger, execCommand: exec.Command}
}

func (n *Notifier) Notify(title, body string) {
	// Each request gets its own identifier so repeated notifications are
	// not coalesced by the notification daemon.
	id := uuid.New().String()

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", body, title)
		cmd = n.execCommand("osascript", "-e", script)
	default:
		cmd = n.execCommand("notify-send",
			"--hint", "string:x-canonical-private-synchronous:hourlog-"+id,
			title, body)
	}

	if err := cmd.Run(); err != nil {
		n.logger.Warn("notification not delivered", "id", id, "err", err)
	}
}
