package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration.
type Config struct {
	// Debug lowers the level to debug and reports callers.
	Debug bool
	// Dir is where the logs/ directory is created, normally the
	// directory holding the notes log and state file.
	Dir string
}

// New builds the watch daemon's logger: a rotating file under
// Dir/logs plus stderr, so a foreground run stays readable while the
// file survives restarts.
func New(cfg Config) (*log.Logger, error) {
	logDir := filepath.Join(cfg.Dir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "hourlog.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	writer := io.MultiWriter(os.Stderr, fileWriter)
	return log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "hourlog",
	}), nil
}

// Console is the logger for one-shot commands: stderr only, no file.
func Console() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Prefix: "hourlog"})
}
