// Package logger writes structured logs to a file. The terminal belongs to
// the TUI, so nothing is ever logged to stdout or stderr.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// DefaultPath is used when no log path is configured.
const DefaultPath = "/tmp/guidedit.log"

var (
	mu       sync.Mutex
	base     *slog.Logger
	logFile  *os.File
	levelVar = new(slog.LevelVar)
	discard  = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// Init opens path for appending and installs it as the log sink.
// Calling Init again replaces the previous sink.
func Init(path string, debug bool) error {
	mu.Lock()
	defer mu.Unlock()

	if path == "" {
		path = DefaultPath
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", path, err)
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	setDebugLocked(debug)
	base = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	base.Info("logger initialized", "path", path)
	return nil
}

// SetDebug toggles debug level output.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	setDebugLocked(enabled)
}

func setDebugLocked(enabled bool) {
	if enabled {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelInfo)
	}
}

// Component returns a logger tagged with component=name. Before Init it
// returns a logger that drops everything.
func Component(name string) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if base == nil {
		return discard
	}
	return base.With(slog.String("component", name))
}

// Close flushes and closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	base = nil
}
