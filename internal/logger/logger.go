// Package logger provides structured logging for parley on top of log/slog.
//
// Output is discarded until Init is called, so library code and tests can log
// freely without touching the filesystem. The CLI initializes the logger with a
// file path at startup and closes it on exit.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu      sync.RWMutex
	level   = new(slog.LevelVar)
	base    = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: level}))
	logFile *os.File
)

func init() {
	level.Set(slog.LevelInfo)
}

// logDir returns the directory holding parley's log files
func logDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".parley", "logs"), nil
}

// DefaultLogPath returns the path of the main log file.
func DefaultLogPath() (string, error) {
	dir, err := logDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "parley.log"), nil
}

// Init opens (or creates) the log file at path and routes all loggers to it.
// Calling Init again replaces the previous destination.
func Init(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	base = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return nil
}

// SetOutput routes all loggers to w. Used by tests that want to inspect output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	base = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// SetDebug toggles debug level logging.
func SetDebug(enabled bool) {
	if enabled {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

// Get returns the base logger.
func Get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// With returns a logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	return Get().With(args...)
}

// WithComponent returns a logger tagged with a component name.
func WithComponent(name string) *slog.Logger {
	return Get().With("component", name)
}

// Log writes a printf-style debug line. Prefer the structured helpers in new code.
func Log(format string, args ...any) {
	Get().Debug(fmt.Sprintf(format, args...))
}

func Debug(msg string, args ...any) { Get().Debug(msg, args...) }
func Info(msg string, args ...any)  { Get().Info(msg, args...) }
func Warn(msg string, args ...any)  { Get().Warn(msg, args...) }
func Error(msg string, args ...any) { Get().Error(msg, args...) }

// Close flushes and closes the log file, if any, and discards further output.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	base = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: level}))
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// ClearLogs removes all *.log files in the log directory and returns how many
// were removed.
func ClearLogs() (int, error) {
	dir, err := logDir()
	if err != nil {
		return 0, err
	}
	return clearLogsIn(dir)
}

func clearLogsIn(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".log") {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
