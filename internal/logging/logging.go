// Package logging fans runtime events out to a styled console sink and an
// optional logfmt file sink.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	charmLog "github.com/charmbracelet/log"

	"github.com/dori/taskflow/internal/config"
)

// Logger is the small logging surface the rest of taskflow depends on.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

// Discard returns a Logger that drops everything.
func Discard() Logger {
	return charmLog.New(io.Discard)
}

// Runtime writes to a console sink and, when configured, a file sink.
type Runtime struct {
	sinks          []*charmLog.Logger
	consoleSink    *charmLog.Logger
	consoleEnabled bool
	closeFile      func() error
	filePath       string
}

// New configures sinks from the logging config section.
func New(stderr io.Writer, cfg config.LoggingConfig) (*Runtime, error) {
	level, err := charmLog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil {
		return nil, fmt.Errorf("parse logging level %q: %w", cfg.Level, err)
	}
	if stderr == nil {
		stderr = io.Discard
	}

	console := charmLog.NewWithOptions(stderr, charmLog.Options{
		Level:           level,
		Prefix:          "taskflow",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Formatter:       charmLog.TextFormatter,
	})
	r := &Runtime{
		sinks:          []*charmLog.Logger{console},
		consoleSink:    console,
		consoleEnabled: true,
	}

	path := strings.TrimSpace(cfg.File)
	if path == "" {
		return r, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	// File output stays unstyled so it can be grepped and parsed.
	fileLogger := charmLog.NewWithOptions(f, charmLog.Options{
		Level:           level,
		Prefix:          "taskflow",
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.LogfmtFormatter,
	})
	r.sinks = append(r.sinks, fileLogger)
	r.closeFile = f.Close
	r.filePath = path
	return r, nil
}

// FilePath returns the active log file, if any.
func (r *Runtime) FilePath() string {
	if r == nil {
		return ""
	}
	return r.filePath
}

// SetConsoleEnabled mutes or unmutes the console sink. The TUI mutes it so
// log lines never land on top of the rendered screen.
func (r *Runtime) SetConsoleEnabled(enabled bool) {
	if r == nil {
		return
	}
	r.consoleEnabled = enabled
}

// Close closes the file sink.
func (r *Runtime) Close() error {
	if r == nil || r.closeFile == nil {
		return nil
	}
	return r.closeFile()
}

func (r *Runtime) each(fn func(*charmLog.Logger)) {
	if r == nil {
		return
	}
	for _, sink := range r.sinks {
		if sink == r.consoleSink && !r.consoleEnabled {
			continue
		}
		fn(sink)
	}
}

func (r *Runtime) Debug(msg string, keyvals ...any) {
	r.each(func(l *charmLog.Logger) { l.Debug(msg, keyvals...) })
}

func (r *Runtime) Info(msg string, keyvals ...any) {
	r.each(func(l *charmLog.Logger) { l.Info(msg, keyvals...) })
}

func (r *Runtime) Warn(msg string, keyvals ...any) {
	r.each(func(l *charmLog.Logger) { l.Warn(msg, keyvals...) })
}

func (r *Runtime) Error(msg string, keyvals ...any) {
	r.each(func(l *charmLog.Logger) { l.Error(msg, keyvals...) })
}

// StdWriter adapts the logger for libraries that expect a *log.Logger
// style writer (goose). Each write becomes one debug event.
type StdWriter struct {
	Logger Logger
}

func (w StdWriter) Write(p []byte) (int, error) {
	if w.Logger != nil {
		w.Logger.Debug(strings.TrimRight(string(p), "\n"))
	}
	return len(p), nil
}
