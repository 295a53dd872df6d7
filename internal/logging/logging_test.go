package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dori/taskflow/internal/config"
)

func TestRuntimeWritesConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "taskflow.log")

	logger, err := New(&console, config.LoggingConfig{Level: "info", File: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("tasks loaded", "count", 3)
	logger.Debug("hidden below info")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if !strings.Contains(console.String(), "tasks loaded") {
		t.Fatalf("console = %q, want event", console.String())
	}
	if strings.Contains(console.String(), "hidden below info") {
		t.Fatalf("console = %q, debug event should be filtered", console.String())
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(content), "count=3") {
		t.Fatalf("file = %q, want logfmt keyvals", string(content))
	}
	if logger.FilePath() != path {
		t.Fatalf("FilePath() = %q, want %q", logger.FilePath(), path)
	}
}

func TestRuntimeConsoleMute(t *testing.T) {
	var console bytes.Buffer
	logger, err := New(&console, config.LoggingConfig{Level: "debug"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.SetConsoleEnabled(false)
	logger.Error("muted")
	if console.Len() != 0 {
		t.Fatalf("console = %q, want empty while muted", console.String())
	}
	logger.SetConsoleEnabled(true)
	logger.Warn("audible")
	if !strings.Contains(console.String(), "audible") {
		t.Fatalf("console = %q, want event after unmute", console.String())
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(nil, config.LoggingConfig{Level: "chatty"}); err == nil {
		t.Fatal("New() error = nil, want error")
	}
}

func TestStdWriterForwardsLines(t *testing.T) {
	var console bytes.Buffer
	logger, err := New(&console, config.LoggingConfig{Level: "debug"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	n, err := StdWriter{Logger: logger}.Write([]byte("OK 00001_tasks.sql\n"))
	if err != nil || n != len("OK 00001_tasks.sql\n") {
		t.Fatalf("Write() = (%d, %v)", n, err)
	}
	if !strings.Contains(console.String(), "00001_tasks.sql") {
		t.Fatalf("console = %q, want forwarded line", console.String())
	}
}
