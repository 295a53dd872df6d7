package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dori/taskflow/internal/config"
	"github.com/dori/taskflow/internal/model"
)

func TestNewMemoryStore(t *testing.T) {
	a, err := New(context.Background(), config.DatabaseConfig{Driver: config.DriverMemory}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Close()

	if _, err := a.Service.Create(context.Background(), "hello", model.PriorityLow); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	list, err := a.Service.List(context.Background())
	if err != nil || list.Total != 1 {
		t.Fatalf("List() = %+v, %v; want one task", list, err)
	}
}

func TestSQLiteLockPreventsSecondInstance(t *testing.T) {
	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "data", "taskflow.db"),
	}

	first, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := New(context.Background(), cfg, nil); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second New() error = %v, want ErrAlreadyRunning", err)
	}

	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	again, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("New() after close error = %v", err)
	}
	defer again.Close()
}

func TestUnknownDriver(t *testing.T) {
	if _, err := New(context.Background(), config.DatabaseConfig{Driver: "mysql"}, nil); err == nil {
		t.Fatal("New(mysql) error = nil, want error")
	}
}
