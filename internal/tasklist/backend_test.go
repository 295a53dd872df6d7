package tasklist_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/dori/taskflow/internal/client"
	"github.com/dori/taskflow/internal/model"
	"github.com/dori/taskflow/internal/server"
	"github.com/dori/taskflow/internal/tasklist"
)

// TestContainerAgainstServer runs the container through the HTTP client
// against a real handler backed by the in-memory store.
func TestContainerAgainstServer(t *testing.T) {
	svc := server.NewService(server.NewMemoryStore())
	srv := httptest.NewServer(server.NewHandler(svc, nil))
	t.Cleanup(srv.Close)

	api, err := client.New(srv.URL + "/api")
	if err != nil {
		t.Fatalf("client.New() error = %v", err)
	}
	var fired []tasklist.Celebration
	c := tasklist.New(api, tasklist.WithCelebrator(tasklist.CelebratorFunc(func(cel tasklist.Celebration) {
		fired = append(fired, cel)
	})))
	ctx := context.Background()

	if err := c.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s := c.Snapshot(); s.Loading || len(s.Tasks) != 0 {
		t.Fatalf("state = %+v, want loaded empty list", s)
	}

	if err := c.AddTask(ctx, "  ", model.PriorityHigh); !errors.Is(err, tasklist.ErrEmptyTitle) {
		t.Fatalf("AddTask(blank) error = %v, want ErrEmptyTitle", err)
	}
	if err := c.AddTask(ctx, "Water plants", model.PriorityHigh); err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}

	s := c.Snapshot()
	if len(s.Tasks) != 1 || s.Stats.Pending != 1 {
		t.Fatalf("state = %+v, want one pending task", s)
	}

	cel, err := c.ToggleTask(ctx, s.Tasks[0].ID)
	if err != nil {
		t.Fatalf("ToggleTask() error = %v", err)
	}
	if cel != tasklist.CelebrationLarge || len(fired) != 1 {
		t.Fatalf("celebration = %v, fired %v, want large once", cel, fired)
	}
	if s := c.Snapshot(); !s.Stats.AllDone() || s.Tasks[0].CompletedAt == nil {
		t.Fatalf("state = %+v, want all done after reload", s)
	}

	if err := c.LoadDetails(ctx); err != nil {
		t.Fatalf("LoadDetails() error = %v", err)
	}
	if d := c.Snapshot().Details; d == nil || d.CompletedToday != 1 || d.ByPriority[model.PriorityHigh] != 1 {
		t.Fatalf("Details = %+v", d)
	}

	if _, err := c.ToggleTask(ctx, "missing"); !client.IsNotFound(err) {
		t.Fatalf("ToggleTask(missing) error = %v, want not found", err)
	}
	if c.Snapshot().Err == nil {
		t.Fatal("Err = nil, want recorded failure")
	}

	if err := c.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}
	if s := c.Snapshot(); len(s.Tasks) != 0 || s.Err != nil {
		t.Fatalf("state = %+v, want empty and error cleared", s)
	}
}
