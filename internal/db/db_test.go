package db

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dori/taskflow/internal/model"
	"github.com/dori/taskflow/internal/server"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	first, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	if err := first.InsertTask(context.Background(), model.Task{ID: "t1", Title: "keep", Priority: model.PriorityLow, CreatedAt: now}); err != nil {
		t.Fatalf("InsertTask() error = %v", err)
	}
	first.Close()

	second, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer second.Close()
	got, err := second.GetTask(context.Background(), "t1")
	if err != nil {
		t.Fatalf("GetTask() error = %v", err)
	}
	if got.Title != "keep" || !got.CreatedAt.Equal(now) {
		t.Fatalf("task = %+v, want persisted across reopen", got)
	}
}

func TestTaskRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	created := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	done := created.Add(90 * time.Minute)

	task := model.Task{ID: "t1", Title: "Ship release", Priority: model.PriorityHigh, CreatedAt: created}
	if err := db.InsertTask(ctx, task); err != nil {
		t.Fatalf("InsertTask() error = %v", err)
	}

	task.Completed = true
	task.CompletedAt = &done
	task.Title = "Ship release notes"
	if err := db.UpdateTask(ctx, task); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}

	got, err := db.GetTask(ctx, "t1")
	if err != nil {
		t.Fatalf("GetTask() error = %v", err)
	}
	if got.Title != "Ship release notes" || got.Priority != model.PriorityHigh || !got.Completed {
		t.Fatalf("task = %+v", got)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(done) {
		t.Fatalf("CompletedAt = %v, want %v", got.CompletedAt, done)
	}

	task.Completed = false
	task.CompletedAt = nil
	if err := db.UpdateTask(ctx, task); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	got, _ = db.GetTask(ctx, "t1")
	if got.Completed || got.CompletedAt != nil {
		t.Fatalf("task = %+v, want pending with no completed_at", got)
	}
}

func TestListTasksNewestFirst(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		err := db.InsertTask(ctx, model.Task{ID: id, Title: id, Priority: model.PriorityMedium, CreatedAt: base.Add(time.Duration(i) * time.Second)})
		if err != nil {
			t.Fatalf("InsertTask(%s) error = %v", id, err)
		}
	}
	// Same instant as c: later insert wins the tie.
	if err := db.InsertTask(ctx, model.Task{ID: "d", Title: "d", Priority: model.PriorityLow, CreatedAt: base.Add(2 * time.Second)}); err != nil {
		t.Fatalf("InsertTask(d) error = %v", err)
	}

	tasks, err := db.ListTasks(ctx)
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	var ids string
	for _, task := range tasks {
		ids += task.ID
	}
	if ids != "dcba" {
		t.Fatalf("order = %s, want dcba", ids)
	}
}

func TestMissingTaskIsNotFound(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if _, err := db.GetTask(ctx, "nope"); !errors.Is(err, server.ErrNotFound) {
		t.Fatalf("GetTask() error = %v, want ErrNotFound", err)
	}
	if err := db.UpdateTask(ctx, model.Task{ID: "nope", Priority: model.PriorityLow}); !errors.Is(err, server.ErrNotFound) {
		t.Fatalf("UpdateTask() error = %v, want ErrNotFound", err)
	}
	if err := db.DeleteTask(ctx, "nope"); !errors.Is(err, server.ErrNotFound) {
		t.Fatalf("DeleteTask() error = %v, want ErrNotFound", err)
	}
}

func TestClearTasks(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	now := time.Now()
	for i := 0; i < 3; i++ {
		_ = db.InsertTask(ctx, model.Task{ID: fmt.Sprint(i), Title: "x", Priority: model.PriorityLow, CreatedAt: now})
	}
	if err := db.ClearTasks(ctx); err != nil {
		t.Fatalf("ClearTasks() error = %v", err)
	}
	tasks, err := db.ListTasks(ctx)
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Fatalf("tasks = %v, want empty non-nil", tasks)
	}
}

func TestPriorityConstraint(t *testing.T) {
	db := openTestDB(t)
	err := db.InsertTask(context.Background(), model.Task{ID: "x", Title: "x", Priority: "urgent", CreatedAt: time.Now()})
	if err == nil {
		t.Fatal("InsertTask(urgent) error = nil, want check constraint failure")
	}
}

// TestConcurrentServiceNoDeadlock guards the single-connection pool: list,
// toggle and stats calls from many goroutines must all complete because no
// query holds the connection across another.
func TestConcurrentServiceNoDeadlock(t *testing.T) {
	db := openTestDB(t)
	svc := server.NewService(db)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		task, err := svc.Create(ctx, fmt.Sprintf("Task %d", i), model.PriorityMedium)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		ids = append(ids, task.ID)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for _, id := range ids {
			wg.Add(3)
			go func() {
				defer wg.Done()
				if _, err := svc.Toggle(ctx, id); err != nil {
					t.Errorf("Toggle(%s) error = %v", id, err)
				}
			}()
			go func() {
				defer wg.Done()
				if _, err := svc.List(ctx); err != nil {
					t.Errorf("List() error = %v", err)
				}
			}()
			go func() {
				defer wg.Done()
				if _, err := svc.Stats(ctx); err != nil {
					t.Errorf("Stats() error = %v", err)
				}
			}()
		}
		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Test timed out - possible deadlock detected")
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if list.Completed != len(ids) {
		t.Fatalf("completed = %d, want %d", list.Completed, len(ids))
	}
}
