// Package pgdb is the PostgreSQL task store used by `taskflow serve` when
// database.driver is "postgres".
package pgdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dori/taskflow/internal/model"
	"github.com/dori/taskflow/internal/server"
)

var _ server.Store = (*Store)(nil)

// Store is a PostgreSQL-backed task store.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens a pool for dsn, verifies it and ensures the schema exists.
func Connect(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	s := New(pool)
	if err := s.EnsureTable(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure tasks table: %w", err)
	}
	return s, nil
}

// New wraps an existing pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// EnsureTable creates the tasks table if it doesn't exist.
func (s *Store) EnsureTable(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS tasks (
			id           TEXT PRIMARY KEY,
			title        TEXT NOT NULL,
			priority     TEXT NOT NULL DEFAULT 'medium' CHECK (priority IN ('high', 'medium', 'low')),
			completed    BOOLEAN NOT NULL DEFAULT FALSE,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			completed_at TIMESTAMPTZ,
			seq          BIGSERIAL
		)`)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks(created_at DESC)`)
	return err
}

const taskColumns = `id, title, priority, completed, created_at, completed_at`

// ListTasks returns all tasks, newest first.
func (s *Store) ListTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at DESC, seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetTask retrieves a single task by ID.
func (s *Store) GetTask(ctx context.Context, id string) (model.Task, error) {
	t, err := scanTask(s.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Task{}, server.ErrNotFound
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("get task %s: %w", id, err)
	}
	return t, nil
}

// InsertTask stores a new task.
func (s *Store) InsertTask(ctx context.Context, t model.Task) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO tasks (id, title, priority, completed, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.Title, string(t.Priority), t.Completed, t.CreatedAt.Truncate(time.Microsecond), completedAt(t))
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// UpdateTask overwrites the mutable fields of an existing task.
func (s *Store) UpdateTask(ctx context.Context, t model.Task) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE tasks SET title = $1, priority = $2, completed = $3, completed_at = $4
		WHERE id = $5`,
		t.Title, string(t.Priority), t.Completed, completedAt(t), t.ID)
	if err != nil {
		return fmt.Errorf("update task %s: %w", t.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return server.ErrNotFound
	}
	return nil
}

// DeleteTask removes a task.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return server.ErrNotFound
	}
	return nil
}

// ClearTasks removes every task.
func (s *Store) ClearTasks(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	return nil
}

func completedAt(t model.Task) *time.Time {
	if t.CompletedAt == nil {
		return nil
	}
	at := t.CompletedAt.Truncate(time.Microsecond)
	return &at
}

func scanTask(row pgx.Row) (model.Task, error) {
	var t model.Task
	var priority string
	if err := row.Scan(&t.ID, &t.Title, &priority, &t.Completed, &t.CreatedAt, &t.CompletedAt); err != nil {
		return model.Task{}, err
	}
	t.Priority = model.Priority(priority)
	return t, nil
}
