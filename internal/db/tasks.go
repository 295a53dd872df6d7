package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dori/taskflow/internal/model"
	"github.com/dori/taskflow/internal/server"
)

var _ server.Store = (*DB)(nil)

const taskColumns = `id, title, priority, completed, created_at, completed_at`

// ListTasks returns all tasks, newest first
func (db *DB) ListTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

// GetTask returns a single task by ID
func (db *DB) GetTask(ctx context.Context, id string) (model.Task, error) {
	row := db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)

	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, server.ErrNotFound
	}
	return t, err
}

// InsertTask stores a new task
func (db *DB) InsertTask(ctx context.Context, t model.Task) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, priority, completed, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.ID, t.Title, t.Priority, t.Completed, t.CreatedAt.UTC(), completedAt(t))
	return err
}

// UpdateTask overwrites the mutable fields of an existing task
func (db *DB) UpdateTask(ctx context.Context, t model.Task) error {
	res, err := db.ExecContext(ctx, `
		UPDATE tasks SET title = ?, priority = ?, completed = ?, completed_at = ?
		WHERE id = ?
	`, t.Title, t.Priority, t.Completed, completedAt(t), t.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteTask deletes a task
func (db *DB) DeleteTask(ctx context.Context, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// ClearTasks deletes every task
func (db *DB) ClearTasks(ctx context.Context) error {
	_, err := db.ExecContext(ctx, `DELETE FROM tasks`)
	return err
}

// Helper functions

func completedAt(t model.Task) any {
	if t.CompletedAt == nil {
		return nil
	}
	return t.CompletedAt.UTC()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return server.ErrNotFound
	}
	return nil
}

func scanTasks(rows *sql.Rows) ([]model.Task, error) {
	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (model.Task, error) {
	var t model.Task
	var done sql.NullTime

	if err := s.Scan(&t.ID, &t.Title, &t.Priority, &t.Completed, &t.CreatedAt, &done); err != nil {
		return model.Task{}, err
	}
	if done.Valid {
		at := done.Time
		t.CompletedAt = &at
	}
	return t, nil
}
