package server

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/dori/taskflow/internal/model"
)

// ErrNotFound is returned by stores and the service for unknown task ids.
var ErrNotFound = errors.New("task not found")

// Store persists tasks. ListTasks returns tasks newest first.
type Store interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	GetTask(ctx context.Context, id string) (model.Task, error)
	InsertTask(ctx context.Context, t model.Task) error
	UpdateTask(ctx context.Context, t model.Task) error
	DeleteTask(ctx context.Context, id string) error
	ClearTasks(ctx context.Context) error
}

// MemoryStore keeps tasks in process memory. Data is lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	tasks []model.Task
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) ListTasks(context.Context) ([]model.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Task, len(m.tasks))
	copy(out, m.tasks)
	// Stable, so tasks created in the same instant stay newest-inserted first.
	slices.SortStableFunc(out, func(a, b model.Task) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) GetTask(_ context.Context, id string) (model.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.index(id)
	if i < 0 {
		return model.Task{}, ErrNotFound
	}
	return m.tasks[i], nil
}

func (m *MemoryStore) InsertTask(_ context.Context, t model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tasks = append([]model.Task{t}, m.tasks...)
	return nil
}

func (m *MemoryStore) UpdateTask(_ context.Context, t model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(t.ID)
	if i < 0 {
		return ErrNotFound
	}
	m.tasks[i] = t
	return nil
}

func (m *MemoryStore) DeleteTask(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return ErrNotFound
	}
	m.tasks = slices.Delete(m.tasks, i, i+1)
	return nil
}

func (m *MemoryStore) ClearTasks(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tasks = nil
	return nil
}

func (m *MemoryStore) index(id string) int {
	return slices.IndexFunc(m.tasks, func(t model.Task) bool { return t.ID == id })
}
