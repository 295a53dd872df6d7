// Package server implements the taskflow REST backend: task validation and
// bookkeeping over a pluggable Store, the HTTP handlers and the listener.
package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dori/taskflow/internal/logging"
	"github.com/dori/taskflow/internal/model"
)

var (
	ErrInvalidTitle    = fmt.Errorf("title must be between 1 and %d characters", model.MaxTitleLength)
	ErrInvalidPriority = errors.New("priority must be one of high, medium, low")
)

// Update is a partial task change. Nil fields are left untouched.
type Update struct {
	Title     *string
	Completed *bool
	Priority  *model.Priority
}

// Service applies task rules on top of a Store.
type Service struct {
	store Store
	log   logging.Logger
	now   func() time.Time
	newID func() string

	// mu serializes read-modify-write cycles (toggle, update).
	mu sync.Mutex
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides task id generation.
func WithIDGenerator(fn func() string) ServiceOption {
	return func(s *Service) { s.newID = fn }
}

// WithServiceLogger sets the service logger.
func WithServiceLogger(l logging.Logger) ServiceOption {
	return func(s *Service) { s.log = l }
}

func NewService(store Store, opts ...ServiceOption) *Service {
	s := &Service{
		store: store,
		log:   logging.Discard(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every task newest first together with aggregate stats.
func (s *Service) List(ctx context.Context) (model.TaskList, error) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return model.TaskList{}, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return model.TaskList{Tasks: tasks, Stats: model.ComputeStats(tasks)}, nil
}

// Get returns one task.
func (s *Service) Get(ctx context.Context, id string) (model.Task, error) {
	return s.store.GetTask(ctx, id)
}

// Create validates and stores a new pending task. An empty priority means medium.
func (s *Service) Create(ctx context.Context, title string, priority model.Priority) (model.Task, error) {
	title, err := normalizeTitle(title)
	if err != nil {
		return model.Task{}, err
	}
	priority, err = normalizePriority(priority)
	if err != nil {
		return model.Task{}, err
	}

	t := model.Task{
		ID:        s.newID(),
		Title:     title,
		Priority:  priority,
		CreatedAt: s.now(),
	}
	if err := s.store.InsertTask(ctx, t); err != nil {
		return model.Task{}, fmt.Errorf("insert task: %w", err)
	}
	s.log.Info("task created", "id", t.ID, "priority", t.Priority)
	return t, nil
}

// Update applies a partial change. Changing completion maintains completed_at.
func (s *Service) Update(ctx context.Context, id string, u Update) (model.Task, error) {
	var title string
	if u.Title != nil {
		var err error
		if title, err = normalizeTitle(*u.Title); err != nil {
			return model.Task{}, err
		}
	}
	if u.Priority != nil && !u.Priority.Valid() {
		return model.Task{}, ErrInvalidPriority
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	if u.Title != nil {
		t.Title = title
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.Completed != nil {
		s.setCompleted(&t, *u.Completed)
	}
	if err := s.store.UpdateTask(ctx, t); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// Toggle flips completion and returns the updated task.
func (s *Service) Toggle(ctx context.Context, id string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	s.setCompleted(&t, !t.Completed)
	if err := s.store.UpdateTask(ctx, t); err != nil {
		return model.Task{}, err
	}
	s.log.Debug("task toggled", "id", id, "completed", t.Completed)
	return t, nil
}

// Delete removes one task.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.log.Info("task deleted", "id", id)
	return nil
}

// Clear removes every task.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.store.ClearTasks(ctx); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	s.log.Info("all tasks cleared")
	return nil
}

// Stats returns aggregate counts plus per-priority totals and the number of
// tasks completed since local midnight.
func (s *Service) Stats(ctx context.Context) (model.DetailedStats, error) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return model.DetailedStats{}, fmt.Errorf("list tasks: %w", err)
	}

	out := model.DetailedStats{
		Stats:      model.ComputeStats(tasks),
		ByPriority: make(map[model.Priority]int, 3),
	}
	for _, p := range model.Priorities() {
		out.ByPriority[p] = 0
	}

	now := s.now()
	y, m, d := now.Date()
	for _, t := range tasks {
		out.ByPriority[t.Priority]++
		if t.Completed && t.CompletedAt != nil {
			cy, cm, cd := t.CompletedAt.In(now.Location()).Date()
			if cy == y && cm == m && cd == d {
				out.CompletedToday++
			}
		}
	}
	return out, nil
}

func (s *Service) setCompleted(t *model.Task, completed bool) {
	t.Completed = completed
	if completed {
		at := s.now()
		t.CompletedAt = &at
	} else {
		t.CompletedAt = nil
	}
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if n := utf8.RuneCountInString(title); n == 0 || n > model.MaxTitleLength {
		return "", ErrInvalidTitle
	}
	return title, nil
}

func normalizePriority(p model.Priority) (model.Priority, error) {
	if p == "" {
		return model.PriorityMedium, nil
	}
	if !p.Valid() {
		return "", ErrInvalidPriority
	}
	return p, nil
}
