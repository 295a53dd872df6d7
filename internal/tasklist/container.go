package tasklist

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dori/taskflow/internal/logging"
	"github.com/dori/taskflow/internal/model"
)

// ErrEmptyTitle is returned when a task title is empty or whitespace only.
// No backend call is made in that case.
var ErrEmptyTitle = errors.New("task title is empty")

// ErrUnsupported is returned when the backend lacks an optional capability.
var ErrUnsupported = errors.New("operation not supported by backend")

// API is the backend contract the container consumes.
type API interface {
	List(ctx context.Context) (model.TaskList, error)
	Create(ctx context.Context, title string, priority model.Priority) (model.Task, error)
	Toggle(ctx context.Context, id string) (model.Task, error)
	Delete(ctx context.Context, id string) error
}

// DetailsAPI is implemented by backends that serve detailed statistics.
type DetailsAPI interface {
	Stats(ctx context.Context) (model.DetailedStats, error)
}

// Clearer is implemented by backends that can remove every task at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Container owns the client-side task state. Every successful mutation is
// followed by a full reload; nothing is patched locally. Network calls run
// without holding the lock, so racing mutations resolve as
// last-response-wins on the reload.
type Container struct {
	api       API
	celebrate Celebrator
	log       logging.Logger

	mu    sync.Mutex
	state State
}

// Option configures a Container.
type Option func(*Container)

// WithCelebrator sets the target for toggle celebrations.
func WithCelebrator(c Celebrator) Option {
	return func(ct *Container) { ct.celebrate = c }
}

// WithLogger sets the logger used for swallowed backend failures.
func WithLogger(l logging.Logger) Option {
	return func(ct *Container) { ct.log = l }
}

// New creates a container in the initial loading state.
func New(api API, opts ...Option) *Container {
	c := &Container{
		api:   api,
		log:   logging.Discard(),
		state: Initial(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a deep copy of the current state.
func (c *Container) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

func (c *Container) apply(fn func(State) State) {
	c.mu.Lock()
	c.state = fn(c.state)
	c.mu.Unlock()
}

// Load fetches the collection and stats and replaces local state wholesale.
// On failure the previous tasks and stats are kept and the error recorded.
func (c *Container) Load(ctx context.Context) error {
	list, err := c.api.List(ctx)
	if err != nil {
		c.log.Error("load tasks failed", "err", err)
		c.apply(func(s State) State { return s.LoadFailed(err) })
		return err
	}
	c.apply(func(s State) State { return s.Loaded(list) })
	c.log.Debug("tasks loaded", "total", list.Total, "completed", list.Completed, "pending", list.Pending)
	return nil
}

// AddTask creates a task and reloads. A blank title is rejected locally.
func (c *Container) AddTask(ctx context.Context, title string, priority model.Priority) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if !priority.Valid() {
		priority = model.PriorityMedium
	}

	task, err := c.api.Create(ctx, title, priority)
	if err != nil {
		c.log.Error("add task failed", "title", title, "err", err)
		c.apply(func(s State) State { return s.Failed(err) })
		return err
	}
	c.log.Info("task added", "id", task.ID, "priority", priority)
	c.apply(func(s State) State { return s.DraftSubmitted(title) })
	return c.Load(ctx)
}

// SetDraft replaces the new-task draft.
func (c *Container) SetDraft(title string, priority model.Priority) {
	c.apply(func(s State) State {
		return s.WithDraft(model.Draft{Title: title, Priority: priority})
	})
}

// SubmitDraft adds the current draft as a task.
func (c *Container) SubmitDraft(ctx context.Context) error {
	draft := c.Snapshot().Draft
	return c.AddTask(ctx, draft.Title, draft.Priority)
}

// ToggleTask flips completion on the backend, decides the celebration from
// the local snapshot with the update applied, fires it, then reloads.
func (c *Container) ToggleTask(ctx context.Context, id string) (Celebration, error) {
	updated, err := c.api.Toggle(ctx, id)
	if err != nil {
		c.log.Error("toggle task failed", "id", id, "err", err)
		c.apply(func(s State) State { return s.Failed(err) })
		return CelebrationNone, err
	}

	c.mu.Lock()
	celebration := Decide(c.state.Tasks, updated)
	c.mu.Unlock()

	c.log.Debug("task toggled", "id", id, "completed", updated.Completed, "celebration", celebration)
	if celebration != CelebrationNone && c.celebrate != nil {
		c.celebrate.Celebrate(celebration)
	}
	return celebration, c.Load(ctx)
}

// DeleteTask removes a task and reloads.
func (c *Container) DeleteTask(ctx context.Context, id string) error {
	if err := c.api.Delete(ctx, id); err != nil {
		c.log.Error("delete task failed", "id", id, "err", err)
		c.apply(func(s State) State { return s.Failed(err) })
		return err
	}
	c.log.Info("task deleted", "id", id)
	return c.Load(ctx)
}

// ClearAll removes every task when the backend supports it, then reloads.
func (c *Container) ClearAll(ctx context.Context) error {
	clearer, ok := c.api.(Clearer)
	if !ok {
		return ErrUnsupported
	}
	if err := clearer.Clear(ctx); err != nil {
		c.log.Error("clear tasks failed", "err", err)
		c.apply(func(s State) State { return s.Failed(err) })
		return err
	}
	c.log.Info("all tasks cleared")
	return c.Load(ctx)
}

// SetFilter changes the active filter. It never touches the backend.
func (c *Container) SetFilter(f model.Filter) {
	c.apply(func(s State) State { return s.WithFilter(f) })
}

// LoadDetails fetches the detailed statistics panel data.
func (c *Container) LoadDetails(ctx context.Context) error {
	details, ok := c.api.(DetailsAPI)
	if !ok {
		return ErrUnsupported
	}
	d, err := details.Stats(ctx)
	if err != nil {
		c.log.Warn("load detailed stats failed", "err", err)
		c.apply(func(s State) State { return s.Failed(err) })
		return err
	}
	c.apply(func(s State) State { return s.WithDetails(d) })
	return nil
}
