// Package tasklist owns the client-side task list: the cached collection,
// its stats, the active filter and the new-task draft. All state changes go
// through the transition methods on State.
package tasklist

import (
	"strings"

	"github.com/dori/taskflow/internal/model"
)

// State is an immutable-by-convention snapshot of the container.
// Transition methods return a modified copy.
type State struct {
	Tasks   []model.Task
	Stats   model.Stats
	Details *model.DetailedStats
	Loading bool
	Filter  model.Filter
	Draft   model.Draft
	Err     error
}

// Initial is the state before the first fetch completes.
func Initial() State {
	return State{
		Tasks:   []model.Task{},
		Loading: true,
		Filter:  model.FilterAll,
		Draft:   model.Draft{Priority: model.PriorityMedium},
	}
}

// Filtered returns the tasks selected by the active filter. It is derived on
// every call and never stored.
func (s State) Filtered() []model.Task {
	return s.Filter.Apply(s.Tasks)
}

// Task looks up a cached task by id.
func (s State) Task(id string) (model.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// Loaded replaces tasks and stats wholesale from one fetch.
func (s State) Loaded(list model.TaskList) State {
	tasks := make([]model.Task, len(list.Tasks))
	copy(tasks, list.Tasks)
	s.Tasks = tasks
	s.Stats = list.Stats
	s.Loading = false
	s.Err = nil
	return s
}

// LoadFailed keeps the previous tasks and stats and records err.
func (s State) LoadFailed(err error) State {
	s.Loading = false
	s.Err = err
	return s
}

// Failed records err from a mutation without touching cached data.
func (s State) Failed(err error) State {
	s.Err = err
	return s
}

// WithFilter switches the active filter.
func (s State) WithFilter(f model.Filter) State {
	s.Filter = f
	return s
}

// WithDraft replaces the draft.
func (s State) WithDraft(d model.Draft) State {
	if !d.Priority.Valid() {
		d.Priority = model.PriorityMedium
	}
	s.Draft = d
	return s
}

// DraftSubmitted clears the draft title if it still holds title. Text typed
// while the add was in flight is kept, as is the selected priority.
func (s State) DraftSubmitted(title string) State {
	if strings.TrimSpace(s.Draft.Title) == title {
		s.Draft.Title = ""
	}
	return s
}

// WithDetails stores the detailed stats panel data.
func (s State) WithDetails(d model.DetailedStats) State {
	s.Details = &d
	return s
}

// clone deep-copies the slices and pointers so callers can hold a snapshot
// while the container keeps changing.
func (s State) clone() State {
	tasks := make([]model.Task, len(s.Tasks))
	copy(tasks, s.Tasks)
	s.Tasks = tasks
	if s.Details != nil {
		d := *s.Details
		if s.Details.ByPriority != nil {
			d.ByPriority = make(map[model.Priority]int, len(s.Details.ByPriority))
			for k, v := range s.Details.ByPriority {
				d.ByPriority[k] = v
			}
		}
		s.Details = &d
	}
	return s
}
