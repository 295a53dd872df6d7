package model

// Stats holds server-computed aggregate counts over the task collection.
// Completed == Total - Pending always holds for values produced by the backend.
type Stats struct {
	Total              int     `json:"total"`
	Completed          int     `json:"completed"`
	Pending            int     `json:"pending"`
	ProgressPercentage float64 `json:"progress_percentage"`
}

// AllDone reports whether there is at least one task and every task is complete
func (s Stats) AllDone() bool {
	return s.Total > 0 && s.ProgressPercentage >= 100
}

// TaskList is the body of GET /tasks: the collection plus its stats, fetched together
type TaskList struct {
	Tasks []Task `json:"tasks"`
	Stats
}

// DetailedStats extends Stats with per-priority counts and today's completions
type DetailedStats struct {
	Stats
	ByPriority     map[Priority]int `json:"by_priority"`
	CompletedToday int              `json:"completed_today"`
}

// ComputeStats derives Stats from a task collection
func ComputeStats(tasks []Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.ProgressPercentage = float64(s.Completed) / float64(s.Total) * 100
	}
	return s
}
