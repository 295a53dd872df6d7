package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Priority represents task priority level
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists every priority in display order
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// ParsePriority converts text to a Priority. The empty string maps to medium.
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PriorityMedium, true
	case "high", "hi", "h":
		return PriorityHigh, true
	case "medium", "med", "m":
		return PriorityMedium, true
	case "low", "l":
		return PriorityLow, true
	default:
		return "", false
	}
}

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Next returns the following priority in the high → medium → low cycle
func (p Priority) Next() Priority {
	switch p {
	case PriorityHigh:
		return PriorityMedium
	case PriorityMedium:
		return PriorityLow
	default:
		return PriorityHigh
	}
}

// Label returns the capitalized display name
func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityLow:
		return "Low"
	default:
		return "Medium"
	}
}

// MaxTitleLength is the longest accepted title, in characters, after trimming.
const MaxTitleLength = 200

// Task represents a todo item as served by the backend
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Priority    Priority   `json:"priority"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// naiveLayout matches ISO timestamps without a zone offset, as written by
// Python's datetime.isoformat on a naive datetime.
const naiveLayout = "2006-01-02T15:04:05.999999999"

// ParseTimestamp accepts RFC 3339 and falls back to a zoneless ISO timestamp
// read in local time.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(naiveLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// UnmarshalJSON decodes a task, tolerating timestamps without a zone offset.
func (t *Task) UnmarshalJSON(b []byte) error {
	type plain Task
	var raw struct {
		plain
		CreatedAt   string  `json:"created_at"`
		CompletedAt *string `json:"completed_at"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*t = Task(raw.plain)
	t.CreatedAt = time.Time{}
	t.CompletedAt = nil

	if raw.CreatedAt != "" {
		at, err := ParseTimestamp(raw.CreatedAt)
		if err != nil {
			return err
		}
		t.CreatedAt = at
	}
	if raw.CompletedAt != nil && *raw.CompletedAt != "" {
		at, err := ParseTimestamp(*raw.CompletedAt)
		if err != nil {
			return err
		}
		t.CompletedAt = &at
	}
	return nil
}
