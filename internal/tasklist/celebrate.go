package tasklist

import (
	"github.com/dori/taskflow/internal/model"
)

// Celebration is the side effect chosen after a successful toggle.
type Celebration int

const (
	CelebrationNone Celebration = iota
	// CelebrationSmall marks a single task that was just completed.
	CelebrationSmall
	// CelebrationLarge marks the moment every task is complete.
	CelebrationLarge
)

func (c Celebration) String() string {
	switch c {
	case CelebrationSmall:
		return "small"
	case CelebrationLarge:
		return "large"
	default:
		return "none"
	}
}

// Celebrator fires a visual or audible celebration.
type Celebrator interface {
	Celebrate(Celebration)
}

// CelebratorFunc adapts a function to Celebrator.
type CelebratorFunc func(Celebration)

func (f CelebratorFunc) Celebrate(c Celebration) { f(c) }

// Celebrators fans one celebration out to several targets.
type Celebrators []Celebrator

func (cs Celebrators) Celebrate(c Celebration) {
	for _, target := range cs {
		if target != nil {
			target.Celebrate(c)
		}
	}
}

// Decide picks the celebration for updated, applied to the local snapshot
// tasks. It must be evaluated before the reload replaces the snapshot.
func Decide(tasks []model.Task, updated model.Task) Celebration {
	allDone := len(tasks) > 0
	for _, t := range tasks {
		if t.ID == updated.ID {
			t = updated
		}
		if !t.Completed {
			allDone = false
			break
		}
	}
	switch {
	case allDone:
		return CelebrationLarge
	case updated.Completed:
		return CelebrationSmall
	default:
		return CelebrationNone
	}
}
