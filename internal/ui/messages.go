package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dori/taskflow/internal/tasklist"
)

// Op names the container operation a stateMsg reports on
type Op string

const (
	OpLoad    Op = "load"
	OpAdd     Op = "add"
	OpToggle  Op = "toggle"
	OpDelete  Op = "delete"
	OpClear   Op = "clear"
	OpDetails Op = "details"
)

// Messages for inter-component communication

// StateMsg carries the container snapshot after an operation finished
type StateMsg struct {
	Op    Op
	State tasklist.State
	Err   error
}

// CelebrateMsg asks the UI to play a celebration
type CelebrateMsg struct {
	Celebration tasklist.Celebration
}

// ClipboardMsg reports the result of copying a task title
type ClipboardMsg struct {
	Title string
	Err   error
}

// ChannelCelebrator hands celebrations from the container to the UI loop.
// Celebrate never blocks; bursts beyond the buffer are dropped.
type ChannelCelebrator struct {
	ch chan tasklist.Celebration
}

// NewChannelCelebrator creates a celebrator with a small buffer
func NewChannelCelebrator() *ChannelCelebrator {
	return &ChannelCelebrator{ch: make(chan tasklist.Celebration, 8)}
}

// Celebrate queues c for the UI
func (c *ChannelCelebrator) Celebrate(cel tasklist.Celebration) {
	select {
	case c.ch <- cel:
	default:
	}
}

// Listen waits for the next celebration
func (c *ChannelCelebrator) Listen() tea.Cmd {
	return func() tea.Msg {
		return CelebrateMsg{Celebration: <-c.ch}
	}
}
