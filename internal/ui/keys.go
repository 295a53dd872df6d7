package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/dori/taskflow/internal/ui/views"
)

// KeyMap defines all keybindings for the application
type KeyMap struct {
	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Draft input
	Add      key.Binding
	Submit   key.Binding
	Priority key.Binding
	Cancel   key.Binding

	// Task actions
	Toggle key.Binding
	Delete key.Binding
	Copy   key.Binding
	Clear  key.Binding

	// Filters
	FilterCycle     key.Binding
	FilterAll       key.Binding
	FilterPending   key.Binding
	FilterCompleted key.Binding

	// General
	Details    key.Binding
	Refresh    key.Binding
	Help       key.Binding
	ThemeCycle key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),

		// Draft input
		Add: key.NewBinding(
			key.WithKeys("a", "i"),
			key.WithHelp("a", "new task"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add task"),
		),
		Priority: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "cycle priority"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to list"),
		),

		// Task actions
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "mark done/todo"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete task"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy title"),
		),
		Clear: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear all"),
		),

		// Filters
		FilterCycle: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "next filter"),
		),
		FilterAll: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "all"),
		),
		FilterPending: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "pending"),
		),
		FilterCompleted: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "completed"),
		),

		// General
		Details: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "details"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		ThemeCycle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns short help bindings (for status bar)
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.FilterCycle, k.Help, k.Quit}
}

// FullHelp returns full help bindings (for help view)
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Add, k.Submit, k.Priority, k.Cancel},
		{k.Toggle, k.Delete, k.Copy, k.Clear},
		{k.FilterCycle, k.FilterAll, k.FilterPending, k.FilterCompleted},
		{k.Details, k.Refresh, k.ThemeCycle, k.Help, k.Quit},
	}
}

// HelpSections groups FullHelp under titles for the help overlay
func (k KeyMap) HelpSections() []views.HelpSection {
	titles := []string{"Navigation", "New task", "Tasks", "Filters", "General"}
	groups := k.FullHelp()
	sections := make([]views.HelpSection, len(groups))
	for i, g := range groups {
		sections[i] = views.HelpSection{Title: titles[i], Bindings: g}
	}
	return sections
}
