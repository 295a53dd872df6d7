package theme

import "github.com/charmbracelet/lipgloss"

// Taskflow theme - green, teal and cyan on slate
var Taskflow = Theme{
	Name: "taskflow",

	Background: lipgloss.Color("#0F172A"), // slate-900
	Foreground: lipgloss.Color("#F1F5F9"), // slate-100
	Subtle:     lipgloss.Color("#64748B"), // slate-500
	Highlight:  lipgloss.Color("#1E293B"), // slate-800
	Border:     lipgloss.Color("#334155"), // slate-700

	Primary:   lipgloss.Color("#22C55E"), // green-500
	Secondary: lipgloss.Color("#14B8A6"), // teal-500
	Accent:    lipgloss.Color("#06B6D4"), // cyan-500
	Info:      lipgloss.Color("#06B6D4"),

	Success: lipgloss.Color("#22C55E"),
	Warning: lipgloss.Color("#F59E0B"), // amber-500
	Error:   lipgloss.Color("#EF4444"), // red-500

	PriorityLow:    lipgloss.Color("#22C55E"),
	PriorityMedium: lipgloss.Color("#F59E0B"),
	PriorityHigh:   lipgloss.Color("#EF4444"),

	GradientStart: "#22C55E",
	GradientEnd:   "#06B6D4",

	Confetti: []lipgloss.Color{"#22C55E", "#14B8A6", "#06B6D4", "#FBBF24", "#F472B6"},
}
