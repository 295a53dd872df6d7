package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha theme - Soothing pastel theme
// https://github.com/catppuccin/catppuccin
var Catppuccin = Theme{
	Name: "catppuccin",

	Background: lipgloss.Color("#1E1E2E"), // Base
	Foreground: lipgloss.Color("#CDD6F4"), // Text
	Subtle:     lipgloss.Color("#6C7086"), // Overlay0
	Highlight:  lipgloss.Color("#313244"), // Surface0
	Border:     lipgloss.Color("#45475A"), // Surface1

	Primary:   lipgloss.Color("#A6E3A1"), // Green
	Secondary: lipgloss.Color("#94E2D5"), // Teal
	Accent:    lipgloss.Color("#89DCEB"), // Sky
	Info:      lipgloss.Color("#74C7EC"), // Sapphire

	Success: lipgloss.Color("#A6E3A1"),
	Warning: lipgloss.Color("#F9E2AF"), // Yellow
	Error:   lipgloss.Color("#F38BA8"), // Red

	PriorityLow:    lipgloss.Color("#A6E3A1"),
	PriorityMedium: lipgloss.Color("#F9E2AF"),
	PriorityHigh:   lipgloss.Color("#F38BA8"),

	GradientStart: "#94E2D5",
	GradientEnd:   "#A6E3A1",

	Confetti: []lipgloss.Color{"#F5C2E7", "#CBA6F7", "#89B4FA", "#A6E3A1", "#F9E2AF"},
}
