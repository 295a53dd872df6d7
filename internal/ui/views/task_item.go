package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dori/taskflow/internal/model"
	"github.com/dori/taskflow/internal/ui/theme"
)

// PriorityChar returns the single-glyph marker for a priority
func PriorityChar(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "!"
	case model.PriorityLow:
		return "."
	default:
		return "-"
	}
}

// PriorityBadge renders the colored marker and label, e.g. "! High"
func PriorityBadge(p model.Priority) string {
	t := theme.Current.Theme
	return lipgloss.NewStyle().
		Foreground(t.PriorityColor(string(p))).
		Bold(true).
		Render(PriorityChar(p) + " " + p.Label())
}

// TaskItem renders one row of the task list
func TaskItem(task model.Task, focused bool, width int) string {
	styles := theme.Current.Styles

	cursor := "  "
	if focused {
		cursor = "> "
	}

	checkbox := "[ ]"
	if task.Completed {
		checkbox = "[x]"
	}

	badge := PriorityBadge(task.Priority)

	// cursor + checkbox + badge + spacing + style padding
	avail := width - lipgloss.Width(cursor) - len(checkbox) - lipgloss.Width(badge) - 6
	title := truncate(task.Title, avail)

	titleStyle := styles.TaskNormal
	switch {
	case focused:
		titleStyle = styles.TaskFocused
	case task.Completed:
		titleStyle = styles.TaskDone
	}

	return cursor + checkbox + " " + titleStyle.Render(title) + " " + badge
}

// truncate shortens s to at most n display cells, marking the cut with an ellipsis
func truncate(s string, n int) string {
	if n <= 0 || lipgloss.Width(s) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	var b strings.Builder
	for _, r := range s {
		if lipgloss.Width(b.String()+string(r)) > n-1 {
			break
		}
		b.WriteRune(r)
	}
	return b.String() + "…"
}
