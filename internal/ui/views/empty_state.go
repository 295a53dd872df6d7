package views

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/taskflow/internal/model"
	"github.com/dori/taskflow/internal/ui/theme"
)

// EmptyMessage is the hint shown when the active filter selects no tasks
func EmptyMessage(f model.Filter) string {
	switch f {
	case model.FilterCompleted:
		return "No completed tasks yet. Keep going!"
	case model.FilterPending:
		return "No pending tasks. All done!"
	default:
		return "No tasks yet. Add your first task above!"
	}
}

// EmptyState renders EmptyMessage centered in width
func EmptyState(f model.Filter, width int) string {
	return theme.Current.Styles.Placeholder.
		Width(width).
		Align(lipgloss.Center).
		PaddingTop(1).
		Render(EmptyMessage(f))
}
