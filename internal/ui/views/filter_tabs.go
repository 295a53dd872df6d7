package views

import (
	"fmt"
	"strings"

	"github.com/dori/taskflow/internal/model"
	"github.com/dori/taskflow/internal/ui/theme"
)

// FilterLabel is the tab caption for a filter, with its count
func FilterLabel(f model.Filter, stats model.Stats) string {
	switch f {
	case model.FilterPending:
		return fmt.Sprintf("Pending (%d)", stats.Pending)
	case model.FilterCompleted:
		return fmt.Sprintf("Completed (%d)", stats.Completed)
	default:
		return fmt.Sprintf("All (%d)", stats.Total)
	}
}

// FilterTabs renders the filter selector with the active tab highlighted
func FilterTabs(active model.Filter, stats model.Stats) string {
	styles := theme.Current.Styles

	var tabs []string
	for _, f := range model.Filters() {
		style := styles.Tab
		if f == active {
			style = styles.TabActive
		}
		tabs = append(tabs, style.Render(FilterLabel(f, stats)))
	}
	return strings.Join(tabs, " ")
}
