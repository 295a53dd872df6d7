package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dori/taskflow/internal/model"
	"github.com/dori/taskflow/internal/ui/theme"
)

// AllDoneMessage is shown under the stats once every task is complete
const AllDoneMessage = "All tasks completed! You're amazing!"

// StatsCard renders one bordered counter
func StatsCard(value int, label string, color lipgloss.Color) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	card := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 2).
		Width(18)

	return card.Render(
		styles.StatValue.Foreground(color).Render(fmt.Sprintf("%d", value)) + "\n" +
			styles.StatLabel.Render(label),
	)
}

// StatsCards renders the total, completed and pending counters side by side
func StatsCards(stats model.Stats) string {
	t := theme.Current.Theme
	return lipgloss.JoinHorizontal(lipgloss.Top,
		StatsCard(stats.Total, "Total Tasks", t.Info),
		StatsCard(stats.Completed, "Completed", t.Success),
		StatsCard(stats.Pending, "Pending", t.Warning),
	)
}

// AllDoneBanner returns the celebration banner, or "" unless every task is done
func AllDoneBanner(stats model.Stats) string {
	if !stats.AllDone() {
		return ""
	}
	return theme.Current.Styles.Banner.Render("✓ " + AllDoneMessage)
}

// DetailsPanel renders the per-priority breakdown from the stats endpoint
func DetailsPanel(d model.DetailedStats) string {
	styles := theme.Current.Styles

	var b strings.Builder
	b.WriteString(styles.PanelTitle.Render("Details"))
	b.WriteString("\n")
	for _, p := range model.Priorities() {
		fmt.Fprintf(&b, "%s  %s\n", PriorityBadge(p), styles.StatValue.Render(fmt.Sprintf("%d", d.ByPriority[p])))
	}
	b.WriteString(styles.StatLabel.Render("Completed today "))
	b.WriteString(styles.StatValue.Render(fmt.Sprintf("%d", d.CompletedToday)))

	return styles.Panel.Render(b.String())
}
