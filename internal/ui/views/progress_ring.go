package views

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/taskflow/internal/model"
	"github.com/dori/taskflow/internal/ui/theme"
)

// RingGlyph picks a quarter-circle glyph for a completion percentage
func RingGlyph(pct float64) string {
	switch {
	case pct >= 100:
		return "●"
	case pct >= 75:
		return "◕"
	case pct >= 50:
		return "◑"
	case pct > 0:
		return "◔"
	default:
		return "○"
	}
}

// ProgressLabel formats the percentage rounded half away from zero
func ProgressLabel(pct float64) string {
	return fmt.Sprintf("%d%% complete", int(math.Round(pct)))
}

// ProgressRing renders the completion gauge: glyph, gradient bar and label
func ProgressRing(stats model.Stats, width int) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	barWidth := width - 20
	if barWidth < 10 {
		barWidth = 10
	}
	if barWidth > 60 {
		barWidth = 60
	}

	bar := progress.New(
		progress.WithGradient(t.GradientStart, t.GradientEnd),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)

	glyph := lipgloss.NewStyle().Foreground(t.Success).Bold(true).Render(RingGlyph(stats.ProgressPercentage))
	label := styles.StatValue.Render(ProgressLabel(stats.ProgressPercentage))

	return glyph + " " + bar.ViewAs(stats.ProgressPercentage/100) + " " + label
}
