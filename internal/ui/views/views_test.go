package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/taskflow/internal/model"
	"github.com/dori/taskflow/internal/tasklist"
)

func TestRingGlyph(t *testing.T) {
	cases := []struct {
		pct  float64
		want string
	}{
		{0, "○"},
		{10, "◔"},
		{50, "◑"},
		{80, "◕"},
		{100, "●"},
	}
	for _, tc := range cases {
		if got := RingGlyph(tc.pct); got != tc.want {
			t.Fatalf("RingGlyph(%v) = %q, want %q", tc.pct, got, tc.want)
		}
	}
}

func TestProgressLabelRounds(t *testing.T) {
	cases := map[float64]string{
		0:                "0% complete",
		12.5:             "13% complete",
		200.0 / 3:        "67% complete",
		100:              "100% complete",
		100.0 / 3:        "33% complete",
	}
	for pct, want := range cases {
		if got := ProgressLabel(pct); got != want {
			t.Fatalf("ProgressLabel(%v) = %q, want %q", pct, got, want)
		}
	}
}

func TestProgressRingShowsLabel(t *testing.T) {
	out := ProgressRing(model.Stats{Total: 4, Completed: 1, Pending: 3, ProgressPercentage: 25}, 60)
	if !strings.Contains(out, "25% complete") {
		t.Fatalf("ProgressRing() = %q, want label", out)
	}
}

func TestEmptyMessage(t *testing.T) {
	cases := map[model.Filter]string{
		model.FilterAll:       "No tasks yet. Add your first task above!",
		model.FilterPending:   "No pending tasks. All done!",
		model.FilterCompleted: "No completed tasks yet. Keep going!",
	}
	for f, want := range cases {
		if got := EmptyMessage(f); got != want {
			t.Fatalf("EmptyMessage(%s) = %q, want %q", f, got, want)
		}
		if out := EmptyState(f, 60); !strings.Contains(out, want) {
			t.Fatalf("EmptyState(%s) = %q, want message", f, out)
		}
	}
}

func TestFilterTabsShowCounts(t *testing.T) {
	stats := model.Stats{Total: 3, Completed: 1, Pending: 2}
	out := FilterTabs(model.FilterPending, stats)
	for _, want := range []string{"All (3)", "Pending (2)", "Completed (1)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("FilterTabs() = %q, missing %q", out, want)
		}
	}
}

func TestTaskItem(t *testing.T) {
	task := model.Task{ID: "1", Title: "Water plants", Priority: model.PriorityHigh}

	row := TaskItem(task, false, 60)
	if !strings.Contains(row, "[ ] ") || !strings.Contains(row, "Water plants") || !strings.Contains(row, "! High") {
		t.Fatalf("TaskItem() = %q", row)
	}
	if strings.HasPrefix(row, ">") {
		t.Fatalf("TaskItem() = %q, want no cursor", row)
	}

	task.Completed = true
	row = TaskItem(task, true, 60)
	if !strings.HasPrefix(row, "> [x]") {
		t.Fatalf("TaskItem(done, focused) = %q", row)
	}
}

func TestTaskItemTruncatesLongTitle(t *testing.T) {
	task := model.Task{Title: strings.Repeat("long words ", 20), Priority: model.PriorityLow}
	row := TaskItem(task, false, 40)
	if !strings.Contains(row, "…") {
		t.Fatalf("TaskItem() = %q, want ellipsis", row)
	}
	if w := lipgloss.Width(row); w > 40 {
		t.Fatalf("width = %d, want <= 40", w)
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 3, "he…"},
		{"hello", 1, "…"},
		{"hello", 0, "hello"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.n); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.n, got, tc.want)
		}
	}
}

func TestAllDoneBanner(t *testing.T) {
	if got := AllDoneBanner(model.Stats{}); got != "" {
		t.Fatalf("AllDoneBanner(empty) = %q, want empty", got)
	}
	if got := AllDoneBanner(model.Stats{Total: 2, Completed: 1, Pending: 1, ProgressPercentage: 50}); got != "" {
		t.Fatalf("AllDoneBanner(half) = %q, want empty", got)
	}
	got := AllDoneBanner(model.Stats{Total: 2, Completed: 2, ProgressPercentage: 100})
	if !strings.Contains(got, AllDoneMessage) {
		t.Fatalf("AllDoneBanner(done) = %q", got)
	}
}

func TestStatsCardsAndDetails(t *testing.T) {
	cards := StatsCards(model.Stats{Total: 5, Completed: 2, Pending: 3})
	for _, want := range []string{"Total Tasks", "Completed", "Pending", "5", "2", "3"} {
		if !strings.Contains(cards, want) {
			t.Fatalf("StatsCards() missing %q:\n%s", want, cards)
		}
	}

	panel := DetailsPanel(model.DetailedStats{
		ByPriority:     map[model.Priority]int{model.PriorityHigh: 4},
		CompletedToday: 7,
	})
	for _, want := range []string{"High", "Medium", "Low", "Completed today", "7"} {
		if !strings.Contains(panel, want) {
			t.Fatalf("DetailsPanel() missing %q:\n%s", want, panel)
		}
	}
}

func TestConfettiNoneIsInactive(t *testing.T) {
	c := NewConfetti(1, tasklist.CelebrationNone, 40, 7)
	if c.Active() || c.View() != "" || c.Height() != 0 {
		t.Fatalf("confetti = %+v, want inactive", c)
	}
}

func TestConfettiRunsToCompletion(t *testing.T) {
	c := NewConfetti(3, tasklist.CelebrationSmall, 30, 7)
	if !c.Active() || c.Height() != 3 || len(c.particles) != 12 {
		t.Fatalf("small burst = %d rows, %d particles", c.Height(), len(c.particles))
	}
	if lines := strings.Count(c.View(), "\n") + 1; lines != 3 {
		t.Fatalf("View() lines = %d, want 3", lines)
	}

	// Stale ticks from an older burst are ignored.
	if next, cmd := c.Update(ConfettiTickMsg{ID: 2}); next.frame != 0 || cmd != nil {
		t.Fatalf("stale tick advanced frame to %d", next.frame)
	}

	var cmd tea.Cmd
	for i := 0; i < 10; i++ {
		c, cmd = c.Update(ConfettiTickMsg{ID: 3})
	}
	if c.Active() || cmd != nil || c.View() != "" {
		t.Fatalf("after 10 ticks active = %v, cmd = %v", c.Active(), cmd != nil)
	}
}

func TestConfettiLargeBurst(t *testing.T) {
	c := NewConfetti(1, tasklist.CelebrationLarge, 50, 7)
	if c.Height() != 6 || len(c.particles) != 40 || c.frames != 25 {
		t.Fatalf("large burst = %d rows, %d particles, %d frames", c.Height(), len(c.particles), c.frames)
	}
	if again := NewConfetti(1, tasklist.CelebrationLarge, 50, 7); again.View() != c.View() {
		t.Fatal("same seed produced different bursts")
	}
}

func TestMarkdownRenderer(t *testing.T) {
	var r MarkdownRenderer
	if got := r.Render("   ", 80); got != "" {
		t.Fatalf("Render(blank) = %q, want empty", got)
	}
	out := r.Render("# Keys\n\n- quit the program", 10)
	if !strings.Contains(out, "quit") {
		t.Fatalf("Render() = %q, want list text", out)
	}
	if r.width != 24 {
		t.Fatalf("wrap width = %d, want minimum 24", r.width)
	}
	if strings.HasSuffix(out, "\n") {
		t.Fatalf("Render() = %q, want trailing newlines trimmed", out)
	}
}

func TestHelpMarkdown(t *testing.T) {
	md := HelpMarkdown([]HelpSection{{
		Title: "Tasks",
		Bindings: []key.Binding{
			key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete task")),
		},
	}})
	for _, want := range []string{"## Tasks", "| `d` | delete task |"} {
		if !strings.Contains(md, want) {
			t.Fatalf("HelpMarkdown() missing %q:\n%s", want, md)
		}
	}
}
