package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/dori/taskflow/internal/tasklist"
	"github.com/dori/taskflow/internal/ui/views"
)

func TestRootWithTeatest(t *testing.T) {
	api := newFakeAPI(pendingTask("1", "Water plants"))
	cel := NewChannelCelebrator()
	m := NewRootModel(
		tasklist.New(api, tasklist.WithCelebrator(cel)),
		WithCelebrations(cel),
		WithClipboard(func(string) error { return nil }),
		WithSeed(42),
	)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 40))
	t.Cleanup(func() {
		_ = tm.Quit()
	})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return strings.Contains(string(out), "Water plants")
	}, teatest.WithDuration(2*time.Second), teatest.WithCheckInterval(10*time.Millisecond))

	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	tm.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return strings.Contains(string(out), views.AllDoneMessage)
	}, teatest.WithDuration(2*time.Second), teatest.WithCheckInterval(10*time.Millisecond))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final, ok := tm.FinalModel(t).(RootModel)
	if !ok {
		t.Fatalf("final model = %T", tm.FinalModel(t))
	}
	if !final.state.Stats.AllDone() {
		t.Fatalf("stats = %+v, want all done", final.state.Stats)
	}
}

func TestRootTeatestAddTask(t *testing.T) {
	api := newFakeAPI()
	m := NewRootModel(tasklist.New(api), WithSeed(1))

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 40))
	t.Cleanup(func() {
		_ = tm.Quit()
	})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return strings.Contains(string(out), "No tasks yet")
	}, teatest.WithDuration(2*time.Second), teatest.WithCheckInterval(10*time.Millisecond))

	tm.Type("Call the plumber")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return strings.Contains(string(out), "Task added")
	}, teatest.WithDuration(2*time.Second), teatest.WithCheckInterval(10*time.Millisecond))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	api.mu.Lock()
	defer api.mu.Unlock()
	if len(api.creates) != 1 || api.creates[0].Title != "Call the plumber" {
		t.Fatalf("creates = %+v", api.creates)
	}
}
