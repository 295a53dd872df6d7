package notify

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/dori/taskflow/internal/tasklist"
)

type call struct {
	name string
	args []string
}

func recordingRunner(calls *[]call, err error) Runner {
	return func(name string, args ...string) error {
		*calls = append(*calls, call{name: name, args: args})
		return err
	}
}

func TestSendBuildsNotifySendArgs(t *testing.T) {
	var calls []call
	n := NewNotifier(true, WithRunner(recordingRunner(&calls, nil)))

	err := n.Send(Notification{Title: "Hi", Body: "there", Urgency: UrgencyCritical, Timeout: 2 * time.Second, Icon: "x"})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	want := []string{"-u", "critical", "-t", "2000", "-i", "x", "-a", "taskflow", "Hi", "there"}
	if len(calls) != 1 || calls[0].name != "notify-send" || !slices.Equal(calls[0].args, want) {
		t.Fatalf("calls = %+v, want notify-send %v", calls, want)
	}
}

func TestDisabledNotifierIsSilent(t *testing.T) {
	var calls []call
	n := NewNotifier(false, WithRunner(recordingRunner(&calls, nil)))
	n.Celebrate(tasklist.CelebrationLarge)
	if err := n.SendAllDone(); err != nil {
		t.Fatalf("SendAllDone() error = %v", err)
	}
	if len(calls) != 0 {
		t.Fatalf("calls = %+v, want none", calls)
	}
}

func TestCelebrateOnlyNotifiesOnLarge(t *testing.T) {
	var calls []call
	n := NewNotifier(true, WithRunner(recordingRunner(&calls, nil)))

	n.Celebrate(tasklist.CelebrationNone)
	n.Celebrate(tasklist.CelebrationSmall)
	if len(calls) != 0 {
		t.Fatalf("calls = %+v, want none for small/none", calls)
	}

	n.Celebrate(tasklist.CelebrationLarge)
	if len(calls) != 1 || !slices.Contains(calls[0].args, "All tasks completed!") {
		t.Fatalf("calls = %+v, want one all-done notification", calls)
	}
}

func TestCelebrateSwallowsRunnerError(t *testing.T) {
	var calls []call
	n := NewNotifier(true, WithRunner(recordingRunner(&calls, errors.New("no notify-send"))))
	n.Celebrate(tasklist.CelebrationLarge)
	if len(calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(calls))
	}
}
