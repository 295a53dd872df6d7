package notify

import (
	"os/exec"
	"strconv"
	"time"

	"github.com/dori/taskflow/internal/logging"
	"github.com/dori/taskflow/internal/tasklist"
)

// Urgency levels for notifications
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification represents a desktop notification
type Notification struct {
	Title   string
	Body    string
	Urgency Urgency
	Timeout time.Duration
	Icon    string // Optional icon name
}

// Runner executes an external command.
type Runner func(name string, args ...string) error

func execRunner(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// Notifier handles sending desktop notifications
type Notifier struct {
	enabled bool
	run     Runner
	log     logging.Logger
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithRunner replaces command execution (for testing).
func WithRunner(r Runner) Option {
	return func(n *Notifier) { n.run = r }
}

// WithLogger sets the logger for failed sends.
func WithLogger(l logging.Logger) Option {
	return func(n *Notifier) { n.log = l }
}

// NewNotifier creates a new notifier
func NewNotifier(enabled bool, opts ...Option) *Notifier {
	n := &Notifier{
		enabled: enabled,
		run:     execRunner,
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Send sends a desktop notification using notify-send
func (n *Notifier) Send(notification Notification) error {
	if !n.enabled {
		return nil
	}
	return n.run("notify-send", args(notification)...)
}

func args(notification Notification) []string {
	args := []string{}

	switch notification.Urgency {
	case UrgencyLow:
		args = append(args, "-u", "low")
	case UrgencyCritical:
		args = append(args, "-u", "critical")
	default:
		args = append(args, "-u", "normal")
	}

	// notify-send takes milliseconds
	if notification.Timeout > 0 {
		args = append(args, "-t", strconv.Itoa(int(notification.Timeout.Milliseconds())))
	}
	if notification.Icon != "" {
		args = append(args, "-i", notification.Icon)
	}
	args = append(args, "-a", "taskflow")

	args = append(args, notification.Title)
	if notification.Body != "" {
		args = append(args, notification.Body)
	}
	return args
}

// SendAllDone announces that every task is complete
func (n *Notifier) SendAllDone() error {
	return n.Send(Notification{
		Title:   "All tasks completed!",
		Body:    "Amazing work. Time to relax.",
		Urgency: UrgencyNormal,
		Timeout: 10 * time.Second,
		Icon:    "emblem-default-symbolic",
	})
}

// Celebrate implements tasklist.Celebrator. Only the large celebration
// produces a notification.
func (n *Notifier) Celebrate(c tasklist.Celebration) {
	if c != tasklist.CelebrationLarge {
		return
	}
	if err := n.SendAllDone(); err != nil {
		n.log.Warn("desktop notification failed", "err", err)
	}
}
