package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/taskflow/internal/model"
	"github.com/dori/taskflow/internal/tasklist"
	"github.com/dori/taskflow/internal/ui/theme"
	"github.com/dori/taskflow/internal/ui/views"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

// RootModel is the main application model. It renders the container's
// snapshot and runs every container operation as a command.
type RootModel struct {
	tasks        *tasklist.Container
	celebrations *ChannelCelebrator
	keys         KeyMap
	help         help.Model
	input        textinput.Model
	spinner      spinner.Model
	markdown     *views.MarkdownRenderer
	confetti     views.Confetti
	bursts       int
	width        int
	height       int

	state   tasklist.State
	cursor  int
	focus   focusArea
	pending int

	helpVisible    bool
	detailsVisible bool
	confirmClear   bool
	submitted      string

	// Status message
	statusMsg string
	errorMsg  string

	copyText func(string) error
	seed     func() uint64
}

// Option configures a RootModel
type Option func(*RootModel)

// WithCelebrations routes container celebrations to the confetti animation.
// c must be the celebrator the container was built with.
func WithCelebrations(c *ChannelCelebrator) Option {
	return func(m *RootModel) { m.celebrations = c }
}

// WithClipboard replaces the system clipboard writer
func WithClipboard(fn func(string) error) Option {
	return func(m *RootModel) { m.copyText = fn }
}

// WithSeed fixes the confetti randomness
func WithSeed(seed uint64) Option {
	return func(m *RootModel) { m.seed = func() uint64 { return seed } }
}

// NewRootModel creates a new root model
func NewRootModel(tasks *tasklist.Container, opts ...Option) RootModel {
	h := help.New()
	h.ShowAll = false

	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.Prompt = "› "
	ti.CharLimit = model.MaxTitleLength
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := RootModel{
		tasks:    tasks,
		keys:     DefaultKeyMap(),
		help:     h,
		input:    ti,
		spinner:  sp,
		markdown: &views.MarkdownRenderer{},
		state:    tasks.Snapshot(),
		focus:    focusInput,
		copyText: clipboard.WriteAll,
		seed:     func() uint64 { return uint64(time.Now().UnixNano()) },
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.applyTheme()
	return m
}

// Init starts the first fetch
func (m RootModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.load(), textinput.Blink}
	if m.celebrations != nil {
		cmds = append(cmds, m.celebrations.Listen())
	}
	return tea.Batch(cmds...)
}

// run executes fn against the container off the UI goroutine and reports
// the resulting snapshot
func (m *RootModel) run(op Op, fn func(ctx context.Context) error) tea.Cmd {
	m.pending++
	tasks := m.tasks
	return func() tea.Msg {
		err := fn(context.Background())
		return StateMsg{Op: op, State: tasks.Snapshot(), Err: err}
	}
}

func (m *RootModel) load() tea.Cmd {
	return m.run(OpLoad, m.tasks.Load)
}

func (m *RootModel) loadDetails() tea.Cmd {
	return m.run(OpDetails, m.tasks.LoadDetails)
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-16, 10)
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StateMsg:
		return m.handleState(msg)

	case CelebrateMsg:
		m.bursts++
		m.confetti = views.NewConfetti(m.bursts, msg.Celebration, m.width, m.seed())
		cmds := []tea.Cmd{m.confetti.Tick()}
		if m.celebrations != nil {
			cmds = append(cmds, m.celebrations.Listen())
		}
		return m, tea.Batch(cmds...)

	case views.ConfettiTickMsg:
		var cmd tea.Cmd
		m.confetti, cmd = m.confetti.Update(msg)
		return m, cmd

	case ClipboardMsg:
		if msg.Err != nil {
			m.errorMsg = fmt.Sprintf("copy failed: %v", msg.Err)
		} else {
			m.statusMsg = fmt.Sprintf("Copied %q", msg.Title)
		}
		return m, nil

	case tea.KeyMsg:
		// Clear status/error on any keypress
		m.statusMsg = ""
		m.errorMsg = ""

		switch {
		case msg.String() == "ctrl+c":
			return m, tea.Quit
		case key.Matches(msg, m.keys.ThemeCycle):
			m.cycleTheme()
			return m, nil
		}

		if m.helpVisible {
			if key.Matches(msg, m.keys.Help, m.keys.Cancel, m.keys.Quit) {
				m.helpVisible = false
			}
			return m, nil
		}

		if m.focus == focusInput {
			return m.handleInputKey(msg)
		}
		return m.handleListKey(msg)
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m RootModel) handleState(msg StateMsg) (tea.Model, tea.Cmd) {
	if m.pending > 0 {
		m.pending--
	}
	m.state = msg.State
	m.clampCursor()

	if msg.Err != nil {
		m.errorMsg = describeError(msg.Op, msg.Err)
		return m, nil
	}

	switch msg.Op {
	case OpAdd:
		if m.input.Value() == m.submitted {
			m.input.SetValue("")
		}
		m.submitted = ""
		m.tasks.SetDraft(m.input.Value(), m.state.Draft.Priority)
		m.state = m.tasks.Snapshot()
		m.statusMsg = "Task added"
	case OpDelete:
		m.statusMsg = "Task deleted"
	case OpClear:
		m.statusMsg = "All tasks cleared"
	}

	switch msg.Op {
	case OpAdd, OpToggle, OpDelete, OpClear:
		if m.detailsVisible {
			return m, m.loadDetails()
		}
	}
	return m, nil
}

func describeError(op Op, err error) string {
	switch {
	case errors.Is(err, tasklist.ErrEmptyTitle):
		return "Task title cannot be empty"
	case errors.Is(err, tasklist.ErrUnsupported):
		return fmt.Sprintf("%s: not supported by this backend", op)
	default:
		return fmt.Sprintf("%s failed: %v", op, err)
	}
}

func (m RootModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.tasks.SetDraft(m.input.Value(), m.state.Draft.Priority)
		m.state = m.tasks.Snapshot()
		m.submitted = m.input.Value()
		return m, m.run(OpAdd, m.tasks.SubmitDraft)

	case key.Matches(msg, m.keys.Priority):
		m.tasks.SetDraft(m.input.Value(), m.state.Draft.Priority.Next())
		m.state = m.tasks.Snapshot()
		return m, nil

	case key.Matches(msg, m.keys.Cancel), msg.Type == tea.KeyDown:
		m.focus = focusList
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.tasks.SetDraft(m.input.Value(), m.state.Draft.Priority)
	m.state = m.tasks.Snapshot()
	return m, cmd
}

func (m RootModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	confirming := m.confirmClear
	m.confirmClear = false

	visible := m.state.Filtered()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpVisible = true
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.focus = focusInput
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Up):
		if m.cursor == 0 {
			m.focus = focusInput
			return m, m.input.Focus()
		}
		m.cursor--
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(len(visible)-1, 0)

	case key.Matches(msg, m.keys.Toggle):
		if task, ok := m.focused(); ok {
			id := task.ID
			return m, m.run(OpToggle, func(ctx context.Context) error {
				_, err := m.tasks.ToggleTask(ctx, id)
				return err
			})
		}
	case key.Matches(msg, m.keys.Delete):
		if task, ok := m.focused(); ok {
			id := task.ID
			return m, m.run(OpDelete, func(ctx context.Context) error {
				return m.tasks.DeleteTask(ctx, id)
			})
		}
	case key.Matches(msg, m.keys.Copy):
		if task, ok := m.focused(); ok {
			title, write := task.Title, m.copyText
			return m, func() tea.Msg {
				return ClipboardMsg{Title: title, Err: write(title)}
			}
		}
	case key.Matches(msg, m.keys.Clear):
		if len(m.state.Tasks) == 0 {
			return m, nil
		}
		if !confirming {
			m.confirmClear = true
			m.statusMsg = "Press C again to delete every task"
			return m, nil
		}
		return m, m.run(OpClear, m.tasks.ClearAll)

	case key.Matches(msg, m.keys.FilterCycle):
		m.setFilter(m.state.Filter.Next())
	case key.Matches(msg, m.keys.FilterAll):
		m.setFilter(model.FilterAll)
	case key.Matches(msg, m.keys.FilterPending):
		m.setFilter(model.FilterPending)
	case key.Matches(msg, m.keys.FilterCompleted):
		m.setFilter(model.FilterCompleted)

	case key.Matches(msg, m.keys.Details):
		m.detailsVisible = !m.detailsVisible
		if m.detailsVisible {
			return m, m.loadDetails()
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.load()
	}
	return m, nil
}

func (m *RootModel) setFilter(f model.Filter) {
	m.tasks.SetFilter(f)
	m.state = m.tasks.Snapshot()
	m.cursor = 0
}

func (m *RootModel) clampCursor() {
	n := len(m.state.Filtered())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// focused returns the task under the cursor in the filtered list
func (m RootModel) focused() (model.Task, bool) {
	visible := m.state.Filtered()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return model.Task{}, false
	}
	return visible[m.cursor], true
}

// cycleTheme cycles through available themes
func (m *RootModel) cycleTheme() {
	theme.SetTheme(theme.Next(theme.Current.Theme.Name))
	m.applyTheme()
	m.statusMsg = fmt.Sprintf("Theme: %s", theme.Current.Theme.Name)
}

func (m *RootModel) applyTheme() {
	t := theme.Current.Theme
	m.input.PromptStyle = lipgloss.NewStyle().Foreground(t.Primary)
	m.input.PlaceholderStyle = theme.Current.Styles.Placeholder
	m.input.TextStyle = lipgloss.NewStyle().Foreground(t.Foreground)
	m.spinner.Style = lipgloss.NewStyle().Foreground(t.Accent)
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	// Reserve: 1 line for header + 3 lines for footer (status + 2 hint lines)
	contentHeight := m.height - 4

	var content string
	if m.helpVisible {
		content = views.Help(m.markdown, m.keys.HelpSections(), m.width-4)
	} else {
		content = m.renderMain(contentHeight)
	}

	// Ensure content fills available space
	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m RootModel) renderMain(height int) string {
	styles := theme.Current.Styles

	var blocks []string
	if m.confetti.Active() {
		blocks = append(blocks, m.confetti.View())
	}
	blocks = append(blocks, views.ProgressRing(m.state.Stats, m.width))
	blocks = append(blocks, views.StatsCards(m.state.Stats))
	if banner := views.AllDoneBanner(m.state.Stats); banner != "" {
		blocks = append(blocks, banner)
	}
	if m.detailsVisible && m.state.Details != nil {
		blocks = append(blocks, views.DetailsPanel(*m.state.Details))
	}

	inputStyle := styles.Input
	if m.focus == focusInput {
		inputStyle = styles.InputFocused
	}
	blocks = append(blocks, lipgloss.JoinHorizontal(lipgloss.Center,
		inputStyle.Render(m.input.View()),
		" ",
		views.PriorityBadge(m.state.Draft.Priority),
	))
	blocks = append(blocks, views.FilterTabs(m.state.Filter, m.state.Stats))

	top := strings.Join(blocks, "\n")
	listHeight := height - lipgloss.Height(top) - 1
	return top + "\n" + m.renderList(listHeight)
}

func (m RootModel) renderList(height int) string {
	if m.state.Loading {
		return m.spinner.View() + " Loading tasks..."
	}

	visible := m.state.Filtered()
	if len(visible) == 0 {
		return views.EmptyState(m.state.Filter, m.width)
	}

	if height < 1 {
		height = 1
	}
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := min(start+height, len(visible))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, views.TaskItem(visible[i], m.focus == focusList && i == m.cursor, m.width))
	}
	return strings.Join(lines, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("taskflow")

	viewStyle := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)

	indicator := viewStyle.Render(fmt.Sprintf("[%s]", m.state.Filter))
	if m.pending > 0 {
		indicator += viewStyle.Render("working…")
	}

	themeIndicator := viewStyle.Render(fmt.Sprintf("theme: %s", t.Name))

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, title, indicator)
	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(themeIndicator)
	if gap < 0 {
		gap = 0
	}
	return leftSide + strings.Repeat(" ", gap) + themeIndicator
}

// renderFooter renders the footer/status bar
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles

	key := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	var statusLine string
	switch {
	case m.errorMsg != "":
		statusLine = styles.StatusError.Render(m.errorMsg)
	case m.statusMsg != "":
		statusLine = styles.StatusInfo.Render(m.statusMsg)
	}

	var line1, line2 string
	switch {
	case m.helpVisible:
		line1 = key("?/esc", "close help")
		line2 = m.help.View(m.keys)
	case m.focus == focusInput:
		line1 = key("enter", "add task") + sep +
			key("tab", "priority") + sep +
			key("esc", "task list")
		line2 = key("C-t", "theme") + sep +
			key("C-c", "quit")
	default:
		line1 = key("space", "done/todo") + sep +
			key("d", "delete task") + sep +
			key("a", "new task") + sep +
			key("y", "copy") + sep +
			key("f/1-3", "filter")
		line2 = key("s", "details") + sep +
			key("r", "refresh") + sep +
			key("C", "clear all") + sep +
			key("?", "help") + sep +
			key("q", "quit")
	}

	return strings.Join([]string{statusLine, styles.Footer.Render(line1), styles.Footer.Render(line2)}, "\n")
}
