package views

import (
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/taskflow/internal/tasklist"
	"github.com/dori/taskflow/internal/ui/theme"
)

const (
	confettiInterval = 60 * time.Millisecond
	confettiGravity  = 0.08
)

var confettiGlyphs = []rune{'*', '+', '•', '✦', '◆', '▪'}

// ConfettiTickMsg advances the animation whose id matches
type ConfettiTickMsg struct{ ID int }

type particle struct {
	x, y   float64
	vx, vy float64
	glyph  rune
	color  lipgloss.Color
}

// Confetti is a short burst of falling particles drawn above the task list.
// Ticks carry the burst id so a new burst supersedes the old one.
type Confetti struct {
	id        int
	width     int
	height    int
	frame     int
	frames    int
	particles []particle
}

// NewConfetti builds a burst sized for c: large celebrations get more
// particles, a taller band and a longer run. seed fixes placement.
func NewConfetti(id int, c tasklist.Celebration, width int, seed uint64) Confetti {
	if c == tasklist.CelebrationNone {
		return Confetti{id: id}
	}
	if width <= 0 {
		width = 40
	}

	count, frames, height := 12, 10, 3
	if c == tasklist.CelebrationLarge {
		count, frames, height = 40, 25, 6
	}

	palette := theme.Current.Theme.Confetti
	if len(palette) == 0 {
		palette = []lipgloss.Color{theme.Current.Theme.Primary}
	}

	rng := rand.New(rand.NewPCG(seed, uint64(id)))
	ps := make([]particle, count)
	for i := range ps {
		ps[i] = particle{
			x:     rng.Float64() * float64(width),
			y:     -rng.Float64() * float64(height),
			vx:    (rng.Float64() - 0.5) * 1.5,
			vy:    0.2 + rng.Float64()*0.4,
			glyph: confettiGlyphs[rng.IntN(len(confettiGlyphs))],
			color: palette[rng.IntN(len(palette))],
		}
	}

	return Confetti{id: id, width: width, height: height, frames: frames, particles: ps}
}

// ID identifies the burst
func (c Confetti) ID() int { return c.id }

// Active reports whether frames remain
func (c Confetti) Active() bool { return c.frame < c.frames }

// Height is the number of rows View occupies while active
func (c Confetti) Height() int {
	if !c.Active() {
		return 0
	}
	return c.height
}

// Tick schedules the next frame
func (c Confetti) Tick() tea.Cmd {
	id := c.id
	return tea.Tick(confettiInterval, func(time.Time) tea.Msg {
		return ConfettiTickMsg{ID: id}
	})
}

// Update steps the particles on a matching tick
func (c Confetti) Update(msg tea.Msg) (Confetti, tea.Cmd) {
	tick, ok := msg.(ConfettiTickMsg)
	if !ok || tick.ID != c.id || !c.Active() {
		return c, nil
	}

	next := make([]particle, len(c.particles))
	for i, p := range c.particles {
		p.x += p.vx
		p.y += p.vy
		p.vy += confettiGravity
		next[i] = p
	}
	c.particles = next
	c.frame++

	if !c.Active() {
		return c, nil
	}
	return c, c.Tick()
}

// View draws the visible particles into a width × height band
func (c Confetti) View() string {
	if !c.Active() {
		return ""
	}

	cells := make([][]string, c.height)
	for row := range cells {
		cells[row] = make([]string, c.width)
		for col := range cells[row] {
			cells[row][col] = " "
		}
	}
	for _, p := range c.particles {
		row, col := int(p.y), int(p.x)
		if p.y < 0 || row >= c.height || p.x < 0 || col >= c.width {
			continue
		}
		cells[row][col] = lipgloss.NewStyle().Foreground(p.color).Render(string(p.glyph))
	}

	lines := make([]string, c.height)
	for row := range cells {
		lines[row] = strings.Join(cells[row], "")
	}
	return strings.Join(lines, "\n")
}
