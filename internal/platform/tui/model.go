package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dogfight/internal/core"
	"github.com/vovakirdan/dogfight/internal/harness"
)

const (
	hudRows  = 2
	maxSpeed = 16
)

var hudStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// WatchModel is the Bubble Tea model that plays a match live.
type WatchModel struct {
	spec     harness.GameSpec
	match    *harness.Match
	screen   *core.Screen
	tickRate int
	speed    int // arena ticks per frame
	paused   bool
	quitting bool
	status   string
}

// NewWatchModel creates a viewer for the match described by spec.
func NewWatchModel(spec harness.GameSpec, tickRate, width, height int) (WatchModel, error) {
	match, err := harness.NewMatch(spec)
	if err != nil {
		return WatchModel{}, err
	}
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	return WatchModel{
		spec:     spec,
		match:    match,
		screen:   core.NewScreen(width, max(height-hudRows, 3)),
		tickRate: tickRate,
		speed:    1,
	}, nil
}

// Init starts the frame loop.
func (m WatchModel) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(msg.Height-hudRows, 3))
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m WatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case " ", "p":
		m.paused = !m.paused
	case "+", "=":
		m.speed = min(m.speed*2, maxSpeed)
	case "-", "_":
		m.speed = max(m.speed/2, 1)
	case "n", "r":
		next := m.spec
		next.Index++
		next.Seed++
		match, err := harness.NewMatch(next)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.spec, m.match, m.status = next, match, ""
	case "ctrl+s":
		m.status = m.saveScreenshot()
	}
	return m, nil
}

// handleTick advances the match by the current speed unless paused or finished.
func (m WatchModel) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused {
		for i := 0; i < m.speed && !m.match.Done(); i++ {
			if _, err := m.match.Step(context.Background()); err != nil {
				m.status = err.Error()
				break
			}
		}
	}
	return m, tickCmd(m.tickRate)
}

// saveScreenshot writes the current frame as plain text and returns a status line.
func (m *WatchModel) saveScreenshot() string {
	DrawArena(m.screen, m.match.Game())

	home, err := os.UserHomeDir()
	if err != nil {
		return "screenshot failed: " + err.Error()
	}
	dir := filepath.Join(home, ".dogfight", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "screenshot failed: " + err.Error()
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%d_%s.txt", m.spec.Scenario, m.spec.Seed, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "screenshot failed: " + err.Error()
	}
	return "saved " + path
}

// hud returns the two status lines shown under the arena.
func (m WatchModel) hud() string {
	g := m.match.Game()
	state := fmt.Sprintf("x%d", m.speed)
	if m.paused {
		state = "paused"
	}
	if g.Done() {
		state = string(g.Outcome(core.Player1))
	}

	top := fmt.Sprintf("%s  game %d  seed=%d  tick=%d  %s    p1 %s  p2 %s",
		m.spec.Scenario, m.spec.Index+1, m.spec.Seed, g.Tick(), state,
		m.match.Committed(core.Player1), m.match.Committed(core.Player2))

	bottom := m.status
	if bottom == "" {
		bottom = "space pause  +/- speed  n next game  ctrl+s screenshot  q quit"
	}
	return hudStyle.Render(top) + "\n" + hudStyle.Render(bottom)
}

// View renders the arena and the HUD.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}
	DrawArena(m.screen, m.match.Game())
	return RenderScreen(m.screen) + "\n" + m.hud()
}

// RunWatch plays matches live starting from spec.
func RunWatch(spec harness.GameSpec, tickRate, width, height int) error {
	model, err := NewWatchModel(spec, tickRate, width, height)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
