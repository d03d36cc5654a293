package tui

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/dogfight/internal/config"
	"github.com/vovakirdan/dogfight/internal/core"
	"github.com/vovakirdan/dogfight/internal/harness"
	"github.com/vovakirdan/dogfight/internal/registry"
)

func watchSpec(scenario string) harness.GameSpec {
	return harness.GameSpec{
		Scenario:  scenario,
		Seed:      9,
		Arena:     config.DefaultArena(),
		Candidate: config.DefaultTuning(),
		Baseline:  config.DefaultTuning(),
	}
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m WatchModel, msg tea.Msg) (WatchModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	wm, ok := next.(WatchModel)
	require.True(t, ok)
	return wm, cmd
}

func TestShipGlyph(t *testing.T) {
	tests := []struct {
		heading float64
		want    rune
	}{
		{0, '→'},
		{math.Pi / 4, '↘'},
		{math.Pi / 2, '↓'},
		{math.Pi, '←'},
		{-math.Pi, '←'},
		{-math.Pi / 2, '↑'},
		{2*math.Pi + 0.1, '→'},
	}

	for _, tt := range tests {
		assert.Equal(t, string(tt.want), string(shipGlyph(tt.heading)), "heading %v", tt.heading)
	}
}

func TestDrawArena(t *testing.T) {
	m, err := harness.NewMatch(watchSpec("duel"))
	require.NoError(t, err)
	g := m.Game()

	s := core.NewScreen(60, 20)
	DrawArena(s, g)

	assert.Equal(t, '┌', s.Get(0, 0))
	assert.Equal(t, '┘', s.Get(59, 19))

	v := s.Viewport(g.Bounds())
	for side, glyph := range map[core.PlayerID]rune{core.Player1: '→', core.Player2: '←'} {
		x, y, ok := v.Cell(g.Ship(side).Pos)
		require.True(t, ok)
		cell := s.GetCell(x, y)
		assert.Equal(t, string(glyph), string(cell.Rune), "side %s", side)
		assert.Equal(t, core.SideColor(side), cell.Color)
	}

	if len(g.Hazards()) > 0 {
		assert.Contains(t, s.String(), "O")
	}
	assert.NotEmpty(t, RenderScreen(s))
}

func TestWatchModelStepsAndControls(t *testing.T) {
	m, err := NewWatchModel(watchSpec("duel"), 60, 80, 24)
	require.NoError(t, err)
	assert.NotNil(t, m.Init())

	m, cmd := update(t, m, TickMsg{})
	assert.NotNil(t, cmd, "tick loop keeps running")
	assert.Equal(t, 1, m.match.Game().Tick())

	m, _ = update(t, m, keyPress("+"))
	assert.Equal(t, 2, m.speed)
	m, _ = update(t, m, TickMsg{})
	assert.Equal(t, 3, m.match.Game().Tick())

	m, _ = update(t, m, keyPress(" "))
	assert.True(t, m.paused)
	m, _ = update(t, m, TickMsg{})
	assert.Equal(t, 3, m.match.Game().Tick())
	assert.Contains(t, m.View(), "paused")

	m, _ = update(t, m, keyPress("-"))
	m, _ = update(t, m, keyPress("-"))
	assert.Equal(t, 1, m.speed)

	m, _ = update(t, m, keyPress("n"))
	assert.Equal(t, int64(10), m.spec.Seed)
	assert.Equal(t, 1, m.spec.Index)
	assert.Zero(t, m.match.Game().Tick())

	view := m.View()
	assert.Contains(t, view, "duel")
	assert.Contains(t, view, "seed=10")
	assert.Contains(t, view, "game 2")

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})
	assert.Equal(t, 40, m.screen.Width())
	assert.Equal(t, 12-hudRows, m.screen.Height())

	m, cmd = update(t, m, keyPress("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestWatchModelFinishedMatch(t *testing.T) {
	spec := watchSpec("duel")
	spec.Arena.MaxTicks = 4
	m, err := NewWatchModel(spec, 60, 80, 24)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		m, _ = update(t, m, TickMsg{})
	}
	assert.True(t, m.match.Done())
	assert.LessOrEqual(t, m.match.Game().Tick(), 4)
	assert.True(t, strings.Contains(m.View(), string(m.match.Game().Outcome(core.Player1))))
}

func TestNewWatchModelUnknownScenario(t *testing.T) {
	_, err := NewWatchModel(watchSpec("no-such-scenario"), 60, 80, 24)
	assert.ErrorIs(t, err, registry.ErrUnknownScenario)
}
