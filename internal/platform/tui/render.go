package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dogfight/internal/arena"
	"github.com/vovakirdan/dogfight/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
}

// headingGlyphs are ship glyphs for eight compass sectors starting east,
// clockwise in screen space (y grows downward).
var headingGlyphs = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// shipGlyph returns the arrow closest to the heading.
func shipGlyph(heading float64) rune {
	sector := int(math.Round(core.WrapAngle(heading)/(math.Pi/4))) % 8
	if sector < 0 {
		sector += 8
	}
	return headingGlyphs[sector]
}

// DrawArena draws the current arena state into the screen: frame, hazards,
// bullets, then ships on top. Dead ships are drawn as 'x'.
func DrawArena(s *core.Screen, g *arena.Game) {
	s.Clear()
	s.DrawFrame(core.ColorGray)

	v := s.Viewport(g.Bounds())

	for _, h := range g.Hazards() {
		s.Plot(v, h.Pos, 'O', core.ColorGray)
	}
	for _, b := range g.Bullets() {
		s.Plot(v, b.Pos, '•', core.ColorYellow)
	}
	for _, side := range []core.PlayerID{core.Player1, core.Player2} {
		ship := g.Ship(side)
		glyph := shipGlyph(ship.Heading)
		color := core.SideColor(side)
		if !ship.Alive {
			glyph, color = 'x', core.ColorRed
		}
		s.Plot(v, ship.Pos, glyph, color)
	}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
