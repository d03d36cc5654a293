package core

import (
	"math"
	"strings"
)

// Cell is one character of a Screen with its foreground color.
type Cell struct {
	Rune  rune
	Color Color
}

var blank = Cell{Rune: ' '}

// Screen is a 2D character buffer for drawing an arena frame.
// World coordinates are mapped onto cells with Plot so the arena can be
// drawn without knowing the terminal size.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  max(width, 0),
		height: max(height, 0),
	}
	s.allocate()
	s.Clear()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions. Content is discarded.
func (s *Screen) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == s.width && height == s.height {
		return
	}
	s.width = width
	s.height = height
	s.allocate()
	s.Clear()
}

// Clear fills the entire screen with uncolored spaces.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = blank
		}
	}
}

// Set places a colored rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune, c Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = Cell{Rune: r, Color: c}
}

// Get returns the rune at the given position, or space when out of bounds.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position, or a blank cell when out of bounds.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return blank
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string, c Color) {
	i := 0
	for _, r := range text {
		s.Set(x+i, y, r, c)
		i++
	}
}

// DrawFrame draws a box-drawing border along the screen edges.
func (s *Screen) DrawFrame(c Color) {
	if s.width < 2 || s.height < 2 {
		return
	}
	right, bottom := s.width-1, s.height-1
	for x := 1; x < right; x++ {
		s.Set(x, 0, '─', c)
		s.Set(x, bottom, '─', c)
	}
	for y := 1; y < bottom; y++ {
		s.Set(0, y, '│', c)
		s.Set(right, y, '│', c)
	}
	s.Set(0, 0, '┌', c)
	s.Set(right, 0, '┐', c)
	s.Set(0, bottom, '└', c)
	s.Set(right, bottom, '┘', c)
}

// Viewport maps arena coordinates onto the inside of a framed screen.
type Viewport struct {
	Bounds Bounds
	Cols   int
	Rows   int
}

// Cell returns the screen cell for a world position, offset by one for the
// frame. ok is false when the position falls outside the bounds.
func (v Viewport) Cell(p Vec2) (x, y int, ok bool) {
	if v.Cols <= 0 || v.Rows <= 0 || !v.Bounds.Enabled() || !v.Bounds.Contains(p) {
		return 0, 0, false
	}
	fx := (p.X - v.Bounds.MinX) / v.Bounds.Width()
	fy := (p.Y - v.Bounds.MinY) / v.Bounds.Height()
	x = Clamp(int(math.Floor(fx*float64(v.Cols))), 0, v.Cols-1)
	y = Clamp(int(math.Floor(fy*float64(v.Rows))), 0, v.Rows-1)
	return x + 1, y + 1, true
}

// Plot draws a rune at a world position through the viewport.
func (s *Screen) Plot(v Viewport, p Vec2, r rune, c Color) {
	if x, y, ok := v.Cell(p); ok {
		s.Set(x, y, r, c)
	}
}

// Viewport returns the viewport covering the inside of the screen frame.
func (s *Screen) Viewport(b Bounds) Viewport {
	return Viewport{
		Bounds: b,
		Cols:   max(s.width-2, 0),
		Rows:   max(s.height-2, 0),
	}
}

// String converts the screen buffer to plain text, one line per row.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(s.Row(y))
	}
	return sb.String()
}

// Row returns the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}
