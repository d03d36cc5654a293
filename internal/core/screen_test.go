package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blank {
				t.Errorf("New screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestNewScreenNegativeSize(t *testing.T) {
	s := NewScreen(-5, -1)
	if s.Width() != 0 || s.Height() != 0 {
		t.Errorf("NewScreen(-5, -1) size = %dx%d, expected 0x0", s.Width(), s.Height())
	}
	if s.String() != "" {
		t.Errorf("String() of empty screen = %q, expected empty", s.String())
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X', ColorCyan)
	if got := s.GetCell(5, 5); got.Rune != 'X' || got.Color != ColorCyan {
		t.Errorf("GetCell(5, 5) = %+v, expected X/cyan", got)
	}

	// Out of bounds is silent
	s.Set(-1, 0, 'A', ColorRed)
	s.Set(100, 0, 'A', ColorRed)
	s.Set(0, -1, 'A', ColorRed)
	s.Set(0, 100, 'A', ColorRed)

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			s.Set(x, y, '#', ColorGray)
		}
	}

	s.Clear()

	if got := s.String(); got != "    \n    \n    " {
		t.Errorf("String() after Clear = %q", got)
	}
	if s.GetCell(1, 1).Color != ColorDefault {
		t.Error("Clear should reset colors")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(8, 1)
	s.DrawText(2, 0, "tick→9", ColorWhite)

	if got := s.Row(0); got != "  tick→9" {
		t.Errorf("Row(0) = %q, expected %q", got, "  tick→9")
	}

	// Clipped at the right edge
	s.DrawText(6, 0, "abc", ColorWhite)
	if got := s.Row(0); got != "  tickab" {
		t.Errorf("Row(0) after clipped text = %q", got)
	}
}

func TestScreenDrawFrame(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawFrame(ColorGray)

	expected := "┌──┐\n│  │\n└──┘"
	if got := s.String(); got != expected {
		t.Errorf("DrawFrame result =\n%s\nexpected\n%s", got, expected)
	}
	if s.GetCell(0, 0).Color != ColorGray {
		t.Error("Frame should use the given color")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 4)
	s.Set(1, 1, 'X', ColorRed)

	s.Resize(4, 4)
	if s.Get(1, 1) != 'X' {
		t.Error("Resize to the same size should keep content")
	}

	s.Resize(6, 2)
	if s.Width() != 6 || s.Height() != 2 {
		t.Errorf("size after Resize = %dx%d, expected 6x2", s.Width(), s.Height())
	}
	if strings.TrimSpace(s.String()) != "" {
		t.Error("Resize should discard content")
	}
}

func TestViewportCell(t *testing.T) {
	v := Viewport{Bounds: NewBounds(100, 50), Cols: 10, Rows: 5}

	tests := []struct {
		name   string
		p      Vec2
		wantX  int
		wantY  int
		wantOK bool
	}{
		{"origin", V(0, 0), 1, 1, true},
		{"center", V(50, 25), 6, 3, true},
		{"far corner clamps", V(100, 50), 10, 5, true},
		{"outside", V(101, 10), 0, 0, false},
		{"negative", V(-1, 10), 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := v.Cell(tt.p)
			if x != tt.wantX || y != tt.wantY || ok != tt.wantOK {
				t.Errorf("Cell(%v) = (%d, %d, %v), expected (%d, %d, %v)",
					tt.p, x, y, ok, tt.wantX, tt.wantY, tt.wantOK)
			}
		})
	}
}

func TestViewportDisabledBounds(t *testing.T) {
	v := Viewport{Cols: 10, Rows: 5}
	if _, _, ok := v.Cell(V(1, 1)); ok {
		t.Error("Cell should fail without bounds")
	}
}

func TestScreenPlot(t *testing.T) {
	s := NewScreen(12, 7)
	v := s.Viewport(NewBounds(100, 50))

	if v.Cols != 10 || v.Rows != 5 {
		t.Fatalf("Viewport = %dx%d, expected 10x5", v.Cols, v.Rows)
	}

	s.Plot(v, V(50, 25), '@', ColorCyan)
	s.Plot(v, V(500, 25), '!', ColorRed)

	if s.Get(6, 3) != '@' {
		t.Errorf("Plot did not draw at (6, 3):\n%s", s.String())
	}
	if strings.ContainsRune(s.String(), '!') {
		t.Error("Plot outside the bounds should draw nothing")
	}
}

func TestSideColor(t *testing.T) {
	if SideColor(Player1) == SideColor(Player2) {
		t.Error("sides should have distinct colors")
	}
}
