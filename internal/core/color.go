package core

// Color represents a foreground color for a screen cell.
// The platform layer maps each value to a terminal style.
type Color uint8

const (
	ColorDefault Color = iota
	ColorCyan
	ColorMagenta
	ColorYellow
	ColorRed
	ColorGray
	ColorWhite
)

// SideColor returns the color a side's ship and bullets are drawn with.
func SideColor(p PlayerID) Color {
	if p == Player2 {
		return ColorMagenta
	}
	return ColorCyan
}
