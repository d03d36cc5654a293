// Package tui provides the Bubble Tea and Lip Gloss front end of the pilot
// CLI: the live sweep progress view, the stored results browser and the
// static tables printed when no terminal is attached.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to refresh time-dependent parts of a view.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
