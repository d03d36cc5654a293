package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dogfight/internal/harness"
)

// Sweep view layout constants
const (
	progressRefreshRate = 10 // Elapsed-time refreshes per second
	progressMaxWidth    = 60
	progressPadding     = 2
)

// progressMsg reports that another sweep point finished.
type progressMsg struct {
	done  int
	total int
}

// sweepDoneMsg carries the sweep outcome.
type sweepDoneMsg struct {
	points []harness.SweepPoint
	err    error
}

// SweepModel is the Bubble Tea model showing a running parameter sweep.
type SweepModel struct {
	title     string
	bar       progress.Model
	done      int
	total     int
	started   time.Time
	elapsed   time.Duration
	points    []harness.SweepPoint
	err       error
	finished  bool
	cancelled bool
	cancel    context.CancelFunc
}

// NewSweepModel creates a progress view for a sweep of total points.
// cancel is invoked when the user interrupts.
func NewSweepModel(title string, total int, cancel context.CancelFunc) SweepModel {
	return SweepModel{
		title:   title,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		total:   total,
		started: time.Now(),
		cancel:  cancel,
	}
}

// Init starts the elapsed-time refresh.
func (m SweepModel) Init() tea.Cmd {
	return tickCmd(progressRefreshRate)
}

// Update handles progress, completion and interrupt messages.
func (m SweepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if !m.cancelled && m.cancel != nil {
				m.cancelled = true
				m.cancel()
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.bar.Width = min(msg.Width-progressPadding*2, progressMaxWidth)
		return m, nil

	case progressMsg:
		m.done, m.total = msg.done, msg.total
		return m, m.bar.SetPercent(m.Percent())

	case sweepDoneMsg:
		m.finished = true
		m.points = msg.points
		m.err = msg.err
		m.elapsed = time.Since(m.started)
		return m, tea.Quit

	case TickMsg:
		if m.finished {
			return m, nil
		}
		m.elapsed = time.Since(m.started)
		return m, tickCmd(progressRefreshRate)

	case progress.FrameMsg:
		pm, cmd := m.bar.Update(msg)
		m.bar = pm.(progress.Model)
		return m, cmd
	}

	return m, nil
}

// View renders the progress bar with counters.
func (m SweepModel) View() string {
	if m.finished {
		return ""
	}

	pad := strings.Repeat(" ", progressPadding)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	status := fmt.Sprintf("%d/%d points  %s elapsed", m.done, m.total, m.elapsed.Truncate(time.Second))
	if m.cancelled {
		status += "  cancelling..."
	}

	return "\n" +
		pad + titleStyle.Render(m.title) + "\n\n" +
		pad + m.bar.View() + "\n\n" +
		pad + status + "\n" +
		pad + helpStyle.Render("q: cancel") + "\n"
}

// Percent returns the completed fraction.
func (m SweepModel) Percent() float64 {
	if m.total <= 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

// Result returns the sweep outcome once finished.
func (m SweepModel) Result() ([]harness.SweepPoint, error) {
	return m.points, m.err
}

// RunSweep runs the sweep behind a live progress view. It must be called
// with a terminal attached.
func RunSweep(ctx context.Context, title string, spec harness.SweepSpec) ([]harness.SweepPoint, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewSweepModel(title, len(spec.Values), cancel))

	spec.Progress = func(done, total int) {
		p.Send(progressMsg{done: done, total: total})
	}
	go func() {
		points, err := harness.Sweep(ctx, spec)
		p.Send(sweepDoneMsg{points: points, err: err})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(SweepModel)
	if !ok {
		return nil, fmt.Errorf("tui: unexpected model %T", finalModel)
	}
	return m.Result()
}
