package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dogfight/internal/storage"
)

// Results browser layout constants
const (
	minWidthForSidebar = 90 // Minimum width to show the run list sidebar
	sidebarWidth       = 28 // Width of run list sidebar
	maxRuns            = 50 // Max runs to load
)

// ResultsKeyMap defines the key bindings for the results browser.
type ResultsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextRun key.Binding
	PrevRun key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ResultsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextRun, k.PrevRun, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ResultsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextRun, k.PrevRun},
		{k.Quit},
	}
}

// DefaultResultsKeyMap returns default key bindings.
func DefaultResultsKeyMap() ResultsKeyMap {
	return ResultsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextRun: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next run"),
		),
		PrevRun: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev run"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ResultsModel is the Bubble Tea model for browsing stored runs.
type ResultsModel struct {
	store       *storage.Store
	runs        []storage.RunInfo
	cursor      int
	table       table.Model
	help        help.Model
	keys        ResultsKeyMap
	loadErr     error
	width       int
	height      int
	showSidebar bool
}

// NewResultsModel creates a browser over the most recent runs in store.
func NewResultsModel(store *storage.Store, width, height int) ResultsModel {
	h := help.New()
	h.ShowAll = false

	m := ResultsModel{
		store:       store,
		keys:        DefaultResultsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	runs, err := store.RecentRuns(context.Background(), maxRuns)
	m.runs, m.loadErr = runs, err
	m.loadRun()
	return m
}

// createTable creates a table with columns for the given run kind.
func (m *ResultsModel) createTable(kind string) table.Model {
	var columns []table.Column
	if kind == storage.KindSweep {
		columns = []table.Column{
			{Title: "Value", Width: 10},
			{Title: "Games", Width: 6},
			{Title: "Win", Width: 6},
			{Title: "Osc", Width: 6},
			{Title: "Collapse", Width: 9},
			{Title: "Fires/g", Width: 8},
			{Title: "Changes/g", Width: 10},
		}
	} else {
		columns = []table.Column{
			{Title: "#", Width: 4},
			{Title: "Seed", Width: 12},
			{Title: "Outcome", Width: 12},
			{Title: "Ticks", Width: 6},
			{Title: "Kills", Width: 20},
			{Title: "Osc", Width: 5},
			{Title: "Collapse", Width: 9},
			{Title: "Fires", Width: 6},
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRun fills the table with the rows of the selected run.
func (m *ResultsModel) loadRun() {
	if len(m.runs) == 0 {
		m.table = m.createTable(storage.KindSimulate)
		return
	}

	run := m.runs[m.cursor]
	m.table = m.createTable(run.Kind)
	ctx := context.Background()

	var rows []table.Row
	if run.Kind == storage.KindSweep {
		points, err := m.store.SweepPoints(ctx, run.RunID)
		if err != nil {
			m.loadErr = err
		}
		for _, p := range points {
			rows = append(rows, sweepRecordRow(p))
		}
	} else {
		games, err := m.store.GamesForRun(ctx, run.RunID)
		if err != nil {
			m.loadErr = err
		}
		for _, g := range games {
			rows = append(rows, gameRecordRow(g))
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the results model.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results browser.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextRun):
			if len(m.runs) > 0 {
				m.cursor = (m.cursor + 1) % len(m.runs)
				m.loadRun()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevRun):
			if len(m.runs) > 0 {
				m.cursor = (m.cursor - 1 + len(m.runs)) % len(m.runs)
				m.loadRun()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.loadRun()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results browser.
func (m ResultsModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "RESULTS"
	if len(m.runs) > 0 {
		r := m.runs[m.cursor]
		title = fmt.Sprintf("RESULTS - %s %s (%s)", r.Kind, r.Scenario, shortID(r.RunID))
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", tableRendered))
	} else {
		b.WriteString(centerText(tableRendered, m.width))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar renders the run list.
func (m ResultsModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Runs\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, r := range m.runs {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(fmt.Sprintf("%s%s %s", cursor, shortID(r.RunID), r.Kind)))
		sidebar.WriteString("\n")
	}

	return sidebarStyle.Render(sidebar.String())
}

// renderTableContent renders the table or an empty message.
func (m ResultsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return emptyStyle.Render("Could not load results:\n" + m.loadErr.Error())
	}
	if len(m.runs) == 0 {
		return emptyStyle.Render("No runs recorded yet.\nUse simulate --save or sweep --save.")
	}
	return m.table.View()
}

// RunResults runs the results browser.
func RunResults(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewResultsModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// shortID returns the first block of a run id.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// centerText centers text horizontally within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}
