package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vovakirdan/dogfight/internal/harness"
	"github.com/vovakirdan/dogfight/internal/storage"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	bestStyle   = cellStyle.Foreground(lipgloss.Color("10")).Bold(true)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// newTable returns a table with the shared look. highlight is the data row
// to emphasize, or -1.
func newTable(highlight int, headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == highlight:
				return bestStyle
			default:
				return cellStyle
			}
		})
}

func pct(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

// RenderSummary renders the aggregate of one run.
func RenderSummary(s harness.Summary) string {
	t := newTable(-1, "Metric", "Value").Rows(
		[]string{"Run", s.RunID},
		[]string{"Scenario", s.Scenario},
		[]string{"Games", strconv.Itoa(s.Games)},
		[]string{"Win rate", pct(s.WinRate())},
		[]string{"W / L / D / T", fmt.Sprintf("%d / %d / %d / %d", s.Wins, s.Losses, s.Draws, s.Timeouts)},
		[]string{"Oscillation", strconv.Itoa(s.Oscillations)},
		[]string{"Collapse", strconv.Itoa(s.Collapses)},
		[]string{"Fires / game", fmt.Sprintf("%.2f", s.FiresPerGame())},
		[]string{"Changes / game", fmt.Sprintf("%.2f", s.ChangesPerGame())},
	)
	return t.Render()
}

// RenderSweep renders sweep points with the best one highlighted.
func RenderSweep(points []harness.SweepPoint) string {
	best := -1
	if b, ok := harness.Best(points); ok {
		for i, p := range points {
			if p.Value == b.Value {
				best = i
				break
			}
		}
	}

	rows := make([][]string, len(points))
	for i, p := range points {
		s := p.Summary
		rows[i] = []string{
			strconv.FormatFloat(p.Value, 'g', -1, 64),
			strconv.Itoa(s.Games),
			pct(s.WinRate()),
			strconv.Itoa(s.Oscillations),
			strconv.Itoa(s.Collapses),
			fmt.Sprintf("%.2f", s.FiresPerGame()),
			fmt.Sprintf("%.2f", s.ChangesPerGame()),
		}
	}

	param := "Value"
	if len(points) > 0 {
		param = points[0].Param
	}
	return newTable(best, param, "Games", "Win", "Osc", "Collapse", "Fires/g", "Changes/g").
		Rows(rows...).
		Render()
}

// RenderRuns renders a list of stored runs.
func RenderRuns(runs []storage.RunInfo) string {
	rows := make([][]string, len(runs))
	for i, r := range runs {
		rows[i] = []string{r.RunID, r.Kind, r.Scenario, strconv.Itoa(r.Entries), r.CreatedAt.Format("2006-01-02 15:04")}
	}
	return newTable(-1, "Run", "Kind", "Scenario", "Entries", "Date").Rows(rows...).Render()
}

// RenderStoredPoints renders the stored points of one sweep.
func RenderStoredPoints(points []storage.SweepPointRecord, best *storage.SweepPointRecord) string {
	highlight := -1
	rows := make([][]string, len(points))
	for i, p := range points {
		if best != nil && p.ID == best.ID {
			highlight = i
		}
		rows[i] = sweepRecordRow(p)
	}

	param := "Value"
	if len(points) > 0 {
		param = points[0].Param
	}
	return newTable(highlight, param, "Games", "Win", "Osc", "Collapse", "Fires/g", "Changes/g").
		Rows(rows...).
		Render()
}

// RenderGames renders the stored games of one run.
func RenderGames(games []storage.GameRecord) string {
	rows := make([][]string, len(games))
	for i, g := range games {
		rows[i] = gameRecordRow(g)
	}
	return newTable(-1, "#", "Seed", "Outcome", "Ticks", "Kills", "Osc", "Collapse", "Fires").
		Rows(rows...).
		Render()
}

func sweepRecordRow(p storage.SweepPointRecord) []string {
	return []string{
		strconv.FormatFloat(p.Value, 'g', -1, 64),
		strconv.Itoa(p.Games),
		pct(p.WinRate),
		strconv.Itoa(p.Oscillations),
		strconv.Itoa(p.Collapses),
		fmt.Sprintf("%.2f", p.FiresPerGame),
		fmt.Sprintf("%.2f", p.ChangesPerGame),
	}
}

func gameRecordRow(g storage.GameRecord) []string {
	kills := g.Kills
	if kills == "" {
		kills = "-"
	}
	return []string{
		strconv.Itoa(g.Index + 1),
		strconv.FormatInt(g.Seed, 10),
		g.Outcome,
		strconv.Itoa(g.Ticks),
		kills,
		strconv.Itoa(g.Oscillations),
		strconv.Itoa(g.Collapses),
		strconv.Itoa(g.Fires),
	}
}
