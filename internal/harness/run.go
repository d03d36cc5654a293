package harness

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/dogfight/internal/arena"
	"github.com/vovakirdan/dogfight/internal/config"
)

// ResultSaver persists harness output. Implemented by storage.Store.
type ResultSaver interface {
	SaveGame(ctx context.Context, runID string, r GameResult) error
	SaveSweepPoint(ctx context.Context, runID string, p SweepPoint) error
}

// Spec describes a run of consecutive games on one scenario.
type Spec struct {
	// RunID identifies the run in storage; generated when empty.
	RunID     string
	Scenario  string
	Games     int
	Seed      int64
	Arena     config.Arena
	Candidate config.Tuning
	Baseline  config.Tuning

	OscillationWindow int

	// Reporter writes the boundary log when set.
	Reporter *Reporter
	// SummaryEvery emits an intermediate SUMMARY line every n games; 0 only at the end.
	SummaryEvery int
	// Saver stores each game when set.
	Saver  ResultSaver
	Logger *log.Logger
}

// Summary aggregates the candidate side over a run.
type Summary struct {
	RunID    string
	Scenario string
	Games    int

	Wins     int
	Losses   int
	Draws    int
	Timeouts int

	Oscillations int
	Collapses    int
	Fires        int
	Changes      int

	Results []GameResult
}

// Add folds one game into the summary.
func (s *Summary) Add(r GameResult) {
	s.Games++
	switch r.Outcome {
	case arena.OutcomeWin:
		s.Wins++
	case arena.OutcomeLoss:
		s.Losses++
	case arena.OutcomeDrawMutual:
		s.Draws++
	case arena.OutcomeTimeout:
		s.Timeouts++
	}

	c := r.Candidate()
	s.Oscillations += c.Oscillations
	s.Collapses += c.Collapses
	s.Fires += c.Fires
	s.Changes += c.Changes
	s.Results = append(s.Results, r)
}

// WinRate returns the fraction of games the candidate won.
func (s Summary) WinRate() float64 {
	return s.perGame(s.Wins)
}

// FiresPerGame returns the candidate's average shots per game.
func (s Summary) FiresPerGame() float64 {
	return s.perGame(s.Fires)
}

// ChangesPerGame returns the candidate's average action changes per game.
func (s Summary) ChangesPerGame() float64 {
	return s.perGame(s.Changes)
}

func (s Summary) perGame(n int) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(n) / float64(s.Games)
}

// Run plays spec.Games games sequentially with seeds Seed, Seed+1, ...
// Difficulty follows the arena's progression across the run.
func Run(ctx context.Context, spec Spec) (Summary, error) {
	if spec.Games <= 0 {
		return Summary{}, fmt.Errorf("harness: games must be positive, got %d", spec.Games)
	}
	runID := spec.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	sum := Summary{RunID: runID, Scenario: spec.Scenario}
	dm := config.NewDifficultyManager(spec.Arena.Difficulty)

	for i := 0; i < spec.Games; i++ {
		res, err := RunGame(ctx, GameSpec{
			Index:             i,
			Scenario:          spec.Scenario,
			Seed:              spec.Seed + int64(i),
			Level:             dm.Level(i, spec.Games),
			Arena:             spec.Arena,
			Candidate:         spec.Candidate,
			Baseline:          spec.Baseline,
			OscillationWindow: spec.OscillationWindow,
			Logger:            spec.Logger,
		})
		if err != nil {
			return sum, err
		}
		sum.Add(res)

		if spec.Logger != nil {
			spec.Logger.Debug("game finished",
				"run", runID,
				"game", i,
				"outcome", res.Outcome,
				"ticks", res.Ticks,
				"kills", len(res.Kills),
			)
		}
		if spec.Reporter != nil {
			spec.Reporter.Game(res)
			if spec.SummaryEvery > 0 && sum.Games%spec.SummaryEvery == 0 && sum.Games < spec.Games {
				spec.Reporter.Summary(sum)
			}
		}
		if spec.Saver != nil {
			if err := spec.Saver.SaveGame(ctx, runID, res); err != nil {
				return sum, fmt.Errorf("harness: save game %d: %w", i, err)
			}
		}
	}

	if spec.Reporter != nil {
		spec.Reporter.Summary(sum)
		if err := spec.Reporter.Err(); err != nil {
			return sum, fmt.Errorf("harness: report: %w", err)
		}
	}
	return sum, nil
}
