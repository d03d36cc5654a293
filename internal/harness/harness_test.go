package harness

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/dogfight/internal/arena"
	"github.com/vovakirdan/dogfight/internal/config"
	"github.com/vovakirdan/dogfight/internal/core"
	"github.com/vovakirdan/dogfight/internal/registry"
)

// wallScenario launches Player1 into the left wall before any pilot can react.
type wallScenario struct{}

func (wallScenario) ID() string    { return "test-wall" }
func (wallScenario) Title() string { return "Wall" }
func (wallScenario) Layout(a config.Arena, _ *rand.Rand) core.Layout {
	l := core.Layout{Bounds: core.NewBounds(a.Width, a.Height)}
	l.Ships[0] = core.ShipState{Pos: core.V(16, 500), Vel: core.V(-400, 0), Heading: 0, Alive: true}
	l.Ships[1] = core.ShipState{Pos: core.V(1200, 500), Heading: 0, Alive: true}
	return l
}

func init() {
	registry.Register("test-wall", func() registry.Scenario { return wallScenario{} })
}

func shortArena() config.Arena {
	a := config.DefaultArena()
	a.MaxTicks = 240
	return a
}

func gameSpec(scenario string, seed int64) GameSpec {
	return GameSpec{
		Scenario:  scenario,
		Seed:      seed,
		Level:     0.5,
		Arena:     shortArena(),
		Candidate: config.DefaultTuning(),
		Baseline:  config.DefaultTuning(),
	}
}

type memSaver struct {
	mu     sync.Mutex
	games  []GameResult
	points []SweepPoint
	runIDs map[string]bool
}

func newMemSaver() *memSaver {
	return &memSaver{runIDs: make(map[string]bool)}
}

func (m *memSaver) SaveGame(_ context.Context, runID string, r GameResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games = append(m.games, r)
	m.runIDs[runID] = true
	return nil
}

func (m *memSaver) SaveSweepPoint(_ context.Context, runID string, p SweepPoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.points = append(m.points, p)
	m.runIDs[runID] = true
	return nil
}

func TestRunGameDeterministic(t *testing.T) {
	first, err := RunGame(context.Background(), gameSpec("field", 77))
	require.NoError(t, err)
	second, err := RunGame(context.Background(), gameSpec("field", 77))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunGameFinishes(t *testing.T) {
	res, err := RunGame(context.Background(), gameSpec("duel", 5))
	require.NoError(t, err)

	assert.NotEqual(t, arena.OutcomeNone, res.Outcome)
	assert.LessOrEqual(t, res.Ticks, shortArena().MaxTicks)
	assert.Positive(t, res.Candidate().Decisions)
	assert.LessOrEqual(t, res.Candidate().Changes, res.Candidate().Decisions)
	if res.Outcome == arena.OutcomeTimeout {
		assert.Empty(t, res.Kills)
	}
}

func TestMatchMatchesRunGame(t *testing.T) {
	want, err := RunGame(context.Background(), gameSpec("duel", 31))
	require.NoError(t, err)

	m, err := NewMatch(gameSpec("duel", 31))
	require.NoError(t, err)
	assert.Equal(t, core.ActionNone, m.Committed(core.Player1))

	steps := 0
	for !m.Done() {
		step, err := m.Step(context.Background())
		require.NoError(t, err)
		steps++
		assert.Equal(t, steps, step.Tick)
		if steps == 1 {
			assert.True(t, m.Committed(core.Player1).Valid())
		}
	}

	assert.Equal(t, want, m.Result())
	assert.Equal(t, want.Ticks, steps)

	// Stepping a finished match is a no-op
	step, err := m.Step(context.Background())
	require.NoError(t, err)
	assert.True(t, step.Done)
	assert.Equal(t, want, m.Result())
}

func TestNewMatchWarnsOnRadiusMismatch(t *testing.T) {
	var buf bytes.Buffer
	spec := gameSpec("duel", 1)
	spec.Logger = log.New(&buf)

	_, err := NewMatch(spec)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "ship radius")

	spec.Baseline.Geometry.ShipRadius = spec.Arena.ShipRadius + 5
	_, err = NewMatch(spec)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "tuning ship radius differs from arena")
	assert.Contains(t, out, "baseline")
	assert.NotContains(t, out, "candidate")
}

func TestRunGameCollapse(t *testing.T) {
	res, err := RunGame(context.Background(), gameSpec("test-wall", 1))
	require.NoError(t, err)

	require.Len(t, res.Kills, 1)
	assert.Equal(t, core.Player1, res.Kills[0].Victim)
	assert.Equal(t, arena.CauseWall, res.Kills[0].Cause)
	assert.Equal(t, 1, res.Candidate().Collapses)
	assert.Zero(t, res.Sides[1].Collapses)
	assert.Equal(t, arena.OutcomeLoss, res.Outcome)
}

func TestRunGameErrors(t *testing.T) {
	_, err := RunGame(context.Background(), gameSpec("no-such-scenario", 1))
	assert.ErrorIs(t, err, registry.ErrUnknownScenario)

	spec := gameSpec("duel", 1)
	spec.Candidate.Scoring.DangerPenalty = -50000
	_, err = RunGame(context.Background(), spec)
	assert.ErrorIs(t, err, config.ErrInvalidTuning)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = RunGame(ctx, gameSpec("duel", 1))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFlipTracker(t *testing.T) {
	A, B, C := core.ActionThrust, core.ActionRotateLeft, core.ActionBrake

	tests := []struct {
		name string
		seq  []core.Action
		want int
	}{
		{"steady", []core.Action{A, A, A, A}, 0},
		{"flip back", []core.Action{A, B, A}, 1},
		{"double flip", []core.Action{A, B, A, B}, 2},
		{"progression", []core.Action{A, B, C}, 0},
		{"slow return", []core.Action{A, B, B, B, B, A}, 0},
		{"return inside window", []core.Action{A, B, B, A}, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFlipTracker(DefaultOscillationWindow)
			got := 0
			for _, a := range tc.seq {
				if f.observe(a) {
					got++
				}
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRunReportsBoundaryLog(t *testing.T) {
	var buf bytes.Buffer
	saver := newMemSaver()

	sum, err := Run(context.Background(), Spec{
		Scenario:     "duel",
		Games:        3,
		Seed:         10,
		Arena:        shortArena(),
		Candidate:    config.DefaultTuning(),
		Baseline:     config.DefaultTuning(),
		Reporter:     NewReporter(&buf),
		SummaryEvery: 2,
		Saver:        saver,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, sum.Games)
	assert.Equal(t, 3, sum.Wins+sum.Losses+sum.Draws+sum.Timeouts)
	assert.Len(t, sum.Results, 3)
	assert.NotEmpty(t, sum.RunID)
	assert.Len(t, saver.games, 3)
	assert.True(t, saver.runIDs[sum.RunID])

	var games, kills int
	var summaries []SummaryLine
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case GameLinePattern.MatchString(line):
			games++
		case KillLinePattern.MatchString(line):
			kills++
			_, ok := ParseKillLine(line)
			assert.True(t, ok)
		case SummaryLinePattern.MatchString(line):
			s, ok := ParseSummaryLine(line)
			require.True(t, ok)
			summaries = append(summaries, s)
		default:
			t.Errorf("unexpected line %q", line)
		}
	}

	assert.Equal(t, 3, games)
	totalKills := 0
	for _, r := range sum.Results {
		totalKills += len(r.Kills)
	}
	assert.Equal(t, totalKills, kills)

	require.Len(t, summaries, 2, "one intermediate and one final summary")
	assert.Equal(t, 2, summaries[0].Games)
	final := summaries[1]
	assert.Equal(t, 3, final.Games)
	assert.Equal(t, sum.Oscillations, final.Oscillations)
	assert.Equal(t, sum.Collapses, final.Collapses)
	assert.InDelta(t, sum.FiresPerGame(), final.FiresPerGame, 0.005)
	assert.InDelta(t, sum.ChangesPerGame(), final.ChangesPerGame, 0.005)
}

func TestReporterFormat(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.Game(GameResult{
		Index: 0,
		Seed:  42,
		Kills: []arena.Kill{{Tick: 120, Victim: core.Player2, Cause: arena.CauseAsteroid}},
	})
	r.Summary(Summary{Games: 4, Oscillations: 3, Collapses: 1, Fires: 10, Changes: 6})
	require.NoError(t, r.Err())

	want := strings.Join([]string{
		"=== GAME 1 seed=42 ===",
		"KILL tick=120 side=p2 cause=asteroid",
		"SUMMARY games=4 oscillation=3 collapse=1 fires_per_game=2.50 changes_per_game=1.50",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())

	k, ok := ParseKillLine("KILL tick=120 side=p2 cause=asteroid")
	require.True(t, ok)
	assert.Equal(t, KillLine{Tick: 120, Side: core.Player2, Cause: "asteroid"}, k)

	_, ok = ParseSummaryLine("SUMMARY games=4")
	assert.False(t, ok)
}

func TestRunRejectsNoGames(t *testing.T) {
	_, err := Run(context.Background(), Spec{Scenario: "duel"})
	assert.Error(t, err)
}

func TestSweep(t *testing.T) {
	saver := newMemSaver()
	base := Spec{
		Scenario:  "duel",
		Games:     1,
		Seed:      3,
		Arena:     shortArena(),
		Candidate: config.DefaultTuning(),
		Baseline:  config.DefaultTuning(),
		Saver:     saver,
	}

	var mu sync.Mutex
	var calls []int
	values := []float64{0, 350, 700}

	points, err := Sweep(context.Background(), SweepSpec{
		Base:    base,
		Param:   "scoring.hysteresis_bonus",
		Values:  values,
		Workers: 2,
		Progress: func(done, total int) {
			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, len(values), total)
			calls = append(calls, done)
		},
	})
	require.NoError(t, err)

	require.Len(t, points, len(values))
	for i, p := range points {
		assert.Equal(t, values[i], p.Value)
		assert.Equal(t, "scoring.hysteresis_bonus", p.Param)
		assert.Equal(t, 1, p.Summary.Games)
	}
	assert.ElementsMatch(t, []int{1, 2, 3}, calls)
	assert.Len(t, saver.points, len(values))
	assert.Empty(t, saver.games, "sweeps store points, not games")
	assert.Len(t, saver.runIDs, 1, "all points share one run id")

	// The base tuning is untouched
	assert.Equal(t, config.DefaultTuning(), base.Candidate)

	_, ok := Best(points)
	assert.True(t, ok)
}

func TestSweepRejectsBadValues(t *testing.T) {
	base := Spec{Scenario: "duel", Games: 1, Arena: shortArena(), Candidate: config.DefaultTuning(), Baseline: config.DefaultTuning()}

	_, err := Sweep(context.Background(), SweepSpec{Base: base, Param: "no.such", Values: []float64{1}})
	assert.ErrorIs(t, err, config.ErrUnknownParam)

	_, err = Sweep(context.Background(), SweepSpec{Base: base, Param: "scoring.danger_penalty", Values: []float64{-50000}})
	assert.ErrorIs(t, err, config.ErrInvalidTuning)

	_, err = Sweep(context.Background(), SweepSpec{Base: base, Param: "search.horizon"})
	assert.Error(t, err)
}

func TestBest(t *testing.T) {
	mk := func(v float64, wins, collapses int) SweepPoint {
		return SweepPoint{Value: v, Summary: Summary{Games: 10, Wins: wins, Collapses: collapses}}
	}

	best, ok := Best([]SweepPoint{mk(1, 3, 0), mk(2, 5, 4), mk(3, 5, 1), mk(4, 5, 1)})
	require.True(t, ok)
	assert.Equal(t, 3.0, best.Value)

	// full ties go to the lower value whatever the input order
	best, ok = Best([]SweepPoint{mk(4, 5, 1), mk(2, 3, 0), mk(3, 5, 1)})
	require.True(t, ok)
	assert.Equal(t, 3.0, best.Value)

	_, ok = Best(nil)
	assert.False(t, ok)
}
