// Package harness runs seeded pilot-versus-pilot games in the headless arena
// and aggregates structured results. It replaces scraping a game process's
// output: callers get kill attribution, oscillation and collapse counts
// directly, and can still emit the stable textual log through a Reporter.
package harness

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dogfight/internal/arena"
	"github.com/vovakirdan/dogfight/internal/config"
	"github.com/vovakirdan/dogfight/internal/core"
	"github.com/vovakirdan/dogfight/internal/pilot"
	"github.com/vovakirdan/dogfight/internal/registry"
)

// DefaultOscillationWindow is how many decisions a flip back may take and
// still count as oscillation.
const DefaultOscillationWindow = 3

// GameSpec describes one seeded game. Player1 flies Candidate, Player2 flies Baseline.
type GameSpec struct {
	Index     int
	Scenario  string
	Seed      int64
	Level     float64
	Arena     config.Arena
	Candidate config.Tuning
	Baseline  config.Tuning
	// OscillationWindow defaults to DefaultOscillationWindow when zero.
	OscillationWindow int
	// Logger receives per-decision debug records when set.
	Logger *log.Logger
}

// SideStats are the per-side behaviour counters of one game.
type SideStats struct {
	Decisions    int
	Changes      int
	Oscillations int
	Collapses    int
	Fires        int
}

// GameResult is the structured record of one finished game.
type GameResult struct {
	Index    int
	Seed     int64
	Scenario string
	Level    float64
	Ticks    int
	// Outcome is seen from the candidate's side.
	Outcome arena.Outcome
	Kills   []arena.Kill
	Sides   [2]SideStats
}

// Candidate returns the counters of the side flying the tuned configuration.
func (r GameResult) Candidate() SideStats {
	return r.Sides[core.Player1.Index()]
}

// RunGame plays one game to completion. Only setup failures and context
// cancellation produce errors; the pilots themselves cannot fail.
func RunGame(ctx context.Context, spec GameSpec) (GameResult, error) {
	m, err := NewMatch(spec)
	if err != nil {
		return GameResult{}, err
	}
	for !m.Done() {
		if _, err := m.Step(ctx); err != nil {
			return m.Result(), err
		}
	}
	return m.Result(), nil
}

// Match is one game in progress with both pilots attached. It advances one
// tick per Step so a viewer can draw between ticks.
type Match struct {
	game     *arena.Game
	pilots   [2]*pilot.Selector
	trackers [2]*flipTracker
	cmds     [2]core.Command
	every    int
	res      GameResult
}

var pilotNames = [2]string{"candidate", "baseline"}

// NewMatch validates both tunings and sets up the game and pilots.
func NewMatch(spec GameSpec) (*Match, error) {
	scenario, err := registry.Create(spec.Scenario)
	if err != nil {
		return nil, fmt.Errorf("harness: %w", err)
	}
	if err := spec.Candidate.Validate(); err != nil {
		return nil, fmt.Errorf("harness: candidate: %w", err)
	}
	if err := spec.Baseline.Validate(); err != nil {
		return nil, fmt.Errorf("harness: baseline: %w", err)
	}

	game := arena.New(spec.Arena, scenario)
	rt := core.DefaultConfig()
	rt.Seed = spec.Seed
	game.Reset(rt, spec.Level)

	m := &Match{
		game:  game,
		every: max(spec.Arena.DecisionEvery, 1),
		res: GameResult{
			Index:    spec.Index,
			Seed:     spec.Seed,
			Scenario: spec.Scenario,
			Level:    spec.Level,
		},
	}

	kin := game.Kinematics()
	for i, cfg := range [2]config.Tuning{spec.Candidate, spec.Baseline} {
		var opts []pilot.Option
		if spec.Logger != nil {
			opts = append(opts, pilot.WithLogger(spec.Logger.With("game", spec.Index)))
			// The pilot plans with its own radius; the arena judges with its own.
			if cfg.Geometry.ShipRadius != spec.Arena.ShipRadius {
				spec.Logger.Warn("tuning ship radius differs from arena",
					"pilot", pilotNames[i], "tuning", cfg.Geometry.ShipRadius, "arena", spec.Arena.ShipRadius)
			}
		}
		m.pilots[i] = pilot.NewSelector(cfg, kin.Advance, opts...)
	}

	window := spec.OscillationWindow
	if window <= 0 {
		window = DefaultOscillationWindow
	}
	m.trackers = [2]*flipTracker{newFlipTracker(window), newFlipTracker(window)}
	return m, nil
}

// Game returns the underlying arena. Callers must not step it directly.
func (m *Match) Game() *arena.Game {
	return m.game
}

// Done reports whether the game has ended.
func (m *Match) Done() bool {
	return m.game.Done()
}

// Committed returns the movement action a side is currently flying.
func (m *Match) Committed(side core.PlayerID) core.Action {
	a, _ := m.pilots[side.Index()].Committed()
	return a
}

// Step runs the pilots when a decision is due and advances the game one
// tick. The context is checked on decision ticks only.
func (m *Match) Step(ctx context.Context) (arena.StepResult, error) {
	if m.game.Done() {
		return arena.StepResult{Tick: m.game.Tick(), Done: true}, nil
	}

	if m.game.Tick()%m.every == 0 {
		if err := ctx.Err(); err != nil {
			return arena.StepResult{}, err
		}
		for i, side := range []core.PlayerID{core.Player1, core.Player2} {
			self, world := m.game.Snapshot(side)
			if !self.Alive {
				continue
			}
			d := m.pilots[i].Decide(self, world)
			m.cmds[i] = d.Command

			st := &m.res.Sides[i]
			st.Decisions++
			if d.Changed {
				st.Changes++
			}
			if m.trackers[i].observe(d.Command.Move) {
				st.Oscillations++
			}
		}
	}

	step := m.game.Step(m.cmds)

	for i := range m.cmds {
		// Fire is a one-shot decision, not held between decisions
		m.cmds[i].Fire = false
		if step.Fired[i] {
			m.res.Sides[i].Fires++
		}
	}
	for _, k := range step.Kills {
		if !k.Cause.ByOpponent() {
			m.res.Sides[k.Victim.Index()].Collapses++
		}
		m.pilots[k.Victim.Index()].Reset()
		m.trackers[k.Victim.Index()].reset()
	}
	return step, nil
}

// Result returns the record of the game so far.
func (m *Match) Result() GameResult {
	res := m.res
	res.Ticks = m.game.Tick()
	res.Outcome = m.game.Outcome(core.Player1)
	res.Kills = m.game.Kills()
	return res
}

// flipTracker detects A->B->A flips among committed actions.
type flipTracker struct {
	window      int
	last        core.Action
	before      core.Action
	sinceChange int
}

func newFlipTracker(window int) *flipTracker {
	f := &flipTracker{window: window}
	f.reset()
	return f
}

func (f *flipTracker) reset() {
	f.last, f.before, f.sinceChange = core.ActionNone, core.ActionNone, 0
}

// observe records one decision and reports whether it completed a flip back.
func (f *flipTracker) observe(a core.Action) bool {
	if f.last == core.ActionNone {
		f.last = a
		return false
	}
	f.sinceChange++
	if a == f.last {
		return false
	}
	osc := a == f.before && f.sinceChange <= f.window
	f.before, f.last, f.sinceChange = f.last, a, 0
	return osc
}
