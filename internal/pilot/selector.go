package pilot

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dogfight/internal/config"
	"github.com/vovakirdan/dogfight/internal/core"
	"github.com/vovakirdan/dogfight/internal/observation"
)

// Candidate is one action with its rollout and score, alive for a single decision.
type Candidate struct {
	Trajectory Trajectory
	Score      Breakdown
}

// Action returns the candidate's action.
func (c Candidate) Action() core.Action {
	return c.Trajectory.Action
}

// Decision is the outcome of one decision tick.
type Decision struct {
	Command     core.Command
	Best        Candidate
	Candidates  []Candidate
	Observation observation.Vector
	// Changed is true when the committed action differs from the previous one.
	// The first commitment after a reset does not count as a change.
	Changed bool
}

// Selector owns the decision state of one ship. It is not safe for
// concurrent use; give every ship its own selector.
type Selector struct {
	cfg       config.Tuning
	sim       *Simulator
	scorer    *Scorer
	encoder   observation.Encoder
	actions   []core.Action
	committed core.Action
	logger    *log.Logger
}

// Option configures a Selector.
type Option func(*Selector)

// WithLogger enables per-decision debug records on the given logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Selector) {
		s.logger = l
	}
}

// WithActions restricts the candidate set. The order given is the tie-break
// priority. Invalid actions are dropped; an empty result keeps the full set.
func WithActions(actions ...core.Action) Option {
	return func(s *Selector) {
		valid := make([]core.Action, 0, len(actions))
		for _, a := range actions {
			if a.Valid() {
				valid = append(valid, a)
			}
		}
		if len(valid) > 0 {
			s.actions = valid
		}
	}
}

// NewSelector creates a selector in the uncommitted state.
func NewSelector(cfg config.Tuning, advance AdvanceFunc, opts ...Option) *Selector {
	s := &Selector{
		cfg:       cfg,
		sim:       NewSimulator(cfg, advance),
		scorer:    NewScorer(cfg),
		encoder:   observation.NewEncoder(observation.CapsFrom(cfg.Observation)),
		actions:   core.Actions(),
		committed: core.ActionNone,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Committed returns the currently committed action and whether there is one.
func (s *Selector) Committed() (core.Action, bool) {
	return s.committed, s.committed != core.ActionNone
}

// Reset returns to the uncommitted state. Call on death or respawn.
func (s *Selector) Reset() {
	s.committed = core.ActionNone
}

// Decide evaluates every candidate against the frozen snapshot and commits
// to the best one. It always returns exactly one action.
func (s *Selector) Decide(self core.ShipState, world Snapshot) Decision {
	prev := s.committed
	ctx := ScoreContext{Start: self, Target: world.Target, Previous: prev}

	candidates := make([]Candidate, 0, len(s.actions))
	for _, a := range s.actions {
		traj := s.sim.Rollout(self, a, world)
		candidates = append(candidates, Candidate{
			Trajectory: traj,
			Score:      s.scorer.Score(traj, ctx),
		})
	}

	best := 0
	for i := 1; i < len(candidates); i++ {
		if better(candidates[i], candidates[best], prev) {
			best = i
		}
	}

	chosen := candidates[best]
	s.committed = chosen.Action()

	d := Decision{
		Command: core.Command{
			Move: chosen.Action(),
			Fire: s.shouldFire(self, world.Target),
		},
		Best:        chosen,
		Candidates:  candidates,
		Observation: s.encoder.Encode(self, world.Target, world.Hazards),
		Changed:     prev != core.ActionNone && prev != chosen.Action(),
	}
	s.logDecision(self, d)
	return d
}

// better reports whether a beats b. A non-colliding candidate always beats a
// colliding one whatever the tuning, and between two colliding candidates the
// later impact wins. Candidates arrive in priority order, so returning false
// on a full tie keeps the higher-priority one.
func better(a, b Candidate, prev core.Action) bool {
	if ac, bc := a.Trajectory.Collides(), b.Trajectory.Collides(); ac != bc {
		return !ac
	}
	if a.Trajectory.CollisionStep != b.Trajectory.CollisionStep {
		return a.Trajectory.CollisionStep > b.Trajectory.CollisionStep
	}
	at, bt := a.Score.Total(), b.Score.Total()
	if at != bt {
		return at > bt
	}
	return a.Action() == prev && b.Action() != prev
}

func (s *Selector) shouldFire(self core.ShipState, target *core.ShipState) bool {
	if target == nil || !target.Alive || !self.Alive || self.FireCooldown > 0 {
		return false
	}
	if core.Dist(self.Pos, target.Pos) > s.cfg.Fire.Range {
		return false
	}
	return math.Abs(core.Bearing(self.Pos, self.Heading, target.Pos)) <= s.cfg.Fire.Cone
}

func (s *Selector) logDecision(self core.ShipState, d Decision) {
	if s.logger == nil || s.logger.GetLevel() > log.DebugLevel {
		return
	}
	b := d.Best.Score
	s.logger.Debug("decision",
		"side", self.Owner,
		"action", d.Command.Move,
		"fire", d.Command.Fire,
		"changed", d.Changed,
		"engagement", b.Engagement,
		"collision", b.Collision,
		"danger", b.Danger,
		"hysteresis", b.Hysteresis,
		"total", b.Total(),
		"collision_step", d.Best.Trajectory.CollisionStep,
		"obs", d.Observation[:],
	)
}
