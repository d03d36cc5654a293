package pilot

import (
	"math"

	"github.com/vovakirdan/dogfight/internal/config"
	"github.com/vovakirdan/dogfight/internal/core"
)

// Breakdown is the additive composition of a trajectory score.
type Breakdown struct {
	Engagement float64
	Collision  float64
	Danger     float64
	Hysteresis float64
}

// Total returns the sum of all terms.
func (b Breakdown) Total() float64 {
	return b.Engagement + b.Collision + b.Danger + b.Hysteresis
}

// ScoreContext carries what the scorer needs besides the trajectory itself.
type ScoreContext struct {
	Start  core.ShipState
	Target *core.ShipState
	// Previous is the committed action, or core.ActionNone.
	Previous core.Action
}

// Scorer rates trajectories with immutable weights.
type Scorer struct {
	scoring config.ScoringConfig
	dt      float64
}

// NewScorer creates a scorer from a tuning configuration.
func NewScorer(cfg config.Tuning) *Scorer {
	return &Scorer{
		scoring: cfg.Scoring,
		dt:      cfg.Search.StepSize,
	}
}

// Score rates a trajectory. Nothing reachable from the arguments is modified.
func (s *Scorer) Score(traj Trajectory, ctx ScoreContext) Breakdown {
	var b Breakdown

	terminal := traj.Terminal(ctx.Start)
	if ctx.Target != nil && ctx.Target.Alive {
		elapsed := float64(len(traj.States)) * s.dt
		aim := ctx.Target.Pos.Add(ctx.Target.Vel.Scale(elapsed))
		b.Engagement = s.Engagement(terminal, aim)
	}

	switch {
	case traj.Collides():
		b.Collision = s.CollisionPenalty(traj.CollisionStep)
	case traj.Danger:
		b.Danger = s.scoring.DangerPenalty
	}

	if ctx.Previous.Valid() && traj.Action == ctx.Previous {
		b.Hysteresis = s.scoring.HysteresisBonus
	}
	return b
}

// Engagement rewards being close to and pointed at aim. It is strictly
// decreasing in both distance and absolute bearing and lies in
// [0, DistanceWeight+AimWeight].
func (s *Scorer) Engagement(ship core.ShipState, aim core.Vec2) float64 {
	d := core.Dist(ship.Pos, aim)
	if !core.Finite(d) {
		return 0
	}
	bearing := math.Abs(core.Bearing(ship.Pos, ship.Heading, aim))

	closeness := s.scoring.DistanceScale / (s.scoring.DistanceScale + d)
	pointing := 1 - bearing/math.Pi
	return s.scoring.DistanceWeight*closeness + s.scoring.AimWeight*pointing
}

// CollisionPenalty is the contribution of an impact at the given 1-indexed step.
// Later impacts are penalized less when the gradient is positive.
func (s *Scorer) CollisionPenalty(step int) float64 {
	return s.scoring.CollisionPenalty + s.scoring.CollisionEarlyBonus*float64(step)
}
