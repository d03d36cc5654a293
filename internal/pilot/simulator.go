// Package pilot is the predictive decision engine: it rolls every candidate
// action forward over a short horizon, scores the resulting paths and commits
// to one action per decision tick.
package pilot

import (
	"math"

	"github.com/vovakirdan/dogfight/internal/config"
	"github.com/vovakirdan/dogfight/internal/core"
)

// AdvanceFunc is the physics primitive used to integrate a ship forward.
// It must not modify anything reachable from its arguments.
type AdvanceFunc func(s core.ShipState, a core.Action, dt float64) core.ShipState

// Snapshot is the frozen view of the world for one decision.
// The planner reads it and never writes to it.
type Snapshot struct {
	Target  *core.ShipState
	Hazards []core.HazardState
	Bounds  core.Bounds
}

// Trajectory is the predicted path of one candidate action.
type Trajectory struct {
	Action core.Action
	// States holds the predicted ship state after each step; States[i] is step i+1.
	States []core.ShipState
	// CollisionStep is the 1-indexed step of the first impact, 0 if none.
	CollisionStep int
	// Danger is set when any step came within the danger margin of a hazard
	// or wall without touching it.
	Danger bool
}

// Collides reports whether the trajectory hits something inside the horizon.
func (t Trajectory) Collides() bool {
	return t.CollisionStep > 0
}

// Terminal returns the last predicted state, or start if nothing was simulated.
func (t Trajectory) Terminal(start core.ShipState) core.ShipState {
	if len(t.States) == 0 {
		return start
	}
	return t.States[len(t.States)-1]
}

// Simulator rolls a single action forward over a fixed horizon.
type Simulator struct {
	advance      AdvanceFunc
	horizon      int
	dt           float64
	shipRadius   float64
	dangerMargin float64
}

// NewSimulator creates a simulator for the given tuning and physics primitive.
func NewSimulator(cfg config.Tuning, advance AdvanceFunc) *Simulator {
	return &Simulator{
		advance:      advance,
		horizon:      cfg.Search.Horizon,
		dt:           cfg.Search.StepSize,
		shipRadius:   cfg.Geometry.ShipRadius,
		dangerMargin: cfg.Geometry.DangerMargin,
	}
}

// Horizon returns the number of steps per rollout.
func (s *Simulator) Horizon() int {
	return s.horizon
}

// StepSize returns the simulated seconds per step.
func (s *Simulator) StepSize() float64 {
	return s.dt
}

// Rollout holds action constant for the whole horizon and records the
// predicted states. Hazards drift at their snapshot velocity. Integration
// stops at the first collision.
func (s *Simulator) Rollout(start core.ShipState, action core.Action, world Snapshot) Trajectory {
	traj := Trajectory{
		Action: action,
		States: make([]core.ShipState, 0, s.horizon),
	}

	state := start
	for step := 1; step <= s.horizon; step++ {
		state = s.advance(state, action, s.dt)
		traj.States = append(traj.States, state)

		hit, near := s.check(state.Pos, world, float64(step)*s.dt)
		if hit {
			traj.CollisionStep = step
			break
		}
		if near {
			traj.Danger = true
		}
	}
	return traj
}

// check tests the ship position at time t against hazards and walls.
func (s *Simulator) check(pos core.Vec2, world Snapshot, t float64) (hit, near bool) {
	for _, h := range world.Hazards {
		d := core.Dist(pos, h.At(t))
		contact := h.Radius + s.shipRadius
		if d <= contact {
			return true, false
		}
		if d <= contact+s.dangerMargin {
			near = true
		}
	}

	if world.Bounds.Enabled() {
		clearance := world.Bounds.WallClearance(pos)
		if math.IsNaN(clearance) || clearance <= s.shipRadius {
			return true, false
		}
		if clearance <= s.shipRadius+s.dangerMargin {
			near = true
		}
	}
	return false, near
}
