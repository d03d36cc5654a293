// Package physics implements the ship kinematics shared by the headless arena
// and the planner's lookahead, so predictions follow the same law the game
// applies.
package physics

import (
	"math"

	"github.com/vovakirdan/dogfight/internal/config"
	"github.com/vovakirdan/dogfight/internal/core"
)

// Kinematics advances ship state by semi-implicit Euler integration.
type Kinematics struct {
	ThrustAccel     float64
	ReverseFraction float64
	RotationSpeed   float64
	BrakeRate       float64
	Drag            float64
	MaxSpeed        float64
}

// New creates kinematics from the arena physics section.
func New(cfg config.PhysicsConfig) Kinematics {
	return Kinematics{
		ThrustAccel:     cfg.ThrustAccel,
		ReverseFraction: cfg.ReverseFraction,
		RotationSpeed:   cfg.RotationSpeed,
		BrakeRate:       cfg.BrakeRate,
		Drag:            cfg.Drag,
		MaxSpeed:        cfg.MaxSpeed,
	}
}

// Advance returns the state of s after applying action a for dt seconds.
// The input is passed by value and never modified. Dead ships stay put.
func (k Kinematics) Advance(s core.ShipState, a core.Action, dt float64) core.ShipState {
	if !s.Alive || dt <= 0 {
		return s
	}

	ctl := a.Controls()
	s.Rotation = ctl.Rotation
	s.Heading = core.WrapAngle(s.Heading + float64(ctl.Rotation)*k.RotationSpeed*dt)

	thrust := ctl.Thrust
	if thrust < 0 {
		thrust *= k.ReverseFraction
	}
	s.Thrust = math.Abs(thrust)

	accel := core.FromAngle(s.Heading).Scale(thrust * k.ThrustAccel)
	s.Vel = s.Vel.Add(accel.Scale(dt))

	damping := k.Drag
	if ctl.Brake {
		damping += k.BrakeRate
	}
	if damping > 0 {
		s.Vel = s.Vel.Scale(math.Max(0, 1-damping*dt))
	}

	if k.MaxSpeed > 0 {
		if speed := s.Vel.Len(); speed > k.MaxSpeed {
			s.Vel = s.Vel.Scale(k.MaxSpeed / speed)
		}
	}

	s.Pos = s.Pos.Add(s.Vel.Scale(dt))

	if s.FireCooldown > 0 {
		s.FireCooldown = math.Max(0, s.FireCooldown-dt)
	}
	return s
}
