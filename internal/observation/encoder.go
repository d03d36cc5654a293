// Package observation projects raw ship and hazard state onto a fixed-length
// normalized feature vector.
//
// Layout (0-based):
//
//	0      own speed / max speed, [0,1]
//	1      velocity direction relative to facing, [-1,1]
//	2      thrust intensity
//	3      rotation direction (-1, 0, +1)
//	4      alive flag
//	5      fire cooldown fraction
//	6..11  target: distance, bearing, heading difference, closing speed,
//	       lateral speed, alive flag
//	12..35 up to 8 hazards, nearest first: distance, bearing, approach speed
package observation

import (
	"math"
	"sort"

	"github.com/vovakirdan/dogfight/internal/config"
	"github.com/vovakirdan/dogfight/internal/core"
)

const (
	// Size is the length of an observation vector.
	Size = 36
	// MaxHazards is the number of hazard slots.
	MaxHazards = 8

	selfOffset   = 0
	targetOffset = 6
	hazardOffset = 12
	hazardStride = 3
)

// Vector is one encoded observation. Every entry lies in [-1, 1].
type Vector [Size]float64

// Caps are the normalization constants of the encoder.
type Caps struct {
	MaxSpeed       float64
	DistanceCap    float64
	HazardSpeedCap float64
	FireCooldown   float64
}

// CapsFrom extracts the caps from a tuning configuration.
func CapsFrom(cfg config.ObservationConfig) Caps {
	return Caps{
		MaxSpeed:       cfg.MaxSpeed,
		DistanceCap:    cfg.DistanceCap,
		HazardSpeedCap: cfg.HazardSpeedCap,
		FireCooldown:   cfg.FireCooldown,
	}
}

// DefaultCaps returns the standard caps (400 speed, 1000 distance, 200 hazard speed).
func DefaultCaps() Caps {
	return CapsFrom(config.DefaultTuning().Observation)
}

// Encoder is a stateless projection; the zero value is not useful, use NewEncoder.
type Encoder struct {
	caps Caps
}

// NewEncoder creates an encoder with the given caps.
func NewEncoder(caps Caps) Encoder {
	return Encoder{caps: caps}
}

// Caps returns the encoder's normalization constants.
func (e Encoder) Caps() Caps {
	return e.caps
}

// Encode builds the observation for self against an optional target and the
// current hazards. Inputs are read only; hazards are never reordered in place.
func (e Encoder) Encode(self core.ShipState, target *core.ShipState, hazards []core.HazardState) Vector {
	var v Vector

	e.encodeSelf(&v, self)
	if target != nil {
		e.encodeTarget(&v, self, *target)
	}
	e.encodeHazards(&v, self, hazards)

	for i := range v {
		v[i] = sanitize(v[i])
	}
	return v
}

func (e Encoder) encodeSelf(v *Vector, self core.ShipState) {
	speed := self.Vel.Len()
	v[selfOffset+0] = clamp01(ratio(speed, e.caps.MaxSpeed))
	if speed > 0 {
		v[selfOffset+1] = core.NormAngle(core.WrapAngle(self.Vel.Angle()) - core.WrapAngle(self.Heading))
	}
	v[selfOffset+2] = clamp01(self.Thrust)
	v[selfOffset+3] = float64(core.Clamp(int(self.Rotation), -1, 1))
	v[selfOffset+4] = flag(self.Alive)
	v[selfOffset+5] = clamp01(ratio(self.FireCooldown, e.caps.FireCooldown))
}

func (e Encoder) encodeTarget(v *Vector, self, target core.ShipState) {
	offset := target.Pos.Sub(self.Pos)
	dist := offset.Len()

	v[targetOffset+0] = clamp01(ratio(dist, e.caps.DistanceCap))
	v[targetOffset+1] = core.NormAngle(core.Bearing(self.Pos, self.Heading, target.Pos))
	v[targetOffset+2] = core.NormAngle(core.WrapAngle(target.Heading) - core.WrapAngle(self.Heading))

	if dist > 0 {
		los := offset.Unit()
		rel := self.Vel.Sub(target.Vel)
		v[targetOffset+3] = clampUnit(ratio(rel.Dot(los), e.caps.MaxSpeed))
		v[targetOffset+4] = clampUnit(ratio(rel.Dot(los.Perp()), e.caps.MaxSpeed))
	}
	v[targetOffset+5] = flag(target.Alive)
}

type hazardRef struct {
	index int
	dist  float64
}

func (e Encoder) encodeHazards(v *Vector, self core.ShipState, hazards []core.HazardState) {
	near := make([]hazardRef, 0, len(hazards))
	for i, h := range hazards {
		d := core.Dist(self.Pos, h.Pos)
		if math.IsNaN(d) || d > e.caps.DistanceCap {
			continue
		}
		near = append(near, hazardRef{index: i, dist: d})
	}

	// Stable keeps input order for equal distances
	sort.SliceStable(near, func(i, j int) bool {
		return near[i].dist < near[j].dist
	})
	if len(near) > MaxHazards {
		near = near[:MaxHazards]
	}

	for slot, ref := range near {
		h := hazards[ref.index]
		base := hazardOffset + slot*hazardStride

		v[base+0] = clamp01(ratio(ref.dist, e.caps.DistanceCap))
		v[base+1] = core.NormAngle(core.Bearing(self.Pos, self.Heading, h.Pos))
		if ref.dist > 0 {
			los := h.Pos.Sub(self.Pos).Unit()
			v[base+2] = clampUnit(ratio(self.Vel.Sub(h.Vel).Dot(los), e.caps.HazardSpeedCap))
		}
	}
}

// ratio divides guarding against non-positive caps.
func ratio(x, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return x / limit
}

func clamp01(x float64) float64 {
	return core.ClampF(x, 0, 1)
}

func clampUnit(x float64) float64 {
	return core.ClampF(x, -1, 1)
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// sanitize maps NaN to 0 and anything else into [-1, 1].
func sanitize(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return clampUnit(x)
}
