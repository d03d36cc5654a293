// Package core provides fundamental types and utilities for the dogfight pilot.
// It contains no external dependencies to keep simulation and planning code pure
// and testable.
package core

import "math"

// Vec2 is a 2D vector in arena units.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Angle returns the direction of v in radians.
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Perp returns v rotated by +90 degrees.
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Unit returns v scaled to length 1.
// The zero vector (and any vector whose length is not a positive finite
// number) yields the zero vector instead of NaN components.
func (v Vec2) Unit() Vec2 {
	l := v.Len()
	if l == 0 || math.IsInf(l, 0) || math.IsNaN(l) {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// FromAngle returns the unit vector pointing along angle a.
func FromAngle(a float64) Vec2 {
	return Vec2{X: math.Cos(a), Y: math.Sin(a)}
}

// Dist returns the distance between two points.
func Dist(a, b Vec2) float64 {
	return b.Sub(a).Len()
}

// WrapAngle maps an angle into [-pi, pi].
func WrapAngle(a float64) float64 {
	return math.Remainder(a, 2*math.Pi)
}

// NormAngle maps an angle into [-1, 1] where +-1 means exactly opposite.
func NormAngle(a float64) float64 {
	return ClampF(WrapAngle(a)/math.Pi, -1, 1)
}

// Bearing returns the angle from a ship at `from` facing `heading` to the
// point `to`, wrapped into [-pi, pi]. Coincident points yield 0.
// Encoder and scorer both go through this so the degenerate case is handled
// the same way everywhere.
func Bearing(from Vec2, heading float64, to Vec2) float64 {
	d := to.Sub(from)
	if d.X == 0 && d.Y == 0 {
		return 0
	}
	return WrapAngle(WrapAngle(d.Angle()) - WrapAngle(heading))
}

// Bounds is an axis-aligned arena rectangle. The zero value means the arena
// has no walls.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewBounds creates bounds spanning [0,w] x [0,h].
func NewBounds(w, h float64) Bounds {
	return Bounds{MaxX: w, MaxY: h}
}

// Enabled reports whether the bounds describe a real rectangle.
func (b Bounds) Enabled() bool {
	return b.MaxX > b.MinX && b.MaxY > b.MinY
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns the vertical extent.
func (b Bounds) Height() float64 {
	return b.MaxY - b.MinY
}

// Center returns the center point of the bounds.
func (b Bounds) Center() Vec2 {
	return Vec2{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// WallClearance returns the distance from p to the nearest wall.
// Negative values mean p is outside. Disabled bounds report +Inf.
func (b Bounds) WallClearance(p Vec2) float64 {
	if !b.Enabled() {
		return math.Inf(1)
	}
	return math.Min(
		math.Min(p.X-b.MinX, b.MaxX-p.X),
		math.Min(p.Y-b.MinY, b.MaxY-p.Y),
	)
}

// Contains returns true if the point is inside the bounds (inclusive).
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
// NaN is passed through unchanged.
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Finite reports whether f is neither NaN nor infinite.
func Finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
