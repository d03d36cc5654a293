// Package config provides YAML-based tuning and arena configuration loading
// for the dogfight pilot.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidTuning is returned when a tuning configuration breaks the
// scoring ordering or has non-positive search parameters.
var ErrInvalidTuning = errors.New("config: invalid tuning")

// Tuning contains every constant the decision engine consumes.
// It is a plain value with no references, so copies never share state.
type Tuning struct {
	Search      SearchConfig      `yaml:"search"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Geometry    GeometryConfig    `yaml:"geometry"`
	Fire        FireConfig        `yaml:"fire"`
	Observation ObservationConfig `yaml:"observation"`
}

// SearchConfig controls the trajectory lookahead.
type SearchConfig struct {
	Horizon  int     `yaml:"horizon"`   // Steps per rollout
	StepSize float64 `yaml:"step_size"` // Seconds per step
}

// ScoringConfig holds the weights of the trajectory score.
type ScoringConfig struct {
	HysteresisBonus     float64 `yaml:"hysteresis_bonus"`
	CollisionPenalty    float64 `yaml:"collision_penalty"`     // Large negative base
	CollisionEarlyBonus float64 `yaml:"collision_early_bonus"` // Added per collision step index
	DangerPenalty       float64 `yaml:"danger_penalty"`        // Flat, applied once
	DistanceWeight      float64 `yaml:"distance_weight"`
	AimWeight           float64 `yaml:"aim_weight"`
	DistanceScale       float64 `yaml:"distance_scale"` // Distance at which the distance reward halves
}

// GeometryConfig holds collision radii and margins.
type GeometryConfig struct {
	ShipRadius   float64 `yaml:"ship_radius"`
	DangerMargin float64 `yaml:"danger_margin"` // Extra clearance counted as a near miss
}

// FireConfig controls when the pilot pulls the trigger.
type FireConfig struct {
	Cone  float64 `yaml:"cone"`  // Max absolute bearing in radians
	Range float64 `yaml:"range"` // Max distance to target
}

// ObservationConfig holds the normalization caps of the observation vector.
type ObservationConfig struct {
	MaxSpeed       float64 `yaml:"max_speed"`
	DistanceCap    float64 `yaml:"distance_cap"`
	HazardSpeedCap float64 `yaml:"hazard_speed_cap"`
	FireCooldown   float64 `yaml:"fire_cooldown"` // Full cooldown duration in seconds
}

// EngagementMax returns the largest value the engagement term can reach.
func (t Tuning) EngagementMax() float64 {
	return t.Scoring.DistanceWeight + t.Scoring.AimWeight
}

// Validate checks that the configuration is usable. In particular, the best
// possible colliding candidate must stay strictly below the worst possible
// non-colliding one.
func (t Tuning) Validate() error {
	if t.Search.Horizon <= 0 {
		return fmt.Errorf("%w: horizon must be positive, got %d", ErrInvalidTuning, t.Search.Horizon)
	}
	if t.Search.StepSize <= 0 {
		return fmt.Errorf("%w: step_size must be positive, got %g", ErrInvalidTuning, t.Search.StepSize)
	}
	s := t.Scoring
	if s.DistanceWeight < 0 || s.AimWeight < 0 || s.DistanceScale <= 0 {
		return fmt.Errorf("%w: engagement weights must be non-negative with positive scale", ErrInvalidTuning)
	}
	if s.CollisionEarlyBonus < 0 || s.HysteresisBonus < 0 {
		return fmt.Errorf("%w: collision_early_bonus and hysteresis_bonus must be non-negative", ErrInvalidTuning)
	}
	if s.DangerPenalty > 0 {
		return fmt.Errorf("%w: danger_penalty must not be positive", ErrInvalidTuning)
	}

	bestCollision := t.EngagementMax() + s.CollisionPenalty +
		s.CollisionEarlyBonus*float64(t.Search.Horizon) + s.HysteresisBonus
	worstSafe := s.DangerPenalty
	if bestCollision >= worstSafe {
		return fmt.Errorf("%w: best colliding score %.1f reaches worst non-colliding score %.1f",
			ErrInvalidTuning, bestCollision, worstSafe)
	}
	return nil
}

// Arena contains configuration for the headless arena used by the harness.
type Arena struct {
	Width          float64          `yaml:"width"`
	Height         float64          `yaml:"height"`
	MaxTicks       int              `yaml:"max_ticks"`
	DecisionEvery  int              `yaml:"decision_every"` // Ticks between decisions
	Physics        PhysicsConfig    `yaml:"physics"`
	Hazards        HazardConfig     `yaml:"hazards"`
	Weapons        WeaponConfig     `yaml:"weapons"`
	Difficulty     DifficultyConfig `yaml:"difficulty"`
	SpawnClearance float64          `yaml:"spawn_clearance"`
	ShipRadius     float64          `yaml:"ship_radius"`
}

// PhysicsConfig defines ship kinematics.
type PhysicsConfig struct {
	ThrustAccel     float64 `yaml:"thrust_accel"`
	ReverseFraction float64 `yaml:"reverse_fraction"`
	RotationSpeed   float64 `yaml:"rotation_speed"` // Radians per second
	BrakeRate       float64 `yaml:"brake_rate"`     // Fraction of speed removed per second
	Drag            float64 `yaml:"drag"`
	MaxSpeed        float64 `yaml:"max_speed"`
}

// HazardConfig defines the asteroid field.
type HazardConfig struct {
	Count     int     `yaml:"count"`
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`
	MaxSpeed  float64 `yaml:"max_speed"`
}

// WeaponConfig defines bullets.
type WeaponConfig struct {
	BulletSpeed    float64 `yaml:"bullet_speed"`
	BulletLifetime float64 `yaml:"bullet_lifetime"` // Seconds
	BulletRadius   float64 `yaml:"bullet_radius"`
	FireCooldown   float64 `yaml:"fire_cooldown"` // Seconds
}

// DifficultyConfig defines how the hazard field scales.
type DifficultyConfig struct {
	Enabled      bool          `yaml:"enabled"`
	InitialLevel float64       `yaml:"initial_level"` // 0.0 = sparse, 1.0 = dense
	Scaling      ScalingConfig `yaml:"scaling"`
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	CountMultiplier float64 `yaml:"count_multiplier"` // Extra hazards as a fraction of base at max level
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Extra hazard speed at max level
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ParseDifficultyPreset validates a preset name. An empty name means no preset.
func ParseDifficultyPreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty preset %q", name)
	}
}

// IsFixedPreset returns true if the preset disables scaling.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
