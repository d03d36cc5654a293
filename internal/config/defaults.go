package config

import (
	_ "embed"
	"math"
)

//go:embed defaults/tuning.yaml
var defaultTuningYAML []byte

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// DefaultTuning returns the tuned pilot constants.
func DefaultTuning() Tuning {
	return Tuning{
		Search: SearchConfig{
			Horizon:  15,
			StepSize: 0.1,
		},
		Scoring: ScoringConfig{
			HysteresisBonus:     350,
			CollisionPenalty:    -20000,
			CollisionEarlyBonus: 50,
			DangerPenalty:       -10000,
			DistanceWeight:      600,
			AimWeight:           400,
			DistanceScale:       400,
		},
		Geometry: GeometryConfig{
			ShipRadius:   15,
			DangerMargin: 40,
		},
		Fire: FireConfig{
			Cone:  0.12,
			Range: 700,
		},
		Observation: ObservationConfig{
			MaxSpeed:       400,
			DistanceCap:    1000,
			HazardSpeedCap: 200,
			FireCooldown:   0.5,
		},
	}
}

// DefaultArena returns the default arena configuration.
func DefaultArena() Arena {
	return Arena{
		Width:          1600,
		Height:         1000,
		MaxTicks:       3600, // 60 seconds at 60 ticks/s
		DecisionEvery:  6,    // 10 decisions per second
		SpawnClearance: 150,
		ShipRadius:     15,
		Physics: PhysicsConfig{
			ThrustAccel:     250,
			ReverseFraction: 0.5,
			RotationSpeed:   math.Pi,
			BrakeRate:       1.5,
			Drag:            0.05,
			MaxSpeed:        400,
		},
		Hazards: HazardConfig{
			Count:     8,
			MinRadius: 20,
			MaxRadius: 50,
			MaxSpeed:  60,
		},
		Weapons: WeaponConfig{
			BulletSpeed:    600,
			BulletLifetime: 1.5,
			BulletRadius:   3,
			FireCooldown:   0.5,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.3,
			Scaling: ScalingConfig{
				CountMultiplier: 1.0,
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a config name.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "tuning":
		return defaultTuningYAML
	case "arena":
		return defaultArenaYAML
	default:
		return nil
	}
}
