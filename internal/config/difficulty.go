package config

import "math"

// DifficultyManager scales the hazard field across the games of a run.
// With progression enabled the first game uses the initial level and the
// last game reaches 1.0, like a training curriculum.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Level returns the difficulty level (0.0 to 1.0) for game index `game` out of `games`.
func (d *DifficultyManager) Level(game, games int) float64 {
	if !d.cfg.Enabled || games <= 1 {
		return d.initialLevel
	}

	progress := clampF(float64(game)/float64(games-1), 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// HazardCount returns the number of hazards at the given level.
func (d *DifficultyManager) HazardCount(base int, level float64) int {
	// Count grows from base to base * (1 + countMultiplier)
	n := int(math.Round(float64(base) * (1.0 + level*d.cfg.Scaling.CountMultiplier)))
	if n < 0 {
		n = 0
	}
	return n
}

// HazardSpeed returns the maximum hazard drift speed at the given level.
func (d *DifficultyManager) HazardSpeed(base float64, level float64) float64 {
	return base * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
