package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTuningIsValid(t *testing.T) {
	cfg := DefaultTuning()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 15, cfg.Search.Horizon)
	assert.Equal(t, 0.1, cfg.Search.StepSize)
	assert.Equal(t, 350.0, cfg.Scoring.HysteresisBonus)
	assert.Equal(t, -20000.0, cfg.Scoring.CollisionPenalty)
	assert.Equal(t, 50.0, cfg.Scoring.CollisionEarlyBonus)
	assert.Equal(t, -10000.0, cfg.Scoring.DangerPenalty)
}

func TestEmbeddedTuningMatchesDefaults(t *testing.T) {
	cfg, err := ParseTuning(GetDefaultYAML("tuning"))
	require.NoError(t, err)
	assert.Equal(t, DefaultTuning(), cfg)
}

func TestEmbeddedArenaMatchesDefaults(t *testing.T) {
	cfg, err := LoadArena(writeFile(t, "arena.yaml", string(GetDefaultYAML("arena"))))
	require.NoError(t, err)
	assert.Equal(t, DefaultArena(), cfg)
}

func TestLoadTuning_PartialFileOverridesDefaults(t *testing.T) {
	path := writeFile(t, "tuning.yaml", `
scoring:
  hysteresis_bonus: 100
search:
  horizon: 20
`)

	cfg, err := LoadTuning(path)
	require.NoError(t, err)

	assert.Equal(t, 100.0, cfg.Scoring.HysteresisBonus)
	assert.Equal(t, 20, cfg.Search.Horizon)
	assert.Equal(t, -20000.0, cfg.Scoring.CollisionPenalty, "untouched keys keep defaults")
}

func TestLoadTuning_MissingFile(t *testing.T) {
	_, err := LoadTuning("/nonexistent/tuning.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoadTuning_Malformed(t *testing.T) {
	path := writeFile(t, "tuning.yaml", "search: [not, a, map")
	_, err := LoadTuning(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tuning)
		ok     bool
	}{
		{"defaults", func(*Tuning) {}, true},
		{"zero gradient", func(c *Tuning) { c.Scoring.CollisionEarlyBonus = 0 }, true},
		{"zero horizon", func(c *Tuning) { c.Search.Horizon = 0 }, false},
		{"negative step", func(c *Tuning) { c.Search.StepSize = -0.1 }, false},
		{"gradient lets late collision beat safe path", func(c *Tuning) { c.Scoring.CollisionEarlyBonus = 1000 }, false},
		{"hysteresis too large", func(c *Tuning) { c.Scoring.HysteresisBonus = 9000 }, false},
		{"positive danger", func(c *Tuning) { c.Scoring.DangerPenalty = 5 }, false},
		{"negative weight", func(c *Tuning) { c.Scoring.AimWeight = -1 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultTuning()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTuning)
			}
		})
	}
}

func TestWithParamCopies(t *testing.T) {
	base := DefaultTuning()

	changed, err := base.WithParam("scoring.collision_early_bonus", 25)
	require.NoError(t, err)

	assert.Equal(t, 25.0, changed.Scoring.CollisionEarlyBonus)
	assert.Equal(t, 50.0, base.Scoring.CollisionEarlyBonus, "receiver must not change")

	_, err = base.WithParam("scoring.nope", 1)
	assert.ErrorIs(t, err, ErrUnknownParam)

	_, err = base.WithParam("search.horizon", 0)
	assert.ErrorIs(t, err, ErrInvalidTuning)
}

func TestWithParamRejectsFractionalHorizon(t *testing.T) {
	base := DefaultTuning()

	for _, v := range []float64{15.5, 0.9, math.Inf(1), math.NaN()} {
		_, err := base.WithParam("search.horizon", v)
		assert.ErrorIs(t, err, ErrInvalidTuning, "horizon %v", v)
	}

	changed, err := base.WithParam("search.horizon", 20)
	require.NoError(t, err)
	assert.Equal(t, 20, changed.Search.Horizon)
	assert.Equal(t, 15, base.Search.Horizon)

	// fractional values stay fine for float parameters
	changed, err = base.WithParam("search.step_size", 0.05)
	require.NoError(t, err)
	assert.Equal(t, 0.05, changed.Search.StepSize)
}

func TestParamNamesSorted(t *testing.T) {
	names := ParamNames()
	require.NotEmpty(t, names)
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "scoring.hysteresis_bonus")
}

func TestMarshalTuningRoundTrip(t *testing.T) {
	data, err := MarshalTuning(DefaultTuning())
	require.NoError(t, err)
	assert.Contains(t, string(data), "collision_early_bonus: 50")
}

func TestDifficultyProgression(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Scaling:      ScalingConfig{CountMultiplier: 1, SpeedMultiplier: 0.5},
	})

	assert.InDelta(t, 0.2, dm.Level(0, 5), 1e-9)
	assert.InDelta(t, 1.0, dm.Level(4, 5), 1e-9)
	assert.InDelta(t, 0.6, dm.Level(2, 5), 1e-9)

	assert.Equal(t, 16, dm.HazardCount(8, 1.0))
	assert.Equal(t, 8, dm.HazardCount(8, 0))
	assert.InDelta(t, 90.0, dm.HazardSpeed(60, 1.0), 1e-9)
}

func TestDifficultyFixedPreset(t *testing.T) {
	cfg := DefaultArena()
	ApplyArenaPreset(&cfg, DifficultyFixed)
	assert.False(t, cfg.Difficulty.Enabled)

	dm := NewDifficultyManager(cfg.Difficulty)
	assert.Equal(t, dm.Level(0, 10), dm.Level(9, 10))

	ApplyArenaPreset(&cfg, DifficultyHard)
	assert.True(t, cfg.Difficulty.Enabled)
	assert.Equal(t, 0.7, cfg.Difficulty.InitialLevel)
}

func TestParseDifficultyPreset(t *testing.T) {
	for _, name := range []string{"", "easy", "normal", "hard", "fixed"} {
		p, err := ParseDifficultyPreset(name)
		require.NoError(t, err, name)
		assert.Equal(t, DifficultyPreset(name), p)
	}

	_, err := ParseDifficultyPreset("nightmare")
	assert.Error(t, err)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
