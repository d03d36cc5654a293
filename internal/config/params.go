package config

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrUnknownParam is returned by WithParam for names not in ParamNames.
var ErrUnknownParam = errors.New("config: unknown tuning parameter")

type paramSetter func(t *Tuning, v float64)

// integralParams hold a count and reject fractional values.
var integralParams = map[string]bool{
	"search.horizon": true,
}

// params maps the YAML-style dotted names of sweepable constants to setters.
var params = map[string]paramSetter{
	"search.horizon":                func(t *Tuning, v float64) { t.Search.Horizon = int(v) },
	"search.step_size":              func(t *Tuning, v float64) { t.Search.StepSize = v },
	"scoring.hysteresis_bonus":      func(t *Tuning, v float64) { t.Scoring.HysteresisBonus = v },
	"scoring.collision_penalty":     func(t *Tuning, v float64) { t.Scoring.CollisionPenalty = v },
	"scoring.collision_early_bonus": func(t *Tuning, v float64) { t.Scoring.CollisionEarlyBonus = v },
	"scoring.danger_penalty":        func(t *Tuning, v float64) { t.Scoring.DangerPenalty = v },
	"scoring.distance_weight":       func(t *Tuning, v float64) { t.Scoring.DistanceWeight = v },
	"scoring.aim_weight":            func(t *Tuning, v float64) { t.Scoring.AimWeight = v },
	"scoring.distance_scale":        func(t *Tuning, v float64) { t.Scoring.DistanceScale = v },
	"geometry.ship_radius":          func(t *Tuning, v float64) { t.Geometry.ShipRadius = v },
	"geometry.danger_margin":        func(t *Tuning, v float64) { t.Geometry.DangerMargin = v },
	"fire.cone":                     func(t *Tuning, v float64) { t.Fire.Cone = v },
	"fire.range":                    func(t *Tuning, v float64) { t.Fire.Range = v },
}

// ParamNames returns the sweepable parameter names, sorted.
func ParamNames() []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithParam returns a copy of t with the named parameter set to v.
// The receiver is left untouched. The copy is validated.
func (t Tuning) WithParam(name string, v float64) (Tuning, error) {
	set, ok := params[name]
	if !ok {
		return t, fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	if integralParams[name] && (v != math.Trunc(v) || math.IsInf(v, 0)) {
		return t, fmt.Errorf("%w: %s must be a whole number, got %v", ErrInvalidTuning, name, v)
	}
	out := t
	set(&out, v)
	if err := out.Validate(); err != nil {
		return t, err
	}
	return out, nil
}
