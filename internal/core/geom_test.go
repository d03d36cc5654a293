package core

import (
	"math"
	"testing"
)

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected float64
	}{
		{"zero", 0, 0},
		{"quarter turn", math.Pi / 2, math.Pi / 2},
		{"just past pi wraps negative", math.Pi + 0.1, -math.Pi + 0.1},
		{"just past -pi wraps positive", -math.Pi - 0.1, math.Pi - 0.1},
		{"full turn", 2 * math.Pi, 0},
		{"many turns", 10*math.Pi + 0.25, 0.25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := WrapAngle(tc.in)
			if math.Abs(result-tc.expected) > 1e-9 {
				t.Errorf("WrapAngle(%f) = %f, expected %f", tc.in, result, tc.expected)
			}
		})
	}
}

func TestNormAngleOpposite(t *testing.T) {
	if got := math.Abs(NormAngle(math.Pi)); math.Abs(got-1) > 1e-9 {
		t.Errorf("|NormAngle(pi)| = %f, expected 1", got)
	}
	if got := NormAngle(0); got != 0 {
		t.Errorf("NormAngle(0) = %f, expected 0", got)
	}
}

func TestBearing(t *testing.T) {
	tests := []struct {
		name     string
		from, to Vec2
		heading  float64
		expected float64
	}{
		{"dead ahead", V(0, 0), V(100, 0), 0, 0},
		{"left of heading", V(0, 0), V(0, 100), 0, math.Pi / 2},
		{"behind", V(0, 0), V(-100, 0), 0, math.Pi},
		{"heading already rotated", V(0, 0), V(0, 100), math.Pi / 2, 0},
		{"coincident", V(5, 5), V(5, 5), 1.3, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Bearing(tc.from, tc.heading, tc.to)
			if math.Abs(math.Abs(result)-math.Abs(tc.expected)) > 1e-9 {
				t.Errorf("Bearing() = %f, expected %f", result, tc.expected)
			}
		})
	}
}

func TestUnitDegenerate(t *testing.T) {
	if u := (Vec2{}).Unit(); u != (Vec2{}) {
		t.Errorf("Unit() of zero vector = %v, expected zero", u)
	}
	u := V(3, 4).Unit()
	if math.Abs(u.X-0.6) > 1e-12 || math.Abs(u.Y-0.8) > 1e-12 {
		t.Errorf("Unit() = %v, expected (0.6, 0.8)", u)
	}
	if u := V(math.MaxFloat64, math.MaxFloat64).Unit(); !Finite(u.X) || !Finite(u.Y) {
		t.Errorf("Unit() of huge vector = %v, expected finite", u)
	}
}

func TestBoundsWallClearance(t *testing.T) {
	b := NewBounds(100, 50)

	tests := []struct {
		name     string
		p        Vec2
		expected float64
	}{
		{"center", V(50, 25), 25},
		{"near left", V(3, 25), 3},
		{"near bottom", V(50, 48), 2},
		{"outside", V(-4, 25), -4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := b.WallClearance(tc.p)
			if result != tc.expected {
				t.Errorf("WallClearance(%v) = %f, expected %f", tc.p, result, tc.expected)
			}
		})
	}

	if !math.IsInf((Bounds{}).WallClearance(V(1e9, 1e9)), 1) {
		t.Error("disabled bounds should report infinite clearance")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
		{math.Inf(1), -1, 1, 1},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestActionsPriorityOrder(t *testing.T) {
	actions := Actions()
	if len(actions) != NumActions {
		t.Fatalf("Actions() returned %d actions, expected %d", len(actions), NumActions)
	}
	for i, a := range actions {
		if int(a) != i {
			t.Errorf("Actions()[%d] = %v, expected priority index %d", i, a, i)
		}
		if !a.Valid() {
			t.Errorf("action %v should be valid", a)
		}
	}
	if ActionNone.Valid() {
		t.Error("ActionNone should not be a member of the action set")
	}

	// Mutating the returned slice must not affect later calls
	actions[0] = ActionReverse
	if Actions()[0] != ActionCoast {
		t.Error("Actions() leaked its backing array")
	}
}
