package core

// Action is one discrete movement choice for a ship during a decision tick.
// The declaration order is also the fixed tie-break priority.
type Action int

const (
	ActionNone Action = iota - 1 // sentinel: nothing committed yet
	ActionCoast
	ActionThrust
	ActionRotateLeft
	ActionRotateRight
	ActionThrustLeft
	ActionThrustRight
	ActionBrake
	ActionBrakeLeft
	ActionBrakeRight
	ActionReverse
)

// NumActions is the size of the movement action set.
const NumActions = 10

var allActions = [NumActions]Action{
	ActionCoast,
	ActionThrust,
	ActionRotateLeft,
	ActionRotateRight,
	ActionThrustLeft,
	ActionThrustRight,
	ActionBrake,
	ActionBrakeLeft,
	ActionBrakeRight,
	ActionReverse,
}

// Actions returns the full movement set in priority order.
// A fresh slice is returned on every call.
func Actions() []Action {
	out := make([]Action, NumActions)
	copy(out, allActions[:])
	return out
}

// Valid reports whether a is a member of the movement set.
func (a Action) Valid() bool {
	return a >= ActionCoast && a <= ActionReverse
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionCoast:
		return "coast"
	case ActionThrust:
		return "thrust"
	case ActionRotateLeft:
		return "left"
	case ActionRotateRight:
		return "right"
	case ActionThrustLeft:
		return "thrust_left"
	case ActionThrustRight:
		return "thrust_right"
	case ActionBrake:
		return "brake"
	case ActionBrakeLeft:
		return "brake_left"
	case ActionBrakeRight:
		return "brake_right"
	case ActionReverse:
		return "reverse"
	default:
		return "unknown"
	}
}

// Controls describes how an action drives the ship for one step.
type Controls struct {
	Thrust   float64 // forward thrust level, negative for reverse
	Rotation Rotation
	Brake    bool
}

// Controls maps the action to thrust, rotation and brake inputs.
func (a Action) Controls() Controls {
	switch a {
	case ActionThrust:
		return Controls{Thrust: 1}
	case ActionRotateLeft:
		return Controls{Rotation: RotateLeft}
	case ActionRotateRight:
		return Controls{Rotation: RotateRight}
	case ActionThrustLeft:
		return Controls{Thrust: 1, Rotation: RotateLeft}
	case ActionThrustRight:
		return Controls{Thrust: 1, Rotation: RotateRight}
	case ActionBrake:
		return Controls{Brake: true}
	case ActionBrakeLeft:
		return Controls{Brake: true, Rotation: RotateLeft}
	case ActionBrakeRight:
		return Controls{Brake: true, Rotation: RotateRight}
	case ActionReverse:
		return Controls{Thrust: -1}
	default:
		return Controls{}
	}
}

// Command is the full per-tick decision handed to the game loop.
type Command struct {
	Move Action
	Fire bool
}
