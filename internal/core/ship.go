package core

// PlayerID identifies the side that owns a ship.
type PlayerID int

const (
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// String returns the short side label used in logs ("p1", "p2").
func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "p1"
	case Player2:
		return "p2"
	default:
		return "none"
	}
}

// Opponent returns the other side.
func (p PlayerID) Opponent() PlayerID {
	if p == Player1 {
		return Player2
	}
	return Player1
}

// Index returns 0 for Player1 and 1 for Player2.
func (p PlayerID) Index() int {
	if p == Player2 {
		return 1
	}
	return 0
}

// Rotation is the current turning direction of a ship.
type Rotation int

const (
	RotateLeft  Rotation = -1
	RotateNone  Rotation = 0
	RotateRight Rotation = 1
)

// ShipState is a snapshot of one ship as supplied by the game loop each tick.
// Consumers treat it as read-only and work on copies.
type ShipState struct {
	Pos          Vec2
	Heading      float64 // radians
	Vel          Vec2
	Thrust       float64 // 0..1
	Rotation     Rotation
	Alive        bool
	FireCooldown float64 // seconds remaining
	Owner        PlayerID
}

// Speed returns the magnitude of the ship's velocity.
func (s ShipState) Speed() float64 {
	return s.Vel.Len()
}

// HazardState is a drifting asteroid.
type HazardState struct {
	Pos    Vec2
	Vel    Vec2
	Radius float64
}

// At returns the hazard position extrapolated t seconds ahead at constant velocity.
func (h HazardState) At(t float64) Vec2 {
	return h.Pos.Add(h.Vel.Scale(t))
}
