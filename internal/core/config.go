package core

// RuntimeConfig contains configuration passed to an arena at initialization.
type RuntimeConfig struct {
	TickRate int    // Simulation ticks per second (default 60)
	Seed     int64  // RNG seed for deterministic games
	Bounds   Bounds // Arena walls
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TickRate: 60,
		Seed:     0, // 0 means use current time in the CLI layer
		Bounds:   NewBounds(1600, 1000),
	}
}

// Dt returns the duration of one tick in seconds.
func (c RuntimeConfig) Dt() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(c.TickRate)
}

// Layout is the initial placement of ships and hazards for one game.
type Layout struct {
	Ships   [2]ShipState
	Hazards []HazardState
	Bounds  Bounds
}
