package arena

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/dogfight/internal/config"
	"github.com/vovakirdan/dogfight/internal/core"
	"github.com/vovakirdan/dogfight/internal/registry"
)

func init() {
	registry.Register("duel", func() registry.Scenario { return Duel{} })
	registry.Register("field", func() registry.Scenario { return Field{} })
	registry.Register("gauntlet", func() registry.Scenario { return Gauntlet{} })
}

// placementAttempts bounds the rejection sampling per hazard.
const placementAttempts = 50

// Duel puts the ships nose to nose with a light hazard field.
type Duel struct{}

func (Duel) ID() string    { return "duel" }
func (Duel) Title() string { return "Duel" }

func (Duel) Layout(arena config.Arena, rng *rand.Rand) core.Layout {
	b := core.NewBounds(arena.Width, arena.Height)
	c := b.Center()

	l := core.Layout{Bounds: b}
	l.Ships[0] = spawn(core.V(b.Width()*0.25, c.Y), 0)
	l.Ships[1] = spawn(core.V(b.Width()*0.75, c.Y), math.Pi)

	hz := arena.Hazards
	hz.Count /= 2
	l.Hazards = scatter(rng, b, hz, arena.SpawnClearance, l.Ships[0].Pos, l.Ships[1].Pos)
	return l
}

// Field spawns both ships at random spots and headings in a full asteroid field.
type Field struct{}

func (Field) ID() string    { return "field" }
func (Field) Title() string { return "Asteroid Field" }

func (Field) Layout(arena config.Arena, rng *rand.Rand) core.Layout {
	b := core.NewBounds(arena.Width, arena.Height)
	margin := arena.SpawnClearance

	l := core.Layout{Bounds: b}
	l.Ships[0] = spawn(core.V(
		uniform(rng, margin, b.Width()*0.4),
		uniform(rng, margin, b.Height()-margin),
	), uniform(rng, -math.Pi, math.Pi))
	l.Ships[1] = spawn(core.V(
		uniform(rng, b.Width()*0.6, b.Width()-margin),
		uniform(rng, margin, b.Height()-margin),
	), uniform(rng, -math.Pi, math.Pi))

	l.Hazards = scatter(rng, b, arena.Hazards, arena.SpawnClearance, l.Ships[0].Pos, l.Ships[1].Pos)
	return l
}

// Gauntlet packs the hazards into a vertical band between the ships, drifting
// up and down, so every engagement has to cross it.
type Gauntlet struct{}

func (Gauntlet) ID() string    { return "gauntlet" }
func (Gauntlet) Title() string { return "Gauntlet" }

func (Gauntlet) Layout(arena config.Arena, rng *rand.Rand) core.Layout {
	b := core.NewBounds(arena.Width, arena.Height)
	c := b.Center()

	l := core.Layout{Bounds: b}
	l.Ships[0] = spawn(core.V(b.Width()*0.15, c.Y), 0)
	l.Ships[1] = spawn(core.V(b.Width()*0.85, c.Y), math.Pi)

	band := core.Bounds{
		MinX: b.Width() * 0.35, MaxX: b.Width() * 0.65,
		MinY: b.MinY, MaxY: b.MaxY,
	}
	hz := arena.Hazards
	hz.Count = int(math.Round(float64(hz.Count) * 1.5))
	l.Hazards = scatter(rng, band, hz, arena.SpawnClearance, l.Ships[0].Pos, l.Ships[1].Pos)
	for i := range l.Hazards {
		l.Hazards[i].Vel.X = 0
		if l.Hazards[i].Vel.Y == 0 {
			l.Hazards[i].Vel.Y = hz.MaxSpeed / 2
		}
	}
	return l
}

func spawn(pos core.Vec2, heading float64) core.ShipState {
	return core.ShipState{Pos: pos, Heading: heading, Alive: true}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// scatter places up to cfg.Count hazards inside area, keeping clearance from
// every point in avoid and from each other. Hazards that cannot be placed
// after a bounded number of attempts are skipped.
func scatter(rng *rand.Rand, area core.Bounds, cfg config.HazardConfig, clearance float64, avoid ...core.Vec2) []core.HazardState {
	hazards := make([]core.HazardState, 0, max(cfg.Count, 0))
	for n := 0; n < cfg.Count; n++ {
		for attempt := 0; attempt < placementAttempts; attempt++ {
			r := uniform(rng, cfg.MinRadius, cfg.MaxRadius)
			pos := core.V(
				uniform(rng, area.MinX+r, area.MaxX-r),
				uniform(rng, area.MinY+r, area.MaxY-r),
			)
			if !isClear(pos, r, clearance, avoid, hazards) {
				continue
			}
			speed := uniform(rng, 0, cfg.MaxSpeed)
			hazards = append(hazards, core.HazardState{
				Pos:    pos,
				Vel:    core.FromAngle(uniform(rng, -math.Pi, math.Pi)).Scale(speed),
				Radius: r,
			})
			break
		}
	}
	return hazards
}

func isClear(pos core.Vec2, r, clearance float64, avoid []core.Vec2, placed []core.HazardState) bool {
	for _, p := range avoid {
		if core.Dist(pos, p) < r+clearance {
			return false
		}
	}
	for _, h := range placed {
		if core.Dist(pos, h.Pos) < r+h.Radius {
			return false
		}
	}
	return true
}
