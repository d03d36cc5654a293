// Package arena implements the headless two-ship dogfight used to evaluate
// pilots. It owns the authoritative world: ships, drifting hazards and
// bullets. The game contains pure logic; the harness drives it tick by tick.
package arena

import (
	"math/rand"

	"github.com/vovakirdan/dogfight/internal/config"
	"github.com/vovakirdan/dogfight/internal/core"
	"github.com/vovakirdan/dogfight/internal/physics"
	"github.com/vovakirdan/dogfight/internal/pilot"
	"github.com/vovakirdan/dogfight/internal/registry"
)

// Cause is the reason a ship died.
type Cause string

const (
	CauseBullet   Cause = "bullet"
	CauseAsteroid Cause = "asteroid"
	CauseWall     Cause = "wall"
	CauseRam      Cause = "ram"
)

// ByOpponent reports whether the opponent is responsible for the death.
func (c Cause) ByOpponent() bool {
	return c == CauseBullet || c == CauseRam
}

// Outcome is the result of a finished game from one side's point of view.
type Outcome string

const (
	OutcomeNone       Outcome = ""
	OutcomeWin        Outcome = "win"
	OutcomeLoss       Outcome = "loss"
	OutcomeDrawMutual Outcome = "draw_mutual"
	OutcomeTimeout    Outcome = "timeout"
)

// Kill records one ship death.
type Kill struct {
	Tick   int
	Victim core.PlayerID
	Cause  Cause
}

// Bullet is a projectile in flight.
type Bullet struct {
	Pos   core.Vec2
	Vel   core.Vec2
	Age   float64
	Owner core.PlayerID
}

// StepResult is what one tick produced.
type StepResult struct {
	Tick  int
	Fired [2]bool
	Kills []Kill
	Done  bool
}

// Game is one headless dogfight.
type Game struct {
	cfg      config.Arena
	scenario registry.Scenario
	kin      physics.Kinematics
	dt       float64

	bounds  core.Bounds
	ships   [2]core.ShipState
	hazards []core.HazardState
	bullets []Bullet

	tick    int
	done    bool
	winner  core.PlayerID
	outcome Outcome
	kills   []Kill
}

// New creates a game for the given arena config and scenario.
// Call Reset before stepping.
func New(cfg config.Arena, scenario registry.Scenario) *Game {
	return &Game{
		cfg:      cfg,
		scenario: scenario,
		kin:      physics.New(cfg.Physics),
	}
}

// Kinematics returns the physics law the game applies, for use by planners.
func (g *Game) Kinematics() physics.Kinematics {
	return g.kin
}

// Reset initializes the game from the scenario layout. level is the
// difficulty level in [0, 1] that scales the hazard field.
func (g *Game) Reset(rt core.RuntimeConfig, level float64) {
	dm := config.NewDifficultyManager(g.cfg.Difficulty)
	scaled := g.cfg
	scaled.Hazards.Count = dm.HazardCount(g.cfg.Hazards.Count, level)
	scaled.Hazards.MaxSpeed = dm.HazardSpeed(g.cfg.Hazards.MaxSpeed, level)

	rng := rand.New(rand.NewSource(rt.Seed))
	layout := g.scenario.Layout(scaled, rng)

	g.dt = rt.Dt()
	g.bounds = layout.Bounds
	g.ships = layout.Ships
	g.ships[0].Owner = core.Player1
	g.ships[1].Owner = core.Player2
	g.hazards = append([]core.HazardState(nil), layout.Hazards...)
	g.bullets = g.bullets[:0]
	g.tick = 0
	g.done = false
	g.winner = 0
	g.outcome = OutcomeNone
	g.kills = nil
}

// Step advances the game by one tick. cmds is indexed by PlayerID.Index().
func (g *Game) Step(cmds [2]core.Command) StepResult {
	if g.done {
		return StepResult{Tick: g.tick, Done: true}
	}

	var res StepResult

	for i := range g.ships {
		s := &g.ships[i]
		if !s.Alive {
			continue
		}
		*s = g.kin.Advance(*s, cmds[i].Move, g.dt)
		if cmds[i].Fire && s.FireCooldown <= 0 {
			g.fire(s)
			res.Fired[i] = true
		}
	}

	g.moveHazards()
	g.moveBullets()

	res.Kills = g.resolveCollisions()
	g.kills = append(g.kills, res.Kills...)
	g.tick++
	res.Tick = g.tick

	g.settle()
	res.Done = g.done
	return res
}

func (g *Game) fire(s *core.ShipState) {
	dir := core.FromAngle(s.Heading)
	muzzle := g.cfg.ShipRadius + g.cfg.Weapons.BulletRadius + 1
	g.bullets = append(g.bullets, Bullet{
		Pos:   s.Pos.Add(dir.Scale(muzzle)),
		Vel:   s.Vel.Add(dir.Scale(g.cfg.Weapons.BulletSpeed)),
		Owner: s.Owner,
	})
	s.FireCooldown = g.cfg.Weapons.FireCooldown
}

// moveHazards drifts hazards and bounces them off the walls.
func (g *Game) moveHazards() {
	for i := range g.hazards {
		h := &g.hazards[i]
		h.Pos = h.Pos.Add(h.Vel.Scale(g.dt))
		if !g.bounds.Enabled() {
			continue
		}
		if h.Pos.X-h.Radius < g.bounds.MinX && h.Vel.X < 0 || h.Pos.X+h.Radius > g.bounds.MaxX && h.Vel.X > 0 {
			h.Vel.X = -h.Vel.X
		}
		if h.Pos.Y-h.Radius < g.bounds.MinY && h.Vel.Y < 0 || h.Pos.Y+h.Radius > g.bounds.MaxY && h.Vel.Y > 0 {
			h.Vel.Y = -h.Vel.Y
		}
	}
}

// moveBullets advances bullets and drops expired or escaped ones.
func (g *Game) moveBullets() {
	kept := g.bullets[:0]
	for _, b := range g.bullets {
		b.Pos = b.Pos.Add(b.Vel.Scale(g.dt))
		b.Age += g.dt
		if b.Age >= g.cfg.Weapons.BulletLifetime {
			continue
		}
		if g.bounds.Enabled() && !g.bounds.Contains(b.Pos) {
			continue
		}
		if g.hitsHazard(b.Pos, g.cfg.Weapons.BulletRadius) {
			continue
		}
		kept = append(kept, b)
	}
	g.bullets = kept
}

func (g *Game) hitsHazard(pos core.Vec2, radius float64) bool {
	for _, h := range g.hazards {
		if core.Dist(pos, h.Pos) <= h.Radius+radius {
			return true
		}
	}
	return false
}

// resolveCollisions finds every death of this tick before applying any,
// so simultaneous deaths are symmetric.
func (g *Game) resolveCollisions() []Kill {
	r := g.cfg.ShipRadius
	var causes [2]Cause

	a, b := &g.ships[0], &g.ships[1]
	if a.Alive && b.Alive && core.Dist(a.Pos, b.Pos) <= 2*r {
		causes[0], causes[1] = CauseRam, CauseRam
	}

	for i := range g.ships {
		s := &g.ships[i]
		if !s.Alive || causes[i] != "" {
			continue
		}
		switch {
		case g.bounds.Enabled() && g.bounds.WallClearance(s.Pos) <= r:
			causes[i] = CauseWall
		case g.hitsHazard(s.Pos, r):
			causes[i] = CauseAsteroid
		}
	}

	kept := g.bullets[:0]
	for _, bl := range g.bullets {
		victim := bl.Owner.Opponent().Index()
		s := &g.ships[victim]
		if s.Alive && core.Dist(bl.Pos, s.Pos) <= r+g.cfg.Weapons.BulletRadius {
			if causes[victim] == "" {
				causes[victim] = CauseBullet
			}
			continue
		}
		kept = append(kept, bl)
	}
	g.bullets = kept

	var kills []Kill
	for i, c := range causes {
		if c == "" {
			continue
		}
		g.ships[i].Alive = false
		g.ships[i].Vel = core.Vec2{}
		g.ships[i].Thrust = 0
		kills = append(kills, Kill{Tick: g.tick + 1, Victim: g.ships[i].Owner, Cause: c})
	}
	return kills
}

// settle decides whether the game is over.
func (g *Game) settle() {
	alive1, alive2 := g.ships[0].Alive, g.ships[1].Alive
	switch {
	case !alive1 && !alive2:
		g.done, g.outcome = true, OutcomeDrawMutual
	case !alive1:
		g.done, g.outcome, g.winner = true, OutcomeWin, core.Player2
	case !alive2:
		g.done, g.outcome, g.winner = true, OutcomeWin, core.Player1
	case g.cfg.MaxTicks > 0 && g.tick >= g.cfg.MaxTicks:
		g.done, g.outcome = true, OutcomeTimeout
	}
}

// Snapshot returns the ship of the given side and a frozen copy of the
// world as that side sees it. The returned values share nothing with the game.
func (g *Game) Snapshot(side core.PlayerID) (core.ShipState, pilot.Snapshot) {
	target := g.ships[side.Opponent().Index()]
	return g.ships[side.Index()], pilot.Snapshot{
		Target:  &target,
		Hazards: append([]core.HazardState(nil), g.hazards...),
		Bounds:  g.bounds,
	}
}

// Ship returns the current state of one side's ship.
func (g *Game) Ship(side core.PlayerID) core.ShipState {
	return g.ships[side.Index()]
}

// Bounds returns the arena walls of the current layout.
func (g *Game) Bounds() core.Bounds {
	return g.bounds
}

// Hazards returns a copy of the hazard field.
func (g *Game) Hazards() []core.HazardState {
	return append([]core.HazardState(nil), g.hazards...)
}

// Bullets returns a copy of the bullets in flight.
func (g *Game) Bullets() []Bullet {
	return append([]Bullet(nil), g.bullets...)
}

// Tick returns the number of ticks simulated since Reset.
func (g *Game) Tick() int {
	return g.tick
}

// Done reports whether the game has ended.
func (g *Game) Done() bool {
	return g.done
}

// Kills returns every death so far, in order.
func (g *Game) Kills() []Kill {
	return append([]Kill(nil), g.kills...)
}

// Outcome returns the result from the given side's point of view.
// It is OutcomeNone while the game is running.
func (g *Game) Outcome(side core.PlayerID) Outcome {
	if g.outcome == OutcomeWin && g.winner != side {
		return OutcomeLoss
	}
	return g.outcome
}

// Winner returns the winning side, or 0 when there is none.
func (g *Game) Winner() core.PlayerID {
	return g.winner
}
