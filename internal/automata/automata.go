// Package automata provides the core entity types: the Automaton with its
// lander/flyer motion integrator, and the Rock projectile.
package automata

import (
	"math"

	"github.com/google/uuid"

	"github.com/talgya/terrarium/internal/config"
	"github.com/talgya/terrarium/internal/entropy"
	"github.com/talgya/terrarium/internal/species"
)

const (
	weightMin = 20.0
	weightMax = 100.0
)

// Automaton is a single creature. Species behavior derives entirely from the
// letter code; there is no subtype dispatch. Dead automata keep their entry
// in the world's collection (Alive false) so identity-based bookkeeping stays
// stable.
type Automaton struct {
	ID      uuid.UUID
	Species byte // 'A'..'Z'

	X, Y   float64
	VX, VY float64

	Energy float64 // Clamped to [0, max]
	Weight float64 // Fixed at creation, in [20, 100]

	Alive bool

	AgeS           float64 // Lifetime in seconds
	TransformsDone int     // Lander evolution steps applied
	LastJumpTimeS  float64 // Absolute time of the last jump
	SinceReproS    float64 // Barren time, drives the A/B auto-spawn rule
	StagnantS      float64 // Time spent in the same integer cell

	// Per-tick transient flags, reset at the start of every step.
	AteTick   bool
	ReproTick bool
}

// New creates a living automaton. The body weight is drawn once from src and
// never changes.
func New(letter byte, x, y, energy float64, src entropy.Stream) *Automaton {
	return &Automaton{
		ID:            uuid.New(),
		Species:       letter,
		X:             x,
		Y:             y,
		Energy:        energy,
		Weight:        weightMin + float64(src.IntN(int(weightMax-weightMin)+1)),
		Alive:         true,
		LastJumpTimeS: math.Inf(-1),
	}
}

// CanMove reports whether the automaton has enough energy to move at all.
func (a *Automaton) CanMove(p *config.Params) bool {
	return a.Alive && a.Energy > p.Energy.MinMove
}

// CanFly reports whether this is a flyer with enough energy to fly.
func (a *Automaton) CanFly(p *config.Params) bool {
	return a.Alive && species.IsFlyer(a.Species) && a.Energy > p.Energy.MinFly
}

// Starving reports whether energy has dropped below the move threshold.
func (a *Automaton) Starving(p *config.Params) bool {
	return a.Energy < p.Energy.MinMove
}

// ApplySunlight adds basking energy at the given per-second rate.
func (a *Automaton) ApplySunlight(perSecond, dt float64, p *config.Params) {
	if !a.Alive {
		return
	}
	a.Energy = Clamp(a.Energy+perSecond*dt, 0, p.Energy.Max)
}

// EatGain adds the energy of the given number of meals and marks the
// automaton as fed this tick.
func (a *Automaton) EatGain(meals float64, p *config.Params) {
	if !a.Alive {
		return
	}
	a.Energy = Clamp(a.Energy+meals*p.Energy.Meal, 0, p.Energy.Max)
	a.AteTick = true
}

// Kill tombstones the automaton. It stays in whatever collection holds it.
func (a *Automaton) Kill() { a.Alive = false }

// weightNorm maps the body weight onto [0, 1].
func (a *Automaton) weightNorm() float64 {
	n := (a.Weight - weightMin) / (weightMax - weightMin)
	return Clamp(n, 0, 1)
}

// TickMotion integrates position and velocity over dt seconds. groundY is
// the terrain surface row at the current column; width is the world width
// for horizontal wrapping. dt <= 0 is a strict no-op so tests can place
// automata exactly and step with dt=0.
func (a *Automaton) TickMotion(dt, groundY float64, width int, p *config.Params) {
	if !a.Alive || dt <= 0 {
		return
	}

	if !a.CanMove(p) {
		a.Energy = Clamp(a.Energy-p.Energy.PassiveDrainPerS*dt, 0, p.Energy.Max)
		return
	}

	groundAir := math.Max(0, groundY-1)
	switch {
	case a.CanFly(p):
		// Take off: an upward kick when resting on the ground and not
		// already ascending.
		if a.Y >= groundAir-1e-6 && a.VY >= 0 {
			a.VY = -p.Physics.FlyerKick
		}
		// Heavier and more energetic bodies feel more effective gravity; a
		// climb bias pushes up while below the preferred altitude.
		weightFactor := 1 + 0.5*(a.Energy/p.Energy.Max) + 0.2*a.weightNorm()
		altitude := math.Max(0, groundY-a.Y)
		climb := 0.0
		if altitude < p.Reproduction.FlyerMinAltitude {
			climb = p.Physics.FlyerClimbAccel * (1 - altitude/math.Max(1e-6, p.Reproduction.FlyerMinAltitude))
		}
		a.VY += (p.Physics.Gravity*weightFactor - climb) * dt
		a.VY *= math.Max(0, 1-p.Physics.AirDrag)
		a.Y += a.VY * dt
		a.X += a.VX * dt
		if a.Y >= groundAir {
			a.Y = groundAir
			a.VY = -a.VY * p.Physics.Restitution
		}
		if math.Abs(a.VX) > 1e-9 || math.Abs(a.VY) > 1e-9 {
			a.Energy = Clamp(a.Energy-p.Energy.FlightCostPerS*dt, 0, p.Energy.Max)
		}

	case species.IsFlyer(a.Species):
		// A grounded flyer without flight energy rests where it is.
		a.Y = groundAir
		a.VX = 0
		a.Energy = Clamp(a.Energy-p.Energy.PassiveDrainPerS*dt, 0, p.Energy.Max)

	default:
		// Landers walk one row above the surface, slowed by friction that
		// grows with energy and body weight.
		a.Y = groundAir
		a.X += a.VX * dt
		friction := p.Physics.GroundFriction + 0.1*(a.Energy/p.Energy.Max) + 0.03*a.weightNorm()
		a.VX *= math.Max(0, 1-friction)
		if math.Abs(a.VX) > 1e-9 {
			a.Energy = Clamp(a.Energy-p.Energy.WalkCostPerS*dt, 0, p.Energy.Max)
		}
	}

	if width > 0 {
		a.X = math.Mod(a.X, float64(width))
		if a.X < 0 {
			a.X += float64(width)
		}
	}
}

// Clamp restricts v to [lo, hi]. Inverted bounds are reordered rather than
// rejected.
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
