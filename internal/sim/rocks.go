package sim

import (
	"math"

	"github.com/talgya/terrarium/internal/automata"
)

// updateRocks integrates every active rock and resolves impacts along its
// swept path. A rock that hits an automaton spends itself on the hit; one
// that reaches the surface parks there as a static obstacle.
func (s *Simulation) updateRocks(dt float64) {
	p := s.params
	for _, r := range s.Rocks {
		if !r.Active {
			continue
		}
		groundY := s.GroundYAt(r.X)
		prevY := r.Y
		r.Step(dt, p.Physics.Gravity)

		rx := round(r.X)
		lo := math.Min(prevY, r.Y)
		hi := math.Max(prevY, r.Y)
		for _, a := range s.Automata {
			if !a.Alive || round(a.X) != rx {
				continue
			}
			ay := float64(round(a.Y))
			if ay < lo || ay > hi {
				continue
			}
			damage := r.ImpactEnergy() * p.Rocks.Mass
			a.Energy = automata.Clamp(a.Energy-damage, 0, p.Energy.Max)
			if a.Energy <= 0 {
				s.bury(a, causeRock)
			}
			r.Active = false
			break
		}

		if r.Active && r.Y >= groundY {
			r.Y = groundY
			r.Active = false
			if s.Width > 0 {
				cell := Cell{s.wrapX(rx), clampInt(round(groundY)-1, 0, s.Height-1)}
				s.staticRocks[cell] = 0
			}
		}
	}
}

// decayCorpses ages corpse markers and, once expired, absorbs each into the
// terrain by raising its column one row.
func (s *Simulation) decayCorpses(dt float64) {
	for _, c := range s.expire(s.corpses, dt, s.params.CorpseDecayS()) {
		s.Terrain.BuryAt(c.X)
		delete(s.corpses, c)
	}
}

// decayRocks ages landed rocks the same way; an expired rock becomes part of
// the ground beneath it.
func (s *Simulation) decayRocks(dt float64) {
	for _, c := range s.expire(s.staticRocks, dt, s.params.RockDecayS()) {
		s.Terrain.BuryAt(c.X)
		delete(s.staticRocks, c)
	}
}

// expire advances every marker's age by dt and returns the cells whose age
// reached the threshold. A non-positive threshold disables expiry.
func (s *Simulation) expire(ages map[Cell]float64, dt, threshold float64) []Cell {
	add := math.Max(0, dt)
	var done []Cell
	for c := range ages {
		ages[c] += add
		if threshold > 0 && ages[c] >= threshold {
			done = append(done, c)
		}
	}
	return done
}
