package sim

import (
	"math"

	"github.com/talgya/terrarium/internal/entropy"
	"github.com/talgya/terrarium/internal/species"
)

// Step advances the world by dt seconds. Phases run in a fixed order so a
// seeded run is reproducible: clock, aging, sunlight, motion, scavenging,
// reproduction, fallback spawning, predation, rocks, decay, transformation,
// the life field, energy drains and the accounting sweeps.
func (s *Simulation) Step(dt float64) {
	p := s.params

	s.Clock.Tick(dt)
	for _, a := range s.Automata {
		a.AteTick = false
		a.ReproTick = false
	}

	// Aging only runs with a meaningful day cadence; day-derived rules
	// (jumps, transformations, auto-spawn) are all disabled without one.
	if p.Time.DayLengthS > 0 {
		for _, a := range s.Automata {
			if !a.Alive {
				continue
			}
			a.AgeS += math.Max(0, dt)
			if species.IsBase(a.Species) {
				a.SinceReproS += math.Max(0, dt)
			}
		}
	}

	if s.Clock.IsDay() {
		perSecond := s.Clock.SunlightRate(p.Energy.Meal, p.Energy.Max)
		for _, a := range s.Automata {
			if species.IsBase(a.Species) {
				a.ApplySunlight(perSecond, dt, p)
			}
		}
	}

	s.stepMotion(dt)
	s.consumeCorpses()
	s.resolveReproduction()
	s.autoSpawnFallback()
	s.resolvePredation()
	s.autoDropRocks()
	s.updateRocks(dt)
	s.decayCorpses(dt)
	s.decayRocks(dt)
	s.applyTransformations()

	if s.Width > 0 && s.Height > 0 {
		s.Life = s.Life.Step()
	}

	s.applyIdleDrain(dt)
	s.accountMovement()
	s.rollDayBucket()
	s.sweepStarved()
}

// autoDropRocks lets energetic dropper species occasionally release a rock
// without an explicit target.
func (s *Simulation) autoDropRocks() {
	if !s.AutoRocks {
		return
	}
	p := s.params
	for _, a := range s.Automata {
		if !a.Alive || !species.IsRockDropper(a.Species) {
			continue
		}
		if a.Energy <= p.Rocks.DropThreshold {
			continue
		}
		if entropy.Chance(s.rng, p.Rocks.AutoDropChance) {
			s.DropRockFrom(a)
		}
	}
}

// consumeCorpses lets base species standing on a corpse marker scavenge it
// for one meal.
func (s *Simulation) consumeCorpses() {
	for _, a := range s.Automata {
		if !a.Alive || !species.IsBase(a.Species) {
			continue
		}
		c := Cell{s.wrapX(round(a.X)), round(a.Y)}
		if _, ok := s.corpses[c]; ok {
			delete(s.corpses, c)
			a.EatGain(1, s.params)
		}
	}
}

// applyTransformations promotes landers two letters per elapsed evolution
// interval, catching up on any intervals missed during long ticks. A lander
// that crosses the range boundary becomes a flyer and stops evolving.
func (s *Simulation) applyTransformations() {
	p := s.params
	period := p.Reproduction.TransformDays * p.Time.DayLengthS
	if period <= 0 {
		return
	}
	for _, a := range s.Automata {
		if !a.Alive {
			continue
		}
		pending := int(a.AgeS/period) - a.TransformsDone
		for pending > 0 && species.IsLander(a.Species) {
			a.Species += 2
			a.TransformsDone++
			pending--
		}
	}
}

// applyIdleDrain charges automata that neither moved, ate, nor reproduced
// this tick.
func (s *Simulation) applyIdleDrain(dt float64) {
	p := s.params
	drain := p.Energy.IdleDrainPerS * math.Max(0, dt)
	if drain <= 0 {
		return
	}
	for _, a := range s.Automata {
		if !a.Alive {
			continue
		}
		if s.moved[a] || a.AteTick || a.ReproTick {
			continue
		}
		a.Energy = math.Max(0, a.Energy-drain)
	}
}

func (s *Simulation) accountMovement() {
	n := len(s.moved)
	if n > 0 {
		s.MovesTotal += n
		s.MovesToday += n
	}
}

// rollDayBucket closes the daily movement bucket when a day boundary passed,
// trimming history to the configured trailing window.
func (s *Simulation) rollDayBucket() {
	p := s.params
	if p.Time.DayLengthS <= 0 {
		return
	}
	dayIdx := s.Clock.DayIndex()
	if dayIdx <= s.currentDay {
		return
	}
	s.DayMoves = append(s.DayMoves, s.MovesToday)
	if keep := p.World.HistoryDays; keep > 0 && len(s.DayMoves) > keep {
		s.DayMoves = s.DayMoves[len(s.DayMoves)-keep:]
	}
	s.MovesToday = 0
	s.currentDay = dayIdx
}

// sweepStarved buries every automaton whose energy reached zero this tick.
func (s *Simulation) sweepStarved() {
	for _, a := range s.Automata {
		if a.Alive && a.Energy <= 0 {
			s.bury(a, causeStarved)
		}
	}
}
