package sim

import (
	"math"

	"github.com/talgya/terrarium/internal/automata"
	"github.com/talgya/terrarium/internal/species"
)

// resolveReproduction settles all births for the tick. Asexual flyers bud
// alone at altitude; gendered pairs sharing a cell produce one child of the
// pair's first letter. Newborns join the world only after every cell has
// been considered, so a child never mates in the tick it is born.
func (s *Simulation) resolveReproduction() {
	p := s.params
	order, byCell := s.cellGroups()
	var newborns []*automata.Automaton

	for _, c := range order {
		idx := byCell[c]

		for _, i := range idx {
			a := s.Automata[i]
			if a.Species != species.Asexual {
				continue
			}
			if a.Energy <= p.Reproduction.AsexualThreshold || !a.CanFly(p) {
				continue
			}
			if s.GroundYAt(a.X)-a.Y < p.Reproduction.FlyerMinAltitude {
				continue
			}
			newborns = append(newborns,
				automata.New(species.Asexual, a.X, math.Max(0, a.Y-1), p.Reproduction.BirthEnergy, s.rng))
			a.ReproTick = true
			s.ReproductionsTotal++
		}

		for i := 0; i < len(idx); i++ {
			ai := s.Automata[idx[i]]
			for j := i + 1; j < len(idx); j++ {
				aj := s.Automata[idx[j]]
				if !species.IsMatingPair(ai.Species, aj.Species) {
					continue
				}
				if ai.Energy < p.Reproduction.EnergyThreshold || aj.Energy < p.Reproduction.EnergyThreshold {
					continue
				}
				if !s.altitudeAllowsMating(ai) || !s.altitudeAllowsMating(aj) {
					continue
				}
				child := ai.Species
				if aj.Species < child {
					child = aj.Species
				}
				newborns = append(newborns,
					automata.New(child, ai.X, ai.Y, p.Reproduction.BirthEnergy, s.rng))
				ai.ReproTick = true
				aj.ReproTick = true
				if species.IsBase(ai.Species) {
					ai.SinceReproS = 0
				}
				if species.IsBase(aj.Species) {
					aj.SinceReproS = 0
				}
				s.ReproductionsTotal++
			}
		}
	}

	for _, nb := range newborns {
		s.Add(nb)
	}
}

// altitudeAllowsMating gates flyer parents to a minimum height above the
// surface. Landers mate anywhere.
func (s *Simulation) altitudeAllowsMating(a *automata.Automaton) bool {
	if !species.IsFlyer(a.Species) {
		return true
	}
	return s.GroundYAt(a.X)-a.Y >= s.params.Reproduction.FlyerMinAltitude
}

// autoSpawnFallback lets a base-species automaton that has gone too long
// without reproducing place one digger child in an adjacent free cell. The
// barren timer resets only when a child is actually placed.
func (s *Simulation) autoSpawnFallback() {
	p := s.params
	if p.Time.DayLengthS <= 0 {
		return
	}
	threshold := p.Reproduction.AutoSpawnDays * p.Time.DayLengthS

	occupied := make(map[Cell]bool)
	for _, a := range s.Automata {
		if a.Alive {
			occupied[Cell{s.wrapX(round(a.X)), round(a.Y)}] = true
		}
	}

	for _, a := range s.Automata {
		if !a.Alive || !species.IsBase(a.Species) {
			continue
		}
		if a.SinceReproS < threshold {
			continue
		}
		ax, ay := s.wrapX(round(a.X)), round(a.Y)
		candidates := []Cell{
			{ax, ay - 1},
			{s.wrapX(ax - 1), ay},
			{s.wrapX(ax + 1), ay},
			{ax, ay + 1},
		}
		for _, c := range candidates {
			if c.Y < 0 || c.Y >= s.Height {
				continue
			}
			if c.Y >= round(s.GroundYAt(float64(c.X))) {
				continue
			}
			if s.CorpseAt(c) || occupied[c] {
				continue
			}
			letter := byte('C' + s.rng.IntN(2))
			s.Add(automata.New(letter, float64(c.X), float64(c.Y), p.Reproduction.BirthEnergy, s.rng))
			a.SinceReproS = 0
			occupied[c] = true
			break
		}
	}
}
