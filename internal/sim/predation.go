package sim

import (
	"github.com/talgya/terrarium/internal/automata"
	"github.com/talgya/terrarium/internal/entropy"
	"github.com/talgya/terrarium/internal/species"
)

// cellGroups partitions living automata by integer cell. The returned order
// follows collection order, and the map shares the same index slices, so
// callers iterate deterministically regardless of map layout.
func (s *Simulation) cellGroups() ([]Cell, map[Cell][]int) {
	var order []Cell
	byCell := make(map[Cell][]int)
	for i, a := range s.Automata {
		if !a.Alive {
			continue
		}
		c := Cell{round(a.X), round(a.Y)}
		if _, ok := byCell[c]; !ok {
			order = append(order, c)
		}
		byCell[c] = append(byCell[c], i)
	}
	return order, byCell
}

// resolvePredation settles all eat attempts for the tick: first every pair
// sharing a cell, then attackers scanning their neighborhood. Cells at the
// scan edge are only sometimes seen.
func (s *Simulation) resolvePredation() {
	p := s.params
	order, byCell := s.cellGroups()

	for _, c := range order {
		idx := byCell[c]
		for i := 0; i < len(idx); i++ {
			ai := s.Automata[idx[i]]
			for j := i + 1; j < len(idx); j++ {
				aj := s.Automata[idx[j]]
				if s.canEat(ai, aj) {
					s.settleAttack(ai, aj)
				} else if s.canEat(aj, ai) {
					s.settleAttack(aj, ai)
				}
			}
		}
	}

	r := p.Behavior.VisionRange
	for i, attacker := range s.Automata {
		if !attacker.Alive {
			continue
		}
		ax, ay := round(attacker.X), round(attacker.Y)
		for dx := -r; dx <= r; dx++ {
			for dy := -r; dy <= r; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}
				for _, j := range byCell[Cell{ax + dx, ay + dy}] {
					if j == i {
						continue
					}
					prey := s.Automata[j]
					if !prey.Alive {
						continue
					}
					if maxInt(abs(dx), abs(dy)) == r && !entropy.Chance(s.rng, p.Behavior.FarVisibility) {
						continue
					}
					if s.canEat(attacker, prey) {
						s.settleAttack(attacker, prey)
					}
				}
			}
		}
	}
}

// canEat reports whether attacker may eat prey this instant. Higher rank
// eats lower; equal ranks across ranges settle on a coin flip; a lower rank
// never eats up.
func (s *Simulation) canEat(attacker, prey *automata.Automaton) bool {
	if !attacker.Alive || !prey.Alive {
		return false
	}
	ra := species.RelativeRank(attacker.Species)
	rp := species.RelativeRank(prey.Species)
	switch {
	case ra > rp:
		return true
	case ra == rp:
		return entropy.Coin(s.rng)
	default:
		return false
	}
}

// settleAttack resolves one attack, giving base-species prey a retaliation
// chance against a nearly spent attacker before the kill lands.
func (s *Simulation) settleAttack(attacker, prey *automata.Automaton) {
	p := s.params
	if species.IsBase(prey.Species) && attacker.Energy <= p.Energy.RetaliationMax {
		if entropy.Coin(s.rng) {
			s.bury(attacker, causeEaten)
			prey.EatGain(1, p)
			return
		}
	}
	s.bury(prey, causeEaten)
	attacker.EatGain(1, p)
}
