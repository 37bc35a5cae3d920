package sim

import (
	"math"

	"github.com/talgya/terrarium/internal/automata"
	"github.com/talgya/terrarium/internal/entropy"
	"github.com/talgya/terrarium/internal/species"
)

// stepMotion runs the per-automaton movement phase: choose an intent, run
// the physics integrator, resolve terrain and entity blocking, then apply
// stagnation and life-field nudges. Cell changes are recorded in s.moved.
func (s *Simulation) stepMotion(dt float64) {
	p := s.params

	// Falling rocks block the cells they currently occupy.
	rockCells := make(map[Cell]bool)
	if s.Width > 0 {
		for _, r := range s.Rocks {
			if r.Active {
				rockCells[Cell{s.wrapX(round(r.X)), round(r.Y)}] = true
			}
		}
	}

	s.moved = make(map[*automata.Automaton]bool)
	for _, a := range s.Automata {
		if !a.Alive {
			continue
		}

		if species.IsLander(a.Species) && a.Energy > 0 {
			dir := s.landerChooseDirection(a)
			fromIX := s.wrapX(round(a.X))
			// A step into a too-steep rise is a chance to jump over it
			// before committing to the walk.
			if dir != 0 && !s.landerCanStep(fromIX, dir) {
				s.tryJump(a, fromIX, dir, rockCells)
			}
			a.VX = float64(dir) * p.Physics.WalkSpeed
		} else if species.IsFlyer(a.Species) && a.Energy > p.Behavior.MateEnergyFloor {
			s.flyerChooseVelocity(a)
		}

		prevX, prevY := a.X, a.Y
		prevIX, prevIY := round(prevX), round(prevY)
		a.TickMotion(dt, s.GroundYAt(a.X), s.Width, p)

		xi := s.wrapX(round(a.X))
		yi := round(a.Y)
		blockedTerrain := yi >= round(s.GroundYAt(a.X))
		dest := Cell{xi, yi}
		blockedEntity := s.CorpseAt(dest) || rockCells[dest] || s.StaticRockAt(dest)

		// Diggers carve through terrain they walked into, as long as the
		// move actually changed column and nothing else blocks the cell.
		if blockedTerrain && !blockedEntity && species.IsDigger(a.Species) {
			if xi != s.wrapX(round(prevX)) {
				s.Terrain.DigAt(xi, yi+1, s.Height)
				blockedTerrain = yi >= round(s.GroundYAt(a.X))
			}
		}

		blocked := blockedTerrain || blockedEntity
		if blocked && blockedTerrain && species.IsLander(a.Species) && s.Width > 0 {
			if dir := intentSign(a.VX, s.columnDelta(s.wrapX(prevIX), xi)); dir != 0 {
				if s.tryJump(a, s.wrapX(prevIX), dir, rockCells) {
					blocked = false
				}
			}
		}
		if blocked {
			a.X = prevX
			a.Y = math.Max(0, math.Min(prevY, s.GroundYAt(prevX)-1))
			a.VX, a.VY = 0, 0
		}

		if round(a.X) != prevIX || round(a.Y) != prevIY {
			s.moved[a] = true
			a.StagnantS = 0
		} else {
			a.StagnantS += math.Max(0, dt)
			if a.StagnantS >= p.Physics.StagnationAfterS {
				s.applyStagnationNudge(a)
				a.StagnantS = 0
			}
		}

		s.applyLifeNudge(a)
	}
}

// intentSign derives the horizontal direction a blocked move was attempting:
// the rounded velocity when it carries one, otherwise the column delta.
func intentSign(vx float64, columnDelta int) int {
	if v := round(vx); v != 0 {
		if v < 0 {
			return -1
		}
		return 1
	}
	if columnDelta < 0 {
		return -1
	}
	if columnDelta > 0 {
		return 1
	}
	return 0
}

// columnDelta reports the single-step direction from one wrapped column to
// an adjacent one. Crossing the seam keeps the direction of travel, and
// non-adjacent columns yield 0.
func (s *Simulation) columnDelta(fromIX, toIX int) int {
	if toIX == fromIX {
		return 0
	}
	switch toIX {
	case s.wrapX(fromIX + 1):
		return 1
	case s.wrapX(fromIX - 1):
		return -1
	}
	return 0
}

// landerCanStep reports whether the column one step in dir is walkable: a
// rise of at most one row. Descents of any depth are allowed.
func (s *Simulation) landerCanStep(fromIX, dir int) bool {
	if s.Width <= 0 || len(s.Terrain) == 0 {
		return false
	}
	next := s.wrapX(fromIX + dir)
	return s.Terrain[next] >= s.Terrain[fromIX]-1
}

// tryJump attempts a lander jump from column fromIX over dir. Jumps are
// rate-limited by a per-automaton cooldown and a coin flip, clear at most a
// bounded ascent, and land two columns over unless the landing cell is
// occupied by a rock or corpse.
func (s *Simulation) tryJump(a *automata.Automaton, fromIX, dir int, rockCells map[Cell]bool) bool {
	p := s.params
	if s.Width <= 0 || len(s.Terrain) == 0 || p.Time.DayLengthS <= 0 {
		return false
	}
	cooldown := p.Jump.CooldownDays * p.Time.DayLengthS
	if s.Clock.TAbs-a.LastJumpTimeS < cooldown {
		return false
	}
	if !entropy.Chance(s.rng, p.Jump.Chance) {
		return false
	}
	target := s.wrapX(fromIX + dir*p.Jump.DistanceCells)
	ascent := s.Terrain[fromIX] - s.Terrain[target]
	if ascent > p.Jump.AscentMaxCells {
		return false
	}
	landing := Cell{target, clampInt(s.Terrain[target]-1, 0, s.Height-1)}
	if rockCells[landing] || s.CorpseAt(landing) {
		return false
	}
	a.X = float64(target)
	a.Y = float64(landing.Y)
	a.VX, a.VY = 0, 0
	a.LastJumpTimeS = s.Clock.TAbs
	a.Energy = automata.Clamp(a.Energy-p.Jump.EnergyCost, 0, p.Energy.Max)
	return true
}

// landerChooseDirection picks a horizontal direction from the Chebyshev scan
// around the automaton. Fleeing a higher rank wins over mate seeking, which
// wins over pursuing prey; with no signal the direction is uniform random.
func (s *Simulation) landerChooseDirection(a *automata.Automaton) int {
	p := s.params
	r := p.Behavior.VisionRange
	ax, ay := round(a.X), round(a.Y)
	myRank := species.RelativeRank(a.Species)

	avoidDir, mateDir, pursueDir := 0, 0, 0
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := ax+dx, ay+dy
			for _, b := range s.Automata {
				if b == a || !b.Alive {
					continue
				}
				if round(b.X) != nx || round(b.Y) != ny {
					continue
				}
				if species.IsMatingPair(a.Species, b.Species) && mateDir == 0 && dx != 0 {
					mateDir = sign(dx)
				}
				otherRank := species.RelativeRank(b.Species)
				switch {
				case otherRank > myRank:
					if dx != 0 {
						avoidDir = sign(dx)
					}
				case otherRank < myRank:
					if pursueDir == 0 && dx != 0 {
						pursueDir = sign(dx)
					}
				}
			}
		}
	}

	if a.Energy > p.Behavior.MateEnergyFloor && mateDir != 0 {
		return mateDir
	}
	if avoidDir != 0 {
		return -avoidDir
	}
	if pursueDir != 0 {
		return pursueDir
	}
	return entropy.Sign(s.rng)
}

// flyerChooseVelocity sets the flyer's intent velocity from a weighted vote
// over its scan neighborhood. Prey, threats, and mates each bias the four
// direction weights in proportion to rank gap; energetic droppers may spend
// the turn releasing a rock instead of descending.
func (s *Simulation) flyerChooseVelocity(a *automata.Automaton) {
	p := s.params
	r := p.Behavior.VisionRange
	ax, ay := round(a.X), round(a.Y)
	myRank := species.RelativeRank(a.Species)

	base := []float64{
		p.Behavior.WeightHorizontal, // left
		p.Behavior.WeightHorizontal, // right
		p.Behavior.WeightUp,
		p.Behavior.WeightDown,
	}
	weights := append([]float64(nil), base...)
	hadSignal := false

	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			// Cells at the edge of the scan are only sometimes seen.
			if maxInt(abs(dx), abs(dy)) == r && !entropy.Chance(s.rng, p.Behavior.FarVisibility) {
				continue
			}
			nx, ny := ax+dx, ay+dy
			for _, b := range s.Automata {
				if b == a || !b.Alive {
					continue
				}
				if round(b.X) != nx || round(b.Y) != ny {
					continue
				}
				if species.IsMatingPair(a.Species, b.Species) {
					hadSignal = true
					voteMate(weights, base, dx, dy)
				}
				otherRank := species.RelativeRank(b.Species)
				switch {
				case otherRank < myRank:
					hadSignal = true
					for n := myRank - otherRank; n > 0; n-- {
						voteToward(weights, base, dx, dy)
					}
				case otherRank > myRank:
					hadSignal = true
					for n := otherRank - myRank; n > 0; n-- {
						voteAway(weights, base, dx, dy)
					}
				}
			}
		}
	}

	var dx, dy int
	if hadSignal {
		canDrop := species.IsRockDropper(a.Species) && a.Energy > p.Rocks.DropThreshold
		if canDrop {
			dropWeight := p.Behavior.DropVoteFactor * weights[3]
			choice := entropy.WeightedIndex(s.rng, append(append([]float64(nil), weights...), dropWeight))
			if choice == len(weights) {
				s.DropRockFrom(a)
				choice = entropy.WeightedIndex(s.rng, weights)
			}
			dx, dy = direction(choice)
		} else {
			dx, dy = direction(entropy.WeightedIndex(s.rng, weights))
		}
	} else {
		dx, dy = entropy.Sign(s.rng), 0
	}

	a.VX = float64(dx) * p.Physics.FlyerSpeed
	a.VY += float64(dy) * p.Physics.FlyerImpulse
}

// direction maps a vote index to a unit step: left, right, up, down.
func direction(i int) (dx, dy int) {
	switch i {
	case 0:
		return -1, 0
	case 1:
		return 1, 0
	case 2:
		return 0, -1
	default:
		return 0, 1
	}
}

func voteToward(w, base []float64, dx, dy int) {
	if dx < 0 {
		w[0] += base[0]
	} else if dx > 0 {
		w[1] += base[1]
	}
	if dy < 0 {
		w[2] += base[2]
	} else if dy > 0 {
		w[3] += base[3]
	}
}

func voteAway(w, base []float64, dx, dy int) {
	if dx < 0 {
		w[1] += base[1]
	} else if dx > 0 {
		w[0] += base[0]
	}
	if dy < 0 {
		w[3] += base[3]
	} else if dy > 0 {
		w[2] += base[2]
	}
}

func voteMate(w, base []float64, dx, dy int) {
	if dx < 0 {
		w[0] += 2 * base[0]
	} else if dx > 0 {
		w[1] += 2 * base[1]
	}
	if dy < 0 {
		w[2] += 2 * base[2]
	} else if dy > 0 {
		w[3] += 2 * base[3]
	}
}

// applyStagnationNudge breaks an automaton out of a cell it has sat in too
// long. Airborne flyers and walkers get a random sideways push; a grounded
// flyer gets an upward hop instead, since sideways does nothing for it.
func (s *Simulation) applyStagnationNudge(a *automata.Automaton) {
	p := s.params
	switch {
	case a.CanFly(p):
		a.VX += float64(entropy.Sign(s.rng)) * p.Physics.StagnationNudge
	case species.IsFlyer(a.Species):
		a.VY -= 2 * p.Physics.StagnationNudge
	default:
		a.VX += float64(entropy.Sign(s.rng)) * p.Physics.StagnationNudge
	}
}

// applyLifeNudge biases horizontal velocity by the local density of the life
// field: crowded neighborhoods push, sparse ones pull.
func (s *Simulation) applyLifeNudge(a *automata.Automaton) {
	if s.Width <= 0 || s.Height <= 0 {
		return
	}
	ay := round(a.Y)
	if ay < 0 || ay >= s.Height {
		return
	}
	n := s.Life.LiveNeighborsWrapX(ay, s.wrapX(round(a.X)))
	switch {
	case n >= 5:
		a.VX += s.params.Physics.LifeNudge
	case n <= 2:
		a.VX -= s.params.Physics.LifeNudge
	}
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	if v > 0 {
		return 1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
