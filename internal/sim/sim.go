// Package sim owns the complete world state and advances it through the
// tick pipeline. One Simulation is exclusively owned by its driver; a world
// reset is a fresh Simulation swapped in by the caller, never an in-place
// rebuild.
package sim

import (
	"math"

	"github.com/google/uuid"

	"github.com/talgya/terrarium/internal/automata"
	"github.com/talgya/terrarium/internal/clock"
	"github.com/talgya/terrarium/internal/config"
	"github.com/talgya/terrarium/internal/entropy"
	"github.com/talgya/terrarium/internal/life"
	"github.com/talgya/terrarium/internal/species"
	"github.com/talgya/terrarium/internal/terrain"
)

// Cell is an integer grid coordinate. X is a column, Y a row (rows grow
// downward).
type Cell struct {
	X, Y int
}

// Simulation is the top-level world state.
type Simulation struct {
	Width, Height int

	Clock    clock.Clock
	Terrain  terrain.Surface
	Automata []*automata.Automaton
	Rocks    []*automata.Rock
	Life     life.Grid

	// AutoRocks enables opportunistic rock drops by energetic droppers.
	AutoRocks bool

	// Corpse and landed-rock markers, each keyed by cell with its age in
	// seconds. Kept as independent maps with one-way mutation so terrain,
	// corpses, and rocks cannot couple accidentally.
	corpses     map[Cell]float64
	staticRocks map[Cell]float64

	// Lifetime counters.
	SpawnedTotal       int
	DiedTotal          int
	EatenTotal         int
	RockDeathsTotal    int
	StarvedTotal       int
	ReproductionsTotal int

	// Movement bookkeeping. DayMoves holds completed-day buckets, bounded
	// to the configured trailing history.
	MovesTotal int
	MovesToday int
	DayMoves   []int
	currentDay int

	// moved tracks, within one step, which automata changed integer cell.
	// Keyed by identity so tombstoned entries never alias.
	moved map[*automata.Automaton]bool

	// deaths queues per-death records until the driver drains them into the
	// run ledger.
	deaths []DeathRecord

	params *config.Params
	rng    entropy.Stream
}

// New creates an empty world of the given size with a flat default surface.
// A nil params uses the embedded defaults; a nil rng uses a time-seeded
// stream.
func New(width, height int, p *config.Params, rng entropy.Stream) *Simulation {
	if p == nil {
		p = config.Defaults()
	}
	if rng == nil {
		rng = entropy.NewSource(0)
	}
	if width < 0 {
		width = 0
	}
	if height < 1 {
		height = 1
	}
	return &Simulation{
		Width:       width,
		Height:      height,
		Clock:       clock.New(p.Time.DayLengthS, p.Time.DaylightS),
		Terrain:     terrain.Flat(width, height, 5),
		Life:        life.NewGrid(width, height),
		corpses:     make(map[Cell]float64),
		staticRocks: make(map[Cell]float64),
		params:      p,
		rng:         rng,
	}
}

// Params returns the parameter set the simulation runs with.
func (s *Simulation) Params() *config.Params { return s.params }

// Add inserts an automaton into the world and counts it as spawned.
func (s *Simulation) Add(a *automata.Automaton) {
	s.Automata = append(s.Automata, a)
	s.SpawnedTotal++
}

// AliveCount returns the number of living automata.
func (s *Simulation) AliveCount() int {
	n := 0
	for _, a := range s.Automata {
		if a.Alive {
			n++
		}
	}
	return n
}

// GroundYAt returns the terrain surface row at column x, wrapping
// horizontally. A zero-width world degrades to a single ground row at the
// bottom.
func (s *Simulation) GroundYAt(x float64) float64 {
	if s.Width == 0 || len(s.Terrain) == 0 {
		return float64(s.Height - 1)
	}
	return float64(s.Terrain[s.wrapX(round(x))])
}

// CorpseAt reports whether a corpse marker occupies the cell.
func (s *Simulation) CorpseAt(c Cell) bool {
	_, ok := s.corpses[c]
	return ok
}

// StaticRockAt reports whether a landed rock occupies the cell.
func (s *Simulation) StaticRockAt(c Cell) bool {
	_, ok := s.staticRocks[c]
	return ok
}

// CorpseCells returns the cells currently holding corpse markers.
func (s *Simulation) CorpseCells() []Cell {
	out := make([]Cell, 0, len(s.corpses))
	for c := range s.corpses {
		out = append(out, c)
	}
	return out
}

// StaticRockCells returns the cells currently holding landed rocks.
func (s *Simulation) StaticRockCells() []Cell {
	out := make([]Cell, 0, len(s.staticRocks))
	for c := range s.staticRocks {
		out = append(out, c)
	}
	return out
}

// ConfigureSurfaceForView resizes the world and regenerates the surface for
// a viewport. Existing automata are rescaled across the new width; flyers
// keep their altitude above ground and landers stay on the surface.
func (s *Simulation) ConfigureSurfaceForView(width, height, seaLevelOffset, amplitude int, seed int64) {
	oldW, oldH := s.Width, s.Height
	oldTerrain := append(terrain.Surface(nil), s.Terrain...)

	if width < 0 {
		width = 0
	}
	if height < 1 {
		height = 1
	}
	s.Width, s.Height = width, height
	s.Terrain = terrain.Generate(width, height, seaLevelOffset, amplitude, seed)
	s.Life = life.NewGrid(width, height)

	if oldW == 0 || s.Width == 0 || len(s.Automata) == 0 {
		return
	}
	scaleX := float64(s.Width) / float64(oldW)
	for _, a := range s.Automata {
		newX := a.X * scaleX
		newIX := s.wrapX(round(newX))
		newGY := s.Height - 1
		if len(s.Terrain) > 0 {
			newGY = s.Terrain[newIX]
		}
		var newY int
		if species.IsFlyer(a.Species) {
			oldIX := wrap(round(a.X), maxInt(1, oldW))
			oldGY := oldH - 1
			if len(oldTerrain) > 0 {
				oldGY = oldTerrain[oldIX]
			}
			above := maxInt(1, oldGY-round(a.Y))
			newY = maxInt(0, newGY-above)
		} else {
			newY = maxInt(0, newGY-1)
		}
		a.X = math.Max(0, math.Min(float64(s.Width-1), newX))
		a.Y = float64(clampInt(newY, 0, s.Height-1))
	}
}

// SeedPopulation populates the world with count automata drawn uniformly
// across species pairs, with an occasional asexual flyer. Landers spawn on
// the surface; flyers spawn high. A zero-width world is a documented no-op.
func (s *Simulation) SeedPopulation(count int, seed int64) {
	if s.Width <= 0 {
		return
	}
	src := entropy.NewSource(seed)
	for n := 0; n < count; n++ {
		var letter byte
		if entropy.Chance(src, 0.1) {
			letter = species.Asexual
		} else {
			pair := src.IntN(13)
			letter = byte('A' + 2*pair + src.IntN(2))
		}
		x := src.IntN(s.Width)
		gy := round(s.GroundYAt(float64(x)))
		var y int
		if species.IsFlyer(letter) {
			y = s.flyerSpawnRow(src, gy)
		} else {
			y = maxInt(0, gy-1)
		}
		a := automata.New(letter, float64(x), float64(y), s.params.World.SeedEnergy, src)
		a.VX = entropy.Range(src, -0.5, 0.5)
		s.Add(a)
	}
}

// SeedPopulationBalanced populates the world with a fixed fraction of flyers
// (N..Z) and the remainder landers (A..M).
func (s *Simulation) SeedPopulationBalanced(total int, seed int64) {
	if s.Width <= 0 {
		return
	}
	src := entropy.NewSource(seed)
	if total < 0 {
		total = 0
	}
	flyers := int(float64(total) * s.params.World.FlyerFraction)
	landers := total - flyers

	for n := 0; n < landers; n++ {
		letter := byte('A' + src.IntN(13))
		x := src.IntN(s.Width)
		gy := round(s.GroundYAt(float64(x)))
		a := automata.New(letter, float64(x), float64(maxInt(0, gy-1)), s.params.World.SeedEnergy, src)
		a.VX = entropy.Range(src, -0.5, 0.5)
		s.Add(a)
	}
	for n := 0; n < flyers; n++ {
		letter := byte('N' + src.IntN(13))
		x := src.IntN(s.Width)
		gy := round(s.GroundYAt(float64(x)))
		a := automata.New(letter, float64(x), float64(s.flyerSpawnRow(src, gy)), s.params.World.SeedEnergy, src)
		a.VX = entropy.Range(src, -0.5, 0.5)
		s.Add(a)
	}
}

// flyerSpawnRow picks a spawn row in the top third of the screen, at least
// the minimum reproduction altitude above ground when the geometry allows.
func (s *Simulation) flyerSpawnRow(src entropy.Stream, groundY int) int {
	minAlt := round(s.params.Reproduction.FlyerMinAltitude)
	yMax := minInt(s.Height/3, groundY-minAlt)
	if yMax <= 0 {
		return 0
	}
	return src.IntN(yMax + 1)
}

// DropRockFrom spawns a falling rock just above the automaton. Only living
// rock-dropper species with energy above the drop threshold may drop.
func (s *Simulation) DropRockFrom(a *automata.Automaton) bool {
	if !a.Alive || !species.IsRockDropper(a.Species) {
		return false
	}
	if a.Energy <= s.params.Rocks.DropThreshold {
		return false
	}
	s.Rocks = append(s.Rocks, &automata.Rock{X: a.X, Y: a.Y - 1, Active: true})
	return true
}

// Death causes tracked by the counters. An empty cause buries without
// classification.
const (
	causeEaten   = "eaten"
	causeRock    = "rock"
	causeStarved = "starved"
)

// DeathRecord identifies one death for the run ledger.
type DeathRecord struct {
	ID      uuid.UUID
	Species byte
	Cause   string
	Day     int
}

// DrainDeaths returns the deaths queued since the last drain and clears the
// queue.
func (s *Simulation) DrainDeaths() []DeathRecord {
	out := s.deaths
	s.deaths = nil
	return out
}

// bury tombstones an automaton, stamps a corpse marker on the surface at its
// column, and classifies the death for the counters.
func (s *Simulation) bury(a *automata.Automaton, cause string) {
	if a.Alive {
		s.DiedTotal++
		switch cause {
		case causeEaten:
			s.EatenTotal++
		case causeRock:
			s.RockDeathsTotal++
		case causeStarved:
			s.StarvedTotal++
		}
		s.deaths = append(s.deaths, DeathRecord{
			ID:      a.ID,
			Species: a.Species,
			Cause:   cause,
			Day:     s.Clock.DayIndex(),
		})
	}
	a.Kill()
	if s.Width > 0 {
		xi := s.wrapX(round(a.X))
		yi := clampInt(round(s.GroundYAt(a.X))-1, 0, s.Height-1)
		s.corpses[Cell{xi, yi}] = 0
	}
}

func (s *Simulation) wrapX(ix int) int {
	return wrap(ix, maxInt(1, s.Width))
}

func round(v float64) int { return int(math.Round(v)) }

func wrap(x, n int) int {
	x %= n
	if x < 0 {
		x += n
	}
	return x
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
