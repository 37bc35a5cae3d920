package sim

import (
	"gonum.org/v1/gonum/stat"

	"github.com/talgya/terrarium/internal/species"
)

// MovementAverages holds trailing means of daily cell moves, including the
// in-progress day.
type MovementAverages struct {
	Total int
	MA3   float64
	MA7   float64
	MA14  float64
}

// MovementStats returns the lifetime move count and its 3/7/14-day trailing
// averages.
func (s *Simulation) MovementStats() MovementAverages {
	series := make([]float64, 0, len(s.DayMoves)+1)
	for _, v := range s.DayMoves {
		series = append(series, float64(v))
	}
	series = append(series, float64(s.MovesToday))

	trailing := func(n int) float64 {
		if len(series) == 0 {
			return 0
		}
		if n > len(series) {
			n = len(series)
		}
		return stat.Mean(series[len(series)-n:], nil)
	}
	return MovementAverages{
		Total: s.MovesTotal,
		MA3:   trailing(3),
		MA7:   trailing(7),
		MA14:  trailing(14),
	}
}

// PopulationCounts returns living automata split by broad role.
type PopulationCounts struct {
	Alive    int
	Landers  int
	Flyers   int
	Base     int
	Diggers  int
	Droppers int
}

// Census tallies the living population by role.
func (s *Simulation) Census() PopulationCounts {
	var c PopulationCounts
	for _, a := range s.Automata {
		if !a.Alive {
			continue
		}
		c.Alive++
		if species.IsFlyer(a.Species) {
			c.Flyers++
		} else {
			c.Landers++
		}
		if species.IsBase(a.Species) {
			c.Base++
		}
		if species.IsDigger(a.Species) {
			c.Diggers++
		}
		if species.IsRockDropper(a.Species) {
			c.Droppers++
		}
	}
	return c
}

// EnergyMean returns the mean energy of living automata, zero when none
// remain.
func (s *Simulation) EnergyMean() float64 {
	var vals []float64
	for _, a := range s.Automata {
		if a.Alive {
			vals = append(vals, a.Energy)
		}
	}
	if len(vals) == 0 {
		return 0
	}
	return stat.Mean(vals, nil)
}
