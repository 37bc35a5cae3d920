// Package clock keeps absolute simulation time and derives the day/night
// phase from it.
package clock

import "math"

// sunlightMealFraction is the share of one meal gained by a basking automaton
// over a full daylight window. The quarter-meal variant keeps sunlight a
// supplement rather than a runaway energy source.
const sunlightMealFraction = 0.25

// Clock accumulates absolute simulation time.
type Clock struct {
	TAbs       float64 // Seconds since world start, monotonic
	DayLengthS float64
	DaylightS  float64
}

// New returns a clock at t=0 with the given day cadence.
func New(dayLengthS, daylightS float64) Clock {
	return Clock{DayLengthS: dayLengthS, DaylightS: daylightS}
}

// Tick advances absolute time by dt seconds. Negative dt is ignored.
func (c *Clock) Tick(dt float64) {
	if dt < 0 {
		return
	}
	c.TAbs += dt
}

// IsDay reports whether the current phase falls within daylight.
func (c *Clock) IsDay() bool {
	return IsDayAt(c.TAbs, c.DayLengthS, c.DaylightS)
}

// IsDayAt reports whether the absolute time t falls within daylight.
func IsDayAt(t, dayLengthS, daylightS float64) bool {
	if dayLengthS <= 0 {
		return false
	}
	phase := math.Mod(t, dayLengthS)
	if phase < 0 {
		phase += dayLengthS
	}
	return phase < daylightS
}

// DayIndex returns the number of completed days.
func (c *Clock) DayIndex() int {
	if c.DayLengthS <= 0 {
		return 0
	}
	return int(c.TAbs / c.DayLengthS)
}

// SunlightRate returns the per-second energy gain while basking in daylight.
// Integrated over one daylight window it yields a quarter of mealEnergy,
// clamped so extreme inputs stay bounded by maxEnergy.
func (c *Clock) SunlightRate(mealEnergy, maxEnergy float64) float64 {
	if c.DaylightS <= 0 {
		return 0
	}
	perSecond := sunlightMealFraction * mealEnergy / c.DaylightS
	if perSecond < 0 {
		return 0
	}
	if perSecond > maxEnergy {
		return maxEnergy
	}
	return perSecond
}
