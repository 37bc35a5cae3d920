// Package species derives all species behavior from a single letter code.
// A..M are landers, N..Z are flyers. Adjacent letters within a range form a
// gendered mating pair; Z is the terminal flyer, genderless and asexual.
package species

const (
	landStart  = 'A'
	landEnd    = 'M'
	flyStart   = 'N'
	flyEnd     = 'Z'
	// Asexual is the terminal flyer letter. It has no gender and reproduces
	// alone.
	Asexual = 'Z'
)

// Gender is the mating role of a species letter.
type Gender uint8

const (
	GenderNone Gender = iota
	GenderMale
	GenderFemale
)

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// IsFlyer reports whether c is a flying species (N..Z).
func IsFlyer(c byte) bool {
	u := upper(c)
	return u >= flyStart && u <= flyEnd
}

// IsLander reports whether c is a land species (A..M).
func IsLander(c byte) bool {
	u := upper(c)
	return u >= landStart && u <= landEnd
}

// PairID groups letters into mating pairs. Landers pair adjacently from A/B.
// Flyers pair adjacently from N/O in a disjoint id range. Z is a singleton.
func PairID(c byte) int {
	u := upper(c)
	switch {
	case u == Asexual:
		return 999
	case u >= landStart && u <= landEnd:
		return int(u-landStart) / 2
	case u >= flyStart && u < flyEnd:
		return 100 + int(u-flyStart)/2
	}
	return 1000
}

// GenderOf returns the gender of c: alternating male/female by letter parity,
// none for Z.
func GenderOf(c byte) Gender {
	u := upper(c)
	if u == Asexual {
		return GenderNone
	}
	if int(u-landStart)%2 == 0 {
		return GenderMale
	}
	return GenderFemale
}

// RelativeRank aligns the lander and flyer ranges onto a common 0..12 scale:
// A==N, B==O, ..., M==Z. Higher rank preys on lower.
func RelativeRank(c byte) int {
	u := upper(c)
	if u >= flyStart {
		return int(u - flyStart)
	}
	return int(u - landStart)
}

// IsBase reports whether c is a basking species (A or B). Base species gain
// energy from daylight, scavenge corpses, and spawn diggers when barren.
func IsBase(c byte) bool {
	u := upper(c)
	return u == 'A' || u == 'B'
}

// IsDigger reports whether c can carve terrain while walking (C or D).
func IsDigger(c byte) bool {
	u := upper(c)
	return u == 'C' || u == 'D'
}

// IsRockDropper reports whether c can drop rocks (X, Y or Z).
func IsRockDropper(c byte) bool {
	u := upper(c)
	return u == 'X' || u == 'Y' || u == 'Z'
}

// IsMatingPair reports whether a and b can mate: same pair, opposite genders.
// Z never pairs.
func IsMatingPair(a, b byte) bool {
	if upper(a) == Asexual || upper(b) == Asexual {
		return false
	}
	return PairID(a) == PairID(b) && GenderOf(a) != GenderOf(b)
}
