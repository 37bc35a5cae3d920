package species

import "testing"

func TestRanges(t *testing.T) {
	for c := byte('A'); c <= 'M'; c++ {
		if !IsLander(c) || IsFlyer(c) {
			t.Errorf("%c should be a lander", c)
		}
	}
	for c := byte('N'); c <= 'Z'; c++ {
		if !IsFlyer(c) || IsLander(c) {
			t.Errorf("%c should be a flyer", c)
		}
	}
	if !IsFlyer('q') || !IsLander('c') {
		t.Error("range checks should be case-insensitive")
	}
}

func TestRolePredicates(t *testing.T) {
	for _, c := range []byte{'A', 'B'} {
		if !IsBase(c) {
			t.Errorf("%c should be a base species", c)
		}
	}
	if IsBase('C') {
		t.Error("C is not a base species")
	}
	for _, c := range []byte{'C', 'D'} {
		if !IsDigger(c) {
			t.Errorf("%c should dig", c)
		}
	}
	if IsDigger('E') {
		t.Error("E does not dig")
	}
	for _, c := range []byte{'X', 'Y', 'Z'} {
		if !IsRockDropper(c) {
			t.Errorf("%c should drop rocks", c)
		}
	}
	if IsRockDropper('W') {
		t.Error("W does not drop rocks")
	}
}

func TestPairID(t *testing.T) {
	cases := []struct {
		a, b byte
		same bool
	}{
		{'A', 'B', true},
		{'C', 'D', true},
		{'L', 'M', true},
		{'N', 'O', true},
		{'X', 'Y', true},
		{'B', 'C', false},
		{'A', 'N', false},
		{'M', 'N', false},
		{'Y', 'Z', false},
		{'Z', 'Z', true},
	}
	for _, tc := range cases {
		got := PairID(tc.a) == PairID(tc.b)
		if got != tc.same {
			t.Errorf("PairID(%c)==PairID(%c): got %v, want %v", tc.a, tc.b, got, tc.same)
		}
	}
}

func TestGenderAlternates(t *testing.T) {
	if GenderOf('A') == GenderOf('B') {
		t.Error("pair letters should have opposite genders")
	}
	if GenderOf('N') == GenderOf('O') {
		t.Error("flyer pair letters should have opposite genders")
	}
	if GenderOf('Z') != GenderNone {
		t.Error("Z should be genderless")
	}
}

func TestRelativeRankAlignsRanges(t *testing.T) {
	if RelativeRank('A') != RelativeRank('N') {
		t.Error("A and N should share a rank")
	}
	if RelativeRank('M') != RelativeRank('Z') {
		t.Error("M and Z should share a rank")
	}
	if RelativeRank('B') <= RelativeRank('A') {
		t.Error("rank should grow with letter")
	}
	if RelativeRank('Z') != 12 {
		t.Errorf("Z rank = %d, want 12", RelativeRank('Z'))
	}
}

func TestIsMatingPair(t *testing.T) {
	if !IsMatingPair('A', 'B') || !IsMatingPair('N', 'O') {
		t.Error("adjacent pair letters should mate")
	}
	if IsMatingPair('A', 'A') {
		t.Error("same letter should not mate")
	}
	if IsMatingPair('B', 'C') {
		t.Error("letters across pairs should not mate")
	}
	if IsMatingPair('Z', 'Y') || IsMatingPair('Z', 'Z') {
		t.Error("Z never mates")
	}
}
