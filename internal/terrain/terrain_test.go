package terrain

import "testing"

func TestFlat(t *testing.T) {
	s := Flat(10, 24, 5)
	if len(s) != 10 {
		t.Fatalf("len = %d, want 10", len(s))
	}
	for i, y := range s {
		if y != 19 {
			t.Errorf("column %d = %d, want 19", i, y)
		}
	}
}

func TestFlatClampsMargin(t *testing.T) {
	s := Flat(4, 3, 10)
	for _, y := range s {
		if y < 0 {
			t.Errorf("surface row %d below zero", y)
		}
	}
	if len(Flat(0, 24, 5)) != 0 {
		t.Error("zero width should give an empty surface")
	}
}

func TestGenerateDeterministicAndBounded(t *testing.T) {
	a := Generate(200, 24, 4, 3, 7)
	b := Generate(200, 24, 4, 3, 7)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed should reproduce the surface, column %d: %d vs %d", i, a[i], b[i])
		}
	}
	baseline := 24 - 4
	for i, y := range a {
		if y < baseline-3 || y > baseline+3 {
			t.Errorf("column %d = %d outside envelope [%d, %d]", i, y, baseline-3, baseline+3)
		}
		if i > 0 {
			d := a[i] - a[i-1]
			if d < -1 || d > 1 {
				t.Errorf("column %d steps by %d, want at most 1", i, d)
			}
		}
	}
}

func TestGenerateNoiseBounded(t *testing.T) {
	s := GenerateNoise(100, 24, 4, 3, 11)
	baseline := 24 - 4
	for i, y := range s {
		if y < baseline-3 || y > baseline+3 {
			t.Errorf("column %d = %d outside envelope", i, y)
		}
	}
}

func TestBuryAt(t *testing.T) {
	s := Flat(5, 24, 5)
	s.BuryAt(2)
	if s[2] != 18 {
		t.Errorf("buried column = %d, want 18", s[2])
	}
	s.BuryAt(7) // wraps to column 2
	if s[2] != 17 {
		t.Errorf("wrapped bury gave %d, want 17", s[2])
	}
	s[0] = 0
	s.BuryAt(0)
	if s[0] != 0 {
		t.Error("surface should not rise above row zero")
	}
	var empty Surface
	empty.BuryAt(0) // must not panic
}

func TestDigAt(t *testing.T) {
	s := Flat(5, 24, 5)
	s.DigAt(1, 21, 24)
	if s[1] != 21 {
		t.Errorf("dug column = %d, want 21", s[1])
	}
	// Digging shallower than the current surface changes nothing.
	s.DigAt(1, 10, 24)
	if s[1] != 21 {
		t.Errorf("shallow dig moved surface to %d", s[1])
	}
	s.DigAt(3, 99, 24)
	if s[3] != 23 {
		t.Errorf("deep dig should cap at last row, got %d", s[3])
	}
	s.DigAt(-1, 22, 24) // wraps to column 4
	if s[4] != 22 {
		t.Errorf("wrapped dig gave %d, want 22", s[4])
	}
}
