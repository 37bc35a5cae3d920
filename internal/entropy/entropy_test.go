package entropy

import "testing"

// scriptStream replays a fixed list of Float values; IntN always returns 0.
type scriptStream struct {
	vals []float64
	i    int
}

func (s *scriptStream) Float() float64 {
	if s.i >= len(s.vals) {
		return 0
	}
	v := s.vals[s.i]
	s.i++
	return v
}

func (s *scriptStream) IntN(n int) int { return 0 }

func TestSourceDeterministic(t *testing.T) {
	a := NewSource(99)
	b := NewSource(99)
	for i := 0; i < 100; i++ {
		if a.Float() != b.Float() {
			t.Fatal("same seed should replay the same floats")
		}
		if a.IntN(1000) != b.IntN(1000) {
			t.Fatal("same seed should replay the same ints")
		}
	}
}

func TestSourceBounds(t *testing.T) {
	src := NewSource(7)
	for i := 0; i < 1000; i++ {
		if f := src.Float(); f < 0 || f >= 1 {
			t.Fatalf("Float out of range: %v", f)
		}
		if n := src.IntN(5); n < 0 || n >= 5 {
			t.Fatalf("IntN out of range: %d", n)
		}
	}
}

func TestCoinAndChance(t *testing.T) {
	s := &scriptStream{vals: []float64{0.4, 0.6, 0.099, 0.1}}
	if !Coin(s) {
		t.Error("draw below 0.5 should be heads")
	}
	if Coin(s) {
		t.Error("draw at or above 0.5 should be tails")
	}
	if !Chance(s, 0.1) {
		t.Error("draw below p should hit")
	}
	if Chance(s, 0.1) {
		t.Error("draw at p should miss")
	}
}

func TestRange(t *testing.T) {
	s := &scriptStream{vals: []float64{0, 0.5}}
	if got := Range(s, -2, 2); got != -2 {
		t.Errorf("Range at draw 0 = %v, want -2", got)
	}
	if got := Range(s, -2, 2); got != 0 {
		t.Errorf("Range at draw 0.5 = %v, want 0", got)
	}
}

func TestSign(t *testing.T) {
	s := &scriptStream{vals: []float64{0.2, 0.8}}
	if Sign(s) != -1 {
		t.Error("low draw should be -1")
	}
	if Sign(s) != 1 {
		t.Error("high draw should be +1")
	}
}

func TestWeightedIndex(t *testing.T) {
	weights := []float64{4, 44, 2, 1}
	cases := []struct {
		draw float64
		want int
	}{
		{0.0, 0},
		{0.05, 0},
		{0.1, 1}, // 0.1*51 = 5.1, past the first bucket
		{0.9, 1},
		{0.95, 2},
		{0.999, 3},
	}
	for _, tc := range cases {
		s := &scriptStream{vals: []float64{tc.draw}}
		if got := WeightedIndex(s, weights); got != tc.want {
			t.Errorf("draw %v: got index %d, want %d", tc.draw, got, tc.want)
		}
	}
}

func TestWeightedIndexSkipsNonPositive(t *testing.T) {
	s := &scriptStream{vals: []float64{0.0}}
	if got := WeightedIndex(s, []float64{0, 0, 5}); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
	// All-zero weights degrade to a uniform pick; scripted IntN returns 0.
	s = &scriptStream{}
	if got := WeightedIndex(s, []float64{0, 0, 0}); got != 0 {
		t.Errorf("degenerate weights: got %d, want 0", got)
	}
}
