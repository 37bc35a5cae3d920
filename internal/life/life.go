// Package life steps a classic Conway's Game of Life grid. The field is not
// rendered; the simulation samples it as an environmental perturbation.
package life

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Grid is a boolean field indexed [row][col]. Edges do not wrap for the Life
// rule itself.
type Grid [][]bool

// NewGrid returns an empty width×height grid.
func NewGrid(width, height int) Grid {
	g := make(Grid, max(0, height))
	for r := range g {
		g[r] = make([]bool, max(0, width))
	}
	return g
}

// Height returns the number of rows.
func (g Grid) Height() int { return len(g) }

// Width returns the number of columns.
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Step advances the grid one generation under the standard B3/S23 rule with
// no wraparound; edge cells simply see fewer neighbors.
func (g Grid) Step() Grid {
	h := g.Height()
	w := g.Width()
	out := NewGrid(w, h)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			n := g.liveNeighbors(r, c)
			if g[r][c] {
				out[r][c] = n == 2 || n == 3
			} else {
				out[r][c] = n == 3
			}
		}
	}
	return out
}

func (g Grid) liveNeighbors(r, c int) int {
	h, w := g.Height(), g.Width()
	n := 0
	for dr := -1; dr <= 1; dr++ {
		rr := r + dr
		if rr < 0 || rr >= h {
			continue
		}
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			cc := c + dc
			if cc < 0 || cc >= w {
				continue
			}
			if g[rr][cc] {
				n++
			}
		}
	}
	return n
}

// LiveNeighborsWrapX counts live 8-neighbors of (r, c) with columns wrapping
// horizontally. Rows do not wrap. This is the sampling rule the simulation
// uses to nudge automata; it deliberately differs from the Life rule's
// no-wrap neighborhoods because the world itself is a horizontal cylinder.
func (g Grid) LiveNeighborsWrapX(r, c int) int {
	h, w := g.Height(), g.Width()
	if h == 0 || w == 0 || r < 0 || r >= h {
		return 0
	}
	n := 0
	for dr := -1; dr <= 1; dr++ {
		rr := r + dr
		if rr < 0 || rr >= h {
			continue
		}
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			cc := (c + dc + w) % w
			if g[rr][cc] {
				n++
			}
		}
	}
	return n
}

// SeedNoise populates the grid from simplex noise: a cell turns alive where
// the normalized noise value exceeds 1-density. A fixed seed reproduces the
// same pattern.
func (g Grid) SeedNoise(seed int64, density float64) {
	if density <= 0 {
		return
	}
	noise := opensimplex.NewNormalized(seed)
	for r := range g {
		for c := range g[r] {
			g[r][c] = noise.Eval2(float64(c)*0.3, float64(r)*0.3) > 1-density
		}
	}
}
