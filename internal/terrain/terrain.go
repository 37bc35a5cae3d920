// Package terrain generates and mutates the 1-D heightmap the world stands
// on. A surface stores, per column, the row of the topmost solid cell; rows
// grow downward, so raising the ground means a smaller row value.
package terrain

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/terrarium/internal/entropy"
)

// Surface maps column index to the topmost solid row.
type Surface []int

// Flat returns a level surface with its baseline marginFromBottom rows above
// the bottom of the world.
func Flat(width, height, marginFromBottom int) Surface {
	if marginFromBottom < 1 {
		marginFromBottom = 1
	}
	baseline := height - marginFromBottom
	if baseline < 0 {
		baseline = 0
	}
	s := make(Surface, max(0, width))
	for i := range s {
		s[i] = baseline
	}
	return s
}

// Generate builds a bounded random-walk surface. The baseline sits
// seaLevelOffset rows above the bottom and each column drifts by at most one
// row from its neighbor, clamped to baseline±amplitude. A fixed non-zero seed
// reproduces the same surface.
func Generate(width, height, seaLevelOffset, amplitude int, seed int64) Surface {
	width = max(0, width)
	height = max(1, height)
	baseline := height - max(0, seaLevelOffset)
	lo := max(0, baseline-max(0, amplitude))
	hi := min(height-1, baseline+max(0, amplitude))

	src := entropy.NewSource(seed)
	y := min(max(lo, baseline), hi)
	s := make(Surface, width)
	for i := range s {
		y += src.IntN(3) - 1
		if y < lo {
			y = lo
		}
		if y > hi {
			y = hi
		}
		s[i] = y
	}
	return s
}

// GenerateNoise builds a surface from layered simplex noise instead of a
// random walk. The result respects the same baseline±amplitude envelope as
// Generate but rolls smoothly, which reads better on wide worlds.
func GenerateNoise(width, height, seaLevelOffset, amplitude int, seed int64) Surface {
	width = max(0, width)
	height = max(1, height)
	baseline := height - max(0, seaLevelOffset)
	lo := max(0, baseline-max(0, amplitude))
	hi := min(height-1, baseline+max(0, amplitude))

	noise := opensimplex.NewNormalized(seed)
	s := make(Surface, width)
	for x := range s {
		// Two octaves are plenty for a one-row-per-column silhouette.
		n := noise.Eval2(float64(x)*0.08, 0)*0.7 + noise.Eval2(float64(x)*0.21, 10)*0.3
		y := lo + int(n*float64(hi-lo)+0.5)
		if y < lo {
			y = lo
		}
		if y > hi {
			y = hi
		}
		s[x] = y
	}
	return s
}

// BuryAt raises the ground at column x by one row. The surface never rises
// above row zero.
func (s Surface) BuryAt(x int) {
	if len(s) == 0 {
		return
	}
	i := wrap(x, len(s))
	if s[i] > 0 {
		s[i]--
	}
}

// DigAt lowers the ground at column x so the surface row is at least
// atLeastRow, freeing the cell directly above it. The surface never drops
// below the last world row.
func (s Surface) DigAt(x, atLeastRow, worldHeight int) {
	if len(s) == 0 {
		return
	}
	i := wrap(x, len(s))
	row := s[i]
	if atLeastRow > row {
		row = atLeastRow
	}
	if row > worldHeight-1 {
		row = worldHeight - 1
	}
	s[i] = row
}

func wrap(x, n int) int {
	x %= n
	if x < 0 {
		x += n
	}
	return x
}
