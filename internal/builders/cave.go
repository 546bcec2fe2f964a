package builders

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"rogue-engine/internal/geom"
)

// Cave grows organic caverns with a cellular automaton and keeps the
// largest one.
type Cave struct {
	FillRatio float64
	Steps     int
	// DarkThreshold marks floor cells whose noise value exceeds it as dark
	// ground. Zero disables darkness.
	DarkThreshold float64
	DarkScale     float64
}

// NewCave returns the default cave layout.
func NewCave() *Cave {
	return &Cave{FillRatio: 0.5, Steps: 5, DarkThreshold: 0.7, DarkScale: 6}
}

func (l *Cave) Fill(rng *rand.Rand, grid *geom.Matrix[string]) error {
	size := grid.Size()
	if size.W < 3 || size.H < 3 {
		return ErrTooSmall
	}
	inner := geom.Rect{X1: 1, Y1: 1, X2: size.W - 2, Y2: size.H - 2}
	wall := geom.NewMatrix(size, true)
	for _, p := range inner.Points() {
		wall.Set(p, rng.Float64() < l.FillRatio)
	}

	for step := range l.Steps {
		next := geom.NewMatrix(size, true)
		for _, p := range inner.Points() {
			near := countWalls(wall, p, 1, false)
			far := countWalls(wall, p, 2, true)
			next.Set(p, near >= 5 || step < l.Steps-1 && far <= 2)
		}
		wall = next
	}

	keep := largestCavern(wall)
	grid.Fill(geom.RectAt(geom.Point{}, size), Wall)
	for _, p := range keep {
		grid.Set(p, Floor)
	}

	if l.DarkThreshold > 0 && l.DarkScale > 0 {
		noise := opensimplex.NewNormalized(rng.Int63())
		for _, p := range keep {
			v := noise.Eval2(float64(p.X)/l.DarkScale, float64(p.Y)/l.DarkScale)
			if v > l.DarkThreshold {
				grid.Set(p, DarkFloor)
			}
		}
	}
	return nil
}

func (l *Cave) IsOpen(key string) bool { return key == Floor || key == DarkFloor }

// countWalls counts wall cells in the square of the given radius around p,
// p excluded. Cells outside the map count as walls unless validOnly is set.
func countWalls(wall *geom.Matrix[bool], p geom.Point, radius int, validOnly bool) int {
	n := 0
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			v, ok := wall.Get(geom.Pt(p.X+dx, p.Y+dy))
			if !ok {
				if !validOnly {
					n++
				}
				continue
			}
			if v {
				n++
			}
		}
	}
	return n
}

// largestCavern flood-fills open cells orthogonally and returns the cells of
// the biggest region, in discovery order. Ties keep the first region found
// in row-major order.
func largestCavern(wall *geom.Matrix[bool]) []geom.Point {
	seen := geom.NewMatrix(wall.Size(), false)
	var best []geom.Point
	wall.Each(func(p geom.Point, isWall bool) {
		if isWall || seen.At(p) {
			return
		}
		seen.Set(p, true)
		region := []geom.Point{p}
		for i := 0; i < len(region); i++ {
			for _, d := range geom.Orthogonal {
				n := region[i].Add(d)
				if w, ok := wall.Get(n); ok && !w && !seen.At(n) {
					seen.Set(n, true)
					region = append(region, n)
				}
			}
		}
		if len(region) > len(best) {
			best = region
		}
	})
	return best
}
