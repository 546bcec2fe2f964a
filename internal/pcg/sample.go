package pcg

import (
	"errors"
	"math/rand"
	"sort"

	"rogue-engine/internal/geom"
)

// ErrNoPlace is returned when no cell satisfies a placement check.
var ErrNoPlace = errors.New("no cell satisfies the placement check")

// DefaultTries bounds rejection sampling before the exhaustive fallback.
const DefaultTries = 1000

// Range returns a value in [lo, hi). When hi <= lo it returns lo.
func Range(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo)
}

// Point returns a uniformly random cell inside size.
func Point(rng *rand.Rand, size geom.Size) geom.Point {
	return geom.Pt(rng.Intn(size.W), rng.Intn(size.H))
}

// PointIn returns a uniformly random cell inside r.
func PointIn(rng *rand.Rand, r geom.Rect) geom.Point {
	return geom.Pt(Range(rng, r.X1, r.X2+1), Range(rng, r.Y1, r.Y2+1))
}

// PointWhere draws random cells inside size until check accepts one. After
// DefaultTries misses it scans the whole area and picks among the accepted
// cells, so it only fails when no cell qualifies at all.
func PointWhere(rng *rand.Rand, size geom.Size, check func(geom.Point) bool) (geom.Point, error) {
	if size.Area() <= 0 {
		return geom.Point{}, ErrNoPlace
	}
	for range DefaultTries {
		if p := Point(rng, size); check(p) {
			return p, nil
		}
	}
	var candidates []geom.Point
	for _, p := range geom.RectAt(geom.Point{}, size).Points() {
		if check(p) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return geom.Point{}, ErrNoPlace
	}
	return candidates[rng.Intn(len(candidates))], nil
}

// Choice picks one element uniformly. A single-element slice is returned
// without consuming a draw.
func Choice[T any](rng *rand.Rand, items []T) T {
	if len(items) == 1 {
		return items[0]
	}
	return items[rng.Intn(len(items))]
}

// WeightedChoice returns the index selected with probability proportional to
// weights[i]. It draws once and bisects the cumulative weights in declared
// order. Returns -1 when no weight is positive.
func WeightedChoice(rng *rand.Rand, weights []int) int {
	cum := make([]int, len(weights))
	total := 0
	for i, w := range weights {
		if w > 0 {
			total += w
		}
		cum[i] = total
	}
	if total <= 0 {
		return -1
	}
	r := rng.Intn(total)
	return sort.Search(len(cum), func(i int) bool { return cum[i] > r })
}

// Shuffled returns a shuffled copy of items.
func Shuffled[T any](rng *rand.Rand, items []T) []T {
	out := append([]T(nil), items...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
