package geom

// Directions holds the eight unit shifts, orthogonal ones first.
var Directions = []Point{
	{0, -1}, {1, 0}, {0, 1}, {-1, 0},
	{-1, -1}, {1, -1}, {1, 1}, {-1, 1},
}

// Orthogonal holds the four axis-aligned unit shifts.
var Orthogonal = Directions[:4]

// Neighbours returns the eight cells surrounding p that lie inside size.
func Neighbours(p Point, size Size) []Point {
	out := make([]Point, 0, 8)
	for _, d := range Directions {
		if n := p.Add(d); size.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}

// Sign clamps each component of p to -1, 0 or 1.
func Sign(p Point) Point {
	return Point{sign(p.X), sign(p.Y)}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Line returns the Bresenham line from a to b, both ends included.
func Line(a, b Point) []Point {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	err := dx + dy
	out := make([]Point, 0, max(dx, -dy)+1)
	p := a
	for {
		out = append(out, p)
		if p == b {
			return out
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			p.X += sx
		}
		if e2 <= dx {
			err += dx
			p.Y += sy
		}
	}
}
