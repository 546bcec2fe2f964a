package geom

// Point is a cell coordinate on a scene grid.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Add returns p shifted by d.
func (p Point) Add(d Point) Point { return Point{p.X + d.X, p.Y + d.Y} }

// Sub returns the shift that leads from o to p.
func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

// Distance is the Chebyshev (king-move) distance between two points.
func Distance(a, b Point) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

// IsDiagonal reports whether shift d moves along both axes.
func IsDiagonal(d Point) bool { return d.X != 0 && d.Y != 0 }

// Less orders points row-major (by Y, then X).
func Less(a, b Point) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}

// Compare is Less in the shape slices.SortFunc expects.
func Compare(a, b Point) int {
	switch {
	case Less(a, b):
		return -1
	case Less(b, a):
		return 1
	}
	return 0
}

// Size is a width/height pair.
type Size struct {
	W, H int
}

// Sz is shorthand for Size{w, h}.
func Sz(w, h int) Size { return Size{W: w, H: h} }

// Area returns W*H.
func (s Size) Area() int { return s.W * s.H }

// Contains reports whether p lies within [0,W) x [0,H).
func (s Size) Contains(p Point) bool {
	return p.X >= 0 && p.X < s.W && p.Y >= 0 && p.Y < s.H
}

// Rect is an axis-aligned rectangle with inclusive corners.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// RectAt builds a rect from its top-left corner and size.
func RectAt(topleft Point, size Size) Rect {
	return Rect{topleft.X, topleft.Y, topleft.X + size.W - 1, topleft.Y + size.H - 1}
}

// TopLeft returns the first corner.
func (r Rect) TopLeft() Point { return Point{r.X1, r.Y1} }

// BottomRight returns the last corner.
func (r Rect) BottomRight() Point { return Point{r.X2, r.Y2} }

// Width is the inclusive width.
func (r Rect) Width() int { return r.X2 - r.X1 + 1 }

// Height is the inclusive height.
func (r Rect) Height() int { return r.Y2 - r.Y1 + 1 }

// Size returns Width x Height.
func (r Rect) Size() Size { return Size{r.Width(), r.Height()} }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{(r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X1 && p.X <= r.X2 && p.Y >= r.Y1 && p.Y <= r.Y2
}

// Intersects reports whether r overlaps other (inclusive edges).
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

// Grow returns r expanded by n cells on every side (shrunk when n<0).
func (r Rect) Grow(n int) Rect {
	return Rect{r.X1 - n, r.Y1 - n, r.X2 + n, r.Y2 + n}
}

// Points lists every cell of r in row-major order.
func (r Rect) Points() []Point {
	if r.X2 < r.X1 || r.Y2 < r.Y1 {
		return nil
	}
	out := make([]Point, 0, r.Width()*r.Height())
	for y := r.Y1; y <= r.Y2; y++ {
		for x := r.X1; x <= r.X2; x++ {
			out = append(out, Point{x, y})
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
