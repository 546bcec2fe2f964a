package geom

// Matrix is a dense row-major grid of T.
type Matrix[T any] struct {
	size  Size
	cells []T
}

// NewMatrix allocates a matrix with every cell set to fill.
func NewMatrix[T any](size Size, fill T) *Matrix[T] {
	m := &Matrix[T]{size: size, cells: make([]T, size.Area())}
	for i := range m.cells {
		m.cells[i] = fill
	}
	return m
}

// Size returns the matrix dimensions.
func (m *Matrix[T]) Size() Size { return m.size }

// Valid reports whether p is inside the matrix.
func (m *Matrix[T]) Valid(p Point) bool { return m.size.Contains(p) }

// At returns the value at p. Panics if p is outside.
func (m *Matrix[T]) At(p Point) T { return m.cells[m.index(p)] }

// Set stores v at p. Panics if p is outside.
func (m *Matrix[T]) Set(p Point, v T) { m.cells[m.index(p)] = v }

// Get returns the value at p and whether p was inside.
func (m *Matrix[T]) Get(p Point) (T, bool) {
	if !m.Valid(p) {
		var zero T
		return zero, false
	}
	return m.cells[m.index(p)], true
}

// Fill sets every cell of r (clipped to the matrix) to v.
func (m *Matrix[T]) Fill(r Rect, v T) {
	for _, p := range r.Points() {
		if m.Valid(p) {
			m.Set(p, v)
		}
	}
}

// Cells returns every cell in row-major order. The slice is shared.
func (m *Matrix[T]) Cells() []T { return m.cells }

// Each calls fn for every cell in row-major order.
func (m *Matrix[T]) Each(fn func(p Point, v T)) {
	for i, v := range m.cells {
		fn(Point{i % m.size.W, i / m.size.W}, v)
	}
}

func (m *Matrix[T]) index(p Point) int {
	if !m.Valid(p) {
		panic("geom: point outside matrix")
	}
	return p.Y*m.size.W + p.X
}
