package builders

import (
	"math/rand"

	"rogue-engine/internal/geom"
	"rogue-engine/internal/pcg"
)

// split is one node of a binary space partition. Vertical splits divide
// the area with a column at Door.X, horizontal ones with a row at Door.Y.
type split struct {
	Area     geom.Rect
	Vertical bool
	Door     geom.Point
}

// partition recursively splits area, calling emit for the parent before its
// left (or top) and right (or bottom) halves. Areas no wider than minSize.W
// and no taller than minSize.H are left whole; with unfitEither one short
// side is enough.
func partition(rng *rand.Rand, area geom.Rect, minSize geom.Size, unfitEither bool, emit func(split)) {
	tooNarrow := area.X2-area.X1 <= minSize.W
	tooLow := area.Y2-area.Y1 <= minSize.H
	if unfitEither && (tooNarrow || tooLow) || tooNarrow && tooLow {
		return
	}
	var vertical bool
	switch {
	case tooNarrow:
		vertical = false
	case tooLow:
		vertical = true
	default:
		vertical = rng.Intn(2) == 0
	}

	user := geom.Rect{X1: area.X1 + 2, Y1: area.Y1 + 2, X2: area.X2, Y2: area.Y2}
	if user.X2 < user.X1 || user.Y2 < user.Y1 {
		return
	}
	randomDoor := func() geom.Point {
		return geom.Pt(
			pcg.Range(rng, user.X1, user.X2),
			pcg.Range(rng, user.Y1, user.Y2),
		)
	}

	var door geom.Point
	if unfitEither {
		// Buildings need room on both sides of the road.
		found := false
		for range user.Width() * user.Height() {
			door = randomDoor()
			if vertical {
				found = door.X >= user.X1+minSize.W && door.X <= user.X2+1-minSize.W
			} else {
				found = door.Y >= user.Y1+minSize.H && door.Y <= user.Y2+1-minSize.H
			}
			if found {
				break
			}
		}
		if !found {
			return
		}
	} else {
		door = randomDoor()
	}

	emit(split{Area: area, Vertical: vertical, Door: door})
	if vertical {
		partition(rng, geom.Rect{X1: area.X1, Y1: area.Y1, X2: door.X - 1, Y2: area.Y2}, minSize, unfitEither, emit)
		partition(rng, geom.Rect{X1: door.X + 1, Y1: area.Y1, X2: area.X2, Y2: area.Y2}, minSize, unfitEither, emit)
	} else {
		partition(rng, geom.Rect{X1: area.X1, Y1: area.Y1, X2: area.X2, Y2: door.Y - 1}, minSize, unfitEither, emit)
		partition(rng, geom.Rect{X1: area.X1, Y1: door.Y + 1, X2: area.X2, Y2: area.Y2}, minSize, unfitEither, emit)
	}
}

// dividerLine returns the cells of the split's dividing line.
func (s split) dividerLine() geom.Rect {
	if s.Vertical {
		return geom.Rect{X1: s.Door.X, Y1: s.Area.Y1, X2: s.Door.X, Y2: s.Area.Y2}
	}
	return geom.Rect{X1: s.Area.X1, Y1: s.Door.Y, X2: s.Area.X2, Y2: s.Door.Y}
}

// BSP partitions the map into rooms separated by walls with one door each.
type BSP struct {
	MinRoom geom.Size
}

// NewBSP returns a BSP layout with rooms of at least 15x10.
func NewBSP() *BSP { return &BSP{MinRoom: geom.Sz(15, 10)} }

func (l *BSP) Fill(rng *rand.Rand, grid *geom.Matrix[string]) error {
	size := grid.Size()
	if size.W < 3 || size.H < 3 {
		return ErrTooSmall
	}
	grid.Fill(geom.RectAt(geom.Point{}, size), Wall)
	inner := geom.Rect{X1: 1, Y1: 1, X2: size.W - 2, Y2: size.H - 2}
	grid.Fill(inner, Floor)
	partition(rng, inner, l.MinRoom, false, func(s split) {
		grid.Fill(s.Area, Floor)
		grid.Fill(s.dividerLine(), Wall)
		grid.Set(s.Door, Floor)
	})
	return nil
}

func (l *BSP) IsOpen(key string) bool { return key == Floor }

// City partitions the map into solid buildings separated by three cells
// wide roads.
type City struct {
	MinBlock geom.Size
}

// NewCity returns a City layout with blocks of at least 8x7.
func NewCity() *City { return &City{MinBlock: geom.Sz(8, 7)} }

const buildingMargin = 3

func (l *City) Fill(rng *rand.Rand, grid *geom.Matrix[string]) error {
	size := grid.Size()
	if size.W < 3 || size.H < 3 {
		return ErrTooSmall
	}
	grid.Fill(geom.RectAt(geom.Point{}, size), Wall)
	inner := geom.Rect{X1: 1, Y1: 1, X2: size.W - 2, Y2: size.H - 2}
	grid.Fill(inner, Floor)
	partition(rng, inner, l.MinBlock, true, func(s split) {
		grid.Fill(s.Area.Grow(-buildingMargin), Wall)
		road := s.dividerLine()
		if s.Vertical {
			road.X1, road.X2 = road.X1-1, road.X2+1
		} else {
			road.Y1, road.Y2 = road.Y1-1, road.Y2+1
		}
		grid.Fill(clip(road, s.Area), Floor)
		grid.Set(s.Door, Floor)
	})
	return nil
}

func (l *City) IsOpen(key string) bool { return key == Floor }

func clip(r, bounds geom.Rect) geom.Rect {
	return geom.Rect{
		X1: max(r.X1, bounds.X1),
		Y1: max(r.Y1, bounds.Y1),
		X2: min(r.X2, bounds.X2),
		Y2: min(r.Y2, bounds.Y2),
	}
}
