package builders

import (
	"math/rand"

	"rogue-engine/internal/geom"
)

// Maze carves a perfect maze over a coarse layout and expands every layout
// cell into a CellSize block of terrain.
type Maze struct {
	CellSize geom.Size
	Corridor string
}

// NewMaze returns a maze of single-cell tunnels.
func NewMaze() *Maze { return &Maze{CellSize: geom.Sz(1, 1), Corridor: TunnelFloor} }

// mazeOrders are the direction orders a walk tries from each room.
var mazeOrders = [][]geom.Point{
	{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}},
	{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}},
	{{X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}, {X: 1, Y: 0}},
	{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}},
}

func (l *Maze) layoutSize(size geom.Size) geom.Size {
	return geom.Sz(
		(size.W-2-(1-size.W%2))/l.CellSize.W,
		(size.H-2-(1-size.H%2))/l.CellSize.H,
	)
}

func (l *Maze) Fill(rng *rand.Rand, grid *geom.Matrix[string]) error {
	size := grid.Size()
	if l.CellSize.W <= 0 || l.CellSize.H <= 0 {
		return ErrTooSmall
	}
	layout := l.layoutSize(size)
	if layout.W < 1 || layout.H < 1 {
		return ErrTooSmall
	}
	carved := l.carve(rng, layout)

	grid.Fill(geom.RectAt(geom.Point{}, size), Wall)
	carved.Each(func(p geom.Point, open bool) {
		if !open {
			return
		}
		topleft := geom.Pt(1+p.X*l.CellSize.W, 1+p.Y*l.CellSize.H)
		grid.Fill(geom.RectAt(topleft, l.CellSize), l.Corridor)
	})
	return nil
}

func (l *Maze) IsOpen(key string) bool { return key == Floor || key == TunnelFloor }

// carve runs a hunt-and-kill walk. Rooms sit at even layout coordinates and
// every step opens the room two cells away plus the cell between.
func (l *Maze) carve(rng *rand.Rand, layout geom.Size) *geom.Matrix[bool] {
	carved := geom.NewMatrix(layout, false)
	rooms := geom.Sz((layout.W+1)/2, (layout.H+1)/2)
	current := geom.Pt(rng.Intn(rooms.W)*2, rng.Intn(rooms.H)*2)
	carved.Set(current, true)

	unvisited := func(p geom.Point, d geom.Point) (geom.Point, bool) {
		next := geom.Pt(p.X+d.X*2, p.Y+d.Y*2)
		open, ok := carved.Get(next)
		return next, ok && !open
	}
	for {
		moved := false
		for _, d := range mazeOrders[rng.Intn(len(mazeOrders))] {
			if next, ok := unvisited(current, d); ok {
				carved.Set(current.Add(d), true)
				carved.Set(next, true)
				current = next
				moved = true
				break
			}
		}
		if moved {
			continue
		}

		var candidates []geom.Point
		for y := 0; y < layout.H; y += 2 {
			for x := 0; x < layout.W; x += 2 {
				p := geom.Pt(x, y)
				if !carved.At(p) {
					continue
				}
				for _, d := range geom.Orthogonal {
					if _, ok := unvisited(p, d); ok {
						candidates = append(candidates, p)
						break
					}
				}
			}
		}
		if len(candidates) == 0 {
			return carved
		}
		current = candidates[rng.Intn(len(candidates))]
	}
}

// Sewers is a maze of wide corridors whose inner cells are flooded.
type Sewers struct {
	Maze
}

// NewSewers returns a sewer layout of 4x3 blocks.
func NewSewers() *Sewers {
	return &Sewers{Maze: Maze{CellSize: geom.Sz(4, 3), Corridor: Floor}}
}

func (l *Sewers) Fill(rng *rand.Rand, grid *geom.Matrix[string]) error {
	if err := l.Maze.Fill(rng, grid); err != nil {
		return err
	}
	size := grid.Size()
	var flooded []geom.Point
	grid.Each(func(p geom.Point, key string) {
		if key == Wall {
			return
		}
		for _, n := range geom.Neighbours(p, size) {
			if grid.At(n) == Wall {
				return
			}
		}
		flooded = append(flooded, p)
	})
	for _, p := range flooded {
		grid.Set(p, Water)
	}
	return nil
}

func (l *Sewers) IsOpen(key string) bool { return key == Floor }
