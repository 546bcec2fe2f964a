package builders

import (
	"math/rand"
	"slices"

	"rogue-engine/internal/geom"
	"rogue-engine/internal/pcg"
)

// Rogue lays out a grid of walled rooms joined by tunnels. Every tunnel
// starts and ends with a door.
type Rogue struct {
	Grid    geom.Size
	MinRoom geom.Size
	Margin  int
	// LinkRemovals is how many times a random link is dropped, provided the
	// rooms stay connected.
	LinkRemovals int

	rooms map[geom.Point]geom.Rect
}

// NewRogue returns the classic 3x3 room grid.
func NewRogue() *Rogue {
	return &Rogue{Grid: geom.Sz(3, 3), MinRoom: geom.Sz(4, 4), Margin: 1, LinkRemovals: 5}
}

type roomLink struct{ a, b geom.Point }

// Rooms returns the room rectangles by grid cell, walls included.
func (l *Rogue) Rooms() map[geom.Point]geom.Rect { return l.rooms }

func (l *Rogue) Fill(rng *rand.Rand, grid *geom.Matrix[string]) error {
	size := grid.Size()
	cell := geom.Sz(size.W/l.Grid.W, size.H/l.Grid.H)
	if cell.W < l.MinRoom.W+2*l.Margin+1 || cell.H < l.MinRoom.H+2*l.Margin+1 {
		return ErrTooSmall
	}
	maxRoom := geom.Sz(max(cell.W-2*l.Margin, l.MinRoom.W), max(cell.H-2*l.Margin, l.MinRoom.H))

	l.rooms = map[geom.Point]geom.Rect{}
	cells := geom.RectAt(geom.Point{}, l.Grid).Points()
	for _, c := range cells {
		room := geom.Sz(
			pcg.Range(rng, l.MinRoom.W, maxRoom.W+1),
			pcg.Range(rng, l.MinRoom.H, maxRoom.H+1),
		)
		topleft := geom.Pt(
			c.X*cell.W+pcg.Range(rng, 0, cell.W-room.W-1),
			c.Y*cell.H+pcg.Range(rng, 0, cell.H-room.H-1),
		)
		// Walls sit on both ends, so the room spans size+1 cells.
		l.rooms[c] = geom.Rect{X1: topleft.X, Y1: topleft.Y, X2: topleft.X + room.W, Y2: topleft.Y + room.H}
	}

	links := l.links(rng, cells)

	grid.Fill(geom.RectAt(geom.Point{}, size), Void)
	for _, c := range cells {
		r := l.rooms[c]
		grid.Fill(r, WallH)
		grid.Fill(geom.Rect{X1: r.X1, Y1: r.Y1 + 1, X2: r.X1, Y2: r.Y2 - 1}, WallV)
		grid.Fill(geom.Rect{X1: r.X2, Y1: r.Y1 + 1, X2: r.X2, Y2: r.Y2 - 1}, WallV)
		for _, p := range []geom.Point{r.TopLeft(), r.BottomRight(), geom.Pt(r.X2, r.Y1), geom.Pt(r.X1, r.Y2)} {
			grid.Set(p, Corner)
		}
		grid.Fill(r.Grow(-1), Floor)
	}
	for _, link := range links {
		l.tunnel(rng, grid, link)
	}
	return nil
}

func (l *Rogue) IsOpen(key string) bool { return key == Floor }

// links starts from the full grid graph and drops random links while every
// room stays reachable. The result is sorted.
func (l *Rogue) links(rng *rand.Rand, cells []geom.Point) []roomLink {
	var all []roomLink
	for _, c := range cells {
		if c.X+1 < l.Grid.W {
			all = append(all, roomLink{c, geom.Pt(c.X+1, c.Y)})
		}
		if c.Y+1 < l.Grid.H {
			all = append(all, roomLink{c, geom.Pt(c.X, c.Y+1)})
		}
	}
	sortLinks(all)
	for range l.LinkRemovals {
		if len(all) == 0 {
			break
		}
		i := rng.Intn(len(all))
		rest := slices.Delete(slices.Clone(all), i, i+1)
		if connected(cells, rest) {
			all = rest
		}
	}
	return all
}

func sortLinks(links []roomLink) {
	slices.SortFunc(links, func(x, y roomLink) int {
		if c := comparePair(x.a, y.a); c != 0 {
			return c
		}
		return comparePair(x.b, y.b)
	})
}

// comparePair orders grid cells by column, then by row.
func comparePair(a, b geom.Point) int {
	if a.X != b.X {
		return a.X - b.X
	}
	return a.Y - b.Y
}

func connected(cells []geom.Point, links []roomLink) bool {
	if len(cells) == 0 {
		return true
	}
	adj := map[geom.Point][]geom.Point{}
	for _, link := range links {
		adj[link.a] = append(adj[link.a], link.b)
		adj[link.b] = append(adj[link.b], link.a)
	}
	seen := map[geom.Point]bool{cells[0]: true}
	queue := []geom.Point{cells[0]}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, n := range adj[c] {
			if !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(seen) == len(cells)
}

// tunnel digs a passage between two neighbouring rooms, bending once at a
// random column (or row) strictly between them.
func (l *Rogue) tunnel(rng *rand.Rand, grid *geom.Matrix[string], link roomLink) {
	from, to := l.rooms[link.a], l.rooms[link.b]
	var start, stop geom.Point
	var points []geom.Point
	if link.a.Y == link.b.Y {
		start = geom.Pt(from.X2, pcg.Range(rng, from.Y1+1, from.Y2))
		stop = geom.Pt(to.X1, pcg.Range(rng, to.Y1+1, to.Y2))
		bend := start.X + pcg.Range(rng, 1, stop.X-start.X)
		for x := start.X; x <= stop.X; x++ {
			if x < bend {
				points = append(points, geom.Pt(x, start.Y))
			} else if x > bend {
				points = append(points, geom.Pt(x, stop.Y))
			} else {
				points = append(points, geom.Line(geom.Pt(x, start.Y), geom.Pt(x, stop.Y))...)
			}
		}
	} else {
		start = geom.Pt(pcg.Range(rng, from.X1+1, from.X2), from.Y2)
		stop = geom.Pt(pcg.Range(rng, to.X1+1, to.X2), to.Y1)
		bend := start.Y + pcg.Range(rng, 1, stop.Y-start.Y)
		for y := start.Y; y <= stop.Y; y++ {
			if y < bend {
				points = append(points, geom.Pt(start.X, y))
			} else if y > bend {
				points = append(points, geom.Pt(stop.X, y))
			} else {
				points = append(points, geom.Line(geom.Pt(start.X, y), geom.Pt(stop.X, y))...)
			}
		}
	}
	for _, p := range points {
		grid.Set(p, Passage)
	}
	grid.Set(start, RogueDoor)
	grid.Set(stop, RogueDoor)
}

// PlaceStartExit puts the start in a random room and the exit in another.
func (l *Rogue) PlaceStartExit(rng *rand.Rand, b *Builder) (geom.Point, geom.Point, error) {
	cells := geom.RectAt(geom.Point{}, l.Grid).Points()
	if len(cells) < 2 {
		return geom.Point{}, geom.Point{}, ErrTooSmall
	}
	inside := func(r geom.Rect) geom.Point { return pcg.PointIn(rng, r.Grow(-1)) }

	i := rng.Intn(len(cells))
	start := inside(l.rooms[cells[i]])
	j := rng.Intn(len(cells) - 1)
	if j >= i {
		j++
	}
	exit := inside(l.rooms[cells[j]])
	return start, exit, nil
}
