package builders

import (
	"math/rand"

	"rogue-engine/internal/geom"
)

// CorridorStyle selects the shape of connecting tunnels.
type CorridorStyle uint8

const (
	CorridorLShaped CorridorStyle = iota
	CorridorZShaped
	CorridorStraight
)

// Rooms carves rectangular rooms into the leaves of a binary tree and joins
// sibling subtrees with corridors.
type Rooms struct {
	MinLeafSize   int
	MaxLeafSize   int
	MinRoomSize   int
	RoomPadding   int
	CorridorStyle CorridorStyle

	rooms []geom.Rect
}

// NewRooms returns the default room-and-corridor layout.
func NewRooms() *Rooms {
	return &Rooms{MinLeafSize: 8, MaxLeafSize: 20, MinRoomSize: 4, RoomPadding: 1}
}

// Carved returns the rooms of the last fill in creation order.
func (l *Rooms) Carved() []geom.Rect { return l.rooms }

// leaf is a node in the partition tree.
type leaf struct {
	X, Y, W, H  int
	left, right *leaf
	room        *geom.Rect
}

// split divides the leaf into two children, returning false when the leaf is
// too small.
func (n *leaf) split(rng *rand.Rand, minLeaf int) bool {
	if n.left != nil || n.right != nil {
		return false
	}
	// Horizontal when taller, vertical when wider.
	splitH := rng.Intn(2) == 0
	if n.W > n.H && float64(n.W)/float64(n.H) >= 1.25 {
		splitH = false
	} else if n.H > n.W && float64(n.H)/float64(n.W) >= 1.25 {
		splitH = true
	}

	maxSize := n.H
	if !splitH {
		maxSize = n.W
	}
	if maxSize <= minLeaf*2 {
		return false
	}
	lo, hi := minLeaf, maxSize-minLeaf
	if lo >= hi {
		return false
	}
	at := lo + rng.Intn(hi-lo+1)

	if splitH {
		n.left = &leaf{X: n.X, Y: n.Y, W: n.W, H: at}
		n.right = &leaf{X: n.X, Y: n.Y + at, W: n.W, H: n.H - at}
	} else {
		n.left = &leaf{X: n.X, Y: n.Y, W: at, H: n.H}
		n.right = &leaf{X: n.X + at, Y: n.Y, W: n.W - at, H: n.H}
	}
	return true
}

// createRooms carves a room inside every terminal leaf.
func (l *Rooms) createRooms(rng *rand.Rand, grid *geom.Matrix[string], n *leaf) {
	if n.left != nil || n.right != nil {
		if n.left != nil {
			l.createRooms(rng, grid, n.left)
		}
		if n.right != nil {
			l.createRooms(rng, grid, n.right)
		}
		return
	}
	pad := l.RoomPadding
	minSize := l.MinRoomSize
	availW := max(n.W-2*pad, minSize)
	availH := max(n.H-2*pad, minSize)

	rw := minSize + rng.Intn(max(1, availW-minSize+1))
	rh := minSize + rng.Intn(max(1, availH-minSize+1))
	rw = max(min(rw, n.W-2*pad), 3)
	rh = max(min(rh, n.H-2*pad), 3)

	rx := n.X + pad + rng.Intn(max(1, n.W-rw-2*pad+1))
	ry := n.Y + pad + rng.Intn(max(1, n.H-rh-2*pad+1))

	// Keep a one-cell border around the map.
	size := grid.Size()
	rx, ry = max(rx, 1), max(ry, 1)
	if rx+rw >= size.W {
		rw = size.W - rx - 1
	}
	if ry+rh >= size.H {
		rh = size.H - ry - 1
	}
	if rw < 3 || rh < 3 {
		return
	}

	room := geom.Rect{X1: rx, Y1: ry, X2: rx + rw - 1, Y2: ry + rh - 1}
	n.room = &room
	grid.Fill(room, Floor)
	l.rooms = append(l.rooms, room)
}

// getRoom returns a room from this subtree, preferring the left side.
func (n *leaf) getRoom() *geom.Rect {
	if n.room != nil {
		return n.room
	}
	var lRoom, rRoom *geom.Rect
	if n.left != nil {
		lRoom = n.left.getRoom()
	}
	if n.right != nil {
		rRoom = n.right.getRoom()
	}
	if lRoom == nil {
		return rRoom
	}
	return lRoom
}

// connect carves corridors between the two children of every split leaf.
func (l *Rooms) connect(rng *rand.Rand, grid *geom.Matrix[string], n *leaf) {
	if n.left == nil || n.right == nil {
		return
	}
	l.connect(rng, grid, n.left)
	l.connect(rng, grid, n.right)

	lRoom, rRoom := n.left.getRoom(), n.right.getRoom()
	if lRoom == nil || rRoom == nil {
		return
	}
	l.corridor(rng, grid, lRoom.Center(), rRoom.Center())
}

func (l *Rooms) corridor(rng *rand.Rand, grid *geom.Matrix[string], a, b geom.Point) {
	switch l.CorridorStyle {
	case CorridorZShaped:
		midY := (a.Y + b.Y) / 2
		carveV(grid, a.Y, midY, a.X)
		carveH(grid, a.X, b.X, midY)
		carveV(grid, midY, b.Y, b.X)
	case CorridorStraight:
		carveH(grid, a.X, b.X, a.Y)
		carveV(grid, a.Y, b.Y, b.X)
	default:
		if rng.Intn(2) == 0 {
			carveH(grid, a.X, b.X, a.Y)
			carveV(grid, a.Y, b.Y, b.X)
		} else {
			carveV(grid, a.Y, b.Y, a.X)
			carveH(grid, a.X, b.X, b.Y)
		}
	}
}

func carveH(grid *geom.Matrix[string], x1, x2, y int) {
	grid.Fill(geom.Rect{X1: min(x1, x2), Y1: y, X2: max(x1, x2), Y2: y}, Floor)
}

func carveV(grid *geom.Matrix[string], y1, y2, x int) {
	grid.Fill(geom.Rect{X1: x, Y1: min(y1, y2), X2: x, Y2: max(y1, y2)}, Floor)
}

func (l *Rooms) Fill(rng *rand.Rand, grid *geom.Matrix[string]) error {
	size := grid.Size()
	if size.W < l.MinRoomSize+2 || size.H < l.MinRoomSize+2 {
		return ErrTooSmall
	}
	grid.Fill(geom.RectAt(geom.Point{}, size), Wall)
	l.rooms = nil

	root := &leaf{W: size.W, H: size.H}
	leaves := []*leaf{root}
	for splitAny := true; splitAny; {
		splitAny = false
		var next []*leaf
		for _, n := range leaves {
			if n.left != nil || n.right != nil {
				next = append(next, n.left, n.right)
				continue
			}
			if n.W > l.MaxLeafSize || n.H > l.MaxLeafSize || rng.Float64() > 0.25 {
				if n.split(rng, l.MinLeafSize) {
					next = append(next, n.left, n.right)
					splitAny = true
					continue
				}
			}
			next = append(next, n)
		}
		leaves = next
	}

	l.createRooms(rng, grid, root)
	l.connect(rng, grid, root)
	if len(l.rooms) == 0 {
		return ErrTooSmall
	}
	return nil
}

func (l *Rooms) IsOpen(key string) bool { return key == Floor }

// PlaceStartExit puts the start at the center of the first room and the exit
// at the center of the last one.
func (l *Rooms) PlaceStartExit(rng *rand.Rand, b *Builder) (geom.Point, geom.Point, error) {
	if len(l.rooms) < 2 {
		start, err := b.Point(b.IsAccessible)
		if err != nil {
			return start, start, err
		}
		exit, err := b.Point(func(p geom.Point) bool { return p != start && b.IsAccessible(p) })
		return start, exit, err
	}
	return l.rooms[0].Center(), l.rooms[len(l.rooms)-1].Center(), nil
}
