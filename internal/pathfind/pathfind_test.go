package pathfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rogue-engine/internal/geom"
)

// grid parses rows where '#' is a wall, '+' a cell that forbids diagonal
// steps, and anything else open floor.
func grid(rows ...string) (geom.Size, Passable) {
	size := geom.Sz(len(rows[0]), len(rows))
	at := func(p geom.Point) byte { return rows[p.Y][p.X] }
	return size, func(to, from geom.Point) bool {
		if at(to) == '#' {
			return false
		}
		if geom.IsDiagonal(to.Sub(from)) {
			return at(to) != '+' && at(from) != '+'
		}
		return true
	}
}

func assertLegal(t *testing.T, path []geom.Point, passable Passable) {
	t.Helper()
	for i := 1; i < len(path); i++ {
		assert.Equal(t, 1, geom.Distance(path[i-1], path[i]), "step %d is not a unit step", i)
		assert.True(t, passable(path[i], path[i-1]), "step %d from %v to %v is illegal", i, path[i-1], path[i])
	}
}

func TestFindPathThroughDoor(t *testing.T) {
	size, passable := grid(
		"....#....",
		"....#....",
		"....+....",
		"....#....",
	)
	start, dest := geom.Pt(0, 0), geom.Pt(8, 3)
	path := FindPath(size, start, passable, Destination(dest))
	require.NotNil(t, path)
	assert.Equal(t, start, path[0])
	assert.Equal(t, dest, path[len(path)-1])
	assert.Contains(t, path, geom.Pt(4, 2))
	assertLegal(t, path, passable)
}

func TestFindPathUnreachable(t *testing.T) {
	size, passable := grid(
		"..#..",
		"..#..",
	)
	assert.Nil(t, FindPath(size, geom.Pt(0, 0), passable, Destination(geom.Pt(4, 1))))
}

func TestFindPathShortest(t *testing.T) {
	size, passable := grid(
		".....",
		".....",
		".....",
	)
	path := FindPath(size, geom.Pt(0, 0), passable, Destination(geom.Pt(4, 2)))
	assert.Len(t, path, 5)
	assertLegal(t, path, passable)
}

func TestFrontierPicksRowMajorFirst(t *testing.T) {
	size, passable := grid(
		".....",
		".....",
		".....",
	)
	explored := func(p geom.Point) bool { return p.X < 3 }
	path := FindPath(size, geom.Pt(0, 1), passable, Frontier(size, explored))
	require.NotNil(t, path)
	assert.Equal(t, geom.Pt(2, 0), path[len(path)-1])
}
