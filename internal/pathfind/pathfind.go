// Package pathfind implements the breadth-first wave search used for
// walking and for finding unexplored frontier cells.
package pathfind

import (
	"slices"

	"rogue-engine/internal/geom"
)

// Passable reports whether a single step from one cell to a neighbour is
// allowed.
type Passable func(to, from geom.Point) bool

// TargetFinder inspects a new wave, sorted row-major, and returns the cell
// to stop at.
type TargetFinder func(wave []geom.Point) (geom.Point, bool)

// FindPath expands waves from start over the eight neighbours allowed by
// passable until findTarget picks a cell of the newest wave. It returns the
// path from start to that cell, both included, or nil when the reachable
// area is exhausted without a target.
func FindPath(size geom.Size, start geom.Point, passable Passable, findTarget TargetFinder) []geom.Point {
	prev := map[geom.Point]geom.Point{start: start}
	wave := []geom.Point{start}
	// Each wave adds at least one new cell, so the area bounds the loop.
	for range size.Area() {
		var next []geom.Point
		for _, from := range wave {
			for _, to := range geom.Neighbours(from, size) {
				if _, used := prev[to]; used || !passable(to, from) {
					continue
				}
				prev[to] = from
				next = append(next, to)
			}
		}
		if len(next) == 0 {
			return nil
		}
		slices.SortFunc(next, geom.Compare)
		if target, ok := findTarget(next); ok {
			return trace(prev, start, target)
		}
		wave = next
	}
	return nil
}

func trace(prev map[geom.Point]geom.Point, start, target geom.Point) []geom.Point {
	path := []geom.Point{target}
	for p := target; p != start; {
		p = prev[p]
		path = append(path, p)
	}
	slices.Reverse(path)
	return path
}

// Destination stops the search as soon as dest is reached.
func Destination(dest geom.Point) TargetFinder {
	return func(wave []geom.Point) (geom.Point, bool) {
		_, found := slices.BinarySearchFunc(wave, dest, geom.Compare)
		return dest, found
	}
}

// IsFrontier reports whether p has an unexplored neighbour inside size.
func IsFrontier(p geom.Point, size geom.Size, explored func(geom.Point) bool) bool {
	for _, n := range geom.Neighbours(p, size) {
		if !explored(n) {
			return true
		}
	}
	return false
}

// Frontier stops at the first frontier cell of a wave in row-major order.
func Frontier(size geom.Size, explored func(geom.Point) bool) TargetFinder {
	return func(wave []geom.Point) (geom.Point, bool) {
		for _, p := range wave {
			if IsFrontier(p, size, explored) {
				return p, true
			}
		}
		return geom.Point{}, false
	}
}
