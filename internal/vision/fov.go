// Package vision computes what actors can see: a radius-bounded raycast
// field of view with explored-cell memory for the player, and a plain line
// of sight test for monsters.
package vision

import (
	"rogue-engine/internal/geom"
	"rogue-engine/internal/scene"
)

// FieldOfView returns every cell visible from center within radius, in the
// order the rays reach them. A ray passes through transparent cells and
// stops at the first opaque one, which is still visible. The center is
// always visible.
func FieldOfView(center geom.Point, radius int, transparent func(geom.Point) bool) []geom.Point {
	span := 2*radius + 1
	seen := geom.NewMatrix(geom.Sz(span, span), false)
	origin := center.Sub(geom.Pt(radius, radius))
	mark := func(p geom.Point) bool {
		local := p.Sub(origin)
		if seen.At(local) {
			return false
		}
		seen.Set(local, true)
		return true
	}

	out := []geom.Point{center}
	mark(center)
	bound := span * span
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			// Ellipse test scaled by 4 to stay in integers.
			if 4*(dx*dx+dy*dy) > bound {
				continue
			}
			line := geom.Line(center, center.Add(geom.Pt(dx, dy)))
			for _, p := range line[1:] {
				if mark(p) {
					out = append(out, p)
				}
				if !transparent(p) {
					break
				}
			}
		}
	}
	return out
}

// InLineOfSight reports whether every cell between from and to is
// transparent. The end cells themselves are not tested.
func InLineOfSight(from, to geom.Point, transparent func(geom.Point) bool) bool {
	line := geom.Line(from, to)
	for _, p := range line[1 : len(line)-1] {
		if !transparent(p) {
			return false
		}
	}
	return true
}

// Transparency returns the transparency rule for a viewer standing at
// center: cells outside the scene and impassable terrain are opaque, and
// dark terrain is opaque beyond adjacency.
func Transparency(s *scene.Scene, center geom.Point) func(geom.Point) bool {
	return func(p geom.Point) bool {
		t := s.Terrain(p)
		if t == nil || !t.Passable() {
			return false
		}
		return !t.Dark() || geom.Distance(center, p) < 2
	}
}
