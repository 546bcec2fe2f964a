package vision

import (
	"slices"

	"rogue-engine/internal/entity"
	"rogue-engine/internal/events"
	"rogue-engine/internal/geom"
	"rogue-engine/internal/savefile"
	"rogue-engine/internal/scene"
)

// DefaultRadius is the player's sight radius.
const DefaultRadius = 10

// Vision is the player's view of one scene: what is visible right now,
// which cells were ever seen, and which entities were already discovered.
type Vision struct {
	radius   int
	visible  *geom.Matrix[bool]
	explored *geom.Matrix[bool]
	cells    []geom.Point
	viewer   entity.Actor
	seen     map[entity.Entity]bool
	revealed []geom.Point
}

// New returns an empty vision for a scene of the given size.
func New(size geom.Size, radius int) *Vision {
	return &Vision{
		radius:   radius,
		visible:  geom.NewMatrix(size, false),
		explored: geom.NewMatrix(size, false),
		seen:     map[entity.Entity]bool{},
	}
}

// Update recomputes visibility for viewer and marks every visible cell as
// explored. It fires nothing; call Discover for that.
func (v *Vision) Update(s *scene.Scene, viewer entity.Actor) {
	v.viewer = viewer
	for _, p := range v.cells {
		v.visible.Set(p, false)
	}
	v.cells = v.cells[:0]
	center := viewer.Pos()
	for _, p := range FieldOfView(center, v.radius, Transparency(s, center)) {
		if !v.visible.Valid(p) {
			continue
		}
		v.visible.Set(p, true)
		v.cells = append(v.cells, p)
		if !v.explored.At(p) {
			v.explored.Set(p, true)
			v.revealed = append(v.revealed, p)
		}
	}
	slices.SortFunc(v.cells, geom.Compare)
}

// Discover returns a Discover event for every actor, item and appliance in
// view that was never seen before, and for notable terrain on cells
// explored since the last call. Results are in row-major cell order.
func (v *Vision) Discover(s *scene.Scene) []events.Discover {
	var out []events.Discover
	see := func(e entity.Entity, kind events.DiscoverKind, p geom.Point) {
		if v.seen[e] {
			return
		}
		v.seen[e] = true
		out = append(out, events.Discover{What: e, Kind: kind, Pos: p})
	}
	slices.SortFunc(v.revealed, geom.Compare)
	for _, p := range v.revealed {
		if t := s.Terrain(p); t != nil && t.Kind().Notable {
			out = append(out, events.Discover{What: t, Kind: events.DiscoverTerrain, Pos: p})
		}
	}
	v.revealed = v.revealed[:0]
	for _, p := range v.cells {
		for _, a := range s.ActorsAt(p) {
			if a != v.viewer {
				see(a, events.DiscoverActor, p)
			}
		}
		for _, it := range s.ItemsAt(p) {
			see(it, events.DiscoverItem, p)
		}
		for _, ap := range s.AppliancesAt(p) {
			see(ap, events.DiscoverAppliance, p)
		}
	}
	return out
}

// IsVisible reports whether p is in view.
func (v *Vision) IsVisible(p geom.Point) bool {
	ok, _ := v.visible.Get(p)
	return ok
}

// IsExplored reports whether p was ever in view.
func (v *Vision) IsExplored(p geom.Point) bool {
	ok, _ := v.explored.Get(p)
	return ok
}

// VisibleCells lists the cells in view in row-major order.
func (v *Vision) VisibleCells() []geom.Point { return slices.Clone(v.cells) }

// VisibleActors returns the actors in view other than the viewer.
func (v *Vision) VisibleActors(s *scene.Scene) []entity.Actor {
	var out []entity.Actor
	for _, p := range v.cells {
		for _, a := range s.ActorsAt(p) {
			if a != v.viewer {
				out = append(out, a)
			}
		}
	}
	return out
}

// Save writes explored memory and, for each entity of s in scene order,
// whether it was discovered.
func (v *Vision) Save(w savefile.Writer, s *scene.Scene) {
	savefile.WriteMatrix(w, v.explored, func(w savefile.Writer, b bool) { w.WriteBool(b) })
	seen := func(w savefile.Writer, e entity.Entity) { w.WriteBool(v.seen[e]) }
	savefile.WriteList(w, s.Actors(), func(w savefile.Writer, a entity.Actor) { seen(w, a) })
	savefile.WriteList(w, s.Items(), func(w savefile.Writer, it entity.ItemAt) { seen(w, it.Item) })
	savefile.WriteList(w, s.Appliances(), func(w savefile.Writer, a scene.ApplianceAt) { seen(w, a.Appliance) })
}

// Load restores a vision saved for s. The scene must already be loaded.
func Load(r savefile.Reader, s *scene.Scene, radius int) *Vision {
	explored := savefile.ReadMatrix(r, func(r savefile.Reader) bool { return r.ReadBool() })
	if r.Err() != nil {
		return nil
	}
	v := New(explored.Size(), radius)
	v.explored = explored
	readBool := func(r savefile.Reader) bool { return r.ReadBool() }
	restore := func(flags []bool, ents []entity.Entity) {
		if len(flags) != len(ents) {
			r.Fail(savefile.ErrCorrupt)
			return
		}
		for i, ok := range flags {
			if ok {
				v.seen[ents[i]] = true
			}
		}
	}
	var ents []entity.Entity
	for _, a := range s.Actors() {
		ents = append(ents, a)
	}
	restore(savefile.ReadList(r, readBool), ents)
	ents = ents[:0]
	for _, it := range s.Items() {
		ents = append(ents, it.Item)
	}
	restore(savefile.ReadList(r, readBool), ents)
	ents = ents[:0]
	for _, a := range s.Appliances() {
		ents = append(ents, a.Appliance)
	}
	restore(savefile.ReadList(r, readBool), ents)
	if r.Err() != nil {
		return nil
	}
	return v
}

// CanSee is the monster line of sight test: target must be within the
// monster's vision range with nothing opaque in between.
func CanSee(s *scene.Scene, viewer entity.Creature, target geom.Point) bool {
	from := viewer.Pos()
	if geom.Distance(from, target) > viewer.Monster().Vision() {
		return false
	}
	return InLineOfSight(from, target, Transparency(s, from))
}
