// Package scene holds one level: its terrain grid and the actors, items and
// appliances placed on it.
package scene

import (
	"slices"

	"rogue-engine/internal/entity"
	"rogue-engine/internal/geom"
)

// ApplianceAt pairs an appliance with its position.
type ApplianceAt struct {
	Pos       geom.Point
	Appliance entity.Appliance
}

// Scene owns the terrain and entities of one level.
type Scene struct {
	// ID is the level id the scene was generated for.
	ID string
	// OneTime scenes are discarded when left.
	OneTime bool

	terrain    *geom.Matrix[entity.Terrain]
	actors     []entity.Actor
	items      []entity.ItemAt
	appliances []ApplianceAt
}

// New returns a scene over the given terrain grid.
func New(id string, terrain *geom.Matrix[entity.Terrain]) *Scene {
	return &Scene{ID: id, terrain: terrain}
}

func (s *Scene) Size() geom.Size          { return s.terrain.Size() }
func (s *Scene) Valid(p geom.Point) bool { return s.terrain.Valid(p) }

// Terrain returns the terrain at p, or nil outside the grid.
func (s *Scene) Terrain(p geom.Point) entity.Terrain {
	t, _ := s.terrain.Get(p)
	return t
}

// SetTerrain replaces the terrain at p.
func (s *Scene) SetTerrain(p geom.Point, t entity.Terrain) { s.terrain.Set(p, t) }

// IsPassable reports whether p is inside the grid on passable terrain.
func (s *Scene) IsPassable(p geom.Point) bool {
	t := s.Terrain(p)
	return t != nil && t.Passable()
}

// AllowsDiagonal reports whether a diagonal step may start or end at p.
func (s *Scene) AllowsDiagonal(p geom.Point) bool {
	t := s.Terrain(p)
	return t != nil && t.AllowsDiagonal()
}

// CanMove reports whether a single step from one cell to a neighbour is
// legal terrain-wise. A diagonal step needs both ends to allow diagonals.
func (s *Scene) CanMove(from, to geom.Point) bool {
	if !s.IsPassable(to) {
		return false
	}
	if geom.IsDiagonal(to.Sub(from)) {
		return s.AllowsDiagonal(from) && s.AllowsDiagonal(to)
	}
	return true
}

// Actors returns the actors in turn order.
func (s *Scene) Actors() []entity.Actor { return slices.Clone(s.actors) }

// AddActor appends a to the turn order.
func (s *Scene) AddActor(a entity.Actor) { s.actors = append(s.actors, a) }

// RemoveActor takes a out of the scene. It reports whether a was present.
func (s *Scene) RemoveActor(a entity.Actor) bool {
	i := slices.Index(s.actors, a)
	if i < 0 {
		return false
	}
	s.actors = slices.Delete(s.actors, i, i+1)
	return true
}

// ActorsAt returns the actors standing on p.
func (s *Scene) ActorsAt(p geom.Point) []entity.Actor {
	var out []entity.Actor
	for _, a := range s.actors {
		if a.Pos() == p {
			out = append(out, a)
		}
	}
	return out
}

// ActorAt returns the first actor standing on p, or nil.
func (s *Scene) ActorAt(p geom.Point) entity.Actor {
	for _, a := range s.actors {
		if a.Pos() == p {
			return a
		}
	}
	return nil
}

// Player returns the first creature with the player behaviour, or nil.
func (s *Scene) Player() entity.Creature {
	for _, a := range s.actors {
		if c, ok := a.(entity.Creature); ok && c.Monster().Behaviour() == entity.Player {
			return c
		}
	}
	return nil
}

// Items returns every item lying on the floor.
func (s *Scene) Items() []entity.ItemAt { return slices.Clone(s.items) }

// DropItem puts items on the floor.
func (s *Scene) DropItem(items ...entity.ItemAt) { s.items = append(s.items, items...) }

// ItemsAt returns the items lying on p, oldest first.
func (s *Scene) ItemsAt(p geom.Point) []entity.Item {
	var out []entity.Item
	for _, it := range s.items {
		if it.Pos == p {
			out = append(out, it.Item)
		}
	}
	return out
}

// TakeItem removes item from the floor. It reports whether it was there.
func (s *Scene) TakeItem(item entity.Item) bool {
	i := slices.IndexFunc(s.items, func(it entity.ItemAt) bool { return it.Item == item })
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true
}

// Appliances returns every appliance.
func (s *Scene) Appliances() []ApplianceAt { return slices.Clone(s.appliances) }

// AddAppliance places an appliance.
func (s *Scene) AddAppliance(a ...ApplianceAt) { s.appliances = append(s.appliances, a...) }

// AppliancesAt returns the appliances on p.
func (s *Scene) AppliancesAt(p geom.Point) []entity.Appliance {
	var out []entity.Appliance
	for _, a := range s.appliances {
		if a.Pos == p {
			out = append(out, a.Appliance)
		}
	}
	return out
}

// PassageAt returns the first level passage on p.
func (s *Scene) PassageAt(p geom.Point) *entity.LevelPassage {
	for _, a := range s.AppliancesAt(p) {
		if lp, ok := a.(*entity.LevelPassage); ok {
			return lp
		}
	}
	return nil
}

// PassageByID finds the level passage with the given id.
func (s *Scene) PassageByID(id string) (*entity.LevelPassage, geom.Point, bool) {
	for _, a := range s.appliances {
		if lp, ok := a.Appliance.(*entity.LevelPassage); ok && lp.ID == id {
			return lp, a.Pos, true
		}
	}
	return nil, geom.Point{}, false
}

// Cell is a read-only snapshot of everything on one grid cell.
type Cell struct {
	Pos        geom.Point
	Terrain    entity.Terrain
	Appliances []entity.Appliance
	Items      []entity.Item
	Actors     []entity.Actor
}

// IterCells returns snapshots of every cell of view that lies inside the
// grid, row by row.
func (s *Scene) IterCells(view geom.Rect) []Cell {
	var out []Cell
	for _, p := range view.Points() {
		if !s.Valid(p) {
			continue
		}
		out = append(out, Cell{
			Pos:        p,
			Terrain:    s.Terrain(p),
			Appliances: s.AppliancesAt(p),
			Items:      s.ItemsAt(p),
			Actors:     s.ActorsAt(p),
		})
	}
	return out
}
