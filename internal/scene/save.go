package scene

import (
	"rogue-engine/internal/entity"
	"rogue-engine/internal/savefile"
)

// Save writes the scene. The reader side needs entity registries in its
// meta info.
func (s *Scene) Save(w savefile.Writer) {
	w.WriteString(s.ID)
	w.WriteBool(s.OneTime)
	savefile.WriteMatrix(w, s.terrain, func(w savefile.Writer, t entity.Terrain) { entity.Save(w, t) })
	savefile.WriteList(w, s.actors, func(w savefile.Writer, a entity.Actor) { entity.Save(w, a) })
	savefile.WriteList(w, s.items, func(w savefile.Writer, it entity.ItemAt) {
		w.WritePoint(it.Pos)
		entity.Save(w, it.Item)
	})
	savefile.WriteList(w, s.appliances, func(w savefile.Writer, a ApplianceAt) {
		w.WritePoint(a.Pos)
		entity.Save(w, a.Appliance)
	})
}

// Load reads a scene written by Save. On failure the error is on r and the
// result is nil.
func Load(r savefile.Reader) *Scene {
	s := &Scene{}
	s.ID = r.ReadString()
	s.OneTime = r.ReadBool()
	s.terrain = savefile.ReadMatrix(r, func(r savefile.Reader) entity.Terrain {
		return entity.Load[entity.Terrain](r, entity.KindTerrain)
	})
	s.actors = savefile.ReadList(r, func(r savefile.Reader) entity.Actor {
		return entity.Load[entity.Actor](r, entity.KindActors)
	})
	s.items = savefile.ReadList(r, func(r savefile.Reader) entity.ItemAt {
		pos := r.ReadPoint()
		return entity.ItemAt{Pos: pos, Item: entity.Load[entity.Item](r, entity.KindItems)}
	})
	s.appliances = savefile.ReadList(r, func(r savefile.Reader) ApplianceAt {
		pos := r.ReadPoint()
		return ApplianceAt{Pos: pos, Appliance: entity.Load[entity.Appliance](r, entity.KindAppliances)}
	})
	if r.Err() != nil {
		return nil
	}
	return s
}
