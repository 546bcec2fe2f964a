package builders

import "rogue-engine/internal/entity"

type (
	ActorFactory     func(args ...string) entity.Actor
	ItemFactory      func(args ...string) entity.Item
	ApplianceFactory func(args ...string) entity.Appliance
)

// Mapping resolves symbolic keys into entities. Keys missing here are looked
// up in Default.
type Mapping struct {
	// Terrain prototypes are cloned for every cell.
	Terrain    map[string]entity.Terrain
	Actors     map[string]ActorFactory
	Items      map[string]ItemFactory
	Appliances map[string]ApplianceFactory
	Default    *Mapping
}

func (m *Mapping) terrain(key string) (entity.Terrain, bool) {
	for ; m != nil; m = m.Default {
		if t, ok := m.Terrain[key]; ok {
			return t, true
		}
	}
	return nil, false
}

func (m *Mapping) actor(key string) (ActorFactory, bool) {
	for ; m != nil; m = m.Default {
		if f, ok := m.Actors[key]; ok {
			return f, true
		}
	}
	return nil, false
}

func (m *Mapping) item(key string) (ItemFactory, bool) {
	for ; m != nil; m = m.Default {
		if f, ok := m.Items[key]; ok {
			return f, true
		}
	}
	return nil, false
}

func (m *Mapping) appliance(key string) (ApplianceFactory, bool) {
	for ; m != nil; m = m.Default {
		if f, ok := m.Appliances[key]; ok {
			return f, true
		}
	}
	return nil, false
}
