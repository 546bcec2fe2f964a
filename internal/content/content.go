package content

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"rogue-engine/internal/builders"
	"rogue-engine/internal/entity"
	"rogue-engine/internal/game"
	"rogue-engine/internal/geom"
)

// WaterDepth is the depth of generated water. Deeper water is impassable.
const WaterDepth = 1

// NewItem builds an item of kind k with the concrete type its stats call
// for.
func NewItem(k *entity.ItemKind) entity.Item {
	switch {
	case k.Heal > 0:
		return entity.NewPotion(k)
	case k.Attack > 0:
		return entity.NewWeapon(k)
	case k.Protection > 0:
		return entity.NewArmor(k)
	}
	return entity.NewItem(k)
}

// NewCreature builds a creature of kind k.
func NewCreature(k *entity.MonsterKind) entity.Creature {
	if equipped[k] {
		return entity.NewEquippedMonster(k)
	}
	return entity.NewMonster(k)
}

// NewAppliance builds an appliance of kind k. Passages take their id,
// destination level and destination passage from args.
func NewAppliance(k *entity.ApplianceKind, args ...string) entity.Appliance {
	if k.Direction == entity.Nowhere {
		return entity.NewAppliance(k)
	}
	p := entity.NewPassage(k)
	switch k.Direction {
	case entity.Down:
		p.ID, p.DestinationPassage = DownID, UpID
	case entity.Up:
		p.DestinationPassage = DownID
	}
	for i, dst := range []*string{&p.ID, &p.Destination, &p.DestinationPassage} {
		if i < len(args) {
			*dst = args[i]
		}
	}
	return p
}

// NewPlayer returns a fresh player wielding a dagger. It panics if the stock
// player kind cannot carry and wield it.
func NewPlayer() *entity.EquippedMonster {
	p := entity.NewEquippedMonster(Player)
	if err := arm(p, NewItem(Dagger)); err != nil {
		panic(fmt.Sprintf("content: starting weapon: %v", err))
	}
	return p
}

// arm grabs weapon and wields it.
func arm(m *entity.EquippedMonster, weapon entity.Item) error {
	if err := m.Grab(weapon); err != nil {
		return err
	}
	return m.Wield(weapon)
}

// Registries returns registries holding every stock type, for loading
// saves.
func Registries() *entity.Registries {
	rs := entity.NewRegistries()
	for _, k := range terrainKinds {
		rs.Terrain.Register(k.Key, func() entity.Terrain { return entity.NewTerrain(k) })
	}
	rs.Terrain.Register(Water.Key, func() entity.Terrain { return entity.NewWater(Water, 0) })
	for _, k := range itemKinds {
		rs.Items.Register(k.Key, func() entity.Item { return NewItem(k) })
	}
	for _, k := range applianceKinds {
		rs.Appliances.Register(k.Key, func() entity.Appliance { return NewAppliance(k) })
	}
	for _, k := range monsterKinds {
		rs.Actors.Register(k.Key, func() entity.Actor { return NewCreature(k) })
	}
	rs.Quests.Register(FetchQuestKey, func() entity.Quest { return &FetchQuest{} })
	return rs
}

// Mapping resolves every stock key for the level builders.
func Mapping() *builders.Mapping {
	m := &builders.Mapping{
		Terrain:    map[string]entity.Terrain{},
		Actors:     map[string]builders.ActorFactory{},
		Items:      map[string]builders.ItemFactory{},
		Appliances: map[string]builders.ApplianceFactory{},
	}
	for _, k := range terrainKinds {
		m.Terrain[k.Key] = entity.NewTerrain(k)
	}
	m.Terrain[Water.Key] = entity.NewWater(Water, WaterDepth)
	for _, k := range itemKinds {
		m.Items[k.Key] = func(...string) entity.Item { return NewItem(k) }
	}
	for _, k := range applianceKinds {
		m.Appliances[k.Key] = func(args ...string) entity.Appliance { return NewAppliance(k, args...) }
	}
	for _, k := range monsterKinds {
		m.Actors[k.Key] = func(...string) entity.Actor { return NewCreature(k) }
	}
	return m
}

// GameOptions returns the options of a new stock game with levels of the
// given size. A zero size means DefaultSize.
func GameOptions(seed int64, radius int, size geom.Size, log logrus.FieldLogger) game.Options {
	dungeon := NewDungeon(log)
	if size.W > 0 && size.H > 0 {
		dungeon.Size = size
	}
	return game.Options{
		Seed:         seed,
		Dungeon:      dungeon,
		Start:        StartLevel,
		Player:       NewPlayer(),
		Quests:       Quests(),
		VisionRadius: radius,
		Log:          log,
	}
}
