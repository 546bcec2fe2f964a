package entity

import (
	"github.com/gdamore/tcell/v2"

	"rogue-engine/internal/events"
)

var (
	floorKind  = &TerrainKind{Key: "floor", Name: "floor", Sprite: Sprite{".", tcell.ColorWhite}, Passable: true}
	waterKind  = &TerrainKind{Key: "water", Name: "water", Sprite: Sprite{"~", tcell.ColorBlue}, Passable: true}
	daggerKind = &ItemKind{Key: "dagger", Name: "dagger", Attack: 2}
	armorKind  = &ItemKind{Key: "armor", Name: "leather armor", Protection: 3}
	robeKind   = &ItemKind{Key: "robe", Name: "robe", Protection: 1}
	potionKind = &ItemKind{Key: "potion", Name: "healing potion", Heal: 5}
	stoneKind  = &ItemKind{Key: "stone", Name: "stone"}
	keyKind    = &ItemKind{Key: "key", Name: "key"}
	statueKind = &ApplianceKind{Key: "statue", Name: "statue"}
	stairsKind = &ApplianceKind{Key: "stairs", Name: "stairs down", Direction: Down}
	gateKind   = &ApplianceKind{Key: "gate", Name: "locked gate", Direction: Down, KeyItem: "key"}
	ratKind    = &MonsterKind{
		Key: "rat", Name: "rat", MaxHP: 10, MaxInventory: 1, Attack: 1, Vision: 5,
		Behaviour: Offensive,
		HostileTo: []Hostility{HostileTo(Player)},
	}
	packRatKind = &MonsterKind{
		Key: "pack_rat", Name: "pack rat", MaxHP: 5, MaxInventory: 3,
		Behaviour: Defensive,
		Drops: DropTable{
			{{Weight: 1, Make: func() Item { return NewItem(stoneKind) }}},
			{{Weight: 1, Make: nil}, {Weight: 0, Make: func() Item { return NewItem(keyKind) }}},
		},
	}
	playerKind = &MonsterKind{
		Key: "player", Name: "you", MaxHP: 20, MaxInventory: 3, Attack: 1, Protection: 1,
		Behaviour: Player,
		HostileTo: []Hostility{HostileToStrangers},
	}
)

type fetchQuest struct {
	QuestBase
	Want string
}

func (q *fetchQuest) TypeKey() string                  { return "fetch" }
func (q *fetchQuest) Name() string                     { return "fetch" }
func (q *fetchQuest) Sprite() Sprite                   { return Sprite{} }
func (q *fetchQuest) Summary() string                  { return "bring " + q.Want }
func (q *fetchQuest) Check(ctx QuestContext) bool      { return ctx.Player().HasItem(q.Want) }
func (q *fetchQuest) Complete(QuestContext) []events.Event { q.Finish(); return nil }

func testRegistries() *Registries {
	rs := NewRegistries()
	rs.Terrain.Register("floor", func() Terrain { return NewTerrain(floorKind) })
	rs.Terrain.Register("water", func() Terrain { return NewWater(waterKind, 1) })
	rs.Items.Register("dagger", func() Item { return NewWeapon(daggerKind) })
	rs.Items.Register("armor", func() Item { return NewArmor(armorKind) })
	rs.Items.Register("robe", func() Item { return NewArmor(robeKind) })
	rs.Items.Register("potion", func() Item { return NewPotion(potionKind) })
	rs.Items.Register("stone", func() Item { return NewItem(stoneKind) })
	rs.Items.Register("key", func() Item { return NewItem(keyKind) })
	rs.Appliances.Register("statue", func() Appliance { return NewAppliance(statueKind) })
	rs.Appliances.Register("stairs", func() Appliance { return NewPassage(stairsKind) })
	rs.Actors.Register("rat", func() Actor { return NewMonster(ratKind) })
	rs.Actors.Register("pack_rat", func() Actor { return NewMonster(packRatKind) })
	rs.Actors.Register("player", func() Actor { return NewEquippedMonster(playerKind) })
	rs.Quests.Register("fetch", func() Quest { return &fetchQuest{} })
	return rs
}
