// Package content is the stock game data: the terrain, creature, item and
// appliance kinds, the registries that rebuild them from a save, and the
// dungeon that lays them out level by level.
package content

import (
	"github.com/gdamore/tcell/v2"

	"rogue-engine/internal/builders"
	"rogue-engine/internal/entity"
)

func sprite(glyph string, color tcell.Color) entity.Sprite {
	return entity.Sprite{Glyph: glyph, Color: color}
}

// Terrain kinds, keyed by the symbolic keys the layouts write.
var (
	Floor = &entity.TerrainKind{
		Key: builders.Floor, Name: "floor", Passable: true,
		Sprite: sprite("·", tcell.ColorGray), Remembered: sprite("·", tcell.ColorDarkSlateGray),
	}
	Wall = &entity.TerrainKind{
		Key: builders.Wall, Name: "wall",
		Sprite: sprite("🧱", tcell.ColorSaddleBrown), Remembered: sprite("▓", tcell.ColorDimGray),
	}
	Door = &entity.TerrainKind{
		Key: builders.Door, Name: "door", Passable: true, NoDiagonal: true,
		Sprite: sprite("🚪", tcell.ColorBrown), Remembered: sprite("+", tcell.ColorDimGray),
	}
	DarkFloor = &entity.TerrainKind{
		Key: builders.DarkFloor, Name: "dark ground", Passable: true, Dark: true,
		Sprite: sprite("░", tcell.ColorDarkSlateGray), Remembered: sprite("░", tcell.ColorBlack),
	}
	TunnelFloor = &entity.TerrainKind{
		Key: builders.TunnelFloor, Name: "tunnel", Passable: true,
		Sprite: sprite("▪", tcell.ColorGray), Remembered: sprite("▪", tcell.ColorDarkSlateGray),
	}
	Water = &entity.TerrainKind{
		Key: builders.Water, Name: "water", Passable: true, Notable: true,
		Sprite: sprite("🌊", tcell.ColorDodgerBlue), Remembered: sprite("≈", tcell.ColorNavy),
	}
	Corner = &entity.TerrainKind{
		Key: builders.Corner, Name: "wall",
		Sprite: sprite("+", tcell.ColorTan),
	}
	WallH = &entity.TerrainKind{
		Key: builders.WallH, Name: "wall",
		Sprite: sprite("─", tcell.ColorTan),
	}
	WallV = &entity.TerrainKind{
		Key: builders.WallV, Name: "wall",
		Sprite: sprite("│", tcell.ColorTan),
	}
	Passage = &entity.TerrainKind{
		Key: builders.Passage, Name: "passage", Passable: true,
		Sprite: sprite("#", tcell.ColorSilver), Remembered: sprite("#", tcell.ColorDimGray),
	}
	RogueDoor = &entity.TerrainKind{
		Key: builders.RogueDoor, Name: "doorway", Passable: true, NoDiagonal: true,
		Sprite: sprite("+", tcell.ColorYellow), Remembered: sprite("+", tcell.ColorOlive),
	}
	Void = &entity.TerrainKind{Key: builders.Void, Name: "nothing", Sprite: sprite(" ", tcell.ColorDefault)}
)

var terrainKinds = []*entity.TerrainKind{
	Floor, Wall, Door, DarkFloor, TunnelFloor, Corner, WallH, WallV, Passage, RogueDoor, Void,
}

// Item kinds.
var (
	HealingPotion = &entity.ItemKind{Key: "healing_potion", Name: "healing potion", Heal: 5, Sprite: sprite("🧪", tcell.ColorFuchsia)}
	Dagger        = &entity.ItemKind{Key: "dagger", Name: "dagger", Attack: 1, Sprite: sprite("🔪", tcell.ColorSilver)}
	Sword         = &entity.ItemKind{Key: "sword", Name: "sword", Attack: 2, Sprite: sprite("🗡️", tcell.ColorSilver)}
	Axe           = &entity.ItemKind{Key: "axe", Name: "axe", Attack: 4, Sprite: sprite("🪓", tcell.ColorSilver)}
	Rags          = &entity.ItemKind{Key: "rags", Name: "rags", Protection: 1, Sprite: sprite("👕", tcell.ColorTan)}
	LeatherArmor  = &entity.ItemKind{Key: "leather_armor", Name: "leather armor", Protection: 2, Sprite: sprite("🦺", tcell.ColorBrown)}
	ChainMail     = &entity.ItemKind{Key: "chain_mail", Name: "chain mail", Protection: 3, Sprite: sprite("🥋", tcell.ColorSilver)}
	McGuffin      = &entity.ItemKind{Key: "mcguffin", Name: "McGuffin", Sprite: sprite("🏆", tcell.ColorGold)}
	Key           = &entity.ItemKind{Key: "key", Name: "key", Sprite: sprite("🔑", tcell.ColorGold)}
)

// Appliance kinds.
var (
	StairsDown   = &entity.ApplianceKind{Key: "stairs_down", Name: "stairs down", Direction: entity.Down, Sprite: sprite("🔽", tcell.ColorWhite)}
	StairsUp     = &entity.ApplianceKind{Key: "stairs_up", Name: "stairs up", Direction: entity.Up, Sprite: sprite("🔼", tcell.ColorWhite)}
	LockedStairs = &entity.ApplianceKind{Key: "locked_stairs", Name: "locked stairs", Direction: entity.Down, KeyItem: Key.Key, Sprite: sprite("🔒", tcell.ColorGold)}
	CaveMouth    = &entity.ApplianceKind{Key: "cave_mouth", Name: "cave mouth", Direction: entity.Down, Sprite: sprite("🕳️", tcell.ColorDarkGray)}
	Statue       = &entity.ApplianceKind{Key: "statue", Name: "statue", Sprite: sprite("🗿", tcell.ColorGray)}
)

// Passage ids. Going down lands on the next level's way up, going up lands
// on the previous level's way down.
const (
	UpID   = entity.DefaultPassageID
	DownID = "exit"
	CaveID = "cave"
)

func drop(weight int, k *entity.ItemKind) entity.Drop {
	if k == nil {
		return entity.Drop{Weight: weight}
	}
	return entity.Drop{Weight: weight, Make: func() entity.Item { return NewItem(k) }}
}

var animalDrops = entity.Flat(drop(70, nil), drop(20, HealingPotion), drop(5, Dagger), drop(5, Rags))

// Creature kinds.
var (
	Player = &entity.MonsterKind{
		Key: "player", Name: "you", Sprite: sprite("🧝", tcell.ColorYellow),
		MaxHP: 10, MaxInventory: 26, Attack: 1, Vision: 10,
		Behaviour: entity.Player,
		HostileTo: []entity.Hostility{entity.HostileToStrangers},
		Regen:     entity.Regeneration{Every: 10, Amount: 1},
	}
	Rat = &entity.MonsterKind{
		Key: "rat", Name: "rat", Sprite: sprite("🐀", tcell.ColorGray),
		MaxHP: 3, MaxInventory: 1, Attack: 1, Vision: 8,
		Behaviour: entity.Offensive,
		HostileTo: []entity.Hostility{entity.HostileTo(entity.Player)},
		Drops:     animalDrops,
	}
	PackRat = &entity.MonsterKind{
		Key: "pack_rat", Name: "pack rat", Sprite: sprite("🐁", tcell.ColorTan),
		MaxHP: 4, MaxInventory: 3, Attack: 1, Vision: 8,
		Behaviour: entity.Offensive,
		HostileTo: []entity.Hostility{entity.HostileTo(entity.Player)},
		Drops: entity.DropTable{
			{drop(1, McGuffin)},
			{drop(3, nil), drop(1, HealingPotion)},
		},
	}
	Goblin = &entity.MonsterKind{
		Key: "goblin", Name: "goblin", Sprite: sprite("👺", tcell.ColorRed),
		MaxHP: 10, MaxInventory: 4, Attack: 1, Vision: 6,
		Behaviour: entity.Offensive,
		HostileTo: []entity.Hostility{entity.HostileTo(entity.Player)},
		Drops:     entity.Flat(drop(2, nil), drop(1, Sword), drop(1, LeatherArmor), drop(1, HealingPotion)),
	}
	Slime = &entity.MonsterKind{
		Key: "slime", Name: "slime", Sprite: sprite("🟢", tcell.ColorGreen),
		MaxHP: 5, MaxInventory: 1, Attack: 1, Vision: 3,
		Behaviour: entity.Defensive,
		HostileTo: []entity.Hostility{entity.HostileTo(entity.Player)},
		Drops:     entity.Flat(drop(1, nil), drop(1, HealingPotion)),
	}
	Plant = &entity.MonsterKind{
		Key: "carnivorous_plant", Name: "carnivorous plant", Sprite: sprite("🌱", tcell.ColorLime),
		MaxHP: 1, MaxInventory: 1, Attack: 1, Vision: 1,
		Behaviour: entity.Neutral,
		HostileTo: []entity.Hostility{entity.HostileTo(entity.Player)},
		Drops:     entity.Flat(drop(1, nil), drop(5, HealingPotion)),
	}
)

// equipped lists the kinds built as creatures with weapon and armor slots.
var equipped = map[*entity.MonsterKind]bool{Player: true, Goblin: true}

var monsterKinds = []*entity.MonsterKind{Player, Rat, PackRat, Goblin, Slime, Plant}

var itemKinds = []*entity.ItemKind{
	HealingPotion, Dagger, Sword, Axe, Rags, LeatherArmor, ChainMail, McGuffin, Key,
}

var applianceKinds = []*entity.ApplianceKind{StairsDown, StairsUp, LockedStairs, CaveMouth, Statue}
