package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rogue-engine/internal/entity"
	"rogue-engine/internal/geom"
	"rogue-engine/internal/savefile"
)

var (
	floor   = &entity.TerrainKind{Key: "floor", Name: "floor", Passable: true}
	wall    = &entity.TerrainKind{Key: "wall", Name: "wall"}
	door    = &entity.TerrainKind{Key: "door", Name: "door", Passable: true, NoDiagonal: true}
	stone   = &entity.ItemKind{Key: "stone", Name: "stone"}
	stairs  = &entity.ApplianceKind{Key: "stairs", Name: "stairs", Direction: entity.Down}
	rat     = &entity.MonsterKind{Key: "rat", Name: "rat", MaxHP: 3, MaxInventory: 1, Behaviour: entity.Offensive}
	hero    = &entity.MonsterKind{Key: "hero", Name: "hero", MaxHP: 9, MaxInventory: 2, Behaviour: entity.Player}
	symbols = map[rune]*entity.TerrainKind{'.': floor, '#': wall, '+': door}
)

func registries() *entity.Registries {
	rs := entity.NewRegistries()
	for _, k := range []*entity.TerrainKind{floor, wall, door} {
		rs.Terrain.Register(k.Key, func() entity.Terrain { return entity.NewTerrain(k) })
	}
	rs.Items.Register("stone", func() entity.Item { return entity.NewItem(stone) })
	rs.Appliances.Register("stairs", func() entity.Appliance { return entity.NewPassage(stairs) })
	rs.Actors.Register("rat", func() entity.Actor { return entity.NewMonster(rat) })
	rs.Actors.Register("hero", func() entity.Actor { return entity.NewEquippedMonster(hero) })
	return rs
}

func parse(rows ...string) *Scene {
	size := geom.Sz(len(rows[0]), len(rows))
	grid := geom.NewMatrix[entity.Terrain](size, nil)
	for y, row := range rows {
		for x, ch := range row {
			grid.Set(geom.Pt(x, y), entity.NewTerrain(symbols[ch]))
		}
	}
	return New("test", grid)
}

func TestCanMoveDiagonalRule(t *testing.T) {
	s := parse(
		"#####",
		"#...#",
		"#.+.#",
		"#...#",
		"#####",
	)
	assert.True(t, s.CanMove(geom.Pt(1, 1), geom.Pt(2, 1)))
	assert.True(t, s.CanMove(geom.Pt(1, 1), geom.Pt(1, 2)))
	assert.False(t, s.CanMove(geom.Pt(1, 1), geom.Pt(2, 2)), "diagonal into a door")
	assert.False(t, s.CanMove(geom.Pt(2, 2), geom.Pt(3, 3)), "diagonal out of a door")
	assert.True(t, s.CanMove(geom.Pt(2, 2), geom.Pt(2, 3)))
	assert.True(t, s.CanMove(geom.Pt(1, 2), geom.Pt(2, 3)), "diagonal between floors")
	assert.False(t, s.CanMove(geom.Pt(1, 1), geom.Pt(0, 0)), "into a wall")
	assert.False(t, s.CanMove(geom.Pt(0, 0), geom.Pt(-1, 0)), "off the map")
}

func TestEntityQueries(t *testing.T) {
	s := parse("....", "....")
	r := entity.NewMonster(rat)
	r.SetPos(geom.Pt(1, 0))
	p := entity.NewEquippedMonster(hero)
	p.SetPos(geom.Pt(2, 1))
	s.AddActor(p)
	s.AddActor(r)

	assert.Same(t, p, s.Player())
	assert.Equal(t, []entity.Actor{r}, s.ActorsAt(geom.Pt(1, 0)))
	assert.Nil(t, s.ActorAt(geom.Pt(0, 0)))

	a, b := entity.NewItem(stone), entity.NewItem(stone)
	s.DropItem(entity.ItemAt{Pos: geom.Pt(3, 1), Item: a}, entity.ItemAt{Pos: geom.Pt(3, 1), Item: b})
	assert.Equal(t, []entity.Item{a, b}, s.ItemsAt(geom.Pt(3, 1)))
	assert.True(t, s.TakeItem(a))
	assert.False(t, s.TakeItem(a))
	assert.Equal(t, []entity.Item{b}, s.ItemsAt(geom.Pt(3, 1)))

	lp := entity.NewPassage(stairs)
	lp.ID = "down"
	s.AddAppliance(ApplianceAt{Pos: geom.Pt(0, 1), Appliance: lp})
	got, pos, ok := s.PassageByID("down")
	require.True(t, ok)
	assert.Same(t, lp, got)
	assert.Equal(t, geom.Pt(0, 1), pos)
	_, _, ok = s.PassageByID("enter")
	assert.False(t, ok)
	assert.Same(t, lp, s.PassageAt(geom.Pt(0, 1)))

	assert.True(t, s.RemoveActor(p))
	assert.Nil(t, s.Player())
}

func TestIterCellsClipsToGrid(t *testing.T) {
	s := parse("..", "..")
	r := entity.NewMonster(rat)
	r.SetPos(geom.Pt(1, 1))
	s.AddActor(r)

	cells := s.IterCells(geom.Rect{X1: -1, Y1: -1, X2: 1, Y2: 1})
	require.Len(t, cells, 4)
	assert.Equal(t, geom.Pt(0, 0), cells[0].Pos)
	assert.Equal(t, geom.Pt(1, 1), cells[3].Pos)
	assert.Equal(t, []entity.Actor{r}, cells[3].Actors)
	assert.Empty(t, cells[0].Actors)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := parse("#+#", "...")
	s.OneTime = true
	r := entity.NewMonster(rat)
	r.SetPos(geom.Pt(0, 1))
	p := entity.NewEquippedMonster(hero)
	p.SetPos(geom.Pt(2, 1))
	require.NoError(t, p.Grab(entity.NewItem(stone)))
	s.AddActor(p)
	s.AddActor(r)
	s.DropItem(entity.ItemAt{Pos: geom.Pt(1, 1), Item: entity.NewItem(stone)})
	lp := entity.NewPassage(stairs)
	lp.Destination = "depth:2"
	s.AddAppliance(ApplianceAt{Pos: geom.Pt(1, 0), Appliance: lp})

	data, err := savefile.Marshal(1, s.Save)
	require.NoError(t, err)

	var out *Scene
	require.NoError(t, savefile.Unmarshal(data, 1, registries().Meta(), func(r savefile.Reader) {
		out = Load(r)
	}))
	assert.Equal(t, s, out)
}
