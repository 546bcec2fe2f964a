package vision

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rogue-engine/internal/entity"
	"rogue-engine/internal/events"
	"rogue-engine/internal/geom"
	"rogue-engine/internal/savefile"
	"rogue-engine/internal/scene"
)

var (
	floor = &entity.TerrainKind{Key: "floor", Passable: true}
	wall  = &entity.TerrainKind{Key: "wall"}
	dark  = &entity.TerrainKind{Key: "dark", Passable: true, Dark: true}
	fount = &entity.TerrainKind{Key: "fountain", Passable: true, Notable: true}
	rat   = &entity.MonsterKind{Key: "rat", Name: "rat", MaxHP: 3, Vision: 4, Behaviour: entity.Offensive}
	hero  = &entity.MonsterKind{Key: "hero", Name: "hero", MaxHP: 9, Behaviour: entity.Player}
	coin  = &entity.ItemKind{Key: "coin", Name: "coin"}
	kinds = map[rune]*entity.TerrainKind{'.': floor, '#': wall, ',': dark, '&': fount}
)

func parse(rows ...string) *scene.Scene {
	grid := geom.NewMatrix[entity.Terrain](geom.Sz(len(rows[0]), len(rows)), nil)
	for y, row := range rows {
		for x, ch := range row {
			grid.Set(geom.Pt(x, y), entity.NewTerrain(kinds[ch]))
		}
	}
	return scene.New("test", grid)
}

func open(w, h int) *scene.Scene {
	rows := make([]string, h)
	for i := range rows {
		rows[i] = string(slices.Repeat([]byte{'.'}, w))
	}
	return parse(rows...)
}

func place(s *scene.Scene, k *entity.MonsterKind, p geom.Point) *entity.Monster {
	m := entity.NewMonster(k)
	m.SetPos(p)
	s.AddActor(m)
	return m
}

func TestFOVOriginAlwaysVisible(t *testing.T) {
	s := open(20, 20)
	v := New(s.Size(), 5)
	v.Update(s, place(s, hero, geom.Pt(5, 5)))

	assert.True(t, v.IsVisible(geom.Pt(5, 5)))
	assert.True(t, v.IsExplored(geom.Pt(5, 5)))
}

func TestFOVClearsOldVisibility(t *testing.T) {
	s := open(20, 20)
	v := New(s.Size(), 3)
	p := place(s, hero, geom.Pt(2, 2))
	v.Update(s, p)
	require.True(t, v.IsVisible(geom.Pt(4, 2)))

	p.SetPos(geom.Pt(15, 15))
	v.Update(s, p)
	assert.False(t, v.IsVisible(geom.Pt(4, 2)), "stale visibility must be cleared")
	assert.True(t, v.IsExplored(geom.Pt(4, 2)), "explored memory is never cleared")
}

func TestFOVRadiusLimits(t *testing.T) {
	s := open(30, 30)
	v := New(s.Size(), 5)
	v.Update(s, place(s, hero, geom.Pt(15, 15)))

	for _, p := range []geom.Point{{X: 15, Y: 10}, {X: 15, Y: 20}, {X: 10, Y: 15}, {X: 20, Y: 15}} {
		assert.True(t, v.IsVisible(p), "%v at the radius", p)
	}
	assert.False(t, v.IsVisible(geom.Pt(15, 21)))
	assert.False(t, v.IsVisible(geom.Pt(20, 20)), "corner lies outside the ellipse")
}

func TestFOVWallBlocksLight(t *testing.T) {
	s := parse(
		".......",
		".......",
		"...#...",
		".......",
	)
	v := New(s.Size(), 10)
	v.Update(s, place(s, hero, geom.Pt(3, 0)))

	assert.True(t, v.IsVisible(geom.Pt(3, 2)), "the opaque cell itself is visible")
	assert.False(t, v.IsVisible(geom.Pt(3, 3)), "cell behind the wall is hidden")
}

func TestFieldOfViewNeverSeesBehindOpaque(t *testing.T) {
	opaque := geom.Pt(2, 0)
	transparent := func(p geom.Point) bool { return p != opaque }
	cells := FieldOfView(geom.Pt(0, 0), 6, transparent)
	assert.Contains(t, cells, opaque)
	for x := 3; x <= 6; x++ {
		assert.NotContains(t, cells, geom.Pt(x, 0))
	}
}

func TestDarkTerrainLimitsSight(t *testing.T) {
	s := parse(",,,,,,")
	v := New(s.Size(), 10)
	v.Update(s, place(s, hero, geom.Pt(0, 0)))

	assert.True(t, v.IsVisible(geom.Pt(1, 0)))
	assert.True(t, v.IsVisible(geom.Pt(2, 0)), "first dark cell beyond adjacency is seen")
	assert.False(t, v.IsVisible(geom.Pt(3, 0)))
}

func TestDiscoverFiresOnce(t *testing.T) {
	s := parse(
		"....&",
		".....",
	)
	p := place(s, hero, geom.Pt(0, 0))
	r := place(s, rat, geom.Pt(3, 1))
	c := entity.NewItem(coin)
	s.DropItem(entity.ItemAt{Pos: geom.Pt(2, 0), Item: c})

	v := New(s.Size(), 10)
	v.Update(s, p)
	found := v.Discover(s)
	require.Len(t, found, 3)
	assert.Equal(t, events.DiscoverTerrain, found[0].Kind)
	assert.Equal(t, events.Discover{What: c, Kind: events.DiscoverItem, Pos: geom.Pt(2, 0)}, found[1])
	assert.Equal(t, events.Discover{What: r, Kind: events.DiscoverActor, Pos: geom.Pt(3, 1)}, found[2])
	assert.True(t, found[2].Important())

	v.Update(s, p)
	assert.Empty(t, v.Discover(s), "re-seeing does not re-fire")
	assert.Equal(t, []entity.Actor{r}, v.VisibleActors(s))
}

func TestCanSee(t *testing.T) {
	s := parse(
		"........",
		"...#....",
		"........",
	)
	m := place(s, rat, geom.Pt(0, 1))
	assert.True(t, CanSee(s, m, geom.Pt(2, 1)))
	assert.False(t, CanSee(s, m, geom.Pt(4, 1)), "wall in between")
	assert.False(t, CanSee(s, m, geom.Pt(7, 0)), "beyond vision range")
}

func TestSaveLoad(t *testing.T) {
	s := open(6, 3)
	p := place(s, hero, geom.Pt(0, 0))
	place(s, rat, geom.Pt(5, 2))
	v := New(s.Size(), 6)
	v.Update(s, p)
	require.Len(t, v.Discover(s), 1)

	data, err := savefile.Marshal(1, func(w savefile.Writer) { v.Save(w, s) })
	require.NoError(t, err)

	var got *Vision
	require.NoError(t, savefile.Unmarshal(data, 1, nil, func(r savefile.Reader) {
		got = Load(r, s, 6)
	}))
	for _, c := range s.IterCells(geom.RectAt(geom.Point{}, s.Size())) {
		assert.Equal(t, v.IsExplored(c.Pos), got.IsExplored(c.Pos), "%v", c.Pos)
	}
	got.Update(s, p)
	assert.Empty(t, got.Discover(s), "discovery memory survives a reload")
}
