package game

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"rogue-engine/internal/entity"
	"rogue-engine/internal/events"
	"rogue-engine/internal/geom"
	"rogue-engine/internal/scene"
)

var (
	floorKind  = &entity.TerrainKind{Key: "floor", Name: "floor", Passable: true}
	wallKind   = &entity.TerrainKind{Key: "wall", Name: "wall"}
	coinKind   = &entity.ItemKind{Key: "coin", Name: "coin"}
	keyKind    = &entity.ItemKind{Key: "key", Name: "key"}
	potionKind = &entity.ItemKind{Key: "potion", Name: "potion", Heal: 5}
	daggerKind = &entity.ItemKind{Key: "dagger", Name: "dagger", Attack: 2}
	armorKind  = &entity.ItemKind{Key: "armor", Name: "armor", Protection: 3}
	upKind     = &entity.ApplianceKind{Key: "up", Name: "stairs up", Direction: entity.Up}
	downKind   = &entity.ApplianceKind{Key: "down", Name: "stairs down", Direction: entity.Down}
	gateKind   = &entity.ApplianceKind{Key: "gate", Name: "gate", Direction: entity.Down, KeyItem: "key"}

	heroKind = &entity.MonsterKind{
		Key: "hero", Name: "hero", MaxHP: 20, MaxInventory: 4, Attack: 1,
		Behaviour: entity.Player,
		HostileTo: []entity.Hostility{entity.HostileToStrangers},
	}
	ratKind = &entity.MonsterKind{
		Key: "rat", Name: "rat", MaxHP: 1, MaxInventory: 1, Attack: 3, Vision: 6,
		Behaviour: entity.Offensive,
		HostileTo: []entity.Hostility{entity.HostileTo(entity.Player)},
		Drops:     entity.Flat(entity.Drop{Weight: 1, Make: func() entity.Item { return entity.NewItem(coinKind) }}),
	}
	bruteKind = &entity.MonsterKind{
		Key: "brute", Name: "brute", MaxHP: 10, Attack: 3, Vision: 6,
		Behaviour: entity.Offensive,
		HostileTo: []entity.Hostility{entity.HostileTo(entity.Player)},
	}
	guardKind = &entity.MonsterKind{
		Key: "guard", Name: "guard", MaxHP: 10, Attack: 2, Vision: 6,
		Behaviour: entity.Defensive,
		HostileTo: []entity.Hostility{entity.HostileTo(entity.Player)},
	}
	lurkerKind = &entity.MonsterKind{
		Key: "lurker", Name: "lurker", MaxHP: 5,
		Behaviour: entity.Neutral,
		HostileTo: []entity.Hostility{entity.HostileTo(entity.Player)},
	}
)

var (
	items = map[rune]func() entity.Item{
		'$': func() entity.Item { return entity.NewItem(coinKind) },
		'k': func() entity.Item { return entity.NewItem(keyKind) },
		'!': func() entity.Item { return entity.NewPotion(potionKind) },
		'/': func() entity.Item { return entity.NewWeapon(daggerKind) },
		'[': func() entity.Item { return entity.NewArmor(armorKind) },
	}
	actors = map[rune]func() entity.Actor{
		'r': func() entity.Actor { return entity.NewMonster(ratKind) },
		'b': func() entity.Actor { return entity.NewMonster(bruteKind) },
		'g': func() entity.Actor { return entity.NewMonster(guardKind) },
		'z': func() entity.Actor { return entity.NewMonster(lurkerKind) },
	}
)

type fetchQuest struct {
	entity.QuestBase
	Want string
}

func (q *fetchQuest) TypeKey() string       { return "fetch" }
func (q *fetchQuest) Name() string          { return "fetch" }
func (q *fetchQuest) Sprite() entity.Sprite { return entity.Sprite{} }
func (q *fetchQuest) Summary() string       { return "find a " + q.Want }
func (q *fetchQuest) Check(ctx entity.QuestContext) bool {
	return ctx.Player().HasItem(q.Want)
}

func (q *fetchQuest) Complete(entity.QuestContext) []events.Event {
	q.Finish()
	return nil
}

func testRegistries() *entity.Registries {
	rs := entity.NewRegistries()
	for _, k := range []*entity.TerrainKind{floorKind, wallKind} {
		rs.Terrain.Register(k.Key, func() entity.Terrain { return entity.NewTerrain(k) })
	}
	rs.Items.Register("coin", items['$'])
	rs.Items.Register("key", items['k'])
	rs.Items.Register("potion", items['!'])
	rs.Items.Register("dagger", items['/'])
	rs.Items.Register("armor", items['['])
	for _, k := range []*entity.ApplianceKind{upKind, downKind, gateKind} {
		rs.Appliances.Register(k.Key, func() entity.Appliance { return entity.NewPassage(k) })
	}
	rs.Actors.Register("hero", func() entity.Actor { return entity.NewEquippedMonster(heroKind) })
	for glyph, key := range map[rune]string{'r': "rat", 'b': "brute", 'g': "guard", 'z': "lurker"} {
		rs.Actors.Register(key, actors[glyph])
	}
	rs.Quests.Register("fetch", func() entity.Quest { return &fetchQuest{} })
	return rs
}

// level is a hand-drawn scene. '<' is the arrival passage, '>' and 'L'
// lead down to next.
type level struct {
	rows    []string
	next    string
	oneTime bool
}

type testDungeon map[string]level

func (d testDungeon) Generate(_ *rand.Rand, id string) (*scene.Scene, error) {
	lv, ok := d[id]
	if !ok {
		return nil, fmt.Errorf("no level %q", id)
	}
	size := geom.Sz(len(lv.rows[0]), len(lv.rows))
	grid := geom.NewMatrix[entity.Terrain](size, nil)
	type placed struct {
		pos  geom.Point
		char rune
	}
	var marks []placed
	for y, row := range lv.rows {
		for x, ch := range row {
			p := geom.Pt(x, y)
			if ch == '#' {
				grid.Set(p, entity.NewTerrain(wallKind))
				continue
			}
			grid.Set(p, entity.NewTerrain(floorKind))
			if ch != '.' {
				marks = append(marks, placed{p, ch})
			}
		}
	}
	s := scene.New(id, grid)
	s.OneTime = lv.oneTime
	for _, m := range marks {
		switch m.char {
		case '<':
			s.AddAppliance(scene.ApplianceAt{Pos: m.pos, Appliance: entity.NewPassage(upKind)})
		case '>', 'L':
			kind := downKind
			if m.char == 'L' {
				kind = gateKind
			}
			lp := entity.NewPassage(kind)
			lp.ID = "down"
			lp.Destination = lv.next
			lp.DestinationPassage = entity.DefaultPassageID
			s.AddAppliance(scene.ApplianceAt{Pos: m.pos, Appliance: lp})
		default:
			if mk, ok := items[m.char]; ok {
				s.DropItem(entity.ItemAt{Pos: m.pos, Item: mk()})
			} else if mk, ok := actors[m.char]; ok {
				a := mk()
				a.SetPos(m.pos)
				s.AddActor(a)
			}
		}
	}
	return s, nil
}

func rows(r ...string) testDungeon {
	return testDungeon{"start": {rows: r}}
}

func newTestGame(t *testing.T, d testDungeon, radius int, quests ...entity.Quest) *Game {
	t.Helper()
	g, err := New(Options{
		Seed:         1,
		Dungeon:      d,
		Start:        "start",
		Player:       entity.NewEquippedMonster(heroKind),
		Quests:       quests,
		VisionRadius: radius,
	})
	require.NoError(t, err)
	return g
}

func perform(t *testing.T, g *Game, actions ...Action) {
	t.Helper()
	for _, a := range actions {
		require.NoError(t, g.Perform(a))
	}
}

func ofType[T events.Event](evs []events.Event) []T {
	var out []T
	for _, e := range evs {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func lastStop(t *testing.T, evs []events.Event) string {
	t.Helper()
	stops := ofType[events.AutoStop](evs)
	require.NotEmpty(t, stops)
	return stops[len(stops)-1].Reason
}

var (
	east  = geom.Pt(1, 0)
	north = geom.Pt(0, -1)
)
