package game

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rogue-engine/internal/entity"
	"rogue-engine/internal/events"
	"rogue-engine/internal/geom"
)

func TestNewEntersStartPassage(t *testing.T) {
	g := newTestGame(t, rows("<..", "..."), 0)

	assert.Equal(t, "start", g.SceneID())
	assert.Equal(t, geom.Pt(0, 0), g.Player().Pos())
	assert.True(t, g.Vision().IsVisible(geom.Pt(2, 1)))
	welcome := ofType[events.Welcome](g.Events.Drain())
	require.Len(t, welcome, 1)
	assert.Equal(t, "start", welcome[0].Level)
}

func TestNewErrors(t *testing.T) {
	_, err := New(Options{Dungeon: rows("<."), Start: "start"})
	assert.ErrorIs(t, err, ErrNoPlayer)

	_, err = New(Options{Dungeon: rows(".."), Start: "start", Player: entity.NewEquippedMonster(heroKind)})
	var missing *MissingPassageError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, entity.DefaultPassageID, missing.Passage)
}

func TestMoveAndBump(t *testing.T) {
	g := newTestGame(t, rows("<.#"), 0)
	g.Events.Drain()

	perform(t, g, Move(east))
	assert.Equal(t, geom.Pt(1, 0), g.Player().Pos())
	assert.Equal(t, 1, g.Turns())
	assert.Len(t, ofType[events.Move](g.Events.Drain()), 1)

	perform(t, g, Move(east))
	assert.Equal(t, geom.Pt(1, 0), g.Player().Pos())
	assert.Equal(t, 1, g.Turns(), "bumping costs no turn")
	assert.Len(t, ofType[events.BumpIntoTerrain](g.Events.Drain()), 1)

	perform(t, g, Move(north))
	assert.Equal(t, 1, g.Turns())
	assert.Len(t, ofType[events.StareIntoVoid](g.Events.Drain()), 1)
}

func TestNoclipWalksThroughWalls(t *testing.T) {
	g := newTestGame(t, rows("<.#"), 0)

	perform(t, g, Action{Kind: ActionGodNoclip}, Move(east), Move(east))
	assert.Equal(t, geom.Pt(2, 0), g.Player().Pos())
	modes := ofType[events.GodMode](g.Events.Drain())
	require.Len(t, modes, 1)
	assert.True(t, modes[0].Noclip)
}

func TestAttackKillsAndDrops(t *testing.T) {
	g := newTestGame(t, rows("<r."), 0)
	g.Events.Drain()

	perform(t, g, Move(east))
	evs := g.Events.Drain()
	attacks := ofType[events.Attack](evs)
	require.Len(t, attacks, 1)
	assert.Equal(t, 1, attacks[0].Damage)
	assert.Len(t, ofType[events.Death](evs), 1)

	assert.Equal(t, geom.Pt(0, 0), g.Player().Pos())
	assert.Nil(t, g.Scene().ActorAt(geom.Pt(1, 0)))
	loot := g.Scene().ItemsAt(geom.Pt(1, 0))
	require.Len(t, loot, 1)
	assert.Equal(t, "coin", loot[0].TypeKey())
	assert.Equal(t, 20, g.Player().Monster().HP())
}

func TestOffensiveMonsterChasesAndAttacks(t *testing.T) {
	g := newTestGame(t, rows("<...b"), 0)
	brute := g.Scene().ActorAt(geom.Pt(4, 0))
	require.NotNil(t, brute)

	wait := Action{Kind: ActionWait}
	perform(t, g, wait, wait, wait)
	assert.Equal(t, geom.Pt(1, 0), brute.Pos())
	assert.Equal(t, 20, g.Player().Monster().HP())

	perform(t, g, wait)
	assert.Equal(t, 17, g.Player().Monster().HP())
}

func TestDefensiveMonsterHoldsGround(t *testing.T) {
	g := newTestGame(t, rows("<.g"), 0)
	guard := g.Scene().ActorAt(geom.Pt(2, 0))
	require.NotNil(t, guard)

	perform(t, g, Action{Kind: ActionWait})
	assert.Equal(t, geom.Pt(2, 0), guard.Pos())
	assert.Equal(t, 20, g.Player().Monster().HP())

	perform(t, g, Move(east))
	assert.Equal(t, 18, g.Player().Monster().HP())
}

func TestGrabAndDrop(t *testing.T) {
	g := newTestGame(t, rows("<$."), 0)
	g.Events.Drain()

	perform(t, g, Action{Kind: ActionGrab})
	assert.Len(t, ofType[events.NothingToPickUp](g.Events.Drain()), 1)
	assert.Equal(t, 0, g.Turns())

	perform(t, g, Move(east), Action{Kind: ActionGrab})
	assert.Len(t, ofType[events.GrabItem](g.Events.Drain()), 1)
	assert.Empty(t, g.Scene().ItemsAt(geom.Pt(1, 0)))
	assert.True(t, g.Player().HasItem("coin"))

	perform(t, g, Move(east), Action{Kind: ActionDrop, Item: 0})
	drops := ofType[events.DropItem](g.Events.Drain())
	require.Len(t, drops, 1)
	assert.Equal(t, geom.Pt(2, 0), drops[0].Pos)
	assert.Len(t, g.Scene().ItemsAt(geom.Pt(2, 0)), 1)
	assert.Equal(t, 4, g.Turns())

	perform(t, g, Action{Kind: ActionDrop, Item: 0})
	assert.Len(t, ofType[events.NothingToDrop](g.Events.Drain()), 1)
	assert.Equal(t, 4, g.Turns())
}

func TestGrabWithFullInventory(t *testing.T) {
	g := newTestGame(t, rows("<$"), 0)
	for range heroKind.MaxInventory {
		require.NoError(t, g.Player().Monster().Grab(entity.NewItem(keyKind)))
	}

	perform(t, g, Move(east), Action{Kind: ActionGrab})
	assert.Len(t, ofType[events.InventoryFull](g.Events.Drain()), 1)
	assert.Len(t, g.Scene().ItemsAt(geom.Pt(1, 0)), 1)
}

func TestConsume(t *testing.T) {
	g := newTestGame(t, rows("<."), 0)
	m := g.Player().Monster()
	m.AffectHealth(-10)
	require.NoError(t, m.Grab(entity.NewPotion(potionKind), entity.NewItem(coinKind)))
	g.Events.Drain()

	perform(t, g, Action{Kind: ActionConsume, Item: 0})
	evs := g.Events.Drain()
	assert.Len(t, ofType[events.Consume](evs), 1)
	health := ofType[events.Health](evs)
	require.NotEmpty(t, health)
	assert.Equal(t, 5, health[0].Diff)
	assert.Equal(t, 15, m.HP())
	assert.Equal(t, 1, g.Turns())

	perform(t, g, Action{Kind: ActionConsume, Item: 0})
	assert.Len(t, ofType[events.NotConsumable](g.Events.Drain()), 1)
	assert.Equal(t, 1, g.Turns())
}

func TestWieldSwapsWeapons(t *testing.T) {
	g := newTestGame(t, rows("<."), 0)
	hero := g.Player().(*entity.EquippedMonster)
	first, second := entity.NewWeapon(daggerKind), entity.NewWeapon(daggerKind)
	require.NoError(t, hero.Grab(first, second))

	perform(t, g, Action{Kind: ActionWield, Item: 0})
	assert.Same(t, first, hero.Wielding())
	assert.Equal(t, 3, hero.AttackValue())
	g.Events.Drain()

	perform(t, g, Action{Kind: ActionWield, Item: 0})
	evs := g.Events.Drain()
	require.Len(t, ofType[events.Unwield](evs), 1)
	require.Len(t, ofType[events.Wield](evs), 1)
	assert.Same(t, second, hero.Wielding())
	assert.Equal(t, []entity.Item{first}, hero.Inventory())

	perform(t, g, Action{Kind: ActionUnwield}, Action{Kind: ActionUnwield})
	empty := ofType[events.SlotEmpty](g.Events.Drain())
	require.Len(t, empty, 1)
	assert.Equal(t, "weapon", empty[0].Slot)
	assert.Nil(t, hero.Wielding())
}

func TestWearNeedsWearable(t *testing.T) {
	g := newTestGame(t, rows("<."), 0)
	hero := g.Player().(*entity.EquippedMonster)
	require.NoError(t, hero.Grab(entity.NewItem(coinKind), entity.NewArmor(armorKind)))
	g.Events.Drain()

	perform(t, g, Action{Kind: ActionWear, Item: 0})
	assert.Len(t, ofType[events.NotWearable](g.Events.Drain()), 1)
	assert.Equal(t, 0, g.Turns())

	perform(t, g, Action{Kind: ActionWear, Item: 1})
	assert.Len(t, ofType[events.Wear](g.Events.Drain()), 1)
	assert.Equal(t, 3, hero.ProtectionValue())

	perform(t, g, Action{Kind: ActionTakeOff})
	assert.Len(t, ofType[events.TakeOff](g.Events.Drain()), 1)
	assert.Equal(t, 0, hero.ProtectionValue())
}

func TestInventoryActionsOutOfRange(t *testing.T) {
	g := newTestGame(t, rows("<."), 0)
	require.NoError(t, g.Player().Monster().Grab(entity.NewArmor(armorKind)))
	g.Events.Drain()

	for _, kind := range []ActionKind{ActionConsume, ActionWield, ActionWear} {
		perform(t, g, Action{Kind: kind, Item: 3})
		missing := ofType[events.NoSuchItem](g.Events.Drain())
		require.Len(t, missing, 1, "kind=%d", kind)
		assert.Equal(t, 3, missing[0].Index)
	}
	assert.Equal(t, 0, g.Turns())
	assert.Len(t, g.Player().Monster().Inventory(), 1)
}

func TestDescendAndAscend(t *testing.T) {
	d := testDungeon{
		"start": {rows: []string{"<>"}, next: "deep"},
		"deep":  {rows: []string{"<."}},
	}
	g := newTestGame(t, d, 0)

	perform(t, g, Action{Kind: ActionDescend})
	cannot := ofType[events.CannotGo](g.Events.Drain())
	require.Len(t, cannot, 1)
	assert.True(t, cannot[0].Down)

	perform(t, g, Move(east), Action{Kind: ActionDescend})
	descend := ofType[events.Descend](g.Events.Drain())
	require.Len(t, descend, 1)
	assert.Equal(t, "deep", descend[0].Level)
	assert.Equal(t, "deep", g.SceneID())
	assert.Equal(t, geom.Pt(0, 0), g.Player().Pos())
	assert.Equal(t, []string{"deep", "start"}, g.SceneIDs())
	assert.Nil(t, g.scenes["start"].Player())
	assert.Equal(t, 1, g.Turns(), "taking a passage costs no turn")

	perform(t, g, Action{Kind: ActionAscend})
	cannot = ofType[events.CannotGo](g.Events.Drain())
	require.Len(t, cannot, 1)
	assert.False(t, cannot[0].Down)
	assert.Equal(t, "deep", g.SceneID())
}

func TestLockedPassageNeedsKey(t *testing.T) {
	d := testDungeon{
		"start": {rows: []string{"<L"}, next: "deep"},
		"deep":  {rows: []string{"<."}},
	}
	g := newTestGame(t, d, 0)

	perform(t, g, Move(east), Action{Kind: ActionDescend})
	need := ofType[events.NeedKey](g.Events.Drain())
	require.Len(t, need, 1)
	assert.Equal(t, "key", need[0].Key)
	assert.Equal(t, "start", g.SceneID())

	require.NoError(t, g.Player().Monster().Grab(entity.NewItem(keyKind)))
	perform(t, g, Action{Kind: ActionDescend})
	assert.Equal(t, "deep", g.SceneID())
}

func TestOneTimeSceneIsDiscarded(t *testing.T) {
	d := testDungeon{
		"start": {rows: []string{"<>"}, next: "pit"},
		"pit":   {rows: []string{"<>"}, next: "deep", oneTime: true},
		"deep":  {rows: []string{"<."}},
	}
	g := newTestGame(t, d, 0)

	perform(t, g, Move(east), Action{Kind: ActionDescend})
	assert.Equal(t, []string{"pit", "start"}, g.SceneIDs())
	perform(t, g, Move(east), Action{Kind: ActionDescend})
	assert.Equal(t, []string{"deep", "start"}, g.SceneIDs())
}

func TestMissingPassageKeepsActor(t *testing.T) {
	d := testDungeon{
		"start": {rows: []string{"<>"}, next: "deep"},
		"deep":  {rows: []string{".."}},
	}
	g := newTestGame(t, d, 0)
	perform(t, g, Move(east))

	err := g.Perform(Action{Kind: ActionDescend})
	var missing *MissingPassageError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "deep", missing.Scene)
	assert.Equal(t, "start", g.SceneID())
	assert.Equal(t, geom.Pt(1, 0), g.Player().Pos())
}

func TestSuicideEndsGame(t *testing.T) {
	g := newTestGame(t, rows("<."), 0)

	perform(t, g, Action{Kind: ActionSuicide})
	assert.Len(t, ofType[events.Death](g.Events.Drain()), 1)
	assert.True(t, g.IsOver())
	assert.ErrorIs(t, g.Perform(Action{Kind: ActionWait}), ErrGameOver)
}

func TestQuestCompletesAtEndOfTurn(t *testing.T) {
	q := &fetchQuest{Want: "coin"}
	g := newTestGame(t, rows("<$"), 0, q)
	assert.True(t, q.Active())

	perform(t, g, Move(east))
	assert.False(t, q.Done())
	perform(t, g, Action{Kind: ActionGrab})
	assert.True(t, q.Done())
	assert.Len(t, ofType[events.QuestCompleted](g.Events.Drain()), 1)

	perform(t, g, Action{Kind: ActionWait})
	assert.Empty(t, ofType[events.QuestCompleted](g.Events.Drain()))
}

func TestAutoexploreOnExploredMapStaysPut(t *testing.T) {
	g := newTestGame(t, rows("<..", "...", "..."), 0)
	g.Events.Drain()

	perform(t, g, Action{Kind: ActionAutoexplore})
	assert.True(t, g.AutoMoving())
	moved, err := g.PerformAutomovement()
	require.NoError(t, err)

	assert.False(t, moved)
	assert.False(t, g.AutoMoving())
	assert.Equal(t, geom.Pt(0, 0), g.Player().Pos())
	assert.Equal(t, 0, g.Turns())
	evs := g.Events.Drain()
	assert.Empty(t, ofType[events.Move](evs))
	assert.Equal(t, "nothing left to explore", lastStop(t, evs))
}

func TestAutoexploreCorridor(t *testing.T) {
	g := newTestGame(t, rows("<........."), 2)

	perform(t, g, Action{Kind: ActionAutoexplore})
	for range 50 {
		moved, err := g.PerformAutomovement()
		require.NoError(t, err)
		if !moved {
			break
		}
	}

	assert.False(t, g.AutoMoving())
	for x := range 10 {
		assert.True(t, g.Vision().IsExplored(geom.Pt(x, 0)), "x=%d", x)
	}
	assert.Equal(t, geom.Pt(8, 0), g.Player().Pos())
	assert.Equal(t, 8, g.Turns())
	assert.Equal(t, "nothing left to explore", lastStop(t, g.Events.Drain()))
}

func TestAutoexploreStopsWhenMonsterAppears(t *testing.T) {
	g := newTestGame(t, rows("<..........z"), 3)

	perform(t, g, Action{Kind: ActionAutoexplore})
	for range 50 {
		moved, err := g.PerformAutomovement()
		require.NoError(t, err)
		if !moved {
			break
		}
	}

	assert.Equal(t, geom.Pt(8, 0), g.Player().Pos())
	assert.Equal(t, "interrupted", lastStop(t, g.Events.Drain()))
}

func TestAutoexploreRefusedWithMonsterInView(t *testing.T) {
	g := newTestGame(t, rows("<.z"), 0)

	perform(t, g, Action{Kind: ActionAutoexplore})
	assert.False(t, g.AutoMoving())
	assert.Equal(t, "monsters in view", lastStop(t, g.Events.Drain()))
}

func TestWalkTo(t *testing.T) {
	g := newTestGame(t, rows("<....", ".....", ".....", ".....", "....."), 0)

	perform(t, g, Action{Kind: ActionWalkTo, Target: geom.Pt(4, 4)})
	for range 20 {
		moved, err := g.PerformAutomovement()
		require.NoError(t, err)
		if !moved {
			break
		}
	}

	assert.Equal(t, geom.Pt(4, 4), g.Player().Pos())
	assert.Equal(t, 4, g.Turns())
	assert.Equal(t, "arrived", lastStop(t, g.Events.Drain()))
}

func TestWalkToUnexplored(t *testing.T) {
	g := newTestGame(t, rows("<.#."), 0)
	require.False(t, g.Vision().IsExplored(geom.Pt(3, 0)))

	perform(t, g, Action{Kind: ActionWalkTo, Target: geom.Pt(3, 0)})
	assert.False(t, g.AutoMoving())
	assert.Equal(t, "no path", lastStop(t, g.Events.Drain()))
}

func saveFixture(t *testing.T) (*Game, testDungeon) {
	t.Helper()
	d := testDungeon{
		"start": {rows: []string{"<$>", "..."}, next: "deep"},
		"deep":  {rows: []string{"<.r", "..."}},
	}
	g := newTestGame(t, d, 0, &fetchQuest{Want: "key"})
	perform(t, g, Move(east), Action{Kind: ActionGrab}, Move(east), Action{Kind: ActionDescend})
	require.Equal(t, "deep", g.SceneID())
	return g, d
}

func assertSameGame(t *testing.T, want, got *Game) {
	t.Helper()
	assert.Equal(t, want.Turns(), got.Turns())
	assert.Equal(t, want.SceneID(), got.SceneID())
	assert.Equal(t, want.SceneIDs(), got.SceneIDs())
	assert.Equal(t, want.Player().Pos(), got.Player().Pos())
	assert.Equal(t, want.Player().Monster().HP(), got.Player().Monster().HP())
	assert.True(t, got.Player().HasItem("coin"))
	require.Len(t, got.Quests(), 1)
	assert.True(t, got.Quests()[0].Active())

	size := want.Scene().Size()
	for y := range size.H {
		for x := range size.W {
			p := geom.Pt(x, y)
			assert.Equal(t, want.Vision().IsExplored(p), got.Vision().IsExplored(p), "%v", p)
		}
	}
	assert.Equal(t, want.RNG().Int63(), got.RNG().Int63())
}

func TestSaveRoundTrip(t *testing.T) {
	g, d := saveFixture(t)

	data, err := g.Marshal()
	require.NoError(t, err)
	loaded, err := Unmarshal(data, testRegistries(), Options{Dungeon: d})
	require.NoError(t, err)
	assertSameGame(t, g, loaded)

	// Both games play on identically.
	for _, each := range []*Game{g, loaded} {
		perform(t, each, Move(east))
	}
	assert.Equal(t, g.Player().Pos(), loaded.Player().Pos())
	assert.Equal(t, g.Player().Monster().HP(), loaded.Player().Monster().HP())
}

func TestSaveFile(t *testing.T) {
	g, d := saveFixture(t)
	path := filepath.Join(t.TempDir(), "game.sav")

	require.NoError(t, g.SaveFile(path))
	loaded, err := LoadFile(path, testRegistries(), Options{Dungeon: d})
	require.NoError(t, err)
	assertSameGame(t, g, loaded)
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	_, err := Unmarshal([]byte("not a save"), testRegistries(), Options{})
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.sav"), testRegistries(), Options{})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrGameOver))
}
