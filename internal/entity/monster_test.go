package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rogue-engine/internal/geom"
	"rogue-engine/internal/pcg"
)

func TestAffectHealthClamps(t *testing.T) {
	rat := NewMonster(ratKind)
	rat.AffectHealth(-5)
	require.Equal(t, 5, rat.HP())

	assert.Equal(t, 5, rat.AffectHealth(+10))
	assert.Equal(t, 10, rat.HP())

	assert.Equal(t, -10, rat.AffectHealth(-50))
	assert.Equal(t, 0, rat.HP())
	assert.False(t, rat.IsAlive())
}

func TestGrabIsAtomic(t *testing.T) {
	rat := NewMonster(ratKind)
	first := NewItem(stoneKind)
	require.NoError(t, rat.Grab(first))

	err := rat.Grab(NewItem(keyKind))
	assert.ErrorIs(t, err, ErrInventoryFull)
	assert.Equal(t, []Item{first}, rat.Inventory())

	player := NewEquippedMonster(playerKind)
	require.NoError(t, player.Grab(NewItem(stoneKind)))
	err = player.Grab(NewItem(stoneKind), NewItem(stoneKind), NewItem(stoneKind))
	assert.ErrorIs(t, err, ErrInventoryFull)
	assert.Len(t, player.Inventory(), 1, "no partial insert")
}

func TestDropAllReversesInsertionOrder(t *testing.T) {
	m := NewEquippedMonster(playerKind)
	m.SetPos(geom.Pt(3, 4))
	a, b, c := NewItem(stoneKind), NewWeapon(daggerKind), NewArmor(armorKind)
	require.NoError(t, m.Grab(a, b, c))
	require.NoError(t, m.Wield(b))

	dropped := m.DropAll()
	require.Len(t, dropped, 3)
	assert.Equal(t, ItemAt{geom.Pt(3, 4), c}, dropped[0])
	assert.Equal(t, ItemAt{geom.Pt(3, 4), a}, dropped[1])
	assert.Equal(t, ItemAt{geom.Pt(3, 4), b}, dropped[2], "wielded item comes last")
	assert.Empty(t, m.Inventory())
	assert.Nil(t, m.Wielding())
}

func TestDrop(t *testing.T) {
	m := NewMonster(packRatKind)
	a, b := NewItem(stoneKind), NewItem(keyKind)
	require.NoError(t, m.Grab(a, b))

	got, err := m.Drop(a)
	require.NoError(t, err)
	assert.Same(t, a, got.Item)
	assert.Equal(t, []Item{b}, m.Inventory())

	_, err = m.Drop(a)
	assert.ErrorIs(t, err, ErrNotInInventory)
	_, err = m.DropIndex(5)
	assert.ErrorIs(t, err, ErrNotInInventory)
}

func TestConsume(t *testing.T) {
	m := NewEquippedMonster(playerKind)
	m.AffectHealth(-10)
	potion, stone := NewPotion(potionKind), NewItem(stoneKind)
	require.NoError(t, m.Grab(potion, stone))

	_, err := m.Consume(stone)
	var notFit *ItemNotFitError
	require.ErrorAs(t, err, &notFit)
	assert.Equal(t, Consumable, notFit.Need)
	assert.Len(t, m.Inventory(), 2)

	evs, err := m.Consume(potion)
	require.NoError(t, err)
	assert.Len(t, evs, 1)
	assert.Equal(t, 15, m.HP())
	assert.Equal(t, []Item{stone}, m.Inventory())
}

func TestEquipmentSlots(t *testing.T) {
	m := NewEquippedMonster(playerKind)
	dagger, armor, robe := NewWeapon(daggerKind), NewArmor(armorKind), NewArmor(robeKind)
	require.NoError(t, m.Grab(dagger, armor, robe))

	assert.Equal(t, 1, m.AttackValue())
	require.NoError(t, m.Wield(dagger))
	assert.Equal(t, 3, m.AttackValue())

	require.NoError(t, m.Wear(armor))
	assert.Equal(t, 3, m.ProtectionValue(), "armor replaces base protection")

	err := m.Wear(robe)
	var taken *SlotTakenError
	require.ErrorAs(t, err, &taken)
	assert.Same(t, armor, taken.Occupant)
	assert.Equal(t, []Item{robe}, m.Inventory(), "failed wear leaves state unchanged")

	got, err := m.TakeOff()
	require.NoError(t, err)
	assert.Same(t, armor, got)
	assert.Equal(t, 1, m.ProtectionValue())

	_, err = m.TakeOff()
	assert.ErrorIs(t, err, ErrSlotEmpty)
}

func TestWearNonWearable(t *testing.T) {
	m := NewEquippedMonster(playerKind)
	stone := NewItem(stoneKind)
	require.NoError(t, m.Grab(stone))

	err := m.Wear(stone)
	var notFit *ItemNotFitError
	require.ErrorAs(t, err, &notFit)
	assert.Equal(t, Wearable, notFit.Need)
	assert.Nil(t, m.Wearing())
}

func TestUnwieldIntoFullInventory(t *testing.T) {
	m := NewEquippedMonster(playerKind)
	dagger := NewWeapon(daggerKind)
	require.NoError(t, m.Grab(dagger))
	require.NoError(t, m.Wield(dagger))
	require.NoError(t, m.Grab(NewItem(stoneKind), NewItem(stoneKind), NewItem(stoneKind)))

	_, err := m.Unwield()
	assert.ErrorIs(t, err, ErrInventoryFull)
	assert.Same(t, dagger, m.Wielding())
}

func TestFillDropsOnce(t *testing.T) {
	rng, _ := pcg.New(1)
	m := NewMonster(packRatKind)
	require.True(t, m.HasDrops())

	require.NoError(t, m.FillDrops(rng))
	inv := m.Inventory()
	require.Len(t, inv, 1)
	assert.Equal(t, "stone", inv[0].TypeKey())
	assert.False(t, m.HasDrops())

	require.NoError(t, m.FillDrops(rng))
	assert.Len(t, m.Inventory(), 1)
}

func TestFillDropsRollsOnceWhenFull(t *testing.T) {
	rng, _ := pcg.New(1)
	kind := *packRatKind
	kind.MaxInventory = 1
	m := NewMonster(&kind)
	stone := NewItem(stoneKind)
	require.NoError(t, m.Grab(stone))

	assert.ErrorIs(t, m.FillDrops(rng), ErrInventoryFull)
	assert.False(t, m.HasDrops())
	assert.Equal(t, []Item{stone}, m.Inventory())

	again, _ := pcg.New(2)
	ref, _ := pcg.New(2)
	require.NoError(t, m.FillDrops(again))
	assert.Equal(t, ref.Int63(), again.Int63(), "the table is not rolled twice")
}

func TestEquippedMonsterIsCreature(t *testing.T) {
	var c Creature = NewEquippedMonster(playerKind)
	m := c.Monster()
	require.NotNil(t, m)
	m.AffectHealth(-5)
	assert.Equal(t, 15, c.Monster().HP())
	assert.Equal(t, "player", c.TypeKey())
}

func TestFillDropsMalformed(t *testing.T) {
	rng, _ := pcg.New(1)
	kind := *packRatKind
	kind.Drops = DropTable{{}}
	m := NewMonster(&kind)
	err := m.FillDrops(rng)
	assert.True(t, errors.Is(err, ErrMalformedDrops))
	assert.True(t, m.HasDrops())
}

func TestHostility(t *testing.T) {
	rat, other := NewMonster(ratKind), NewMonster(ratKind)
	player := NewEquippedMonster(playerKind)

	assert.True(t, rat.IsHostileTo(player))
	assert.False(t, rat.IsHostileTo(other))
	assert.False(t, rat.IsHostileTo(rat))
	assert.True(t, player.IsHostileTo(rat))

	player.AffectHealth(-100)
	assert.False(t, rat.IsHostileTo(player), "the dead are no threat")
}

func TestPassageLock(t *testing.T) {
	gate := NewPassage(gateKind)
	player := NewEquippedMonster(playerKind)

	var locked *LockedError
	require.ErrorAs(t, gate.Use(player), &locked)
	assert.Equal(t, "key", locked.Key)

	require.NoError(t, player.Grab(NewItem(keyKind)))
	assert.NoError(t, gate.Use(player))
	assert.NoError(t, NewPassage(stairsKind).Use(player))
}

func TestRegenerate(t *testing.T) {
	kind := *playerKind
	kind.Regen = Regeneration{Every: 3, Amount: 2}
	m := NewMonster(&kind)
	m.AffectHealth(-5)
	assert.Zero(t, m.Regenerate(1))
	assert.Equal(t, 2, m.Regenerate(3))
	assert.Equal(t, 17, m.HP())
}
