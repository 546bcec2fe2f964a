package entity

import (
	"math/rand"
	"slices"

	"rogue-engine/internal/events"
	"rogue-engine/internal/geom"
	"rogue-engine/internal/savefile"
)

// MonsterKind is the static description of a monster type.
type MonsterKind struct {
	Key          string
	Name         string
	Sprite       Sprite
	MaxHP        int
	MaxInventory int
	Attack       int
	Protection   int
	// Vision is the sight radius used by AI behaviours.
	Vision    int
	Behaviour Behaviour
	HostileTo []Hostility
	Drops     DropTable
	Regen     Regeneration
}

// Monster is a creature with hit points and a bounded inventory.
type Monster struct {
	kind         *MonsterKind
	pos          geom.Point
	actionPoint  bool
	hp           int
	inventory    []Item
	pendingDrops bool
}

var _ Creature = (*Monster)(nil)

// NewMonster returns a monster of kind k at full health.
func NewMonster(k *MonsterKind) *Monster {
	m := &Monster{}
	m.init(k)
	return m
}

func (m *Monster) init(k *MonsterKind) {
	m.kind = k
	m.hp = k.MaxHP
	m.actionPoint = true
	m.pendingDrops = len(k.Drops) > 0
}

func (m *Monster) TypeKey() string   { return m.kind.Key }
func (m *Monster) Name() string      { return m.kind.Name }
func (m *Monster) Sprite() Sprite    { return m.kind.Sprite }
func (m *Monster) Kind() *MonsterKind { return m.kind }
func (m *Monster) Monster() *Monster { return m }

func (m *Monster) Pos() geom.Point     { return m.pos }
func (m *Monster) SetPos(p geom.Point) { m.pos = p }
func (m *Monster) CanAct() bool        { return m.actionPoint }
func (m *Monster) Spend()              { m.actionPoint = false }
func (m *Monster) Replenish()          { m.actionPoint = true }

func (m *Monster) Behaviour() Behaviour { return m.kind.Behaviour }
func (m *Monster) Vision() int          { return m.kind.Vision }
func (m *Monster) HP() int              { return m.hp }
func (m *Monster) MaxHP() int           { return m.kind.MaxHP }
func (m *Monster) IsAlive() bool        { return m.hp > 0 }
func (m *Monster) MaxInventory() int    { return m.kind.MaxInventory }

func (m *Monster) AttackValue() int     { return m.kind.Attack }
func (m *Monster) ProtectionValue() int { return m.kind.Protection }

// Inventory returns a copy of the carried items in pick-up order.
func (m *Monster) Inventory() []Item { return slices.Clone(m.inventory) }

// HasDrops reports whether the drop table has not been rolled yet.
func (m *Monster) HasDrops() bool { return m.pendingDrops }

// IsHostileTo reports whether any of the kind's hostility predicates
// matches other. A monster is never hostile to itself or to the dead.
func (m *Monster) IsHostileTo(other Creature) bool {
	if other == nil || other.Monster() == m || !other.Monster().IsAlive() {
		return false
	}
	for _, h := range m.kind.HostileTo {
		if h(m, other) {
			return true
		}
	}
	return false
}

// AffectHealth adds diff to hit points, clamped to [0, MaxHP], and returns
// the change actually applied.
func (m *Monster) AffectHealth(diff int) int {
	next := min(max(m.hp+diff, 0), m.kind.MaxHP)
	applied := next - m.hp
	m.hp = next
	return applied
}

// Regenerate applies the kind's regeneration for the given turn number and
// returns the change applied.
func (m *Monster) Regenerate(turn int) int {
	r := m.kind.Regen
	if r.Every <= 0 || r.Amount == 0 || turn%r.Every != 0 || !m.IsAlive() {
		return 0
	}
	return m.AffectHealth(r.Amount)
}

// Grab adds items to the inventory. Either all of them fit or none is
// taken.
func (m *Monster) Grab(items ...Item) error {
	if len(m.inventory)+len(items) > m.kind.MaxInventory {
		return ErrInventoryFull
	}
	m.inventory = append(m.inventory, items...)
	return nil
}

func (m *Monster) indexOf(item Item) int {
	for i, it := range m.inventory {
		if it == item {
			return i
		}
	}
	return -1
}

func (m *Monster) remove(i int) Item {
	item := m.inventory[i]
	m.inventory = slices.Delete(m.inventory, i, i+1)
	if len(m.inventory) == 0 {
		m.inventory = nil
	}
	return item
}

// HasItem reports whether an item of type key is in the inventory.
func (m *Monster) HasItem(key string) bool {
	return slices.ContainsFunc(m.inventory, func(it Item) bool { return it.TypeKey() == key })
}

// Drop removes item from the inventory and places it at the monster's
// position.
func (m *Monster) Drop(item Item) (ItemAt, error) {
	i := m.indexOf(item)
	if i < 0 {
		return ItemAt{}, ErrNotInInventory
	}
	return ItemAt{Pos: m.pos, Item: m.remove(i)}, nil
}

// DropIndex is Drop by inventory position.
func (m *Monster) DropIndex(i int) (ItemAt, error) {
	if i < 0 || i >= len(m.inventory) {
		return ItemAt{}, ErrNotInInventory
	}
	return ItemAt{Pos: m.pos, Item: m.remove(i)}, nil
}

// DropAll empties the inventory, last picked up first.
func (m *Monster) DropAll() []ItemAt {
	out := make([]ItemAt, 0, len(m.inventory))
	for i := len(m.inventory) - 1; i >= 0; i-- {
		out = append(out, ItemAt{Pos: m.pos, Item: m.inventory[i]})
	}
	m.inventory = nil
	return out
}

// Consume uses up a carried consumable and returns its effect events.
func (m *Monster) Consume(item Item) ([]events.Event, error) {
	i := m.indexOf(item)
	if i < 0 {
		return nil, ErrNotInInventory
	}
	c, ok := item.(ConsumableItem)
	if !ok {
		return nil, &ItemNotFitError{Item: item, Need: Consumable}
	}
	m.remove(i)
	return c.Consume(m), nil
}

// FillDrops rolls the drop table once and adds the results to the
// inventory. Later calls do nothing, even when the rolled items did not fit.
func (m *Monster) FillDrops(rng *rand.Rand) error {
	if !m.pendingDrops {
		return nil
	}
	items, err := m.kind.Drops.Roll(rng)
	if err != nil {
		return err
	}
	m.pendingDrops = false
	return m.Grab(items...)
}

func (m *Monster) Save(w savefile.Writer) {
	w.WritePoint(m.pos)
	w.WriteBool(m.actionPoint)
	w.WriteInt(m.hp)
	savefile.WriteList(w, m.inventory, func(w savefile.Writer, it Item) { Save(w, it) })
	w.WriteBool(m.pendingDrops)
}

func (m *Monster) Load(r savefile.Reader) {
	m.pos = r.ReadPoint()
	m.actionPoint = r.ReadBool()
	m.hp = min(max(r.ReadInt(), 0), m.kind.MaxHP)
	m.inventory = savefile.ReadList(r, func(r savefile.Reader) Item { return Load[Item](r, KindItems) })
	m.pendingDrops = r.ReadBool()
}
