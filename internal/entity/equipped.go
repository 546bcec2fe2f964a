package entity

import "rogue-engine/internal/savefile"

// monster lets EquippedMonster embed Monster without its field hiding the
// promoted Monster method.
type monster = Monster

// EquippedMonster is a monster with a weapon slot and an armor slot.
type EquippedMonster struct {
	monster
	wielding Item
	wearing  Item
}

var _ Creature = (*EquippedMonster)(nil)

// NewEquippedMonster returns an equipped monster of kind k.
func NewEquippedMonster(k *MonsterKind) *EquippedMonster {
	m := &EquippedMonster{}
	m.init(k)
	return m
}

func (m *EquippedMonster) Wielding() Item { return m.wielding }
func (m *EquippedMonster) Wearing() Item  { return m.wearing }

// AttackValue adds the wielded weapon's bonus to base attack.
func (m *EquippedMonster) AttackValue() int {
	if w, ok := m.wielding.(WeaponItem); ok {
		return m.kind.Attack + w.Attack()
	}
	return m.kind.Attack
}

// ProtectionValue is the worn armor's protection, or base protection when
// nothing wearable is worn.
func (m *EquippedMonster) ProtectionValue() int {
	if a, ok := m.wearing.(WearableItem); ok {
		return a.Protection()
	}
	return m.kind.Protection
}

func (m *EquippedMonster) HasItem(key string) bool {
	if m.monster.HasItem(key) {
		return true
	}
	return (m.wielding != nil && m.wielding.TypeKey() == key) ||
		(m.wearing != nil && m.wearing.TypeKey() == key)
}

// Wield moves a carried item into the weapon slot.
func (m *EquippedMonster) Wield(item Item) error {
	i := m.indexOf(item)
	if i < 0 {
		return ErrNotInInventory
	}
	if m.wielding != nil {
		return &SlotTakenError{Slot: SlotWeapon, Occupant: m.wielding}
	}
	m.wielding = m.remove(i)
	return nil
}

// Unwield moves the wielded item back into the inventory.
func (m *EquippedMonster) Unwield() (Item, error) {
	item, err := m.unequip(m.wielding)
	if err == nil {
		m.wielding = nil
	}
	return item, err
}

// Wear moves a carried wearable item into the armor slot.
func (m *EquippedMonster) Wear(item Item) error {
	i := m.indexOf(item)
	if i < 0 {
		return ErrNotInInventory
	}
	if _, ok := item.(WearableItem); !ok {
		return &ItemNotFitError{Item: item, Need: Wearable}
	}
	if m.wearing != nil {
		return &SlotTakenError{Slot: SlotArmor, Occupant: m.wearing}
	}
	m.wearing = m.remove(i)
	return nil
}

// TakeOff moves the worn item back into the inventory.
func (m *EquippedMonster) TakeOff() (Item, error) {
	item, err := m.unequip(m.wearing)
	if err == nil {
		m.wearing = nil
	}
	return item, err
}

func (m *EquippedMonster) unequip(item Item) (Item, error) {
	if item == nil {
		return nil, ErrSlotEmpty
	}
	if err := m.Grab(item); err != nil {
		return nil, err
	}
	return item, nil
}

// DropAll drops the inventory last-first, then the worn and wielded items.
func (m *EquippedMonster) DropAll() []ItemAt {
	out := m.monster.DropAll()
	for _, it := range []Item{m.wearing, m.wielding} {
		if it != nil {
			out = append(out, ItemAt{Pos: m.pos, Item: it})
		}
	}
	m.wearing, m.wielding = nil, nil
	return out
}

func (m *EquippedMonster) Save(w savefile.Writer) {
	m.monster.Save(w)
	saveItem := func(w savefile.Writer, it Item) { Save(w, it) }
	savefile.WriteOptional(w, m.wielding, m.wielding != nil, saveItem)
	savefile.WriteOptional(w, m.wearing, m.wearing != nil, saveItem)
}

func (m *EquippedMonster) Load(r savefile.Reader) {
	m.monster.Load(r)
	loadItem := func(r savefile.Reader) Item { return Load[Item](r, KindItems) }
	m.wielding, _ = savefile.ReadOptional(r, loadItem)
	m.wearing, _ = savefile.ReadOptional(r, loadItem)
}
