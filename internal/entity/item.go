package entity

import (
	"rogue-engine/internal/events"
	"rogue-engine/internal/geom"
	"rogue-engine/internal/savefile"
)

// ItemKind is the static description of an item type.
type ItemKind struct {
	Key    string
	Name   string
	Sprite Sprite
	// Attack is the bonus a wielded Weapon adds.
	Attack int
	// Protection is the value a worn Armor replaces base protection with.
	Protection int
	// Heal is the hit points a Potion restores.
	Heal int
}

// Item is anything that can lie on the floor or sit in an inventory.
type Item interface {
	Entity
	Kind() *ItemKind
}

// ConsumableItem is an item that is used up for an effect.
type ConsumableItem interface {
	Item
	Consume(target *Monster) []events.Event
}

// WearableItem is an item that can go into the armor slot.
type WearableItem interface {
	Item
	Protection() int
}

// WeaponItem is an item that adds to attack when wielded.
type WeaponItem interface {
	Item
	Attack() int
}

// ItemAt pairs an item with a position on a scene.
type ItemAt struct {
	Pos  geom.Point
	Item Item
}

// BasicItem is an item with no capabilities.
type BasicItem struct {
	kind *ItemKind
}

// NewItem returns a plain item of kind k.
func NewItem(k *ItemKind) *BasicItem { return &BasicItem{kind: k} }

func (i *BasicItem) TypeKey() string       { return i.kind.Key }
func (i *BasicItem) Name() string          { return i.kind.Name }
func (i *BasicItem) Sprite() Sprite        { return i.kind.Sprite }
func (i *BasicItem) Kind() *ItemKind       { return i.kind }
func (i *BasicItem) Save(savefile.Writer) {}
func (i *BasicItem) Load(savefile.Reader) {}

// Weapon adds its kind's Attack plus its own enchantment when wielded.
type Weapon struct {
	BasicItem
	Enchant int
}

func NewWeapon(k *ItemKind) *Weapon { return &Weapon{BasicItem: BasicItem{kind: k}} }

func (i *Weapon) Attack() int { return i.kind.Attack + i.Enchant }

func (i *Weapon) Save(w savefile.Writer) {
	i.BasicItem.Save(w)
	w.WriteInt(i.Enchant)
}

func (i *Weapon) Load(r savefile.Reader) {
	i.BasicItem.Load(r)
	i.Enchant = r.ReadInt()
}

// Armor is wearable.
type Armor struct {
	BasicItem
}

func NewArmor(k *ItemKind) *Armor { return &Armor{BasicItem{kind: k}} }

func (i *Armor) Protection() int { return i.kind.Protection }

// Potion heals whoever consumes it.
type Potion struct {
	BasicItem
}

func NewPotion(k *ItemKind) *Potion { return &Potion{BasicItem{kind: k}} }

func (i *Potion) Consume(target *Monster) []events.Event {
	diff := target.AffectHealth(i.kind.Heal)
	return []events.Event{events.Health{Target: target, Diff: diff}}
}
