// Package events holds the records the engine fires while a turn plays out
// and the FIFO queue a presentation layer drains them from.
package events

import "rogue-engine/internal/geom"

// Subject is anything an event can name.
type Subject interface {
	Name() string
}

// Event is an immutable record of something that happened.
type Event interface {
	// Important events interrupt automatic movement.
	Important() bool
}

type flavor struct{}

func (flavor) Important() bool { return false }

type alert struct{}

func (alert) Important() bool { return true }

// Move is fired when an actor changes position.
type Move struct {
	flavor
	Actor    Subject
	From, To geom.Point
}

// StareIntoVoid is fired on an attempt to walk off the map.
type StareIntoVoid struct {
	flavor
	Actor Subject
}

// BumpIntoTerrain is fired when an impassable cell stops movement.
type BumpIntoTerrain struct {
	flavor
	Actor Subject
	Pos   geom.Point
}

// BumpIntoActor is fired when an actor walks into a non-hostile actor.
type BumpIntoActor struct {
	flavor
	Actor, Target Subject
}

// Attack is fired before damage is applied.
type Attack struct {
	alert
	Actor, Target Subject
	Damage        int
}

// Health reports an applied change of hit points.
type Health struct {
	flavor
	Target Subject
	Diff   int
}

// Death is fired when hit points reach zero.
type Death struct {
	alert
	Target Subject
}

// DiscoverKind tells what sort of thing came into view.
type DiscoverKind int

const (
	DiscoverActor DiscoverKind = iota
	DiscoverItem
	DiscoverAppliance
	DiscoverTerrain
)

// Discover is fired the first time something is seen. Only actors are
// important.
type Discover struct {
	What Subject
	Kind DiscoverKind
	Pos  geom.Point
}

func (e Discover) Important() bool { return e.Kind == DiscoverActor }

// GrabItem is fired when an item moves from the floor into an inventory.
type GrabItem struct {
	flavor
	Actor, Item Subject
}

// DropItem is fired when an item lands on the floor.
type DropItem struct {
	flavor
	Actor, Item Subject
	Pos         geom.Point
}

// NothingToPickUp is fired when grabbing on an empty cell.
type NothingToPickUp struct {
	flavor
	Actor Subject
}

// NothingToDrop is fired when dropping with an empty inventory.
type NothingToDrop struct {
	flavor
	Actor Subject
}

// NoSuchItem is fired when an action names an inventory slot that is empty.
type NoSuchItem struct {
	flavor
	Actor Subject
	Index int
}

// InventoryFull is fired when an item does not fit.
type InventoryFull struct {
	flavor
	Actor, Item Subject
}

// Consume is fired when an item is used up.
type Consume struct {
	flavor
	Actor, Item Subject
}

// NotConsumable is fired when using an item without that capability.
type NotConsumable struct {
	flavor
	Actor, Item Subject
}

// Wield is fired when an item goes into the weapon slot.
type Wield struct {
	flavor
	Actor, Item Subject
}

// Unwield is fired when the weapon slot is emptied.
type Unwield struct {
	flavor
	Actor, Item Subject
}

// Wear is fired when an item goes into the armor slot.
type Wear struct {
	flavor
	Actor, Item Subject
}

// TakeOff is fired when the armor slot is emptied.
type TakeOff struct {
	flavor
	Actor, Item Subject
}

// NotWearable is fired when wearing an item without that capability.
type NotWearable struct {
	flavor
	Actor, Item Subject
}

// SlotTaken is fired when a slot could not be freed for a new item.
type SlotTaken struct {
	flavor
	Actor, Occupant Subject
}

// SlotEmpty is fired when unequipping a slot that holds nothing.
type SlotEmpty struct {
	flavor
	Actor Subject
	Slot  string
}

// Descend is fired when the player takes a passage down.
type Descend struct {
	flavor
	Actor Subject
	Level string
}

// Ascend is fired when the player takes a passage up.
type Ascend struct {
	flavor
	Actor Subject
	Level string
}

// CannotGo is fired when there is no passage in the requested direction.
type CannotGo struct {
	flavor
	Actor Subject
	Down  bool
}

// NeedKey is fired when a locked passage rejects the actor.
type NeedKey struct {
	flavor
	Actor Subject
	Key   string
}

// AutoStop is fired when automatic movement is refused or cancelled.
type AutoStop struct {
	flavor
	Reason string
}

// Welcome is fired when a game starts on its first level.
type Welcome struct {
	flavor
	Level string
}

// QuestCompleted is fired once per finished quest.
type QuestCompleted struct {
	flavor
	Quest Subject
}

// GodMode is fired when cheat flags change.
type GodMode struct {
	flavor
	Vision, Noclip bool
}
