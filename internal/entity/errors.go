package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrInventoryFull is returned when items would exceed capacity.
	ErrInventoryFull = errors.New("inventory full")
	// ErrNotInInventory is returned for items the monster does not carry.
	ErrNotInInventory = errors.New("item not in inventory")
	// ErrSlotEmpty is returned when unequipping an empty slot.
	ErrSlotEmpty = errors.New("slot empty")
	// ErrMalformedDrops is returned for drop tables with an empty group.
	ErrMalformedDrops = errors.New("malformed drop table")
	// ErrNoRegistry means a reader lacks the meta info for a kind.
	ErrNoRegistry = errors.New("no registry in reader meta info")
)

// UnknownTypeError is returned when a type key has no registered
// constructor.
type UnknownTypeError struct {
	Kind, Key string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown %s type %q", e.Kind, e.Key)
}

// Slot names an equipment slot.
type Slot int

const (
	SlotWeapon Slot = iota
	SlotArmor
)

func (s Slot) String() string {
	if s == SlotArmor {
		return "armor"
	}
	return "weapon"
}

// SlotTakenError is returned when equipping into an occupied slot.
type SlotTakenError struct {
	Slot     Slot
	Occupant Item
}

func (e *SlotTakenError) Error() string {
	return fmt.Sprintf("%s slot is taken by %s", e.Slot, e.Occupant.Name())
}

// Capability names an optional item trait.
type Capability string

const (
	Consumable Capability = "consumable"
	Wearable   Capability = "wearable"
)

// ItemNotFitError is returned when an item lacks a required capability.
type ItemNotFitError struct {
	Item Item
	Need Capability
}

func (e *ItemNotFitError) Error() string {
	return fmt.Sprintf("%s is not %s", e.Item.Name(), e.Need)
}

// LockedError is returned by passages that need a key item.
type LockedError struct {
	Key string
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("locked: needs %s", e.Key)
}
