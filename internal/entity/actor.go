package entity

import "rogue-engine/internal/geom"

// Actor is an entity that occupies a cell and takes turns.
type Actor interface {
	Entity
	Pos() geom.Point
	SetPos(p geom.Point)
	// CanAct reports whether the actor still has its action point.
	CanAct() bool
	Spend()
	Replenish()
}

// Creature is an actor with hit points and an inventory.
type Creature interface {
	Actor
	Monster() *Monster
	// AttackValue is the total attack including equipment.
	AttackValue() int
	// ProtectionValue is the total protection including equipment.
	ProtectionValue() int
	// HasItem reports whether the creature carries an item of type key.
	HasItem(key string) bool
	// DropAll empties the creature's belongings onto its cell.
	DropAll() []ItemAt
}

// Behaviour is the AI policy of a monster.
type Behaviour int

const (
	// Neutral monsters never act.
	Neutral Behaviour = iota
	// Player monsters are driven from outside the engine.
	Player
	// Defensive monsters attack hostiles that stand next to them.
	Defensive
	// Offensive monsters chase hostiles they can see.
	Offensive
)

func (b Behaviour) String() string {
	switch b {
	case Player:
		return "player"
	case Defensive:
		return "defensive"
	case Offensive:
		return "offensive"
	}
	return "neutral"
}

// Hostility decides whether self is hostile to other.
type Hostility func(self, other Creature) bool

// HostileTo matches creatures with the given behaviour.
func HostileTo(b Behaviour) Hostility {
	return func(_, other Creature) bool { return other.Monster().Behaviour() == b }
}

// HostileToKinds matches creatures with one of the given type keys.
func HostileToKinds(keys ...string) Hostility {
	return func(_, other Creature) bool {
		for _, k := range keys {
			if other.TypeKey() == k {
				return true
			}
		}
		return false
	}
}

// HostileToStrangers matches every creature of another type.
func HostileToStrangers(self, other Creature) bool {
	return self.TypeKey() != other.TypeKey()
}

// Regeneration restores Amount hit points every Every turns.
type Regeneration struct {
	Every, Amount int
}
