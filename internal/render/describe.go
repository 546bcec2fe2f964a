package render

import (
	"fmt"
	"strings"
	"unicode"

	"rogue-engine/internal/entity"
	"rogue-engine/internal/events"
	"rogue-engine/internal/scene"
)

// Describer turns events into log messages from the player's point of view.
type Describer struct {
	Player entity.Creature
	// Scene names the terrain in bump messages. It may be nil.
	Scene *scene.Scene
}

// Describe returns the message of e. Events the player would not care
// about yield "".
func (d Describer) Describe(e events.Event) string {
	switch e := e.(type) {
	case events.Move:
		return ""
	case events.StareIntoVoid:
		if d.is(e.Actor) {
			return "You stare into the void."
		}
	case events.BumpIntoTerrain:
		if d.is(e.Actor) {
			if d.Scene != nil && d.Scene.Valid(e.Pos) {
				return "You bump into the " + d.Scene.Terrain(e.Pos).Name() + "."
			}
			return "You bump into something."
		}
	case events.BumpIntoActor:
		if d.is(e.Actor) {
			return "You bump into " + d.the(e.Target) + "."
		}
	case events.Attack:
		if e.Damage == 0 {
			does := "does"
			if d.is(e.Actor) {
				does = "do"
			}
			return capitalize(fmt.Sprintf("%s %s %s but %s no harm.", d.the(e.Actor), d.verb(e.Actor, "hit"), d.the(e.Target), does))
		}
		return capitalize(fmt.Sprintf("%s %s %s for %d damage.", d.the(e.Actor), d.verb(e.Actor, "hit"), d.the(e.Target), e.Damage))
	case events.Health:
		if d.is(e.Target) && e.Diff > 0 {
			return fmt.Sprintf("You feel better (+%d).", e.Diff)
		}
	case events.Death:
		if d.is(e.Target) {
			return "You die..."
		}
		return capitalize(d.the(e.Target) + " dies.")
	case events.Discover:
		switch e.Kind {
		case events.DiscoverActor:
			return "You see " + a(e.What) + "."
		case events.DiscoverItem, events.DiscoverAppliance, events.DiscoverTerrain:
			return "You notice " + a(e.What) + "."
		}
	case events.GrabItem:
		return capitalize(fmt.Sprintf("%s %s up %s.", d.the(e.Actor), d.verb(e.Actor, "pick"), d.the(e.Item)))
	case events.DropItem:
		return capitalize(fmt.Sprintf("%s %s %s.", d.the(e.Actor), d.verb(e.Actor, "drop"), a(e.Item)))
	case events.NothingToPickUp:
		return "There is nothing here."
	case events.NothingToDrop:
		return "You have nothing to drop."
	case events.NoSuchItem:
		return "You have no such item."
	case events.InventoryFull:
		return "Your pack has no room for " + d.the(e.Item) + "."
	case events.Consume:
		return "You use " + d.the(e.Item) + "."
	case events.NotConsumable:
		return "You cannot use " + d.the(e.Item) + "."
	case events.Wield:
		return "You wield " + d.the(e.Item) + "."
	case events.Unwield:
		return "You put away " + d.the(e.Item) + "."
	case events.Wear:
		return "You put on " + d.the(e.Item) + "."
	case events.TakeOff:
		return "You take off " + d.the(e.Item) + "."
	case events.NotWearable:
		return "You cannot wear " + d.the(e.Item) + "."
	case events.SlotTaken:
		return "You cannot put away " + d.the(e.Occupant) + "."
	case events.SlotEmpty:
		return "Your " + e.Slot + " slot is empty."
	case events.Descend:
		return "You go down to " + e.Level + "."
	case events.Ascend:
		return "You climb up to " + e.Level + "."
	case events.CannotGo:
		if e.Down {
			return "You cannot go down here."
		}
		return "You cannot go up here."
	case events.NeedKey:
		return "It is locked. You need a " + strings.ReplaceAll(e.Key, "_", " ") + "."
	case events.AutoStop:
		if e.Reason == "arrived" {
			return ""
		}
		return capitalize(e.Reason) + "."
	case events.Welcome:
		return "Welcome to " + e.Level + ". Press ? for help."
	case events.QuestCompleted:
		if q, ok := e.Quest.(entity.Quest); ok {
			return "Quest completed: " + q.Summary()
		}
		return "Quest completed."
	case events.GodMode:
		return fmt.Sprintf("God mode: vision %s, noclip %s.", onOff(e.Vision), onOff(e.Noclip))
	}
	return ""
}

// is reports whether s is the player. Effects name the player by its
// embedded monster.
func (d Describer) is(s events.Subject) bool {
	if d.Player == nil || s == nil {
		return false
	}
	if c, ok := s.(entity.Creature); ok && c == d.Player {
		return true
	}
	m, ok := s.(*entity.Monster)
	return ok && m == d.Player.Monster()
}

func (d Describer) the(s events.Subject) string {
	if d.is(s) {
		return "you"
	}
	if s == nil {
		return "something"
	}
	return "the " + s.Name()
}

// verb conjugates v for s in the present tense.
func (d Describer) verb(s events.Subject, v string) string {
	if d.is(s) {
		return v
	}
	return v + "s"
}

func a(s events.Subject) string {
	if s == nil {
		return "something"
	}
	name := s.Name()
	if name == "" || unicode.IsUpper([]rune(name)[0]) {
		return "the " + name
	}
	if strings.ContainsRune("aeiou", rune(name[0])) {
		return "an " + name
	}
	return "a " + name
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
