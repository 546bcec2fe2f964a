package game

import (
	"errors"

	"github.com/sirupsen/logrus"

	"rogue-engine/internal/entity"
	"rogue-engine/internal/events"
	"rogue-engine/internal/geom"
)

// ActionKind is a player-requested game action.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionMove
	ActionWait
	ActionGrab
	ActionDrop
	ActionConsume
	ActionWield
	ActionUnwield
	ActionWear
	ActionTakeOff
	ActionDescend
	ActionAscend
	ActionWalkTo
	ActionAutoexplore
	ActionSuicide
	ActionGodVision
	ActionGodNoclip
)

// Action is one player command with its argument.
type Action struct {
	Kind ActionKind
	// Dir is the unit shift of a move.
	Dir geom.Point
	// Target is the destination of a walk.
	Target geom.Point
	// Item is an inventory index.
	Item int
}

// Move returns a move action.
func Move(dir geom.Point) Action { return Action{Kind: ActionMove, Dir: dir} }

// equipper is a creature with weapon and armor slots.
type equipper interface {
	entity.Creature
	Wielding() entity.Item
	Wearing() entity.Item
	Wield(entity.Item) error
	Unwield() (entity.Item, error)
	Wear(entity.Item) error
	TakeOff() (entity.Item, error)
}

// Perform plays a player action. When it spends the player's action point
// the turn advances and every other creature acts. The returned error is
// fatal; rule violations are reported as events.
func (g *Game) Perform(a Action) error {
	player := g.Player()
	if player == nil || !player.Monster().IsAlive() {
		return ErrGameOver
	}
	switch a.Kind {
	case ActionNone:
	case ActionMove:
		g.MoveActor(player, a.Dir)
	case ActionWait:
		player.Spend()
	case ActionGrab:
		g.Grab(player)
	case ActionDrop:
		g.Drop(player, a.Item)
	case ActionConsume:
		g.Consume(player, a.Item)
	case ActionWield:
		g.Wield(player, a.Item)
	case ActionUnwield:
		g.Unwield(player)
	case ActionWear:
		g.Wear(player, a.Item)
	case ActionTakeOff:
		g.TakeOff(player)
	case ActionDescend:
		if err := g.UsePassage(player, entity.Down); err != nil {
			return err
		}
	case ActionAscend:
		if err := g.UsePassage(player, entity.Up); err != nil {
			return err
		}
	case ActionWalkTo:
		g.WalkTo(a.Target)
	case ActionAutoexplore:
		g.Autoexplore()
	case ActionSuicide:
		g.kill(player)
	case ActionGodVision:
		g.God.Vision = !g.God.Vision
		g.fire(events.GodMode{Vision: g.God.Vision, Noclip: g.God.Noclip})
	case ActionGodNoclip:
		g.God.Noclip = !g.God.Noclip
		g.fire(events.GodMode{Vision: g.God.Vision, Noclip: g.God.Noclip})
	}
	if !player.CanAct() || !player.Monster().IsAlive() {
		g.endTurn()
	}
	return nil
}

func (g *Game) endTurn() {
	g.turns++
	g.ProcessOthers()
	g.CheckQuests()
}

// MoveActor steps actor by shift. Walking into a hostile attacks it. It
// reports whether the actor acted.
func (g *Game) MoveActor(actor entity.Creature, shift geom.Point) bool {
	s := g.Scene()
	from := actor.Pos()
	to := from.Add(shift)
	if !s.Valid(to) {
		g.fire(events.StareIntoVoid{Actor: actor})
		return false
	}
	if other := s.ActorAt(to); other != nil && other != actor {
		if target, ok := other.(entity.Creature); ok && actor.Monster().IsHostileTo(target) {
			g.Attack(actor, target)
			actor.Spend()
			return true
		}
		g.fire(events.BumpIntoActor{Actor: actor, Target: other})
		return false
	}
	noclip := g.God.Noclip && actor == g.Player()
	if !noclip && !s.CanMove(from, to) {
		g.fire(events.BumpIntoTerrain{Actor: actor, Pos: to})
		return false
	}
	actor.SetPos(to)
	actor.Spend()
	g.fire(events.Move{Actor: actor, From: from, To: to})
	if actor == g.Player() {
		g.updateVision()
	}
	return true
}

// Attack deals max(0, attack-protection) damage to target.
func (g *Game) Attack(actor, target entity.Creature) {
	damage := max(0, actor.AttackValue()-target.ProtectionValue())
	g.fire(events.Attack{Actor: actor, Target: target, Damage: damage})
	g.affectHealth(target, -damage)
}

func (g *Game) affectHealth(target entity.Creature, diff int) {
	applied := target.Monster().AffectHealth(diff)
	g.fire(events.Health{Target: target, Diff: applied})
	if !target.Monster().IsAlive() {
		g.die(target)
	}
}

func (g *Game) kill(target entity.Creature) {
	g.affectHealth(target, -target.Monster().HP())
}

// die removes a dead creature and spills its belongings.
func (g *Game) die(target entity.Creature) {
	g.fire(events.Death{Target: target})
	s := g.Scene()
	if err := target.Monster().FillDrops(g.rng); err != nil {
		g.log.WithError(err).WithField("actor", target.TypeKey()).Warn("drops not rolled")
	}
	for _, it := range target.DropAll() {
		s.DropItem(it)
		g.fire(events.DropItem{Actor: target, Item: it.Item, Pos: it.Pos})
	}
	s.RemoveActor(target)
	g.log.WithFields(logrus.Fields{"actor": target.TypeKey(), "pos": target.Pos(), "turn": g.turns}).Debug("death")
}

// Grab picks up the first item under actor.
func (g *Game) Grab(actor entity.Creature) {
	s := g.Scene()
	items := s.ItemsAt(actor.Pos())
	if len(items) == 0 {
		g.fire(events.NothingToPickUp{Actor: actor})
		return
	}
	item := items[0]
	if err := actor.Monster().Grab(item); err != nil {
		g.fire(events.InventoryFull{Actor: actor, Item: item})
		return
	}
	s.TakeItem(item)
	actor.Spend()
	g.fire(events.GrabItem{Actor: actor, Item: item})
}

// inventoryItem returns the i-th inventory item, firing NoSuchItem when the
// slot is empty.
func (g *Game) inventoryItem(actor entity.Creature, i int) entity.Item {
	inv := actor.Monster().Inventory()
	if i < 0 || i >= len(inv) {
		g.fire(events.NoSuchItem{Actor: actor, Index: i})
		return nil
	}
	return inv[i]
}

// Drop puts the i-th inventory item on the floor.
func (g *Game) Drop(actor entity.Creature, i int) {
	dropped, err := actor.Monster().DropIndex(i)
	if err != nil {
		g.fire(events.NothingToDrop{Actor: actor})
		return
	}
	g.Scene().DropItem(dropped)
	actor.Spend()
	g.fire(events.DropItem{Actor: actor, Item: dropped.Item, Pos: dropped.Pos})
}

// Consume uses up the i-th inventory item.
func (g *Game) Consume(actor entity.Creature, i int) {
	item := g.inventoryItem(actor, i)
	if item == nil {
		return
	}
	effects, err := actor.Monster().Consume(item)
	if err != nil {
		g.fire(events.NotConsumable{Actor: actor, Item: item})
		return
	}
	actor.Spend()
	g.fire(events.Consume{Actor: actor, Item: item})
	g.fire(effects...)
}

// Wield puts the i-th inventory item into the weapon slot, unwielding the
// current weapon first.
func (g *Game) Wield(actor entity.Creature, i int) {
	eq, ok := actor.(equipper)
	if !ok {
		return
	}
	item := g.inventoryItem(actor, i)
	if item == nil {
		return
	}
	if current := eq.Wielding(); current != nil {
		if _, err := eq.Unwield(); err != nil {
			g.fire(events.SlotTaken{Actor: actor, Occupant: current})
			return
		}
		g.fire(events.Unwield{Actor: actor, Item: current})
	}
	if err := eq.Wield(item); err != nil {
		return
	}
	actor.Spend()
	g.fire(events.Wield{Actor: actor, Item: item})
}

// Unwield empties the weapon slot.
func (g *Game) Unwield(actor entity.Creature) {
	eq, ok := actor.(equipper)
	if !ok {
		return
	}
	item, err := eq.Unwield()
	if !g.unequipFailed(actor, eq.Wielding(), entity.SlotWeapon, err) {
		actor.Spend()
		g.fire(events.Unwield{Actor: actor, Item: item})
	}
}

// Wear puts the i-th inventory item into the armor slot, taking off the
// current armor first.
func (g *Game) Wear(actor entity.Creature, i int) {
	eq, ok := actor.(equipper)
	if !ok {
		return
	}
	item := g.inventoryItem(actor, i)
	if item == nil {
		return
	}
	if _, wearable := item.(entity.WearableItem); !wearable {
		g.fire(events.NotWearable{Actor: actor, Item: item})
		return
	}
	if current := eq.Wearing(); current != nil {
		if _, err := eq.TakeOff(); err != nil {
			g.fire(events.SlotTaken{Actor: actor, Occupant: current})
			return
		}
		g.fire(events.TakeOff{Actor: actor, Item: current})
	}
	if err := eq.Wear(item); err != nil {
		return
	}
	actor.Spend()
	g.fire(events.Wear{Actor: actor, Item: item})
}

// TakeOff empties the armor slot.
func (g *Game) TakeOff(actor entity.Creature) {
	eq, ok := actor.(equipper)
	if !ok {
		return
	}
	item, err := eq.TakeOff()
	if !g.unequipFailed(actor, eq.Wearing(), entity.SlotArmor, err) {
		actor.Spend()
		g.fire(events.TakeOff{Actor: actor, Item: item})
	}
}

func (g *Game) unequipFailed(actor entity.Creature, occupant entity.Item, slot entity.Slot, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, entity.ErrSlotEmpty):
		g.fire(events.SlotEmpty{Actor: actor, Slot: slot.String()})
	case errors.Is(err, entity.ErrInventoryFull):
		g.fire(events.InventoryFull{Actor: actor, Item: occupant})
	}
	return true
}

// UsePassage takes the passage under actor in the given direction.
func (g *Game) UsePassage(actor entity.Creature, dir entity.Direction) error {
	down := dir == entity.Down
	passage := g.Scene().PassageAt(actor.Pos())
	if passage == nil || passage.Direction() != dir || passage.Destination == "" {
		g.fire(events.CannotGo{Actor: actor, Down: down})
		return nil
	}
	var locked *entity.LockedError
	if err := passage.Use(actor); errors.As(err, &locked) {
		g.fire(events.NeedKey{Actor: actor, Key: locked.Key})
		return nil
	}
	if down {
		g.fire(events.Descend{Actor: actor, Level: passage.Destination})
	} else {
		g.fire(events.Ascend{Actor: actor, Level: passage.Destination})
	}
	return g.Travel(actor, passage.Destination, passage.DestinationPassage)
}
