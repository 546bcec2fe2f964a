package game

import (
	"rogue-engine/internal/auto"
	"rogue-engine/internal/entity"
	"rogue-engine/internal/events"
	"rogue-engine/internal/geom"
	"rogue-engine/internal/pathfind"
	"rogue-engine/internal/vision"
)

// ProcessOthers lets every creature but the player act once, in scene
// order, then gives everybody their action point back.
func (g *Game) ProcessOthers() {
	s := g.Scene()
	for _, a := range s.Actors() {
		c, ok := a.(entity.Creature)
		if !ok || !c.Monster().IsAlive() {
			continue
		}
		if diff := c.Monster().Regenerate(g.turns); diff != 0 {
			g.fire(events.Health{Target: c, Diff: diff})
		}
	}
	for _, a := range s.Actors() {
		c, ok := a.(entity.Creature)
		if !ok || c == g.Player() || !c.Monster().IsAlive() {
			continue
		}
		if c.CanAct() {
			g.act(c)
		}
	}
	for _, a := range s.Actors() {
		a.Replenish()
	}
	g.discover()
}

func (g *Game) act(m entity.Creature) {
	switch m.Monster().Behaviour() {
	case entity.Defensive:
		if target := g.adjacentHostile(m); target != nil {
			g.Attack(m, target)
			m.Spend()
		}
	case entity.Offensive:
		target := g.nearestVisibleHostile(m)
		if target == nil {
			return
		}
		if geom.Distance(m.Pos(), target.Pos()) == 1 && g.Scene().CanMove(m.Pos(), target.Pos()) {
			g.Attack(m, target)
			m.Spend()
			return
		}
		g.chase(m, target)
	}
}

func (g *Game) hostiles(m entity.Creature) []entity.Creature {
	var out []entity.Creature
	for _, a := range g.Scene().Actors() {
		if c, ok := a.(entity.Creature); ok && m.Monster().IsHostileTo(c) {
			out = append(out, c)
		}
	}
	return out
}

func (g *Game) adjacentHostile(m entity.Creature) entity.Creature {
	for _, c := range g.hostiles(m) {
		if geom.Distance(m.Pos(), c.Pos()) == 1 {
			return c
		}
	}
	return nil
}

func (g *Game) nearestVisibleHostile(m entity.Creature) entity.Creature {
	var best entity.Creature
	bestDist := 0
	for _, c := range g.hostiles(m) {
		d := geom.Distance(m.Pos(), c.Pos())
		if best != nil && d >= bestDist {
			continue
		}
		if vision.CanSee(g.Scene(), m, c.Pos()) {
			best, bestDist = c, d
		}
	}
	return best
}

// chase steps toward target, trying the direct step first and then its two
// axis-aligned parts.
func (g *Game) chase(m, target entity.Creature) {
	s := g.Scene()
	d := geom.Sign(target.Pos().Sub(m.Pos()))
	for _, step := range []geom.Point{d, {X: d.X}, {Y: d.Y}} {
		if step == (geom.Point{}) {
			continue
		}
		to := m.Pos().Add(step)
		if !s.CanMove(m.Pos(), to) {
			continue
		}
		if other := s.ActorAt(to); other != nil && other != target {
			continue
		}
		g.MoveActor(m, step)
		return
	}
}

// CheckQuests completes every active quest whose goal is met.
func (g *Game) CheckQuests() {
	for _, q := range g.quests {
		if !q.Active() || q.Done() || !q.Check(g) {
			continue
		}
		g.fire(q.Complete(g)...)
		g.fire(events.QuestCompleted{Quest: q})
		g.log.WithField("quest", q.TypeKey()).Info("quest completed")
	}
}

// autoPassable allows steps onto explored cells the player could walk to.
func (g *Game) autoPassable(to, from geom.Point) bool {
	if !g.Vision().IsExplored(to) {
		return false
	}
	if g.God.Noclip {
		return true
	}
	return g.Scene().CanMove(from, to)
}

func (g *Game) refuseAuto() bool {
	if len(g.VisibleHostiles()) == 0 {
		return false
	}
	g.fire(events.AutoStop{Reason: "monsters in view"})
	return true
}

// WalkTo starts walking to an explored cell.
func (g *Game) WalkTo(dest geom.Point) {
	player := g.Player()
	if player == nil || g.refuseAuto() {
		return
	}
	path := pathfind.FindPath(g.Scene().Size(), player.Pos(), g.autoPassable, pathfind.Destination(dest))
	if path == nil {
		g.fire(events.AutoStop{Reason: "no path"})
		return
	}
	g.alerted = false
	g.auto = auto.Walk(path)
}

// Autoexplore starts walking to the nearest unexplored area until none is
// left.
func (g *Game) Autoexplore() {
	if g.Player() == nil || g.refuseAuto() {
		return
	}
	g.alerted = false
	g.auto = auto.Explore(g.planExploration)
}

func (g *Game) planExploration() []geom.Point {
	player, v := g.Player(), g.Vision()
	if player == nil || v == nil {
		return nil
	}
	size := g.Scene().Size()
	return pathfind.FindPath(size, player.Pos(), g.autoPassable, pathfind.Frontier(size, v.IsExplored))
}

// AutoMoving reports whether queued movement is in progress.
func (g *Game) AutoMoving() bool { return g.auto != nil && !g.auto.Done() }

// PerformAutomovement plays one queued step. It stops the movement when an
// important event happened since the previous step, when a hostile is in
// view, or when the queue is exhausted, and reports whether a step was
// played.
func (g *Game) PerformAutomovement() (bool, error) {
	if !g.AutoMoving() {
		return false, nil
	}
	if g.alerted || len(g.VisibleHostiles()) > 0 {
		g.StopAutomovement("interrupted")
		return false, nil
	}
	shift, ok := g.auto.Next()
	if !ok {
		reason := "arrived"
		if g.auto.Exploring() {
			reason = "nothing left to explore"
		}
		g.StopAutomovement(reason)
		return false, nil
	}
	player := g.Player()
	from := player.Pos()
	if err := g.Perform(Move(shift)); err != nil {
		return false, err
	}
	if g.IsOver() || player.Pos() == from {
		g.StopAutomovement("blocked")
		return false, nil
	}
	return true, nil
}

// StopAutomovement cancels queued movement with the given reason.
func (g *Game) StopAutomovement(reason string) {
	if g.auto == nil {
		return
	}
	g.stopAuto()
	g.fire(events.AutoStop{Reason: reason})
}

func (g *Game) stopAuto() {
	if g.auto != nil {
		g.auto.Stop()
	}
	g.auto = nil
}
