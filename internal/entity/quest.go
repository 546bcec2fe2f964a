package entity

import (
	"rogue-engine/internal/events"
	"rogue-engine/internal/savefile"
)

// QuestContext is the part of the game a quest can inspect and affect.
type QuestContext interface {
	Player() Creature
	Turns() int
	// SceneID is the id of the scene the player is in.
	SceneID() string
}

// Quest is a goal tracked by the game between turns.
type Quest interface {
	Entity
	Active() bool
	Done() bool
	Activate()
	// Summary is a one-line description.
	Summary() string
	// Check reports whether the quest can be completed now.
	Check(ctx QuestContext) bool
	// Complete hands out rewards and closes the quest.
	Complete(ctx QuestContext) []events.Event
}

// QuestBase holds the state every quest shares. Quests are created
// inactive.
type QuestBase struct {
	active bool
	done   bool
}

func (q *QuestBase) Active() bool { return q.active }
func (q *QuestBase) Done() bool   { return q.done }
func (q *QuestBase) Activate()    { q.active = true }

// Finish marks the quest as completed.
func (q *QuestBase) Finish() {
	q.active = false
	q.done = true
}

func (q *QuestBase) Save(w savefile.Writer) {
	w.WriteBool(q.active)
	w.WriteBool(q.done)
}

func (q *QuestBase) Load(r savefile.Reader) {
	q.active = r.ReadBool()
	q.done = r.ReadBool()
}
