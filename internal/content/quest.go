package content

import (
	"rogue-engine/internal/entity"
	"rogue-engine/internal/events"
	"rogue-engine/internal/savefile"
)

// FetchQuestKey is the registry key of FetchQuest.
const FetchQuestKey = "fetch_quest"

// FetchQuest is won by carrying an item of the wanted type. Completing it
// restores the player's health.
type FetchQuest struct {
	entity.QuestBase
	// Want is the item type key to find.
	Want string
}

// NewFetchQuest returns a quest for an item of kind k.
func NewFetchQuest(k *entity.ItemKind) *FetchQuest { return &FetchQuest{Want: k.Key} }

func (q *FetchQuest) TypeKey() string { return FetchQuestKey }
func (q *FetchQuest) Name() string    { return "fetch quest" }

func (q *FetchQuest) Sprite() entity.Sprite {
	for _, k := range itemKinds {
		if k.Key == q.Want {
			return k.Sprite
		}
	}
	return entity.Sprite{Glyph: "?"}
}

func (q *FetchQuest) Summary() string {
	for _, k := range itemKinds {
		if k.Key == q.Want {
			return "Find the " + k.Name + "."
		}
	}
	return "Find a " + q.Want + "."
}

func (q *FetchQuest) Check(ctx entity.QuestContext) bool {
	p := ctx.Player()
	return p != nil && p.HasItem(q.Want)
}

func (q *FetchQuest) Complete(ctx entity.QuestContext) []events.Event {
	q.Finish()
	p := ctx.Player()
	if p == nil {
		return nil
	}
	m := p.Monster()
	if diff := m.AffectHealth(m.MaxHP()); diff != 0 {
		return []events.Event{events.Health{Target: p, Diff: diff}}
	}
	return nil
}

func (q *FetchQuest) Save(w savefile.Writer) {
	q.QuestBase.Save(w)
	w.WriteString(q.Want)
}

func (q *FetchQuest) Load(r savefile.Reader) {
	q.QuestBase.Load(r)
	q.Want = r.ReadString()
}

// Quests returns the quests of a new game.
func Quests() []entity.Quest {
	return []entity.Quest{NewFetchQuest(McGuffin)}
}
