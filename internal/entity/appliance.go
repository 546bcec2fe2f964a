package entity

import "rogue-engine/internal/savefile"

// Direction tells where a passage leads.
type Direction int

const (
	Nowhere Direction = iota
	Down
	Up
)

// ApplianceKind is the static description of an appliance type.
type ApplianceKind struct {
	Key       string
	Name      string
	Sprite    Sprite
	Direction Direction
	// KeyItem is the item type key needed to use a passage. Empty means
	// unlocked.
	KeyItem string
}

// Appliance is an immovable object on a scene.
type Appliance interface {
	Entity
	Kind() *ApplianceKind
}

// BasicAppliance is an appliance with no state, like a statue.
type BasicAppliance struct {
	kind *ApplianceKind
}

func NewAppliance(k *ApplianceKind) *BasicAppliance { return &BasicAppliance{kind: k} }

func (a *BasicAppliance) TypeKey() string      { return a.kind.Key }
func (a *BasicAppliance) Name() string         { return a.kind.Name }
func (a *BasicAppliance) Sprite() Sprite       { return a.kind.Sprite }
func (a *BasicAppliance) Kind() *ApplianceKind { return a.kind }
func (a *BasicAppliance) Save(savefile.Writer) {}
func (a *BasicAppliance) Load(savefile.Reader) {}

// DefaultPassageID is the passage an unspecified entry resolves to.
const DefaultPassageID = "enter"

// LevelPassage connects a scene to another one.
type LevelPassage struct {
	BasicAppliance
	// ID names this passage within its own scene.
	ID string
	// Destination is the level id of the scene it leads to.
	Destination string
	// DestinationPassage is the ID of the arrival passage there.
	DestinationPassage string
}

// NewPassage returns a passage of kind k with the default id.
func NewPassage(k *ApplianceKind) *LevelPassage {
	return &LevelPassage{BasicAppliance: BasicAppliance{kind: k}, ID: DefaultPassageID}
}

// Direction returns where the passage leads.
func (p *LevelPassage) Direction() Direction { return p.kind.Direction }

// Use checks whether who may take the passage.
func (p *LevelPassage) Use(who Creature) error {
	if k := p.kind.KeyItem; k != "" && !who.HasItem(k) {
		return &LockedError{Key: k}
	}
	return nil
}

func (p *LevelPassage) Save(w savefile.Writer) {
	p.BasicAppliance.Save(w)
	w.WriteString(p.ID)
	w.WriteString(p.Destination)
	w.WriteString(p.DestinationPassage)
}

func (p *LevelPassage) Load(r savefile.Reader) {
	p.BasicAppliance.Load(r)
	p.ID = r.ReadString()
	p.Destination = r.ReadString()
	p.DestinationPassage = r.ReadString()
}
