package entity

import "rogue-engine/internal/savefile"

// TerrainKind is the static description shared by all cells of one type.
type TerrainKind struct {
	Key    string
	Name   string
	Sprite Sprite
	// Remembered is drawn for explored cells out of sight. Zero means
	// Sprite.
	Remembered Sprite
	Passable   bool
	// Dark cells block sight beyond adjacency.
	Dark bool
	// NoDiagonal forbids diagonal steps into or out of the cell.
	NoDiagonal bool
	// Notable terrain is reported when first seen.
	Notable bool
}

// Terrain is the static content of one grid cell.
type Terrain interface {
	Entity
	Kind() *TerrainKind
	Passable() bool
	Dark() bool
	AllowsDiagonal() bool
	Remembered() Sprite
	// Clone returns an unaliased copy for placing into another cell.
	Clone() Terrain
}

// BasicTerrain is terrain with no per-cell state.
type BasicTerrain struct {
	kind *TerrainKind
}

// NewTerrain returns terrain of kind k.
func NewTerrain(k *TerrainKind) *BasicTerrain { return &BasicTerrain{kind: k} }

func (t *BasicTerrain) TypeKey() string      { return t.kind.Key }
func (t *BasicTerrain) Name() string         { return t.kind.Name }
func (t *BasicTerrain) Sprite() Sprite       { return t.kind.Sprite }
func (t *BasicTerrain) Kind() *TerrainKind   { return t.kind }
func (t *BasicTerrain) Passable() bool       { return t.kind.Passable }
func (t *BasicTerrain) Dark() bool           { return t.kind.Dark }
func (t *BasicTerrain) AllowsDiagonal() bool { return !t.kind.NoDiagonal }

func (t *BasicTerrain) Remembered() Sprite {
	if t.kind.Remembered.Glyph == "" {
		return t.kind.Sprite
	}
	return t.kind.Remembered
}

func (t *BasicTerrain) Clone() Terrain {
	c := *t
	return &c
}

func (t *BasicTerrain) Save(savefile.Writer) {}
func (t *BasicTerrain) Load(savefile.Reader) {}

// Water is terrain with a depth. Deep water cannot be waded.
type Water struct {
	BasicTerrain
	Depth int
}

// NewWater returns water of kind k at depth.
func NewWater(k *TerrainKind, depth int) *Water {
	return &Water{BasicTerrain: BasicTerrain{kind: k}, Depth: depth}
}

func (t *Water) Passable() bool { return t.kind.Passable && t.Depth < 3 }

func (t *Water) Clone() Terrain {
	c := *t
	return &c
}

func (t *Water) Save(w savefile.Writer) {
	t.BasicTerrain.Save(w)
	w.WriteInt(t.Depth)
}

func (t *Water) Load(r savefile.Reader) {
	t.BasicTerrain.Load(r)
	t.Depth = r.ReadInt()
}
