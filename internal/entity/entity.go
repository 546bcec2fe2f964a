// Package entity defines everything that can be placed on a scene: terrain,
// items, appliances, actors and the quests tracked alongside them.
//
// Concrete types are registered by string key in per-kind registries so a
// save can name the exact type of every entity it stores. An entity saves
// its base fields first and each embedding layer appends its own fields
// after calling the embedded type's Save.
package entity

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"rogue-engine/internal/savefile"
)

// Sprite is what a front-end draws for an entity.
type Sprite struct {
	Glyph string
	Color tcell.Color
}

// Entity is anything that can be placed on a scene and saved.
type Entity interface {
	// TypeKey is the registry key of the concrete type.
	TypeKey() string
	Name() string
	Sprite() Sprite
	Save(w savefile.Writer)
	Load(r savefile.Reader)
}

// Save writes e's type key followed by its fields.
func Save(w savefile.Writer, e Entity) {
	w.WriteString(e.TypeKey())
	e.Save(w)
}

// Load reads a type key, builds the matching type from the registry stored
// in the reader's meta info under kind, and loads its fields. Failures are
// recorded on r and the zero value is returned.
func Load[T Entity](r savefile.Reader, kind string) T {
	var zero T
	reg, ok := r.Meta(kind).(*Registry[T])
	if !ok {
		r.Fail(fmt.Errorf("%w: %s", ErrNoRegistry, kind))
		return zero
	}
	key := r.ReadString()
	if r.Err() != nil {
		return zero
	}
	e, err := reg.New(key)
	if err != nil {
		r.Fail(err)
		return zero
	}
	e.Load(r)
	if r.Err() != nil {
		return zero
	}
	return e
}
