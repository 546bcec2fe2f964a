package entity

import (
	"fmt"
	"sort"
)

// Meta info keys under which registries are handed to a savefile.Reader.
const (
	KindTerrain    = "Terrain"
	KindItems      = "Items"
	KindActors     = "Actors"
	KindAppliances = "Appliances"
	KindQuests     = "Quests"
)

// Registry maps type keys to constructors for one kind of entity.
type Registry[T Entity] struct {
	kind  string
	ctors map[string]func() T
}

// NewRegistry returns an empty registry for kind.
func NewRegistry[T Entity](kind string) *Registry[T] {
	return &Registry[T]{kind: kind, ctors: map[string]func() T{}}
}

// Kind returns the namespace name.
func (r *Registry[T]) Kind() string { return r.kind }

// Register adds a constructor. It panics on an empty or duplicate key since
// both are wiring mistakes.
func (r *Registry[T]) Register(key string, ctor func() T) {
	if key == "" {
		panic(fmt.Sprintf("entity: empty %s key", r.kind))
	}
	if _, dup := r.ctors[key]; dup {
		panic(fmt.Sprintf("entity: duplicate %s key %q", r.kind, key))
	}
	r.ctors[key] = ctor
}

// New constructs a fresh instance of key.
func (r *Registry[T]) New(key string) (T, error) {
	ctor, ok := r.ctors[key]
	if !ok {
		var zero T
		return zero, &UnknownTypeError{Kind: r.kind, Key: key}
	}
	return ctor(), nil
}

// Has reports whether key is registered.
func (r *Registry[T]) Has(key string) bool {
	_, ok := r.ctors[key]
	return ok
}

// Keys lists the registered keys in sorted order.
func (r *Registry[T]) Keys() []string {
	keys := make([]string, 0, len(r.ctors))
	for k := range r.ctors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Registries bundles one registry per kind.
type Registries struct {
	Terrain    *Registry[Terrain]
	Items      *Registry[Item]
	Actors     *Registry[Actor]
	Appliances *Registry[Appliance]
	Quests     *Registry[Quest]
}

// NewRegistries returns empty registries for every kind.
func NewRegistries() *Registries {
	return &Registries{
		Terrain:    NewRegistry[Terrain](KindTerrain),
		Items:      NewRegistry[Item](KindItems),
		Actors:     NewRegistry[Actor](KindActors),
		Appliances: NewRegistry[Appliance](KindAppliances),
		Quests:     NewRegistry[Quest](KindQuests),
	}
}

// Meta returns the reader meta info that makes Load work for every kind.
func (rs *Registries) Meta() map[string]any {
	return map[string]any{
		KindTerrain:    rs.Terrain,
		KindItems:      rs.Items,
		KindActors:     rs.Actors,
		KindAppliances: rs.Appliances,
		KindQuests:     rs.Quests,
	}
}
