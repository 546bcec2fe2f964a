package builders

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"rogue-engine/internal/entity"
	"rogue-engine/internal/geom"
	"rogue-engine/internal/logger"
	"rogue-engine/internal/pcg"
	"rogue-engine/internal/scene"
)

// Symbolic terrain keys written by the layouts.
const (
	Wall        = "wall"
	Floor       = "floor"
	Door        = "door"
	DarkFloor   = "dark_floor"
	TunnelFloor = "tunnel_floor"
	Water       = "water"
	Corner      = "corner"
	WallH       = "wall_h"
	WallV       = "wall_v"
	Passage     = "rogue_passage"
	RogueDoor   = "rogue_door"
	Void        = "void"
)

// Appliance keys for the start and exit placements.
const (
	StartKey = "start"
	ExitKey  = "exit"
)

var (
	ErrUnknownKey = errors.New("unknown symbolic key")
	ErrTooSmall   = errors.New("map too small for layout")
	ErrNotBuilt   = errors.New("builder has not generated yet")
)

// UnknownKeyError names a symbolic key missing from every mapping.
type UnknownKeyError struct {
	Kind string
	Key  string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("%s: no mapping for %q", e.Kind, e.Key)
}

func (e *UnknownKeyError) Unwrap() error { return ErrUnknownKey }

// Layout writes symbolic terrain keys into the grid.
type Layout interface {
	Fill(rng *rand.Rand, grid *geom.Matrix[string]) error
	// IsOpen reports whether a cell holding key can take the start, the exit
	// and population.
	IsOpen(key string) bool
}

// StartExitPlacer is implemented by layouts that choose start and exit
// themselves instead of sampling open cells.
type StartExitPlacer interface {
	PlaceStartExit(rng *rand.Rand, b *Builder) (start, exit geom.Point, err error)
}

// Placement is one generated entity: a position, a symbolic key and extra
// constructor arguments.
type Placement struct {
	Pos  geom.Point
	Key  string
	Args []string
}

// Options configures a Builder.
type Options struct {
	Size geom.Size
	// Grid is an optional preallocated grid. It overrides Size.
	Grid    *geom.Matrix[string]
	Layout  Layout
	Mapping *Mapping
	// Start and Exit are appliance keys placed at the start and exit cells.
	// Empty keys place nothing but the cells are still chosen.
	Start    string
	Exit     string
	Monsters Population
	Items    Population
	Log      logrus.FieldLogger
}

// Builder runs the generation phases for one scene, then bakes the symbolic
// result into concrete entities.
type Builder struct {
	Log logrus.FieldLogger

	opts Options
	rng  *rand.Rand
	grid *geom.Matrix[string]

	generated   bool
	start, exit geom.Point
	appliances  []Placement
	actors      []Placement
	items       []Placement
	byPos       map[geom.Point]*bucket
}

type bucket struct {
	appliances, actors, items int
}

// New returns a builder drawing every random value from rng.
func New(rng *rand.Rand, opts Options) *Builder {
	grid := opts.Grid
	if grid == nil {
		grid = geom.NewMatrix(opts.Size, Wall)
	}
	return &Builder{
		Log:   logger.OrDiscard(opts.Log),
		opts:  opts,
		rng:   rng,
		grid:  grid,
		byPos: map[geom.Point]*bucket{},
	}
}

func (b *Builder) Size() geom.Size            { return b.grid.Size() }
func (b *Builder) Grid() *geom.Matrix[string] { return b.grid }
func (b *Builder) Start() geom.Point          { return b.start }
func (b *Builder) Exit() geom.Point           { return b.exit }
func (b *Builder) Appliances() []Placement    { return b.appliances }
func (b *Builder) Actors() []Placement        { return b.actors }
func (b *Builder) Items() []Placement         { return b.items }

// IsOpen reports whether the layout considers p open.
func (b *Builder) IsOpen(p geom.Point) bool {
	key, ok := b.grid.Get(p)
	return ok && b.opts.Layout.IsOpen(key)
}

// IsAccessible reports whether p is open and holds no appliance.
func (b *Builder) IsAccessible(p geom.Point) bool {
	if !b.IsOpen(p) {
		return false
	}
	bk := b.byPos[p]
	return bk == nil || bk.appliances == 0
}

// IsFree reports whether p is accessible and holds no actor.
func (b *Builder) IsFree(p geom.Point) bool {
	if !b.IsAccessible(p) {
		return false
	}
	bk := b.byPos[p]
	return bk == nil || bk.actors == 0
}

// Point samples a cell accepted by check.
func (b *Builder) Point(check func(geom.Point) bool) (geom.Point, error) {
	return pcg.PointWhere(b.rng, b.grid.Size(), check)
}

// OpenCells counts the open cells of the grid.
func (b *Builder) OpenCells() int {
	n := 0
	b.grid.Each(func(_ geom.Point, key string) {
		if b.opts.Layout.IsOpen(key) {
			n++
		}
	})
	return n
}

func (b *Builder) at(p geom.Point) *bucket {
	bk, ok := b.byPos[p]
	if !ok {
		bk = &bucket{}
		b.byPos[p] = bk
	}
	return bk
}

// AddAppliance records an appliance placement.
func (b *Builder) AddAppliance(p Placement) {
	b.appliances = append(b.appliances, p)
	b.at(p.Pos).appliances++
}

// AddActor records an actor placement.
func (b *Builder) AddActor(p Placement) {
	b.actors = append(b.actors, p)
	b.at(p.Pos).actors++
}

// AddItem records an item placement.
func (b *Builder) AddItem(p Placement) {
	b.items = append(b.items, p)
	b.at(p.Pos).items++
}

// Generate fills the grid and places appliances, actors and items, in that
// order. Every random draw comes from the builder's generator.
func (b *Builder) Generate() error {
	if err := b.opts.Layout.Fill(b.rng, b.grid); err != nil {
		return fmt.Errorf("fill grid: %w", err)
	}
	if err := b.generateAppliances(); err != nil {
		return fmt.Errorf("generate appliances: %w", err)
	}
	actors, err := b.distribute(b.opts.Monsters, b.IsFree)
	if err != nil {
		return fmt.Errorf("generate actors: %w", err)
	}
	for _, p := range actors {
		b.AddActor(p)
	}
	items, err := b.distribute(b.opts.Items, b.IsAccessible)
	if err != nil {
		return fmt.Errorf("generate items: %w", err)
	}
	for _, p := range items {
		b.AddItem(p)
	}
	b.generated = true

	b.Log.WithFields(logrus.Fields{
		"layout": fmt.Sprintf("%T", b.opts.Layout),
		"size":   b.grid.Size(),
		"start":  b.start,
		"exit":   b.exit,
		"actors": len(b.actors),
		"items":  len(b.items),
	}).Debug("level generated")
	return nil
}

func (b *Builder) generateAppliances() error {
	var err error
	if placer, ok := b.opts.Layout.(StartExitPlacer); ok {
		b.start, b.exit, err = placer.PlaceStartExit(b.rng, b)
		if err != nil {
			return err
		}
	} else {
		if b.start, err = b.Point(b.IsAccessible); err != nil {
			return fmt.Errorf("start: %w", err)
		}
		b.exit, err = b.Point(func(p geom.Point) bool {
			return p != b.start && b.IsAccessible(p)
		})
		if err != nil {
			return fmt.Errorf("exit: %w", err)
		}
	}
	if b.opts.Start != "" {
		b.AddAppliance(Placement{Pos: b.start, Key: b.opts.Start})
	}
	if b.opts.Exit != "" {
		b.AddAppliance(Placement{Pos: b.exit, Key: b.opts.Exit})
	}
	return nil
}

// Build bakes the generated placements into a scene with the given id.
func (b *Builder) Build(id string) (*scene.Scene, error) {
	if !b.generated {
		return nil, ErrNotBuilt
	}
	terrain, err := b.MakeGrid()
	if err != nil {
		return nil, err
	}
	s := scene.New(id, terrain)
	appliances, err := b.MakeAppliances()
	if err != nil {
		return nil, err
	}
	s.AddAppliance(appliances...)
	actors, err := b.MakeActors()
	if err != nil {
		return nil, err
	}
	for _, a := range actors {
		s.AddActor(a)
	}
	items, err := b.MakeItems()
	if err != nil {
		return nil, err
	}
	s.DropItem(items...)
	return s, nil
}

// MakeGrid resolves every terrain key, cloning the mapped prototype for
// each cell.
func (b *Builder) MakeGrid() (*geom.Matrix[entity.Terrain], error) {
	m := b.mapping()
	out := geom.NewMatrix[entity.Terrain](b.grid.Size(), nil)
	var err error
	b.grid.Each(func(p geom.Point, key string) {
		if err != nil {
			return
		}
		proto, ok := m.terrain(key)
		if !ok {
			err = &UnknownKeyError{Kind: entity.KindTerrain, Key: key}
			return
		}
		out.Set(p, proto.Clone())
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MakeAppliances constructs the appliance placements.
func (b *Builder) MakeAppliances() ([]scene.ApplianceAt, error) {
	m := b.mapping()
	out := make([]scene.ApplianceAt, 0, len(b.appliances))
	for _, p := range b.appliances {
		newFn, ok := m.appliance(p.Key)
		if !ok {
			return nil, &UnknownKeyError{Kind: entity.KindAppliances, Key: p.Key}
		}
		out = append(out, scene.ApplianceAt{Pos: p.Pos, Appliance: newFn(p.Args...)})
	}
	return out, nil
}

type dropFiller interface {
	FillDrops(rng *rand.Rand) error
}

// MakeActors constructs the actor placements and rolls their drops.
func (b *Builder) MakeActors() ([]entity.Actor, error) {
	m := b.mapping()
	out := make([]entity.Actor, 0, len(b.actors))
	for _, p := range b.actors {
		newFn, ok := m.actor(p.Key)
		if !ok {
			return nil, &UnknownKeyError{Kind: entity.KindActors, Key: p.Key}
		}
		a := newFn(p.Args...)
		a.SetPos(p.Pos)
		if f, ok := a.(dropFiller); ok {
			if err := f.FillDrops(b.rng); err != nil {
				return nil, fmt.Errorf("%s drops: %w", p.Key, err)
			}
		}
		out = append(out, a)
	}
	return out, nil
}

// MakeItems constructs the item placements.
func (b *Builder) MakeItems() ([]entity.ItemAt, error) {
	m := b.mapping()
	out := make([]entity.ItemAt, 0, len(b.items))
	for _, p := range b.items {
		newFn, ok := m.item(p.Key)
		if !ok {
			return nil, &UnknownKeyError{Kind: entity.KindItems, Key: p.Key}
		}
		out = append(out, entity.ItemAt{Pos: p.Pos, Item: newFn(p.Args...)})
	}
	return out, nil
}

func (b *Builder) mapping() *Mapping {
	if b.opts.Mapping == nil {
		return &Mapping{}
	}
	return b.opts.Mapping
}
