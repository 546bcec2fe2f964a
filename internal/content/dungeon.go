package content

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"rogue-engine/internal/builders"
	"rogue-engine/internal/game"
	"rogue-engine/internal/geom"
	"rogue-engine/internal/logger"
	"rogue-engine/internal/pcg"
	"rogue-engine/internal/scene"
)

// ErrBadLevelID is returned for level ids the dungeon cannot generate.
var ErrBadLevelID = errors.New("bad level id")

// DefaultSize is the map size of every level.
var DefaultSize = geom.Sz(80, 25)

const (
	depthPrefix = "depth"
	cavePrefix  = "cave"
)

// StartLevel is the id of the first level.
var StartLevel = LevelID(1)

// LevelID is the id of the main level at depth n.
func LevelID(depth int) string { return depthPrefix + ":" + strconv.Itoa(depth) }

// CaveLevelID is the id of the side cave entered from depth n.
func CaveLevelID(depth int) string { return cavePrefix + ":" + strconv.Itoa(depth) }

// ParseLevelID splits a level id into its prefix and depth.
func ParseLevelID(id string) (prefix string, depth int, err error) {
	prefix, n, ok := strings.Cut(id, ":")
	if !ok || (prefix != depthPrefix && prefix != cavePrefix) {
		return "", 0, fmt.Errorf("%w: %q", ErrBadLevelID, id)
	}
	depth, err = strconv.Atoi(n)
	if err != nil || depth < 1 {
		return "", 0, fmt.Errorf("%w: %q", ErrBadLevelID, id)
	}
	return prefix, depth, nil
}

// Dungeon generates an endless stack of levels. Depth 1 is a classic
// room grid; deeper levels cycle through the other layouts. Every fourth
// level is locked and hides its key, and odd levels from depth 3 on have a
// mouth into a one-time side cave.
type Dungeon struct {
	Size geom.Size
	Log  logrus.FieldLogger
}

// NewDungeon returns a dungeon of DefaultSize levels.
func NewDungeon(log logrus.FieldLogger) *Dungeon {
	return &Dungeon{Size: DefaultSize, Log: logger.OrDiscard(log)}
}

// deepLayouts are cycled from depth 2 on.
var deepLayouts = []func() builders.Layout{
	func() builders.Layout { return builders.NewRooms() },
	func() builders.Layout { return builders.NewBSP() },
	func() builders.Layout { return builders.NewSewers() },
	func() builders.Layout { return builders.NewCity() },
	func() builders.Layout { return builders.NewMaze() },
}

// LayoutFor returns the layout of the main level at depth n.
func LayoutFor(depth int) builders.Layout {
	if depth <= 1 {
		return builders.NewRogue()
	}
	return deepLayouts[(depth-2)%len(deepLayouts)]()
}

// IsLocked reports whether the way down from depth n needs a key.
func IsLocked(depth int) bool { return depth%4 == 0 }

// HasCave reports whether depth n has a side cave.
func HasCave(depth int) bool { return depth >= 3 && depth%2 == 1 }

func (d *Dungeon) Generate(rng *rand.Rand, id string) (*scene.Scene, error) {
	prefix, depth, err := ParseLevelID(id)
	if err != nil {
		return nil, err
	}
	if prefix == cavePrefix {
		return d.cave(rng, id, depth)
	}
	return d.level(rng, id, depth)
}

func (d *Dungeon) size() geom.Size {
	if d.Size.W == 0 || d.Size.H == 0 {
		return DefaultSize
	}
	return d.Size
}

func (d *Dungeon) level(rng *rand.Rand, id string, depth int) (*scene.Scene, error) {
	exit := StairsDown
	if IsLocked(depth) {
		exit = LockedStairs
	}
	b := builders.New(rng, builders.Options{
		Size:     d.size(),
		Layout:   LayoutFor(depth),
		Mapping:  Mapping(),
		Start:    StairsUp.Key,
		Exit:     exit.Key,
		Monsters: Monsters(depth),
		Items:    Items(depth),
		Log:      d.Log,
	})
	if err := b.Generate(); err != nil {
		return nil, err
	}
	if IsLocked(depth) {
		if err := place(b, b.AddItem, Key.Key); err != nil {
			return nil, fmt.Errorf("key: %w", err)
		}
	}
	if HasCave(depth) {
		err := place(b, b.AddAppliance, CaveMouth.Key, CaveID, CaveLevelID(depth), UpID)
		if err != nil {
			return nil, fmt.Errorf("cave mouth: %w", err)
		}
	}
	for range pcg.Range(rng, 0, 3) {
		if err := place(b, b.AddAppliance, Statue.Key); err != nil {
			return nil, fmt.Errorf("statue: %w", err)
		}
	}
	s, err := b.Build(id)
	if err != nil {
		return nil, err
	}
	if p, _, ok := s.PassageByID(UpID); ok && depth > 1 {
		p.Destination = LevelID(depth - 1)
	}
	if p, _, ok := s.PassageByID(DownID); ok {
		p.Destination = LevelID(depth + 1)
	}
	d.Log.WithFields(logrus.Fields{"level": id, "layout": fmt.Sprintf("%T", LayoutFor(depth))}).Debug("level built")
	return s, nil
}

func (d *Dungeon) cave(rng *rand.Rand, id string, depth int) (*scene.Scene, error) {
	if !HasCave(depth) {
		return nil, fmt.Errorf("%w: no cave at depth %d", ErrBadLevelID, depth)
	}
	b := builders.New(rng, builders.Options{
		Size:     d.size(),
		Layout:   builders.NewCave(),
		Mapping:  Mapping(),
		Start:    StairsUp.Key,
		Monsters: Monsters(depth + 1),
		Items:    Treasure(depth),
		Log:      d.Log,
	})
	if err := b.Generate(); err != nil {
		return nil, err
	}
	s, err := b.Build(id)
	if err != nil {
		return nil, err
	}
	s.OneTime = true
	if p, _, ok := s.PassageByID(UpID); ok {
		p.Destination = LevelID(depth)
		p.DestinationPassage = CaveID
	}
	return s, nil
}

// place adds key with args on an accessible cell other than the start
// and the exit.
func place(b *builders.Builder, add func(builders.Placement), key string, args ...string) error {
	pos, err := b.Point(func(p geom.Point) bool {
		return p != b.Start() && p != b.Exit() && b.IsAccessible(p)
	})
	if err != nil {
		return err
	}
	add(builders.Placement{Pos: pos, Key: key, Args: args})
	return nil
}

// Monsters is the creature population of depth n. Goblins grow common
// with depth.
func Monsters(depth int) builders.Population {
	return builders.Population{
		Distribution: builders.Weighted,
		Entries: []builders.Entry{
			{Weight: 10, Key: Rat.Key},
			{Weight: 6, Key: Slime.Key},
			{Weight: 4, Key: Plant.Key},
			{Weight: 2 * (depth - 1), Key: Goblin.Key},
			{Weight: 1, Key: PackRat.Key},
		},
		Amount: builders.PerCells(builders.CellsPerMonster),
	}
}

// Items is the loose item population of depth n.
func Items(depth int) builders.Population {
	return builders.Population{
		Distribution: builders.Weighted,
		Entries: []builders.Entry{
			{Weight: 10, Key: HealingPotion.Key},
			{Weight: 3, Key: Dagger.Key},
			{Weight: depth, Key: Sword.Key},
			{Weight: depth / 3, Key: Axe.Key},
			{Weight: 3, Key: Rags.Key},
			{Weight: 2, Key: LeatherArmor.Key},
			{Weight: depth / 3, Key: ChainMail.Key},
		},
		Amount: builders.PerCells(builders.CellsPerItem),
	}
}

// Treasure is the richer item population of the side caves.
func Treasure(depth int) builders.Population {
	return builders.Population{
		Distribution: builders.Weighted,
		Entries: []builders.Entry{
			{Weight: 4, Key: HealingPotion.Key},
			{Weight: 2, Key: Sword.Key},
			{Weight: 1 + depth/3, Key: Axe.Key},
			{Weight: 2, Key: LeatherArmor.Key},
			{Weight: 1 + depth/3, Key: ChainMail.Key},
		},
		Amount: builders.Ranged{Min: 3, Max: 6},
	}
}

var _ game.Dungeon = (*Dungeon)(nil)
