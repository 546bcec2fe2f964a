// Package game is the turn engine: it owns the scenes, the player's vision
// of each, the event queue and the random stream, and plays one player
// action at a time followed by everyone else's.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"

	"rogue-engine/internal/auto"
	"rogue-engine/internal/entity"
	"rogue-engine/internal/events"
	"rogue-engine/internal/geom"
	"rogue-engine/internal/logger"
	"rogue-engine/internal/pcg"
	"rogue-engine/internal/scene"
	"rogue-engine/internal/vision"
)

var (
	// ErrGameOver is returned when acting without a living player.
	ErrGameOver = errors.New("player is dead")
	// ErrNoPlayer is returned when the start scene has no player to drive.
	ErrNoPlayer = errors.New("no player in scene")
)

// MissingPassageError is returned when travel targets a passage id that the
// destination scene does not have.
type MissingPassageError struct {
	Scene, Passage string
}

func (e *MissingPassageError) Error() string {
	return fmt.Sprintf("scene %q has no passage %q", e.Scene, e.Passage)
}

// Dungeon generates scenes on first visit.
type Dungeon interface {
	Generate(rng *rand.Rand, id string) (*scene.Scene, error)
}

// God holds the cheat flags.
type God struct {
	// Vision shows the whole map.
	Vision bool
	// Noclip lets the player walk through anything.
	Noclip bool
}

// Options configures a new game.
type Options struct {
	Seed    int64
	Dungeon Dungeon
	// Start is the id of the first scene.
	Start string
	// Player is placed on the start scene's default passage.
	Player       entity.Creature
	Quests       []entity.Quest
	VisionRadius int
	Log          logrus.FieldLogger
}

// Game is the state of one play-through.
type Game struct {
	Events events.Queue
	God    God

	log     logrus.FieldLogger
	rng     *rand.Rand
	source  *pcg.LCG
	dungeon Dungeon
	radius  int

	turns   int
	current string
	scenes  map[string]*scene.Scene
	visions map[string]*vision.Vision
	quests  []entity.Quest

	auto    *auto.Movement
	alerted bool
}

func newGame(opts Options) *Game {
	rng, source := pcg.New(opts.Seed)
	radius := opts.VisionRadius
	if radius <= 0 {
		radius = vision.DefaultRadius
	}
	return &Game{
		log:     logger.OrDiscard(opts.Log),
		rng:     rng,
		source:  source,
		dungeon: opts.Dungeon,
		radius:  radius,
		scenes:  map[string]*scene.Scene{},
		visions: map[string]*vision.Vision{},
		quests:  opts.Quests,
	}
}

// New generates the start scene and places the player on it.
func New(opts Options) (*Game, error) {
	if opts.Player == nil {
		return nil, ErrNoPlayer
	}
	g := newGame(opts)
	g.log.WithFields(logrus.Fields{"seed": opts.Seed, "start": opts.Start}).Info("new game")
	for _, q := range g.quests {
		q.Activate()
	}
	if err := g.enter(opts.Player, opts.Start, entity.DefaultPassageID); err != nil {
		return nil, err
	}
	g.fire(events.Welcome{Level: opts.Start})
	return g, nil
}

// RNG is the game's random stream. Everything random draws from it.
func (g *Game) RNG() *rand.Rand { return g.rng }

// Turns is the number of turns the player has spent.
func (g *Game) Turns() int { return g.turns }

// SceneID is the id of the current scene.
func (g *Game) SceneID() string { return g.current }

// Scene returns the current scene.
func (g *Game) Scene() *scene.Scene { return g.scenes[g.current] }

// Vision returns the player's vision of the current scene.
func (g *Game) Vision() *vision.Vision { return g.visions[g.current] }

// Player returns the player creature, or nil once it is dead.
func (g *Game) Player() entity.Creature {
	if s := g.Scene(); s != nil {
		return s.Player()
	}
	return nil
}

// IsOver reports whether the player is gone.
func (g *Game) IsOver() bool {
	p := g.Player()
	return p == nil || !p.Monster().IsAlive()
}

// Quests returns the tracked quests.
func (g *Game) Quests() []entity.Quest { return g.quests }

// SceneIDs lists the generated scenes in sorted order.
func (g *Game) SceneIDs() []string {
	ids := make([]string, 0, len(g.scenes))
	for id := range g.scenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (g *Game) fire(evs ...events.Event) {
	for _, e := range evs {
		if e.Important() {
			g.alerted = true
		}
	}
	g.Events.Fire(evs...)
}

// scene returns the scene with the given id, generating it on first use.
func (g *Game) scene(id string) (*scene.Scene, error) {
	if s, ok := g.scenes[id]; ok {
		return s, nil
	}
	if g.dungeon == nil {
		return nil, fmt.Errorf("generate %s: no dungeon", id)
	}
	s, err := g.dungeon.Generate(g.rng, id)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", id, err)
	}
	g.scenes[id] = s
	g.visions[id] = vision.New(s.Size(), g.radius)
	g.log.WithFields(logrus.Fields{"scene": id, "size": s.Size(), "actors": len(s.Actors())}).Debug("scene generated")
	return s, nil
}

// arrival resolves a passage of a scene, generating the scene if needed.
func (g *Game) arrival(id, passage string) (*scene.Scene, geom.Point, error) {
	s, err := g.scene(id)
	if err != nil {
		return nil, geom.Point{}, err
	}
	if passage == "" {
		passage = entity.DefaultPassageID
	}
	_, pos, ok := s.PassageByID(passage)
	if !ok {
		return nil, geom.Point{}, &MissingPassageError{Scene: id, Passage: passage}
	}
	return s, pos, nil
}

// enter puts actor on the passage of the given scene and makes it current.
func (g *Game) enter(actor entity.Creature, id, passage string) error {
	s, pos, err := g.arrival(id, passage)
	if err != nil {
		return err
	}
	g.place(actor, s, pos)
	return nil
}

func (g *Game) place(actor entity.Creature, s *scene.Scene, pos geom.Point) {
	actor.SetPos(pos)
	s.AddActor(actor)
	g.current = s.ID
	g.updateVision()
}

// Travel moves actor from the current scene to a passage of another one.
// The actor stays where it is if the destination cannot be resolved. A
// one-time scene is discarded once left.
func (g *Game) Travel(actor entity.Creature, id, passage string) error {
	dst, pos, err := g.arrival(id, passage)
	if err != nil {
		return err
	}
	src := g.Scene()
	src.RemoveActor(actor)
	if src.OneTime && src != dst {
		delete(g.scenes, src.ID)
		delete(g.visions, src.ID)
	}
	g.stopAuto()
	g.log.WithFields(logrus.Fields{"from": src.ID, "to": id, "passage": passage}).Debug("travel")
	g.place(actor, dst, pos)
	return nil
}

func (g *Game) updateVision() {
	player := g.Player()
	v := g.Vision()
	if player == nil || v == nil {
		return
	}
	v.Update(g.Scene(), player)
	g.discover()
}

func (g *Game) discover() {
	v := g.Vision()
	if v == nil {
		return
	}
	for _, e := range v.Discover(g.Scene()) {
		g.fire(e)
	}
}

// VisibleHostiles returns the visible creatures hostile to the player.
func (g *Game) VisibleHostiles() []entity.Creature {
	player, v := g.Player(), g.Vision()
	if player == nil || v == nil {
		return nil
	}
	var out []entity.Creature
	for _, a := range v.VisibleActors(g.Scene()) {
		if c, ok := a.(entity.Creature); ok && c.Monster().IsHostileTo(player) {
			out = append(out, c)
		}
	}
	return out
}
