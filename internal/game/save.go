package game

import (
	"github.com/sirupsen/logrus"

	"rogue-engine/internal/entity"
	"rogue-engine/internal/savefile"
	"rogue-engine/internal/scene"
	"rogue-engine/internal/vision"
)

// SaveVersion is the savefile format version written by Save.
const SaveVersion = 3

// Save writes the whole game: the random stream, the turn counter, every
// generated scene with the player's vision of it, and the quests.
func (g *Game) Save(w savefile.Writer) {
	w.WriteInt(int(g.source.State()))
	w.WriteInt(g.turns)
	w.WriteString(g.current)
	w.WriteBool(g.God.Vision)
	w.WriteBool(g.God.Noclip)
	savefile.WriteList(w, g.SceneIDs(), func(w savefile.Writer, id string) {
		s := g.scenes[id]
		s.Save(w)
		g.visions[id].Save(w, s)
	})
	savefile.WriteList(w, g.quests, func(w savefile.Writer, q entity.Quest) { entity.Save(w, q) })
}

// Load restores a game written by Save. The reader's meta info must hold
// the entity registries. Options supply what is not saved: the dungeon,
// the vision radius and the logger.
func Load(r savefile.Reader, opts Options) *Game {
	g := newGame(opts)
	g.source.SetState(int64(r.ReadInt()))
	g.turns = r.ReadInt()
	g.current = r.ReadString()
	g.God.Vision = r.ReadBool()
	g.God.Noclip = r.ReadBool()
	savefile.ReadList(r, func(r savefile.Reader) string {
		s := scene.Load(r)
		if s == nil {
			return ""
		}
		v := vision.Load(r, s, g.radius)
		if v == nil {
			return ""
		}
		g.scenes[s.ID] = s
		g.visions[s.ID] = v
		return s.ID
	})
	g.quests = savefile.ReadList(r, func(r savefile.Reader) entity.Quest {
		return entity.Load[entity.Quest](r, entity.KindQuests)
	})
	if r.Err() != nil {
		return nil
	}
	if g.Scene() == nil {
		r.Fail(savefile.ErrCorrupt)
		return nil
	}
	g.updateVision()
	g.log.WithFields(logrus.Fields{"scene": g.current, "turns": g.turns}).Info("game loaded")
	return g
}

// Marshal encodes the game into bytes.
func (g *Game) Marshal() ([]byte, error) {
	return savefile.Marshal(SaveVersion, g.Save)
}

// Unmarshal decodes a game encoded by Marshal.
func Unmarshal(data []byte, registries *entity.Registries, opts Options) (*Game, error) {
	var g *Game
	err := savefile.Unmarshal(data, SaveVersion, registries.Meta(), func(r savefile.Reader) {
		g = Load(r, opts)
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// SaveFile writes the game to path atomically.
func (g *Game) SaveFile(path string) error {
	err := savefile.Save(path, SaveVersion, g.Save)
	if err == nil {
		g.log.WithFields(logrus.Fields{"path": path, "turns": g.turns}).Info("game saved")
	}
	return err
}

// LoadFile reads a game written by SaveFile.
func LoadFile(path string, registries *entity.Registries, opts Options) (*Game, error) {
	var g *Game
	err := savefile.Load(path, SaveVersion, registries.Meta(), func(r savefile.Reader) {
		g = Load(r, opts)
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}
