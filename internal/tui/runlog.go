package tui

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"rogue-engine/internal/entity"
	"rogue-engine/internal/events"
)

// RunLog summarises one play-through.
type RunLog struct {
	Timestamp     time.Time      `json:"timestamp"`
	Victory       bool           `json:"victory"`
	Died          bool           `json:"died"`
	DeepestLevel  string         `json:"deepest_level"`
	LevelsVisited int            `json:"levels_visited"`
	TurnsPlayed   int            `json:"turns_played"`
	EnemiesKilled map[string]int `json:"enemies_killed"`
	ItemsUsed     map[string]int `json:"items_used"`
	DamageDealt   int            `json:"damage_dealt"`
	DamageTaken   int            `json:"damage_taken"`
	CauseOfDeath  string         `json:"cause_of_death"`
}

func newRunLog() *RunLog {
	return &RunLog{EnemiesKilled: map[string]int{}, ItemsUsed: map[string]int{}}
}

// Record folds one event into the log. player is the creature driven by
// the user.
func (l *RunLog) Record(e events.Event, player entity.Creature) {
	is := func(s events.Subject) bool { return player != nil && s == events.Subject(player) }
	switch e := e.(type) {
	case events.Attack:
		switch {
		case is(e.Actor):
			l.DamageDealt += e.Damage
		case is(e.Target):
			l.DamageTaken += e.Damage
			if e.Damage > 0 {
				l.CauseOfDeath = e.Actor.Name()
			}
		}
	case events.Death:
		if is(e.Target) {
			l.Died = true
		} else {
			l.EnemiesKilled[e.Target.Name()]++
		}
	case events.Consume:
		if is(e.Actor) {
			l.ItemsUsed[e.Item.Name()]++
		}
	case events.Descend:
		l.LevelsVisited++
		l.DeepestLevel = deeper(l.DeepestLevel, e.Level)
	case events.Welcome:
		l.LevelsVisited++
		l.DeepestLevel = deeper(l.DeepestLevel, e.Level)
	case events.QuestCompleted:
		l.Victory = true
	}
}

// deeper keeps the level id with the greater trailing depth.
func deeper(a, b string) string {
	if a == "" || depthOf(b) > depthOf(a) {
		return b
	}
	return a
}

// saveRunLog appends the completed run as a single JSON line to runs.jsonl.
// Errors are logged but never end the game.
func saveRunLog(rl RunLog, dir string, log logrus.FieldLogger) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.WithError(err).Warn("run log: cannot create data dir")
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, "runs.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.WithError(err).Warn("run log: cannot open file")
		return
	}
	defer f.Close()
	data, err := json.Marshal(rl)
	if err != nil {
		log.WithError(err).Warn("run log: cannot marshal JSON")
		return
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		log.WithError(err).Warn("run log: cannot write")
	}
}

// RunLogDir returns the directory where run logs are stored.
// Follows XDG Base Directory spec: $XDG_DATA_HOME/rogue-engine,
// defaulting to ~/.local/share/rogue-engine.
func RunLogDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "rogue-engine"), nil
}
