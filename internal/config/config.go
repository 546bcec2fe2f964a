// Package config reads the runtime settings from ROGUE_* environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"rogue-engine/internal/geom"
	"rogue-engine/internal/logger"
)

// MinMapSide is the smallest map side the first level's room grid fits in.
const MinMapSide = 21

// Config holds the settings of both front-ends.
type Config struct {
	// Seed zero means time-based.
	Seed      int64  `env:"ROGUE_SEED"`
	SavePath  string `env:"ROGUE_SAVE_PATH"  envDefault:"rogue.sav"`
	FOVRadius int    `env:"ROGUE_FOV_RADIUS" envDefault:"10"`
	MapWidth  int    `env:"ROGUE_MAP_WIDTH"  envDefault:"80"`
	MapHeight int    `env:"ROGUE_MAP_HEIGHT" envDefault:"25"`

	LogLevel  string `env:"ROGUE_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"ROGUE_LOG_FORMAT" envDefault:"text"`
	LogFile   string `env:"ROGUE_LOG_FILE"   envDefault:"rogue.log"`

	SSHPort    int    `env:"ROGUE_SSH_PORT"     envDefault:"2222"`
	SSHHostKey string `env:"ROGUE_SSH_HOST_KEY" envDefault:"host_key"`
	DBPath     string `env:"ROGUE_DB_PATH"      envDefault:"rogue.db"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MapWidth < MinMapSide || cfg.MapHeight < MinMapSide {
		return Config{}, fmt.Errorf("map size %dx%d is too small", cfg.MapWidth, cfg.MapHeight)
	}
	return cfg, nil
}

// GameSeed returns Seed, or a time-based seed when Seed is zero.
func (c Config) GameSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// MapSize is the size of generated levels.
func (c Config) MapSize() geom.Size { return geom.Sz(c.MapWidth, c.MapHeight) }

// Logger returns the logger options. An empty file logs to stderr.
func (c Config) Logger(file string) logger.Options {
	return logger.Options{Level: c.LogLevel, Format: c.LogFormat, File: file}
}
