package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rogue-engine/internal/geom"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "rogue.sav", cfg.SavePath)
	assert.Equal(t, 10, cfg.FOVRadius)
	assert.Equal(t, geom.Sz(80, 25), cfg.MapSize())
	assert.Equal(t, 2222, cfg.SSHPort)
	assert.Equal(t, "rogue.db", cfg.DBPath)
	assert.NotZero(t, cfg.GameSeed())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ROGUE_SEED", "42")
	t.Setenv("ROGUE_MAP_WIDTH", "40")
	t.Setenv("ROGUE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.GameSeed())
	assert.Equal(t, 40, cfg.MapWidth)

	opts := cfg.Logger("")
	assert.Equal(t, "debug", opts.Level)
	assert.Empty(t, opts.File)
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("ROGUE_FOV_RADIUS", "wide")
	_, err := Load()
	assert.ErrorContains(t, err, "parse env:")

	t.Setenv("ROGUE_FOV_RADIUS", "10")
	t.Setenv("ROGUE_MAP_HEIGHT", "20")
	_, err = Load()
	assert.ErrorContains(t, err, "too small")
}
