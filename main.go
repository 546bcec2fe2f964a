// Command rogue-engine plays the stock dungeon in the local terminal.
// Quitting saves to ROGUE_SAVE_PATH; the next start resumes from it.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"rogue-engine/internal/config"
	"rogue-engine/internal/content"
	"rogue-engine/internal/game"
	"rogue-engine/internal/logger"
	"rogue-engine/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, closeLog, err := logger.New(cfg.Logger(cfg.LogFile))
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	g, err := loadOrNew(cfg, log)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	opts := tui.Options{
		Save: func(g *game.Game) error { return g.SaveFile(cfg.SavePath) },
		Discard: func() error {
			if err := os.Remove(cfg.SavePath); err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			return nil
		},
		Log: log,
	}
	if dir, err := tui.RunLogDir(); err == nil {
		opts.RunLogDir = dir
	}
	return tui.New(screen, g, opts).Run()
}

// loadOrNew resumes the save at cfg.SavePath, or starts a new game when
// there is none.
func loadOrNew(cfg config.Config, log logrus.FieldLogger) (*game.Game, error) {
	opts := content.GameOptions(cfg.GameSeed(), cfg.FOVRadius, cfg.MapSize(), log)
	g, err := game.LoadFile(cfg.SavePath, content.Registries(), opts)
	switch {
	case err == nil:
		return g, nil
	case errors.Is(err, os.ErrNotExist):
		return game.New(opts)
	}
	return nil, fmt.Errorf("load %s: %w", cfg.SavePath, err)
}
