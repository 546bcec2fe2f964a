// Package tui plays a game on a tcell screen: it maps keys to game
// actions, drives automatic movement and keeps the message log.
package tui

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"rogue-engine/internal/content"
	"rogue-engine/internal/entity"
	"rogue-engine/internal/game"
	"rogue-engine/internal/logger"
	"rogue-engine/internal/render"
)

// maxMessages caps the message log.
const maxMessages = 50

// Options configures a UI.
type Options struct {
	// Save persists the game when the user quits. Nil disables saving.
	Save func(*game.Game) error
	// Discard removes the save once the game is over.
	Discard func() error
	// RunLogDir receives runs.jsonl when a game ends. Empty disables it.
	RunLogDir string
	Log       logrus.FieldLogger
}

// UI is one player's session on one screen.
type UI struct {
	screen   tcell.Screen
	renderer *render.Renderer
	game     *game.Game
	player   entity.Creature
	opts     Options
	log      logrus.FieldLogger

	messages []string
	runLog   *RunLog
}

// New returns a UI playing g on screen. The screen must be initialised.
func New(screen tcell.Screen, g *game.Game, opts Options) *UI {
	return &UI{
		screen:   screen,
		renderer: render.NewRenderer(screen),
		game:     g,
		player:   g.Player(),
		opts:     opts,
		log:      logger.OrDiscard(opts.Log),
		runLog:   newRunLog(),
	}
}

// Messages returns the message log, oldest first.
func (u *UI) Messages() []string { return u.messages }

// Run plays until the user quits or the player dies. Quitting saves the
// game.
func (u *UI) Run() error {
	u.screen.EnableMouse()
	defer u.screen.DisableMouse()

	for {
		u.drain()
		if u.game.IsOver() {
			u.finish()
			return nil
		}
		if u.game.AutoMoving() {
			u.draw()
			if u.screen.HasPendingEvent() {
				u.game.StopAutomovement("interrupted")
				continue
			}
			if _, err := u.game.PerformAutomovement(); err != nil && !errors.Is(err, game.ErrGameOver) {
				return err
			}
			continue
		}
		u.draw()
		quit, err := u.handle(u.screen.PollEvent())
		if err != nil {
			return err
		}
		if quit {
			return u.quit()
		}
	}
}

func (u *UI) handle(ev tcell.Event) (quit bool, err error) {
	switch ev := ev.(type) {
	case nil:
		return true, nil
	case *tcell.EventResize:
		u.screen.Sync()
		u.renderer.Resize()
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 {
			return false, nil
		}
		x, y := ev.Position()
		if y >= u.renderer.Camera().View.H {
			return false, nil
		}
		target := u.renderer.Camera().ScreenToWorld(x, y)
		return false, u.perform(game.Action{Kind: game.ActionWalkTo, Target: target})
	case *tcell.EventKey:
		cmd, action := keyToCommand(ev)
		switch cmd {
		case CmdAction:
			return false, u.perform(action)
		case CmdDrop, CmdConsume, CmdWield, CmdWear:
			if slot, ok := u.askSlot(prompts[cmd]); ok {
				return false, u.perform(itemAction(cmd, slot))
			}
		case CmdInventory:
			u.askSlot(prompts[cmd])
		case CmdHelp:
			u.showHelp()
		case CmdSuicide:
			if u.confirm("Really give up? [y/N]") {
				return false, u.perform(game.Action{Kind: game.ActionSuicide})
			}
		case CmdQuit:
			return true, nil
		}
	}
	return false, nil
}

func (u *UI) perform(a game.Action) error {
	if err := u.game.Perform(a); err != nil && !errors.Is(err, game.ErrGameOver) {
		u.log.WithError(err).WithField("action", a.Kind).Error("action failed")
		return err
	}
	return nil
}

// drain turns pending game events into messages.
func (u *UI) drain() {
	d := render.Describer{Player: u.player, Scene: u.game.Scene()}
	for _, e := range u.game.Events.Drain() {
		u.runLog.Record(e, u.player)
		if msg := d.Describe(e); msg != "" {
			u.addMessage(msg)
		}
	}
}

// addMessage appends msg, folding repeats of the last message into a
// counter.
func (u *UI) addMessage(msg string) {
	if n := len(u.messages); n > 0 {
		last := u.messages[n-1]
		if last == msg {
			u.messages[n-1] = msg + " (x2)"
			return
		}
		var count int
		if rest, ok := strings.CutPrefix(last, msg); ok {
			if _, err := fmt.Sscanf(rest, " (x%d)", &count); err == nil {
				u.messages[n-1] = fmt.Sprintf("%s (x%d)", msg, count+1)
				return
			}
		}
	}
	u.messages = append(u.messages, msg)
	if len(u.messages) > maxMessages {
		u.messages = u.messages[len(u.messages)-maxMessages:]
	}
}

func (u *UI) draw() {
	if p := u.game.Player(); p != nil {
		u.renderer.CenterOn(p.Pos())
	}
	u.renderer.SetTheme(render.ThemeFor(depthOf(u.game.SceneID())))
	u.renderer.DrawFrame(u.game)
	u.renderer.DrawHUD(u.game, u.messages)
}

// askSlot shows the inventory and waits for a slot letter. Escape cancels.
func (u *UI) askSlot(prompt string) (int, bool) {
	inv := u.player.Monster().Inventory()
	for {
		u.renderer.DrawInventory(u.player, prompt)
		switch ev := u.screen.PollEvent().(type) {
		case nil:
			return 0, false
		case *tcell.EventResize:
			u.screen.Sync()
			u.renderer.Resize()
		case *tcell.EventKey:
			if ev.Key() != tcell.KeyRune {
				return 0, false
			}
			if i := render.SlotIndex(ev.Rune()); i >= 0 && i < len(inv) {
				return i, true
			}
			if prompt == prompts[CmdInventory] {
				return 0, false
			}
		}
	}
}

func (u *UI) confirm(question string) bool {
	u.addMessage(question)
	u.draw()
	for {
		switch ev := u.screen.PollEvent().(type) {
		case nil:
			return false
		case *tcell.EventKey:
			return ev.Key() == tcell.KeyRune && (ev.Rune() == 'y' || ev.Rune() == 'Y')
		}
	}
}

func (u *UI) showHelp() {
	u.screen.Clear()
	title := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	white := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	putText(u.screen, 2, 1, "Commands", title)
	for i, line := range helpLines {
		putText(u.screen, 2, 3+i, line, white)
	}
	u.screen.Show()
	waitKey(u.screen)
}

func (u *UI) quit() error {
	if u.opts.Save == nil {
		return nil
	}
	if err := u.opts.Save(u.game); err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

// finish records the run, drops the save and shows the end screen.
func (u *UI) finish() {
	rl := *u.runLog
	rl.Timestamp = time.Now().UTC()
	rl.TurnsPlayed = u.game.Turns()
	u.log.WithFields(logrus.Fields{
		"turns": rl.TurnsPlayed, "deepest": rl.DeepestLevel, "cause": rl.CauseOfDeath,
	}).Info("game over")
	if u.opts.RunLogDir != "" {
		saveRunLog(rl, u.opts.RunLogDir, u.log)
	}
	if u.opts.Discard != nil {
		if err := u.opts.Discard(); err != nil {
			u.log.WithError(err).Warn("save not discarded")
		}
	}
	u.showEndScreen(rl)
}

// showEndScreen renders the run summary and waits for a key.
func (u *UI) showEndScreen(rl RunLog) {
	white := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	gold := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	gray := tcell.StyleDefault.Foreground(tcell.ColorGray)
	dim := tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
	green := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	red := tcell.StyleDefault.Foreground(tcell.ColorRed)

	u.screen.Clear()
	sw, _ := u.screen.Size()
	sep := func(y int) {
		for x := 0; x < sw; x++ {
			u.screen.SetContent(x, y, '─', nil, gray)
		}
	}
	// label prints a left-aligned key at column 2 and value at column 22.
	label := func(y int, l, v string) {
		putText(u.screen, 2, y, l, dim)
		putText(u.screen, 22, y, v, white)
	}

	y := 1
	sep(y)
	y += 2
	putText(u.screen, 2, y, "THE DUNGEON CLAIMS YOU", gold)
	badge, style := "[DEFEAT]", red
	if rl.Victory {
		badge, style = "[QUEST COMPLETE]", green
	}
	putText(u.screen, sw-len(badge)-1, y, badge, style)
	y += 2

	label(y, "Deepest Level:", rl.DeepestLevel)
	y++
	label(y, "Turns Survived:", fmt.Sprintf("%d", rl.TurnsPlayed))
	y += 2

	kills, total := killBreakdown(rl.EnemiesKilled)
	label(y, "Enemies Slain:", fmt.Sprintf("%d", total))
	y++
	if kills != "" {
		putText(u.screen, 4, y, kills, dim)
		y++
	}
	y++
	label(y, "Damage Dealt:", fmt.Sprintf("%d", rl.DamageDealt))
	y++
	label(y, "Damage Taken:", fmt.Sprintf("%d", rl.DamageTaken))
	y++
	if rl.CauseOfDeath != "" {
		label(y, "Killed By:", rl.CauseOfDeath)
	}
	y += 2
	sep(y)
	y += 2
	putText(u.screen, 2, y, "[any key] Quit", red)
	u.screen.Show()
	waitKey(u.screen)
}

// killBreakdown formats kills sorted by count descending, then by name.
func killBreakdown(kills map[string]int) (string, int) {
	type entry struct {
		name  string
		count int
	}
	var entries []entry
	total := 0
	for name, n := range kills {
		entries = append(entries, entry{name, n})
		total += n
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	out := ""
	for _, e := range entries {
		out += fmt.Sprintf("%s×%d  ", e.name, e.count)
	}
	return out, total
}

func waitKey(screen tcell.Screen) {
	for {
		switch screen.PollEvent().(type) {
		case nil, *tcell.EventKey:
			return
		}
	}
}

// putText writes a string to the screen at (x, y), one column per rune.
func putText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// depthOf is the depth of a level id, or 0 for ids the stock dungeon did
// not make.
func depthOf(id string) int {
	_, depth, err := content.ParseLevelID(id)
	if err != nil {
		return 0
	}
	return depth
}
