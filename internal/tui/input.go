package tui

import (
	"github.com/gdamore/tcell/v2"

	"rogue-engine/internal/game"
	"rogue-engine/internal/geom"
)

// Command is what a key asks the front-end to do. Most commands are game
// actions; the others need a prompt first or act on the UI itself.
type Command uint8

const (
	CmdNone Command = iota
	CmdAction
	CmdDrop
	CmdConsume
	CmdWield
	CmdWear
	CmdInventory
	CmdHelp
	CmdSuicide
	CmdQuit
)

// keyToCommand maps a tcell key event to a command. Commands that play
// directly also return their action.
func keyToCommand(ev *tcell.EventKey) (Command, game.Action) {
	act := func(a game.Action) (Command, game.Action) { return CmdAction, a }
	kind := func(k game.ActionKind) (Command, game.Action) { return act(game.Action{Kind: k}) }

	// Named keys.
	switch ev.Key() {
	case tcell.KeyUp:
		return act(game.Move(geom.Pt(0, -1)))
	case tcell.KeyDown:
		return act(game.Move(geom.Pt(0, 1)))
	case tcell.KeyRight:
		return act(game.Move(geom.Pt(1, 0)))
	case tcell.KeyLeft:
		return act(game.Move(geom.Pt(-1, 0)))
	case tcell.KeyCtrlV:
		return kind(game.ActionGodVision)
	case tcell.KeyCtrlN:
		return kind(game.ActionGodNoclip)
	case tcell.KeyEscape:
		return CmdQuit, game.Action{}
	}

	// Some terminals report control chords as a modified rune.
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		switch ev.Rune() {
		case 'v', 'V':
			return kind(game.ActionGodVision)
		case 'n', 'N':
			return kind(game.ActionGodNoclip)
		}
		return CmdNone, game.Action{}
	}

	// Rune keys.
	switch ev.Rune() {
	case 'k':
		return act(game.Move(geom.Pt(0, -1)))
	case 'j':
		return act(game.Move(geom.Pt(0, 1)))
	case 'l':
		return act(game.Move(geom.Pt(1, 0)))
	case 'h':
		return act(game.Move(geom.Pt(-1, 0)))
	case 'y':
		return act(game.Move(geom.Pt(-1, -1)))
	case 'u':
		return act(game.Move(geom.Pt(1, -1)))
	case 'b':
		return act(game.Move(geom.Pt(-1, 1)))
	case 'n':
		return act(game.Move(geom.Pt(1, 1)))
	case '.':
		return kind(game.ActionWait)
	case ',', 'g':
		return kind(game.ActionGrab)
	case '>':
		return kind(game.ActionDescend)
	case '<':
		return kind(game.ActionAscend)
	case 'x':
		return kind(game.ActionAutoexplore)
	case 'W':
		return CmdWear, game.Action{}
	case 'T':
		return kind(game.ActionTakeOff)
	case 'w':
		return CmdWield, game.Action{}
	case 'U':
		return kind(game.ActionUnwield)
	case 'd':
		return CmdDrop, game.Action{}
	case 'c':
		return CmdConsume, game.Action{}
	case 'i':
		return CmdInventory, game.Action{}
	case '?':
		return CmdHelp, game.Action{}
	case '!':
		return CmdSuicide, game.Action{}
	case 'q', 'Q':
		return CmdQuit, game.Action{}
	}
	return CmdNone, game.Action{}
}

// itemAction is the action a prompting command plays on the chosen slot.
func itemAction(cmd Command, slot int) game.Action {
	kinds := map[Command]game.ActionKind{
		CmdDrop:    game.ActionDrop,
		CmdConsume: game.ActionConsume,
		CmdWield:   game.ActionWield,
		CmdWear:    game.ActionWear,
	}
	return game.Action{Kind: kinds[cmd], Item: slot}
}

var prompts = map[Command]string{
	CmdDrop:      "Drop what? [a-z, Esc]",
	CmdConsume:   "Use what? [a-z, Esc]",
	CmdWield:     "Wield what? [a-z, Esc]",
	CmdWear:      "Wear what? [a-z, Esc]",
	CmdInventory: "Inventory [any key]",
}

var helpLines = []string{
	"Movement      arrows or h j k l y u b n",
	"Wait          .",
	"Pick up       , or g",
	"Drop          d",
	"Use           c",
	"Wield/unwield w / U",
	"Wear/take off W / T",
	"Inventory     i",
	"Stairs        > <",
	"Autoexplore   x",
	"Walk to       mouse click",
	"God mode      Ctrl-V vision, Ctrl-N noclip",
	"Give up       !",
	"Save and quit q or Esc",
}
