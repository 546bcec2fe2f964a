package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"rogue-engine/internal/entity"
	"rogue-engine/internal/game"
)

// MessageLines is how many log lines the HUD shows.
const MessageLines = 3

// StatusLine summarises the player, the level and the turn.
func StatusLine(g *game.Game) string {
	var b strings.Builder
	if p := g.Player(); p != nil {
		m := p.Monster()
		fmt.Fprintf(&b, "HP: %d/%d  ATK:%d DEF:%d  ", m.HP(), m.MaxHP(), p.AttackValue(), p.ProtectionValue())
	} else {
		b.WriteString("HP: -  ")
	}
	fmt.Fprintf(&b, "Level: %s  Turn: %d", g.SceneID(), g.Turns())
	if g.God.Vision {
		b.WriteString("  [vision]")
	}
	if g.God.Noclip {
		b.WriteString("  [noclip]")
	}
	for _, q := range g.Quests() {
		if q.Active() {
			b.WriteString("  Quest: " + q.Summary())
		}
	}
	return b.String()
}

// DrawHUD renders the status bar and message log at the bottom of the screen.
func (r *Renderer) DrawHUD(g *game.Game, messages []string) {
	_, screenH := r.screen.Size()
	hudY := screenH - HUDHeight

	// Separator line.
	r.drawHLine(hudY, tcell.ColorGray)
	r.drawText(0, hudY+1, StatusLine(g), tcell.StyleDefault.Foreground(tcell.ColorWhite))

	start := max(len(messages)-MessageLines, 0)
	for i, msg := range messages[start:] {
		r.drawText(0, hudY+2+i, msg, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}

	r.screen.Show()
}

// DrawInventory lists the player's belongings over the map, one letter per
// inventory slot.
func (r *Renderer) DrawInventory(p entity.Creature, prompt string) {
	r.screen.Clear()
	title := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	normal := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)

	r.drawText(2, 1, prompt, title)
	y := 3
	if eq, ok := p.(interface {
		Wielding() entity.Item
		Wearing() entity.Item
	}); ok {
		r.drawText(2, y, "Wielding: "+itemName(eq.Wielding()), dim)
		r.drawText(2, y+1, "Wearing:  "+itemName(eq.Wearing()), dim)
		y += 3
	}
	inv := p.Monster().Inventory()
	if len(inv) == 0 {
		r.drawText(2, y, "(empty)", dim)
	}
	for i, it := range inv {
		r.putSprite(2, y+i, it.Sprite())
		r.drawText(5, y+i, fmt.Sprintf("%c) %s", SlotLetter(i), it.Name()), normal)
	}
	r.screen.Show()
}

// SlotLetter is the key that selects inventory slot i.
func SlotLetter(i int) rune { return rune('a' + i) }

// SlotIndex is the inventory slot selected by ch, or -1.
func SlotIndex(ch rune) int {
	if ch < 'a' || ch > 'z' {
		return -1
	}
	return int(ch - 'a')
}

func itemName(it entity.Item) string {
	if it == nil {
		return "nothing"
	}
	return it.Name()
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(runewidth.RuneWidth(ch), 1)
	}
}
