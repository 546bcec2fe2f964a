package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"rogue-engine/internal/entity"
	"rogue-engine/internal/game"
	"rogue-engine/internal/geom"
	"rogue-engine/internal/scene"
)

// HUDHeight is the number of rows reserved below the map.
const HUDHeight = 5

// Renderer draws the current scene onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
	theme  Theme
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	r := &Renderer{screen: screen, camera: &Camera{}, theme: Themes[0]}
	r.Resize()
	return r
}

// Resize fits the viewport to the screen, keeping the bottom rows for the
// HUD.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.View = geom.Sz(w, max(h-HUDHeight, 0))
}

// SetTheme selects the wall and floor sprites.
func (r *Renderer) SetTheme(th Theme) { r.theme = th }

// CenterOn recenters the camera on world position p.
func (r *Renderer) CenterOn(p geom.Point) { r.camera.Center(p) }

// Camera exposes the viewport.
func (r *Renderer) Camera() *Camera { return r.camera }

// DrawFrame clears the screen and draws every cell of the viewport the
// player has seen. God vision shows the whole scene.
func (r *Renderer) DrawFrame(g *game.Game) {
	r.screen.Clear()
	s, v := g.Scene(), g.Vision()
	if s == nil || v == nil {
		return
	}
	for _, cell := range s.IterCells(r.camera.Rect()) {
		sx, sy, onScreen := r.camera.WorldToScreen(cell.Pos)
		if !onScreen {
			continue
		}
		switch {
		case g.God.Vision || v.IsVisible(cell.Pos):
			r.putSprite(sx, sy, r.visible(cell))
		case v.IsExplored(cell.Pos):
			r.putSprite(sx, sy, r.remembered(cell))
		}
	}
}

// visible is the topmost sprite of a cell in sight: an actor, then an
// item, then an appliance, then the terrain.
func (r *Renderer) visible(cell scene.Cell) entity.Sprite {
	if n := len(cell.Actors); n > 0 {
		return cell.Actors[n-1].Sprite()
	}
	if n := len(cell.Items); n > 0 {
		return cell.Items[n-1].Sprite()
	}
	if n := len(cell.Appliances); n > 0 {
		return cell.Appliances[n-1].Sprite()
	}
	return r.theme.Sprite(cell.Terrain)
}

// remembered shows what cannot move: appliances and terrain, dimmed.
func (r *Renderer) remembered(cell scene.Cell) entity.Sprite {
	var sp entity.Sprite
	switch {
	case len(cell.Appliances) > 0:
		sp = cell.Appliances[len(cell.Appliances)-1].Sprite()
	case r.theme[cell.Terrain.TypeKey()].Glyph != "":
		sp = r.theme.Sprite(cell.Terrain)
	default:
		sp = cell.Terrain.Remembered()
	}
	sp.Color = Dim(sp.Color, DimFactor)
	return sp
}

func (r *Renderer) putSprite(x, y int, sp entity.Sprite) {
	r.putGlyph(x, y, sp.Glyph, tcell.StyleDefault.Foreground(sp.Color).Background(tcell.ColorBlack))
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		// Fill the second column to avoid rendering artifacts.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
