package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"rogue-engine/internal/builders"
	"rogue-engine/internal/entity"
)

// Theme swaps the sprites of plain walls and floors so each depth looks
// different. Keys are terrain type keys.
type Theme map[string]entity.Sprite

// Themes are cycled by depth. The first one keeps the stock sprites.
var Themes = []Theme{
	{},
	{
		// Ice caves
		builders.Wall:  {Glyph: "🧊", Color: tcell.ColorLightCyan},
		builders.Floor: {Glyph: "·", Color: tcell.ColorPowderBlue},
	},
	{
		// Fungal warrens
		builders.Wall:  {Glyph: "🍄", Color: tcell.ColorOrchid},
		builders.Floor: {Glyph: "\"", Color: tcell.ColorDarkOliveGreen},
	},
	{
		// Old workings
		builders.Wall:  {Glyph: "🪨", Color: tcell.ColorGray},
		builders.Floor: {Glyph: "·", Color: tcell.ColorDarkGoldenrod},
	},
}

// ThemeFor returns the theme of a 1-indexed depth.
func ThemeFor(depth int) Theme {
	if depth < 1 {
		return Themes[0]
	}
	return Themes[(depth-1)%len(Themes)]
}

// Sprite returns the themed sprite of t.
func (th Theme) Sprite(t entity.Terrain) entity.Sprite {
	if s, ok := th[t.TypeKey()]; ok {
		return s
	}
	return t.Sprite()
}

// DimFactor is how far remembered cells are blended toward black.
const DimFactor = 0.55

// Dim blends c toward black by f in Lab space. Default and invalid colors
// become dark gray.
func Dim(c tcell.Color, f float64) tcell.Color {
	if c == tcell.ColorDefault || !c.Valid() {
		return tcell.ColorDarkGray
	}
	r, g, b := c.RGB()
	if r < 0 {
		return tcell.ColorDarkGray
	}
	col := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	dimmed := col.BlendLab(colorful.Color{}, f).Clamped()
	dr, dg, db := dimmed.RGB255()
	return tcell.NewRGBColor(int32(dr), int32(dg), int32(db))
}
