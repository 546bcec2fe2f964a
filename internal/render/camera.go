package render

import "rogue-engine/internal/geom"

// Camera translates between world coordinates and screen coordinates.
// World X is multiplied by 2 because emoji occupy 2 terminal columns.
type Camera struct {
	Offset geom.Point
	// View is measured in terminal columns and rows.
	View geom.Size
}

// NewCamera creates a camera centered on c.
func NewCamera(c geom.Point, view geom.Size) *Camera {
	cam := &Camera{View: view}
	cam.Center(c)
	return cam
}

// Center repositions the camera so that world position c is in the middle.
func (c *Camera) Center(p geom.Point) {
	// View.W is in columns; each world tile is 2 columns wide.
	c.Offset = geom.Pt(p.X-(c.View.W/2)/2, p.Y-c.View.H/2)
}

// WorldToScreen converts a world position to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(p geom.Point) (sx, sy int, visible bool) {
	sx = (p.X - c.Offset.X) * 2
	sy = p.Y - c.Offset.Y
	visible = sx >= 0 && sx < c.View.W && sy >= 0 && sy < c.View.H
	return
}

// ScreenToWorld converts screen (sx, sy) to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy int) geom.Point {
	return geom.Pt(sx/2+c.Offset.X, sy+c.Offset.Y)
}

// Rect is the world area the viewport covers.
func (c *Camera) Rect() geom.Rect {
	return geom.RectAt(c.Offset, geom.Sz((c.View.W+1)/2, c.View.H))
}
