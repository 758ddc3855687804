package drapery

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera presents a finished canvas inside a screen viewport, scaled by Zoom
// about the viewport center. At Zoom 1 the canvas maps 1:1 onto the
// viewport.
type Camera struct {
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in). Change it
	// through ZoomTo.
	Zoom float64
	// Viewport is the screen-space rectangle this camera renders into. The
	// canvas it presents has the viewport's size. It is fixed at creation.
	Viewport Rect

	viewMatrix [6]float64
	dirty      bool

	zoomTween *gween.Tween
}

// NewCamera creates a camera at zoom 1 over the given viewport.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		Zoom:     1.0,
		Viewport: viewport,
		dirty:    true,
	}
}

// ZoomTo animates Zoom to the target over duration seconds. A running zoom
// animation is replaced and continues from the current zoom value. A
// non-positive duration snaps.
func (c *Camera) ZoomTo(zoom float64, duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 {
		c.zoomTween = nil
		c.Zoom = zoom
		c.dirty = true
		return
	}
	c.zoomTween = gween.New(float32(c.Zoom), float32(zoom), duration, easeFn)
}

// Animating reports whether a zoom animation is in progress.
func (c *Camera) Animating() bool {
	return c.zoomTween != nil
}

// Update advances the zoom animation by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.zoomTween == nil {
		return
	}
	val, done := c.zoomTween.Update(dt)
	c.Zoom = float64(val)
	if done {
		c.zoomTween = nil
	}
	c.dirty = true
}

// computeViewMatrix recomputes the cached view matrix if dirty.
//
//	viewMatrix = Translate(vx + w/2, vy + h/2) * Scale(zoom) * Translate(-w/2, -h/2)
func (c *Camera) computeViewMatrix() [6]float64 {
	if !c.dirty {
		return c.viewMatrix
	}
	c.dirty = false

	hw := c.Viewport.Width / 2
	hh := c.Viewport.Height / 2
	z := c.Zoom
	c.viewMatrix = [6]float64{z, 0, 0, z, c.Viewport.X + hw - z*hw, c.Viewport.Y + hh - z*hh}
	return c.viewMatrix
}

// GeoM returns the view matrix as an ebiten.GeoM.
func (c *Camera) GeoM() ebiten.GeoM {
	return affineGeoM(c.computeViewMatrix())
}
