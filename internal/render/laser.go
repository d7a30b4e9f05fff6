package render

import (
	"image"
	"image/color"

	"GestureBoard/internal/state"
)

// LaserRenderer shows at most one marker. Every update repaints the whole
// layer.
type LaserRenderer struct {
	surf    *surface
	radius  float64
	color   color.Color
	pos     state.Point
	visible bool
}

func NewLaserRenderer(w, h int, radius float64, c color.Color) *LaserRenderer {
	if radius <= 0 {
		radius = 8
	}
	if c == nil {
		c = color.NRGBA{R: 255, A: 220}
	}
	return &LaserRenderer{surf: newSurface(w, h), radius: radius, color: c}
}

// Move replaces the marker with one at p.
func (l *LaserRenderer) Move(p state.Point) {
	if l.surf == nil {
		return
	}
	l.surf.clear()
	l.surf.fillCircle(p, l.radius, paint(l.color))
	l.pos = p
	l.visible = true
}

// Hide removes the marker.
func (l *LaserRenderer) Hide() {
	l.visible = false
	if l.surf != nil {
		l.surf.clear()
	}
}

// Position returns the marker position if one is shown.
func (l *LaserRenderer) Position() (state.Point, bool) {
	return l.pos, l.visible
}

func (l *LaserRenderer) SetStyle(radius float64, c color.Color) {
	if radius > 0 {
		l.radius = radius
	}
	if c != nil {
		l.color = c
	}
}

func (l *LaserRenderer) Image() *image.RGBA {
	if l.surf == nil {
		return nil
	}
	return l.surf.img
}

// Resize drops the marker; it reappears with the next sample.
func (l *LaserRenderer) Resize(w, h int) {
	if l.surf == nil {
		return
	}
	l.surf = newSurface(w, h)
	l.visible = false
}

func (l *LaserRenderer) Release() {
	l.surf = nil
	l.visible = false
}
