package render

import (
	"image"

	"GestureBoard/internal/state"
)

// StrokeRenderer is the append-only annotation layer. Only Clear removes
// what has been drawn, apart from the eraser pen.
type StrokeRenderer struct {
	surf     *surface
	pen      state.Pen
	mode     state.Mode
	cursor   state.Point
	open     bool
	paths    int
	segments int
}

func NewStrokeRenderer(w, h int, pen state.Pen) *StrokeRenderer {
	return &StrokeRenderer{surf: newSurface(w, h), pen: pen}
}

// BeginPath lifts the pen and puts it down at p.
func (r *StrokeRenderer) BeginPath(p state.Point) {
	if r.surf == nil {
		return
	}
	r.cursor = p
	r.open = true
	r.paths++
}

// LineTo commits the segment from the pen position to p immediately.
func (r *StrokeRenderer) LineTo(p state.Point) {
	if r.surf == nil {
		return
	}
	if !r.open {
		r.BeginPath(p)
		return
	}
	if r.mode == state.ModeErase {
		r.surf.strokeSegment(r.cursor, p, r.pen.EraserWidth, cut)
	} else {
		r.surf.strokeSegment(r.cursor, p, r.pen.Width, paint(r.pen.Color))
	}
	r.cursor = p
	r.segments++
}

// Clear wipes the layer.
func (r *StrokeRenderer) Clear() {
	r.open = false
	r.paths = 0
	r.segments = 0
	if r.surf != nil {
		r.surf.clear()
	}
}

func (r *StrokeRenderer) SetMode(m state.Mode) { r.mode = m }
func (r *StrokeRenderer) SetPen(p state.Pen)   { r.pen = p }
func (r *StrokeRenderer) Pen() state.Pen       { return r.pen }

// PathCount is the number of paths begun since the last clear.
func (r *StrokeRenderer) PathCount() int { return r.paths }

// SegmentCount is the number of segments committed since the last clear.
func (r *StrokeRenderer) SegmentCount() int { return r.segments }

// Image returns the live layer, or nil after Release.
func (r *StrokeRenderer) Image() *image.RGBA {
	if r.surf == nil {
		return nil
	}
	return r.surf.img
}

// Resize changes the layer size, keeping existing pixels anchored top-left.
func (r *StrokeRenderer) Resize(w, h int) {
	if r.surf == nil {
		return
	}
	if cw, ch := r.surf.size(); cw == w && ch == h {
		return
	}
	r.surf = r.surf.resized(w, h)
}

// Release drops the surface. Later calls draw nothing.
func (r *StrokeRenderer) Release() {
	r.surf = nil
	r.open = false
}
