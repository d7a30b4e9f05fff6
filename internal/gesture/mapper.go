package gesture

import "GestureBoard/internal/state"

// Viewport is the local drawing area in pixels.
type Viewport struct {
	Width, Height float64
}

// Mapper rescales sender coordinates into the viewport.
type Mapper struct {
	// Mirror flips x, for senders whose camera feed is mirrored.
	Mirror bool
}

// Map converts ev into viewport pixels. It reports false when either frame
// has no area, in which case the event must be dropped.
func (m Mapper) Map(ev Event, vp Viewport) (state.Point, bool) {
	if ev.SourceWidth <= 0 || ev.SourceHeight <= 0 || vp.Width <= 0 || vp.Height <= 0 {
		return state.Point{}, false
	}
	x := clamp(ev.X, 0, ev.SourceWidth) * (vp.Width / ev.SourceWidth)
	y := clamp(ev.Y, 0, ev.SourceHeight) * (vp.Height / ev.SourceHeight)
	if m.Mirror {
		x = vp.Width - x
	}
	return state.Point{X: x, Y: y}, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
