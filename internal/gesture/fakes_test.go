package gesture

import "GestureBoard/internal/state"

// recordingCanvas keeps every path as a list of points.
type recordingCanvas struct {
	paths  [][]state.Point
	clears int
}

func (c *recordingCanvas) BeginPath(p state.Point) {
	c.paths = append(c.paths, []state.Point{p})
}

func (c *recordingCanvas) LineTo(p state.Point) {
	last := len(c.paths) - 1
	c.paths[last] = append(c.paths[last], p)
}

func (c *recordingCanvas) Clear() {
	c.paths = nil
	c.clears++
}

type recordingLaser struct {
	moves []state.Point
}

func (l *recordingLaser) Move(p state.Point) {
	l.moves = append(l.moves, p)
}
