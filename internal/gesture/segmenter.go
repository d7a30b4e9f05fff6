package gesture

import "GestureBoard/internal/state"

// DefaultBreakThreshold is the jump, in viewport pixels, above which two
// consecutive draw samples are treated as separate strokes. Lower values
// fragment fast natural strokes; higher values bridge tracking dropouts.
const DefaultBreakThreshold = 50.0

// PathSink receives the segmenter's decisions. The stroke renderer is the
// production sink.
type PathSink interface {
	BeginPath(p state.Point)
	LineTo(p state.Point)
}

// Segmenter splits a stream of draw points into strokes.
type Segmenter struct {
	threshold float64
	sink      PathSink
	last      state.Point
	hasLast   bool
}

func NewSegmenter(threshold float64, sink PathSink) *Segmenter {
	if threshold <= 0 {
		threshold = DefaultBreakThreshold
	}
	return &Segmenter{threshold: threshold, sink: sink}
}

// Add feeds one point and reports whether it started a new path.
func (s *Segmenter) Add(p state.Point) bool {
	started := !s.hasLast || s.last.Dist(p) > s.threshold
	if started {
		s.sink.BeginPath(p)
	} else {
		s.sink.LineTo(p)
	}
	s.last = p
	s.hasLast = true
	return started
}

// Reset forgets the last point so the next sample starts a fresh path.
func (s *Segmenter) Reset() {
	s.hasLast = false
	s.last = state.Point{}
}

// LastPoint returns the last point seen, if any.
func (s *Segmenter) LastPoint() (state.Point, bool) {
	return s.last, s.hasLast
}

func (s *Segmenter) Threshold() float64 { return s.threshold }

func (s *Segmenter) SetThreshold(threshold float64) {
	if threshold > 0 {
		s.threshold = threshold
	}
}
