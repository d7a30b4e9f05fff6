package gesture

import (
	"time"

	"GestureBoard/internal/state"
)

// Canvas is the persistent stroke surface.
type Canvas interface {
	PathSink
	Clear()
}

// Pointer is the transient laser overlay.
type Pointer interface {
	Move(p state.Point)
}

// Outcome says what Dispatch did with an event.
type Outcome int

const (
	OutcomeIgnored    Outcome = iota // no recognised gesture
	OutcomeApplied                   // accepted and routed
	OutcomeDebounced                 // discrete gesture inside the cooldown window
	OutcomeSubsampled                // continuous sample thinned out
	OutcomeUnmappable                // source or viewport has no area
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeDebounced:
		return "debounced"
	case OutcomeSubsampled:
		return "subsampled"
	case OutcomeUnmappable:
		return "unmappable"
	}
	return "ignored"
}

// Tunables are the knobs of the dispatch pipeline. Zero values fall back to
// the package defaults.
type Tunables struct {
	BreakThreshold float64
	Cooldown       time.Duration
	Subsample      int
	Mirror         bool
}

func DefaultTunables() Tunables {
	return Tunables{
		BreakThreshold: DefaultBreakThreshold,
		Cooldown:       DefaultCooldown,
		Subsample:      DefaultSubsample,
	}
}

// Dispatcher routes decoded events. Discrete gestures go through the
// cooldown and then the presentation; continuous gestures go through the
// sampler and then the segmenter or the laser.
type Dispatcher struct {
	clock     state.Clock
	pres      *state.Presentation
	canvas    Canvas
	laser     Pointer
	mapper    Mapper
	viewport  Viewport
	cooldown  *Cooldown
	sampler   *Sampler
	segmenter *Segmenter

	// BeforePageChange, if set, runs with the outgoing page number just
	// before a page change wipes the stroke surface.
	BeforePageChange func(page int)
}

func NewDispatcher(clock state.Clock, pres *state.Presentation, canvas Canvas, laser Pointer, t Tunables) *Dispatcher {
	if clock == nil {
		clock = state.SystemClock()
	}
	d := &Dispatcher{
		clock:     clock,
		pres:      pres,
		canvas:    canvas,
		laser:     laser,
		cooldown:  NewCooldown(DefaultCooldown),
		sampler:   NewSampler(DefaultSubsample),
		segmenter: NewSegmenter(DefaultBreakThreshold, canvas),
	}
	d.Tune(t)
	return d
}

// Tune applies new tunables without touching counters or state.
func (d *Dispatcher) Tune(t Tunables) {
	if t.BreakThreshold > 0 {
		d.segmenter.SetThreshold(t.BreakThreshold)
	}
	if t.Cooldown > 0 {
		d.cooldown.SetWindow(t.Cooldown)
	}
	if t.Subsample > 0 {
		d.sampler.SetEvery(t.Subsample)
	}
	d.mapper.Mirror = t.Mirror
}

func (d *Dispatcher) Tunables() Tunables {
	return Tunables{
		BreakThreshold: d.segmenter.Threshold(),
		Cooldown:       d.cooldown.Window(),
		Subsample:      d.sampler.Every(),
		Mirror:         d.mapper.Mirror,
	}
}

func (d *Dispatcher) SetViewport(vp Viewport) { d.viewport = vp }
func (d *Dispatcher) Viewport() Viewport      { return d.viewport }

func (d *Dispatcher) Cooldown() *Cooldown   { return d.cooldown }
func (d *Dispatcher) Sampler() *Sampler     { return d.sampler }
func (d *Dispatcher) Segmenter() *Segmenter { return d.segmenter }

// Reset returns the cooldown and sampler to their initial values. It is
// called on every (re)connect; presentation and strokes are kept.
func (d *Dispatcher) Reset() {
	d.cooldown.Reset()
	d.sampler.Reset()
}

// Dispatch processes one event to completion.
func (d *Dispatcher) Dispatch(ev Event) Outcome {
	switch {
	case ev.Gesture.Discrete():
		now := d.clock.Now()
		if !d.cooldown.Allow(now) {
			return OutcomeDebounced
		}
		d.cooldown.Accept(now)
		d.Perform(ev.Gesture)
		return OutcomeApplied

	case ev.Gesture.Continuous():
		// Every continuous arrival counts toward the sampler, including
		// frames that turn out to be unmappable.
		if !d.sampler.Take() {
			return OutcomeSubsampled
		}
		p, ok := d.mapper.Map(ev, d.viewport)
		if !ok {
			return OutcomeUnmappable
		}
		if ev.Gesture == KindDraw {
			d.segmenter.Add(p)
		} else {
			d.laser.Move(p)
		}
		return OutcomeApplied
	}
	return OutcomeIgnored
}

// Perform runs the transition of a discrete gesture without the cooldown.
// Local toolbar actions use it directly. It reports whether anything changed.
func (d *Dispatcher) Perform(k Kind) bool {
	switch k {
	case KindPageNext:
		return d.changePage(d.pres.NextPage)
	case KindPagePrev:
		return d.changePage(d.pres.PrevPage)
	case KindToggleImageModal:
		d.pres.ToggleImageModal()
		return true
	case KindToggleTextModal:
		d.pres.ToggleTextModal()
		return true
	case KindClearCanvas:
		d.ClearStrokes()
		return true
	}
	return false
}

// SetTotalPages records a document load, clamping the current page.
func (d *Dispatcher) SetTotalPages(total int) bool {
	return d.changePage(func() bool { return d.pres.SetTotalPages(total) })
}

func (d *Dispatcher) changePage(step func() bool) bool {
	from := d.pres.Page()
	if !step() {
		return false
	}
	if d.BeforePageChange != nil {
		d.BeforePageChange(from)
	}
	d.ClearStrokes()
	return true
}

// ClearStrokes wipes the stroke surface and forgets the last point.
func (d *Dispatcher) ClearStrokes() {
	d.canvas.Clear()
	d.segmenter.Reset()
}
