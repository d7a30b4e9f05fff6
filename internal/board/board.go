// Package board is the viewer's gesture pipeline. A Board owns the
// presentation state, the cooldown and sampler, and both render layers; the
// socket callback only hands it raw frames.
package board

import (
	"errors"
	"image"
	"image/color"
	"io"
	"log"
	"sort"
	"sync"

	"GestureBoard/internal/gesture"
	"GestureBoard/internal/render"
	"GestureBoard/internal/state"
)

// Scheduler runs fn to completion on the goroutine that owns the board.
type Scheduler func(fn func())

// Inline runs fn on the caller's goroutine.
func Inline(fn func()) { fn() }

// Serial runs every fn under one lock. Use it when several goroutines feed
// the board and there is no UI thread to hop onto.
func Serial() Scheduler {
	var mu sync.Mutex
	return func(fn func()) {
		mu.Lock()
		defer mu.Unlock()
		fn()
	}
}

// PageSource renders document pages for the background layer.
type PageSource interface {
	Render(page, width int) (*image.RGBA, error)
}

// Options configure a Board.
type Options struct {
	ViewerID    string
	Viewport    gesture.Viewport
	Tunables    gesture.Tunables
	Pen         state.Pen
	LaserRadius float64
	LaserColor  color.Color
	Clock       state.Clock
}

// Stats counts what happened to inbound frames since the board was created.
type Stats struct {
	Frames     int
	Malformed  int
	Misrouted  int
	Offline    int
	Applied    int
	Debounced  int
	Subsampled int
	Unmappable int
	Ignored    int
}

// PageImage is a composited page kept for export.
type PageImage struct {
	Page  int
	Image *image.RGBA
}

type Board struct {
	decoder    *gesture.Decoder
	pres       *state.Presentation
	strokes    *render.StrokeRenderer
	laser      *render.LaserRenderer
	dispatcher *gesture.Dispatcher

	connected  bool
	closed     bool
	conn       io.Closer
	background image.Image
	snapshots  map[int]*image.RGBA
	stats      Stats

	pages     PageSource
	pageWidth int
	shown     int

	// OnChange runs after any frame or action that may have changed what
	// is on screen.
	OnChange func()
}

func New(opts Options) (*Board, error) {
	if opts.ViewerID == "" {
		return nil, errors.New("board: viewer id is required")
	}
	dec, err := gesture.NewDecoder(opts.ViewerID)
	if err != nil {
		return nil, err
	}
	if opts.Pen.Color == nil {
		opts.Pen = state.DefaultPen()
	}
	w, h := int(opts.Viewport.Width), int(opts.Viewport.Height)

	b := &Board{
		decoder:   dec,
		pres:      state.NewPresentation(),
		strokes:   render.NewStrokeRenderer(w, h, opts.Pen),
		laser:     render.NewLaserRenderer(w, h, opts.LaserRadius, opts.LaserColor),
		snapshots: make(map[int]*image.RGBA),
	}
	b.dispatcher = gesture.NewDispatcher(opts.Clock, b.pres, b.strokes, b.laser, opts.Tunables)
	b.dispatcher.SetViewport(opts.Viewport)
	b.dispatcher.BeforePageChange = b.keepPage
	return b, nil
}

func (b *Board) ViewerID() string { return b.decoder.Recipient() }

// Connected marks the socket live. Cooldown and sampler restart from zero;
// pages and strokes carry over from any earlier connection.
func (b *Board) Connected() {
	if b.closed {
		return
	}
	b.connected = true
	b.dispatcher.Reset()
	log.Printf("[BOARD] viewer %s connected", b.ViewerID())
	b.changed()
}

// Disconnected marks the socket gone. Gesture input is refused until the
// next Connected.
func (b *Board) Disconnected(err error) {
	if !b.connected {
		return
	}
	b.connected = false
	b.laser.Hide()
	log.Printf("[BOARD] viewer %s disconnected: %v", b.ViewerID(), err)
	b.changed()
}

func (b *Board) IsConnected() bool { return b.connected }

// HandleFrame decodes, filters and dispatches one socket frame.
func (b *Board) HandleFrame(frame []byte) gesture.Outcome {
	b.stats.Frames++
	if !b.connected || b.closed {
		b.stats.Offline++
		return gesture.OutcomeIgnored
	}

	ev, err := b.decoder.Decode(frame)
	switch {
	case errors.Is(err, gesture.ErrNotAddressed):
		b.stats.Misrouted++
		return gesture.OutcomeIgnored
	case err != nil:
		b.stats.Malformed++
		log.Printf("[BOARD] dropped frame: %v", err)
		return gesture.OutcomeIgnored
	}

	out := b.dispatcher.Dispatch(ev)
	b.count(out)
	if out == gesture.OutcomeApplied {
		b.changed()
	}
	return out
}

func (b *Board) count(out gesture.Outcome) {
	switch out {
	case gesture.OutcomeApplied:
		b.stats.Applied++
	case gesture.OutcomeDebounced:
		b.stats.Debounced++
	case gesture.OutcomeSubsampled:
		b.stats.Subsampled++
	case gesture.OutcomeUnmappable:
		b.stats.Unmappable++
	default:
		b.stats.Ignored++
	}
}

// Perform runs a discrete action from the local toolbar, bypassing the
// gesture cooldown.
func (b *Board) Perform(k gesture.Kind) bool {
	if b.closed {
		return false
	}
	ok := b.dispatcher.Perform(k)
	if ok {
		b.changed()
	}
	return ok
}

// CloseOverlay dismisses a modal from the UI side.
func (b *Board) CloseOverlay(o state.Overlay) {
	if !b.pres.Overlay().Has(o) {
		return
	}
	b.pres.CloseOverlay(o)
	b.changed()
}

func (b *Board) SetMode(m state.Mode) {
	b.pres.SetMode(m)
	b.strokes.SetMode(m)
	b.changed()
}

func (b *Board) SetPen(p state.Pen) { b.strokes.SetPen(p) }

// SetLaserStyle restyles the pointer marker from the next sample on.
func (b *Board) SetLaserStyle(radius float64, c color.Color) {
	if b.closed {
		return
	}
	b.laser.SetStyle(radius, c)
}

// Tune swaps the gesture tunables, e.g. after a config reload.
func (b *Board) Tune(t gesture.Tunables) {
	if b.closed {
		return
	}
	b.dispatcher.Tune(t)
	log.Printf("[BOARD] tunables: threshold=%.1fpx cooldown=%s subsample=%d mirror=%t",
		t.BreakThreshold, t.Cooldown, t.Subsample, t.Mirror)
}

func (b *Board) Tunables() gesture.Tunables { return b.dispatcher.Tunables() }

// DocumentLoaded records the page count reported by the document source.
func (b *Board) DocumentLoaded(total int) {
	b.dispatcher.SetTotalPages(total)
	log.Printf("[BOARD] document loaded: %d pages", total)
	b.changed()
}

// PageRendered resizes the viewport to the rendered page.
func (b *Board) PageRendered(width, height int) {
	if width <= 0 || height <= 0 || b.closed {
		return
	}
	b.dispatcher.SetViewport(gesture.Viewport{Width: float64(width), Height: float64(height)})
	b.strokes.Resize(width, height)
	b.laser.Resize(width, height)
	b.changed()
}

// SetBackground sets the page image shown under the strokes.
func (b *Board) SetBackground(img image.Image) {
	b.background = img
	b.changed()
}

func (b *Board) Background() image.Image { return b.background }

func (b *Board) Snapshot() state.Snapshot { return b.pres.Snapshot() }
func (b *Board) Stats() Stats             { return b.stats }

func (b *Board) Viewport() gesture.Viewport { return b.dispatcher.Viewport() }

func (b *Board) StrokeLayer() *render.StrokeRenderer { return b.strokes }
func (b *Board) LaserLayer() *render.LaserRenderer   { return b.laser }

// Composite flattens the current page: background, then strokes.
func (b *Board) Composite() *image.RGBA {
	vp := b.dispatcher.Viewport()
	w, h := int(vp.Width), int(vp.Height)
	var layers []image.Image
	if b.background != nil {
		layers = append(layers, b.background)
	}
	if img := b.strokes.Image(); img != nil {
		layers = append(layers, img)
	}
	return render.Composite(w, h, layers...)
}

func (b *Board) keepPage(page int) {
	if b.strokes.PathCount() == 0 {
		return
	}
	b.snapshots[page] = b.Composite()
}

// Pages returns every annotated page seen this session plus the current
// page, in page order.
func (b *Board) Pages() []PageImage {
	pages := make([]PageImage, 0, len(b.snapshots)+1)
	current := b.pres.Page()
	for n, img := range b.snapshots {
		if n != current {
			pages = append(pages, PageImage{Page: n, Image: img})
		}
	}
	pages = append(pages, PageImage{Page: current, Image: b.Composite()})
	sort.Slice(pages, func(i, j int) bool { return pages[i].Page < pages[j].Page })
	return pages
}

// Attach hands the board the socket to close on teardown.
func (b *Board) Attach(c io.Closer) { b.conn = c }

// Close releases the socket and the render surfaces. The board ignores all
// input afterwards.
func (b *Board) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.connected = false
	b.strokes.Release()
	b.laser.Release()
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}

// FollowPages renders the current page from src as the background whenever
// the page changes. width is the render width handed to src.
func (b *Board) FollowPages(src PageSource, width int) {
	b.pages = src
	b.pageWidth = width
	b.shown = 0
	b.changed()
}

func (b *Board) syncBackground() {
	if b.pages == nil || b.closed || b.pres.TotalPages() == 0 {
		return
	}
	page := b.pres.Page()
	if page == b.shown {
		return
	}
	b.shown = page
	img, err := b.pages.Render(page, b.pageWidth)
	if err != nil {
		log.Printf("[BOARD] render page %d: %v", page, err)
		return
	}
	b.background = img
}

func (b *Board) changed() {
	b.syncBackground()
	if b.OnChange != nil {
		b.OnChange()
	}
}
