package state

import "fmt"

// Snapshot is a copy of the presentation state at one instant.
type Snapshot struct {
	Page    int
	Total   int
	Overlay Overlay
	Mode    Mode
}

func (s Snapshot) String() string {
	return fmt.Sprintf("page %d/%d overlay=%03b mode=%s", s.Page, s.Total, s.Overlay, s.Mode)
}

// Presentation owns the page index, page count, modal overlays and pen mode.
// It is mutated only by the gesture dispatcher and by document loads, always
// from the goroutine that processes frames.
type Presentation struct {
	page    int
	total   int
	overlay Overlay
	mode    Mode
}

func NewPresentation() *Presentation {
	return &Presentation{page: 1}
}

func (p *Presentation) Page() int        { return p.page }
func (p *Presentation) TotalPages() int  { return p.total }
func (p *Presentation) Overlay() Overlay { return p.overlay }
func (p *Presentation) Mode() Mode       { return p.mode }

func (p *Presentation) Snapshot() Snapshot {
	return Snapshot{Page: p.page, Total: p.total, Overlay: p.overlay, Mode: p.mode}
}

// NextPage advances one page, stopping at the last page. It reports whether
// the page changed.
func (p *Presentation) NextPage() bool {
	return p.setPage(p.page + 1)
}

// PrevPage goes back one page, stopping at page 1.
func (p *Presentation) PrevPage() bool {
	return p.setPage(p.page - 1)
}

// GoTo jumps to page n, clamped into range.
func (p *Presentation) GoTo(n int) bool {
	return p.setPage(n)
}

func (p *Presentation) setPage(n int) bool {
	n = p.clamp(n)
	if n == p.page {
		return false
	}
	p.page = n
	return true
}

func (p *Presentation) clamp(n int) int {
	if n > p.total {
		n = p.total
	}
	if n < 1 {
		n = 1
	}
	return n
}

// SetTotalPages records a completed document load. The current page only
// moves when it falls outside the new range; the return value reports that.
func (p *Presentation) SetTotalPages(total int) bool {
	if total < 0 {
		total = 0
	}
	p.total = total
	return p.setPage(p.page)
}

// ToggleImageModal flips the image overlay flag and reports whether it is now open.
func (p *Presentation) ToggleImageModal() bool {
	return p.toggle(OverlayImage)
}

// ToggleTextModal flips the text overlay flag and reports whether it is now open.
func (p *Presentation) ToggleTextModal() bool {
	return p.toggle(OverlayText)
}

func (p *Presentation) toggle(o Overlay) bool {
	p.overlay ^= o
	return p.overlay.Has(o)
}

// CloseOverlay clears a single flag, used when a modal is dismissed locally.
func (p *Presentation) CloseOverlay(o Overlay) {
	p.overlay &^= o
}

func (p *Presentation) SetMode(m Mode) {
	p.mode = m
}
