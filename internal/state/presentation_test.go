package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresentation_StartsOnFirstPage(t *testing.T) {
	p := NewPresentation()
	assert.Equal(t, Snapshot{Page: 1}, p.Snapshot())

	assert.False(t, p.NextPage(), "no pages loaded")
	assert.False(t, p.PrevPage())
	assert.Equal(t, 1, p.Page())
}

func TestPresentation_PageClamping(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		start   int
		step    func(*Presentation) bool
		want    int
		changed bool
	}{
		{"next in range", 3, 1, (*Presentation).NextPage, 2, true},
		{"next at last page", 3, 3, (*Presentation).NextPage, 3, false},
		{"prev in range", 3, 2, (*Presentation).PrevPage, 1, true},
		{"prev at first page", 3, 1, (*Presentation).PrevPage, 1, false},
		{"next single page", 1, 1, (*Presentation).NextPage, 1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPresentation()
			p.SetTotalPages(tc.total)
			p.GoTo(tc.start)
			require.Equal(t, tc.start, p.Page())

			assert.Equal(t, tc.changed, tc.step(p))
			assert.Equal(t, tc.want, p.Page())
		})
	}
}

func TestPresentation_SetTotalPagesClampsOnlyWhenOutOfRange(t *testing.T) {
	p := NewPresentation()
	p.SetTotalPages(10)
	p.GoTo(7)

	assert.False(t, p.SetTotalPages(8), "page 7 still valid")
	assert.Equal(t, 7, p.Page())

	assert.True(t, p.SetTotalPages(4))
	assert.Equal(t, 4, p.Page())

	assert.True(t, p.SetTotalPages(0))
	assert.Equal(t, 1, p.Page())
	assert.Equal(t, 0, p.TotalPages())

	p.SetTotalPages(-3)
	assert.Equal(t, 0, p.TotalPages())
}

func TestPresentation_OverlaysAreIndependent(t *testing.T) {
	p := NewPresentation()

	assert.True(t, p.ToggleImageModal())
	assert.True(t, p.ToggleTextModal())
	assert.True(t, p.Overlay().Has(OverlayImage))
	assert.True(t, p.Overlay().Has(OverlayText))

	assert.False(t, p.ToggleImageModal())
	assert.False(t, p.Overlay().Has(OverlayImage))
	assert.True(t, p.Overlay().Has(OverlayText))

	p.CloseOverlay(OverlayText)
	assert.Equal(t, OverlayNone, p.Overlay())
	assert.False(t, p.Overlay().Has(OverlayNone))
}

func TestPresentation_Mode(t *testing.T) {
	p := NewPresentation()
	assert.Equal(t, ModeDraw, p.Mode())
	p.SetMode(ModeErase)
	assert.Equal(t, "erase", p.Mode().String())
}

func TestManualClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewManualClock(start)
	assert.True(t, c.Now().Equal(start))
	c.Advance(250 * time.Millisecond)
	assert.Equal(t, 250*time.Millisecond, c.Now().Sub(start))
}

func TestPoint_Dist(t *testing.T) {
	assert.InDelta(t, 5.0, Point{0, 0}.Dist(Point{3, 4}), 1e-9)
	assert.InDelta(t, 565.685, Point{100, 100}.Dist(Point{500, 500}), 1e-3)
}
