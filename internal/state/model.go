package state

import (
	"image/color"
	"math"
)

// Point is a position in local viewport pixels.
type Point struct{ X, Y float64 }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Mode selects what the pen does on the stroke surface.
type Mode int

const (
	ModeDraw Mode = iota
	ModeErase
)

func (m Mode) String() string {
	if m == ModeErase {
		return "erase"
	}
	return "draw"
}

// Overlay is a set of independent modal flags.
type Overlay uint8

const (
	OverlayImage Overlay = 1 << iota // voice prompt -> generated image
	OverlayText                      // typed prompt -> generated prose

	OverlayNone Overlay = 0
)

// Has reports whether every flag in o is set.
func (ov Overlay) Has(o Overlay) bool { return o != 0 && ov&o == o }

// Pen describes how strokes are painted.
type Pen struct {
	Color       color.Color
	Width       float64
	EraserWidth float64
}

// DefaultPen matches the blue 2px pen of the remote canvas and the 20px eraser.
func DefaultPen() Pen {
	return Pen{
		Color:       color.NRGBA{B: 255, A: 255},
		Width:       2,
		EraserWidth: 20,
	}
}
