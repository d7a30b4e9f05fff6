// Package render holds the two drawing surfaces of the board: the persistent
// stroke layer and the transient laser layer. Both are plain RGBA images so
// they can be shown by the UI and read back by the exporter.
package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"GestureBoard/internal/state"
)

const capSegments = 24

type surface struct {
	img  *image.RGBA
	z    *vector.Rasterizer
	mask *image.Alpha
}

// ink applies the rasterizer's current path to the surface.
type ink func(s *surface)

// paint blends c over the path.
func paint(c color.Color) ink {
	src := image.NewUniform(c)
	return func(s *surface) {
		s.z.Draw(s.img, s.img.Bounds(), src, image.Point{})
	}
}

// cut removes pixels under the path, scaled by its coverage. Everything
// outside the path is left alone.
func cut(s *surface) {
	b := s.img.Bounds()
	if s.mask == nil || s.mask.Bounds() != b {
		s.mask = image.NewAlpha(b)
	} else {
		clear(s.mask.Pix)
	}
	s.z.Draw(s.mask, b, image.Opaque, image.Point{})
	draw.DrawMask(s.img, b, image.Transparent, image.Point{}, s.mask, image.Point{}, draw.Src)
}

func newSurface(w, h int) *surface {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &surface{
		img: image.NewRGBA(image.Rect(0, 0, w, h)),
		z:   vector.NewRasterizer(w, h),
	}
}

func (s *surface) size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *surface) clear() {
	draw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// resized returns a surface of the new size carrying the old pixels at the origin.
func (s *surface) resized(w, h int) *surface {
	n := newSurface(w, h)
	draw.Draw(n.img, n.img.Bounds(), s.img, image.Point{}, draw.Src)
	return n
}

func (s *surface) begin() {
	w, h := s.size()
	s.z.Reset(w, h)
	s.z.DrawOp = draw.Over
}

func (s *surface) circle(c state.Point, r float64) {
	for i := 0; i <= capSegments; i++ {
		a := 2 * math.Pi * float64(i) / capSegments
		x, y := float32(c.X+r*math.Cos(a)), float32(c.Y+r*math.Sin(a))
		if i == 0 {
			s.z.MoveTo(x, y)
		} else {
			s.z.LineTo(x, y)
		}
	}
	s.z.ClosePath()
}

// fillCircle applies in to a disc of radius r centred on c.
func (s *surface) fillCircle(c state.Point, r float64, in ink) {
	s.begin()
	s.circle(c, r)
	in(s)
}

// strokeSegment applies in along a line from a to b with round ends. The
// body and the caps are filled separately so their windings never cancel.
func (s *surface) strokeSegment(a, b state.Point, width float64, in ink) {
	hw := width / 2
	if l := a.Dist(b); l > 0 {
		nx, ny := -(b.Y-a.Y)/l*hw, (b.X-a.X)/l*hw
		s.begin()
		s.z.MoveTo(float32(a.X+nx), float32(a.Y+ny))
		s.z.LineTo(float32(b.X+nx), float32(b.Y+ny))
		s.z.LineTo(float32(b.X-nx), float32(b.Y-ny))
		s.z.LineTo(float32(a.X-nx), float32(a.Y-ny))
		s.z.ClosePath()
		in(s)
	}
	s.fillCircle(a, hw, in)
	s.fillCircle(b, hw, in)
}

// Composite stacks layers over an opaque white background, scaling none of them.
func Composite(w, h int, layers ...image.Image) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	for _, l := range layers {
		if l == nil {
			continue
		}
		draw.Draw(out, out.Bounds(), l, l.Bounds().Min, draw.Over)
	}
	return out
}

// Fit scales src to exactly w by h.
func Fit(src image.Image, w, h int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(out, out.Bounds(), src, src.Bounds(), draw.Src, nil)
	return out
}
