package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"GestureBoard/internal/board"
)

// BoardWidget shows the board's three layers (page, strokes, laser) scaled
// to fit while keeping the page aspect.
type BoardWidget struct {
	widget.BaseWidget
	board *board.Board
}

var _ fyne.Widget = (*BoardWidget)(nil)

func NewBoardWidget(b *board.Board) *BoardWidget {
	w := &BoardWidget{board: b}
	w.ExtendBaseWidget(w)
	return w
}

func (w *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{
		widget:     w,
		background: canvas.NewRectangle(color.White),
		page:       canvas.NewImageFromImage(nil),
		strokes:    canvas.NewImageFromImage(nil),
		laser:      canvas.NewImageFromImage(nil),
	}
	for _, img := range []*canvas.Image{r.page, r.strokes, r.laser} {
		img.FillMode = canvas.ImageFillStretch
		img.ScaleMode = canvas.ImageScaleSmooth
	}
	r.Refresh()
	return r
}

type boardWidgetRenderer struct {
	widget     *BoardWidget
	background *canvas.Rectangle
	page       *canvas.Image
	strokes    *canvas.Image
	laser      *canvas.Image
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.page, r.strokes, r.laser}
}

// Layout letterboxes the viewport into size.
func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	pos, fit := fitRect(r.widget.board.Viewport().Width, r.widget.board.Viewport().Height, size)
	for _, o := range r.Objects() {
		o.Move(pos)
		o.Resize(fit)
	}
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(320, 240)
}

func (r *boardWidgetRenderer) Refresh() {
	b := r.widget.board
	r.page.Image = b.Background()
	if img := b.StrokeLayer().Image(); img != nil {
		r.strokes.Image = img
	} else {
		r.strokes.Image = nil
	}
	if img := b.LaserLayer().Image(); img != nil {
		r.laser.Image = img
	} else {
		r.laser.Image = nil
	}
	r.Layout(r.widget.Size())
	for _, o := range r.Objects() {
		o.Refresh()
	}
}

func (r *boardWidgetRenderer) Destroy() {}

// fitRect returns the largest w:h rectangle centred in size.
func fitRect(w, h float64, size fyne.Size) (fyne.Position, fyne.Size) {
	if w <= 0 || h <= 0 || size.Width <= 0 || size.Height <= 0 {
		return fyne.NewPos(0, 0), size
	}
	scale := float64(size.Width) / w
	if s := float64(size.Height) / h; s < scale {
		scale = s
	}
	fit := fyne.NewSize(float32(w*scale), float32(h*scale))
	return fyne.NewPos((size.Width-fit.Width)/2, (size.Height-fit.Height)/2), fit
}
