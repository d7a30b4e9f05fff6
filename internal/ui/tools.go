package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"GestureBoard/internal/gesture"
	"GestureBoard/internal/state"
)

var palette = []color.Color{
	color.Black,
	color.NRGBA{R: 255, A: 255},
	color.NRGBA{G: 160, A: 255},
	color.NRGBA{B: 255, A: 255},
	color.NRGBA{R: 255, G: 200, A: 255},
}

type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// NewToolbar builds the manual controls: pen and eraser, stroke style, page
// navigation, clear, the two prompt modals and export.
func (v *viewer) NewToolbar() fyne.CanvasObject {
	b := v.board
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() { b.SetMode(state.ModeDraw) }),
		widget.NewToolbarAction(theme.DeleteIcon(), func() { b.SetMode(state.ModeErase) }),
		widget.NewToolbarAction(theme.ContentClearIcon(), func() { b.Perform(gesture.KindClearCanvas) }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.NavigateBackIcon(), func() { b.Perform(gesture.KindPagePrev) }),
		widget.NewToolbarAction(theme.NavigateNextIcon(), func() { b.Perform(gesture.KindPageNext) }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.FileImageIcon(), func() { b.Perform(gesture.KindToggleImageModal) }),
		widget.NewToolbarAction(theme.FileTextIcon(), func() { b.Perform(gesture.KindToggleTextModal) }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), v.exportPage),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), v.exportSession),
	)

	onColorTapped := func(c color.Color) {
		pen := b.StrokeLayer().Pen()
		pen.Color = c
		b.SetPen(pen)
		b.SetMode(state.ModeDraw)
	}
	colorBox := container.NewHBox()
	for _, c := range palette {
		colorBox.Add(newColorSwatch(c, onColorTapped))
	}

	strokeSlider := widget.NewSlider(1.0, 30.0)
	strokeSlider.SetValue(b.StrokeLayer().Pen().Width)
	strokeSlider.OnChanged = func(val float64) {
		pen := b.StrokeLayer().Pen()
		pen.Width = val
		b.SetPen(pen)
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), strokeSlider)

	return container.NewHBox(
		tb,
		widget.NewSeparator(),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		layout.NewSpacer(),
	)
}

// shortcuts maps keys to the same actions as the toolbar.
var shortcuts = map[fyne.KeyName]gesture.Kind{
	fyne.KeyRight:    gesture.KindPageNext,
	fyne.KeyPageDown: gesture.KindPageNext,
	fyne.KeyLeft:     gesture.KindPagePrev,
	fyne.KeyPageUp:   gesture.KindPagePrev,
	fyne.KeyC:        gesture.KindClearCanvas,
	fyne.KeyI:        gesture.KindToggleImageModal,
	fyne.KeyT:        gesture.KindToggleTextModal,
}

func (v *viewer) typedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyE:
		if v.board.Snapshot().Mode == state.ModeErase {
			v.board.SetMode(state.ModeDraw)
		} else {
			v.board.SetMode(state.ModeErase)
		}
	case fyne.KeyEscape:
		v.board.CloseOverlay(state.OverlayImage)
		v.board.CloseOverlay(state.OverlayText)
	default:
		if k, ok := shortcuts[ev.Name]; ok {
			v.board.Perform(k)
		}
	}
}
