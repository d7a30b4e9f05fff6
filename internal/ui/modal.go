package ui

import (
	"context"
	"errors"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"GestureBoard/internal/state"
)

var errNotConfigured = errors.New("generation service is not configured")

// generateFunc runs off the UI thread and returns the content to show.
type generateFunc func(ctx context.Context, prompt string) (fyne.CanvasObject, error)

// promptModal is the image or text generation dialog. Its visibility
// follows one Overlay flag of the board.
type promptModal struct {
	overlay state.Overlay
	canvas  fyne.Canvas
	run     generateFunc
	onClose func()

	entry  *widget.Entry
	submit *widget.Button
	errMsg *widget.Label
	busy   *widget.ProgressBarInfinite
	result *fyne.Container
	popup  *widget.PopUp

	cancel context.CancelFunc
}

func newPromptModal(c fyne.Canvas, title, placeholder string, overlay state.Overlay, run generateFunc, onClose func()) *promptModal {
	m := &promptModal{overlay: overlay, canvas: c, run: run, onClose: onClose}

	m.entry = widget.NewEntry()
	m.entry.SetPlaceHolder(placeholder)
	m.entry.OnSubmitted = func(string) { m.generate() }
	m.submit = widget.NewButton("Generate", m.generate)
	m.errMsg = widget.NewLabel("")
	m.errMsg.Importance = widget.DangerImportance
	m.errMsg.Wrapping = fyne.TextWrapWord
	m.errMsg.Hide()
	m.busy = widget.NewProgressBarInfinite()
	m.busy.Hide()
	m.result = container.NewStack()

	closeBtn := widget.NewButton("Close", func() {
		if m.onClose != nil {
			m.onClose()
		}
	})
	header := container.NewBorder(nil, nil, nil, closeBtn, widget.NewLabelWithStyle(title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	form := container.NewBorder(nil, nil, nil, m.submit, m.entry)
	body := container.NewBorder(
		container.NewVBox(header, form, m.busy, m.errMsg), nil, nil, nil,
		container.NewVScroll(m.result),
	)

	m.popup = widget.NewModalPopUp(body, c)
	m.popup.Resize(fyne.NewSize(560, 440))
	return m
}

// sync shows or hides the dialog to match the overlay flags.
func (m *promptModal) sync(ov state.Overlay) {
	open := ov.Has(m.overlay)
	switch {
	case open && !m.popup.Visible():
		m.popup.Show()
		m.canvas.Focus(m.entry)
	case !open && m.popup.Visible():
		m.stop()
		m.popup.Hide()
	}
}

func (m *promptModal) stop() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.busy.Stop()
	m.busy.Hide()
	m.submit.Enable()
}

func (m *promptModal) generate() {
	if m.run == nil {
		m.showError(errNotConfigured)
		return
	}
	m.stop()
	m.errMsg.Hide()
	m.submit.Disable()
	m.busy.Show()
	m.busy.Start()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	prompt := m.entry.Text
	go func() {
		obj, err := m.run(ctx, prompt)
		fyne.Do(func() {
			if ctx.Err() != nil {
				return
			}
			m.stop()
			if err != nil {
				m.showError(err)
				return
			}
			m.result.Objects = []fyne.CanvasObject{obj}
			m.result.Refresh()
		})
	}()
}

func (m *promptModal) showError(err error) {
	m.errMsg.SetText(err.Error())
	m.errMsg.Show()
}

func textResult(s string) fyne.CanvasObject {
	l := widget.NewLabel(s)
	l.Wrapping = fyne.TextWrapWord
	return l
}

func imageResult(img image.Image) fyne.CanvasObject {
	c := canvas.NewImageFromImage(img)
	c.FillMode = canvas.ImageFillContain
	c.SetMinSize(fyne.NewSize(480, 320))
	return c
}
