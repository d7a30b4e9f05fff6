// Package ui is the fyne front end of the viewer.
package ui

import (
	"context"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"GestureBoard/internal/board"
	"GestureBoard/internal/generate"
	"GestureBoard/internal/state"
)

// Options wire the window to the board and its collaborators.
type Options struct {
	Board     *board.Board
	Text      *generate.TextGenerator
	Image     *generate.ImageGenerator
	ExportDir string
	// Start runs once the window is up. schedule hops onto the UI thread
	// and must be used for every call into the board from other goroutines.
	Start func(schedule board.Scheduler)
	// Stop runs when the window closes, before the board is released.
	Stop func()
}

type viewer struct {
	opts   Options
	board  *board.Board
	window fyne.Window
	widget *BoardWidget
	status *widget.Label
	modals []*promptModal
}

func RunApp(opts Options) {
	myApp := app.NewWithID("io.gestureboard.viewer")
	myWindow := myApp.NewWindow("GestureBoard")
	myWindow.Resize(fyne.NewSize(1024, 768))

	v := &viewer{
		opts:   opts,
		board:  opts.Board,
		window: myWindow,
		widget: NewBoardWidget(opts.Board),
		status: widget.NewLabel("Starting..."),
	}
	v.modals = []*promptModal{
		newPromptModal(myWindow.Canvas(), "Generate an image", "Describe the picture", state.OverlayImage,
			v.imageFunc(), func() { v.board.CloseOverlay(state.OverlayImage) }),
		newPromptModal(myWindow.Canvas(), "Generate a question", "Topic", state.OverlayText,
			v.textFunc(), func() { v.board.CloseOverlay(state.OverlayText) }),
	}

	toolbar := v.NewToolbar()
	content := container.NewBorder(toolbar, v.status, nil, nil, v.widget)
	myWindow.SetContent(content)
	myWindow.Canvas().SetOnTypedKey(v.typedKey)

	v.board.OnChange = v.refresh
	myApp.Lifecycle().SetOnStarted(func() {
		v.refresh()
		if opts.Start != nil {
			opts.Start(fyne.DoAndWait)
		}
	})
	myWindow.SetOnClosed(func() {
		if opts.Stop != nil {
			opts.Stop()
		}
		if err := v.board.Close(); err != nil {
			log.Printf("[UI] close board: %v", err)
		}
	})
	myWindow.ShowAndRun()
}

// refresh repaints after the board reports a change. Runs on the UI thread.
func (v *viewer) refresh() {
	v.widget.Refresh()
	v.status.SetText(statusText(v.board))
	ov := v.board.Snapshot().Overlay
	for _, m := range v.modals {
		m.sync(ov)
	}
}

func (v *viewer) imageFunc() generateFunc {
	if v.opts.Image == nil {
		return nil
	}
	return func(ctx context.Context, prompt string) (fyne.CanvasObject, error) {
		img, err := v.opts.Image.GenerateImage(ctx, prompt)
		if err != nil {
			return nil, err
		}
		return imageResult(img), nil
	}
}

func (v *viewer) textFunc() generateFunc {
	if v.opts.Text == nil {
		return nil
	}
	return func(ctx context.Context, prompt string) (fyne.CanvasObject, error) {
		text, err := v.opts.Text.Generate(ctx, prompt)
		if err != nil {
			return nil, err
		}
		return textResult(text), nil
	}
}

func (v *viewer) exportPage() {
	path, err := ExportPage(v.board, v.opts.ExportDir, time.Now())
	v.reportExport(path, err)
}

func (v *viewer) exportSession() {
	path, err := ExportSession(v.board, v.opts.ExportDir, time.Now())
	v.reportExport(path, err)
}

func (v *viewer) reportExport(path string, err error) {
	if err != nil {
		log.Printf("[EXPORT] failed: %v", err)
		dialog.ShowError(err, v.window)
		return
	}
	dialog.ShowInformation("Export", "Saved "+path, v.window)
}
