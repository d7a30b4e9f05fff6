package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GestureBoard/internal/board"
	"GestureBoard/internal/gesture"
	"GestureBoard/internal/state"
)

func newBoard(t *testing.T) *board.Board {
	t.Helper()
	b, err := board.New(board.Options{
		ViewerID: "2",
		Viewport: gesture.Viewport{Width: 200, Height: 100},
		Tunables: gesture.Tunables{Subsample: 1, BreakThreshold: 500},
		Clock:    state.NewManualClock(time.Unix(1700000000, 0)),
	})
	require.NoError(t, err)
	return b
}

func TestFitRect(t *testing.T) {
	pos, size := fitRect(200, 100, fyne.NewSize(400, 400))
	assert.Equal(t, fyne.NewPos(0, 100), pos)
	assert.Equal(t, fyne.NewSize(400, 200), size)

	pos, size = fitRect(100, 200, fyne.NewSize(400, 200))
	assert.Equal(t, fyne.NewPos(150, 0), pos)
	assert.Equal(t, fyne.NewSize(100, 200), size)

	pos, size = fitRect(0, 0, fyne.NewSize(10, 10))
	assert.Equal(t, fyne.NewPos(0, 0), pos)
	assert.Equal(t, fyne.NewSize(10, 10), size)
}

func TestStatusText(t *testing.T) {
	b := newBoard(t)
	assert.True(t, strings.HasPrefix(statusText(b), "○ Offline (2)"))

	b.Connected()
	b.DocumentLoaded(4)
	b.Perform(gesture.KindToggleTextModal)
	b.SetMode(state.ModeErase)
	b.HandleFrame([]byte("not json"))

	s := statusText(b)
	assert.Contains(t, s, "● Connected as 2")
	assert.Contains(t, s, "Page 1/4")
	assert.Contains(t, s, "erase")
	assert.Contains(t, s, "text prompt")
	assert.NotContains(t, s, "image prompt")
	assert.Contains(t, s, "frames 1, dropped 1")
}

func TestExport(t *testing.T) {
	b := newBoard(t)
	b.Connected()
	b.DocumentLoaded(2)
	b.HandleFrame([]byte(`{"to":"2","from":"1","xval":10,"yval":10,"xdim":200,"ydim":100,"gestval":"draw"}`))
	b.HandleFrame([]byte(`{"to":"2","from":"1","xval":150,"yval":80,"xdim":200,"ydim":100,"gestval":"draw"}`))
	b.Perform(gesture.KindPageNext)

	pages := SessionPages(b)
	require.Len(t, pages, 2)
	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, 2, pages[1].Number)

	dir := filepath.Join(t.TempDir(), "out")
	now := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)

	pdf, err := ExportSession(b, dir, now)
	require.NoError(t, err)
	assert.Equal(t, "gestureboard-20240309-140506.pdf", filepath.Base(pdf))
	data, err := os.ReadFile(pdf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	png, err := ExportPage(b, dir, now)
	require.NoError(t, err)
	assert.Equal(t, "gestureboard-p2-20240309-140506.png", filepath.Base(png))
}
