package document

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, dir, name string, w, h int, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestOpen_OrdersPagesNaturally(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"slide10.png", "slide2.png", "slide1.png", "notes.txt"} {
		if filepath.Ext(name) == ".png" {
			writePNG(t, dir, name, 4, 3, color.White)
		} else {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
		}
	}

	d, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, d.PageCount())
	assert.Equal(t, "slide1.png", d.Name(1))
	assert.Equal(t, "slide2.png", d.Name(2))
	assert.Equal(t, "slide10.png", d.Name(3))
	assert.Empty(t, d.Name(4))

	var loaded int
	d.OnLoaded = func(n int) { loaded = n }
	d.Load()
	assert.Equal(t, 3, loaded)
}

func TestOpen_Empty(t *testing.T) {
	_, err := Open(t.TempDir())
	assert.ErrorIs(t, err, ErrNoPages)

	_, err = Open(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestRender_KeepsAspect(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "p1.png", 40, 30, color.RGBA{R: 255, A: 255})

	d, err := Open(dir)
	require.NoError(t, err)

	var w, h int
	d.OnPageRendered = func(pw, ph int) { w, h = pw, ph }

	img, err := d.Render(1, 800)
	require.NoError(t, err)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	assert.Equal(t, image.Rect(0, 0, 800, 600), img.Bounds())
	px := img.RGBAAt(400, 300)
	assert.InDelta(t, 255, int(px.R), 2)
	assert.InDelta(t, 0, int(px.G), 2)
	assert.InDelta(t, 255, int(px.A), 2)

	_, err = d.Render(2, 800)
	assert.Error(t, err)
}

func TestNaturalLess(t *testing.T) {
	assert.True(t, naturalLess("a2", "a10"))
	assert.False(t, naturalLess("a10", "a2"))
	assert.True(t, naturalLess("a02", "a3"))
	assert.True(t, naturalLess("page", "page1"))
	assert.True(t, naturalLess("a1b", "a1c"))
}
