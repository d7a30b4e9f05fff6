// Package document is the page source for the board: an ordered set of page
// images (slides exported as PNG or JPEG) read from a directory.
package document

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"GestureBoard/internal/render"
)

// ErrNoPages is returned for a directory without page images.
var ErrNoPages = errors.New("no page images found")

// Deck is a loaded document.
type Deck struct {
	dir   string
	files []string

	// OnLoaded receives the page count once the deck is read.
	OnLoaded func(total int)
	// OnPageRendered receives the pixel size of each page as it is rendered.
	OnPageRendered func(width, height int)
}

var pageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

// Open lists the page images in dir. Pages are ordered by file name, with
// numeric runs compared by value so page10 follows page9.
func Open(dir string) (*Deck, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read document dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !pageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		files = append(files, e.Name())
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoPages)
	}
	sort.Slice(files, func(i, j int) bool { return naturalLess(files[i], files[j]) })
	return &Deck{dir: dir, files: files}, nil
}

// Load reports the page count to OnLoaded.
func (d *Deck) Load() int {
	if d.OnLoaded != nil {
		d.OnLoaded(len(d.files))
	}
	return len(d.files)
}

func (d *Deck) PageCount() int { return len(d.files) }

// Name returns the file name of page n (1-based).
func (d *Deck) Name(n int) string {
	if n < 1 || n > len(d.files) {
		return ""
	}
	return d.files[n-1]
}

// Page decodes page n (1-based).
func (d *Deck) Page(n int) (image.Image, error) {
	if n < 1 || n > len(d.files) {
		return nil, fmt.Errorf("page %d out of range 1..%d", n, len(d.files))
	}
	f, err := os.Open(filepath.Join(d.dir, d.files[n-1]))
	if err != nil {
		return nil, fmt.Errorf("open page %d: %w", n, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode page %d: %w", n, err)
	}
	return img, nil
}

// Render decodes page n and scales it to width, keeping its aspect ratio.
// OnPageRendered receives the final size.
func (d *Deck) Render(n, width int) (*image.RGBA, error) {
	src, err := d.Page(n)
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	if width <= 0 {
		width = b.Dx()
	}
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}
	out := render.Fit(src, width, height)
	if d.OnPageRendered != nil {
		d.OnPageRendered(width, height)
	}
	return out, nil
}

func naturalLess(a, b string) bool {
	for a != "" && b != "" {
		ca, cb := a[0], b[0]
		if isDigit(ca) && isDigit(cb) {
			na, ra := leadingDigits(a)
			nb, rb := leadingDigits(b)
			ta, tb := strings.TrimLeft(na, "0"), strings.TrimLeft(nb, "0")
			if len(ta) != len(tb) {
				return len(ta) < len(tb)
			}
			if ta != tb {
				return ta < tb
			}
			a, b = ra, rb
			continue
		}
		if ca != cb {
			return ca < cb
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func leadingDigits(s string) (string, string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}
