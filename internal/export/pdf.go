// Package export writes the annotated board out as PNG or multi-page PDF.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"

	"github.com/jung-kurt/gofpdf"
)

// Page is one composited page to export.
type Page struct {
	Number int
	Image  image.Image
}

// PNG encodes a single composited surface.
func PNG(w io.Writer, img image.Image) error {
	if img == nil {
		return errors.New("export: nothing to encode")
	}
	return png.Encode(w, img)
}

// SavePNG writes a single composited surface to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := PNG(f, img); err != nil {
		f.Close()
		return err
	}
	log.Printf("[EXPORT] wrote %s", path)
	return f.Close()
}

// PDF writes one PDF page per entry, each sized to its image at 72 dpi.
func PDF(w io.Writer, pages []Page) error {
	if len(pages) == 0 {
		return errors.New("export: no pages")
	}
	p := gofpdf.NewCustom(&gofpdf.InitType{OrientationStr: "P", UnitStr: "pt", Size: sizeOf(pages[0].Image)})
	p.SetAutoPageBreak(false, 0)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}

	for i, pg := range pages {
		var buf bytes.Buffer
		if err := png.Encode(&buf, pg.Image); err != nil {
			return fmt.Errorf("encode page %d: %w", pg.Number, err)
		}
		name := fmt.Sprintf("page-%d-%d", i, pg.Number)
		size := sizeOf(pg.Image)
		p.AddPageFormat("P", size)
		p.RegisterImageOptionsReader(name, opts, &buf)
		p.ImageOptions(name, 0, 0, size.Wd, size.Ht, false, opts, 0, "")
		if err := p.Error(); err != nil {
			return fmt.Errorf("pdf page %d: %w", pg.Number, err)
		}
	}
	return p.Output(w)
}

// SavePDF writes pages to path.
func SavePDF(path string, pages []Page) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := PDF(f, pages); err != nil {
		f.Close()
		return err
	}
	log.Printf("[EXPORT] wrote %s (%d pages)", path, len(pages))
	return f.Close()
}

func sizeOf(img image.Image) gofpdf.SizeType {
	b := img.Bounds()
	return gofpdf.SizeType{Wd: float64(b.Dx()), Ht: float64(b.Dy())}
}
