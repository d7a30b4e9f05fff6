package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"GestureBoard/internal/board"
	"GestureBoard/internal/export"
)

const exportStamp = "20060102-150405"

// SessionPages converts the board's annotated pages for export.
func SessionPages(b *board.Board) []export.Page {
	pages := b.Pages()
	out := make([]export.Page, 0, len(pages))
	for _, p := range pages {
		out = append(out, export.Page{Number: p.Page, Image: p.Image})
	}
	return out
}

// ExportSession writes every annotated page of the session to one PDF in dir.
func ExportSession(b *board.Board, dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("gestureboard-%s.pdf", now.Format(exportStamp)))
	if err := export.SavePDF(path, SessionPages(b)); err != nil {
		return "", err
	}
	return path, nil
}

// ExportPage writes the current page, annotations included, as PNG in dir.
func ExportPage(b *board.Board, dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("gestureboard-p%d-%s.png", b.Snapshot().Page, now.Format(exportStamp)))
	if err := export.SavePNG(path, b.Composite()); err != nil {
		return "", err
	}
	return path, nil
}
