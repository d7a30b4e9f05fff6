package ui

import (
	"fmt"
	"strings"

	"GestureBoard/internal/board"
	"GestureBoard/internal/state"
)

// statusText renders the status bar line.
func statusText(b *board.Board) string {
	var sb strings.Builder
	if b.IsConnected() {
		fmt.Fprintf(&sb, "● Connected as %s", b.ViewerID())
	} else {
		fmt.Fprintf(&sb, "○ Offline (%s)", b.ViewerID())
	}
	snap := b.Snapshot()
	if snap.Total > 0 {
		fmt.Fprintf(&sb, "  |  Page %d/%d", snap.Page, snap.Total)
	}
	fmt.Fprintf(&sb, "  |  %s", snap.Mode)
	if snap.Overlay.Has(state.OverlayImage) {
		sb.WriteString("  |  image prompt")
	}
	if snap.Overlay.Has(state.OverlayText) {
		sb.WriteString("  |  text prompt")
	}
	st := b.Stats()
	fmt.Fprintf(&sb, "  |  frames %d, dropped %d", st.Frames, st.Malformed+st.Unmappable)
	return sb.String()
}
