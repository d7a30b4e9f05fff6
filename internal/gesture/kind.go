package gesture

// Kind is the interpreted gesture carried by a frame.
type Kind int

const (
	KindNone Kind = iota
	KindDraw
	KindPoint
	KindPageNext
	KindPagePrev
	KindToggleImageModal
	KindToggleTextModal
	KindClearCanvas
)

// Wire names sent by the hand-tracking client.
const (
	WireDraw       = "draw"
	WireThumbUp    = "Thumb_Up"
	WireThumbDown  = "Thumb_Down"
	WireILoveYou   = "ILoveYou"
	WireOpenPalm   = "Open_Palm"
	WireClosedFist = "Closed_Fist"
)

var wireKinds = map[string]Kind{
	WireDraw:       KindDraw,
	WireThumbUp:    KindPageNext,
	WireThumbDown:  KindPagePrev,
	WireILoveYou:   KindToggleImageModal,
	WireOpenPalm:   KindToggleTextModal,
	WireClosedFist: KindClearCanvas,
}

// ParseKind maps a wire gesture name to a Kind. Names outside the recognised
// set drive the laser pointer.
func ParseKind(gestval string) Kind {
	if k, ok := wireKinds[gestval]; ok {
		return k
	}
	return KindPoint
}

// Discrete reports whether k is a one-shot command subject to the cooldown.
func (k Kind) Discrete() bool {
	switch k {
	case KindPageNext, KindPagePrev, KindToggleImageModal, KindToggleTextModal, KindClearCanvas:
		return true
	}
	return false
}

// Continuous reports whether k is streamed every frame while held.
func (k Kind) Continuous() bool {
	return k == KindDraw || k == KindPoint
}

func (k Kind) String() string {
	switch k {
	case KindDraw:
		return "draw"
	case KindPoint:
		return "point"
	case KindPageNext:
		return "page-next"
	case KindPagePrev:
		return "page-prev"
	case KindToggleImageModal:
		return "toggle-image-modal"
	case KindToggleTextModal:
		return "toggle-text-modal"
	case KindClearCanvas:
		return "clear-canvas"
	}
	return "none"
}
