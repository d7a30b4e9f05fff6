package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"GestureBoard/internal/state"
)

func TestMapper_Map(t *testing.T) {
	vp := Viewport{Width: 1280, Height: 960}
	tests := []struct {
		name   string
		mirror bool
		ev     Event
		want   state.Point
		ok     bool
	}{
		{
			name: "scales into viewport",
			ev:   Event{X: 50, Y: 240, SourceWidth: 640, SourceHeight: 480},
			want: state.Point{X: 100, Y: 480},
			ok:   true,
		},
		{
			name:   "mirrored",
			mirror: true,
			ev:     Event{X: 50, Y: 240, SourceWidth: 640, SourceHeight: 480},
			want:   state.Point{X: 1180, Y: 480},
			ok:     true,
		},
		{
			name: "clamps out of range",
			ev:   Event{X: -10, Y: 9000, SourceWidth: 640, SourceHeight: 480},
			want: state.Point{X: 0, Y: 960},
			ok:   true,
		},
		{
			name: "zero source width",
			ev:   Event{X: 50, Y: 240, SourceWidth: 0, SourceHeight: 480},
		},
		{
			name: "zero source height",
			ev:   Event{X: 50, Y: 240, SourceWidth: 640},
		},
		{
			name: "negative source",
			ev:   Event{X: 50, Y: 240, SourceWidth: -640, SourceHeight: 480},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Mapper{Mirror: tc.mirror}.Map(tc.ev, vp)
			assert.Equal(t, tc.ok, ok)
			assert.InDelta(t, tc.want.X, got.X, 1e-9)
			assert.InDelta(t, tc.want.Y, got.Y, 1e-9)
		})
	}
}

func TestMapper_EmptyViewport(t *testing.T) {
	_, ok := Mapper{}.Map(Event{X: 1, Y: 1, SourceWidth: 2, SourceHeight: 2}, Viewport{})
	assert.False(t, ok)
}

func TestMapper_Idempotent(t *testing.T) {
	m := Mapper{Mirror: true}
	vp := Viewport{Width: 1920, Height: 1080}
	ev := Event{X: 321.5, Y: 17.25, SourceWidth: 640, SourceHeight: 480}

	first, ok := m.Map(ev, vp)
	assert.True(t, ok)
	for i := 0; i < 5; i++ {
		again, ok := m.Map(ev, vp)
		assert.True(t, ok)
		assert.Equal(t, first, again)
	}
}
