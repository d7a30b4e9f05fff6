package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GestureBoard/internal/state"
)

func TestSegmenter_SmallStepsStayOnePath(t *testing.T) {
	c := &recordingCanvas{}
	s := NewSegmenter(50, c)

	// Steps grow but stay under the threshold.
	x := 0.0
	for step := 1.0; step < 50; step += 3 {
		x += step
		s.Add(state.Point{X: x, Y: 10})
	}

	require.Len(t, c.paths, 1)
	assert.Len(t, c.paths[0], 17)
}

func TestSegmenter_JumpStartsNewPath(t *testing.T) {
	c := &recordingCanvas{}
	s := NewSegmenter(DefaultBreakThreshold, c)

	assert.True(t, s.Add(state.Point{X: 100, Y: 100}))
	assert.False(t, s.Add(state.Point{X: 120, Y: 100}))
	assert.True(t, s.Add(state.Point{X: 500, Y: 500}))
	assert.False(t, s.Add(state.Point{X: 510, Y: 510}))

	require.Len(t, c.paths, 2)
	assert.Equal(t, []state.Point{{X: 100, Y: 100}, {X: 120, Y: 100}}, c.paths[0])
	assert.Equal(t, []state.Point{{X: 500, Y: 500}, {X: 510, Y: 510}}, c.paths[1])

	last, ok := s.LastPoint()
	assert.True(t, ok)
	assert.Equal(t, state.Point{X: 510, Y: 510}, last)
}

func TestSegmenter_ThresholdIsExclusive(t *testing.T) {
	c := &recordingCanvas{}
	s := NewSegmenter(50, c)
	s.Add(state.Point{X: 0, Y: 0})
	assert.False(t, s.Add(state.Point{X: 30, Y: 40}), "distance 50 extends")
	assert.True(t, s.Add(state.Point{X: 30, Y: 90.5}), "distance 50.5 breaks")
}

func TestSegmenter_Reset(t *testing.T) {
	c := &recordingCanvas{}
	s := NewSegmenter(50, c)
	s.Add(state.Point{X: 1, Y: 1})
	s.Reset()

	_, ok := s.LastPoint()
	assert.False(t, ok)
	assert.True(t, s.Add(state.Point{X: 2, Y: 2}))
	assert.Len(t, c.paths, 2)
}

func TestSegmenter_Threshold(t *testing.T) {
	s := NewSegmenter(0, &recordingCanvas{})
	assert.Equal(t, DefaultBreakThreshold, s.Threshold())
	s.SetThreshold(-1)
	assert.Equal(t, DefaultBreakThreshold, s.Threshold())
	s.SetThreshold(80)
	assert.Equal(t, 80.0, s.Threshold())
}
