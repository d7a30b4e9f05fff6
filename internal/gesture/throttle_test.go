package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCooldown_Window(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewCooldown(time.Second)

	assert.True(t, c.Allow(start), "first gesture always allowed")
	c.Accept(start)

	assert.False(t, c.Allow(start.Add(200*time.Millisecond)))
	assert.False(t, c.Allow(start.Add(time.Second)), "window is inclusive")
	assert.True(t, c.Allow(start.Add(time.Second+time.Millisecond)))

	c.Reset()
	assert.True(t, c.Allow(start))
}

func TestCooldown_SetWindow(t *testing.T) {
	c := NewCooldown(-time.Second)
	assert.Equal(t, time.Duration(0), c.Window())
	c.SetWindow(1500 * time.Millisecond)
	assert.Equal(t, 1500*time.Millisecond, c.Window())
	c.SetWindow(-1)
	assert.Equal(t, 1500*time.Millisecond, c.Window())
}

func TestSampler_EverySecond(t *testing.T) {
	s := NewSampler(2)

	var taken []bool
	for i := 0; i < 6; i++ {
		taken = append(taken, s.Take())
	}
	assert.Equal(t, []bool{false, true, false, true, false, true}, taken)
	assert.Equal(t, uint64(6), s.Count())

	s.Reset()
	assert.Equal(t, uint64(0), s.Count())
	assert.False(t, s.Take())
}

func TestSampler_OneDisablesThinning(t *testing.T) {
	s := NewSampler(0)
	assert.Equal(t, 1, s.Every())
	for i := 0; i < 3; i++ {
		assert.True(t, s.Take())
	}
}
