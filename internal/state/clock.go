package state

import (
	"sync/atomic"
	"time"
)

// Clock is the time source of the gesture cooldown.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }

// ManualClock only moves when told to. Used by tests and replays.
type ManualClock struct {
	nanos atomic.Int64
}

func NewManualClock(start time.Time) *ManualClock {
	c := &ManualClock{}
	c.nanos.Store(start.UnixNano())
	return c
}

func (c *ManualClock) Now() time.Time {
	return time.Unix(0, c.nanos.Load())
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.nanos.Add(int64(d))
}
