package gesture

import "time"

// DefaultCooldown is the minimum gap between two accepted discrete gestures.
const DefaultCooldown = time.Second

// DefaultSubsample keeps every second continuous sample.
const DefaultSubsample = 2

// Cooldown debounces one-shot gestures so a held pose fires once.
type Cooldown struct {
	window time.Duration
	last   time.Time
}

func NewCooldown(window time.Duration) *Cooldown {
	if window < 0 {
		window = 0
	}
	return &Cooldown{window: window}
}

// Allow reports whether a discrete gesture at now may be accepted.
func (c *Cooldown) Allow(now time.Time) bool {
	return c.last.IsZero() || now.Sub(c.last) > c.window
}

// Accept stamps now as the time of the last accepted gesture.
func (c *Cooldown) Accept(now time.Time) {
	c.last = now
}

func (c *Cooldown) Reset() { c.last = time.Time{} }

func (c *Cooldown) Window() time.Duration { return c.window }

func (c *Cooldown) SetWindow(window time.Duration) {
	if window >= 0 {
		c.window = window
	}
}

// Sampler thins the continuous stream to one sample in every n. The counter
// runs since connection start across gesture kinds. It counts arrivals and
// never reads the clock; only the Cooldown is time based.
type Sampler struct {
	every int
	count uint64
}

func NewSampler(every int) *Sampler {
	if every < 1 {
		every = 1
	}
	return &Sampler{every: every}
}

// Take counts one sample and reports whether to act on it.
func (s *Sampler) Take() bool {
	s.count++
	return s.count%uint64(s.every) == 0
}

// Count is the number of continuous samples seen since the last reset.
func (s *Sampler) Count() uint64 { return s.count }

func (s *Sampler) Reset() { s.count = 0 }

func (s *Sampler) Every() int { return s.every }

func (s *Sampler) SetEvery(every int) {
	if every >= 1 {
		s.every = every
	}
}
