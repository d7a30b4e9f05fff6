package net

import (
	"context"
	"log"
	"time"
)

// Supervisor keeps a viewer subscribed to the relay. The core never redials
// on its own; this is the optional outer loop that does.
type Supervisor struct {
	// Resolve returns the relay URL for each attempt.
	Resolve  func(ctx context.Context) (string, error)
	ViewerID string
	Handler  Handler
	Schedule func(func())
	// Interval between attempts. Zero or less means a single attempt.
	Interval time.Duration
	// OnClient, if set, sees every fresh client so the owner can close it.
	OnClient func(*Client)
}

// Run dials, listens and redials until ctx is done or a single attempt ends.
func (s *Supervisor) Run(ctx context.Context) error {
	for {
		err := s.once(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if s.Interval <= 0 {
			return err
		}
		if err != nil {
			log.Printf("[WS] connection lost: %v; retrying in %s", err, s.Interval)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.Interval):
		}
	}
}

func (s *Supervisor) once(ctx context.Context) error {
	relay, err := s.Resolve(ctx)
	if err != nil {
		return err
	}
	c, err := Dial(ctx, relay, s.ViewerID, s.Schedule)
	if err != nil {
		return err
	}
	if s.OnClient != nil {
		s.OnClient(c)
	}
	stop := context.AfterFunc(ctx, func() { c.Close() })
	defer stop()
	return c.Listen(s.Handler)
}

// StaticRelay resolves to a fixed URL.
func StaticRelay(url string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) { return url, nil }
}
