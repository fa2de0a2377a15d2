package testutil

import (
	"context"
	"testing"
	"time"
)

// GatedClock is a game.Clock whose waits end only when Tick is called or
// the context is cancelled.
type GatedClock struct {
	ticks   chan struct{}
	waiting chan time.Duration
}

// NewGatedClock creates a GatedClock.
func NewGatedClock() *GatedClock {
	return &GatedClock{
		ticks:   make(chan struct{}),
		waiting: make(chan time.Duration, 1024),
	}
}

// Wait implements game.Clock.
func (c *GatedClock) Wait(ctx context.Context, d time.Duration) error {
	select {
	case c.waiting <- d:
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ticks:
		return nil
	}
}

// AwaitWait blocks until a Wait call has started, failing the test after
// timeout. It returns the requested duration.
func (c *GatedClock) AwaitWait(t *testing.T, timeout time.Duration) time.Duration {
	t.Helper()
	select {
	case d := <-c.waiting:
		return d
	case <-time.After(timeout):
		t.Fatalf("timed out after %v waiting for the clock to be used", timeout)
		return 0
	}
}

// Tick releases one pending Wait, blocking until a waiter takes it.
func (c *GatedClock) Tick() {
	c.ticks <- struct{}{}
}
