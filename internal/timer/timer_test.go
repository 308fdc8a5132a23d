package timer

import (
	"testing"
	"time"
)

// fakeClock lets tests control the wall clock the controller
// measures against.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time {
	return f.t
}

func (f *fakeClock) advance(d time.Duration) {
	f.t = f.t.Add(d)
}

func newTestController() (*Controller, *fakeClock) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	c := NewController()
	c.now = clock.now
	c.lastTick = clock.t
	return c, clock
}

func TestTick(t *testing.T) {
	c, clock := newTestController()
	c.SetDelay(10)
	c.SetSound(5)

	// no time elapsed, no decrement
	c.Tick()
	if c.Delay() != 10 || c.Sound() != 5 {
		t.Errorf("expected no decrement, got delay %d sound %d", c.Delay(), c.Sound())
	}

	// one 60 Hz period elapses
	clock.advance(tickInterval)
	c.Tick()
	if c.Delay() != 9 || c.Sound() != 4 {
		t.Errorf("expected one decrement, got delay %d sound %d", c.Delay(), c.Sound())
	}
}

func TestTick_IndependentOfCycleRate(t *testing.T) {
	c, clock := newTestController()
	c.SetDelay(10)

	// many cycles within one period decrement only once
	clock.advance(tickInterval)
	for i := 0; i < 100; i++ {
		c.Tick()
	}
	if c.Delay() != 9 {
		t.Errorf("expected delay 9, got %d", c.Delay())
	}
}

func TestTick_FloorsAtZero(t *testing.T) {
	c, clock := newTestController()
	c.SetSound(1)

	for i := 0; i < 5; i++ {
		clock.advance(tickInterval)
		c.Tick()
	}
	if c.Sound() != 0 {
		t.Errorf("expected sound timer floored at 0, got %d", c.Sound())
	}
	if c.Delay() != 0 {
		t.Errorf("expected delay timer still 0, got %d", c.Delay())
	}
}
