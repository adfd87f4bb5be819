package timing

import (
	"sync"
	"time"
)

// Clock is the time source the keyer sleeps on.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Sleep blocks for d. Non-positive durations return immediately.
	Sleep(d time.Duration)
}

// NewRealClock returns a clock backed by the wall clock.
func NewRealClock() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// VirtualClock advances only when slept on, so a whole keying session can be
// simulated instantly (headless mode, tests).
type VirtualClock struct {
	mu    sync.Mutex
	start time.Time
	now   time.Time
}

// NewVirtualClock creates a virtual clock starting at the given instant.
func NewVirtualClock(start time.Time) *VirtualClock {
	return &VirtualClock{start: start, now: start}
}

func (v *VirtualClock) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

func (v *VirtualClock) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.now = v.now.Add(d)
}

// Elapsed returns the virtual time passed since the clock was created.
func (v *VirtualClock) Elapsed() time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now.Sub(v.start)
}
