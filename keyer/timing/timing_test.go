package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUnit(t *testing.T) {
	tests := []struct {
		wpm      int
		expected time.Duration
	}{
		{wpm: 5, expected: 240 * time.Millisecond},
		{wpm: 12, expected: 100 * time.Millisecond},
		{wpm: 15, expected: 80 * time.Millisecond},
		{wpm: 20, expected: 60 * time.Millisecond},
		{wpm: 40, expected: 30 * time.Millisecond},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Unit(tt.wpm), "%d wpm", tt.wpm)
	}
}

func TestUnit_IntegerTypes(t *testing.T) {
	assert.Equal(t, 80*time.Millisecond, Unit(uint8(15)))
	assert.Equal(t, 80*time.Millisecond, Unit(int64(15)))
	assert.Equal(t, 80*time.Millisecond, Unit(uint(15)))
}

func TestUnit_ClampsNonPositive(t *testing.T) {
	assert.Equal(t, 1200*time.Millisecond, Unit(0))
	assert.Equal(t, 1200*time.Millisecond, Unit(-3))
}

func TestIdleSlice(t *testing.T) {
	assert.Equal(t, 8*time.Millisecond, IdleSlice(Unit(DefaultWPM)))
	assert.Equal(t, 24*time.Millisecond, IdleSlice(240*time.Millisecond))
}

func TestWPM(t *testing.T) {
	assert.InDelta(t, 15.0, WPM(Unit(15)), 1e-9)
	assert.InDelta(t, 7.0, WPM(Unit(7)), 1e-6)
	assert.Zero(t, WPM(0))
}

func TestVirtualClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewVirtualClock(start)

	assert.Equal(t, start, clock.Now())

	clock.Sleep(80 * time.Millisecond)
	clock.Sleep(240 * time.Millisecond)
	clock.Sleep(0)
	clock.Sleep(-time.Second)

	assert.Equal(t, 320*time.Millisecond, clock.Elapsed())
	assert.Equal(t, start.Add(320*time.Millisecond), clock.Now())
}

func TestRealClock(t *testing.T) {
	clock := NewRealClock()

	before := clock.Now()
	clock.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, clock.Now().Sub(before), 5*time.Millisecond)

	// non-positive sleeps return immediately
	clock.Sleep(-time.Hour)
}

func TestVirtualClockImplementsClock(t *testing.T) {
	var _ Clock = (*VirtualClock)(nil)
}
