package timing

import (
	"time"

	"golang.org/x/exp/constraints"
)

// Standard Morse timing: the word "PARIS" is 50 units long, so one unit is
// 60s / (50 * wpm) = 1200ms / wpm.
const (
	unitsPerMinute = 1200 * time.Millisecond

	// DefaultWPM matches the firmware build.
	DefaultWPM = 15

	// idleDivisor sets how often paddles are resampled while nothing is keyed.
	idleDivisor = 10
)

// Unit returns the length of one dit for the given words-per-minute rate.
// Rates below 1 are treated as 1.
func Unit[T constraints.Integer](wpm T) time.Duration {
	if wpm < 1 {
		wpm = 1
	}
	return unitsPerMinute / time.Duration(wpm)
}

// IdleSlice is how long the polling loop waits before resampling idle paddles.
func IdleSlice(unit time.Duration) time.Duration {
	return unit / idleDivisor
}

// WPM converts a unit length back to a words-per-minute rate.
func WPM(unit time.Duration) float64 {
	if unit <= 0 {
		return 0
	}
	return float64(unitsPerMinute) / float64(unit)
}
