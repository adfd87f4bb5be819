package iambic

import "time"

// Pulse is a single keyed Morse element.
type Pulse int

const (
	Dit Pulse = iota
	Dah
)

// dahUnits is the length of a dah in timing units (ITU: 3 dits).
const dahUnits = 3

// Duration returns how long the key stays down for this element.
func (p Pulse) Duration(unit time.Duration) time.Duration {
	switch p {
	case Dah:
		return dahUnits * unit
	default:
		return unit
	}
}

// Toggle returns the opposite element.
func (p Pulse) Toggle() Pulse {
	if p == Dit {
		return Dah
	}
	return Dit
}

// Symbol returns the conventional written form of the element.
func (p Pulse) Symbol() rune {
	if p == Dah {
		return '-'
	}
	return '.'
}

func (p Pulse) String() string {
	if p == Dah {
		return "dah"
	}
	return "dit"
}
