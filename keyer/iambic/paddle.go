package iambic

import (
	"fmt"
	"strings"
)

// PaddleInput classifies the two paddle contacts sampled in one polling cycle.
// Nothing pressed is not a PaddleInput; see FromContacts.
type PaddleInput int

const (
	DitOnly PaddleInput = iota
	DahOnly
	Both
)

// FromContacts classifies a pair of contact readings. ok is false when
// neither contact is closed, since that carries no paddle information.
func FromContacts(dit, dah bool) (input PaddleInput, ok bool) {
	switch {
	case dit && dah:
		return Both, true
	case dit:
		return DitOnly, true
	case dah:
		return DahOnly, true
	default:
		return 0, false
	}
}

func (p PaddleInput) String() string {
	switch p {
	case DitOnly:
		return "dit-only"
	case DahOnly:
		return "dah-only"
	case Both:
		return "both"
	default:
		return fmt.Sprintf("PaddleInput(%d)", int(p))
	}
}

// IambicMode selects the squeeze-release behaviour of the keyer.
type IambicMode int

const (
	// ModeB appends one opposite element after a squeeze is released.
	// It is the zero value, matching the firmware default.
	ModeB IambicMode = iota
	// ModeA stops as soon as both paddles are released.
	ModeA
)

// ParseIambicMode accepts "a" or "b" in either case.
func ParseIambicMode(s string) (IambicMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a":
		return ModeA, nil
	case "b":
		return ModeB, nil
	default:
		return 0, fmt.Errorf("unknown iambic mode %q (want A or B)", s)
	}
}

func (m IambicMode) String() string {
	if m == ModeA {
		return "A"
	}
	return "B"
}

// PulseMode records how the current run of elements is being produced.
type PulseMode int

const (
	// Repeating means a single paddle is held.
	Repeating PulseMode = iota
	// Alternating means both paddles are squeezed.
	Alternating
)

func (m PulseMode) String() string {
	if m == Alternating {
		return "alternating"
	}
	return "repeating"
}

// PulseType tracks the one-shot residual element of Mode B.
type PulseType int

const (
	Normal PulseType = iota
	Residual
)

func (t PulseType) String() string {
	if t == Residual {
		return "residual"
	}
	return "normal"
}
