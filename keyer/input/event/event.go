package event

// Type represents the type of input event
type Type int

const (
	Press   Type = iota // Contact closed or control pressed (controls are debounced)
	Release             // Contact opened
	Hold                // Contact still closed this poll (never debounced)
)

func (t Type) String() string {
	switch t {
	case Press:
		return "press"
	case Release:
		return "release"
	case Hold:
		return "hold"
	default:
		return "unknown"
	}
}
