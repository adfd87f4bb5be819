// Package iambic implements the paddle keyer state machine.
//
// A Keyer is fed one paddle classification per polling cycle and answers
// with the element to key next, if any. It performs no I/O and keeps all of
// its history in the struct, so a single owner drives it without locking.
package iambic

// Keyer decides which element to send for each polling cycle.
type Keyer struct {
	current    Pulse
	hasCurrent bool
	pulseType  PulseType
	pulseMode  PulseMode
	mode       IambicMode
}

// New creates an idle keyer. The mode cannot change afterwards.
func New(mode IambicMode) *Keyer {
	return &Keyer{
		pulseType: Normal,
		pulseMode: Repeating,
		mode:      mode,
	}
}

// Update advances the keyer by one polling cycle. pressed is false when no
// paddle contact is closed; input is ignored in that case. The returned
// pulse is only meaningful when ok is true.
//
// FromContacts can be passed straight through:
//
//	pulse, ok := k.Update(iambic.FromContacts(dit, dah))
func (k *Keyer) Update(input PaddleInput, pressed bool) (pulse Pulse, ok bool) {
	pulse, ok = k.next(input, pressed)
	k.current, k.hasCurrent = pulse, ok
	return pulse, ok
}

func (k *Keyer) next(input PaddleInput, pressed bool) (Pulse, bool) {
	if pressed {
		// a residual only survives until the next cycle
		k.pulseType = Normal

		switch input {
		case DitOnly:
			k.pulseMode = Repeating
			return Dit, true
		case DahOnly:
			k.pulseMode = Repeating
			return Dah, true
		case Both:
			k.pulseMode = Alternating
			if !k.hasCurrent {
				// a squeeze always opens with a dah
				return Dah, true
			}
			return k.current.Toggle(), true
		}
	}

	if !k.hasCurrent || k.mode != ModeB || k.pulseMode != Alternating {
		return 0, false
	}

	switch k.pulseType {
	case Normal:
		k.pulseType = Residual
		return k.current.Toggle(), true
	default:
		k.pulseType = Normal
		return 0, false
	}
}

// Reset returns the keyer to idle, keeping its iambic mode.
func (k *Keyer) Reset() {
	*k = Keyer{mode: k.mode}
}

// Mode returns the iambic mode fixed at construction.
func (k *Keyer) Mode() IambicMode { return k.mode }

// PulseMode returns whether the last run was produced by one paddle or a squeeze.
func (k *Keyer) PulseMode() PulseMode { return k.pulseMode }

// PulseType reports whether the last emitted element was the Mode B residual.
func (k *Keyer) PulseType() PulseType { return k.pulseType }

// Current returns the last element decided, or ok == false when idle.
func (k *Keyer) Current() (Pulse, bool) { return k.current, k.hasCurrent }
