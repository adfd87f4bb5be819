// Package output drives the keyed outputs: indicator LED, buzzer and tone.
package output

// Line is a single digital output pin.
type Line interface {
	// Set drives the pin high or low.
	Set(high bool)
}

// Tone is a PWM channel feeding a passive buzzer.
type Tone interface {
	// SetDutyPercent sets the duty cycle, 0 to 100.
	SetDutyPercent(percent uint8)

	// Off stops the channel completely.
	Off()
}

// Polarity says which pin level means key-down.
type Polarity int

const (
	ActiveHigh Polarity = iota
	ActiveLow
)

func (p Polarity) String() string {
	if p == ActiveLow {
		return "active-low"
	}
	return "active-high"
}

// Level returns the pin level for the given key state.
func (p Polarity) Level(keyed bool) bool {
	if p == ActiveLow {
		return !keyed
	}
	return keyed
}

// Indicator is a digital output with its polarity.
type Indicator struct {
	Line     Line
	Polarity Polarity
}

// Key drives the indicator to the key-down or key-up state. A nil line is ignored.
func (i Indicator) Key(down bool) {
	if i.Line == nil {
		return
	}
	i.Line.Set(i.Polarity.Level(down))
}

// Outputs is everything a keyed element drives. Any field may be left unset.
type Outputs struct {
	LED    Indicator
	Buzzer Indicator
	Tone   Tone
}

// LineFunc adapts a plain function to a Line.
type LineFunc func(high bool)

func (f LineFunc) Set(high bool) { f(high) }
