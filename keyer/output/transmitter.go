package output

import (
	"log/slog"
	"time"

	"github.com/valerio/go-keyer/keyer/iambic"
	"github.com/valerio/go-keyer/keyer/timing"
)

// DefaultToneDuty is the PWM duty used while keyed; low enough to keep a
// passive buzzer quiet on a desk.
const DefaultToneDuty uint8 = 2

// Transmitter keys one element at a time onto a set of outputs.
type Transmitter struct {
	outputs  Outputs
	clock    timing.Clock
	toneDuty uint8
	logger   *slog.Logger
}

type TransmitterOption func(*Transmitter)

// WithToneDuty sets the PWM duty cycle used while keyed.
func WithToneDuty(percent uint8) TransmitterOption {
	return func(t *Transmitter) { t.toneDuty = percent }
}

// WithLogger sets the logger used for the per-element trace.
func WithLogger(l *slog.Logger) TransmitterOption {
	return func(t *Transmitter) { t.logger = l }
}

// NewTransmitter creates a transmitter and drives all outputs to key-up.
func NewTransmitter(outputs Outputs, clock timing.Clock, opts ...TransmitterOption) *Transmitter {
	t := &Transmitter{
		outputs:  outputs,
		clock:    clock,
		toneDuty: DefaultToneDuty,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.keyUp()
	return t
}

// SendElement keys pulse for its duration, then holds key-up for one unit of
// inter-element space. It blocks the caller for the whole element and cannot
// be interrupted.
func (t *Transmitter) SendElement(pulse iambic.Pulse, unit time.Duration) {
	duration := pulse.Duration(unit)

	t.logger.Debug("Element", "pulse", pulse.String(), "duration_ms", duration.Milliseconds())

	t.keyDown()
	t.clock.Sleep(duration)

	t.keyUp()
	t.clock.Sleep(unit)
}

func (t *Transmitter) keyDown() {
	t.outputs.LED.Key(true)
	t.outputs.Buzzer.Key(true)
	if t.outputs.Tone != nil {
		t.outputs.Tone.SetDutyPercent(t.toneDuty)
	}
}

func (t *Transmitter) keyUp() {
	t.outputs.LED.Key(false)
	t.outputs.Buzzer.Key(false)
	if t.outputs.Tone != nil {
		t.outputs.Tone.Off()
	}
}
