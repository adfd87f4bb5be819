// Package gpio runs the keyer on Linux GPIO pins through periph.io.
//
// Paddle contacts are wired between the input pins and ground with the
// internal pull-ups enabled, so a closed contact reads low.
package gpio

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/valerio/go-keyer/keyer/backend"
	"github.com/valerio/go-keyer/keyer/display"
	"github.com/valerio/go-keyer/keyer/input/action"
	"github.com/valerio/go-keyer/keyer/input/event"
	"github.com/valerio/go-keyer/keyer/output"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// ErrPinRequired is returned when a paddle pin is not configured.
var ErrPinRequired = errors.New("dit and dah pins are required")

// Pins names the GPIO lines, as understood by gpioreg.ByName ("GPIO17",
// "17", ...). Empty output names leave that output unwired.
type Pins struct {
	Dit    string
	Dah    string
	LED    string
	Buzzer string
	Tone   string

	LEDPolarity    output.Polarity
	BuzzerPolarity output.Polarity
}

// DefaultPins matches the usual Raspberry Pi wiring: an active-low LED
// sinking into the pin and an active-high buzzer driver.
func DefaultPins() Pins {
	return Pins{
		Dit:            "GPIO17",
		Dah:            "GPIO27",
		LED:            "GPIO22",
		Buzzer:         "GPIO23",
		LEDPolarity:    output.ActiveLow,
		BuzzerPolarity: output.ActiveHigh,
	}
}

// Backend samples two paddle pins and drives the output pins.
type Backend struct {
	pins   Pins
	lookup func(name string) gpio.PinIO

	dit, dah gpio.PinIO
	led      gpio.PinIO
	buzzer   gpio.PinIO
	tone     gpio.PinIO

	held backend.Contacts
}

// Option configures a Backend.
type Option func(*Backend)

// WithLookup resolves pin names with fn instead of the host registry.
// host.Init is skipped when a lookup is provided.
func WithLookup(fn func(name string) gpio.PinIO) Option {
	return func(b *Backend) { b.lookup = fn }
}

// New creates a GPIO backend for the given pins.
func New(pins Pins, opts ...Option) *Backend {
	b := &Backend{pins: pins}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Init loads the host drivers and configures every pin.
func (b *Backend) Init(config backend.BackendConfig) error {
	if b.pins.Dit == "" || b.pins.Dah == "" {
		return ErrPinRequired
	}

	if b.lookup == nil {
		if _, err := host.Init(); err != nil {
			return fmt.Errorf("failed to initialize GPIO host: %w", err)
		}
		b.lookup = gpioreg.ByName
	}

	var err error
	if b.dit, err = b.input(b.pins.Dit); err != nil {
		return err
	}
	if b.dah, err = b.input(b.pins.Dah); err != nil {
		return err
	}
	if b.led, err = b.output(b.pins.LED); err != nil {
		return err
	}
	if b.buzzer, err = b.output(b.pins.Buzzer); err != nil {
		return err
	}
	if b.tone, err = b.output(b.pins.Tone); err != nil {
		return err
	}

	slog.Info("GPIO backend initialized",
		"dit", b.pins.Dit, "dah", b.pins.Dah,
		"led", b.pins.LED, "buzzer", b.pins.Buzzer, "tone", b.pins.Tone)
	return nil
}

func (b *Backend) resolve(name string) (gpio.PinIO, error) {
	p := b.lookup(name)
	if p == nil {
		return nil, fmt.Errorf("unknown GPIO pin %q", name)
	}
	return p, nil
}

func (b *Backend) input(name string) (gpio.PinIO, error) {
	p, err := b.resolve(name)
	if err != nil {
		return nil, err
	}
	if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("failed to configure input %s: %w", name, err)
	}
	return p, nil
}

func (b *Backend) output(name string) (gpio.PinIO, error) {
	if name == "" {
		return nil, nil
	}
	p, err := b.resolve(name)
	if err != nil {
		return nil, err
	}
	if err := p.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("failed to configure output %s: %w", name, err)
	}
	return p, nil
}

// Poll reads both paddle pins. A closed contact pulls its pin low.
func (b *Backend) Poll() (backend.Contacts, []backend.InputEvent, error) {
	contacts := backend.Contacts{
		Dit: b.dit.Read() == gpio.Low,
		Dah: b.dah.Read() == gpio.Low,
	}

	var events []backend.InputEvent
	events = appendEdge(events, action.PaddleDit, b.held.Dit, contacts.Dit)
	events = appendEdge(events, action.PaddleDah, b.held.Dah, contacts.Dah)
	b.held = contacts

	return contacts, events, nil
}

func appendEdge(events []backend.InputEvent, act action.Action, was, is bool) []backend.InputEvent {
	switch {
	case is && !was:
		return append(events, backend.InputEvent{Action: act, Type: event.Press})
	case !is && was:
		return append(events, backend.InputEvent{Action: act, Type: event.Release})
	}
	return events
}

// Outputs returns the wired output pins; unwired ones are left nil.
func (b *Backend) Outputs() output.Outputs {
	var outs output.Outputs
	if b.led != nil {
		outs.LED = output.Indicator{Line: pinLine{b.led}, Polarity: b.pins.LEDPolarity}
	}
	if b.buzzer != nil {
		outs.Buzzer = output.Indicator{Line: pinLine{b.buzzer}, Polarity: b.pins.BuzzerPolarity}
	}
	if b.tone != nil {
		outs.Tone = pwmTone{b.tone}
	}
	return outs
}

// Cleanup drives the outputs to key-up and releases the pins.
func (b *Backend) Cleanup() error {
	slog.Info("Cleaning up GPIO backend")

	outs := b.Outputs()
	outs.LED.Key(false)
	outs.Buzzer.Key(false)
	if outs.Tone != nil {
		outs.Tone.Off()
	}

	var errs []error
	for _, p := range []gpio.PinIO{b.dit, b.dah, b.led, b.buzzer, b.tone} {
		if p == nil {
			continue
		}
		if err := p.Halt(); err != nil {
			errs = append(errs, fmt.Errorf("failed to halt %s: %w", p.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// pinLine adapts a periph pin to output.Line. Write faults are logged, the
// transmitter has no way to act on them.
type pinLine struct {
	pin gpio.PinIO
}

func (l pinLine) Set(high bool) {
	level := gpio.Low
	if high {
		level = gpio.High
	}
	if err := l.pin.Out(level); err != nil {
		slog.Error("GPIO write failed", "pin", l.pin.Name(), "error", err)
	}
}

// pwmTone drives a passive buzzer at the sidetone pitch.
type pwmTone struct {
	pin gpio.PinIO
}

func (t pwmTone) SetDutyPercent(percent uint8) {
	if percent > 100 {
		percent = 100
	}
	duty := gpio.DutyMax * gpio.Duty(percent) / 100
	if err := t.pin.PWM(duty, display.SidetoneHz*physic.Hertz); err != nil {
		slog.Error("GPIO PWM failed", "pin", t.pin.Name(), "error", err)
	}
}

func (t pwmTone) Off() {
	if err := t.pin.Out(gpio.Low); err != nil {
		slog.Error("GPIO write failed", "pin", t.pin.Name(), "error", err)
	}
}
