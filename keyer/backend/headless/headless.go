package headless

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/valerio/go-keyer/keyer/backend"
	"github.com/valerio/go-keyer/keyer/input/action"
	"github.com/valerio/go-keyer/keyer/input/event"
	"github.com/valerio/go-keyer/keyer/output"
	"github.com/valerio/go-keyer/keyer/timing"
)

// Backend implements the Backend interface for automated testing and batch processing.
// It replays a paddle script and records what was keyed.
type Backend struct {
	config backend.BackendConfig
	script []backend.Contacts
	cycle  int
	clock  timing.Clock

	led    *output.Recorder
	buzzer *output.Recorder
	tone   *output.Recorder
}

func New(script []backend.Contacts, clock timing.Clock) *Backend {
	return &Backend{
		script: script,
		clock:  clock,
	}
}

func (h *Backend) Init(config backend.BackendConfig) error {
	if h.clock == nil {
		return fmt.Errorf("headless backend needs a clock")
	}
	h.config = config
	h.cycle = 0

	// the LED idles high (active-low), buzzer and tone idle low
	h.led = output.NewRecorder(h.clock, true)
	h.buzzer = output.NewRecorder(h.clock, false)
	h.tone = output.NewRecorder(h.clock, false)

	slog.Info("Running headless mode", "cycles", len(h.script), "wpm", config.WPM, "mode", config.Mode)
	return nil
}

// Poll returns the next scripted sample, and a quit event once the script is exhausted.
func (h *Backend) Poll() (backend.Contacts, []backend.InputEvent, error) {
	if h.cycle >= len(h.script) {
		slog.Info("Headless script completed", "cycles", h.cycle)
		return backend.Contacts{}, []backend.InputEvent{{Action: action.KeyerQuit, Type: event.Press}}, nil
	}

	contacts := h.script[h.cycle]
	h.cycle++

	if h.cycle%100 == 0 {
		slog.Debug("Script progress", "completed", h.cycle, "total", len(h.script))
	}

	return contacts, nil, nil
}

func (h *Backend) Outputs() output.Outputs {
	return output.Outputs{
		LED:    output.Indicator{Line: h.led, Polarity: output.ActiveLow},
		Buzzer: output.Indicator{Line: h.buzzer, Polarity: output.ActiveHigh},
		Tone:   h.tone,
	}
}

func (h *Backend) Cleanup() error {
	return nil
}

// Cycles returns how many scripted samples have been consumed.
func (h *Backend) Cycles() int {
	return h.cycle
}

// Keyed returns the spans during which the key was down.
func (h *Backend) Keyed() []output.Interval {
	if h.buzzer == nil {
		return nil
	}
	return h.buzzer.Intervals(true)
}

// Elements renders the keyed spans as dots and dashes. Anything keyed for two
// units or more is read as a dah.
func (h *Backend) Elements(unit time.Duration) string {
	var b strings.Builder
	for _, span := range h.Keyed() {
		if span.Duration() >= 2*unit {
			b.WriteByte('-')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// Timeline renders one line per keyed element with its start and length.
func (h *Backend) Timeline(unit time.Duration) string {
	var b strings.Builder
	for i, span := range h.Keyed() {
		kind := "dit"
		if span.Duration() >= 2*unit {
			kind = "dah"
		}
		fmt.Fprintf(&b, "%3d %s at %6dms for %4dms\n", i+1, kind, span.Start.Milliseconds(), span.Duration().Milliseconds())
	}
	return b.String()
}
