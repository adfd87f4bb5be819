package backend

import (
	"github.com/valerio/go-keyer/keyer/input/action"
	"github.com/valerio/go-keyer/keyer/input/event"
	"github.com/valerio/go-keyer/keyer/output"
)

// Backend represents a complete keyer platform (paddles + outputs + UI)
// Backends are responsible for:
// - Sampling the two paddle contacts when polled
// - Translating platform-specific input events to Actions
// - Providing the LED, buzzer and tone outputs the transmitter keys
type Backend interface {
	// Init configures the backend with the provided configuration.
	// This is a required step before calling Poll.
	Init(config BackendConfig) error

	// Poll samples the paddle contacts and returns any control events
	// raised since the previous poll. It must not block.
	Poll() (Contacts, []InputEvent, error)

	// Outputs returns the lines keyed for every element. Only valid after Init.
	Outputs() output.Outputs

	// Cleanup resources when shutting down
	Cleanup() error
}

// Contacts is one sample of the paddle contacts; true means closed.
type Contacts struct {
	Dit bool
	Dah bool
}

// InputEvent is a control or paddle event raised by a backend.
type InputEvent struct {
	Action action.Action
	Type   event.Type
}

// BackendConfig holds configuration for backends
type BackendConfig struct {
	Title string
	WPM   int
	Mode  string

	// StatusProvider lets backends that draw a UI show the keyer state.
	// Backends may ignore it.
	StatusProvider StatusProvider
}

// StatusProvider exposes the live keyer state to a backend's display.
type StatusProvider interface {
	Status() Status
}

// Status is a snapshot of the keyer for display.
type Status struct {
	WPM       int
	Mode      string
	PulseMode string
	Keyed     bool
	Last      string // last element sent, "" when none yet
	History   string // recently sent elements as dots and dashes
	Dits      int
	Dahs      int
	Residuals int
}

// ActionHandler is implemented by backends that react to control actions
// themselves (log level, redraw).
type ActionHandler interface {
	HandleAction(act action.Action)
}
