package input

import (
	"log/slog"
	"time"

	"github.com/valerio/go-keyer/keyer/backend"
	"github.com/valerio/go-keyer/keyer/input/action"
	"github.com/valerio/go-keyer/keyer/input/event"
)

// DefaultKeyTimeout is slightly longer than a typical terminal key repeat interval.
const DefaultKeyTimeout = 100 * time.Millisecond

// Paddles turns key-repeat events into held paddle contacts for inputs that
// never report a key release (terminals). A contact stays closed until its
// key has not been seen for the timeout.
type Paddles struct {
	timeout  time.Duration
	lastSeen map[action.Action]time.Time
	active   map[action.Action]bool
}

func NewPaddles(timeout time.Duration) *Paddles {
	return &Paddles{
		timeout:  timeout,
		lastSeen: make(map[action.Action]time.Time),
		active:   make(map[action.Action]bool),
	}
}

// Touch records that the key for a paddle action was seen at now.
// Non-paddle actions are ignored.
func (p *Paddles) Touch(act action.Action, now time.Time) {
	if action.GetInfo(act).Category != action.CategoryPaddle {
		return
	}
	p.lastSeen[act] = now
}

// Sample returns the contact state at now along with the Press, Hold and
// Release events since the previous sample.
func (p *Paddles) Sample(now time.Time) (backend.Contacts, []backend.InputEvent) {
	var events []backend.InputEvent
	current := make(map[action.Action]bool)

	for _, act := range []action.Action{action.PaddleDit, action.PaddleDah} {
		last, seen := p.lastSeen[act]
		if !seen {
			continue
		}
		if now.Sub(last) >= p.timeout {
			delete(p.lastSeen, act)
			continue
		}

		current[act] = true
		if p.active[act] {
			events = append(events, backend.InputEvent{Action: act, Type: event.Hold})
		} else {
			slog.Debug("Paddle closed", "paddle", act.String())
			events = append(events, backend.InputEvent{Action: act, Type: event.Press})
		}
	}

	for _, act := range []action.Action{action.PaddleDit, action.PaddleDah} {
		if p.active[act] && !current[act] {
			slog.Debug("Paddle opened", "paddle", act.String())
			events = append(events, backend.InputEvent{Action: act, Type: event.Release})
		}
	}

	p.active = current

	return backend.Contacts{
		Dit: current[action.PaddleDit],
		Dah: current[action.PaddleDah],
	}, events
}

// Clear opens both contacts immediately.
func (p *Paddles) Clear() {
	p.lastSeen = make(map[action.Action]time.Time)
}
