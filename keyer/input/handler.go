package input

import (
	"time"

	"github.com/valerio/go-keyer/keyer/backend"
	"github.com/valerio/go-keyer/keyer/input/action"
	"github.com/valerio/go-keyer/keyer/input/event"
)

// DefaultDebounce is the minimum time between two accepted presses of the same control.
const DefaultDebounce = 300 * time.Millisecond

// Handler filters control events, dropping presses that repeat too quickly.
// Paddle events are never filtered: their timing is the keyer's business.
type Handler struct {
	lastActionTime map[action.Action]time.Time
	debounceDelay  time.Duration
	now            func() time.Time
}

func NewHandler() *Handler {
	return &Handler{
		lastActionTime: make(map[action.Action]time.Time),
		debounceDelay:  DefaultDebounce,
		now:            time.Now,
	}
}

// ProcessEvent returns true if the event should be handled, false if it was debounced
func (h *Handler) ProcessEvent(evt backend.InputEvent) bool {
	if action.GetInfo(evt.Action).Category == action.CategoryPaddle {
		return true
	}

	if evt.Type != event.Press {
		return true
	}

	now := h.now()
	if lastTime, exists := h.lastActionTime[evt.Action]; exists {
		if now.Sub(lastTime) < h.debounceDelay {
			return false
		}
	}
	h.lastActionTime[evt.Action] = now

	return true
}

// Filter returns the events that pass debouncing, in order.
func (h *Handler) Filter(events []backend.InputEvent) []backend.InputEvent {
	var accepted []backend.InputEvent
	for _, evt := range events {
		if h.ProcessEvent(evt) {
			accepted = append(accepted, evt)
		}
	}
	return accepted
}
