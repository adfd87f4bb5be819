// Package keyer ties the iambic state machine to a backend: it polls the
// paddles, decides each element and keys it onto the backend's outputs.
package keyer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/valerio/go-keyer/keyer/backend"
	"github.com/valerio/go-keyer/keyer/iambic"
	"github.com/valerio/go-keyer/keyer/input"
	"github.com/valerio/go-keyer/keyer/input/action"
	"github.com/valerio/go-keyer/keyer/output"
	"github.com/valerio/go-keyer/keyer/timing"
)

// historyLen is how many recent elements are kept for display.
const historyLen = 40

// Stats counts what a session has done so far.
type Stats struct {
	Cycles     int
	Dits       int
	Dahs       int
	Residuals  int
	IdleCycles int
}

// Session owns the keyer, the transmitter and the backend. It is driven by
// a single goroutine and is not safe for concurrent use.
type Session struct {
	config  Config
	unit    time.Duration
	idle    time.Duration
	keyer   *iambic.Keyer
	tx      *output.Transmitter
	backend backend.Backend
	clock   timing.Clock
	handler *input.Handler
	logger  *slog.Logger

	stats   Stats
	history []rune
	keyed   bool
}

// NewSession validates config and initialises the backend.
func NewSession(config Config, b backend.Backend, clock timing.Clock) (*Session, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		config:  config,
		unit:    config.Unit(),
		idle:    timing.IdleSlice(config.Unit()),
		keyer:   iambic.New(config.Mode),
		backend: b,
		clock:   clock,
		handler: input.NewHandler(),
	}

	err := b.Init(backend.BackendConfig{
		Title:          "go-keyer",
		WPM:            config.WPM,
		Mode:           config.Mode.String(),
		StatusProvider: s,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize backend: %w", err)
	}

	// backends may install their own log handler during Init
	s.logger = slog.Default()
	s.tx = output.NewTransmitter(
		b.Outputs(),
		clock,
		output.WithToneDuty(config.ToneDuty),
		output.WithLogger(s.logger),
	)

	s.logger.Info("Iambic keyer ready", "mode", config.Mode.String(), "wpm", config.WPM, "unit_ms", s.unit.Milliseconds())
	return s, nil
}

// Step runs one polling cycle: sample the paddles, ask the keyer, and either
// key the element or wait one idle slice. It reports whether a quit was requested.
func (s *Session) Step() (quit bool, err error) {
	contacts, events, err := s.backend.Poll()
	if err != nil {
		return false, fmt.Errorf("failed to poll paddles: %w", err)
	}

	if quit = s.handleEvents(events); quit {
		return true, nil
	}

	s.stats.Cycles++

	pulse, ok := s.keyer.Update(iambic.FromContacts(contacts.Dit, contacts.Dah))
	if !ok {
		s.stats.IdleCycles++
		s.clock.Sleep(s.idle)
		return false, nil
	}

	s.record(pulse)

	s.keyed = true
	s.tx.SendElement(pulse, s.unit)
	s.keyed = false

	return false, nil
}

// Run polls until the backend asks to quit, ctx is cancelled or polling
// fails. Cancellation is only seen between cycles; an element in flight is
// always finished.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			s.logger.Info("Keyer stopped", "reason", err)
			return nil
		}

		quit, err := s.Step()
		if err != nil {
			return err
		}
		if quit {
			s.logger.Info("Keyer quit requested", "dits", s.stats.Dits, "dahs", s.stats.Dahs)
			return nil
		}
	}
}

// Close releases the backend.
func (s *Session) Close() error {
	return s.backend.Cleanup()
}

func (s *Session) handleEvents(events []backend.InputEvent) bool {
	quit := false
	for _, evt := range s.handler.Filter(events) {
		switch evt.Action {
		case action.KeyerQuit:
			quit = true
		case action.KeyerStatus:
			st := s.Status()
			s.logger.Info("Keyer status",
				"mode", st.Mode,
				"wpm", st.WPM,
				"pulse_mode", st.PulseMode,
				"dits", st.Dits,
				"dahs", st.Dahs,
				"residuals", st.Residuals)
		default:
			if h, ok := s.backend.(backend.ActionHandler); ok {
				h.HandleAction(evt.Action)
			}
		}
	}
	return quit
}

func (s *Session) record(pulse iambic.Pulse) {
	switch pulse {
	case iambic.Dit:
		s.stats.Dits++
	case iambic.Dah:
		s.stats.Dahs++
	}
	if s.keyer.PulseType() == iambic.Residual {
		s.stats.Residuals++
	}

	s.history = append(s.history, pulse.Symbol())
	if len(s.history) > historyLen {
		s.history = s.history[len(s.history)-historyLen:]
	}
}

// Stats returns the counters so far.
func (s *Session) Stats() Stats {
	return s.stats
}

// History returns the most recent elements as dots and dashes.
func (s *Session) History() string {
	return string(s.history)
}

// Unit returns the dit length in use.
func (s *Session) Unit() time.Duration {
	return s.unit
}

// Status implements backend.StatusProvider.
func (s *Session) Status() backend.Status {
	st := backend.Status{
		WPM:       s.config.WPM,
		Mode:      s.keyer.Mode().String(),
		PulseMode: s.keyer.PulseMode().String(),
		Keyed:     s.keyed,
		History:   string(s.history),
		Dits:      s.stats.Dits,
		Dahs:      s.stats.Dahs,
		Residuals: s.stats.Residuals,
	}
	if pulse, ok := s.keyer.Current(); ok {
		st.Last = pulse.String()
	}
	return st
}
