//go:build !sdl2

package sdl2

import (
	"errors"

	"github.com/valerio/go-keyer/keyer/backend"
	"github.com/valerio/go-keyer/keyer/output"
)

// ErrNotAvailable is returned by every stub operation.
var ErrNotAvailable = errors.New("SDL2 backend not available - build with -tags sdl2 to enable")

// Backend stub for when SDL2 is not available
type Backend struct{}

// New creates a stub SDL2 backend that returns an error
func New() *Backend {
	return &Backend{}
}

// Init returns an error indicating SDL2 is not available
func (s *Backend) Init(config backend.BackendConfig) error {
	return ErrNotAvailable
}

// Poll returns an error
func (s *Backend) Poll() (backend.Contacts, []backend.InputEvent, error) {
	return backend.Contacts{}, nil, ErrNotAvailable
}

// Outputs has nothing to key
func (s *Backend) Outputs() output.Outputs {
	return output.Outputs{}
}

// Cleanup does nothing
func (s *Backend) Cleanup() error {
	return nil
}
