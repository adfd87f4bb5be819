package keyer

import (
	"errors"
	"fmt"
	"time"

	"github.com/valerio/go-keyer/keyer/iambic"
	"github.com/valerio/go-keyer/keyer/output"
	"github.com/valerio/go-keyer/keyer/timing"
)

const (
	MinWPM = 5
	MaxWPM = 60
)

var (
	// ErrInvalidWPM indicates the speed is outside the supported range
	ErrInvalidWPM = errors.New("wpm out of range")
	// ErrInvalidMode indicates an iambic mode other than A or B
	ErrInvalidMode = errors.New("invalid iambic mode")
	// ErrInvalidToneDuty indicates a tone duty cycle above 100%
	ErrInvalidToneDuty = errors.New("tone duty must be between 0 and 100")
)

// Config is fixed at startup; nothing here changes while keying.
type Config struct {
	WPM      int
	Mode     iambic.IambicMode
	ToneDuty uint8
}

func DefaultConfig() Config {
	return Config{
		WPM:      timing.DefaultWPM,
		Mode:     iambic.ModeB,
		ToneDuty: output.DefaultToneDuty,
	}
}

func (c Config) Validate() error {
	if c.WPM < MinWPM || c.WPM > MaxWPM {
		return fmt.Errorf("%w: %d (want %d-%d)", ErrInvalidWPM, c.WPM, MinWPM, MaxWPM)
	}
	if c.Mode != iambic.ModeA && c.Mode != iambic.ModeB {
		return fmt.Errorf("%w: %d", ErrInvalidMode, int(c.Mode))
	}
	if c.ToneDuty > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidToneDuty, c.ToneDuty)
	}
	return nil
}

// Unit is the dit length for the configured speed.
func (c Config) Unit() time.Duration {
	return timing.Unit(c.WPM)
}
