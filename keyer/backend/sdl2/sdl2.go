//go:build sdl2

package sdl2

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-keyer/keyer/backend"
	"github.com/valerio/go-keyer/keyer/display"
	"github.com/valerio/go-keyer/keyer/input"
	"github.com/valerio/go-keyer/keyer/input/action"
	"github.com/valerio/go-keyer/keyer/input/event"
	"github.com/valerio/go-keyer/keyer/output"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	windowWidth  = display.DefaultWindowWidth
	windowHeight = display.DefaultWindowHeight
)

// Backend implements the Backend interface using SDL2 bindings: paddle keys
// are read from the keyboard state, the LED is drawn in a window and the
// sidetone is played on the default audio device.
// Note: building this requires SDL2 development libraries installed.
// Default builds skip this and use a stub, see build tags (sdl2)
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	audio    sdl.AudioDeviceID
	running  bool
	config   backend.BackendConfig

	ledOn      bool
	toneOn     bool
	queued     []byte // sidetone samples for queuedDuty
	queuedDuty uint8

	held   backend.Contacts
	events []backend.InputEvent
}

// New creates a new SDL2 backend
func New() *Backend {
	return &Backend{}
}

// Init initializes the SDL2 backend
func (s *Backend) Init(config backend.BackendConfig) error {
	s.config = config

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS | sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %v", err)
	}

	window, err := sdl.CreateWindow(
		config.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		windowWidth,
		windowHeight,
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %v", err)
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create renderer: %v", err)
	}
	s.renderer = renderer

	// A missing audio device only costs the sidetone
	spec := &sdl.AudioSpec{
		Freq:     display.SampleRate,
		Format:   sdl.AUDIO_S8,
		Channels: 1,
		Samples:  512,
	}
	if dev, err := sdl.OpenAudioDevice("", false, spec, nil, 0); err != nil {
		slog.Warn("Sidetone disabled, no audio device", "error", err)
	} else {
		s.audio = dev
		sdl.PauseAudioDevice(dev, false)
	}

	s.running = true
	s.render()

	slog.Info("SDL2 backend initialized", "audio", s.audio != 0)
	return nil
}

// Poll pumps SDL events and reads the paddle keys from the keyboard state.
func (s *Backend) Poll() (backend.Contacts, []backend.InputEvent, error) {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		s.handleEvent(ev)
	}

	keys := sdl.GetKeyboardState()
	contacts := backend.Contacts{
		Dit: anyPressed(keys, ditScancodes),
		Dah: anyPressed(keys, dahScancodes),
	}

	s.edge(action.PaddleDit, s.held.Dit, contacts.Dit)
	s.edge(action.PaddleDah, s.held.Dah, contacts.Dah)
	s.held = contacts

	events := s.events
	s.events = nil

	s.render()
	return contacts, events, nil
}

// Outputs keys the window LED and the audio sidetone.
func (s *Backend) Outputs() output.Outputs {
	return output.Outputs{
		LED:  output.Indicator{Line: output.LineFunc(s.setLED), Polarity: output.ActiveHigh},
		Tone: s,
	}
}

// SetDutyPercent starts the sidetone with the given pulse width.
func (s *Backend) SetDutyPercent(percent uint8) {
	if percent == 0 {
		s.Off()
		return
	}
	if s.audio == 0 || s.toneOn {
		return
	}
	if s.queuedDuty != percent {
		s.queued = sidetone(percent)
		s.queuedDuty = percent
	}
	if err := sdl.QueueAudio(s.audio, s.queued); err != nil {
		slog.Warn("Failed to queue sidetone", "error", err)
		return
	}
	s.toneOn = true
}

// Off silences the sidetone immediately.
func (s *Backend) Off() {
	if s.audio != 0 {
		sdl.ClearQueuedAudio(s.audio)
	}
	s.toneOn = false
}

// Cleanup cleans up SDL2 resources
func (s *Backend) Cleanup() error {
	slog.Info("Cleaning up SDL2 backend")

	if s.audio != 0 {
		sdl.CloseAudioDevice(s.audio)
	}
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()

	return nil
}

var (
	ditScancodes = []sdl.Scancode{sdl.SCANCODE_Z, sdl.SCANCODE_LEFTBRACKET, sdl.SCANCODE_LEFT}
	dahScancodes = []sdl.Scancode{sdl.SCANCODE_X, sdl.SCANCODE_RIGHTBRACKET, sdl.SCANCODE_RIGHT}
)

// keyMapping maps SDL2 keys to control actions; paddles are read from the
// keyboard state instead.
var keyMapping = map[sdl.Keycode]action.Action{
	sdl.K_ESCAPE: action.KeyerQuit,
	sdl.K_q:      action.KeyerQuit,
	sdl.K_s:      action.KeyerStatus,
}

func anyPressed(keys []uint8, codes []sdl.Scancode) bool {
	for _, code := range codes {
		if int(code) < len(keys) && keys[code] != 0 {
			return true
		}
	}
	return false
}

func (s *Backend) edge(act action.Action, was, is bool) {
	switch {
	case is && !was:
		s.events = append(s.events, backend.InputEvent{Action: act, Type: event.Press})
	case !is && was:
		s.events = append(s.events, backend.InputEvent{Action: act, Type: event.Release})
	}
}

func (s *Backend) handleEvent(ev sdl.Event) {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		s.running = false
		s.events = append(s.events, backend.InputEvent{Action: action.KeyerQuit, Type: event.Press})

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
			return
		}
		act, ok := keyMapping[e.Keysym.Sym]
		if !ok {
			act, ok = input.GetDefaultMapping(sdl.GetKeyName(e.Keysym.Sym))
		}
		if !ok || action.GetInfo(act).Category == action.CategoryPaddle {
			return
		}
		s.events = append(s.events, backend.InputEvent{Action: act, Type: event.Press})
	}
}

func (s *Backend) setLED(high bool) {
	s.ledOn = high
	s.render()
}

func (s *Backend) render() {
	if !s.running || s.renderer == nil {
		return
	}

	s.renderer.SetDrawColor(0, 0, 0, 255)
	s.renderer.Clear()

	color := uint32(display.LEDOffColor)
	if s.ledOn {
		color = display.LEDOnColor
	}
	s.renderer.SetDrawColor(uint8(color>>16), uint8(color>>8), uint8(color), 255)
	s.renderer.FillRect(&sdl.Rect{
		X: (windowWidth - display.LEDSize) / 2,
		Y: (windowHeight - display.LEDSize) / 2,
		W: display.LEDSize,
		H: display.LEDSize,
	})

	s.renderer.Present()
}
