package display

// Terminal layout constants
const (
	// MinTermWidth is the narrowest terminal the status panel fits in
	MinTermWidth = 40
	// MinTermHeight leaves room for the LED, status lines and a few log lines
	MinTermHeight = 12
	// LEDWidth is the width of the LED block in cells
	LEDWidth = 6
	// LEDHeight is the height of the LED block in cells
	LEDHeight = 3
	// StatusLines is the number of status lines under the LED
	StatusLines = 4
)

// Window constants for graphical backends
const (
	// DefaultWindowWidth is the default window width in pixels
	DefaultWindowWidth = 320
	// DefaultWindowHeight is the default window height in pixels
	DefaultWindowHeight = 200
	// LEDSize is the side of the square LED drawn in the window
	LEDSize = 96
)

// Sidetone constants
const (
	// SidetoneHz is the pitch of the generated sidetone
	SidetoneHz = 600
	// SampleRate is the audio sample rate used for generated tones
	SampleRate = 44100
	// ToneBufferSeconds is how much tone is queued when the key goes down;
	// longer than any element at the slowest supported speed
	ToneBufferSeconds = 2
)

// LED colors as 0xRRGGBB
const (
	LEDOnColor  = 0xFF3030
	LEDOffColor = 0x301010
)
