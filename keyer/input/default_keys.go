package input

import "github.com/valerio/go-keyer/keyer/input/action"

// DefaultKeyMap provides default key mappings that work across backends.
// Backends can use these mappings as a base and override/extend as needed.
var DefaultKeyMap = map[string]action.Action{
	// Paddles: left hand dit, right hand dah
	"z":     action.PaddleDit,
	"x":     action.PaddleDah,
	"[":     action.PaddleDit,
	"]":     action.PaddleDah,
	"Left":  action.PaddleDit,
	"Right": action.PaddleDah,

	// Keyer controls
	"s":      action.KeyerStatus,
	"Escape": action.KeyerQuit,
	"q":      action.KeyerQuit,

	// Debug controls
	"+": action.DebugLogLevelIncrease,
	"=": action.DebugLogLevelIncrease, // Alternative without shift
	"-": action.DebugLogLevelDecrease,
	"_": action.DebugLogLevelDecrease, // Alternative with shift
}

// GetDefaultMapping returns the default action for a key, if one exists
func GetDefaultMapping(key string) (action.Action, bool) {
	act, ok := DefaultKeyMap[key]
	return act, ok
}
