package action

// Action represents input actions that can be performed on the keyer
type Action int

const (
	// Paddle contacts
	PaddleDit Action = iota
	PaddleDah

	// Keyer controls
	KeyerQuit
	KeyerStatus

	// Debug controls
	DebugLogLevelIncrease
	DebugLogLevelDecrease
)

// Category groups actions by how backends must treat them.
type Category int

const (
	// CategoryPaddle actions are held contacts: tracked as state, never debounced.
	CategoryPaddle Category = iota
	// CategoryControl actions are one-shot presses.
	CategoryControl
	CategoryDebug
)

// Info describes an action for logs and help screens.
type Info struct {
	Description string
	Category    Category
}

var infos = map[Action]Info{
	PaddleDit:             {"Dit paddle", CategoryPaddle},
	PaddleDah:             {"Dah paddle", CategoryPaddle},
	KeyerQuit:             {"Quit", CategoryControl},
	KeyerStatus:           {"Log keyer status", CategoryControl},
	DebugLogLevelIncrease: {"More verbose logging", CategoryDebug},
	DebugLogLevelDecrease: {"Less verbose logging", CategoryDebug},
}

// GetInfo returns the description and category of an action.
func GetInfo(act Action) Info {
	if info, ok := infos[act]; ok {
		return info
	}
	return Info{Description: "Unknown", Category: CategoryControl}
}

func (a Action) String() string {
	return GetInfo(a).Description
}
