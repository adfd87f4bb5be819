package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-keyer/keyer/backend"
	"github.com/valerio/go-keyer/keyer/backend/terminal/render"
	"github.com/valerio/go-keyer/keyer/display"
	"github.com/valerio/go-keyer/keyer/input"
	"github.com/valerio/go-keyer/keyer/input/action"
	"github.com/valerio/go-keyer/keyer/input/event"
	"github.com/valerio/go-keyer/keyer/output"
)

const logCapacity = 200

// Backend implements the Backend interface using tcell: keyboard keys act as
// paddles and the LED is drawn in the terminal.
type Backend struct {
	screen    tcell.Screen
	running   bool
	logBuffer *render.LogBuffer
	logLevel  *slog.LevelVar
	config    backend.BackendConfig
	status    backend.StatusProvider

	// Terminals never report key release; paddles expire after keyTimeout.
	paddles    *input.Paddles
	keyTimeout time.Duration
	now        func() time.Time

	mu         sync.Mutex           // guards eventQueue, written by the signal handler
	eventQueue []backend.InputEvent // non-paddle events since the last poll

	ledOn  bool
	toneOn bool
}

// New creates a new terminal backend
func New() *Backend {
	return &Backend{
		logLevel:   new(slog.LevelVar),
		keyTimeout: input.DefaultKeyTimeout,
		now:        time.Now,
	}
}

// NewWithScreen creates a terminal backend drawing on an existing screen.
func NewWithScreen(screen tcell.Screen) *Backend {
	t := New()
	t.screen = screen
	return t
}

// Init initializes the terminal backend
func (t *Backend) Init(config backend.BackendConfig) error {
	t.config = config
	t.status = config.StatusProvider
	t.paddles = input.NewPaddles(t.keyTimeout)
	t.eventQueue = nil

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %v", err)
		}
		t.screen = screen
	}

	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}
	t.running = true

	// Logs go to the on-screen panel while the terminal is owned by tcell
	t.logBuffer = render.NewLogBuffer(logCapacity)
	t.logLevel.Set(slog.LevelInfo)
	slog.SetDefault(slog.New(render.NewLogBufferHandler(t.logBuffer, t.logLevel)))
	slog.Info("Terminal backend initialized", "wpm", config.WPM, "mode", config.Mode)

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	go t.handleSignals()

	return nil
}

// Poll drains pending key events, samples the paddles and redraws.
func (t *Backend) Poll() (backend.Contacts, []backend.InputEvent, error) {
	now := t.now()

	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev, now)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	contacts, events := t.paddles.Sample(now)

	t.mu.Lock()
	events = append(events, t.eventQueue...)
	t.eventQueue = nil
	t.mu.Unlock()

	t.draw()
	return contacts, events, nil
}

// Outputs draws the LED and a tone marker on screen.
func (t *Backend) Outputs() output.Outputs {
	return output.Outputs{
		LED:  output.Indicator{Line: output.LineFunc(t.setLED), Polarity: output.ActiveHigh},
		Tone: t,
	}
}

// SetDutyPercent implements output.Tone; any duty shows the tone marker.
func (t *Backend) SetDutyPercent(percent uint8) {
	t.toneOn = percent > 0
}

func (t *Backend) Off() {
	t.toneOn = false
}

func (t *Backend) setLED(high bool) {
	t.ledOn = high
	t.draw()
}

// Cleanup cleans up terminal resources
func (t *Backend) Cleanup() error {
	if t.screen != nil {
		slog.Info("Cleaning up terminal backend")
		t.screen.Fini()
	}
	return nil
}

// HandleAction processes backend-specific actions
func (t *Backend) HandleAction(act action.Action) {
	switch act {
	case action.DebugLogLevelIncrease:
		t.changeLogLevel(1)
	case action.DebugLogLevelDecrease:
		t.changeLogLevel(-1)
	}
}

func (t *Backend) handleSignals() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	<-signals
	t.queue(action.KeyerQuit)
}

func (t *Backend) queue(act action.Action) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: act, Type: event.Press})
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey, now time.Time) {
	act, ok := keyMapping[ev.Key()]
	if !ok && ev.Key() == tcell.KeyRune {
		act, ok = input.GetDefaultMapping(string(ev.Rune()))
	}
	if !ok {
		return
	}

	if action.GetInfo(act).Category == action.CategoryPaddle {
		t.paddles.Touch(act, now)
		return
	}

	if act == action.KeyerQuit {
		t.running = false
	}
	t.queue(act)
}

// tcellKeyNameMap converts tcell keys to key names used in default mappings
var tcellKeyNameMap = map[tcell.Key]string{
	tcell.KeyLeft:   "Left",
	tcell.KeyRight:  "Right",
	tcell.KeyEscape: "Escape",
}

// buildKeyMapping creates the key mapping from default mappings
func buildKeyMapping() map[tcell.Key]action.Action {
	mapping := make(map[tcell.Key]action.Action)

	for key, keyName := range tcellKeyNameMap {
		if act, ok := input.GetDefaultMapping(keyName); ok {
			mapping[key] = act
		}
	}

	mapping[tcell.KeyCtrlC] = action.KeyerQuit

	return mapping
}

// keyMapping maps tcell keys to actions
var keyMapping = buildKeyMapping()

func (t *Backend) changeLogLevel(direction int) {
	oldLevel := t.logLevel.Level()
	newLevel := oldLevel
	switch {
	case direction > 0 && oldLevel > slog.LevelDebug:
		newLevel = oldLevel - 4
	case direction < 0 && oldLevel < slog.LevelError:
		newLevel = oldLevel + 4
	}
	if newLevel != oldLevel {
		t.logLevel.Set(newLevel)
		slog.Info("Log filter changed", "from", oldLevel, "to", newLevel)
	}
}

func (t *Backend) draw() {
	if t.screen == nil || !t.running {
		return
	}

	termWidth, termHeight := t.screen.Size()
	t.screen.Clear()

	if termWidth < display.MinTermWidth || termHeight < display.MinTermHeight {
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", display.MinTermWidth, display.MinTermHeight)
		t.drawText(0, termHeight/2, termWidth, msg, tcell.StyleDefault.Foreground(tcell.ColorRed))
		t.screen.Show()
		return
	}

	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	textStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	t.drawText(1, 0, termWidth, " "+t.config.Title+" ", titleStyle)
	t.drawLED(2, 2)

	statusX := 2 + display.LEDWidth + 2
	for i, line := range t.statusLines() {
		t.drawText(statusX, 2+i, termWidth-statusX, line, textStyle)
	}

	logsY := 2 + display.StatusLines + 2
	t.drawText(1, logsY-1, termWidth, fmt.Sprintf(" Logs [%s] (-/+ filter) ", t.logLevel.Level()), titleStyle)
	t.drawLogs(1, logsY, termWidth-1, termHeight-1)

	help := " z [ ← dit   x ] → dah   s status   q quit "
	t.drawText(0, termHeight-1, termWidth, help, textStyle)

	t.screen.Show()
}

func (t *Backend) drawLED(x, y int) {
	color := tcell.NewHexColor(display.LEDOffColor)
	if t.ledOn {
		color = tcell.NewHexColor(display.LEDOnColor)
	}
	style := tcell.StyleDefault.Foreground(color)
	for dy := 0; dy < display.LEDHeight; dy++ {
		for dx := 0; dx < display.LEDWidth; dx++ {
			t.screen.SetContent(x+dx, y+dy, '█', nil, style)
		}
	}
}

func (t *Backend) statusLines() []string {
	var st backend.Status
	if t.status != nil {
		st = t.status.Status()
	} else {
		st = backend.Status{WPM: t.config.WPM, Mode: t.config.Mode}
	}

	tone := " "
	if t.toneOn {
		tone = "♪"
	}
	last := st.Last
	if last == "" {
		last = "-"
	}

	return []string{
		fmt.Sprintf("Iambic %s  %d WPM  %s", st.Mode, st.WPM, tone),
		fmt.Sprintf("Last: %-4s (%s)", last, st.PulseMode),
		fmt.Sprintf("Dits %d  Dahs %d  Residual %d", st.Dits, st.Dahs, st.Residuals),
		"Sent: " + st.History,
	}
}

func (t *Backend) drawLogs(x, y, width, maxY int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i, entry := range t.logBuffer.GetRecent(maxY - y) {
		t.drawText(x, y+i, width, render.FormatLogEntry(entry), style)
	}
}

func (t *Backend) drawText(x, y, width int, text string, style tcell.Style) {
	col := 0
	for _, ch := range text {
		if col >= width {
			return
		}
		t.screen.SetContent(x+col, y, ch, nil, style)
		col++
	}
}
