package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-keyer/keyer/backend"
	"github.com/valerio/go-keyer/keyer/input/action"
	"github.com/valerio/go-keyer/keyer/input/event"
)

func TestPaddles_PressHoldRelease(t *testing.T) {
	p := NewPaddles(DefaultKeyTimeout)
	start := time.Unix(0, 0)

	p.Touch(action.PaddleDit, start)

	contacts, events := p.Sample(start.Add(10 * time.Millisecond))
	assert.Equal(t, backend.Contacts{Dit: true}, contacts)
	assert.Equal(t, []backend.InputEvent{{Action: action.PaddleDit, Type: event.Press}}, events)

	// key repeat keeps the contact closed
	p.Touch(action.PaddleDit, start.Add(50*time.Millisecond))
	contacts, events = p.Sample(start.Add(120 * time.Millisecond))
	assert.Equal(t, backend.Contacts{Dit: true}, contacts)
	assert.Equal(t, []backend.InputEvent{{Action: action.PaddleDit, Type: event.Hold}}, events)

	// no repeat for longer than the timeout opens it
	contacts, events = p.Sample(start.Add(200 * time.Millisecond))
	assert.Equal(t, backend.Contacts{}, contacts)
	assert.Equal(t, []backend.InputEvent{{Action: action.PaddleDit, Type: event.Release}}, events)

	contacts, events = p.Sample(start.Add(300 * time.Millisecond))
	assert.Equal(t, backend.Contacts{}, contacts)
	assert.Empty(t, events)
}

func TestPaddles_Squeeze(t *testing.T) {
	p := NewPaddles(DefaultKeyTimeout)
	now := time.Unix(0, 0)

	p.Touch(action.PaddleDit, now)
	p.Touch(action.PaddleDah, now)

	contacts, events := p.Sample(now)
	assert.Equal(t, backend.Contacts{Dit: true, Dah: true}, contacts)
	assert.Len(t, events, 2)

	// only the dah key keeps repeating
	p.Touch(action.PaddleDah, now.Add(90*time.Millisecond))
	contacts, _ = p.Sample(now.Add(150 * time.Millisecond))
	assert.Equal(t, backend.Contacts{Dah: true}, contacts)
}

func TestPaddles_IgnoresControls(t *testing.T) {
	p := NewPaddles(DefaultKeyTimeout)
	now := time.Unix(0, 0)

	p.Touch(action.KeyerQuit, now)
	contacts, events := p.Sample(now)
	assert.Equal(t, backend.Contacts{}, contacts)
	assert.Empty(t, events)
}

func TestPaddles_Clear(t *testing.T) {
	p := NewPaddles(DefaultKeyTimeout)
	now := time.Unix(0, 0)

	p.Touch(action.PaddleDah, now)
	p.Sample(now)
	p.Clear()

	contacts, events := p.Sample(now)
	assert.Equal(t, backend.Contacts{}, contacts)
	assert.Equal(t, []backend.InputEvent{{Action: action.PaddleDah, Type: event.Release}}, events)
}

func TestDefaultKeyMap(t *testing.T) {
	dit := []string{"z", "[", "Left"}
	dah := []string{"x", "]", "Right"}

	for _, k := range dit {
		act, ok := GetDefaultMapping(k)
		assert.True(t, ok, k)
		assert.Equal(t, action.PaddleDit, act, k)
	}
	for _, k := range dah {
		act, ok := GetDefaultMapping(k)
		assert.True(t, ok, k)
		assert.Equal(t, action.PaddleDah, act, k)
	}

	_, ok := GetDefaultMapping("F13")
	assert.False(t, ok)
}
