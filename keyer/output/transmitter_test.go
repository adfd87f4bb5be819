package output

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-keyer/keyer/iambic"
	"github.com/valerio/go-keyer/keyer/timing"
)

const unit = 80 * time.Millisecond

type rig struct {
	clock  *timing.VirtualClock
	led    *Recorder
	buzzer *Recorder
	tone   *Recorder
	tx     *Transmitter
}

func newRig(opts ...TransmitterOption) *rig {
	clock := timing.NewVirtualClock(time.Unix(0, 0))
	r := &rig{
		clock:  clock,
		led:    NewRecorder(clock, true),
		buzzer: NewRecorder(clock, false),
		tone:   NewRecorder(clock, false),
	}
	r.tx = NewTransmitter(Outputs{
		LED:    Indicator{Line: r.led, Polarity: ActiveLow},
		Buzzer: Indicator{Line: r.buzzer, Polarity: ActiveHigh},
		Tone:   r.tone,
	}, clock, opts...)
	return r
}

func TestTransmitter_StartsKeyedUp(t *testing.T) {
	r := newRig()

	assert.True(t, r.led.Level(), "active-low LED idles high")
	assert.False(t, r.buzzer.Level(), "active-high buzzer idles low")
	assert.False(t, r.tone.Level())
	assert.Empty(t, r.led.Edges())
}

func TestTransmitter_SendElement(t *testing.T) {
	tests := []struct {
		name    string
		pulse   iambic.Pulse
		keyDown time.Duration
	}{
		{"dit", iambic.Dit, unit},
		{"dah", iambic.Dah, 3 * unit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig()

			r.tx.SendElement(tt.pulse, unit)

			assert.Equal(t, tt.keyDown+unit, r.clock.Elapsed(), "element plus one unit of spacing")

			assert.Equal(t, []Edge{{At: 0, High: false}, {At: tt.keyDown, High: true}}, r.led.Edges())
			assert.Equal(t, []Edge{{At: 0, High: true}, {At: tt.keyDown, High: false}}, r.buzzer.Edges())
			assert.Equal(t, []Edge{{At: 0, High: true}, {At: tt.keyDown, High: false}}, r.tone.Edges())

			assert.True(t, r.led.Level(), "LED released after element")
			assert.Zero(t, r.tone.Duty(), "tone fully off after element")
		})
	}
}

func TestTransmitter_Sequence(t *testing.T) {
	r := newRig()

	for _, p := range []iambic.Pulse{iambic.Dah, iambic.Dit, iambic.Dah} {
		r.tx.SendElement(p, unit)
	}

	keyed := r.buzzer.Intervals(true)
	require.Len(t, keyed, 3)
	assert.Equal(t, Interval{Start: 0, End: 3 * unit}, keyed[0])
	assert.Equal(t, Interval{Start: 4 * unit, End: 5 * unit}, keyed[1])
	assert.Equal(t, Interval{Start: 6 * unit, End: 9 * unit}, keyed[2])

	spaces := r.buzzer.Intervals(false)
	require.Len(t, spaces, 3, "leading idle span plus two inter-element spaces")
	for _, s := range spaces[1:] {
		assert.Equal(t, unit, s.Duration())
	}

	assert.Equal(t, 10*unit, r.clock.Elapsed())
}

func TestTransmitter_ToneDuty(t *testing.T) {
	duties := []uint8{}
	tone := &toneProbe{onDuty: func(p uint8) { duties = append(duties, p) }}

	clock := timing.NewVirtualClock(time.Unix(0, 0))
	tx := NewTransmitter(Outputs{Tone: tone}, clock, WithToneDuty(40))
	tx.SendElement(iambic.Dit, unit)

	assert.Equal(t, []uint8{40}, duties)
	assert.Equal(t, 2, tone.offs, "off at construction and after the element")
}

func TestTransmitter_DefaultToneDuty(t *testing.T) {
	r := newRig()
	r.tx.SendElement(iambic.Dit, unit)
	assert.Equal(t, []Edge{{At: 0, High: true}, {At: unit, High: false}}, r.tone.Edges())

	var seen uint8
	tone := &toneProbe{onDuty: func(p uint8) { seen = p }}
	NewTransmitter(Outputs{Tone: tone}, r.clock).SendElement(iambic.Dah, unit)
	assert.Equal(t, DefaultToneDuty, seen)
}

func TestTransmitter_NoOutputs(t *testing.T) {
	clock := timing.NewVirtualClock(time.Unix(0, 0))
	tx := NewTransmitter(Outputs{}, clock)

	assert.NotPanics(t, func() { tx.SendElement(iambic.Dah, unit) })
	assert.Equal(t, 4*unit, clock.Elapsed(), "timing holds without any outputs wired")
}

func TestPolarity_Level(t *testing.T) {
	assert.True(t, ActiveHigh.Level(true))
	assert.False(t, ActiveHigh.Level(false))
	assert.False(t, ActiveLow.Level(true))
	assert.True(t, ActiveLow.Level(false))
}

func TestIndicator_LineFunc(t *testing.T) {
	var levels []bool
	ind := Indicator{Line: LineFunc(func(high bool) { levels = append(levels, high) }), Polarity: ActiveLow}

	ind.Key(true)
	ind.Key(false)
	assert.Equal(t, []bool{false, true}, levels)
}

type toneProbe struct {
	onDuty func(uint8)
	offs   int
}

func (p *toneProbe) SetDutyPercent(percent uint8) { p.onDuty(percent) }
func (p *toneProbe) Off()                         { p.offs++ }
