//go:build tinygo

// Command keyer-firmware runs the iambic keyer on a microcontroller.
// Flash with: tinygo flash -target=pico ./cmd/keyer-firmware
package main

import (
	"machine"
	"time"

	"github.com/valerio/go-keyer/keyer/display"
	"github.com/valerio/go-keyer/keyer/iambic"
	"github.com/valerio/go-keyer/keyer/output"
	"github.com/valerio/go-keyer/keyer/timing"
	"tinygo.org/x/drivers/buzzer"
)

const (
	WPM      = timing.DefaultWPM
	Mode     = iambic.ModeB
	ToneDuty = output.DefaultToneDuty
)

// pwmGroup is the subset of a TinyGo PWM peripheral the sidetone needs.
type pwmGroup interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Set(channel uint8, value uint32)
	Top() uint32
}

// pinLine keys a plain output pin.
type pinLine machine.Pin

func (p pinLine) Set(high bool) {
	machine.Pin(p).Set(high)
}

// buzzerLine keys an active buzzer through the drivers package.
type buzzerLine struct {
	dev *buzzer.Device
}

func (b buzzerLine) Set(high bool) {
	var err error
	if high {
		err = b.dev.On()
	} else {
		err = b.dev.Off()
	}
	if err != nil {
		println("buzzer:", err.Error())
	}
}

// pwmTone feeds a passive buzzer at the sidetone pitch.
type pwmTone struct {
	pwm     pwmGroup
	channel uint8
}

func newPWMTone(pwm pwmGroup, pin machine.Pin) (*pwmTone, error) {
	err := pwm.Configure(machine.PWMConfig{Period: uint64(machine.GHz) / display.SidetoneHz})
	if err != nil {
		return nil, err
	}
	ch, err := pwm.Channel(pin)
	if err != nil {
		return nil, err
	}
	t := &pwmTone{pwm: pwm, channel: ch}
	t.Off()
	return t, nil
}

func (t *pwmTone) SetDutyPercent(percent uint8) {
	if percent > 100 {
		percent = 100
	}
	t.pwm.Set(t.channel, t.pwm.Top()*uint32(percent)/100)
}

func (t *pwmTone) Off() {
	t.pwm.Set(t.channel, 0)
}

func main() {
	ditPin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	dahPin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	buzzerPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	bz := buzzer.New(buzzerPin)
	outputs := output.Outputs{
		LED:    output.Indicator{Line: pinLine(ledPin), Polarity: output.ActiveLow},
		Buzzer: output.Indicator{Line: buzzerLine{dev: &bz}, Polarity: output.ActiveHigh},
	}

	if tone, err := newPWMTone(tonePWM, tonePin); err != nil {
		println("could not configure tone PWM:", err.Error())
	} else {
		outputs.Tone = tone
	}

	tx := output.NewTransmitter(outputs, timing.NewRealClock(), output.WithToneDuty(ToneDuty))
	keyer := iambic.New(Mode)
	unit := timing.Unit(WPM)
	idle := timing.IdleSlice(unit)

	println("iambic keyer ready, mode", Mode.String(), "wpm", WPM)

	for {
		// contacts pull the inputs to ground
		pulse, ok := keyer.Update(iambic.FromContacts(!ditPin.Get(), !dahPin.Get()))
		if !ok {
			time.Sleep(idle)
			continue
		}
		tx.SendElement(pulse, unit)
	}
}
