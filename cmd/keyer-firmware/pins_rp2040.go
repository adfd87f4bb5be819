//go:build tinygo && rp2040

package main

import "machine"

// Raspberry Pi Pico wiring. GP18 is channel A of PWM slice 1.
var (
	ditPin    = machine.GP14
	dahPin    = machine.GP15
	ledPin    = machine.GP16
	buzzerPin = machine.GP17
	tonePin   = machine.GP18

	tonePWM = machine.PWM1
)
