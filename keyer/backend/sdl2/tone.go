package sdl2

import "github.com/valerio/go-keyer/keyer/display"

const (
	toneHigh = 96
	toneLow  = -96
)

// pulseWave renders seconds of a pulse wave at hz as signed 8-bit mono
// samples. The high part of every period is duty percent long, at least one
// sample, the same shape a PWM pin feeds a passive buzzer.
func pulseWave(hz, sampleRate, seconds int, duty uint8) []byte {
	if hz <= 0 || sampleRate <= 0 || seconds <= 0 || duty == 0 {
		return nil
	}
	if duty > 100 {
		duty = 100
	}

	period := sampleRate / hz
	if period < 1 {
		period = 1
	}
	high := period * int(duty) / 100
	if high < 1 {
		high = 1
	}

	samples := make([]byte, sampleRate*seconds)
	for i := range samples {
		v := int8(toneLow)
		if i%period < high {
			v = toneHigh
		}
		samples[i] = byte(v)
	}
	return samples
}

// sidetone is the buffer queued each time the key goes down.
func sidetone(duty uint8) []byte {
	return pulseWave(display.SidetoneHz, display.SampleRate, display.ToneBufferSeconds, duty)
}
