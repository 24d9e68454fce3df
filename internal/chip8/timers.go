package chip8

import "time"

// TimerClockCycle is the cadence at which Tick is meant to be called by the
// driving loop: 16,666,667 nanoseconds = 1 / 60 Hz. The core never schedules
// ticks itself.
const TimerClockCycle = 16666667 * time.Nanosecond

// Timers holds the delay and sound timers. Both count down towards zero at
// 60 Hz, driven externally through Tick.
type Timers struct {
	delay uint8
	sound uint8
}

// Tick decreases each timer by 1 if it is greater than zero.
func (t *Timers) Tick() {
	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
	}
}

// Delay returns the value of the delay timer.
func (t *Timers) Delay() uint8 {
	return t.delay
}

// SetDelay sets the delay timer.
func (t *Timers) SetDelay(value uint8) {
	t.delay = value
}

// Sound returns the value of the sound timer. A tone should be emitted while
// it is nonzero.
func (t *Timers) Sound() uint8 {
	return t.sound
}

// SetSound sets the sound timer.
func (t *Timers) SetSound(value uint8) {
	t.sound = value
}
