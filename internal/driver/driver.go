// Package driver paces the emulation against the wall clock. It contains no
// interpreter logic: it only decides when to issue instruction steps and
// timer ticks.
package driver

import (
	"time"

	"github.com/retroemu/chip8/internal/chip8"
)

// Updater accumulates elapsed wall-clock time and converts it into timer
// ticks at 60 Hz and instruction steps at a configurable rate. Lag is carried
// between updates so that slow frames are caught up instead of dropped.
type Updater struct {
	clock            time.Time
	timerTimeLag     time.Duration
	cpuTimeLag       time.Duration
	instructionCycle time.Duration
}

// New creates an updater issuing cpuSpeed instruction steps per second.
// A zero speed is treated as one instruction per second.
func New(cpuSpeed uint) *Updater {
	if cpuSpeed == 0 {
		cpuSpeed = 1
	}
	return &Updater{
		clock:            time.Now(),
		instructionCycle: time.Duration(float64(time.Second) / float64(cpuSpeed)),
	}
}

// Update runs the timer ticks and instruction steps owed since the last
// call. Each instruction is assumed to finish within a single instruction
// cycle. The first step error is returned and stops the update.
func (u *Updater) Update(m *chip8.Machine) error {
	elapsed := time.Since(u.clock)
	u.clock = time.Now()
	return u.advance(m, elapsed)
}

func (u *Updater) advance(m *chip8.Machine, elapsed time.Duration) error {
	u.timerTimeLag += elapsed
	for u.timerTimeLag >= chip8.TimerClockCycle {
		m.Timers.Tick()
		u.timerTimeLag -= chip8.TimerClockCycle
	}

	u.cpuTimeLag += elapsed
	for u.cpuTimeLag >= u.instructionCycle {
		if err := m.Step(); err != nil {
			return err
		}
		u.cpuTimeLag -= u.instructionCycle
	}
	return nil
}
