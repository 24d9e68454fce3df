// Package chip8 implements the CHIP-8 virtual machine: 4 KB of memory, 16
// general purpose registers, a call stack, two 60 Hz countdown timers, a
// 64x32 monochrome framebuffer and a 16-key keypad.
//
// Follows the CHIP-8 technical reference found at
// http://devernay.free.fr/hacks/chip8/C8TECH10.HTM
package chip8

import (
	"fmt"
	"io"
	"os"
)

// Config selects between the two documented hardware behavior variants. Both
// toggles are construction-time settings so that a single build can emulate
// either machine.
type Config struct {
	// ShiftQuirks selects the SCHIP behavior for 8xy6/8xyE: Vx itself is
	// shifted. With the quirk disabled, the original CHIP-8 behavior is
	// used: Vy is shifted into Vx.
	ShiftQuirks bool

	// LoadStoreQuirks selects the SCHIP behavior for Fx55/Fx65: I is left
	// unchanged after a bulk register store/load. With the quirk disabled,
	// the original CHIP-8 behavior is used: I is advanced by x+1.
	LoadStoreQuirks bool
}

// Machine is an emulated CHIP-8 machine. It is single threaded: the driving
// loop serializes instruction steps, timer ticks and key state updates.
type Machine struct {
	memory    Memory
	pc        uint16    // program counter
	v         [16]uint8 // registers V0, ..., VF
	i         uint16    // index register, used as a memory address
	callStack []uint16  // return addresses, most recent last

	// Timers holds the delay/sound timers, ticked externally at 60 Hz.
	Timers Timers

	// KeyPressed reports for every hex key k whether it is currently held.
	// It is written by the input collaborator between steps.
	KeyPressed [16]bool

	// Screen is the framebuffer, read by the presentation collaborator.
	Screen Screen

	shiftQuirks     bool
	loadStoreQuirks bool
}

// New creates a machine with the given program loaded at address 0x200 and
// the program counter pointing at its first instruction.
func New(program io.Reader, cfg Config) (*Machine, error) {
	mem, err := newMemory(program)
	if err != nil {
		return nil, err
	}
	return &Machine{
		memory:          mem,
		pc:              programStart,
		callStack:       make([]uint16, 0, 12),
		shiftQuirks:     cfg.ShiftQuirks,
		loadStoreQuirks: cfg.LoadStoreQuirks,
	}, nil
}

// LoadFile creates a machine from a ROM file on disk.
func LoadFile(filename string, cfg Config) (*Machine, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening program: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return New(file, cfg)
}

// PC returns the current program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}
