package chip8

import (
	"fmt"
	"io"
)

// Memory layout constants.
const (
	totalMemory    = 0x1000
	programStart   = 0x200
	maxProgramSize = totalMemory - programStart

	spriteSize = 5 // bytes per built-in digit sprite
)

// Memory is the 4 KB address space of the machine. The first 80 bytes hold
// the built-in sprites for the hexadecimal digits 0-F, programs start at
// address 0x200.
type Memory [totalMemory]uint8

var spritesForDigits = [16 * spriteSize]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// newMemory builds a memory image with the digit sprites at the bottom and
// the program bytes starting at 0x200. Everything else is zero-filled.
// Programs that do not fit into the program space are rejected before any
// byte is copied.
func newMemory(program io.Reader) (Memory, error) {
	var mem Memory
	copy(mem[:], spritesForDigits[:])

	data, err := io.ReadAll(program)
	if err != nil {
		return mem, fmt.Errorf("reading program: %w", err)
	}
	if len(data) > maxProgramSize {
		return mem, ErrProgramTooLarge
	}
	copy(mem[programStart:], data)
	return mem, nil
}

// digitSpriteAddr returns the memory offset of the built-in sprite for a
// hexadecimal digit. Only the low 4 bits of the digit are significant.
func digitSpriteAddr(digit uint8) uint16 {
	return uint16(digit&0x0F) * spriteSize
}
