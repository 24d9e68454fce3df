package chip8

import (
	"errors"
	"fmt"
)

// ErrProgramTooLarge is returned when a program does not fit into the
// memory window starting at 0x200.
var ErrProgramTooLarge = errors.New("program size exceeds the maximum size")

// CallStackUnderflowError is returned when a RET instruction executes with an
// empty call stack. Address is the address of the returning instruction.
type CallStackUnderflowError struct {
	Address uint16
}

func (e *CallStackUnderflowError) Error() string {
	return fmt.Sprintf("returned at address 0x%04X when the call stack was empty", e.Address)
}

// InvalidProgramCounterError is returned when the program counter points
// outside of memory, usually because execution ran off the end of the program.
type InvalidProgramCounterError struct {
	PC uint16
}

func (e *InvalidProgramCounterError) Error() string {
	return fmt.Sprintf("the program counter 0x%04X is invalid", e.PC)
}

// NotWellFormedInstructionError is returned for an instruction word that uses
// an undefined bit pattern within a known opcode family.
type NotWellFormedInstructionError struct {
	Instruction uint16
	Address     uint16
}

func (e *NotWellFormedInstructionError) Error() string {
	return fmt.Sprintf("the instruction 0x%04X at 0x%04X is not well-formed", e.Instruction, e.Address)
}

// UnsupportedInstructionError is returned for a syntactically valid
// instruction that has no defined semantics, such as the machine code routine
// calls of the 0nnn family.
type UnsupportedInstructionError struct {
	Instruction uint16
	Address     uint16
}

func (e *UnsupportedInstructionError) Error() string {
	return fmt.Sprintf("the instruction 0x%04X at address 0x%04X is not supported", e.Instruction, e.Address)
}
