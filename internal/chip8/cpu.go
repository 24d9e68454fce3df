package chip8

import "math/rand"

// Step fetches the 2-byte instruction pointed at by the program counter and
// executes it. One call is one atomic instruction, there is no mid-step
// suspension. Errors indicate a malformed program and leave the machine
// untouched except for the program counter, which has already advanced past
// the offending word.
func (m *Machine) Step() error {
	instruction, err := m.fetchInstruction()
	if err != nil {
		return err
	}
	return m.executeInstruction(instruction)
}

// fetchInstruction reads the big-endian instruction word at the program
// counter and advances the counter by 2, so that jump and call targets set an
// absolute address that is not incremented afterwards.
func (m *Machine) fetchInstruction() (uint16, error) {
	if m.pc >= totalMemory {
		return 0, &InvalidProgramCounterError{PC: m.pc}
	}
	if m.pc+1 >= totalMemory {
		return 0, &InvalidProgramCounterError{PC: m.pc + 1}
	}
	instruction := uint16(m.memory[m.pc])<<8 | uint16(m.memory[m.pc+1])
	m.pc += 2
	return instruction, nil
}

func (m *Machine) executeInstruction(instruction uint16) error {
	x := uint8((instruction >> 8) & 0x000F) // the lower 4 bits of the high byte of the instruction
	y := uint8((instruction >> 4) & 0x000F) // the upper 4 bits of the low byte of the instruction
	n := uint8(instruction & 0x000F)        // the lowest 4 bits of the instruction
	kk := uint8(instruction & 0x00FF)       // the lowest 8 bits of the instruction
	nnn := instruction & 0x0FFF             // the lowest 12 bits of the instruction

	switch instruction & 0xF000 { // compare against the first 4 bits of the instruction only
	case 0x0000:
		switch nnn {
		case 0x0E0: // 00E0 (clear the screen)
			m.Screen.Clear()
		case 0x0EE: // 00EE (return)
			if len(m.callStack) == 0 {
				return &CallStackUnderflowError{Address: m.pc - 2}
			}
			m.pc = m.callStack[len(m.callStack)-1]
			m.callStack = m.callStack[:len(m.callStack)-1]
		default: // 0nnn (machine code routine call, not emulated)
			return &UnsupportedInstructionError{Instruction: instruction, Address: m.pc - 2}
		}
	case 0x1000: // 1nnn (jump to address nnn)
		m.pc = nnn
	case 0x2000: // 2nnn (call subroutine at address nnn)
		m.callStack = append(m.callStack, m.pc)
		m.pc = nnn
	case 0x3000: // 3xkk (skip the next instruction if Vx == kk)
		if m.v[x] == kk {
			m.pc += 2
		}
	case 0x4000: // 4xkk (skip the next instruction if Vx != kk)
		if m.v[x] != kk {
			m.pc += 2
		}
	case 0x5000:
		switch n {
		case 0x0: // 5xy0 (skip the next instruction if Vx == Vy)
			if m.v[x] == m.v[y] {
				m.pc += 2
			}
		default:
			return &NotWellFormedInstructionError{Instruction: instruction, Address: m.pc - 2}
		}
	case 0x6000: // 6xkk (Vx = kk)
		m.v[x] = kk
	case 0x7000: // 7xkk (Vx = Vx + kk, no carry flag)
		m.v[x] += kk
	case 0x8000:
		switch n {
		case 0x0: // 8xy0 (Vx = Vy)
			m.v[x] = m.v[y]
		case 0x1: // 8xy1 (Vx = Vx | Vy)
			m.v[x] |= m.v[y]
		case 0x2: // 8xy2 (Vx = Vx & Vy)
			m.v[x] &= m.v[y]
		case 0x3: // 8xy3 (Vx = Vx ^ Vy)
			m.v[x] ^= m.v[y]
		case 0x4: // 8xy4 (Vx = Vx + Vy, VF = carry)
			sum := uint16(m.v[x]) + uint16(m.v[y])
			m.v[x] = uint8(sum)
			if sum > 0xFF {
				m.v[0xF] = 1
			} else {
				m.v[0xF] = 0
			}
		case 0x5: // 8xy5 (Vx = Vx - Vy, VF = no borrow)
			noBorrow := m.v[x] >= m.v[y]
			m.v[x] -= m.v[y]
			if noBorrow {
				m.v[0xF] = 1
			} else {
				m.v[0xF] = 0
			}
		case 0x6: // 8xy6 (shift right, VF = shifted-out bit)
			// SCHIP shifts Vx itself, the original CHIP-8 shifts Vy into Vx.
			src := m.v[y]
			if m.shiftQuirks {
				src = m.v[x]
			}
			m.v[0xF] = src & 0x01
			m.v[x] = src >> 1
		case 0x7: // 8xy7 (Vx = Vy - Vx, VF = no borrow)
			noBorrow := m.v[y] >= m.v[x]
			m.v[x] = m.v[y] - m.v[x]
			if noBorrow {
				m.v[0xF] = 1
			} else {
				m.v[0xF] = 0
			}
		case 0xE: // 8xyE (shift left, VF = shifted-out bit)
			src := m.v[y]
			if m.shiftQuirks {
				src = m.v[x]
			}
			m.v[0xF] = src >> 7
			m.v[x] = src << 1
		default:
			return &NotWellFormedInstructionError{Instruction: instruction, Address: m.pc - 2}
		}
	case 0x9000:
		switch n {
		case 0x0: // 9xy0 (skip the next instruction if Vx != Vy)
			if m.v[x] != m.v[y] {
				m.pc += 2
			}
		default:
			return &NotWellFormedInstructionError{Instruction: instruction, Address: m.pc - 2}
		}
	case 0xA000: // Annn (I = nnn)
		m.i = nnn
	case 0xB000: // Bnnn (jump to address nnn + V0)
		m.pc = nnn + uint16(m.v[0])
	case 0xC000: // Cxkk (Vx = random byte & kk)
		m.v[x] = uint8(rand.Intn(256)) & kk
	case 0xD000: // Dxyn (draw the sprite at memory I..I+n at (Vx, Vy), VF = collision)
		m.drawSprite(m.v[x], m.v[y], n)
	case 0xE000:
		switch kk {
		case 0x9E: // Ex9E (skip the next instruction if the key in Vx is pressed)
			if m.KeyPressed[m.v[x]&0x0F] {
				m.pc += 2
			}
		case 0xA1: // ExA1 (skip the next instruction if the key in Vx is not pressed)
			if !m.KeyPressed[m.v[x]&0x0F] {
				m.pc += 2
			}
		default:
			return &NotWellFormedInstructionError{Instruction: instruction, Address: m.pc - 2}
		}
	case 0xF000:
		switch kk {
		case 0x07: // Fx07 (Vx = delay timer)
			m.v[x] = m.Timers.Delay()
		case 0x0A: // Fx0A (Vx = a key press)
			// With no key held the program counter rewinds so the same
			// instruction re-executes on the next step. The driver keeps
			// stepping, the machine never blocks.
			if key, ok := m.lowestPressedKey(); ok {
				m.v[x] = key
			} else {
				m.pc -= 2
			}
		case 0x15: // Fx15 (delay timer = Vx)
			m.Timers.SetDelay(m.v[x])
		case 0x18: // Fx18 (sound timer = Vx)
			m.Timers.SetSound(m.v[x])
		case 0x1E: // Fx1E (I = I + Vx, no carry flag)
			m.i += uint16(m.v[x])
		case 0x29: // Fx29 (I = the address of the sprite for the hex digit in Vx)
			m.i = digitSpriteAddr(m.v[x])
		case 0x33: // Fx33 (store the BCD of Vx in memory I..I+2)
			m.writeMemory(0, m.v[x]/100)
			m.writeMemory(1, m.v[x]/10%10)
			m.writeMemory(2, m.v[x]%10)
		case 0x55: // Fx55 (save V0..Vx to memory I..I+x)
			for offset := uint16(0); offset <= uint16(x); offset++ {
				m.writeMemory(offset, m.v[offset])
			}
			if !m.loadStoreQuirks { // original CHIP-8 advances I, SCHIP leaves it alone
				m.i += uint16(x) + 1
			}
		case 0x65: // Fx65 (load V0..Vx from memory I..I+x)
			for offset := uint16(0); offset <= uint16(x); offset++ {
				m.v[offset] = m.readMemory(offset)
			}
			if !m.loadStoreQuirks {
				m.i += uint16(x) + 1
			}
		default:
			return &NotWellFormedInstructionError{Instruction: instruction, Address: m.pc - 2}
		}
	}
	return nil
}

// drawSprite XORs an n-row, 8-bit-wide sprite read from memory at I onto the
// screen at (vx mod width, vy mod height). Rows and columns falling outside
// the screen are clipped, not wrapped. VF is set to 1 if any drawn bit landed
// on a pixel that was on before the XOR, else 0.
func (m *Machine) drawSprite(vx, vy, n uint8) {
	x := int(vx) % ScreenWidth
	y := int(vy) % ScreenHeight
	m.v[0xF] = 0
	for row := 0; row < int(n); row++ {
		pixelY := y + row
		if pixelY >= ScreenHeight {
			break
		}
		spriteByte := m.readMemory(uint16(row))
		for col := 0; col < 8; col++ {
			pixelX := x + col
			if pixelX >= ScreenWidth {
				break
			}
			if spriteByte&(1<<(7-col)) != 0 {
				if m.Screen.Toggle(pixelX, pixelY) {
					m.v[0xF] = 1
				}
			}
		}
	}
}

// lowestPressedKey returns the lowest-indexed currently held key.
func (m *Machine) lowestPressedKey() (uint8, bool) {
	for key, pressed := range m.KeyPressed {
		if pressed {
			return uint8(key), true
		}
	}
	return 0, false
}

// readMemory reads the byte at I plus offset. Only 12 bits of the index
// register are meaningful, addresses wrap around the 4 KB memory.
func (m *Machine) readMemory(offset uint16) uint8 {
	return m.memory[(m.i+offset)&(totalMemory-1)]
}

func (m *Machine) writeMemory(offset uint16, value uint8) {
	m.memory[(m.i+offset)&(totalMemory-1)] = value
}
