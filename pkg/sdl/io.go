// Package sdl is the SDL2 presentation and input layer. It blits the
// machine's framebuffer into a window and maps keyboard events onto the
// CHIP-8 keypad. It contains no interpreter logic.
package sdl

import (
	"fmt"

	"github.com/retroemu/chip8/internal/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

const pixelSize = 10

// IO is the input/output abstraction layer for the VM
type IO struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	// ghost keeps the previously rendered frame. Merging it into the
	// current frame emulates the slow pixel decay of the original
	// hardware and reduces flicker.
	ghost chip8.Screen

	vm *chip8.Machine
}

// NewIO returns a new I/O instance for the SDL frontend
func NewIO(vm *chip8.Machine) *IO {
	return &IO{
		vm: vm,
	}
}

// SetupWindow initialises SDL and creates the main window, renderer and the
// screen texture.
func (io *IO) SetupWindow(title string) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("initialising SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		chip8.ScreenWidth*pixelSize, chip8.ScreenHeight*pixelSize,
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE|sdl.WINDOW_ALLOW_HIGHDPI)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	io.window = window

	io.renderer, err = sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	// one byte per pixel, fed directly from the machine's framebuffer export
	io.texture, err = io.renderer.CreateTexture(sdl.PIXELFORMAT_RGB332, sdl.TEXTUREACCESS_STREAMING,
		chip8.ScreenWidth, chip8.ScreenHeight)
	if err != nil {
		return fmt.Errorf("creating texture: %w", err)
	}
	return nil
}

// Destroy should be called before quitting the application
func (io *IO) Destroy() {
	if io.texture != nil {
		_ = io.texture.Destroy()
	}
	if io.renderer != nil {
		_ = io.renderer.Destroy()
	}
	if io.window != nil {
		_ = io.window.Destroy()
	}
	sdl.Quit()
}

// Render blends the previous frame into the current one and presents the
// result.
func (io *IO) Render() error {
	io.ghost.Merge(&io.vm.Screen)
	if err := io.texture.Update(nil, io.ghost.Bytes(), chip8.ScreenWidth); err != nil {
		return fmt.Errorf("updating texture: %w", err)
	}
	io.ghost = io.vm.Screen

	if err := io.renderer.SetDrawColor(0, 0, 0, 255); err != nil {
		return fmt.Errorf("setting draw color: %w", err)
	}
	if err := io.renderer.Clear(); err != nil {
		return fmt.Errorf("clearing renderer: %w", err)
	}
	if err := io.renderer.Copy(io.texture, nil, nil); err != nil {
		return fmt.Errorf("copying texture: %w", err)
	}
	io.renderer.Present()
	return nil
}

// ProcessInput polls pending events, updating the machine's key state.
// It reports false when the application should quit.
func (io *IO) ProcessInput() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.KeyboardEvent:
			if t.Repeat != 0 {
				continue
			}
			switch t.GetType() {
			case sdl.KEYDOWN:
				io.setKey(t.Keysym.Scancode, true)
			case sdl.KEYUP:
				io.setKey(t.Keysym.Scancode, false)
			}
		case *sdl.QuitEvent:
			return false
		}
	}
	return true
}

// Maps keys from a QWERTY keyboard to the keypad used by CHIP-8
// Below we have a mapping QWERTY keyboard to the CHIP-8 keypad
// +--------+--------+--------+--------+
// | 1 -> 1 | 2 -> 2 | 3 -> 3 | 4 -> C |
// +--------+--------+--------+--------+
// | Q -> 4 | W -> 5 | E -> 6 | R -> D |
// +--------+--------+--------+--------+
// | A -> 7 | S -> 8 | D -> 9 | F -> E |
// +--------+--------+--------+--------+
// | Z -> A | X -> 0 | C -> B | V -> F |
// +--------+--------+--------+--------+
func (io *IO) keymap(code sdl.Scancode) int8 {
	switch code {
	case sdl.SCANCODE_1:
		return 0x1
	case sdl.SCANCODE_2:
		return 0x2
	case sdl.SCANCODE_3:
		return 0x3
	case sdl.SCANCODE_4:
		return 0xC
	case sdl.SCANCODE_Q:
		return 0x4
	case sdl.SCANCODE_W:
		return 0x5
	case sdl.SCANCODE_E:
		return 0x6
	case sdl.SCANCODE_R:
		return 0xD
	case sdl.SCANCODE_A:
		return 0x7
	case sdl.SCANCODE_S:
		return 0x8
	case sdl.SCANCODE_D:
		return 0x9
	case sdl.SCANCODE_F:
		return 0xE
	case sdl.SCANCODE_Z:
		return 0xA
	case sdl.SCANCODE_X:
		return 0x0
	case sdl.SCANCODE_C:
		return 0xB
	case sdl.SCANCODE_V:
		return 0xF
	default:
		return -1
	}
}

func (io *IO) setKey(keycode sdl.Scancode, pressed bool) {
	code := io.keymap(keycode)
	if code != -1 {
		io.vm.KeyPressed[code] = pressed
	}
}
