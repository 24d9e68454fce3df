package chip8

import "strings"

// Screen dimensions in pixels.
const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// Pixel byte values of the packed framebuffer, chosen so that the raw buffer
// can be copied directly into a 1-byte-per-pixel texture format such as
// RGB332.
const (
	PixelOff = 0x00
	PixelOn  = 0xFF
)

// Screen is a monochrome framebuffer of ScreenWidth x ScreenHeight pixels,
// stored row-major with one byte per pixel. The zero value is an all-off
// screen. It is a plain value type, assigning it copies the frame.
type Screen struct {
	pixels [ScreenWidth * ScreenHeight]uint8
}

// Clear switches every pixel off.
func (s *Screen) Clear() {
	for i := range s.pixels {
		s.pixels[i] = PixelOff
	}
}

// Row returns the y-th row of pixels as a contiguous slice, panicking if y is
// out of range. The slice aliases the framebuffer.
func (s *Screen) Row(y int) []uint8 {
	return s.pixels[y*ScreenWidth : (y+1)*ScreenWidth]
}

// Toggle XORs the pixel at (x, y) with the foreground color and reports
// whether the pixel was on before, which is the collision condition of the
// draw instruction.
func (s *Screen) Toggle(x, y int) bool {
	px := &s.pixels[y*ScreenWidth+x]
	wasOn := *px == PixelOn
	*px ^= PixelOn
	return wasOn
}

// Merge switches on every pixel that is on in other, leaving all other
// pixels untouched. Presentation layers use it to blend two consecutive
// frames into a ghosting effect that reduces flicker.
func (s *Screen) Merge(other *Screen) {
	for i, px := range other.pixels {
		if px == PixelOn {
			s.pixels[i] = PixelOn
		}
	}
}

// Bytes returns the raw row-major pixel data, one PixelOff or PixelOn byte
// per pixel, suitable for a direct copy into a packed 1-byte-per-pixel
// texture. The slice aliases the framebuffer.
func (s *Screen) Bytes() []uint8 {
	return s.pixels[:]
}

// String renders the frame with "O" for on and "." for off, one line per
// row.
func (s *Screen) String() string {
	var b strings.Builder
	for y := 0; y < ScreenHeight; y++ {
		for _, px := range s.Row(y) {
			if px == PixelOn {
				b.WriteByte('O')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
