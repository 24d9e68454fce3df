package chip8

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestScreenToggle(t *testing.T) {
	var s Screen

	assert.False(t, s.Toggle(3, 7))
	assert.Equal(t, uint8(PixelOn), s.Row(7)[3])

	// on XOR on = off, and the previous state is reported
	assert.True(t, s.Toggle(3, 7))
	assert.Equal(t, uint8(PixelOff), s.Row(7)[3])
}

func TestScreenClear(t *testing.T) {
	var s Screen
	s.Toggle(0, 0)
	s.Toggle(ScreenWidth-1, ScreenHeight-1)

	s.Clear()

	for _, px := range s.Bytes() {
		assert.Equal(t, uint8(PixelOff), px)
	}
}

func TestScreenRow(t *testing.T) {
	var s Screen
	s.Toggle(5, 2)

	row := s.Row(2)
	assert.Len(t, row, ScreenWidth)
	assert.Equal(t, uint8(PixelOn), row[5])

	// rows are contiguous views into the packed buffer
	row[6] = PixelOn
	assert.Equal(t, uint8(PixelOn), s.Bytes()[2*ScreenWidth+6])
}

func TestScreenBytes(t *testing.T) {
	var s Screen

	buf := s.Bytes()
	assert.Len(t, buf, ScreenWidth*ScreenHeight)

	s.Toggle(1, 0)
	assert.Equal(t, uint8(PixelOn), buf[1])
	assert.Equal(t, uint8(PixelOff), buf[0])
}

func TestScreenMerge(t *testing.T) {
	var current, ghost Screen
	ghost.Toggle(0, 0)
	current.Toggle(1, 0)

	ghost.Merge(&current)

	assert.Equal(t, uint8(PixelOn), ghost.Row(0)[0])
	assert.Equal(t, uint8(PixelOn), ghost.Row(0)[1])
	assert.Equal(t, uint8(PixelOff), ghost.Row(0)[2])

	// merging never switches pixels off
	current.Toggle(1, 0)
	ghost.Merge(&current)
	assert.Equal(t, uint8(PixelOn), ghost.Row(0)[1])
}

func TestScreenString(t *testing.T) {
	var s Screen
	s.Toggle(1, 0)

	lines := strings.Split(strings.TrimRight(s.String(), "\n"), "\n")
	assert.Len(t, lines, ScreenHeight)
	assert.Equal(t, ".O"+strings.Repeat(".", ScreenWidth-2), lines[0])
}
