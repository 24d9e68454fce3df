// Package audio emits the beep tone while the machine's sound timer is
// running. It contains no interpreter logic.
package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/ebitengine/oto/v3"
)

// Waveform selects the shape of the beep tone.
type Waveform string

// The supported waveforms.
const (
	Sawtooth Waveform = "sawtooth"
	Sine     Waveform = "sine"
	Square   Waveform = "square"
	Triangle Waveform = "triangle"
)

// ParseWaveform converts a command line value into a Waveform.
func ParseWaveform(name string) (Waveform, error) {
	switch waveform := Waveform(strings.ToLower(name)); waveform {
	case Sawtooth, Sine, Square, Triangle:
		return waveform, nil
	default:
		return "", fmt.Errorf("unknown waveform '%s'", name)
	}
}

const (
	sampleRate    = 22050
	toneFrequency = 440.0
)

// Beeper plays a fixed tone through the default audio device whenever the
// sound timer is nonzero.
type Beeper struct {
	ctx    *oto.Context
	player *oto.Player
}

// NewBeeper opens the audio device and prepares a paused tone player.
func NewBeeper(waveform Waveform) (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	source := &sampler{
		step: toneFrequency / sampleRate,
		wave: waveFunc(waveform),
	}
	return &Beeper{
		ctx:    ctx,
		player: ctx.NewPlayer(source),
	}, nil
}

// Update resumes the tone while the sound timer is running and pauses it
// otherwise. The driving loop calls it once per frame.
func (b *Beeper) Update(soundTimer uint8) {
	if soundTimer > 0 {
		if !b.player.IsPlaying() {
			b.player.Play()
		}
	} else if b.player.IsPlaying() {
		b.player.Pause()
	}
}

// Close stops playback and releases the player.
func (b *Beeper) Close() error {
	return b.player.Close()
}

// sampler generates an endless mono float32 stream of the selected waveform.
type sampler struct {
	phase float32
	step  float32
	wave  func(phase float32) float32
}

func (s *sampler) Read(p []byte) (int, error) {
	if len(p) < 4 {
		return 0, io.ErrShortBuffer
	}
	n := len(p) / 4 * 4
	for i := 0; i < n; i += 4 {
		sample := s.wave(s.phase)
		binary.LittleEndian.PutUint32(p[i:], math.Float32bits(sample))
		s.phase += s.step
		if s.phase >= 1 {
			s.phase -= 1
		}
	}
	return n, nil
}

// waveFunc maps a phase in [0, 1) to an amplitude in [-1, 1].
func waveFunc(waveform Waveform) func(float32) float32 {
	switch waveform {
	case Sawtooth:
		return func(phase float32) float32 {
			if phase < 0.5 {
				return 2 * phase
			}
			return 2*phase - 2
		}
	case Sine:
		return func(phase float32) float32 {
			return float32(math.Sin(2 * math.Pi * float64(phase)))
		}
	case Square:
		return func(phase float32) float32 {
			if phase < 0.5 {
				return 1
			}
			return -1
		}
	default: // Triangle
		return func(phase float32) float32 {
			if phase < 0.5 {
				return 4*phase - 1
			}
			return -4*phase + 3
		}
	}
}
