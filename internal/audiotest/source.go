// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"

	"github.com/ik5/audedit/audio"
)

// Waveform returns the value of channel ch at frame i, within [-1, 1].
type Waveform func(i, ch int) float32

// Source is an audio.Source that synthesizes a fixed number of frames.
// Reads always cover whole frames, and the last frames arrive together
// with io.EOF the way the format decoders report it.
type Source struct {
	rate     int
	channels int
	frames   int
	depth    int
	pos      int
	wave     Waveform
}

var (
	_ audio.Source     = (*Source)(nil)
	_ audio.BitDepther = (*Source)(nil)
)

// NewSource returns frames frames of wave.
func NewSource(rate, channels, frames int, wave Waveform) *Source {
	return &Source{rate: rate, channels: channels, frames: frames, wave: wave}
}

// NewSineSource is a full-scale sine of freq Hz, identical on every channel.
func NewSineSource(rate, channels, frames int, freq float64) *Source {
	step := 2 * math.Pi * freq / float64(rate)
	return NewSource(rate, channels, frames, func(i, _ int) float32 {
		return float32(math.Sin(step * float64(i)))
	})
}

// NewConstantSource holds v on every channel.
func NewConstantSource(rate, channels, frames int, v float32) *Source {
	return NewSource(rate, channels, frames, func(int, int) float32 { return v })
}

// WithBitDepth makes the source report bits as its native depth, so
// audio.NativeWidth picks it up. Zero means unknown.
func (s *Source) WithBitDepth(bits int) *Source {
	s.depth = bits
	return s
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BitDepth() int   { return s.depth }
func (s *Source) BufSize() int    { return 4096 }
func (s *Source) Close() error    { return nil }

// Rewind starts the stream over.
func (s *Source) Rewind() { s.pos = 0 }

// ReadSamples fills dst with whole frames. A dst shorter than one frame is
// audio.ErrInvalidDstSize.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) < s.channels {
		return 0, audio.ErrInvalidDstSize
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)
	for i := range n {
		for c := range s.channels {
			dst[i*s.channels+c] = s.wave(s.pos+i, c)
		}
	}
	s.pos += n

	if s.pos >= s.frames {
		return n * s.channels, io.EOF
	}
	return n * s.channels, nil
}
