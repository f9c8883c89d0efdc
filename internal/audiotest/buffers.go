// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/internal/sample"
)

// MustBuffer is audio.NewBuffer for fixtures; it panics on invalid input.
func MustBuffer(data []byte, sampleRate, channels, bytesPerSample int) *audio.Buffer {
	b, err := audio.NewBuffer(data, sampleRate, channels, bytesPerSample)
	if err != nil {
		panic(fmt.Sprintf("audiotest: %v", err))
	}
	return b
}

// PCM16 packs values as 16-bit little-endian samples.
func PCM16(values ...int16) []byte {
	out := make([]byte, len(values)*2)
	for i, v := range values {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(v))
	}
	return out
}

// Samples16 unpacks a 16-bit buffer.
func Samples16(b *audio.Buffer) []int16 {
	data := b.Data()
	out := make([]int16, len(data)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
	}
	return out
}

// SineBuffer builds a buffer holding a half-scale sine tone of freq Hz on
// every channel. Channel c is phase shifted by c quarter turns so channels
// are distinguishable.
func SineBuffer(sampleRate, channels, bytesPerSample int, d time.Duration, freq float64) *audio.Buffer {
	frames := int(math.Round(d.Seconds() * float64(sampleRate)))
	data := make([]byte, frames*channels*bytesPerSample)

	off := 0
	for f := range frames {
		t := float64(f) / float64(sampleRate)
		for c := range channels {
			v := 0.5 * math.Sin(2*math.Pi*freq*t+float64(c)*math.Pi/2)
			sample.Encode(data[off:], bytesPerSample, sample.FromFloat32(float32(v), bytesPerSample))
			off += bytesPerSample
		}
	}

	return MustBuffer(data, sampleRate, channels, bytesPerSample)
}

// RampBuffer builds a 16-bit mono buffer whose frame i holds the value i.
func RampBuffer(sampleRate, frames int) *audio.Buffer {
	values := make([]int16, frames)
	for i := range values {
		values[i] = int16(i)
	}
	return MustBuffer(PCM16(values...), sampleRate, 1, 2)
}
