// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/ik5/audedit/internal/sample"
)

// Buffer is one fully decoded clip: signed little-endian interleaved PCM
// plus its format. A Buffer is never modified after construction; every
// transformation returns a new one.
type Buffer struct {
	data           []byte
	sampleRate     int
	channels       int
	bytesPerSample int
}

// NewBuffer validates the format and copies data into a new Buffer.
func NewBuffer(data []byte, sampleRate, channels, bytesPerSample int) (*Buffer, error) {
	if err := validate(len(data), sampleRate, channels, bytesPerSample); err != nil {
		return nil, err
	}

	return &Buffer{
		data:           bytes.Clone(data),
		sampleRate:     sampleRate,
		channels:       channels,
		bytesPerSample: bytesPerSample,
	}, nil
}

func validate(size, sampleRate, channels, bytesPerSample int) error {
	if sampleRate <= 0 || channels <= 0 || !sample.ValidWidth(bytesPerSample) {
		return fmt.Errorf("%w: rate=%d channels=%d width=%d",
			ErrInvalidFormat, sampleRate, channels, bytesPerSample)
	}
	if size == 0 {
		return ErrEmptyBuffer
	}
	if size%(channels*bytesPerSample) != 0 {
		return fmt.Errorf("%w: %d bytes, frame size %d",
			ErrUnalignedData, size, channels*bytesPerSample)
	}
	return nil
}

// derive builds a buffer with b's format around data it takes ownership of.
func (b *Buffer) derive(data []byte) *Buffer {
	return &Buffer{
		data:           data,
		sampleRate:     b.sampleRate,
		channels:       b.channels,
		bytesPerSample: b.bytesPerSample,
	}
}

// Data returns a copy of the raw sample bytes.
func (b *Buffer) Data() []byte { return bytes.Clone(b.data) }

func (b *Buffer) SampleRate() int     { return b.sampleRate }
func (b *Buffer) Channels() int       { return b.channels }
func (b *Buffer) BytesPerSample() int { return b.bytesPerSample }

// Len is the size of the sample data in bytes.
func (b *Buffer) Len() int { return len(b.data) }

// FrameSize is the number of bytes holding one sample for every channel.
func (b *Buffer) FrameSize() int { return b.channels * b.bytesPerSample }

func (b *Buffer) Frames() int { return len(b.data) / b.FrameSize() }

func (b *Buffer) Duration() time.Duration {
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.sampleRate)
}

// frameAt maps a time offset to the nearest frame index.
func (b *Buffer) frameAt(d time.Duration) int {
	return int(math.Round(d.Seconds() * float64(b.sampleRate)))
}

// Equal reports whether both buffers hold the same format and samples.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.sampleRate == o.sampleRate &&
		b.channels == o.channels &&
		b.bytesPerSample == o.bytesPerSample &&
		bytes.Equal(b.data, o.data)
}

func (b *Buffer) String() string {
	return fmt.Sprintf("%d Hz, %d ch, %d-bit, %v",
		b.sampleRate, b.channels, b.bytesPerSample*8, b.Duration())
}

// Source streams the buffer as normalized float32 samples.
func (b *Buffer) Source() Source {
	return &bufferSource{buf: b}
}

type bufferSource struct {
	buf *Buffer
	off int
}

func (s *bufferSource) SampleRate() int { return s.buf.sampleRate }
func (s *bufferSource) Channels() int   { return s.buf.channels }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) BitDepth() int   { return s.buf.bytesPerSample * 8 }
func (s *bufferSource) Close() error    { return nil }

// ReadSamples only hands out whole frames and reports io.EOF once nothing
// is left.
func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	width := s.buf.bytesPerSample
	frames := len(dst) / s.buf.channels
	remaining := (len(s.buf.data) - s.off) / s.buf.FrameSize()

	if remaining == 0 {
		return 0, io.EOF
	}
	if frames == 0 {
		return 0, nil
	}

	frames = min(frames, remaining)
	end := s.off + frames*s.buf.FrameSize()
	n := sample.BytesToFloats(dst, s.buf.data[s.off:end], width)
	s.off = end

	return n, nil
}

// Collect drains src and packs its samples into a Buffer with
// bytesPerSample width. A trailing partial frame is dropped. Collect does
// not close src.
func Collect(src Source, bytesPerSample int) (*Buffer, error) {
	channels := src.Channels()
	if src.SampleRate() <= 0 || channels <= 0 || !sample.ValidWidth(bytesPerSample) {
		return nil, fmt.Errorf("%w: rate=%d channels=%d width=%d",
			ErrInvalidFormat, src.SampleRate(), channels, bytesPerSample)
	}

	bufSize := max(src.BufSize(), 1024)
	bufSize -= bufSize % channels
	if bufSize == 0 {
		bufSize = channels
	}
	buf := make([]float32, bufSize)

	var data []byte
	emptyReads := 0

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			emptyReads = 0
			start := len(data)
			data = append(data, make([]byte, n*bytesPerSample)...)
			sample.FloatsToBytes(data[start:], buf[:n], bytesPerSample)
		} else if err == nil {
			emptyReads++
			if emptyReads > 100 {
				return nil, io.ErrNoProgress
			}
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	frameSize := channels * bytesPerSample
	data = data[:len(data)-len(data)%frameSize]
	if len(data) == 0 {
		return nil, ErrEmptyBuffer
	}

	return &Buffer{
		data:           data,
		sampleRate:     src.SampleRate(),
		channels:       channels,
		bytesPerSample: bytesPerSample,
	}, nil
}

// NativeWidth returns the sample width in bytes a source should be
// collected at: its own bit depth rounded up to whole bytes, or 2 when it
// does not report one.
func NativeWidth(src Source) int {
	bd, ok := src.(BitDepther)
	if !ok || bd.BitDepth() <= 0 {
		return 2
	}
	return min((bd.BitDepth()+7)/8, 4)
}
