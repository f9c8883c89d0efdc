// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/internal/sample"
)

// frameReader is the part of flac.Stream the source needs, to allow testing
type frameReader interface {
	ParseNext() (*frame.Frame, error)
}

type source struct {
	stream     frameReader
	sampleRate int
	channels   int
	bitDepth   int

	// pending holds the interleaved samples of the current frame not yet
	// handed out
	pending []int32
	done    bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BitDepth() int   { return s.bitDepth }
func (s *source) BufSize() int    { return 4096 * s.channels }
func (s *source) Close() error    { return nil }

// next decodes the following frame into pending.
func (s *source) next() error {
	f, err := s.stream.ParseNext()
	if err != nil {
		return err
	}

	if len(f.Subframes) != s.channels {
		return fmt.Errorf("%w: frame has %d channels, stream %d",
			ErrUnsupportedFlacLayout, len(f.Subframes), s.channels)
	}

	n := int(f.BlockSize)
	s.pending = s.pending[:0]
	for i := range n {
		for _, sub := range f.Subframes {
			if i >= len(sub.Samples) {
				return fmt.Errorf("%w: short subframe", ErrUnsupportedFlacLayout)
			}
			s.pending = append(s.pending, sub.Samples[i])
		}
	}

	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, nil
	}

	width := (s.bitDepth + 7) / 8
	// left-align odd depths such as 12 or 20 bits to the container width
	shift := uint(width*8 - s.bitDepth)

	n := 0
	for n < want {
		if len(s.pending) == 0 {
			if s.done {
				break
			}
			err := s.next()
			if errors.Is(err, io.EOF) {
				s.done = true
				break
			}
			if err != nil {
				return n, fmt.Errorf("%w", err)
			}
			continue
		}

		c := min(want-n, len(s.pending))
		for i, v := range s.pending[:c] {
			dst[n+i] = sample.ToFloat32(v<<shift, width)
		}
		s.pending = s.pending[c:]
		n += c
	}

	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Decoder reads FLAC streams through github.com/mewkiz/flac. Frames are
// decoded lazily as samples are read. The returned source reports the
// stream's bit depth.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}

	info := stream.Info
	if info == nil || info.NChannels == 0 || info.SampleRate == 0 {
		return nil, ErrUnsupportedFlacLayout
	}
	if info.BitsPerSample < 4 || info.BitsPerSample > 32 {
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, info.BitsPerSample)
	}

	return &source{
		stream:     stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		bitDepth:   int(info.BitsPerSample),
	}, nil
}

// IsFlac reports whether data starts with the fLaC stream marker.
func IsFlac(data []byte) bool {
	return len(data) >= 4 && bytes.Equal(data[:4], []byte("fLaC"))
}
