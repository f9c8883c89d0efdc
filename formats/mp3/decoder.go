// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/internal/sample"
)

// bitDepth is the width of the PCM go-mp3 produces.
const bitDepth = 16

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	channels   int
	buf        []byte
	// pending bytes of a split frame wait at the front of buf
	pending int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BitDepth() int   { return bitDepth }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 } // return sample capacity, not bytes

// ReadSamples hands out whole frames only. go-mp3 may split a frame across
// reads; the head of it is kept until the rest arrives.
func (s *source) ReadSamples(dst []float32) (int, error) {
	frameSize := s.channels * 2
	want := len(dst) / s.channels * frameSize
	if want == 0 {
		return 0, nil
	}
	if cap(s.buf) < want {
		grown := make([]byte, want)
		copy(grown, s.buf[:s.pending])
		s.buf = grown
	}
	s.buf = s.buf[:want]

	n, err := s.dec.Read(s.buf[s.pending:])
	n += s.pending
	whole := n - n%frameSize

	samples := sample.BytesToFloats(dst, s.buf[:whole], 2)
	s.pending = copy(s.buf, s.buf[whole:n])

	if err == io.EOF {
		// a frame cut short by the end of the stream is dropped
		s.pending = 0
	}

	return samples, err
}

// Decoder reads MP3 streams into 16-bit stereo sources.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	// go-mp3 outputs stereo (2 channels) for most MP3 files
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   2,
		buf:        make([]byte, 8192),
	}, nil
}

// IsMP3 reports whether data starts with an ID3v2 tag or an MPEG audio
// frame sync.
func IsMP3(data []byte) bool {
	if len(data) >= 3 && string(data[:3]) == "ID3" {
		return true
	}
	return len(data) >= 2 && data[0] == 0xff && data[1]&0xe0 == 0xe0
}
