// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/internal/sample"
)

// blockSize is the number of frames per FLAC frame.
const blockSize = 4096

// maxChannels is the most independent channels a FLAC frame can carry.
const maxChannels = 8

// Encoder writes lossless FLAC with verbatim subframes. 8, 16 and 24-bit
// buffers are stored at their own width.
type Encoder struct{}

func (Encoder) Encode(w io.WriteSeeker, b *audio.Buffer) error {
	width := b.BytesPerSample()
	if width > 3 {
		return fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, width*8)
	}
	channels := b.Channels()
	if channels > maxChannels {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedFlacLayout, channels)
	}

	bps := uint8(width * 8)
	info := &meta.StreamInfo{
		BlockSizeMin:  blockSize,
		BlockSizeMax:  blockSize,
		SampleRate:    uint32(b.SampleRate()),
		NChannels:     uint8(channels),
		BitsPerSample: bps,
		NSamples:      uint64(b.Frames()),
	}

	// hide any Close method; the caller owns w
	enc, err := flac.NewEncoder(struct{ io.WriteSeeker }{w}, info)
	if err != nil {
		return fmt.Errorf("starting flac stream: %w", err)
	}

	data := b.Data()
	frameSize := b.FrameSize()
	total := b.Frames()

	subframes := make([]*frame.Subframe, channels)
	for c := range subframes {
		subframes[c] = &frame.Subframe{
			SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
			Samples:   make([]int32, 0, blockSize),
		}
	}

	for num, start := 0, 0; start < total; num, start = num+1, start+blockSize {
		n := min(blockSize, total-start)

		for c, sub := range subframes {
			sub.Samples = sub.Samples[:n]
			sub.NSamples = n
			for i := range n {
				off := (start+i)*frameSize + c*width
				sub.Samples[i] = sample.Decode(data[off:], width)
			}
		}

		f := &frame.Frame{
			Header: frame.Header{
				HasFixedBlockSize: true,
				BlockSize:         uint16(n),
				SampleRate:        uint32(b.SampleRate()),
				Channels:          frame.Channels(channels - 1),
				BitsPerSample:     bps,
				Num:               uint64(num),
			},
			Subframes: subframes,
		}

		if err := enc.WriteFrame(f); err != nil {
			return fmt.Errorf("writing flac frame %d: %w", num, err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing flac stream: %w", err)
	}

	return nil
}
