// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ik5/audedit/internal/sample"
)

// Reverse returns b with its frames in reverse order. Channel order within
// a frame is kept, so applying Reverse twice yields the original bytes.
func Reverse(b *Buffer) *Buffer {
	frame := b.FrameSize()
	n := b.Frames()
	out := make([]byte, len(b.data))

	for i := range n {
		copy(out[(n-1-i)*frame:(n-i)*frame], b.data[i*frame:(i+1)*frame])
	}

	return b.derive(out)
}

// ApplyGain scales every sample by db decibels. Results are rounded to the
// nearest integer and saturate at full scale of the sample width; nothing
// wraps around. A gain of 0 dB returns an identical copy.
func ApplyGain(b *Buffer, db float64) (*Buffer, error) {
	if math.IsNaN(db) || math.IsInf(db, 0) {
		return nil, fmt.Errorf("%w: %v dB", ErrInvalidGain, db)
	}

	if db == 0 {
		return b.derive(b.Data()), nil
	}

	gain := sample.DecibelsToGain(db)
	width := b.bytesPerSample
	out := make([]byte, len(b.data))

	for off := 0; off < len(b.data); off += width {
		v := sample.Decode(b.data[off:], width)
		sample.Encode(out[off:], width, sample.Clamp(float64(v)*gain, width))
	}

	return b.derive(out), nil
}

// MaxFrames caps the length of buffers produced by ChangeSpeed. It holds
// a little over 100 minutes at 44.1 kHz.
const MaxFrames = 1 << 28

// ChangeSpeed plays b back factor times faster by varispeed resampling:
// the sample rate stays the same, the duration becomes roughly
// duration/factor and pitch moves with the speed.
func ChangeSpeed(b *Buffer, factor float64) (*Buffer, error) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFactor, factor)
	}

	if want := math.Ceil(float64(b.Frames()) / factor); want > MaxFrames {
		return nil, fmt.Errorf("%w: %v would need %.0f frames, limit is %d", ErrInvalidFactor, factor, want, MaxFrames)
	}

	if factor == 1 {
		return b.derive(b.Data()), nil
	}

	out, err := Collect(NewVarispeed(b.Source(), factor), b.bytesPerSample)
	if errors.Is(err, ErrEmptyBuffer) {
		return nil, fmt.Errorf("%w: %v leaves no frames", ErrInvalidFactor, factor)
	}
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Slice returns the part of b between start (inclusive) and end
// (exclusive). Offsets are rounded to the nearest frame.
func Slice(b *Buffer, start, end time.Duration) (*Buffer, error) {
	if start < 0 || start >= end || end > b.Duration() {
		return nil, fmt.Errorf("%w: [%v, %v) of %v", ErrInvalidRange, start, end, b.Duration())
	}

	first := b.frameAt(start)
	last := min(b.frameAt(end), b.Frames())
	if first >= last {
		return nil, fmt.Errorf("%w: [%v, %v) is shorter than one frame", ErrInvalidRange, start, end)
	}

	frame := b.FrameSize()
	out := make([]byte, (last-first)*frame)
	copy(out, b.data[first*frame:last*frame])

	return b.derive(out), nil
}
