// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"

	"github.com/ik5/audedit/internal/sample"
)

// posEpsilon absorbs float error when an output position lands exactly on
// a source frame.
const posEpsilon = 1e-9

// Resampler streams from src at a different playback rate using cubic
// interpolation. Works on interleaved samples; preserves channel count.
// Includes basic anti-aliasing filtering when reading faster than the
// source (downsampling or speeding up).
//
// Output frame k is taken at source position k*ratio, so a source of n
// frames yields ceil(n/ratio) frames.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames consumed per output frame
	channels int

	// Window of 4 frames for cubic interpolation:
	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames [4][]float32
	// past marks window slots padded beyond the last source frame
	past [4]bool

	primed bool
	cur    int64 // source index held in frames[1]
	out    int64 // output frames produced so far

	srcBuf []float32
	eof    bool

	// One-pole low-pass state for anti-aliasing
	useFilter   bool
	filterAlpha float32
	filterState []float32
}

// NewResampler converts src to dstRate.
func NewResampler(src Source, dstRate int) *Resampler {
	return newResampler(src, float64(src.SampleRate())/float64(dstRate), dstRate)
}

// NewVarispeed plays src back factor times faster while keeping its sample
// rate, the way a tape machine changes speed: duration scales by 1/factor
// and pitch by factor.
func NewVarispeed(src Source, factor float64) *Resampler {
	return newResampler(src, factor, src.SampleRate())
}

func newResampler(src Source, ratio float64, dstRate int) *Resampler {
	channels := src.Channels()
	useFilter := ratio > 1.0

	r := &Resampler{
		src:         src,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		srcBuf:      make([]float32, channels),
		useFilter:   useFilter,
		filterState: make([]float32, channels),
	}

	if useFilter {
		r.filterAlpha = lowPassAlpha(ratio)
	}

	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

// BitDepth forwards the bit depth of the source, when it reports one.
func (r *Resampler) BitDepth() int {
	if bd, ok := r.src.(BitDepther); ok {
		return bd.BitDepth()
	}
	return 0
}

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame reads the next source frame into dst. It returns false once
// the source is exhausted.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	for empty := 0; !r.eof; empty++ {
		n, err := r.src.ReadSamples(r.srcBuf)
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}

		if n == r.channels {
			copy(dst, r.srcBuf)
			r.lowPass(dst)
			return true, nil
		}

		if empty > 100 {
			return false, io.ErrNoProgress
		}
	}

	return false, nil
}

// lowPassAlpha returns the one-pole coefficient whose cutoff sits at the
// output Nyquist, fs/(2*ratio). Mild speed-ups keep most of the top end.
func lowPassAlpha(ratio float64) float32 {
	return float32(1 - math.Exp(-math.Pi/ratio))
}

// lowPass applies y[n] = alpha * x[n] + (1-alpha) * y[n-1] per channel.
func (r *Resampler) lowPass(frame []float32) {
	if !r.useFilter {
		return
	}
	for c := range r.channels {
		frame[c] = r.filterAlpha*frame[c] + (1-r.filterAlpha)*r.filterState[c]
		r.filterState[c] = frame[c]
	}
}

// fill loads slot i with the next source frame, or pads it with a copy of
// slot i-1 once the source ran dry.
func (r *Resampler) fill(i int) error {
	ok, err := r.readFrame(r.frames[i])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.frames[i], r.frames[i-1])
	}
	r.past[i] = !ok || r.past[i-1]
	return nil
}

// prime loads the initial window, duplicating the first frame as t-1.
func (r *Resampler) prime() error {
	if r.useFilter {
		// Seed the filter with the first frame to avoid a warm-up transient
		n, err := r.src.ReadSamples(r.srcBuf)
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return fmt.Errorf("%w", err)
		}
		if n != r.channels {
			return io.EOF
		}
		copy(r.filterState, r.srcBuf)
		copy(r.frames[1], r.srcBuf)
	} else {
		ok, err := r.readFrame(r.frames[1])
		if err != nil {
			return err
		}
		if !ok {
			return io.EOF
		}
	}

	copy(r.frames[0], r.frames[1])
	for i := 2; i < 4; i++ {
		if err := r.fill(i); err != nil {
			return err
		}
	}

	r.primed = true
	return nil
}

// advance shifts the window one source frame forward.
func (r *Resampler) advance() error {
	head := r.frames[0]
	copy(r.frames[:3], r.frames[1:])
	r.frames[3] = head
	copy(r.past[:3], r.past[1:])

	r.cur++
	return r.fill(3)
}

// ReadSamples produces dst samples at the output rate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		pos := float64(r.out) * r.ratio
		idx := int64(pos + posEpsilon)

		for r.cur < idx && !r.past[1] {
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		// t0 is beyond the last source frame
		if r.past[1] {
			return written * r.channels, io.EOF
		}

		alpha := float32(max(pos-float64(idx), 0))
		base := written * r.channels

		for c := range r.channels {
			dst[base+c] = sample.CubicInterpolate(
				r.frames[0][c], r.frames[1][c], r.frames[2][c], r.frames[3][c], alpha)
		}

		written++
		r.out++
	}

	return written * r.channels, nil
}
