// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Convert adapts b to another sample rate, channel count and sample width.
//
// This builds a processing pipeline:
//  1. Mixes channels to the target count (before resampling, so a downmix
//     resamples fewer samples)
//  2. Resamples to sampleRate using cubic interpolation
//  3. Collects the samples at the target width
//
// When the format already matches, b itself is returned.
func Convert(b *Buffer, sampleRate, channels, bytesPerSample int) (*Buffer, error) {
	if b.sampleRate == sampleRate && b.channels == channels && b.bytesPerSample == bytesPerSample {
		return b, nil
	}

	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: rate=%d channels=%d", ErrInvalidFormat, sampleRate, channels)
	}

	src := b.Source()
	if b.channels != channels {
		src = NewChannelMixer(src, channels)
	}
	if b.sampleRate != sampleRate {
		src = NewResampler(src, sampleRate)
	}

	out, err := Collect(src, bytesPerSample)
	if err != nil {
		return nil, fmt.Errorf("converting %v: %w", b, err)
	}

	return out, nil
}
