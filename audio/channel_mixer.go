// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMixer converts the channel count of a source. Downmixing averages
// the input channels that fold onto each output channel (input i feeds
// output i % channels); upmixing repeats input channels cyclically.
type ChannelMixer struct {
	src      Source
	channels int
	tmp      []float32
}

// NewChannelMixer converts src to channels channels.
func NewChannelMixer(src Source, channels int) *ChannelMixer {
	return &ChannelMixer{
		src:      src,
		channels: channels,
		tmp:      make([]float32, 4096),
	}
}

// NewMonoMixer averages all channels of src into one.
func NewMonoMixer(src Source) *ChannelMixer {
	return NewChannelMixer(src, 1)
}

func (m *ChannelMixer) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMixer) Channels() int   { return m.channels }
func (m *ChannelMixer) BufSize() int    { return m.src.BufSize() }

func (m *ChannelMixer) BitDepth() int {
	if bd, ok := m.src.(BitDepther); ok {
		return bd.BitDepth()
	}
	return 0
}

func (m *ChannelMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *ChannelMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	in := m.src.Channels()
	if in == m.channels {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / m.channels
	if frames == 0 {
		return 0, ErrInvalidDstSize
	}
	samplesNeeded := frames * in

	// Grow tmp buffer if needed (but don't shrink to avoid thrashing)
	if cap(m.tmp) < samplesNeeded {
		m.tmp = make([]float32, max(samplesNeeded, 8192))
	}
	m.tmp = m.tmp[:samplesNeeded]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	frames = n / in

	switch {
	case m.channels == 1 && in == 2:
		for f := range frames {
			idx := f << 1
			dst[f] = (m.tmp[idx] + m.tmp[idx+1]) * 0.5
		}
	case in == 1:
		for f := range frames {
			v := m.tmp[f]
			base := f * m.channels
			for c := range m.channels {
				dst[base+c] = v
			}
		}
	case in < m.channels:
		for f := range frames {
			src := m.tmp[f*in : (f+1)*in]
			base := f * m.channels
			for c := range m.channels {
				dst[base+c] = src[c%in]
			}
		}
	default:
		m.downmix(dst, frames, in)
	}

	return frames * m.channels, err
}

func (m *ChannelMixer) downmix(dst []float32, frames, in int) {
	out := m.channels
	// how many inputs fold onto each output channel
	counts := make([]float32, out)
	for i := range in {
		counts[i%out]++
	}

	for f := range frames {
		src := m.tmp[f*in : (f+1)*in]
		frame := dst[f*out : (f+1)*out]
		clear(frame)
		for i, v := range src {
			frame[i%out] += v
		}
		for c := range frame {
			frame[c] /= counts[c]
		}
	}
}
