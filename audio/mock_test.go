package audio

import (
	"io"
	"math"
)

// genSource produces frames frames of fn(frame, channel). It only hands
// out whole frames, like the decoders do.
type genSource struct {
	rate     int
	channels int
	frames   int
	pos      int
	fn       func(frame, ch int) float32
}

func newMockSource(rate, channels, frames int, fn func(frame, ch int) float32) *genSource {
	return &genSource{rate: rate, channels: channels, frames: frames, fn: fn}
}

func newSilentSource(rate, channels, frames int) *genSource {
	return newConstantSource(rate, channels, frames, 0)
}

func newConstantSource(rate, channels, frames int, v float32) *genSource {
	return newMockSource(rate, channels, frames, func(int, int) float32 { return v })
}

// newSineSource is a full-scale sine of freq Hz on every channel.
func newSineSource(rate, channels, frames int, freq float64) *genSource {
	step := 2 * math.Pi * freq / float64(rate)
	return newMockSource(rate, channels, frames, func(i, _ int) float32 {
		return float32(math.Sin(step * float64(i)))
	})
}

func (g *genSource) SampleRate() int { return g.rate }
func (g *genSource) Channels() int   { return g.channels }
func (g *genSource) BufSize() int    { return 4096 }
func (g *genSource) Close() error    { return nil }
func (g *genSource) Reset()          { g.pos = 0 }

func (g *genSource) ReadSamples(dst []float32) (int, error) {
	n := min(len(dst)/g.channels, g.frames-g.pos)
	for i := range n {
		for c := range g.channels {
			dst[i*g.channels+c] = g.fn(g.pos+i, c)
		}
	}
	g.pos += n

	if g.pos >= g.frames {
		return n * g.channels, io.EOF
	}
	return n * g.channels, nil
}

// errSource fails every read with err.
type errSource struct {
	genSource
	err error
}

func (e *errSource) ReadSamples([]float32) (int, error) { return 0, e.err }

// drain reads src until io.EOF and returns every sample produced.
func drain(src Source, chunk int) ([]float32, error) {
	buf := make([]float32, chunk)
	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
	}
}
