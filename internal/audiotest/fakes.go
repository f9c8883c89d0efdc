// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/ik5/audedit/audio"
)

// ErrUnknownFile is returned by FakeCodec for paths it holds no buffer for.
var ErrUnknownFile = errors.New("audiotest: unknown file")

// Saved is one buffer handed to FakeCodec.Encode.
type Saved struct {
	Buffer *audio.Buffer
	Format string
}

// FakeCodec decodes from an in-memory table and records encodes. Encode
// also writes a placeholder file so the path exists afterwards.
type FakeCodec struct {
	mtx sync.Mutex

	files map[string]*audio.Buffer
	saved map[string]Saved

	// DecodeErr and EncodeErr, when set, fail every call.
	DecodeErr error
	EncodeErr error

	Decodes int
}

func NewFakeCodec() *FakeCodec {
	return &FakeCodec{
		files: make(map[string]*audio.Buffer),
		saved: make(map[string]Saved),
	}
}

// Add makes path decode to b.
func (c *FakeCodec) Add(path string, b *audio.Buffer) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.files[path] = b
}

func (c *FakeCodec) Decode(path string) (*audio.Buffer, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.Decodes++
	if c.DecodeErr != nil {
		return nil, c.DecodeErr
	}

	b, ok := c.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFile, path)
	}
	return b, nil
}

func (c *FakeCodec) Encode(b *audio.Buffer, path, format string) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.EncodeErr != nil {
		return c.EncodeErr
	}

	if err := os.WriteFile(path, []byte(format), 0o644); err != nil {
		return fmt.Errorf("%w", err)
	}

	c.saved[path] = Saved{Buffer: b, Format: format}
	return nil
}

// SavedAt returns what was last encoded to path.
func (c *FakeCodec) SavedAt(path string) (Saved, bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	s, ok := c.saved[path]
	return s, ok
}

// Started records the arguments of one FakePlayer.Start call.
type Started struct {
	Data           []byte
	SampleRate     int
	Channels       int
	BytesPerSample int
	Handle         *FakeHandle
}

// FakePlayer hands out FakeHandles that play until stopped.
type FakePlayer struct {
	mtx sync.Mutex

	started []Started

	// StartErr fails every Start; StopErr is given to new handles.
	StartErr error
	StopErr  error
}

func (p *FakePlayer) Start(data []byte, sampleRate, channels, bytesPerSample int) (audio.Handle, error) {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.StartErr != nil {
		return nil, p.StartErr
	}

	h := &FakeHandle{playing: true, stopErr: p.StopErr}
	p.started = append(p.started, Started{
		Data:           bytes.Clone(data),
		SampleRate:     sampleRate,
		Channels:       channels,
		BytesPerSample: bytesPerSample,
		Handle:         h,
	})

	return h, nil
}

// Started lists every successful Start in call order.
func (p *FakePlayer) Started() []Started {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	out := make([]Started, len(p.started))
	copy(out, p.started)
	return out
}

// Last returns the most recent Start, if any.
func (p *FakePlayer) Last() (Started, bool) {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if len(p.started) == 0 {
		return Started{}, false
	}
	return p.started[len(p.started)-1], true
}

// FakeHandle is a playback session that never finishes on its own.
type FakeHandle struct {
	mtx     sync.Mutex
	playing bool
	stops   int
	stopErr error
}

func (h *FakeHandle) IsPlaying() bool {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	return h.playing
}

func (h *FakeHandle) Stop() error {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	h.playing = false
	h.stops++
	return h.stopErr
}

// Finish simulates the end of the material.
func (h *FakeHandle) Finish() {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	h.playing = false
}

// Stops counts calls to Stop.
func (h *FakeHandle) Stops() int {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	return h.stops
}
