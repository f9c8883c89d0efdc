// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/audedit/audio"
)

// deviceWidth is the sample width the oto context is opened with.
const deviceWidth = 2

// oto allows a single context per process. It is opened with the format of
// the first material played and every later Start is adapted to it.
var (
	deviceMtx sync.Mutex
	device    *deviceContext
)

type deviceContext struct {
	ctx        *oto.Context
	sampleRate int
	channels   int
}

// Oto plays buffers through the system audio device.
type Oto struct {
	bufferSize time.Duration
	logger     *slog.Logger
}

// Option configures an Oto player.
type Option func(*Oto)

// WithBufferSize sets the device buffer duration used when the context is
// first opened. Zero lets oto pick.
func WithBufferSize(d time.Duration) Option {
	return func(o *Oto) {
		o.bufferSize = d
	}
}

// WithLogger logs device setup and session changes to l at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(o *Oto) {
		if l != nil {
			o.logger = l
		}
	}
}

// New returns a player. The audio device is not touched until the first
// Start.
func New(opts ...Option) *Oto {
	o := &Oto{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Oto) open(sampleRate, channels int) (*deviceContext, error) {
	deviceMtx.Lock()
	defer deviceMtx.Unlock()

	if device != nil {
		return device, nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   o.bufferSize,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDevice, err)
	}
	<-ready

	device = &deviceContext{ctx: ctx, sampleRate: sampleRate, channels: channels}
	o.logger.Debug("audio device opened", "sample_rate", sampleRate, "channels", channels)

	return device, nil
}

// Start copies data, converts it to the device format when needed and
// starts playing it. It returns once playback has begun.
func (o *Oto) Start(data []byte, sampleRate, channels, bytesPerSample int) (audio.Handle, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	b, err := audio.NewBuffer(data, sampleRate, channels, bytesPerSample)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	dev, err := o.open(sampleRate, channels)
	if err != nil {
		return nil, err
	}

	pcm, err := adapt(b, dev.sampleRate, dev.channels)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("playback starting",
		"source", b.String(),
		"device_rate", dev.sampleRate,
		"device_channels", dev.channels,
	)

	p := dev.ctx.NewPlayer(bytes.NewReader(pcm))
	p.Play()

	return newSession(p), nil
}

// adapt returns the samples of b as 16-bit PCM at the given device rate
// and channel count.
func adapt(b *audio.Buffer, sampleRate, channels int) ([]byte, error) {
	out, err := audio.Convert(b, sampleRate, channels, deviceWidth)
	if err != nil {
		return nil, fmt.Errorf("adapting to device format: %w", err)
	}
	return out.Data(), nil
}

var _ audio.Player = (*Oto)(nil)

// player is the part of *oto.Player a Session drives.
type player interface {
	Play()
	Pause()
	IsPlaying() bool
	Close() error
}

var _ player = (*oto.Player)(nil)

// Session is one playback started by Oto.
type Session struct {
	mtx    sync.Mutex
	player player
	closed bool
}

func newSession(p player) *Session {
	return &Session{player: p}
}

// IsPlaying reports false once the material ran out or Stop was called.
func (s *Session) IsPlaying() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return false
	}
	return s.player.IsPlaying()
}

// Stop silences the session and releases its player. Later calls do
// nothing.
func (s *Session) Stop() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	s.player.Pause()
	if err := s.player.Close(); err != nil && err != io.EOF {
		return fmt.Errorf("closing player: %w", err)
	}
	return nil
}

var _ audio.Handle = (*Session)(nil)
