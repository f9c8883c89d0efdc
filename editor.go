// SPDX-License-Identifier: EPL-2.0

package audedit

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/ik5/audedit/audio"
)

// DefaultHistory is the number of undo steps kept unless WithHistory says
// otherwise.
const DefaultHistory = 16

// Status is the outcome of Stop.
type Status int

const (
	// StatusIdle means nothing was playing; Stop did nothing.
	StatusIdle Status = iota
	// StatusStopped means a playback session was halted and released.
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "nothing playing"
	case StatusStopped:
		return "stopped"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Editor holds at most one decoded buffer and at most one playback
// session. Every edit replaces the buffer with a new one; the replaced
// buffers form the undo history.
//
// An Editor is meant for a single goroutine.
type Editor struct {
	codec  audio.Codec
	player audio.Player
	logger *slog.Logger

	depth   int
	history []*audio.Buffer

	buf    *audio.Buffer
	path   string
	handle audio.Handle
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sends debug output about loads, edits and playback to l.
// A nil logger keeps the default, which discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithHistory sets how many edits can be undone. Zero disables undo.
func WithHistory(depth int) Option {
	return func(e *Editor) {
		e.depth = max(depth, 0)
	}
}

// New returns an empty Editor reading and writing files through codec and
// playing through player.
func New(codec audio.Codec, player audio.Player, opts ...Option) *Editor {
	e := &Editor{
		codec:  codec,
		player: player,
		logger: slog.New(slog.DiscardHandler),
		depth:  DefaultHistory,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Loaded reports whether a buffer is present.
func (e *Editor) Loaded() bool { return e.buf != nil }

// Buffer returns the current buffer, or nil before the first Load.
func (e *Editor) Buffer() *audio.Buffer { return e.buf }

// SourcePath is the path of the last successful Load.
func (e *Editor) SourcePath() string { return e.path }

// CanUndo reports whether Undo has an edit to revert.
func (e *Editor) CanUndo() bool { return len(e.history) > 0 }

// IsPlaying reports whether the current playback session is still
// rendering sound.
func (e *Editor) IsPlaying() bool {
	return e.handle != nil && e.handle.IsPlaying()
}

// Load decodes the file at path and makes it the current buffer. The
// previous buffer and the undo history are dropped. On failure nothing
// changes.
func (e *Editor) Load(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return &DecodeError{Path: path, Err: err}
	}

	b, err := e.codec.Decode(path)
	if err != nil {
		e.logger.Debug("load failed", "path", path, "error", err)
		return &DecodeError{Path: path, Err: err}
	}

	e.buf = b
	e.path = path
	e.history = nil

	e.logger.Debug("loaded",
		"path", path,
		"sample_rate", b.SampleRate(),
		"channels", b.Channels(),
		"bytes_per_sample", b.BytesPerSample(),
		"duration", b.Duration(),
	)

	return nil
}

// Reload loads SourcePath again, discarding every edit.
func (e *Editor) Reload() error {
	if e.path == "" {
		return ErrNotLoaded
	}
	return e.Load(e.path)
}

// Play starts playing a copy of the current buffer and returns without
// waiting. A session that is already running is stopped first.
func (e *Editor) Play() error {
	if e.buf == nil {
		return ErrNotLoaded
	}

	if e.handle != nil {
		if _, err := e.Stop(); err != nil {
			e.logger.Debug("stopping previous playback", "error", err)
		}
	}

	b := e.buf
	h, err := e.player.Start(b.Data(), b.SampleRate(), b.Channels(), b.BytesPerSample())
	if err != nil {
		return fmt.Errorf("starting playback: %w", err)
	}
	e.handle = h

	e.logger.Debug("playing", "duration", b.Duration())

	return nil
}

// Stop halts and releases the playback session. Without one it returns
// StatusIdle and no error. The session is released even when stopping it
// fails.
func (e *Editor) Stop() (Status, error) {
	if e.handle == nil {
		return StatusIdle, nil
	}

	h := e.handle
	e.handle = nil

	if err := h.Stop(); err != nil {
		return StatusStopped, fmt.Errorf("stopping playback: %w", err)
	}

	e.logger.Debug("playback stopped")

	return StatusStopped, nil
}

// Reverse plays the buffer backwards.
func (e *Editor) Reverse() error {
	if e.buf == nil {
		return ErrNotLoaded
	}

	e.replace("reverse", audio.Reverse(e.buf))
	return nil
}

// ChangeVolume scales the buffer by deltaDb decibels. Samples that would
// exceed full scale are clamped.
func (e *Editor) ChangeVolume(deltaDb float64) error {
	if e.buf == nil {
		return ErrNotLoaded
	}

	b, err := audio.ApplyGain(e.buf, deltaDb)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	e.replace("volume", b, "db", deltaDb)
	return nil
}

// ChangeSpeed resamples the buffer so it plays factor times faster,
// shifting pitch along with it.
func (e *Editor) ChangeSpeed(factor float64) error {
	if e.buf == nil {
		return ErrNotLoaded
	}

	b, err := audio.ChangeSpeed(e.buf, factor)
	if err != nil {
		if errors.Is(err, audio.ErrInvalidFactor) {
			return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
		return fmt.Errorf("changing speed: %w", err)
	}

	e.replace("speed", b, "factor", factor)
	return nil
}

// Trim keeps the part of the buffer between start and end.
func (e *Editor) Trim(start, end time.Duration) error {
	if e.buf == nil {
		return ErrNotLoaded
	}

	b, err := audio.Slice(e.buf, start, end)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	e.replace("trim", b, "start", start, "end", end)
	return nil
}

// Save encodes the buffer to path in format, overwriting any file there.
func (e *Editor) Save(path, format string) error {
	if e.buf == nil {
		return ErrNotLoaded
	}

	if err := e.codec.Encode(e.buf, path, format); err != nil {
		e.logger.Debug("save failed", "path", path, "format", format, "error", err)
		return &EncodeError{Path: path, Format: format, Err: err}
	}

	e.logger.Debug("saved", "path", path, "format", format)

	return nil
}

// Undo restores the buffer as it was before the last edit.
func (e *Editor) Undo() error {
	if e.buf == nil {
		return ErrNotLoaded
	}
	if len(e.history) == 0 {
		return ErrNothingToUndo
	}

	last := len(e.history) - 1
	e.buf = e.history[last]
	e.history[last] = nil
	e.history = e.history[:last]

	e.logger.Debug("undo", "remaining", len(e.history))

	return nil
}

// Close stops playback.
func (e *Editor) Close() error {
	_, err := e.Stop()
	return err
}

func (e *Editor) replace(op string, b *audio.Buffer, attrs ...any) {
	if e.depth > 0 {
		if len(e.history) == e.depth {
			e.history[0] = nil
			e.history = e.history[1:]
		}
		e.history = append(e.history, e.buf)
	}
	e.buf = b

	e.logger.Debug(op, append(attrs, "duration", b.Duration(), "history", len(e.history))...)
}
