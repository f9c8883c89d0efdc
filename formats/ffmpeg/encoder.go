// SPDX-License-Identifier: EPL-2.0

package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/formats/wav"
)

// DefaultBinary is looked up in PATH when no binary is configured.
const DefaultBinary = "ffmpeg"

// Encoder exports a buffer by piping it as WAV into an ffmpeg process and
// copying the encoded stream to the destination.
type Encoder struct {
	binary string
	format string
	codec  string
	args   []string
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithBinary sets the ffmpeg executable, either a name looked up in PATH
// or a path.
func WithBinary(path string) Option {
	return func(e *Encoder) {
		if path != "" {
			e.binary = path
		}
	}
}

// WithArgs appends output options, e.g. "-b:a", "192k".
func WithArgs(args ...string) Option {
	return func(e *Encoder) {
		e.args = append(e.args, args...)
	}
}

// New returns an encoder producing the ffmpeg muxer format with the named
// audio codec.
func New(format, codec string, opts ...Option) *Encoder {
	e := &Encoder{
		binary: DefaultBinary,
		format: format,
		codec:  codec,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MP3 encodes with libmp3lame.
func MP3(opts ...Option) *Encoder {
	return New("mp3", "libmp3lame", opts...)
}

// Vorbis encodes Ogg Vorbis with libvorbis.
func Vorbis(opts ...Option) *Encoder {
	return New("ogg", "libvorbis", opts...)
}

func (e *Encoder) Binary() string { return e.binary }

// Encode runs EncodeContext without a deadline.
func (e *Encoder) Encode(w io.WriteSeeker, b *audio.Buffer) error {
	return e.EncodeContext(context.Background(), w, b)
}

// EncodeContext runs ffmpeg until it exits or ctx is done.
func (e *Encoder) EncodeContext(ctx context.Context, w io.Writer, b *audio.Buffer) error {
	bin, err := exec.LookPath(e.binary)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoderNotFound, err)
	}

	in := new(bytes.Buffer)
	in.Grow(44 + b.Len())
	if err := wav.WriteBuffer(in, b); err != nil {
		return fmt.Errorf("%w", err)
	}

	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, bin, e.buildArgs()...)
	cmd.Stdin = in
	cmd.Stdout = w
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("%w: %s: %w", ErrEncodeFailed, e.format, err)
		}
		return fmt.Errorf("%w: %s: %w: %s", ErrEncodeFailed, e.format, err, msg)
	}

	return nil
}

// buildArgs reads WAV from stdin and writes the target format to stdout.
func (e *Encoder) buildArgs() []string {
	args := []string{
		"-hide_banner",
		"-loglevel", "error", // Only show errors
		"-nostdin",
		"-f", "wav",
		"-i", "pipe:0",
		"-vn",
	}
	if e.codec != "" {
		args = append(args, "-c:a", e.codec)
	}
	args = append(args, e.args...)
	return append(args, "-f", e.format, "pipe:1")
}
