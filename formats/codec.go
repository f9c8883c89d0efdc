// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/formats/aiff"
	"github.com/ik5/audedit/formats/ffmpeg"
	"github.com/ik5/audedit/formats/flac"
	"github.com/ik5/audedit/formats/mp3"
	"github.com/ik5/audedit/formats/vorbis"
	"github.com/ik5/audedit/formats/wav"
)

// Codec reads and writes audio files through an audio.Registry.
type Codec struct {
	registry *audio.Registry
	ffmpeg   []ffmpeg.Option
}

// Option configures a Codec.
type Option func(*Codec)

// WithFFmpeg configures the encoders used for MP3 and Ogg export.
func WithFFmpeg(opts ...ffmpeg.Option) Option {
	return func(c *Codec) {
		c.ffmpeg = append(c.ffmpeg, opts...)
	}
}

// WithRegistry replaces the default registry. Formats registered on it are
// used as is.
func WithRegistry(r *audio.Registry) Option {
	return func(c *Codec) {
		c.registry = r
	}
}

// New returns a Codec that decodes wav, aiff, flac, mp3 and ogg, encodes
// wav, aiff and flac natively and mp3 and ogg through ffmpeg.
func New(opts ...Option) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}

	if c.registry == nil {
		c.registry = audio.NewRegistry()
		RegisterDefaults(c.registry, c.ffmpeg...)
	}

	return c
}

// RegisterDefaults adds every built-in decoder and encoder to r.
func RegisterDefaults(r *audio.Registry, opts ...ffmpeg.Option) {
	r.Register(WAV, wav.Decoder{})
	r.Register(AIFF, aiff.Decoder{})
	r.Register(FLAC, flac.Decoder{})
	r.Register(MP3, mp3.Decoder{})
	r.Register(OGG, vorbis.Decoder{})

	r.RegisterEncoder(WAV, wav.Encoder{})
	r.RegisterEncoder(AIFF, aiff.Encoder{})
	r.RegisterEncoder(FLAC, flac.Encoder{})
	r.RegisterEncoder(MP3, ffmpeg.MP3(opts...))
	r.RegisterEncoder(OGG, ffmpeg.Vorbis(opts...))
}

func (c *Codec) Registry() *audio.Registry { return c.registry }

// Decode reads the whole file at path and collects it at the source's
// native sample width.
func (c *Codec) Decode(path string) (*audio.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	format := Detect(data[:min(len(data), sniffLen)], path)

	dec, ok := c.registry.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: cannot decode %q", audio.ErrUnsupportedFormat, format)
	}

	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}
	defer src.Close()

	buf, err := audio.Collect(src, audio.NativeWidth(src))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}

	return buf, nil
}

// Encode writes b to path in format. The data goes to a temporary file in
// the same directory which is renamed over path once complete, so a failed
// export leaves an existing file alone.
func (c *Codec) Encode(b *audio.Buffer, path, format string) (err error) {
	format = NormalizeFormat(format)

	enc, ok := c.registry.GetEncoder(format)
	if !ok {
		return fmt.Errorf("%w: cannot encode %q", audio.ErrUnsupportedFormat, format)
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	tmp := f.Name()

	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if err := enc.Encode(f, b); err != nil {
		return errors.Join(fmt.Errorf("encoding %s: %w", format, err), f.Close())
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	// an overwritten file keeps its permissions
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	if err := os.Chmod(tmp, mode); err != nil {
		return fmt.Errorf("%w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

var _ audio.Codec = (*Codec)(nil)
