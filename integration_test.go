// SPDX-License-Identifier: EPL-2.0

package audedit

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/formats"
	"github.com/ik5/audedit/formats/ffmpeg"
	"github.com/ik5/audedit/internal/audiotest"
)

func TestEditor_SaveRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file   string
		format string
	}{
		{"out.wav", "wav"},
		{"out.aiff", "aiff"},
		{"out.flac", "flac"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			codec := formats.New()

			orig := audiotest.SineBuffer(22050, 2, 2, 300*time.Millisecond, 220)
			in := filepath.Join(dir, "in.wav")
			if err := codec.Encode(orig, in, "wav"); err != nil {
				t.Fatal(err)
			}

			e := New(codec, &audiotest.FakePlayer{})
			if err := e.Load(in); err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if err := e.ChangeVolume(-3); err != nil {
				t.Fatal(err)
			}
			edited := e.Buffer()

			out := filepath.Join(dir, tt.file)
			if err := e.Save(out, tt.format); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			if err := e.Load(out); err != nil {
				t.Fatalf("Load(%s) error = %v", tt.file, err)
			}

			got := e.Buffer()
			if got.Duration() != orig.Duration() || got.SampleRate() != orig.SampleRate() || got.Channels() != orig.Channels() {
				t.Errorf("reloaded %v, want format of %v", got, orig)
			}
			if !got.Equal(edited) {
				t.Error("lossless round trip changed the samples")
			}
		})
	}
}

func TestEditor_SaveMissingEncoder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	codec := formats.New(formats.WithFFmpeg(ffmpeg.WithBinary(filepath.Join(dir, "missing-ffmpeg"))))

	in := filepath.Join(dir, "in.wav")
	if err := codec.Encode(audiotest.RampBuffer(8000, 800), in, "wav"); err != nil {
		t.Fatal(err)
	}

	e := New(codec, &audiotest.FakePlayer{})
	if err := e.Load(in); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		format string
		want   error
	}{
		{"mp3", ffmpeg.ErrEncoderNotFound},
		{"ogg", ffmpeg.ErrEncoderNotFound},
		{"opus", audio.ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		err := e.Save(filepath.Join(dir, "out."+tt.format), tt.format)

		var encErr *EncodeError
		if !errors.As(err, &encErr) {
			t.Errorf("Save(%s) error = %v, want *EncodeError", tt.format, err)
			continue
		}
		if !errors.Is(err, tt.want) {
			t.Errorf("Save(%s) error = %v, want %v", tt.format, err, tt.want)
		}
	}
}
