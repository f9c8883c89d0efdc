// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audedit/audio"
)

// encodeToFile runs Encoder against a real file, as go-audio needs to seek.
func encodeToFile(t *testing.T, b *audio.Buffer) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := (Encoder{}).Encode(f, b); err != nil {
		f.Close()
		t.Fatalf("Encode() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestEncoder_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		width    int
	}{
		{"mono 8-bit", 1, 1},
		{"stereo 8-bit", 2, 1},
		{"mono 16-bit", 1, 2},
		{"stereo 16-bit", 2, 2},
		{"stereo 24-bit", 2, 3},
		{"mono 32-bit", 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := make([]byte, 64*tt.channels*tt.width)
			for i := range data {
				data[i] = byte(i*53 + 11)
				if tt.width == 4 && i%4 == 0 {
					data[i] = 0
				}
			}
			b, err := audio.NewBuffer(data, 16000, tt.channels, tt.width)
			if err != nil {
				t.Fatalf("NewBuffer() error = %v", err)
			}

			file := encodeToFile(t, b)

			src, err := Decoder{}.Decode(bytes.NewReader(file))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

			got, err := audio.Collect(src, audio.NativeWidth(src))
			if err != nil {
				t.Fatalf("Collect() error = %v", err)
			}

			if !got.Equal(b) {
				t.Errorf("round trip = %v, want %v", got, b)
			}
		})
	}
}

func TestEncoder_Header(t *testing.T) {
	t.Parallel()

	b, err := audio.NewBuffer(pcm16(1, 2, 3, 4, 5, 6), 44100, 2, 2)
	if err != nil {
		t.Fatal(err)
	}

	file := encodeToFile(t, b)

	if !IsWav(file) {
		t.Fatalf("output is not a WAV file: % x", file[:min(len(file), 12)])
	}
	if got := binary.LittleEndian.Uint32(file[4:8]); int(got) != len(file)-8 {
		t.Errorf("riff size = %d, want %d", got, len(file)-8)
	}

	i := bytes.Index(file, []byte("data"))
	if i < 0 {
		t.Fatal("no data chunk")
	}
	if got := binary.LittleEndian.Uint32(file[i+4:]); got != 12 {
		t.Errorf("data size = %d, want 12", got)
	}
	if got := file[i+8:]; !bytes.Equal(got, b.Data()) {
		t.Errorf("data = % x, want % x", got, b.Data())
	}
}

func TestEncoder_SpansChunks(t *testing.T) {
	t.Parallel()

	frames := encodeChunk*2 + 17
	values := make([]int16, frames)
	for i := range values {
		values[i] = int16(i)
	}
	b, err := audio.NewBuffer(pcm16(values...), 8000, 1, 2)
	if err != nil {
		t.Fatal(err)
	}

	src, err := Decoder{}.Decode(bytes.NewReader(encodeToFile(t, b)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	got, err := audio.Collect(src, 2)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if got.Frames() != frames {
		t.Errorf("Frames() = %d, want %d", got.Frames(), frames)
	}
	if !got.Equal(b) {
		t.Error("decoded samples differ from the encoded ones")
	}
}

func TestForEachChunk(t *testing.T) {
	t.Parallel()

	b, err := audio.NewBuffer(pcm16(1, -1, 2, -2, 3, -3), 8000, 2, 2)
	if err != nil {
		t.Fatal(err)
	}

	var got [][]int
	err = forEachChunk(b, 2, func(buf *goaudio.IntBuffer) error {
		got = append(got, append([]int(nil), buf.Data...))
		if buf.Format.NumChannels != 2 || buf.SourceBitDepth != 16 {
			t.Errorf("format = %d ch %d bits, want 2 ch 16 bits", buf.Format.NumChannels, buf.SourceBitDepth)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("forEachChunk() error = %v", err)
	}

	want := [][]int{{1, -1, 2, -2}, {3, -3}}
	if len(got) != len(want) {
		t.Fatalf("got %d chunks, want %d", len(got), len(want))
	}
	for i := range want {
		if len(got[i]) != len(want[i]) {
			t.Fatalf("chunk %d = %v, want %v", i, got[i], want[i])
		}
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Errorf("chunk %d = %v, want %v", i, got[i], want[i])
				break
			}
		}
	}
}

func BenchmarkEncoder_Encode(b *testing.B) {
	buf, err := audio.NewBuffer(make([]byte, 44100*4), 44100, 2, 2)
	if err != nil {
		b.Fatal(err)
	}
	path := filepath.Join(b.TempDir(), "bench.wav")

	for b.Loop() {
		f, err := os.Create(path)
		if err != nil {
			b.Fatal(err)
		}
		if err := (Encoder{}).Encode(f, buf); err != nil {
			b.Fatal(err)
		}
		f.Close()
	}
}
