package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audedit/audio"
)

// pcmReader stands in for the go-mp3 decoder. Each Read returns at most
// the next entry of chunks bytes, so tests can split frames at will.
type pcmReader struct {
	rate   int
	data   []byte
	chunks []int
	err    error
}

func (r *pcmReader) SampleRate() int { return r.rate }

func (r *pcmReader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if len(r.data) == 0 {
		return 0, io.EOF
	}

	n := len(p)
	if len(r.chunks) > 0 {
		n = min(n, r.chunks[0])
		r.chunks = r.chunks[1:]
	}
	n = copy(p, r.data[:min(n, len(r.data))])
	r.data = r.data[n:]

	if len(r.data) == 0 {
		return n, io.EOF
	}
	return n, nil
}

func pcm16(values ...int16) []byte {
	out := make([]byte, len(values)*2)
	for i, v := range values {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(v))
	}
	return out
}

func newTestSource(r *pcmReader) *source {
	return &source{dec: r, sampleRate: r.rate, channels: 2}
}

func TestDecoder_Rejects(t *testing.T) {
	t.Parallel()

	for name, data := range map[string][]byte{
		"text":  []byte("This is not MP3 data"),
		"empty": nil,
		"riff":  []byte("RIFF\x24\x00\x00\x00WAVEfmt "),
	} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
			t.Errorf("Decode(%s) error = nil, want an error", name)
		} else if name == "text" && !errors.Is(err, ErrNotMP3File) {
			t.Errorf("Decode(%s) error = %v, want ErrNotMP3File", name, err)
		}
	}
}

func TestIsMP3(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"id3 tag", []byte("ID3\x04\x00"), true},
		{"frame sync", []byte{0xff, 0xfb, 0x90, 0x00}, true},
		{"mpeg2 sync", []byte{0xff, 0xf3}, true},
		{"wav", []byte("RIFF"), false},
		{"half sync", []byte{0xff, 0x0f}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		if got := IsMP3(tt.data); got != tt.want {
			t.Errorf("IsMP3(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSource_NativeWidth(t *testing.T) {
	t.Parallel()

	src := newTestSource(&pcmReader{rate: 44100})
	if src.BitDepth() != 16 || audio.NativeWidth(src) != 2 {
		t.Errorf("BitDepth() = %d, NativeWidth() = %d, want 16 and 2", src.BitDepth(), audio.NativeWidth(src))
	}
}

func TestSource_Collect(t *testing.T) {
	t.Parallel()

	values := []int16{0, 16384, 32767, -16384, -32768, 8192, -8192, 0}
	src := newTestSource(&pcmReader{rate: 22050, data: pcm16(values...)})

	b, err := audio.Collect(src, audio.NativeWidth(src))
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	want, _ := audio.NewBuffer(pcm16(values...), 22050, 2, 2)
	if !b.Equal(want) {
		t.Errorf("Collect() = %v % x, want %v % x", b, b.Data(), want, want.Data())
	}
}

func TestSource_SplitFrames(t *testing.T) {
	t.Parallel()

	// four stereo frames delivered in pieces that cut frames and samples
	values := []int16{1, -1, 2, -2, 3, -3, 4, -4}
	src := newTestSource(&pcmReader{
		rate:   8000,
		data:   pcm16(values...),
		chunks: []int{3, 6, 1, 5, 1},
	})

	var got []float32
	buf := make([]float32, 4)
	for {
		n, err := src.ReadSamples(buf)
		if n%2 != 0 {
			t.Fatalf("ReadSamples() = %d samples, want whole stereo frames", n)
		}
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	if len(got) != len(values) {
		t.Fatalf("read %d samples, want %d", len(got), len(values))
	}
	for i, v := range values {
		if want := float32(v) / 32768; got[i] != want {
			t.Errorf("sample %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestSource_TruncatedTail(t *testing.T) {
	t.Parallel()

	// one whole frame plus half a frame before EOF
	src := newTestSource(&pcmReader{rate: 8000, data: pcm16(100, 200, 300)})

	b, err := audio.Collect(src, 2)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if b.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", b.Frames())
	}
}

func TestSource_ShortDst(t *testing.T) {
	t.Parallel()

	src := newTestSource(&pcmReader{rate: 8000, data: pcm16(1, 2, 3, 4)})

	if n, err := src.ReadSamples(make([]float32, 1)); n != 0 || err != nil {
		t.Errorf("ReadSamples(1) = %d, %v, want 0, nil", n, err)
	}
	if n, _ := src.ReadSamples(make([]float32, 3)); n != 2 {
		t.Errorf("ReadSamples(3) = %d, want 2", n)
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	src := newTestSource(&pcmReader{rate: 8000, err: io.ErrUnexpectedEOF})

	if _, err := audio.Collect(src, 2); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Collect() error = %v, want %v", err, io.ErrUnexpectedEOF)
	}
}

func BenchmarkSource_Collect(b *testing.B) {
	data := make([]byte, 44100*4)

	for b.Loop() {
		src := newTestSource(&pcmReader{rate: 44100, data: data})
		if _, err := audio.Collect(src, 2); err != nil {
			b.Fatal(err)
		}
	}
}
