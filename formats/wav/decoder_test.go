// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audedit/audio"
)

type chunk struct {
	id   string
	data []byte
}

// createWAVFile builds a WAV image with a 16-byte fmt chunk, the extra
// chunks, and a data chunk holding data as is.
func createWAVFile(sampleRate, channels, bitsPerSample, formatTag int, data []byte, extra ...chunk) []byte {
	body := new(bytes.Buffer)
	body.WriteString("WAVE")

	blockAlign := uint16(channels * bitsPerSample / 8)

	body.WriteString("fmt ")
	binary.Write(body, binary.LittleEndian, uint32(16))
	binary.Write(body, binary.LittleEndian, uint16(formatTag))
	binary.Write(body, binary.LittleEndian, uint16(channels))
	binary.Write(body, binary.LittleEndian, uint32(sampleRate))
	binary.Write(body, binary.LittleEndian, uint32(sampleRate)*uint32(blockAlign))
	binary.Write(body, binary.LittleEndian, blockAlign)
	binary.Write(body, binary.LittleEndian, uint16(bitsPerSample))

	for _, c := range extra {
		body.WriteString(c.id)
		binary.Write(body, binary.LittleEndian, uint32(len(c.data)))
		body.Write(c.data)
		if len(c.data)%2 == 1 {
			body.WriteByte(0)
		}
	}

	body.WriteString("data")
	binary.Write(body, binary.LittleEndian, uint32(len(data)))
	body.Write(data)

	out := new(bytes.Buffer)
	out.WriteString("RIFF")
	binary.Write(out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

func pcm16(values ...int16) []byte {
	out := make([]byte, len(values)*2)
	for i, v := range values {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(v))
	}
	return out
}

// readAll drains src with a small buffer.
func readAll(t *testing.T, src audio.Source) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, 6)
	for range 1000 {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
	t.Fatal("ReadSamples() never returned io.EOF")
	return nil
}

func TestDecoder_ValidWAVFile(t *testing.T) {
	t.Parallel()

	wavData := createWAVFile(8000, 1, 16, formatPCM, pcm16(0, 16384, -16384, -32768))

	src, err := Decoder{}.Decode(bytes.NewReader(wavData))
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}
	defer src.Close()

	if src.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
	}
	if src.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", src.Channels())
	}

	got := readAll(t, src)
	want := []float32{0, 0.5, -0.5, -1}
	if len(got) != len(want) {
		t.Fatalf("read %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDecoder_StereoWAVFile(t *testing.T) {
	t.Parallel()

	wavData := createWAVFile(44100, 2, 16, formatPCM, pcm16(100, 200, 300, 400, 500, 600))

	src, err := Decoder{}.Decode(bytes.NewReader(wavData))
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}

	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if got := len(readAll(t, src)); got != 6 {
		t.Errorf("read %d samples, want 6", got)
	}
}

func TestDecoder_BitDepths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		bits int
		data []byte
		want []float32
	}{
		{
			name: "8-bit unsigned",
			bits: 8,
			data: []byte{0x80, 0xc0, 0x40, 0x00},
			want: []float32{0, 0.5, -0.5, -1},
		},
		{
			name: "16-bit",
			bits: 16,
			data: pcm16(0, 8192, -8192, 32767),
			want: []float32{0, 0.25, -0.25, float32(32767.0 / 32768.0)},
		},
		{
			name: "24-bit",
			bits: 24,
			data: []byte{0x00, 0x00, 0x40, 0x00, 0x00, 0xc0},
			want: []float32{0.5, -0.5},
		},
		{
			name: "32-bit",
			bits: 32,
			data: []byte{0x00, 0x00, 0x00, 0x40, 0x00, 0x00, 0x00, 0x80},
			want: []float32{0.5, -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := Decoder{}.Decode(bytes.NewReader(createWAVFile(8000, 1, tt.bits, formatPCM, tt.data)))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

			bd, ok := src.(audio.BitDepther)
			if !ok {
				t.Fatal("source does not report its bit depth")
			}
			if bd.BitDepth() != tt.bits {
				t.Errorf("BitDepth() = %d, want %d", bd.BitDepth(), tt.bits)
			}

			got := readAll(t, src)
			if len(got) != len(tt.want) {
				t.Fatalf("read %d samples, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if math.Abs(float64(got[i]-tt.want[i])) > 1e-6 {
					t.Errorf("sample[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDecoder_NotWAVFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte("NOT A WAV FILE DATA")},
		{"empty", nil},
		{"truncated", []byte("RIFF")},
		{"bad wave marker", append([]byte("RIFF\x24\x00\x00\x00NOPE"), make([]byte, 32)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrNotWavFile) {
				t.Errorf("Decode() error = %v, want ErrNotWavFile", err)
			}
		})
	}
}

func TestDecoder_MissingFmtChunk(t *testing.T) {
	t.Parallel()

	data := []byte("RIFF\x0c\x00\x00\x00WAVEdata\x00\x00\x00\x00")

	_, err := Decoder{}.Decode(bytes.NewReader(data))
	if !errors.Is(err, ErrUnsupportedWavLayout) {
		t.Errorf("Decode() error = %v, want ErrUnsupportedWavLayout", err)
	}
}

func TestDecoder_NonPCMFormat(t *testing.T) {
	t.Parallel()

	// IEEE float
	wavData := createWAVFile(8000, 1, 32, 3, make([]byte, 8))

	_, err := Decoder{}.Decode(bytes.NewReader(wavData))
	if !errors.Is(err, ErrOnlyPCMSupported) {
		t.Errorf("Decode() error = %v, want ErrOnlyPCMSupported", err)
	}
}

func TestDecoder_UnsupportedBitDepth(t *testing.T) {
	t.Parallel()

	wavData := createWAVFile(8000, 1, 12, formatPCM, make([]byte, 4))

	_, err := Decoder{}.Decode(bytes.NewReader(wavData))
	if !errors.Is(err, ErrUnsupportedBitDepth) {
		t.Errorf("Decode() error = %v, want ErrUnsupportedBitDepth", err)
	}
}

func TestDecoder_MissingDataChunk(t *testing.T) {
	t.Parallel()

	full := createWAVFile(8000, 1, 16, formatPCM, nil)
	// Cut the empty data chunk header off.
	wavData := full[:len(full)-8]

	_, err := Decoder{}.Decode(bytes.NewReader(wavData))
	if !errors.Is(err, ErrUnsupportedWavChunks) {
		t.Errorf("Decode() error = %v, want ErrUnsupportedWavChunks", err)
	}
}

func TestDecoder_WithUnknownChunks(t *testing.T) {
	t.Parallel()

	wavData := createWAVFile(8000, 1, 16, formatPCM, pcm16(1000, 2000),
		chunk{id: "JUNK", data: make([]byte, 10)},
		chunk{id: "fact", data: []byte{2, 0, 0, 0}},
	)

	src, err := Decoder{}.Decode(bytes.NewReader(wavData))
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}

	got := readAll(t, src)
	if len(got) != 2 {
		t.Fatalf("read %d samples, want 2", len(got))
	}
	if got[0] != 1000.0/32768 {
		t.Errorf("sample[0] = %v, want %v", got[0], 1000.0/32768)
	}
}

func TestDecoder_OddSizedChunkPadding(t *testing.T) {
	t.Parallel()

	wavData := createWAVFile(8000, 1, 16, formatPCM, pcm16(-16384),
		chunk{id: "odd ", data: []byte{1, 2, 3}},
	)

	src, err := Decoder{}.Decode(bytes.NewReader(wavData))
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}

	got := readAll(t, src)
	if len(got) != 1 || got[0] != -0.5 {
		t.Errorf("samples = %v, want [-0.5]", got)
	}
}

func TestSource_ReadSamples_AlignsToFrames(t *testing.T) {
	t.Parallel()

	wavData := createWAVFile(8000, 2, 16, formatPCM, pcm16(1, 2, 3, 4, 5, 6))

	src, err := Decoder{}.Decode(bytes.NewReader(wavData))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf := make([]float32, 5)
	n, err := src.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 4 {
		t.Errorf("ReadSamples() = %d, want 4 (two whole frames)", n)
	}

	n, err = src.ReadSamples(buf[:1])
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(1) = %d, %v; want 0, nil", n, err)
	}
}

func TestSource_ReadSamples_EOF(t *testing.T) {
	t.Parallel()

	wavData := createWAVFile(8000, 1, 16, formatPCM, pcm16(100, 200))

	src, err := Decoder{}.Decode(bytes.NewReader(wavData))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf := make([]float32, 16)
	n, err := src.ReadSamples(buf)
	if n != 2 || err != nil {
		t.Fatalf("first ReadSamples() = %d, %v; want 2, nil", n, err)
	}

	for i := range 2 {
		n, err = src.ReadSamples(buf)
		if n != 0 || err != io.EOF {
			t.Errorf("ReadSamples() #%d after end = %d, %v; want 0, io.EOF", i, n, err)
		}
	}
}

func TestSource_EmptyDataChunk(t *testing.T) {
	t.Parallel()

	src, err := Decoder{}.Decode(bytes.NewReader(createWAVFile(8000, 1, 16, formatPCM, nil)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	_, err = audio.Collect(src, 2)
	if !errors.Is(err, audio.ErrEmptyBuffer) {
		t.Errorf("Collect() error = %v, want ErrEmptyBuffer", err)
	}
}

type failingReader struct{ err error }

func (f failingReader) PCMBuffer(_ *goaudio.IntBuffer) (int, error) { return 0, f.err }

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk on fire")
	src := &source{dec: failingReader{err: boom}, sampleRate: 8000, channels: 1, bitDepth: 16}

	_, err := src.ReadSamples(make([]float32, 4))
	if !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}

func TestSource_BufSizeAndClose(t *testing.T) {
	t.Parallel()

	src, err := Decoder{}.Decode(bytes.NewReader(createWAVFile(8000, 1, 16, formatPCM, pcm16(1))))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if got := src.BufSize(); got != 4096 {
		t.Errorf("BufSize() before reading = %d, want 4096", got)
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestDecoder_VariousSampleRates(t *testing.T) {
	t.Parallel()

	for _, rate := range []int{8000, 16000, 22050, 44100, 48000, 96000} {
		src, err := Decoder{}.Decode(bytes.NewReader(createWAVFile(rate, 1, 16, formatPCM, pcm16(0, 0))))
		if err != nil {
			t.Fatalf("Decode(%d Hz) error = %v", rate, err)
		}
		if src.SampleRate() != rate {
			t.Errorf("SampleRate() = %d, want %d", src.SampleRate(), rate)
		}
	}
}

func TestIsWav(t *testing.T) {
	t.Parallel()

	if !IsWav(createWAVFile(8000, 1, 16, formatPCM, nil)) {
		t.Error("IsWav(valid) = false")
	}
	if IsWav([]byte("RIFF\x00\x00\x00\x00AVI ")) {
		t.Error("IsWav(AVI) = true")
	}
	if IsWav([]byte("RIFF")) {
		t.Error("IsWav(short) = true")
	}
}

func BenchmarkDecoder_Decode(b *testing.B) {
	wavData := createWAVFile(44100, 2, 16, formatPCM, make([]byte, 44100*4))

	for b.Loop() {
		src, err := Decoder{}.Decode(bytes.NewReader(wavData))
		if err != nil {
			b.Fatal(err)
		}
		_ = src.Close()
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	wavData := createWAVFile(44100, 2, 16, formatPCM, make([]byte, 44100*4))
	buf := make([]float32, 4096)

	for b.Loop() {
		src, err := Decoder{}.Decode(bytes.NewReader(wavData))
		if err != nil {
			b.Fatal(err)
		}
		for {
			if _, err := src.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
