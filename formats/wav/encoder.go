// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/internal/sample"
)

// encodeChunk is the number of frames handed to go-audio per write.
const encodeChunk = 8192

// Encoder writes integer PCM WAV at the buffer's own sample width through
// go-audio/wav. The destination must be seekable so the RIFF sizes can be
// patched on close; use WriteBuffer for pipes.
type Encoder struct{}

func (Encoder) Encode(w io.WriteSeeker, b *audio.Buffer) error {
	width := b.BytesPerSample()
	channels := b.Channels()

	enc := wav.NewEncoder(w, b.SampleRate(), width*8, channels, formatPCM)

	err := forEachChunk(b, encodeChunk, func(buf *goaudio.IntBuffer) error {
		if width == 1 {
			for i := range buf.Data {
				buf.Data[i] += 128
			}
		}
		return enc.Write(buf)
	})
	if err != nil {
		return fmt.Errorf("writing wav data: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing wav file: %w", err)
	}

	return nil
}

// forEachChunk hands the samples of b to fn as go-audio int buffers of up
// to frames frames. The IntBuffer is reused between calls.
func forEachChunk(b *audio.Buffer, frames int, fn func(*goaudio.IntBuffer) error) error {
	width := b.BytesPerSample()
	frameSize := b.FrameSize()
	data := b.Data()

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: b.Channels(), SampleRate: b.SampleRate()},
		Data:           make([]int, 0, frames*b.Channels()),
		SourceBitDepth: width * 8,
	}

	for off := 0; off < len(data); off += frames * frameSize {
		end := min(off+frames*frameSize, len(data))

		buf.Data = buf.Data[:0]
		for p := off; p < end; p += width {
			buf.Data = append(buf.Data, int(sample.Decode(data[p:], width)))
		}

		if err := fn(buf); err != nil {
			return err
		}
	}

	return nil
}
