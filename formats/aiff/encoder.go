// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/internal/sample"
)

// encodeChunk is the number of frames handed to go-audio per write.
const encodeChunk = 8192

// Encoder writes uncompressed big-endian AIFF at the buffer's own sample
// width. The destination must be seekable so the chunk sizes can be
// patched on close.
type Encoder struct{}

func (Encoder) Encode(w io.WriteSeeker, b *audio.Buffer) error {
	width := b.BytesPerSample()
	channels := b.Channels()
	data := b.Data()
	frameSize := b.FrameSize()

	enc := aiff.NewEncoder(w, b.SampleRate(), width*8, channels)

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: b.SampleRate()},
		Data:           make([]int, 0, encodeChunk*channels),
		SourceBitDepth: width * 8,
	}

	for off := 0; off < len(data); off += encodeChunk * frameSize {
		end := min(off+encodeChunk*frameSize, len(data))

		buf.Data = buf.Data[:0]
		for p := off; p < end; p += width {
			buf.Data = append(buf.Data, int(sample.Decode(data[p:], width)))
		}

		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("writing aiff data: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing aiff file: %w", err)
	}

	return nil
}
