// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audedit/audio"
)

// WritePCM writes a canonical 44-byte header WAV holding data, signed
// little-endian interleaved PCM. Unlike Encoder it needs no seeking, so it
// can feed pipes. 8-bit data is converted to the unsigned form WAV expects.
func WritePCM(w io.Writer, sampleRate, channels, bytesPerSample int, data []byte) error {
	if uint64(len(data))+36 > math.MaxUint32 {
		return ErrTooLarge
	}

	bitsPerSample := uint16(bytesPerSample * 8)
	blockAlign := uint16(channels * bytesPerSample)
	byteRate := uint32(sampleRate) * uint32(blockAlign)
	dataSize := uint32(len(data))
	riffSize := 36 + dataSize

	// Pre-allocate buffer for entire header (44 bytes)
	header := make([]byte, 44)

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], riffSize)
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	if bytesPerSample != 1 {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("%w", err)
		}
		return nil
	}

	// Flip the sign bit in chunks rather than copying all of data
	const chunkSize = 8192
	buf := make([]byte, min(len(data), chunkSize))

	for i := 0; i < len(data); i += chunkSize {
		chunk := data[i:min(i+chunkSize, len(data))]
		for j, v := range chunk {
			buf[j] = v ^ 0x80
		}
		if _, err := w.Write(buf[:len(chunk)]); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// WriteBuffer writes b as a WAV stream with WritePCM.
func WriteBuffer(w io.Writer, b *audio.Buffer) error {
	return WritePCM(w, b.SampleRate(), b.Channels(), b.BytesPerSample(), b.Data())
}
