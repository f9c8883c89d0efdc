// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE files holding integer PCM.
//
// Decoding and seekable encoding go through github.com/go-audio/wav.
// Samples of 8, 16, 24 and 32 bits are supported, mono or multi-channel,
// at any sample rate. Decoded sources implement audio.BitDepther so a
// collected buffer keeps the file's own width:
//
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	buf, err := audio.Collect(src, audio.NativeWidth(src))
//
// # Writing
//
// Encoder needs an io.WriteSeeker because the RIFF sizes are patched once
// the data is written. WritePCM and WriteBuffer emit a canonical 44-byte
// header up front instead and work on any io.Writer, which is what
// external tools reading from a pipe expect.
//
// 8-bit WAV is unsigned on disk. Both directions convert it so callers only
// ever see signed samples.
//
// # Errors
//
//   - ErrNotWavFile: the input lacks a RIFF/WAVE header
//   - ErrUnsupportedWavLayout: no usable fmt chunk
//   - ErrOnlyPCMSupported: compressed or floating point data
//   - ErrUnsupportedBitDepth: a sample width other than 8/16/24/32 bits
//   - ErrUnsupportedWavChunks: no data chunk could be located
//   - ErrTooLarge: the data exceeds the 32-bit RIFF size fields
package wav
