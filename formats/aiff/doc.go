// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding and
// encoding on top of github.com/go-audio/aiff.
//
// Uncompressed AIFF at 8, 16, 24 and 32 bits is supported in both
// directions, mono or multi-channel, at any sample rate. Decoded sources
// implement audio.BitDepther:
//
//	src, err := aiff.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	buf, err := audio.Collect(src, audio.NativeWidth(src))
//
// AIFF stores samples big-endian and its sample rate as an 80-bit float.
// go-audio deals with both; callers see the same normalized float32 stream
// every other decoder produces.
//
// Encoder needs an io.WriteSeeker because the FORM and SSND sizes are
// written once the data is known.
//
// # Errors
//
//   - ErrNotAiffFile: the input lacks a FORM/AIFF header
//   - ErrUnsupportedBitDepth: a sample width other than 8/16/24/32 bits
//   - ErrUnsupportedAiffLayout: no usable COMM chunk
//
// AIFF-C files are recognized by IsAiff, but only uncompressed ones decode.
package aiff
