// SPDX-License-Identifier: EPL-2.0

// Package flac decodes and encodes FLAC using github.com/mewkiz/flac.
//
// Frames are decoded lazily as samples are read, so a source never holds
// more than one FLAC frame. Streams of 4 to 32 bits per sample decode;
// depths that are not a whole number of bytes are left-aligned to the next
// byte width.
//
// Encoder stores 8, 16 and 24-bit buffers losslessly using verbatim
// subframes in blocks of 4096 frames. It favours simplicity over size.
package flac
