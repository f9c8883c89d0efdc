// SPDX-License-Identifier: EPL-2.0

// Package formats ties the individual format packages together into an
// audio.Codec that works on file paths.
//
// Decoding identifies the container from the file's leading bytes and only
// falls back to the extension when no signature matches, so a WAV file
// named song.mp3 still loads:
//
//	c := formats.New()
//	buf, err := c.Decode("song.mp3")
//
// Encoding takes a format name, normalized with NormalizeFormat:
//
//	err := c.Encode(buf, "out.flac", "FLAC")
//
// MP3 and Ogg Vorbis export run an external ffmpeg binary; configure it
// with WithFFmpeg.
package formats
