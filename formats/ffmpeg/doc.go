// SPDX-License-Identifier: EPL-2.0

// Package ffmpeg exports audio buffers to formats that have no pure Go
// encoder, MP3 and Ogg Vorbis, by running an external ffmpeg process.
//
// The buffer is streamed to ffmpeg as WAV on stdin and the encoded stream
// is read back from stdout:
//
//	enc := ffmpeg.MP3(ffmpeg.WithArgs("-b:a", "192k"))
//	if err := enc.Encode(f, buf); err != nil {
//		if errors.Is(err, ffmpeg.ErrEncoderNotFound) {
//			// ffmpeg is not installed
//		}
//	}
//
// Anything ffmpeg prints on stderr is attached to the returned error.
package ffmpeg
