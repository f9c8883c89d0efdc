// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III files through
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit stereo PCM, mono files included, so the
// source reports two channels and a bit depth of 16:
//
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	buf, err := audio.Collect(src, audio.NativeWidth(src))
//
// ReadSamples returns whole frames only. When go-mp3 ends a read in the
// middle of a frame the partial bytes are held back until the next call;
// a frame cut off by the end of the stream is dropped.
//
// Encoding is not done here. MP3 export runs through the ffmpeg package.
//
// Decode failures wrap ErrNotMP3File. IsMP3 recognizes an ID3v2 tag or an
// MPEG frame sync; the sync test is weak, so callers sniff it last.
package mp3
