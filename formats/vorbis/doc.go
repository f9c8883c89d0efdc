// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files for the editor through
// github.com/jfreymuth/oggvorbis.
//
// Decoder returns an audio.Source of interleaved float32 samples with the
// stream's own rate and channel count. The source never reports a bit
// depth, since Vorbis is lossy and has none, so audio.NativeWidth collects
// it at 16 bit:
//
//	src, err := vorbis.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	buf, err := audio.Collect(src, audio.NativeWidth(src))
//
// ReadSamples only asks the decoder for whole frames, and the count it
// returns is in values, matching the audio.Source contract.
//
// There is no encoder here. Ogg Vorbis export runs through the ffmpeg
// package, which the formats codec wires up for the "ogg" key.
//
// Input that oggvorbis rejects fails with an error wrapping
// ErrNotVorbisFile. IsOgg checks for the "OggS" page header and is what
// content sniffing uses.
package vorbis
