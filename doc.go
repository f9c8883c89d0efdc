// SPDX-License-Identifier: EPL-2.0

// Package audedit is a small audio editor: load a file, reverse it, change
// its volume or speed, trim it, play it and save the result.
//
// The Editor keeps one decoded buffer in memory and never touches the file
// it came from. File formats and the sound device are reached through the
// audio.Codec and audio.Player interfaces; formats.New and playback.New
// provide the real implementations:
//
//	ed := audedit.New(formats.New(), playback.New())
//	defer ed.Close()
//
//	if err := ed.Load("in.wav"); err != nil {
//		return err
//	}
//	if err := ed.Trim(500*time.Millisecond, 3*time.Second); err != nil {
//		return err
//	}
//	if err := ed.ChangeVolume(-3); err != nil {
//		return err
//	}
//	return ed.Save("out.flac", "flac")
//
// # Errors
//
// Missing files report ErrNotFound, operations before the first Load
// report ErrNotLoaded and bad parameters report ErrInvalidArgument. Codec
// failures come back as *DecodeError or *EncodeError, which wrap the
// format package's own error:
//
//	var encErr *audedit.EncodeError
//	if errors.As(err, &encErr) && errors.Is(err, ffmpeg.ErrEncoderNotFound) {
//		// MP3 export needs ffmpeg
//	}
//
// A failed operation leaves the buffer as it was.
//
// # Undo
//
// Every edit pushes the previous buffer onto a bounded history; Undo pops
// it. Load and Reload clear the history.
package audedit
