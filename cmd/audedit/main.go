// SPDX-License-Identifier: EPL-2.0

// audedit is a small command line audio editor.
//
// Usage:
//
//	audedit shell song.wav                          # interactive editor
//	audedit apply in.wav out.flac --trim 500-2500 --volume -3
//	audedit play song.flac                          # play until done or Ctrl-C
//	audedit info song.mp3                           # print format and duration
//	audedit convert in.mp3 out.wav --rate 8000 --channels 1
//
// MP3 and Ogg export need an ffmpeg binary in PATH or given with --ffmpeg.
package main

import (
	"os"

	"github.com/ik5/audedit/cmd/audedit/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
