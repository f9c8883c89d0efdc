// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ik5/audedit"
	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/formats"
	"github.com/ik5/audedit/formats/ffmpeg"
	"github.com/ik5/audedit/playback"
)

// app carries the global flags and the collaborators built from them.
type app struct {
	verbose bool
	ffmpeg  string
	history int

	logger *slog.Logger

	// newPlayer is replaced in tests to keep them off the sound device.
	newPlayer func(*slog.Logger) audio.Player
}

func newApp() *app {
	return &app{
		history: audedit.DefaultHistory,
		logger:  slog.New(slog.DiscardHandler),
		newPlayer: func(l *slog.Logger) audio.Player {
			return playback.New(playback.WithLogger(l))
		},
	}
}

func (a *app) setupLogger(w io.Writer) {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (a *app) codec() *formats.Codec {
	return formats.New(formats.WithFFmpeg(ffmpeg.WithBinary(a.ffmpeg)))
}

func (a *app) editor() *audedit.Editor {
	return audedit.New(a.codec(), a.newPlayer(a.logger),
		audedit.WithLogger(a.logger),
		audedit.WithHistory(a.history),
	)
}

// newRootCmd builds the command tree around a.
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "audedit",
		Short: "Minimal audio editor",
		Long: `audedit loads an audio file, applies simple edits (trim, speed,
volume, reverse), plays the result and saves it.

WAV, AIFF, FLAC, MP3 and Ogg Vorbis files can be opened. WAV, AIFF and
FLAC are written natively; MP3 and Ogg export run ffmpeg.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.setupLogger(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every editor operation")
	rootCmd.PersistentFlags().StringVar(&a.ffmpeg, "ffmpeg", ffmpeg.DefaultBinary, "ffmpeg binary used for mp3 and ogg export")
	rootCmd.PersistentFlags().IntVar(&a.history, "history", audedit.DefaultHistory, "number of undo steps kept by the shell")

	rootCmd.AddCommand(newShellCmd(a))
	rootCmd.AddCommand(newApplyCmd(a))
	rootCmd.AddCommand(newPlayCmd(a))
	rootCmd.AddCommand(newInfoCmd(a))
	rootCmd.AddCommand(newConvertCmd(a))

	return rootCmd
}

// Command returns the root cobra command for mounting into a parent CLI.
func Command() *cobra.Command {
	return newRootCmd(newApp())
}

// Execute runs the command line.
func Execute() error {
	return Command().Execute()
}
