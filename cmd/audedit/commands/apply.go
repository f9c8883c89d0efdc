// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/audedit"
	"github.com/ik5/audedit/formats"
)

type applyOptions struct {
	reverse bool
	volume  float64
	speed   float64
	trim    string
	format  string
}

func newApplyCmd(a *app) *cobra.Command {
	var opts applyOptions

	cmd := &cobra.Command{
		Use:   "apply <in> <out>",
		Short: "Edit a file in one go",
		Long: `Load <in>, apply the requested edits and save the result to <out>.

Edits always run in the order trim, speed, volume, reverse. The output
format comes from --format or, when omitted, from the extension of <out>.`,
		Example: `  audedit apply in.wav out.wav --reverse
  audedit apply in.mp3 out.flac --trim 1000-4000 --speed 1.25 --volume -3`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed := a.editor()
			defer ed.Close()

			if err := runApply(ed, args[0], args[1], opts); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%v)\n", args[1], ed.Buffer())
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.reverse, "reverse", false, "reverse the audio")
	cmd.Flags().Float64Var(&opts.volume, "volume", 0, "volume change in dB")
	cmd.Flags().Float64Var(&opts.speed, "speed", 1, "playback speed factor, pitch follows")
	cmd.Flags().StringVar(&opts.trim, "trim", "", "keep only start-end, in ms or as durations (e.g. 500-1500, 1s-2.5s)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format (wav, aiff, flac, mp3, ogg)")

	return cmd
}

func runApply(ed *audedit.Editor, in, out string, opts applyOptions) error {
	format := opts.format
	if format == "" {
		format = formats.FormatFromPath(out)
	}
	if format == "" {
		return fmt.Errorf("cannot tell the output format of %q, use --format", out)
	}

	if err := ed.Load(in); err != nil {
		return err
	}

	if opts.trim != "" {
		start, end, err := parseRange(opts.trim)
		if err != nil {
			return fmt.Errorf("%w: %w", audedit.ErrInvalidArgument, err)
		}
		if err := ed.Trim(start, end); err != nil {
			return err
		}
	}

	if opts.speed != 1 {
		if err := ed.ChangeSpeed(opts.speed); err != nil {
			return err
		}
	}

	if opts.volume != 0 {
		if err := ed.ChangeVolume(opts.volume); err != nil {
			return err
		}
	}

	if opts.reverse {
		if err := ed.Reverse(); err != nil {
			return err
		}
	}

	return ed.Save(out, format)
}
