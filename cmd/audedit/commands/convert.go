// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"cmp"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/audedit/audio"
	"github.com/ik5/audedit/formats"
)

type convertOptions struct {
	rate     int
	channels int
	bits     int
	format   string
}

func newConvertCmd(a *app) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Change sample rate, channel count or bit depth",
		Long: `Decode <in>, resample and remix it as requested and write <out>.

Flags left at 0 keep the input's value.`,
		Example: `  audedit convert call.mp3 call.wav --rate 8000 --channels 1 --bits 16`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := runConvert(a.codec(), args[0], args[1], opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%v)\n", args[1], b)
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.rate, "rate", "r", 0, "output sample rate in Hz")
	cmd.Flags().IntVarP(&opts.channels, "channels", "c", 0, "output channel count")
	cmd.Flags().IntVarP(&opts.bits, "bits", "b", 0, "output bit depth (8, 16, 24 or 32)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format, defaults to the extension of <out>")

	return cmd
}

func runConvert(codec audio.Codec, in, out string, opts convertOptions) (*audio.Buffer, error) {
	format := opts.format
	if format == "" {
		format = formats.FormatFromPath(out)
	}

	if opts.bits%8 != 0 {
		return nil, fmt.Errorf("%w: %d bits", audio.ErrInvalidFormat, opts.bits)
	}

	b, err := codec.Decode(in)
	if err != nil {
		return nil, err
	}

	rate := cmp.Or(opts.rate, b.SampleRate())
	channels := cmp.Or(opts.channels, b.Channels())
	width := cmp.Or(opts.bits/8, b.BytesPerSample())

	b, err = audio.Convert(b, rate, channels, width)
	if err != nil {
		return nil, err
	}

	if err := codec.Encode(b, out, format); err != nil {
		return nil, err
	}

	return b, nil
}
