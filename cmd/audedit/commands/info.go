// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/audedit/formats"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>...",
		Short: "Show the format and length of audio files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec := a.codec()
			out := cmd.OutOrStdout()

			for _, path := range args {
				b, err := codec.Decode(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				container, err := formats.DetectFile(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				fmt.Fprintf(out, "%s\n", path)
				fmt.Fprintf(out, "  Container:   %s\n", container)
				fmt.Fprintf(out, "  Sample rate: %d Hz\n", b.SampleRate())
				fmt.Fprintf(out, "  Channels:    %s\n", channelName(b.Channels()))
				fmt.Fprintf(out, "  Bit depth:   %d\n", b.BytesPerSample()*8)
				fmt.Fprintf(out, "  Frames:      %d\n", b.Frames())
				fmt.Fprintf(out, "  Duration:    %v\n", b.Duration())
			}

			return nil
		},
	}
}
