// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
)

// pollInterval is how often play checks whether the sound has ended.
const pollInterval = 50 * time.Millisecond

func newPlayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "play <file>",
		Short: "Play a file to the end",
		Long:  "Play <file> on the default audio device. Ctrl-C stops playback.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			ed := a.editor()
			defer ed.Close()

			if err := ed.Load(args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Playing %s (%v)\n", args[0], ed.Buffer())

			if err := ed.Play(); err != nil {
				return err
			}

			ticker := time.NewTicker(pollInterval)
			defer ticker.Stop()

			for ed.IsPlaying() {
				select {
				case <-ctx.Done():
					_, err := ed.Stop()
					return err
				case <-ticker.C:
				}
			}

			return nil
		},
	}
}
