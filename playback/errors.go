// SPDX-License-Identifier: EPL-2.0

package playback

import "errors"

var (
	// ErrDevice indicates the audio device could not be opened.
	ErrDevice = errors.New("audio device unavailable")

	// ErrEmptyData indicates Start was given no samples.
	ErrEmptyData = errors.New("no samples to play")
)
