// SPDX-License-Identifier: EPL-2.0

package ffmpeg

import "errors"

var (
	// ErrEncoderNotFound indicates the ffmpeg binary could not be located.
	ErrEncoderNotFound = errors.New("ffmpeg binary not found")

	// ErrEncodeFailed indicates ffmpeg ran but exited with an error.
	ErrEncodeFailed = errors.New("ffmpeg encoding failed")
)
