// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrEmptyBuffer indicates a buffer or stream without a single frame.
	ErrEmptyBuffer = errors.New("audio buffer is empty")

	// ErrInvalidFormat indicates a non-positive sample rate or channel count,
	// or a sample width outside 1-4 bytes.
	ErrInvalidFormat = errors.New("invalid audio format")

	// ErrUnalignedData indicates sample data that is not a whole number of frames.
	ErrUnalignedData = errors.New("sample data is not frame aligned")

	ErrInvalidRange  = errors.New("invalid time range")
	ErrInvalidFactor = errors.New("invalid speed factor")
	ErrInvalidGain   = errors.New("invalid gain")

	// ErrUnsupportedFormat is returned by codecs for unknown container formats.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)
