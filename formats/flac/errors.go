// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	// ErrNotFlacFile indicates the input lacks a fLaC stream header.
	ErrNotFlacFile = errors.New("not a FLAC file")

	// ErrUnsupportedBitDepth indicates a sample width FLAC cannot carry here.
	ErrUnsupportedBitDepth = errors.New("unsupported FLAC bit depth")

	// ErrUnsupportedFlacLayout indicates a stream whose frames do not match
	// its stream info.
	ErrUnsupportedFlacLayout = errors.New("unsupported FLAC layout")
)
