// SPDX-License-Identifier: EPL-2.0

package audedit

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates Load was given a path with no file behind it.
	ErrNotFound = errors.New("file not found")

	// ErrNotLoaded indicates an operation that needs audio ran before any
	// file was loaded.
	ErrNotLoaded = errors.New("no audio loaded")

	// ErrInvalidArgument indicates an out of range trim, speed or volume
	// parameter.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNothingToUndo is returned by Undo when the history is empty.
	ErrNothingToUndo = errors.New("nothing to undo")
)

// DecodeError reports a file the codec could not read.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports an export that failed, either because the format is
// not supported or because its encoder failed.
type EncodeError struct {
	Path   string
	Format string
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encoding %s as %q: %v", e.Path, e.Format, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
