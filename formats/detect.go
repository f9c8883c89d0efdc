// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audedit/formats/aiff"
	"github.com/ik5/audedit/formats/flac"
	"github.com/ik5/audedit/formats/mp3"
	"github.com/ik5/audedit/formats/vorbis"
	"github.com/ik5/audedit/formats/wav"
)

// Format keys used in the registry.
const (
	WAV  = "wav"
	AIFF = "aiff"
	FLAC = "flac"
	MP3  = "mp3"
	OGG  = "ogg"
)

// sniffLen is the number of leading bytes Detect needs to see.
const sniffLen = 12

var aliases = map[string]string{
	"wave": WAV,
	"aif":  AIFF,
	"aifc": AIFF,
	"oga":  OGG,
}

// NormalizeFormat lowercases a format name or file extension, strips a
// leading dot and resolves aliases such as "oga" and "aif".
func NormalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	f = strings.TrimPrefix(f, ".")
	if a, ok := aliases[f]; ok {
		return a
	}
	return f
}

// FormatFromPath returns the normalized extension of path.
func FormatFromPath(path string) string {
	return NormalizeFormat(filepath.Ext(path))
}

// Detect names the container of a file from its leading bytes, falling
// back to the extension of path. The MPEG sync test is the weakest, so it
// runs last.
func Detect(head []byte, path string) string {
	switch {
	case wav.IsWav(head):
		return WAV
	case aiff.IsAiff(head):
		return AIFF
	case flac.IsFlac(head):
		return FLAC
	case vorbis.IsOgg(head):
		return OGG
	case mp3.IsMP3(head):
		return MP3
	}
	return FormatFromPath(path)
}

// DetectFile reads the head of the file at path and names its container
// the same way Decode picks a decoder.
func DetectFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w", err)
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%w", err)
	}

	return Detect(head[:n], path), nil
}
