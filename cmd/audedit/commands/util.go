// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseOffset reads a plain number as milliseconds, anything else as a Go
// duration such as "1.5s".
func parseOffset(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(ms * float64(time.Millisecond)), nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q", s)
	}
	return d, nil
}

// parseRange reads "start-end", e.g. "500-1500" or "0.5s-1.5s".
func parseRange(s string) (start, end time.Duration, err error) {
	a, b, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("invalid range %q, want start-end", s)
	}

	if start, err = parseOffset(a); err != nil {
		return 0, 0, err
	}
	if end, err = parseOffset(b); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func channelName(n int) string {
	switch n {
	case 1:
		return "mono"
	case 2:
		return "stereo"
	default:
		return fmt.Sprintf("%d channels", n)
	}
}
