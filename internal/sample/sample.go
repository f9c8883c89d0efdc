// SPDX-License-Identifier: EPL-2.0

// Package sample converts between signed little-endian PCM bytes and
// normalized float32 samples, for sample widths of 1 to 4 bytes.
//
// Integer samples are scaled by 2^(bits-1), so a 16-bit value v maps to
// v/32768. The conversion back rounds to nearest and clamps to full scale,
// which makes a decode/encode round trip exact for widths up to 3 bytes.
package sample

import (
	"encoding/binary"
	"math"
)

// ValidWidth reports whether width is a supported sample width in bytes.
func ValidWidth(width int) bool {
	return width >= 1 && width <= 4
}

// FullScale returns 2^(bits-1) for a sample width in bytes.
func FullScale(width int) float64 {
	return float64(int64(1) << (uint(width)*8 - 1))
}

// Bounds returns the smallest and largest integer value of a sample width.
func Bounds(width int) (lo, hi int64) {
	fs := int64(1) << (uint(width)*8 - 1)
	return -fs, fs - 1
}

// Decode reads one signed little-endian sample of width bytes from b.
func Decode(b []byte, width int) int32 {
	switch width {
	case 1:
		return int32(int8(b[0]))
	case 2:
		return int32(int16(binary.LittleEndian.Uint16(b)))
	case 3:
		v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
		return (v << 8) >> 8 // sign extend
	default:
		return int32(binary.LittleEndian.Uint32(b))
	}
}

// Encode writes v into b as a signed little-endian sample of width bytes.
// v must already be within Bounds(width).
func Encode(b []byte, width int, v int32) {
	switch width {
	case 1:
		b[0] = byte(int8(v))
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(int16(v)))
	case 3:
		b[0] = byte(v)
		b[1] = byte(v >> 8)
		b[2] = byte(v >> 16)
	default:
		binary.LittleEndian.PutUint32(b, uint32(v))
	}
}

// Clamp rounds x to the nearest integer and saturates it to the range of
// width. NaN maps to zero.
func Clamp(x float64, width int) int32 {
	if math.IsNaN(x) {
		return 0
	}
	lo, hi := Bounds(width)
	x = math.Round(x)
	if x > float64(hi) {
		return int32(hi)
	}
	if x < float64(lo) {
		return int32(lo)
	}
	return int32(x)
}

// ToFloat32 converts an integer sample of width bytes to [-1, 1).
func ToFloat32(v int32, width int) float32 {
	return float32(float64(v) / FullScale(width))
}

// FromFloat32 converts a normalized sample to an integer sample of width
// bytes, clamping anything outside [-1, 1) to full scale.
func FromFloat32(x float32, width int) int32 {
	return Clamp(float64(x)*FullScale(width), width)
}

// BytesToFloats decodes whole samples from src into dst and returns the
// number of samples written.
func BytesToFloats(dst []float32, src []byte, width int) int {
	n := min(len(dst), len(src)/width)
	scale := 1 / FullScale(width)

	for i := range n {
		dst[i] = float32(float64(Decode(src[i*width:], width)) * scale)
	}

	return n
}

// FloatsToBytes encodes src into dst and returns the number of bytes
// written. dst must hold len(src)*width bytes.
func FloatsToBytes(dst []byte, src []float32, width int) int {
	scale := FullScale(width)

	for i, x := range src {
		Encode(dst[i*width:], width, Clamp(float64(x)*scale, width))
	}

	return len(src) * width
}

// DecibelsToGain converts a level change in dB to a linear amplitude factor.
func DecibelsToGain(db float64) float64 {
	return math.Pow(10, db/20)
}

// CubicInterpolate performs Catmull-Rom interpolation between y1 and y2.
// x is the fractional position (0 <= x <= 1); y0 and y3 are the outer
// neighbours.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return ((a0*x+a1)*x+a2)*x + a3
}
