// Package dsp provides digital signal processing utilities for audio
package dsp

import "math"

// Sample is any floating point sample type
type Sample interface {
	~float32 | ~float64
}

// Buffer utilities for common audio operations. None of them allocate.

// Clear zeroes a buffer
func Clear[T Sample](buffer []T) {
	clear(buffer)
}

// Add adds source to destination
func Add[T Sample](dst, src []T) {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] += src[i]
	}
}

// AddScaled adds scaled source to destination
func AddScaled[T Sample](dst, src []T, scale T) {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] += src[i] * scale
	}
}

// Scale multiplies buffer by a constant
func Scale[T Sample](buffer []T, scale T) {
	for i := range buffer {
		buffer[i] *= scale
	}
}

// Divide divides every sample by d. Dividing instead of multiplying by 1/d
// keeps means of exact values exact (10+20)/2 == 15.
func Divide[T Sample](buffer []T, d T) {
	for i := range buffer {
		buffer[i] /= d
	}
}

// DivideStrided divides every stride-th sample starting at offset.
func DivideStrided[T Sample](buffer []T, offset, stride int, d T) {
	for i := offset; i < len(buffer); i += stride {
		buffer[i] /= d
	}
}

// MeanSquare returns the mean of the squared samples
func MeanSquare[T Sample](buffer []T) float64 {
	if len(buffer) == 0 {
		return 0
	}
	var sum float64
	for _, s := range buffer {
		sum += float64(s) * float64(s)
	}
	return sum / float64(len(buffer))
}

// Peak finds the maximum absolute value in a buffer
func Peak[T Sample](buffer []T) T {
	var peak T
	for _, s := range buffer {
		if a := T(math.Abs(float64(s))); a > peak {
			peak = a
		}
	}
	return peak
}
