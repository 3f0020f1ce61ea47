// Package gain provides level conversion and buffer gain helpers.
package gain

import (
	"math"

	"github.com/justyntemme/pinroute/pkg/dsp"
)

// LinearToDb converts a linear gain to decibels; silence maps to dsp.MinDB.
func LinearToDb(linear float64) float64 {
	if linear <= 0 {
		return dsp.MinDB
	}
	return max(20*math.Log10(linear), dsp.MinDB)
}

// DbToLinear converts decibels to a linear gain.
func DbToLinear(db float64) float64 {
	if db <= dsp.MinDB {
		return 0
	}
	return math.Pow(10, db/20)
}

// DbToLinear32 is DbToLinear for float32 parameters.
func DbToLinear32(db float32) float32 {
	return float32(DbToLinear(float64(db)))
}

// ApplyBuffer multiplies every sample by gain.
func ApplyBuffer[T dsp.Sample](buffer []T, gain T) {
	if gain == 1 {
		return
	}
	dsp.Scale(buffer, gain)
}

// ApplyBufferTo writes src*gain into dst over the common length.
func ApplyBufferTo[T dsp.Sample](src []T, gain T, dst []T) {
	n := min(len(src), len(dst))
	for i := 0; i < n; i++ {
		dst[i] = src[i] * gain
	}
}

// Fade applies a linear gain ramp from startGain to endGain.
func Fade[T dsp.Sample](buffer []T, startGain, endGain T) {
	if len(buffer) == 0 {
		return
	}
	step := (endGain - startGain) / T(len(buffer))
	g := startGain
	for i := range buffer {
		buffer[i] *= g
		g += step
	}
}
