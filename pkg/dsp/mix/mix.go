// Package mix provides wet/dry gain helpers for effect processing.
package mix

import (
	"math"

	"github.com/justyntemme/pinroute/pkg/dsp"
)

// DryWetGains converts a mix amount into wet and dry gains.
// amount: 0.0 = 100% dry, 1.0 = 100% wet; values outside are clamped.
func DryWetGains(amount float32) (wet, dry float32) {
	amount = clamp(amount)
	return amount, 1 - amount
}

// EqualPowerGains is DryWetGains with a cosine law, keeping the summed
// power of uncorrelated signals constant across the range.
func EqualPowerGains(amount float32) (wet, dry float32) {
	angle := float64(clamp(amount)) * math.Pi / 2
	return float32(math.Sin(angle)), float32(math.Cos(angle))
}

func clamp(amount float32) float32 {
	return min(max(amount, 0), 1)
}

// DryWet mixes one sample: dry*dryGain + wet*wetGain.
func DryWet[T dsp.Sample](dry, wet, wetGain, dryGain T) T {
	return dry*dryGain + wet*wetGain
}

// DryWetBuffer mixes wet into dry in place over the common length.
func DryWetBuffer[T dsp.Sample](dry, wet []T, wetGain, dryGain T) {
	n := min(len(dry), len(wet))
	for i := 0; i < n; i++ {
		dry[i] = dry[i]*dryGain + wet[i]*wetGain
	}
}
