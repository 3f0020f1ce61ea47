package dsp

// Level constants shared by the gain and mix helpers.
const (
	// MinDB is the level reported for silence
	MinDB = -200.0
	// UnityGain is 0 dB
	UnityGain = 1.0
)
