// Package bus describes the audio ports a hosted plugin exposes: how many
// input and output channels it has and how it wants its samples laid out.
package bus

import (
	"fmt"

	"github.com/justyntemme/pinroute/pkg/framework/audio"
)

// DynamicChannelCount marks a channel count that is only known once the
// plugin has been loaded.
const DynamicChannelCount = -1

// MaxChannels is the default bound on channels per direction.
const MaxChannels = 256

// Direction selects the input or output side of a plugin
type Direction int

const (
	// DirectionInput represents the plugin inputs
	DirectionInput Direction = iota
	// DirectionOutput represents the plugin outputs
	DirectionOutput
)

// String returns the direction name
func (d Direction) String() string {
	if d == DirectionOutput {
		return "out"
	}
	return "in"
}

// Config is the port layout of one plugin.
type Config struct {
	Kind    audio.Kind
	Layout  audio.Layout
	Inputs  int
	Outputs int
	// InPlace plugins read their input from and write their output to the
	// same buffer.
	InPlace bool
}

// Count returns the channel count of one direction.
func (c Config) Count(dir Direction) int {
	if dir == DirectionOutput {
		return c.Outputs
	}
	return c.Inputs
}

// Dynamic reports whether any channel count is still unknown.
func (c Config) Dynamic() bool {
	return c.Inputs == DynamicChannelCount || c.Outputs == DynamicChannelCount
}

// StereoFrame reports whether the config uses interleaved float32 frames,
// the layout of the host bus itself.
func (c Config) StereoFrame() bool {
	return c.Layout == audio.Interleaved && c.Kind == audio.F32
}

// WithCounts returns a copy of c with concrete channel counts, as reported
// by a plugin after loading.
func (c Config) WithCounts(inputs, outputs int) Config {
	c.Inputs = inputs
	c.Outputs = outputs
	return c
}

// String renders the config as "2 in, 2 out (split f32)".
func (c Config) String() string {
	s := fmt.Sprintf("%s in, %s out (%s %s)", countText(c.Inputs), countText(c.Outputs), c.Layout, c.Kind)
	if c.InPlace {
		s += " in-place"
	}
	return s
}

func countText(n int) string {
	if n == DynamicChannelCount {
		return "?"
	}
	return fmt.Sprint(n)
}
