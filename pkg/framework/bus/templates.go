package bus

import "github.com/justyntemme/pinroute/pkg/framework/audio"

// Common port configurations for different plugin types

// NewEffectStereo creates a stereo effect (2 in, 2 out)
func NewEffectStereo() Config {
	return NewBuilder().
		WithStereoInput().
		WithStereoOutput().
		MustBuild()
}

// NewEffectMono creates a mono effect (1 in, 1 out)
func NewEffectMono() Config {
	return NewBuilder().
		WithMonoInput().
		WithMonoOutput().
		MustBuild()
}

// NewMonoToStereo creates a mono-to-stereo effect
func NewMonoToStereo() Config {
	return NewBuilder().
		WithMonoInput().
		WithStereoOutput().
		MustBuild()
}

// NewEffectStereoFrame creates a stereo effect working on interleaved
// float32 frames, in place.
func NewEffectStereoFrame() Config {
	return NewBuilder().
		WithLayout(audio.Interleaved).
		WithStereoInput().
		WithStereoOutput().
		WithInPlace().
		MustBuild()
}

// NewInstrumentStereo creates an instrument (no inputs, 2 out)
func NewInstrumentStereo() Config {
	return NewBuilder().
		WithStereoOutput().
		MustBuild()
}

// NewDynamic creates a split float32 config whose counts are reported later
func NewDynamic() Config {
	return NewBuilder().
		WithDynamicChannels().
		MustBuild()
}

// Template returns a named template, used by command line tools.
func Template(name string) (Config, bool) {
	switch name {
	case "stereo":
		return NewEffectStereo(), true
	case "mono":
		return NewEffectMono(), true
	case "mono-to-stereo":
		return NewMonoToStereo(), true
	case "frame":
		return NewEffectStereoFrame(), true
	case "instrument":
		return NewInstrumentStereo(), true
	case "dynamic":
		return NewDynamic(), true
	}
	return Config{}, false
}
