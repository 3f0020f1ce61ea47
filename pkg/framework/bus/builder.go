package bus

import (
	"errors"
	"fmt"

	"github.com/justyntemme/pinroute/pkg/framework/audio"
)

// Builder provides a fluent API for building port configurations
type Builder struct {
	config      Config
	maxChannels int
	errors      []error
}

// NewBuilder creates a builder for a split float32 plugin with no ports
func NewBuilder() *Builder {
	return &Builder{
		config:      Config{Kind: audio.F32, Layout: audio.Split},
		maxChannels: MaxChannels,
	}
}

// WithKind sets the sample representation
func (b *Builder) WithKind(kind audio.Kind) *Builder {
	b.config.Kind = kind
	return b
}

// WithLayout sets the sample layout
func (b *Builder) WithLayout(layout audio.Layout) *Builder {
	b.config.Layout = layout
	return b
}

// WithInputs sets the input channel count
func (b *Builder) WithInputs(channels int) *Builder {
	b.config.Inputs = b.checkCount("inputs", channels)
	return b
}

// WithOutputs sets the output channel count
func (b *Builder) WithOutputs(channels int) *Builder {
	b.config.Outputs = b.checkCount("outputs", channels)
	return b
}

// WithStereoInput is a convenience method for 2 inputs
func (b *Builder) WithStereoInput() *Builder {
	return b.WithInputs(2)
}

// WithStereoOutput is a convenience method for 2 outputs
func (b *Builder) WithStereoOutput() *Builder {
	return b.WithOutputs(2)
}

// WithMonoInput is a convenience method for 1 input
func (b *Builder) WithMonoInput() *Builder {
	return b.WithInputs(1)
}

// WithMonoOutput is a convenience method for 1 output
func (b *Builder) WithMonoOutput() *Builder {
	return b.WithOutputs(1)
}

// WithDynamicChannels marks both channel counts as unknown until the plugin loads
func (b *Builder) WithDynamicChannels() *Builder {
	b.config.Inputs = DynamicChannelCount
	b.config.Outputs = DynamicChannelCount
	return b
}

// WithInPlace makes inputs and outputs share one buffer
func (b *Builder) WithInPlace() *Builder {
	b.config.InPlace = true
	return b
}

// WithMaxChannels changes the per-direction channel bound
func (b *Builder) WithMaxChannels(n int) *Builder {
	if n <= 0 {
		b.errors = append(b.errors, fmt.Errorf("invalid channel bound %d", n))
		return b
	}
	b.maxChannels = n
	return b
}

func (b *Builder) checkCount(name string, channels int) int {
	if channels < 0 && channels != DynamicChannelCount {
		b.errors = append(b.errors, fmt.Errorf("invalid %s channel count %d", name, channels))
		return 0
	}
	return channels
}

// Validate checks if the configuration is valid
func (b *Builder) Validate() error {
	if len(b.errors) > 0 {
		return fmt.Errorf("builder errors: %w", errors.Join(b.errors...))
	}
	return ValidateWithMax(b.config, b.maxChannels)
}

// Validate checks a config against the default channel bound.
func Validate(c Config) error {
	return ValidateWithMax(c, MaxChannels)
}

// ValidateWithMax checks a config against a channel bound. Dynamic counts
// pass; they are validated again once the plugin reports them.
func ValidateWithMax(c Config, maxChannels int) error {
	for _, dir := range []Direction{DirectionInput, DirectionOutput} {
		n := c.Count(dir)
		if n > maxChannels {
			return fmt.Errorf("%s channel count %d exceeds maximum of %d", dir, n, maxChannels)
		}
		if c.StereoFrame() && n != 0 && n != 2 && n != DynamicChannelCount {
			return fmt.Errorf("interleaved f32 frames carry 0 or 2 channels, %s has %d", dir, n)
		}
	}
	if c.InPlace && !c.Dynamic() && c.Inputs != c.Outputs && c.Inputs != 0 && c.Outputs != 0 {
		return fmt.Errorf("in-place processing needs matching channel counts, got %d in and %d out", c.Inputs, c.Outputs)
	}
	return nil
}

// Build returns the built configuration or an error
func (b *Builder) Build() (Config, error) {
	if err := b.Validate(); err != nil {
		return Config{}, err
	}
	return b.config, nil
}

// MustBuild returns the built configuration or panics on error
func (b *Builder) MustBuild() Config {
	config, err := b.Build()
	if err != nil {
		panic(err)
	}
	return config
}
