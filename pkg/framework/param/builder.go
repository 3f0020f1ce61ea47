package param

// Builder provides a fluent API for creating parameters
type Builder struct {
	param *Parameter
}

// New creates a new parameter builder with a 0-1 range
func New(id uint32, name string) *Builder {
	return &Builder{
		param: &Parameter{
			ID:   id,
			Name: name,
			Min:  0,
			Max:  1,
		},
	}
}

// Range sets the min and max values
func (b *Builder) Range(min, max float64) *Builder {
	b.param.Min = min
	b.param.Max = max
	return b
}

// Default sets the default value (in plain range, not normalized)
func (b *Builder) Default(value float64) *Builder {
	b.param.DefaultValue = b.param.Normalize(value)
	return b
}

// Unit sets the unit string
func (b *Builder) Unit(unit string) *Builder {
	b.param.Unit = unit
	return b
}

// Formatter sets custom formatting
func (b *Builder) Formatter(format func(float64) string, parse func(string) (float64, error)) *Builder {
	b.param.SetFormatter(format, parse)
	return b
}

// Build creates the parameter at its default value
func (b *Builder) Build() *Parameter {
	b.param.Reset()
	return b.param
}

// MixParameter creates a 0-100% wet/dry mix parameter
func MixParameter(id uint32, name string, defaultPercent float64) *Parameter {
	return New(id, name).
		Range(0, 100).
		Default(defaultPercent).
		Unit("%").
		Formatter(PercentFormatter, PercentParser).
		Build()
}

// GainParameter creates a gain parameter in dB
func GainParameter(id uint32, name string, minDB, maxDB, defaultDB float64) *Parameter {
	return New(id, name).
		Range(minDB, maxDB).
		Default(defaultDB).
		Unit("dB").
		Formatter(DecibelFormatter, DecibelParser).
		Build()
}
