// Package param provides parameters that the control thread writes and the
// audio thread reads once per period without locking.
package param

import (
	"fmt"
	"math"
	"strconv"
	"sync/atomic"
)

// Parameter is a plugin parameter with a normalized 0-1 value.
type Parameter struct {
	ID           uint32
	Name         string
	Unit         string
	Min          float64
	Max          float64
	DefaultValue float64 // normalized

	value atomic.Uint64

	formatFunc func(float64) string
	parseFunc  func(string) (float64, error)
}

// Value returns the current normalized value (0-1)
func (p *Parameter) Value() float64 {
	return math.Float64frombits(p.value.Load())
}

// SetValue sets the normalized value, clamped to 0-1
func (p *Parameter) SetValue(value float64) {
	p.value.Store(math.Float64bits(min(max(value, 0), 1)))
}

// PlainValue returns the value in the parameter's own range
func (p *Parameter) PlainValue() float64 {
	return p.Denormalize(p.Value())
}

// SetPlainValue sets the value from the parameter's own range
func (p *Parameter) SetPlainValue(plain float64) {
	p.SetValue(p.Normalize(plain))
}

// Reset restores the default value
func (p *Parameter) Reset() {
	p.SetValue(p.DefaultValue)
}

// SetFormatter sets custom value formatting
func (p *Parameter) SetFormatter(format func(float64) string, parse func(string) (float64, error)) {
	p.formatFunc = format
	p.parseFunc = parse
}

// FormatValue returns the formatted plain value of a normalized value
func (p *Parameter) FormatValue(normalized float64) string {
	plain := p.Denormalize(normalized)
	if p.formatFunc != nil {
		return p.formatFunc(plain)
	}
	return fmt.Sprintf("%.2f", plain)
}

// String formats the current value
func (p *Parameter) String() string {
	return fmt.Sprintf("%s: %s", p.Name, p.FormatValue(p.Value()))
}

// ParseValue parses a plain value string to a normalized value
func (p *Parameter) ParseValue(str string) (float64, error) {
	parse := p.parseFunc
	if parse == nil {
		parse = func(s string) (float64, error) { return strconv.ParseFloat(s, 64) }
	}
	plain, err := parse(str)
	if err != nil {
		return 0, fmt.Errorf("parameter %s: %w", p.Name, err)
	}
	return p.Normalize(plain), nil
}

// Normalize converts a plain value to 0-1
func (p *Parameter) Normalize(plain float64) float64 {
	if p.Max <= p.Min {
		return 0
	}
	return min(max((plain-p.Min)/(p.Max-p.Min), 0), 1)
}

// Denormalize converts a 0-1 value to the plain range
func (p *Parameter) Denormalize(normalized float64) float64 {
	return p.Min + normalized*(p.Max-p.Min)
}
