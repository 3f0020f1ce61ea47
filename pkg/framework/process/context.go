// Package process runs plugin processing functions between the host bus
// and a plugin's own buffers.
package process

import (
	"github.com/justyntemme/pinroute/pkg/framework/audio"
	"github.com/justyntemme/pinroute/pkg/framework/param"
)

// Context is what a plugin function sees for one period: its routed input,
// the output it must fill, and its parameters.
type Context[T audio.Sample] struct {
	In         audio.Buffer[T]
	Out        audio.Buffer[T]
	Frames     int
	SampleRate float64

	params *param.Registry
}

// Param returns the current value of a parameter (0-1 normalized)
func (c *Context[T]) Param(id uint32) float64 {
	if c.params == nil {
		return 0
	}
	if p := c.params.Get(id); p != nil {
		return p.Value()
	}
	return 0
}

// ParamPlain returns the current plain value of a parameter
func (c *Context[T]) ParamPlain(id uint32) float64 {
	if c.params == nil {
		return 0
	}
	if p := c.params.Get(id); p != nil {
		return p.PlainValue()
	}
	return 0
}

// NumSamples returns the number of frames to process
func (c *Context[T]) NumSamples() int {
	return c.Frames
}

// NumInputChannels returns the number of input channels
func (c *Context[T]) NumInputChannels() int {
	return c.In.Channels()
}

// NumOutputChannels returns the number of output channels
func (c *Context[T]) NumOutputChannels() int {
	return c.Out.Channels()
}

// InPlace reports whether input and output share storage. Writing the
// output then overwrites the input.
func (c *Context[T]) InPlace() bool {
	return c.In == c.Out
}

// PassThrough copies input to output (for bypass)
func (c *Context[T]) PassThrough() {
	if c.InPlace() {
		return
	}
	n := c.NumChannels()
	for ch := 0; ch < n; ch++ {
		for i := 0; i < c.Frames; i++ {
			c.Out.Set(ch, i, c.In.At(ch, i))
		}
	}
}

// Clear zeros the output buffer
func (c *Context[T]) Clear() {
	c.Out.Clear()
}
