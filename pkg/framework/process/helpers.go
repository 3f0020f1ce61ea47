package process

import "github.com/justyntemme/pinroute/pkg/framework/audio"

// NumChannels returns the minimum of input and output channels
func (c *Context[T]) NumChannels() int {
	return min(c.In.Channels(), c.Out.Channels())
}

// NumStereoChannels returns the number of channels capped at 2
func (c *Context[T]) NumStereoChannels() int {
	return min(c.NumChannels(), 2)
}

// ProcessChannels calls fn with the input and output samples of every
// channel both sides have. It only works on split buffers and reports
// false without calling fn otherwise.
func (c *Context[T]) ProcessChannels(fn func(ch int, input, output []T)) bool {
	in, ok := c.In.(*audio.SplitBuffer[T])
	if !ok {
		return false
	}
	out, ok := c.Out.(*audio.SplitBuffer[T])
	if !ok {
		return false
	}
	n := c.NumChannels()
	for ch := 0; ch < n; ch++ {
		fn(ch, in.Channel(ch)[:c.Frames], out.Channel(ch)[:c.Frames])
	}
	return true
}

// ProcessSamples maps every input sample of the shared channels through
// fn into the output, whatever the buffer layout.
func (c *Context[T]) ProcessSamples(fn func(ch, frame int, x T) T) {
	n := c.NumChannels()
	for ch := 0; ch < n; ch++ {
		for i := 0; i < c.Frames; i++ {
			c.Out.Set(ch, i, fn(ch, i, c.In.At(ch, i)))
		}
	}
}

// Generate writes fn's samples to every output channel, for instruments.
func (c *Context[T]) Generate(fn func(ch, frame int) T) {
	for ch := 0; ch < c.Out.Channels(); ch++ {
		for i := 0; i < c.Frames; i++ {
			c.Out.Set(ch, i, fn(ch, i))
		}
	}
}
