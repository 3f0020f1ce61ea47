// Package port provides the plugin-side audio buffers the router reads from
// and writes to.
//
// A Buffers implementation owns or borrows storage for a plugin's input and
// output channels. Update resizes it on the control thread; Views hands the
// audio thread a consistent pair of buffers for one period.
package port

import (
	"github.com/justyntemme/pinroute/pkg/framework/audio"
	"github.com/justyntemme/pinroute/pkg/framework/pins"
)

// Views is the buffer pair of one configuration. Buffers never change
// dimensions after they are handed out; Update publishes new Views.
type Views[T audio.Sample] struct {
	In     audio.Buffer[T]
	Out    audio.Buffer[T]
	Frames int
}

// Active reports whether there is anything to process.
func (v Views[T]) Active() bool {
	if v.Frames <= 0 || v.In == nil || v.Out == nil {
		return false
	}
	return v.In.Channels() > 0 || v.Out.Channels() > 0
}

// Shared reports whether input and output are the same buffer.
func (v Views[T]) Shared() bool {
	return v.In != nil && v.In == v.Out
}

// Buffers provides plugin buffers for a channel configuration.
type Buffers[T audio.Sample] interface {
	// Views returns the current buffers. It must not allocate or block.
	Views() Views[T]
	// Update resizes the buffers for in and out channels of frames frames.
	Update(in, out, frames int)
}

// Attach sizes b for the connector's current channel counts and keeps it in
// sync with later channel count changes. frames is the engine's period
// length. The returned function detaches b again.
func Attach[T audio.Sample](c *pins.Connector, b Buffers[T], frames int) (detach func()) {
	b.Update(c.ChannelCount(pins.In), c.ChannelCount(pins.Out), frames)
	return c.Subscribe(func(ev pins.Event) {
		if ev.Kind == pins.EventChannelCounts {
			b.Update(ev.In, ev.Out, frames)
		}
	})
}

func emptyViews[T audio.Sample]() Views[T] {
	empty := audio.NewSplitBuffer[T](nil, 0)
	return Views[T]{In: empty, Out: empty}
}
