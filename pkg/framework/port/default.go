package port

import (
	"fmt"
	"sync/atomic"

	"github.com/justyntemme/pinroute/pkg/framework/audio"
	"github.com/justyntemme/pinroute/pkg/framework/bus"
)

// Default owns heap buffers in one layout. In-place buffers share one
// buffer between input and output when both have the same channel count.
type Default[T audio.Sample] struct {
	layout  audio.Layout
	inPlace bool
	cur     atomic.Pointer[Views[T]]
}

// NewDefault creates empty buffers; call Update or Attach to size them.
func NewDefault[T audio.Sample](layout audio.Layout, inPlace bool) *Default[T] {
	d := &Default[T]{layout: layout, inPlace: inPlace}
	v := emptyViews[T]()
	d.cur.Store(&v)
	return d
}

// FromConfig creates default buffers for a port configuration. The
// configuration's sample kind must match T.
func FromConfig[T audio.Sample](cfg bus.Config) (*Default[T], error) {
	if kind := audio.KindOf[T](); cfg.Kind != kind {
		return nil, fmt.Errorf("port config wants %s samples, buffers hold %s", cfg.Kind, kind)
	}
	if err := bus.Validate(cfg); err != nil {
		return nil, err
	}
	return NewDefault[T](cfg.Layout, cfg.InPlace), nil
}

// Layout returns the sample layout
func (d *Default[T]) Layout() audio.Layout { return d.layout }

// Views implements Buffers
func (d *Default[T]) Views() Views[T] { return *d.cur.Load() }

// Update implements Buffers
func (d *Default[T]) Update(in, out, frames int) {
	in, out, frames = max(in, 0), max(out, 0), max(frames, 0)
	old := d.cur.Load()
	if old.Frames == frames && old.In.Channels() == in && old.Out.Channels() == out {
		return
	}

	v := Views[T]{Frames: frames, In: d.alloc(in, frames)}
	if d.inPlace && in == out {
		v.Out = v.In
	} else {
		v.Out = d.alloc(out, frames)
	}
	d.cur.Store(&v)
}

func (d *Default[T]) alloc(channels, frames int) audio.Buffer[T] {
	data := make([]T, channels*frames)
	if d.layout == audio.Interleaved {
		return audio.NewInterleavedBuffer(data, channels, frames)
	}
	b := audio.SplitView(data, make([][]T, channels), channels, frames)
	return &b
}
