package port

import (
	"sync/atomic"

	"github.com/justyntemme/pinroute/pkg/framework/audio"
)

// ProvideFunc returns buffers for a channel configuration from storage the
// caller owns. ok is false when it cannot serve the configuration.
type ProvideFunc[T audio.Sample] func(in, out, frames int) (v Views[T], ok bool)

// External serves buffers supplied by the caller, typically a plugin API
// that hands out its own working memory.
type External[T audio.Sample] struct {
	provide ProvideFunc[T]
	cur     atomic.Pointer[Views[T]]
}

// NewExternal creates buffers backed by provide.
func NewExternal[T audio.Sample](provide ProvideFunc[T]) *External[T] {
	e := &External[T]{provide: provide}
	v := emptyViews[T]()
	e.cur.Store(&v)
	return e
}

// Views implements Buffers
func (e *External[T]) Views() Views[T] { return *e.cur.Load() }

// Update implements Buffers. Configurations the provider rejects or
// answers with the wrong dimensions leave the buffers inactive.
func (e *External[T]) Update(in, out, frames int) {
	v, ok := e.provide(in, out, frames)
	if !ok || v.In == nil || v.Out == nil ||
		v.In.Channels() != in || v.Out.Channels() != out ||
		v.In.Frames() < frames || v.Out.Frames() < frames {
		v = emptyViews[T]()
	} else {
		v.Frames = frames
	}
	e.cur.Store(&v)
}
