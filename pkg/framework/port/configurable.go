package port

import (
	"sync"
	"sync/atomic"

	"github.com/justyntemme/pinroute/pkg/framework/audio"
)

// Configurable switches between local and remote buffers at runtime, for
// plugins that may run in or out of process.
type Configurable[T audio.Sample] struct {
	local  Buffers[T]
	remote Buffers[T]

	mu      sync.Mutex
	active  atomic.Pointer[Buffers[T]]
	in, out int
	frames  int
	sized   bool
}

// NewConfigurable starts out using local buffers.
func NewConfigurable[T audio.Sample](local, remote Buffers[T]) *Configurable[T] {
	c := &Configurable[T]{local: local, remote: remote}
	c.active.Store(&c.local)
	return c
}

// UseRemote selects the remote (true) or local (false) buffers. The newly
// selected buffers are sized to the last Update before they take over.
func (c *Configurable[T]) UseRemote(remote bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := &c.local
	if remote {
		next = &c.remote
	}
	if c.active.Load() == next {
		return
	}
	if c.sized {
		(*next).Update(c.in, c.out, c.frames)
	}
	c.active.Store(next)
}

// Remote reports whether remote buffers are active
func (c *Configurable[T]) Remote() bool {
	return c.active.Load() == &c.remote
}

// Views implements Buffers
func (c *Configurable[T]) Views() Views[T] {
	return (*c.active.Load()).Views()
}

// Update implements Buffers. Only the active buffers are resized.
func (c *Configurable[T]) Update(in, out, frames int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.in, c.out, c.frames, c.sized = in, out, frames, true
	(*c.active.Load()).Update(in, out, frames)
}
