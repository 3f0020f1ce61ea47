package port

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/justyntemme/pinroute/pkg/framework/audio"
	"github.com/justyntemme/pinroute/pkg/framework/debug"
)

// Shared serves split float32 buffers carved from a Region, the layout an
// out-of-process plugin expects: all input channels, then all output
// channels, each frames samples long.
type Shared struct {
	region Region
	logger *debug.Logger

	mu  sync.Mutex
	cur atomic.Pointer[Views[float32]]
	// OnResize, when set, is called with the region name after every
	// successful resize so the remote side can remap.
	OnResize func(name string)
}

// NewShared creates buffers in region.
func NewShared(region Region, logger *debug.Logger) *Shared {
	if logger == nil {
		logger = debug.Default()
	}
	s := &Shared{region: region, logger: logger}
	v := emptyViews[float32]()
	s.cur.Store(&v)
	return s
}

// Region returns the backing region
func (s *Shared) Region() Region { return s.region }

// Views implements Buffers
func (s *Shared) Views() Views[float32] { return *s.cur.Load() }

// Update implements Buffers. If the region cannot be resized the buffers
// become inactive and the error is logged.
func (s *Shared) Update(in, out, frames int) {
	in, out, frames = max(in, 0), max(out, 0), max(frames, 0)

	s.mu.Lock()
	old := s.cur.Load()
	if old.Frames == frames && old.In.Channels() == in && old.Out.Channels() == out {
		s.mu.Unlock()
		return
	}

	size := (in + out) * frames
	mem, err := s.region.Resize(size * 4)
	if err != nil {
		v := emptyViews[float32]()
		s.cur.Store(&v)
		s.mu.Unlock()
		s.logger.Error("shared plugin buffers unavailable", "in", in, "out", out, "frames", frames, "err", err)
		return
	}

	var samples []float32
	if size > 0 {
		samples = unsafe.Slice((*float32)(unsafe.Pointer(unsafe.SliceData(mem))), size)
	}
	inBuf := audio.SplitView(samples[:in*frames], make([][]float32, in), in, frames)
	outBuf := audio.SplitView(samples[in*frames:], make([][]float32, out), out, frames)
	v := Views[float32]{In: &inBuf, Out: &outBuf, Frames: frames}
	s.cur.Store(&v)
	name := s.region.Name()
	onResize := s.OnResize
	s.mu.Unlock()

	s.logger.Debug("shared plugin buffers resized", "in", in, "out", out, "frames", frames, "name", name)
	if onResize != nil {
		onResize(name)
	}
}

// Close releases the region
func (s *Shared) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := emptyViews[float32]()
	s.cur.Store(&v)
	return s.region.Close()
}
