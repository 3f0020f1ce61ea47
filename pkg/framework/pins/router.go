package pins

//go:generate go run ../../../internal/gen/route2x2 -o route2x2_gen.go

import (
	"fmt"
	"math/bits"

	"github.com/justyntemme/pinroute/pkg/dsp"
	"github.com/justyntemme/pinroute/pkg/framework/audio"
)

// Router copies samples between the host bus and plugin buffers of sample
// type T according to a connector's matrices.
//
// A plugin channel fed by k host channels receives their mean; k == 1 is
// copied unscaled and k == 0 is silence. A host channel no plugin output
// is routed to is left untouched. Effect routers additionally blend the
// routed signal into the original, out = orig*dry + mean*wet.
//
// RouteToPlugin and RouteFromPlugin never allocate or lock and are meant
// for the audio thread. Dimension mismatches between the connector and
// the buffers panic.
type Router[T audio.Sample] struct {
	c       *Connector
	wetDry  bool
	wet     float32
	dry     float32
	scratch []float32
}

// NewRouter creates an instrument style router without wet/dry mixing.
func NewRouter[T audio.Sample](c *Connector) *Router[T] {
	return &Router[T]{c: c}
}

// NewEffectRouter creates an effect router blending with wet and dry
// gains, for periods of up to maxFrames frames.
func NewEffectRouter[T audio.Sample](c *Connector, maxFrames int, wet, dry float32) *Router[T] {
	return &Router[T]{
		c:       c,
		wetDry:  true,
		wet:     wet,
		dry:     dry,
		scratch: make([]float32, 2*maxFrames),
	}
}

// Connector returns the connector the router reads
func (r *Router[T]) Connector() *Connector { return r.c }

// WetDry reports whether the router blends with the original signal
func (r *Router[T]) WetDry() bool { return r.wetDry }

// Mix returns the wet and dry gains
func (r *Router[T]) Mix() (wet, dry float32) { return r.wet, r.dry }

// SetMix changes the wet and dry gains. It must be called from the
// goroutine that routes, typically once at the start of a period.
func (r *Router[T]) SetMix(wet, dry float32) {
	r.wet, r.dry = wet, dry
}

// RouteToPlugin fills the plugin input buffer out from the host bus in.
// The whole buffer is cleared first; in.Frames frames are routed.
func (r *Router[T]) RouteToPlugin(in audio.CoreBus, out audio.Buffer[T]) {
	r.toPlugin(r.c.cur.Load(), in, out)
}

// RouteFromPlugin writes the plugin output buffer in into the routed
// channels of the host bus inOut.
func (r *Router[T]) RouteFromPlugin(in audio.Buffer[T], inOut audio.CoreBus) {
	r.fromPlugin(r.c.cur.Load(), in, inOut)
}

// Process routes inOut into the plugin input buffer in, calls fn, and
// routes the plugin output buffer out back into inOut, all against one
// connector snapshot. in and out may be the same buffer. When the buffers
// do not fit the connector's current channel counts nothing is touched,
// fn is not called and Process reports false.
func (r *Router[T]) Process(inOut audio.CoreBus, in, out audio.Buffer[T], fn func()) bool {
	st := r.c.cur.Load()
	if !r.fits(st, inOut, in, out) {
		return false
	}
	r.toPlugin(st, inOut, in)
	fn()
	r.fromPlugin(st, out, inOut)
	return true
}

func (r *Router[T]) fits(st *state, inOut audio.CoreBus, in, out audio.Buffer[T]) bool {
	if in.Channels() != st.in.ChannelCount() || out.Channels() != st.out.ChannelCount() {
		return false
	}
	if in.Frames() < inOut.Frames || out.Frames() < inOut.Frames {
		return false
	}
	if int(st.upper.Load())/2 > inOut.NumPairs() {
		return false
	}
	return !r.wetDry || len(r.scratch) >= 2*inOut.Frames
}

func (r *Router[T]) toPlugin(st *state, in audio.CoreBus, out audio.Buffer[T]) {
	channels := st.in.ChannelCount()
	if channels == 0 {
		return
	}
	if out.Channels() != channels {
		panic(mismatch("plugin input channels", out.Channels(), channels))
	}
	if out.Frames() < in.Frames {
		panic(mismatch("plugin input frames", out.Frames(), in.Frames))
	}
	pairs := int(st.upper.Load()) / 2
	if pairs > in.NumPairs() {
		panic(mismatch("host pairs", in.NumPairs(), pairs))
	}

	out.Clear()
	switch b := out.(type) {
	case *audio.SplitBuffer[T]:
		toSplit(st, in, b, pairs)
	case *audio.InterleavedBuffer[T]:
		if f, ok := any(b).(*audio.InterleavedBuffer[float32]); ok && f.Channels() == 2 {
			toFrames(st, in, f, pairs)
			return
		}
		toGeneric(st, in, out, pairs)
	default:
		toGeneric(st, in, out, pairs)
	}
}

func (r *Router[T]) fromPlugin(st *state, in audio.Buffer[T], inOut audio.CoreBus) {
	channels := st.out.ChannelCount()
	if channels == 0 {
		return
	}
	if in.Channels() != channels {
		panic(mismatch("plugin output channels", in.Channels(), channels))
	}
	if in.Frames() < inOut.Frames {
		panic(mismatch("plugin output frames", in.Frames(), inOut.Frames))
	}
	pairs := int(st.upper.Load()) / 2
	if pairs > inOut.NumPairs() {
		panic(mismatch("host pairs", inOut.NumPairs(), pairs))
	}
	if r.wetDry && len(r.scratch) < 2*inOut.Frames {
		panic(mismatch("scratch frames", len(r.scratch)/2, inOut.Frames))
	}

	switch b := in.(type) {
	case *audio.SplitBuffer[T]:
		r.fromSplit(st, b, inOut, pairs)
	case *audio.InterleavedBuffer[T]:
		if f, ok := any(b).(*audio.InterleavedBuffer[float32]); ok && f.Channels() == 2 {
			r.fromFrames(st, f, inOut, pairs)
			return
		}
		r.fromGeneric(st, in, inOut, pairs)
	default:
		r.fromGeneric(st, in, inOut, pairs)
	}
}

func mismatch(what string, have, want int) string {
	return fmt.Sprintf("pins: %s: have %d, want %d", what, have, want)
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}

func toSplit[T audio.Sample](st *state, in audio.CoreBus, out *audio.SplitBuffer[T], pairs int) {
	frames := in.Frames
	for p := 0; p < out.Channels(); p++ {
		dst := out.Channel(p)[:frames]
		n := 0
		for pair := 0; pair < pairs; pair++ {
			h := pair * 2
			src := in.Pairs[pair][:frames*2]
			switch bit(st.in.Enabled(h, p))<<1 | bit(st.in.Enabled(h+1, p)) {
			case 0b10:
				addLane(dst, src, 0)
				n++
			case 0b01:
				addLane(dst, src, 1)
				n++
			case 0b11:
				addPair(dst, src)
				n += 2
			}
		}
		if n > 1 {
			dsp.Divide(dst, T(n))
		}
	}
}

func addLane[T audio.Sample](dst []T, src []float32, lane int) {
	for f := range dst {
		dst[f] += T(src[f*2+lane])
	}
}

func addPair[T audio.Sample](dst []T, src []float32) {
	for f := range dst {
		dst[f] += T(src[f*2]) + T(src[f*2+1])
	}
}

func toFrames(st *state, in audio.CoreBus, out *audio.InterleavedBuffer[float32], pairs int) {
	n := in.Frames * 2
	dst := out.Data()[:n]
	var left, right int
	for pair := 0; pair < pairs; pair++ {
		h := pair * 2
		idx := bit(st.in.Enabled(h, 0))<<3 | bit(st.in.Enabled(h+1, 0))<<2 |
			bit(st.in.Enabled(h, 1))<<1 | bit(st.in.Enabled(h+1, 1))
		if idx == 0 {
			continue
		}
		toFrame[idx](dst, in.Pairs[pair][:n])
		left += bits.OnesCount(uint(idx >> 2))
		right += bits.OnesCount(uint(idx & 3))
	}
	if left > 1 {
		dsp.DivideStrided(dst, 0, 2, float32(left))
	}
	if right > 1 {
		dsp.DivideStrided(dst, 1, 2, float32(right))
	}
}

func toGeneric[T audio.Sample](st *state, in audio.CoreBus, out audio.Buffer[T], pairs int) {
	frames := in.Frames
	for p := 0; p < out.Channels(); p++ {
		n := 0
		for h := 0; h < pairs*2; h++ {
			if !st.in.Enabled(h, p) {
				continue
			}
			n++
			for f := 0; f < frames; f++ {
				out.Set(p, f, out.At(p, f)+T(in.At(h, f)))
			}
		}
		if n > 1 {
			d := T(n)
			for f := 0; f < frames; f++ {
				out.Set(p, f, out.At(p, f)/d)
			}
		}
	}
}

func (r *Router[T]) fromSplit(st *state, in *audio.SplitBuffer[T], inOut audio.CoreBus, pairs int) {
	frames := inOut.Frames
	for pair := 0; pair < pairs; pair++ {
		h := pair * 2
		dst := inOut.Pairs[pair][:frames*2]
		switch bit(st.routed[h].Load())<<1 | bit(st.routed[h+1].Load()) {
		case 0b10:
			r.fromSplitLane(st, in, dst, h, 0)
		case 0b01:
			r.fromSplitLane(st, in, dst, h+1, 1)
		case 0b11:
			r.fromSplitLane(st, in, dst, h, 0)
			r.fromSplitLane(st, in, dst, h+1, 1)
		}
	}
}

// fromSplitLane mixes every plugin output routed to host channel h into
// one lane of its interleaved pair.
func (r *Router[T]) fromSplitLane(st *state, in *audio.SplitBuffer[T], dst []float32, h, lane int) {
	acc := dst
	if r.wetDry {
		acc = r.scratch[:len(dst)]
	}
	for s := lane; s < len(acc); s += 2 {
		acc[s] = 0
	}

	frames := len(dst) / 2
	n := 0
	for p := 0; p < in.Channels(); p++ {
		if !st.out.Enabled(h, p) {
			continue
		}
		n++
		for f, v := range in.Channel(p)[:frames] {
			acc[f*2+lane] += float32(v)
		}
	}

	if !r.wetDry {
		if n > 1 {
			dsp.DivideStrided(acc, lane, 2, float32(n))
		}
		return
	}
	wet, dry := r.wet, r.dry
	if n > 1 {
		d := float32(n)
		for s := lane; s < len(dst); s += 2 {
			dst[s] = dst[s]*dry + acc[s]/d*wet
		}
		return
	}
	for s := lane; s < len(dst); s += 2 {
		dst[s] = dst[s]*dry + acc[s]*wet
	}
}

func (r *Router[T]) fromFrames(st *state, in *audio.InterleavedBuffer[float32], inOut audio.CoreBus, pairs int) {
	n := inOut.Frames * 2
	src := in.Data()[:n]
	for pair := 0; pair < pairs; pair++ {
		h := pair * 2
		idx := bit(st.out.Enabled(h, 0))<<3 | bit(st.out.Enabled(h, 1))<<2 |
			bit(st.out.Enabled(h+1, 0))<<1 | bit(st.out.Enabled(h+1, 1))
		if idx == 0 {
			continue
		}
		dst := inOut.Pairs[pair][:n]
		if r.wetDry {
			fromFrameWetDry[idx](dst, src, r.wet, r.dry)
		} else {
			fromFrame[idx](dst, src)
		}
	}
}

func (r *Router[T]) fromGeneric(st *state, in audio.Buffer[T], inOut audio.CoreBus, pairs int) {
	frames := inOut.Frames
	channels := in.Channels()
	for h := 0; h < pairs*2; h++ {
		if !st.routed[h].Load() {
			continue
		}
		n := 0
		for p := 0; p < channels; p++ {
			n += bit(st.out.Enabled(h, p))
		}
		for f := 0; f < frames; f++ {
			var acc float32
			for p := 0; p < channels; p++ {
				if st.out.Enabled(h, p) {
					acc += float32(in.At(p, f))
				}
			}
			if n > 1 {
				acc /= float32(n)
			}
			if r.wetDry {
				acc = inOut.At(h, f)*r.dry + acc*r.wet
			}
			inOut.Set(h, f, acc)
		}
	}
}
