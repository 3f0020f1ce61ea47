// Package audio provides non-owning audio buffer views for the host bus and
// plugin buffers, in both interleaved and split layouts.
package audio

import "unsafe"

// Layout describes how samples of several channels are arranged in memory.
//
// Given N frames and C channels with sample index i (0 <= i < N):
//   - Interleaved: channel c lives at samples[C*i + c] ("LRLRLRLR")
//   - Split: channel c lives at samples[c*N + i] ("LLLLRRRR")
type Layout int

const (
	// Interleaved places the samples of every channel next to each other per frame
	Interleaved Layout = iota
	// Split groups all samples of one channel together
	Split
)

// String returns the layout name
func (l Layout) String() string {
	switch l {
	case Interleaved:
		return "interleaved"
	case Split:
		return "split"
	default:
		return "unknown"
	}
}

// Kind is the sample representation a plugin works with
type Kind int

const (
	// F32 is 32-bit floating point
	F32 Kind = iota
	// F64 is 64-bit floating point
	F64
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case F32:
		return "f32"
	case F64:
		return "f64"
	default:
		return "unknown"
	}
}

// Sample is the set of sample types the router can deliver to a plugin.
type Sample interface {
	~float32 | ~float64
}

// ConvertSample converts between sample types
func ConvertSample[Out, In Sample](s In) Out {
	return Out(s)
}

// KindOf reports the Kind matching the sample type T.
func KindOf[T Sample]() Kind {
	var zero T
	if unsafe.Sizeof(zero) == 8 {
		return F64
	}
	return F32
}

// Buffer is the uniform channel accessor shared by every plugin buffer
// layout. Indices are not bounds checked beyond what Go does; callers
// guarantee they match the current channel configuration.
type Buffer[T Sample] interface {
	Layout() Layout
	Channels() int
	Frames() int
	At(channel, frame int) T
	Set(channel, frame int, v T)
	Clear()
}
