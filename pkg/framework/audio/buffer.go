package audio

import "fmt"

// SplitBuffer is a non-owning view of per-channel contiguous sample arrays.
type SplitBuffer[T Sample] struct {
	channels [][]T
	frames   int
}

// NewSplitBuffer wraps existing channel slices. Every slice must hold at
// least frames samples.
func NewSplitBuffer[T Sample](channels [][]T, frames int) *SplitBuffer[T] {
	for ch, c := range channels {
		if len(c) < frames {
			panic(splitShortErr(ch, len(c), frames))
		}
	}
	return &SplitBuffer[T]{channels: channels, frames: frames}
}

// SplitView carves count channels of frames samples out of one slab,
// writing the channel slices into views. views must have room for count
// entries; nothing is allocated.
func SplitView[T Sample](slab []T, views [][]T, count, frames int) SplitBuffer[T] {
	if len(slab) < count*frames {
		panic(splitShortErr(-1, len(slab), count*frames))
	}
	views = views[:count]
	for ch := range views {
		views[ch] = slab[ch*frames : (ch+1)*frames : (ch+1)*frames]
	}
	return SplitBuffer[T]{channels: views, frames: frames}
}

// Layout implements Buffer
func (b *SplitBuffer[T]) Layout() Layout { return Split }

// Channels implements Buffer
func (b *SplitBuffer[T]) Channels() int { return len(b.channels) }

// Frames implements Buffer
func (b *SplitBuffer[T]) Frames() int { return b.frames }

// Channel returns the samples of one channel
func (b *SplitBuffer[T]) Channel(ch int) []T {
	return b.channels[ch][:b.frames]
}

// At implements Buffer
func (b *SplitBuffer[T]) At(ch, frame int) T { return b.channels[ch][frame] }

// Set implements Buffer
func (b *SplitBuffer[T]) Set(ch, frame int, v T) { b.channels[ch][frame] = v }

// Clear implements Buffer
func (b *SplitBuffer[T]) Clear() {
	for _, c := range b.channels {
		clear(c[:b.frames])
	}
}

// InterleavedBuffer is a non-owning view of frame-interleaved samples.
type InterleavedBuffer[T Sample] struct {
	data     []T
	channels int
	frames   int
}

// NewInterleavedBuffer wraps an interleaved slice of channels*frames samples.
func NewInterleavedBuffer[T Sample](data []T, channels, frames int) *InterleavedBuffer[T] {
	b := InterleavedView(data, channels, frames)
	return &b
}

// InterleavedView is NewInterleavedBuffer without the heap escape, for
// providers that keep the view in a field.
func InterleavedView[T Sample](data []T, channels, frames int) InterleavedBuffer[T] {
	if len(data) < channels*frames {
		panic(splitShortErr(-1, len(data), channels*frames))
	}
	return InterleavedBuffer[T]{data: data[:channels*frames], channels: channels, frames: frames}
}

// Layout implements Buffer
func (b *InterleavedBuffer[T]) Layout() Layout { return Interleaved }

// Channels implements Buffer
func (b *InterleavedBuffer[T]) Channels() int { return b.channels }

// Frames implements Buffer
func (b *InterleavedBuffer[T]) Frames() int { return b.frames }

// Data returns the interleaved samples
func (b *InterleavedBuffer[T]) Data() []T { return b.data }

// At implements Buffer
func (b *InterleavedBuffer[T]) At(ch, frame int) T { return b.data[frame*b.channels+ch] }

// Set implements Buffer
func (b *InterleavedBuffer[T]) Set(ch, frame int, v T) { b.data[frame*b.channels+ch] = v }

// Clear implements Buffer
func (b *InterleavedBuffer[T]) Clear() { clear(b.data) }

// IsStereoFrame reports whether the buffer uses the 2-channel float32
// sample frame layout that the host bus itself uses.
func (b *InterleavedBuffer[T]) IsStereoFrame() bool {
	return b.channels == 2 && KindOf[T]() == F32
}

func splitShortErr(ch, have, want int) string {
	if ch < 0 {
		return fmt.Sprintf("audio: buffer holds %d samples, need %d", have, want)
	}
	return fmt.Sprintf("audio: channel %d holds %d samples, need %d", ch, have, want)
}
