package audio

// CoreBus is a view of the host's track channels for one processing period.
//
// Host channels come in L/R pairs. Pairs[i] holds 2*Frames interleaved
// samples for host channels 2i (left) and 2i+1 (right). The router never
// retains a CoreBus past the call it was passed to.
type CoreBus struct {
	Pairs  [][]float32
	Frames int
}

// NewCoreBus allocates a zeroed bus with the given number of channel pairs.
// Meant for tools and tests; the audio engine supplies its own storage.
func NewCoreBus(pairs, frames int) CoreBus {
	slab := make([]float32, pairs*frames*2)
	b := CoreBus{Pairs: make([][]float32, pairs), Frames: frames}
	for i := range b.Pairs {
		b.Pairs[i] = slab[i*frames*2 : (i+1)*frames*2 : (i+1)*frames*2]
	}
	return b
}

// NumPairs returns the number of channel pairs in the bus
func (b CoreBus) NumPairs() int {
	return len(b.Pairs)
}

// NumChannels returns the number of host channels in the bus
func (b CoreBus) NumChannels() int {
	return len(b.Pairs) * 2
}

// At returns the sample of host channel ch at frame.
func (b CoreBus) At(ch, frame int) float32 {
	return b.Pairs[ch>>1][frame*2+(ch&1)]
}

// Set writes the sample of host channel ch at frame.
func (b CoreBus) Set(ch, frame int, v float32) {
	b.Pairs[ch>>1][frame*2+(ch&1)] = v
}

// Clear zeroes every pair
func (b CoreBus) Clear() {
	for _, p := range b.Pairs {
		clear(p[:b.Frames*2])
	}
}

// CopyFrom copies the overlapping pairs and frames of src into b.
func (b CoreBus) CopyFrom(src CoreBus) {
	n := min(len(b.Pairs), len(src.Pairs))
	frames := min(b.Frames, src.Frames)
	for i := 0; i < n; i++ {
		copy(b.Pairs[i][:frames*2], src.Pairs[i][:frames*2])
	}
}

// Clone returns a deep copy of the bus.
func (b CoreBus) Clone() CoreBus {
	c := NewCoreBus(len(b.Pairs), b.Frames)
	c.CopyFrom(b)
	return c
}
