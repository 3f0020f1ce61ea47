package pins

import "sync/atomic"

// RoutedChannels computes the routed-channel cache of an output matrix:
// entry h is true iff any plugin output feeds host channel h.
func RoutedChannels(out *Matrix) []bool {
	routed := make([]bool, out.HostChannelCount())
	for h := range routed {
		routed[h] = out.RowAny(h)
	}
	return routed
}

// HostUpperBound returns the number of host channels the router has to
// look at: one past the highest host channel connected in either matrix,
// rounded up to a whole pair.
func HostUpperBound(in, out *Matrix) int {
	hosts := min(in.HostChannelCount(), out.HostChannelCount())
	for h := hosts - 1; h >= 0; h-- {
		if in.RowAny(h) || out.RowAny(h) {
			return (h + 2) &^ 1
		}
	}
	return 0
}

// state is one published routing configuration. Dimensions never change
// after publication; cell values, routed and upper may be rewritten in
// place by pin toggles.
type state struct {
	in     *Matrix
	out    *Matrix
	routed []atomic.Bool
	upper  atomic.Int32
}

func newState(in, out *Matrix) *state {
	s := &state{
		in:     in,
		out:    out,
		routed: make([]atomic.Bool, out.HostChannelCount()),
	}
	s.refresh()
	return s
}

// refresh recomputes everything derived from the cells.
func (s *state) refresh() {
	for h := range s.routed {
		s.routed[h].Store(s.out.RowAny(h))
	}
	s.upper.Store(int32(HostUpperBound(s.in, s.out)))
}

func (s *state) matrix(dir Direction) *Matrix {
	if dir == Out {
		return s.out
	}
	return s.in
}
