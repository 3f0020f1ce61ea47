package pins

import (
	"math/rand/v2"
	"testing"

	"github.com/justyntemme/pinroute/pkg/framework/bus"
)

func checkDimensions(t *testing.T, m *Matrix, hosts, channels int) {
	t.Helper()
	pins := m.Pins()
	if len(pins) != hosts || m.HostChannelCount() != hosts {
		t.Fatalf("Expected %d rows, got %d (count %d)", hosts, len(pins), m.HostChannelCount())
	}
	for h, row := range pins {
		if len(row) != channels {
			t.Fatalf("Row %d: expected %d columns, got %d", h, channels, len(row))
		}
	}
	if m.ChannelCount() != channels {
		t.Fatalf("Expected %d channels, got %d", channels, m.ChannelCount())
	}
}

func TestMatrixUnknownChannelCount(t *testing.T) {
	m := NewMatrix(2, bus.DynamicChannelCount)
	if m.Known() {
		t.Error("Matrix should not know its channel count yet")
	}
	checkDimensions(t, m, 2, 0)

	m.SetPluginChannelCount(2, "")
	if !m.Known() {
		t.Error("Matrix should know its channel count")
	}
	checkDimensions(t, m, 2, 2)
	if !m.Enabled(0, 0) || m.Enabled(0, 1) || m.Enabled(1, 0) || !m.Enabled(1, 1) {
		t.Errorf("Expected identity defaults, got %v", m.Pins())
	}
}

func TestMatrixResizePreservesEdits(t *testing.T) {
	m := NewMatrix(2, 2)
	m.SetEnabled(0, 0, false)
	m.SetEnabled(1, 0, true)

	m.SetPluginChannelCount(4, "")
	checkDimensions(t, m, 2, 4)
	want := [][]bool{{false, false, false, false}, {true, true, false, false}}
	for h := range want {
		for p := range want[h] {
			if m.Enabled(h, p) != want[h][p] {
				t.Errorf("After growing columns, (%d, %d) = %v, want %v", h, p, m.Enabled(h, p), want[h][p])
			}
		}
	}

	m.SetHostChannelCount(4, "")
	checkDimensions(t, m, 4, 4)
	for h := 2; h < 4; h++ {
		if m.RowAny(h) {
			t.Errorf("New host row %d should be unconnected", h)
		}
	}

	m.SetPluginChannelCount(1, "")
	checkDimensions(t, m, 4, 1)
	if m.Enabled(0, 0) || !m.Enabled(1, 0) {
		t.Errorf("Shrinking columns lost edits: %v", m.Pins())
	}
}

func TestMatrixFreshAfterZeroColumns(t *testing.T) {
	m := NewMatrix(2, 0)
	checkDimensions(t, m, 2, 0)
	m.SetPluginChannelCount(1, "")
	if !m.Enabled(0, 0) || !m.Enabled(1, 0) {
		t.Errorf("Expected mono defaults after fresh initialization, got %v", m.Pins())
	}
}

func TestMatrixDimensionInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	m := NewMatrix(2, bus.DynamicChannelCount)
	hosts, channels := 2, 0

	for i := 0; i < 500; i++ {
		switch rng.IntN(3) {
		case 0:
			hosts = rng.IntN(5) * 2
			m.SetHostChannelCount(hosts, "")
		case 1:
			channels = rng.IntN(6)
			m.SetPluginChannelCount(channels, "")
		case 2:
			if hosts > 0 && channels > 0 {
				m.SetEnabled(rng.IntN(hosts), rng.IntN(channels), rng.IntN(2) == 0)
			}
		}
		checkDimensions(t, m, hosts, channels)
	}
}

func TestMatrixSetEnabled(t *testing.T) {
	m := NewMatrix(2, 2)
	if m.SetEnabled(0, 0, true) {
		t.Error("Setting an enabled pin should not report a change")
	}
	if !m.SetEnabled(0, 1, true) {
		t.Error("Enabling a disabled pin should report a change")
	}
	if got := m.ConnectedCount(1); got != 2 {
		t.Errorf("Expected 2 host channels on plugin channel 1, got %d", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for a cell outside the matrix")
		}
	}()
	m.SetEnabled(2, 0, true)
}

func TestMatrixNames(t *testing.T) {
	m := NewMatrix(2, 3)
	if got := m.ChannelName(0); got != "Channel 1" {
		t.Errorf("Expected generated name, got %q", got)
	}
	if got := m.HostChannelName(1); got != "Track Ch 2" {
		t.Errorf("Expected generated host name, got %q", got)
	}

	m.SetChannelNames([]string{"", "Side"})
	if got := m.ChannelName(1); got != "Side" {
		t.Errorf("Expected custom name, got %q", got)
	}
	if got := m.ChannelName(0); got != "Channel 1" {
		t.Errorf("Empty custom name should fall back, got %q", got)
	}

	m.SetPluginChannelCount(3, "Out %d")
	if got := m.ChannelName(2); got != "Out 3" {
		t.Errorf("Expected new format, got %q", got)
	}
}

func TestMatrixClone(t *testing.T) {
	m := NewMatrix(2, 2)
	c := m.Clone()
	c.SetEnabled(0, 0, false)
	if !m.Enabled(0, 0) {
		t.Error("Editing a clone changed the original")
	}
	c.SetHostChannelCount(4, "")
	if m.HostChannelCount() != 2 {
		t.Error("Resizing a clone changed the original")
	}
}

func TestRoutedChannelsExhaustive(t *testing.T) {
	for hosts := 1; hosts <= 4; hosts++ {
		for channels := 1; channels <= 4; channels++ {
			m := NewMatrix(hosts, channels)
			cells := hosts * channels
			for mask := 0; mask < 1<<cells; mask++ {
				for i := 0; i < cells; i++ {
					m.SetEnabled(i/channels, i%channels, mask&(1<<i) != 0)
				}
				routed := RoutedChannels(m)
				for h := 0; h < hosts; h++ {
					want := false
					for p := 0; p < channels; p++ {
						want = want || m.Enabled(h, p)
					}
					if routed[h] != want {
						t.Fatalf("%dx%d mask %b: routed[%d] = %v, want %v", hosts, channels, mask, h, routed[h], want)
					}
				}
			}
		}
	}
}

func TestHostUpperBound(t *testing.T) {
	in := NewMatrix(6, 2)
	out := NewMatrix(6, 2)
	if got := HostUpperBound(in, out); got != 2 {
		t.Errorf("Expected bound 2 for defaults, got %d", got)
	}

	out.SetEnabled(4, 1, true)
	if got := HostUpperBound(in, out); got != 6 {
		t.Errorf("Expected bound 6, got %d", got)
	}

	for h := 0; h < 6; h++ {
		for p := 0; p < 2; p++ {
			in.SetEnabled(h, p, false)
			out.SetEnabled(h, p, false)
		}
	}
	if got := HostUpperBound(in, out); got != 0 {
		t.Errorf("Expected bound 0 without pins, got %d", got)
	}
}
