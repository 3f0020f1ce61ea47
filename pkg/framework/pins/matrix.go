package pins

import (
	"fmt"
	"sync/atomic"

	"github.com/justyntemme/pinroute/pkg/framework/bus"
)

// Default name formats, given the 1-based channel number.
const (
	DefaultChannelFormat = "Channel %d"
	DefaultHostFormat    = "Track Ch %d"
)

// Matrix is the connection grid of one direction of a plugin: for every
// host channel h and plugin channel p, whether h feeds p (inputs) or p
// feeds h (outputs).
//
// Cells are atomic so Enabled may race with SetEnabled. Resizing replaces
// the grid and must not race with anything; Connector publishes resized
// clones instead of resizing a matrix the audio thread can see.
type Matrix struct {
	hosts    int
	channels int
	cells    []atomic.Bool

	hostFormat    string
	channelFormat string
	names         []string
}

// NewMatrix creates a matrix with default connections. pluginChannels may
// be bus.DynamicChannelCount when the plugin has not reported it yet.
func NewMatrix(hostChannels, pluginChannels int) *Matrix {
	m := &Matrix{
		channels:      bus.DynamicChannelCount,
		hostFormat:    DefaultHostFormat,
		channelFormat: DefaultChannelFormat,
	}
	m.SetPluginChannelCount(pluginChannels, "")
	m.SetHostChannelCount(hostChannels, "")
	return m
}

// HostChannelCount returns the number of rows
func (m *Matrix) HostChannelCount() int { return m.hosts }

// ChannelCount returns the number of plugin channels, 0 while unknown
func (m *Matrix) ChannelCount() int { return max(m.channels, 0) }

// Known reports whether the plugin channel count has been set
func (m *Matrix) Known() bool { return m.channels != bus.DynamicChannelCount }

// SetHostChannelCount resizes the host dimension. A grid that had no cells
// starts from DefaultConnections; otherwise overlapping cells are kept and
// new rows start unconnected. An empty nameFormat keeps the current one.
func (m *Matrix) SetHostChannelCount(n int, nameFormat string) {
	if nameFormat != "" {
		m.hostFormat = nameFormat
	}
	if n < 0 {
		n = 0
	}
	if n == m.hosts {
		return
	}
	m.resize(n, m.channels)
}

// SetPluginChannelCount resizes the plugin dimension, with the same
// default and preservation rules as SetHostChannelCount. Passing
// bus.DynamicChannelCount marks the count unknown again.
func (m *Matrix) SetPluginChannelCount(n int, nameFormat string) {
	if nameFormat != "" {
		m.channelFormat = nameFormat
	}
	if n < 0 {
		n = bus.DynamicChannelCount
	}
	if n == m.channels {
		return
	}
	m.resize(m.hosts, n)
}

func (m *Matrix) resize(hosts, channels int) {
	oldCols := m.ChannelCount()
	oldCells := m.cells
	cols := max(channels, 0)

	cells := make([]atomic.Bool, hosts*cols)
	if len(oldCells) == 0 {
		for h, row := range DefaultConnections(hosts, cols) {
			for p, v := range row {
				cells[h*cols+p].Store(v)
			}
		}
	} else {
		for h := 0; h < min(hosts, m.hosts); h++ {
			for p := 0; p < min(cols, oldCols); p++ {
				cells[h*cols+p].Store(oldCells[h*oldCols+p].Load())
			}
		}
	}

	m.hosts = hosts
	m.channels = channels
	m.cells = cells
}

// Enabled reports whether host channel h and plugin channel p are
// connected. Indices are the caller's responsibility.
func (m *Matrix) Enabled(h, p int) bool {
	return m.cells[h*m.ChannelCount()+p].Load()
}

// SetEnabled connects or disconnects one cell and reports whether the
// value changed. It panics on indices outside the grid.
func (m *Matrix) SetEnabled(h, p int, enabled bool) bool {
	if h < 0 || h >= m.hosts || p < 0 || p >= m.ChannelCount() {
		panic(fmt.Sprintf("pins: cell (%d, %d) outside %dx%d matrix", h, p, m.hosts, m.ChannelCount()))
	}
	return m.cells[h*m.ChannelCount()+p].Swap(enabled) != enabled
}

// RowAny reports whether host channel h is connected to any plugin channel.
func (m *Matrix) RowAny(h int) bool {
	cols := m.ChannelCount()
	for p := 0; p < cols; p++ {
		if m.cells[h*cols+p].Load() {
			return true
		}
	}
	return false
}

// ConnectedCount returns how many host channels feed plugin channel p.
func (m *Matrix) ConnectedCount(p int) int {
	n := 0
	for h := 0; h < m.hosts; h++ {
		if m.Enabled(h, p) {
			n++
		}
	}
	return n
}

// Pins returns a copy of the grid indexed [host][plugin].
func (m *Matrix) Pins() [][]bool {
	pins := DefaultConnections(m.hosts, m.ChannelCount())
	for h := range pins {
		for p := range pins[h] {
			pins[h][p] = m.Enabled(h, p)
		}
	}
	return pins
}

// ChannelName returns the custom name of plugin channel p, or a name
// generated from the channel format.
func (m *Matrix) ChannelName(p int) string {
	if p < len(m.names) && m.names[p] != "" {
		return m.names[p]
	}
	return fmt.Sprintf(m.channelFormat, p+1)
}

// HostChannelName returns the generated name of host channel h.
func (m *Matrix) HostChannelName(h int) string {
	return fmt.Sprintf(m.hostFormat, h+1)
}

// SetChannelNames replaces the custom plugin channel names. Missing or
// empty entries fall back to generated names.
func (m *Matrix) SetChannelNames(names []string) {
	m.names = append([]string(nil), names...)
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	c := &Matrix{
		hosts:         m.hosts,
		channels:      m.channels,
		cells:         make([]atomic.Bool, len(m.cells)),
		hostFormat:    m.hostFormat,
		channelFormat: m.channelFormat,
		names:         append([]string(nil), m.names...),
	}
	for i := range m.cells {
		c.cells[i].Store(m.cells[i].Load())
	}
	return c
}
