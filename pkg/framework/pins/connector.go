// Package pins maps host track channels onto plugin channels.
//
// A Connector owns the input and output connection matrices of one plugin
// instance. Control code edits it; a Router reads it on the audio thread to
// copy and mix samples between the host bus and the plugin buffers.
package pins

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/justyntemme/pinroute/pkg/framework/bus"
	"github.com/justyntemme/pinroute/pkg/framework/debug"
)

// Direction selects the input or output matrix
type Direction = bus.Direction

const (
	// In is the host to plugin direction
	In = bus.DirectionInput
	// Out is the plugin to host direction
	Out = bus.DirectionOutput
)

// Defaults for connector options.
const (
	DefaultHostChannels    = 2
	DefaultMaxHostChannels = 256
)

type options struct {
	id           uuid.UUID
	hostChannels int
	maxHost      int
	logger       *debug.Logger
}

// Option configures a Connector
type Option func(*options)

// WithHostChannels sets the initial number of host channels (default 2).
func WithHostChannels(n int) Option {
	return func(o *options) { o.hostChannels = n }
}

// WithMaxHostChannels sets the host channel bound (default 256).
func WithMaxHostChannels(n int) Option {
	return func(o *options) { o.maxHost = n }
}

// WithLogger sets the logger for configuration changes.
func WithLogger(l *debug.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithID sets the connector identity reported in events.
func WithID(id uuid.UUID) Option {
	return func(o *options) { o.id = id }
}

// Connector is the pin connector of one plugin instance.
//
// All methods are safe for concurrent use. Mutations are serialized by a
// mutex; the audio thread never takes it and instead loads the published
// state, which resizes replace as a whole.
type Connector struct {
	id      uuid.UUID
	maxHost int
	logger  *debug.Logger

	mu      sync.Mutex
	cur     atomic.Pointer[state]
	loaded  bool
	pending [2]*pendingRows

	subMu   sync.Mutex
	subs    []subscriber
	nextSub int
}

type subscriber struct {
	id int
	fn func(Event)
}

// NewConnector creates a connector for a plugin with the given channel
// counts. Either count may be bus.DynamicChannelCount.
func NewConnector(in, out int, opts ...Option) *Connector {
	o := options{
		hostChannels: DefaultHostChannels,
		maxHost:      DefaultMaxHostChannels,
		logger:       debug.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.id == uuid.Nil {
		o.id = uuid.New()
	}

	c := &Connector{
		id:      o.id,
		maxHost: o.maxHost,
		logger:  o.logger.With("connector", o.id.String()[:8]),
	}
	c.checkHostCount(o.hostChannels)
	c.checkPluginCount(in)
	c.checkPluginCount(out)
	c.cur.Store(newState(NewMatrix(o.hostChannels, in), NewMatrix(o.hostChannels, out)))
	return c
}

// ID returns the connector identity
func (c *Connector) ID() uuid.UUID { return c.id }

// MaxHostChannels returns the host channel bound
func (c *Connector) MaxHostChannels() int { return c.maxHost }

func (c *Connector) checkHostCount(n int) {
	if n < 0 || n > c.maxHost || n%2 != 0 {
		c.logger.Fatal("invalid host channel count", "count", n, "max", c.maxHost)
	}
}

func (c *Connector) checkPluginCount(n int) {
	if n > bus.MaxChannels || (n < 0 && n != bus.DynamicChannelCount) {
		c.logger.Fatal("invalid plugin channel count", "count", n, "max", bus.MaxChannels)
	}
}

// In returns a copy of the input matrix
func (c *Connector) In() *Matrix { return c.cur.Load().in.Clone() }

// Out returns a copy of the output matrix
func (c *Connector) Out() *Matrix { return c.cur.Load().out.Clone() }

// Matrix returns a copy of the matrix of one direction
func (c *Connector) Matrix(dir Direction) *Matrix { return c.cur.Load().matrix(dir).Clone() }

// Enabled reports whether one pin is connected.
func (c *Connector) Enabled(dir Direction, h, p int) bool {
	return c.cur.Load().matrix(dir).Enabled(h, p)
}

// ChannelCount returns the plugin channel count of one direction, 0 while unknown
func (c *Connector) ChannelCount(dir Direction) int {
	return c.cur.Load().matrix(dir).ChannelCount()
}

// HostChannelCount returns the number of host channels
func (c *Connector) HostChannelCount() int {
	return c.cur.Load().in.HostChannelCount()
}

// Initialized reports whether the plugin has any channel at all.
func (c *Connector) Initialized() bool {
	s := c.cur.Load()
	return s.in.ChannelCount() != 0 || s.out.ChannelCount() != 0
}

// Routed reports whether any plugin output feeds host channel h.
func (c *Connector) Routed(h int) bool {
	s := c.cur.Load()
	if h < 0 || h >= len(s.routed) {
		return false
	}
	return s.routed[h].Load()
}

// RoutedChannels returns a copy of the routed-channel cache.
func (c *Connector) RoutedChannels() []bool {
	s := c.cur.Load()
	routed := make([]bool, len(s.routed))
	for h := range routed {
		routed[h] = s.routed[h].Load()
	}
	return routed
}

// HostChannelsUpperBound returns the number of host channels in use.
func (c *Connector) HostChannelsUpperBound() int {
	return int(c.cur.Load().upper.Load())
}

// ChannelCountText describes the plugin channel counts, "2 in, 2 out".
func (c *Connector) ChannelCountText() string {
	s := c.cur.Load()
	return fmt.Sprintf("%s in, %s out", countText(s.in), countText(s.out))
}

func countText(m *Matrix) string {
	if !m.Known() {
		return "?"
	}
	return fmt.Sprint(m.ChannelCount())
}

// SetPluginChannelCounts resizes both matrices once the plugin reports its
// channel counts.
func (c *Connector) SetPluginChannelCounts(in, out int) {
	c.checkPluginCount(in)
	c.checkPluginCount(out)
	c.resize(func(s *state) {
		s.in.SetPluginChannelCount(in, "")
		s.out.SetPluginChannelCount(out, "")
	})
}

// SetPluginChannelCount resizes the matrix of one direction.
func (c *Connector) SetPluginChannelCount(dir Direction, n int) {
	c.checkPluginCount(n)
	c.resize(func(s *state) {
		s.matrix(dir).SetPluginChannelCount(n, "")
	})
}

// SetHostChannelCount resizes the host dimension of both matrices. The
// count must be even and within the host channel bound.
func (c *Connector) SetHostChannelCount(n int) {
	c.checkHostCount(n)
	c.resize(func(s *state) {
		s.in.SetHostChannelCount(n, "")
		s.out.SetHostChannelCount(n, "")
	})
}

// SetChannelNames sets custom plugin channel names for one direction.
func (c *Connector) SetChannelNames(dir Direction, names []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	old := c.cur.Load()
	next := newState(old.in.Clone(), old.out.Clone())
	next.matrix(dir).SetChannelNames(names)
	c.cur.Store(next)
}

// ChannelName returns the name of plugin channel p of one direction.
func (c *Connector) ChannelName(dir Direction, p int) string {
	return c.cur.Load().matrix(dir).ChannelName(p)
}

// resize applies fn to clones of the current matrices and publishes them.
func (c *Connector) resize(fn func(*state)) {
	c.mu.Lock()
	old := c.cur.Load()
	next := &state{in: old.in.Clone(), out: old.out.Clone()}
	fn(next)
	if sameShape(old.in, next.in) && sameShape(old.out, next.out) {
		c.mu.Unlock()
		return
	}
	c.applyPending(next)
	next = newState(next.in, next.out)
	c.cur.Store(next)
	ev := c.countsEvent(next)
	c.mu.Unlock()

	c.logger.Info("channel counts changed", "in", ev.In, "out", ev.Out, "host", ev.Host, "upper", next.upper.Load())
	c.notify(ev)
}

func sameShape(a, b *Matrix) bool {
	return a.hosts == b.hosts && a.channels == b.channels
}

// SetPin connects or disconnects one pin and reports whether it changed.
// Toggles of existing cells do not republish the state; the routed-channel
// cache and the upper bound are recomputed before SetPin returns.
func (c *Connector) SetPin(dir Direction, h, p int, enabled bool) bool {
	c.mu.Lock()
	s := c.cur.Load()
	m := s.matrix(dir)
	if h < 0 || h >= m.HostChannelCount() || p < 0 || p >= m.ChannelCount() {
		c.mu.Unlock()
		c.logger.Fatal("pin outside matrix", "dir", dir, "host", h, "plugin", p,
			"hosts", m.HostChannelCount(), "channels", m.ChannelCount())
	}
	changed := m.SetEnabled(h, p, enabled)
	if changed {
		s.refresh()
	}
	c.mu.Unlock()

	if !changed {
		return false
	}
	c.logger.Debug("pin changed", "dir", dir, "host", h, "plugin", p, "enabled", enabled)
	c.notify(Event{
		Kind:          EventPin,
		Source:        c.id,
		Direction:     dir,
		HostChannel:   h,
		PluginChannel: p,
		Enabled:       enabled,
	})
	return true
}

// Toggle flips one pin and returns its new value.
func (c *Connector) Toggle(dir Direction, h, p int) bool {
	v := !c.Enabled(dir, h, p)
	c.SetPin(dir, h, p, v)
	return v
}

func (c *Connector) countsEvent(s *state) Event {
	return Event{
		Kind:   EventChannelCounts,
		Source: c.id,
		In:     s.in.ChannelCount(),
		Out:    s.out.ChannelCount(),
		Host:   s.in.HostChannelCount(),
	}
}
