package pins

import "github.com/google/uuid"

// EventKind identifies what changed on a connector
type EventKind int

const (
	// EventChannelCounts is sent after a plugin or host channel count changed
	EventChannelCounts EventKind = iota
	// EventPin is sent after a single pin was connected or disconnected
	EventPin
	// EventLoaded is sent after persisted settings were applied
	EventLoaded
)

// String returns the event kind name
func (k EventKind) String() string {
	switch k {
	case EventChannelCounts:
		return "channel-counts"
	case EventPin:
		return "pin"
	case EventLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// Event describes a connector change. Channel count and load events carry
// In, Out and Host; pin events carry Direction, HostChannel, PluginChannel and
// Enabled.
type Event struct {
	Kind   EventKind
	Source uuid.UUID

	In   int
	Out  int
	Host int

	Direction     Direction
	HostChannel   int
	PluginChannel int
	Enabled       bool
}

// Subscribe registers fn for change events and returns a function that
// removes it. Events are delivered on the goroutine that made the change,
// after the new state is visible, so fn may call back into the connector.
func (c *Connector) Subscribe(fn func(Event)) (unsubscribe func()) {
	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	c.subMu.Unlock()

	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

func (c *Connector) notify(ev Event) {
	c.subMu.Lock()
	subs := append([]subscriber(nil), c.subs...)
	c.subMu.Unlock()

	for _, s := range subs {
		s.fn(ev)
	}
}
