package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/justyntemme/pinroute/pkg/framework/audio"
	"github.com/justyntemme/pinroute/pkg/framework/bus"
	"github.com/justyntemme/pinroute/pkg/framework/debug"
	"github.com/justyntemme/pinroute/pkg/framework/param"
	"github.com/justyntemme/pinroute/pkg/framework/pins"
	"github.com/justyntemme/pinroute/pkg/framework/state"
)

// PortFlags describe the test plugin's ports and its pin connections.
type PortFlags struct {
	Template string   `short:"t" default:"stereo" enum:"stereo,mono,mono-to-stereo,frame,instrument,dynamic" help:"Port template (${enum})."`
	Ins      *int     `help:"Override the plugin input channel count."`
	Outs     *int     `help:"Override the plugin output channel count."`
	Layout   string   `enum:"template,split,interleaved" default:"template" help:"Override the plugin buffer layout (${enum})."`
	Kind     string   `enum:"template,f32,f64" default:"template" help:"Override the plugin sample type (${enum})."`
	Hosts    int      `default:"2" help:"Host track channels."`
	State    string   `type:"path" help:"JSON preset to load before applying --pin."`
	Pin      []string `help:"Pin edit 'in:H:P=on' or 'out:H:P=off', repeatable."`
}

// Config resolves the port template and overrides.
func (f *PortFlags) Config() (bus.Config, error) {
	cfg, ok := bus.Template(f.Template)
	if !ok {
		return bus.Config{}, fmt.Errorf("unknown template %q", f.Template)
	}
	b := bus.NewBuilder().WithKind(cfg.Kind).WithLayout(cfg.Layout).
		WithInputs(cfg.Inputs).WithOutputs(cfg.Outputs)
	if cfg.InPlace {
		b = b.WithInPlace()
	}
	if f.Ins != nil {
		b = b.WithInputs(*f.Ins)
	}
	if f.Outs != nil {
		b = b.WithOutputs(*f.Outs)
	}
	switch f.Layout {
	case "split":
		b = b.WithLayout(audio.Split)
	case "interleaved":
		b = b.WithLayout(audio.Interleaved)
	}
	switch f.Kind {
	case "f32":
		b = b.WithKind(audio.F32)
	case "f64":
		b = b.WithKind(audio.F64)
	}
	return b.Build()
}

// PinEdit is one parsed --pin flag.
type PinEdit struct {
	Dir     pins.Direction
	Host    int
	Plugin  int
	Enabled bool
}

// ParsePinEdit parses "in:H:P=on". Channels are zero based.
func ParsePinEdit(s string) (PinEdit, error) {
	cell, value, ok := strings.Cut(strings.TrimSpace(s), "=")
	if !ok {
		return PinEdit{}, fmt.Errorf("pin %q: missing =on or =off", s)
	}
	var e PinEdit
	switch strings.ToLower(value) {
	case "on", "1", "true":
		e.Enabled = true
	case "off", "0", "false":
	default:
		return PinEdit{}, fmt.Errorf("pin %q: value must be on or off", s)
	}

	parts := strings.Split(cell, ":")
	if len(parts) != 3 {
		return PinEdit{}, fmt.Errorf("pin %q: want dir:host:plugin", s)
	}
	switch strings.ToLower(parts[0]) {
	case "in":
		e.Dir = pins.In
	case "out":
		e.Dir = pins.Out
	default:
		return PinEdit{}, fmt.Errorf("pin %q: direction must be in or out", s)
	}
	var err error
	if e.Host, err = strconv.Atoi(parts[1]); err != nil {
		return PinEdit{}, fmt.Errorf("pin %q: host channel: %w", s, err)
	}
	if e.Plugin, err = strconv.Atoi(parts[2]); err != nil {
		return PinEdit{}, fmt.Errorf("pin %q: plugin channel: %w", s, err)
	}
	return e, nil
}

// Connector builds the connector described by the flags. Pin edits
// outside the matrix are errors rather than the connector's panics.
func (f *PortFlags) Connector(cfg bus.Config, registry *param.Registry, logger *debug.Logger) (*pins.Connector, error) {
	if f.Hosts <= 0 || f.Hosts%2 != 0 || f.Hosts > pins.DefaultMaxHostChannels {
		return nil, fmt.Errorf("host channels must be even and between 2 and %d, got %d", pins.DefaultMaxHostChannels, f.Hosts)
	}
	edits := make([]PinEdit, 0, len(f.Pin))
	for _, s := range f.Pin {
		e, err := ParsePinEdit(s)
		if err != nil {
			return nil, err
		}
		edits = append(edits, e)
	}

	c := pins.NewConnector(cfg.Inputs, cfg.Outputs, pins.WithHostChannels(f.Hosts), pins.WithLogger(logger))
	if f.State != "" {
		preset, err := state.LoadFile(f.State)
		if err != nil {
			return nil, err
		}
		if err := preset.Apply(c, registry); err != nil {
			return nil, err
		}
	}
	for _, e := range edits {
		if e.Host < 0 || e.Host >= c.HostChannelCount() || e.Plugin < 0 || e.Plugin >= c.ChannelCount(e.Dir) {
			return nil, fmt.Errorf("pin %s:%d:%d outside the %d x %d matrix",
				e.Dir, e.Host, e.Plugin, c.HostChannelCount(), c.ChannelCount(e.Dir))
		}
		c.SetPin(e.Dir, e.Host, e.Plugin, e.Enabled)
	}
	return c, nil
}
