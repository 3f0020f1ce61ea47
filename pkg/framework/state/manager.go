// Package state saves and restores pin connections and parameter values,
// as compact binary chunks for hosts and as JSON presets for people.
package state

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/justyntemme/pinroute/pkg/framework/param"
	"github.com/justyntemme/pinroute/pkg/framework/pins"
)

const (
	magic = "PINS"
	// Version is the binary format version written by Save
	Version uint32 = 1

	maxRows  = 1 << 12
	maxCells = 1 << 12
)

// ErrFormat is returned for data that is not a pin connector state.
var ErrFormat = errors.New("invalid state format")

// Manager saves and loads the state of a pin connector and, optionally,
// a parameter registry.
type Manager struct {
	version   uint32
	connector *pins.Connector
	registry  *param.Registry
	custom    CustomStateFunc
	load      CustomLoadFunc
}

// CustomStateFunc allows plugins to save additional state after the pins
type CustomStateFunc func(w io.Writer) error

// CustomLoadFunc reads what a CustomStateFunc wrote
type CustomLoadFunc func(r io.Reader) error

// NewManager creates a state manager; registry may be nil.
func NewManager(c *pins.Connector, registry *param.Registry) *Manager {
	return &Manager{
		version:   Version,
		connector: c,
		registry:  registry,
	}
}

// SetCustomStateFuncs sets functions for saving and loading custom state
func (m *Manager) SetCustomStateFuncs(save CustomStateFunc, load CustomLoadFunc) {
	m.custom = save
	m.load = load
}

// Save writes the state to a writer
func (m *Manager) Save(w io.Writer) error {
	if _, err := io.WriteString(w, magic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, m.version); err != nil {
		return err
	}

	var params []*param.Parameter
	if m.registry != nil {
		params = m.registry.All()
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(params))); err != nil {
		return err
	}
	for _, p := range params {
		if err := binary.Write(w, binary.LittleEndian, p.ID); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, p.Value()); err != nil {
			return err
		}
	}

	settings := m.connector.Settings()
	for _, rows := range [][]pins.Row{settings.In, settings.Out} {
		if err := writeRows(w, rows); err != nil {
			return err
		}
	}

	if m.custom == nil {
		return binary.Write(w, binary.LittleEndian, uint32(0))
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(1)); err != nil {
		return err
	}
	return m.custom(w)
}

func writeRows(w io.Writer, rows []pins.Row) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(rows))); err != nil {
		return err
	}
	for _, row := range rows {
		hdr := [2]uint32{uint32(row.Host), uint32(len(row.Pins))}
		if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
			return err
		}
		cells := make([]byte, len(row.Pins))
		for p, on := range row.Pins {
			if on {
				cells[p] = 1
			}
		}
		if _, err := w.Write(cells); err != nil {
			return err
		}
	}
	return nil
}

// Load reads state written by Save and applies it. Nothing is applied
// unless the whole state could be read.
func (m *Manager) Load(r io.Reader) error {
	header := make([]byte, len(magic))
	if _, err := io.ReadFull(r, header); err != nil {
		return fmt.Errorf("read state header: %w", err)
	}
	if string(header) != magic {
		return ErrFormat
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return fmt.Errorf("read state version: %w", err)
	}
	if version > m.version {
		return fmt.Errorf("state version %d is newer than supported version %d", version, m.version)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("read parameter count: %w", err)
	}
	if count > maxRows {
		return fmt.Errorf("%w: %d parameters", ErrFormat, count)
	}
	type value struct {
		ID    uint32
		Value float64
	}
	values := make([]value, count)
	if err := binary.Read(r, binary.LittleEndian, values); err != nil {
		return fmt.Errorf("read parameters: %w", err)
	}

	var settings pins.Settings
	var err error
	if settings.In, err = readRows(r); err != nil {
		return fmt.Errorf("read input pins: %w", err)
	}
	if settings.Out, err = readRows(r); err != nil {
		return fmt.Errorf("read output pins: %w", err)
	}

	var hasCustom uint32
	if err := binary.Read(r, binary.LittleEndian, &hasCustom); err != nil {
		return fmt.Errorf("read custom state flag: %w", err)
	}

	if m.registry != nil {
		for _, v := range values {
			// Parameters that no longer exist are skipped
			if p := m.registry.Get(v.ID); p != nil {
				p.SetValue(v.Value)
			}
		}
	}
	m.connector.LoadSettings(settings)

	if hasCustom == 1 && m.load != nil {
		return m.load(r)
	}
	return nil
}

func readRows(r io.Reader) ([]pins.Row, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	if n > maxRows {
		return nil, fmt.Errorf("%w: %d rows", ErrFormat, n)
	}
	rows := make([]pins.Row, n)
	for i := range rows {
		var hdr [2]uint32
		if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
			return nil, err
		}
		if hdr[1] > maxCells {
			return nil, fmt.Errorf("%w: %d cells", ErrFormat, hdr[1])
		}
		cells := make([]byte, hdr[1])
		if _, err := io.ReadFull(r, cells); err != nil {
			return nil, err
		}
		row := pins.Row{Host: int(hdr[0]), Pins: make([]bool, len(cells))}
		for p, c := range cells {
			row.Pins[p] = c != 0
		}
		rows[i] = row
	}
	return rows, nil
}
