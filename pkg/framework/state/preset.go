package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/justyntemme/pinroute/pkg/framework/param"
	"github.com/justyntemme/pinroute/pkg/framework/pins"
)

// Preset is the JSON form of a connector's state:
//
//	{
//	  "name": "swap",
//	  "pins": {"in": [{"host": 0, "pins": [false, true]}], "out": []},
//	  "params": {"Mix": "50%"}
//	}
//
// Parameters are stored as formatted plain values keyed by name.
type Preset struct {
	Name   string            `json:"name,omitempty"`
	Pins   pins.Settings     `json:"pins"`
	Params map[string]string `json:"params,omitempty"`
}

// Capture returns the current preset of c and registry, which may be nil.
func Capture(name string, c *pins.Connector, registry *param.Registry) Preset {
	p := Preset{Name: name, Pins: c.Settings()}
	if registry != nil && registry.Count() > 0 {
		p.Params = make(map[string]string, registry.Count())
		for _, prm := range registry.All() {
			p.Params[prm.Name] = prm.FormatValue(prm.Value())
		}
	}
	return p
}

// Apply loads the preset into c and registry. Unknown parameters are
// ignored; unparsable values are an error and leave every parameter
// unchanged, but the pins are still applied.
func (p Preset) Apply(c *pins.Connector, registry *param.Registry) error {
	c.LoadSettings(p.Pins)
	if registry == nil || len(p.Params) == 0 {
		return nil
	}

	values := make(map[*param.Parameter]float64, len(p.Params))
	for _, prm := range registry.All() {
		str, ok := p.Params[prm.Name]
		if !ok {
			continue
		}
		v, err := prm.ParseValue(str)
		if err != nil {
			return fmt.Errorf("preset %q: %w", p.Name, err)
		}
		values[prm] = v
	}
	for prm, v := range values {
		prm.SetValue(v)
	}
	return nil
}

// MarshalSettings encodes pins as indented JSON
func MarshalSettings(s pins.Settings) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// UnmarshalSettings decodes pins encoded by MarshalSettings
func UnmarshalSettings(data []byte) (pins.Settings, error) {
	var s pins.Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return pins.Settings{}, fmt.Errorf("decode pin settings: %w", err)
	}
	return s, nil
}

// LoadFile reads a preset from a JSON file
func LoadFile(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("read preset: %w", err)
	}
	var p Preset
	if err := json.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("decode preset %s: %w", path, err)
	}
	return p, nil
}

// SaveFile writes a preset as a JSON file, creating parent directories
func SaveFile(path string, p Preset) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preset: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create preset directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write preset: %w", err)
	}
	return nil
}
