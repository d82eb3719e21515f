package mines

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

type Preset struct {
	Name      string `yaml:"name" json:"name"`
	Width     int    `yaml:"width" json:"width"`
	Height    int    `yaml:"height" json:"height"`
	MineCount int    `yaml:"mine_count" json:"mine_count"`
}

func (p Preset) Params(safeStart bool) GameParams {
	return GameParams{
		Width:     p.Width,
		Height:    p.Height,
		MineCount: p.MineCount,
		SafeStart: safeStart,
	}
}

type Presets []Preset

func (ps Presets) Get(name string) (Preset, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// LoadPresets reads a preset list and checks that every preset describes a
// board that can be built with a safe start.
func LoadPresets(r io.Reader) (Presets, error) {
	var file struct {
		Presets Presets `yaml:"presets"`
	}
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("unable to decode presets: %w", err)
	}
	seen := make(map[string]bool, len(file.Presets))
	for _, p := range file.Presets {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: preset without a name", ErrInvalidConfig)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("%w: duplicate preset %q", ErrInvalidConfig, p.Name)
		}
		seen[p.Name] = true
		if err := p.Params(true).Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Name, err)
		}
	}
	return file.Presets, nil
}

func DefaultPresets() Presets {
	presets, err := LoadPresets(bytes.NewReader(presetsYAML))
	if err != nil {
		panic(err)
	}
	return presets
}
