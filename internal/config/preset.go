package config

import (
	"fmt"
	"sort"
)

// Preset is a named terrain style.
type Preset string

const (
	PresetMeadow    Preset = "meadow"
	PresetHighlands Preset = "highlands"
	PresetLakeside  Preset = "lakeside"
	PresetFlat      Preset = "flat"
)

var presetDescriptions = map[Preset]string{
	PresetMeadow:    "rolling grassland, the defaults",
	PresetHighlands: "steep rough hills, tall walls, sparse trees",
	PresetLakeside:  "low ground with water in the dips",
	PresetFlat:      "almost level ground, dense forest",
}

// Presets returns every preset name, sorted.
func Presets() []Preset {
	out := make([]Preset, 0, len(presetDescriptions))
	for p := range presetDescriptions {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Description returns a one-line summary of the preset.
func (p Preset) Description() string {
	return presetDescriptions[p]
}

// ParsePreset validates a preset name. An empty name is the meadow.
func ParsePreset(name string) (Preset, error) {
	if name == "" {
		return PresetMeadow, nil
	}
	p := Preset(name)
	if _, ok := presetDescriptions[p]; !ok {
		return "", fmt.Errorf("unknown preset %q", name)
	}
	return p, nil
}

// ApplyPreset modifies the config based on a terrain preset.
func ApplyPreset(cfg *GenConfig, preset Preset) {
	rows := 0
	if cfg.Map.TileDim > 0 {
		rows = cfg.Map.HeightPx / cfg.Map.TileDim
	}

	switch preset {
	case PresetHighlands:
		cfg.Terrain.Amplitude = float64(rows) / 3
		cfg.Terrain.Persistence = 0.85
		cfg.Terrain.WallHeight = 8
		cfg.Trees.Count = 3
		cfg.Trees.BackgroundCount = 2
		for i := range cfg.Hills {
			cfg.Hills[i].Amplitude *= 1.5
		}
	case PresetLakeside:
		cfg.Terrain.Amplitude = float64(rows) / 4
		cfg.Terrain.Persistence = 0.6
		cfg.Terrain.WaterRow = rows / 2
		cfg.Trees.Spacing = 6
	case PresetFlat:
		cfg.Terrain.Amplitude = 1
		cfg.Terrain.Persistence = 0.5
		cfg.Trees.Count = cfg.Trees.Count * 2
		cfg.Trees.BackgroundCount = cfg.Trees.BackgroundCount * 2
		cfg.Trees.Spacing = 4
	}
}
