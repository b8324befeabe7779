package config

import (
	_ "embed"

	"github.com/vovakirdan/scrollgen/internal/level"
)

//go:embed defaults/terrain.yaml
var defaultTerrainYAML []byte

// DefaultGenConfig returns the hardcoded default configuration.
func DefaultGenConfig() GenConfig {
	return FromParams(level.DefaultParams())
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultTerrainYAML
}
