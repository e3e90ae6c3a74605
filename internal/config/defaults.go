package config

import (
	_ "embed"

	"github.com/vovakirdan/faststack/internal/engine"
)

//go:embed defaults/faststack.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Options: engine.DefaultOptions(),
		Keys: KeyBindings{
			Up:      []string{"up", " "},
			Down:    []string{"down"},
			Left:    []string{"left"},
			Right:   []string{"right"},
			RotL:    []string{"z"},
			RotR:    []string{"x"},
			RotH:    []string{"a"},
			Hold:    []string{"c", "shift+tab"},
			Restart: []string{"r"},
			Quit:    []string{"q", "esc", "ctrl+c"},
		},
		Paths: Paths{
			Database: "~/.faststack/faststack.db",
			Replays:  "~/.faststack/replays",
		},
		LogLevel: "info",
	}
}
