// Package config provides YAML-based configuration loading for faststack:
// game options, key bindings and file locations.
package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/faststack/internal/control"
	"github.com/vovakirdan/faststack/internal/engine"
)

// Config is the complete user configuration.
type Config struct {
	Options  engine.Options `yaml:"options"`
	Keys     KeyBindings    `yaml:"keys"`
	Paths    Paths          `yaml:"paths"`
	LogLevel string         `yaml:"log_level" env:"FASTSTACK_LOG_LEVEL"`
}

// Paths locates the files faststack writes.
type Paths struct {
	Database string `yaml:"database" env:"FASTSTACK_DB_PATH"`
	Replays  string `yaml:"replays" env:"FASTSTACK_REPLAY_DIR"`
}

// KeyBindings lists the terminal key names bound to each virtual key.
// Names follow Bubble Tea's key strings ("left", "ctrl+c", " ", "z").
type KeyBindings struct {
	Up      []string `yaml:"up"`
	Down    []string `yaml:"down"`
	Left    []string `yaml:"left"`
	Right   []string `yaml:"right"`
	RotL    []string `yaml:"rotl"`
	RotR    []string `yaml:"rotr"`
	RotH    []string `yaml:"roth"`
	Hold    []string `yaml:"hold"`
	Restart []string `yaml:"restart"`
	Quit    []string `yaml:"quit"`
}

// For returns the names bound to k.
func (kb KeyBindings) For(k control.Key) []string {
	switch k {
	case control.KeyUp:
		return kb.Up
	case control.KeyDown:
		return kb.Down
	case control.KeyLeft:
		return kb.Left
	case control.KeyRight:
		return kb.Right
	case control.KeyRotL:
		return kb.RotL
	case control.KeyRotR:
		return kb.RotR
	case control.KeyRotH:
		return kb.RotH
	case control.KeyHold:
		return kb.Hold
	case control.KeyRestart:
		return kb.Restart
	case control.KeyQuit:
		return kb.Quit
	}
	return nil
}

// Lookup builds the terminal key name to virtual key table.
func (kb KeyBindings) Lookup() (map[string]control.Key, error) {
	table := make(map[string]control.Key)
	for _, k := range control.AllKeys {
		names := kb.For(k)
		if len(names) == 0 {
			return nil, fmt.Errorf("no key bound to %s", k)
		}
		for _, name := range names {
			if name == "" {
				return nil, fmt.Errorf("empty key name bound to %s", k)
			}
			if other, ok := table[name]; ok {
				return nil, fmt.Errorf("key %q bound to both %s and %s", name, other, k)
			}
			table[name] = k
		}
	}
	return table, nil
}

// Validate checks that the configuration can start a game.
func (c Config) Validate() error {
	var errs []error
	if err := c.Options.Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Keys.Lookup(); err != nil {
		errs = append(errs, fmt.Errorf("keys: %w", err))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.Paths.Database == "" {
		errs = append(errs, errors.New("paths.database must be set"))
	}
	if c.Paths.Replays == "" {
		errs = append(errs, errors.New("paths.replays must be set"))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: %w", errors.Join(errs...))
}
