// Package registry provides a global registry of game modes.
// A mode is a named preset applied on top of the configured engine options,
// so the CLI, the menu and the hiscore table can share one list of modes.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/faststack/internal/engine"
)

// Mode is a named game preset.
type Mode struct {
	// ID is the identifier used on the command line and in hiscores (e.g., "sprint").
	ID string

	// Title is a human-readable name for display (e.g., "40 Line Sprint").
	Title string

	// Description is a one line summary shown in listings.
	Description string

	// Apply adjusts the base options for this mode.
	// It must only touch the fields the mode is about.
	Apply func(*engine.Options)
}

// Options returns base with the mode applied.
func (m Mode) Options(base engine.Options) engine.Options {
	opts := base
	if m.Apply != nil {
		m.Apply(&opts)
	}
	return opts
}

var (
	modes = make(map[string]Mode)
	mu    sync.RWMutex
)

// Register adds a mode to the registry.
// Panics if a mode with the same ID is already registered.
func Register(m Mode) {
	mu.Lock()
	defer mu.Unlock()

	if m.ID == "" {
		panic("registry: mode without ID")
	}
	if _, exists := modes[m.ID]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", m.ID))
	}

	modes[m.ID] = m
}

// List returns all registered modes, sorted by ID.
func List() []Mode {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Mode, 0, len(modes))
	for _, m := range modes {
		result = append(result, m)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns the mode registered under id.
// Returns an error if the mode ID is not registered.
func Get(id string) (Mode, error) {
	mu.RLock()
	defer mu.RUnlock()

	m, ok := modes[id]
	if !ok {
		return Mode{}, fmt.Errorf("registry: unknown mode %q", id)
	}
	return m, nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := modes[id]
	return ok
}
