// Package replay records and plays back games.
//
// A replay is the seed, the Options snapshot and the list of ticks on which
// the held virtual keys changed. Feeding the same keys through a fresh
// control.Controller and engine.Engine reproduces the game exactly.
package replay

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/faststack/internal/control"
	"github.com/vovakirdan/faststack/internal/engine"
)

// Version is the replay format written by this package.
const Version = 1

// ErrVersion is returned when a replay file uses an unknown format version.
var ErrVersion = errors.New("replay: unsupported version")

// Entry records the keys held from Tick onwards.
type Entry struct {
	Tick int          `yaml:"tick"`
	Keys control.Keys `yaml:"keys"`
}

// Result summarizes the recorded game so playback can be verified.
type Result struct {
	Frames       int  `yaml:"frames"` // Ticks driven, countdown and restarts included
	TotalTicks   int  `yaml:"total_ticks"`
	LinesCleared int  `yaml:"lines_cleared"`
	BlocksPlaced int  `yaml:"blocks_placed"`
	KeysPressed  int  `yaml:"keys_pressed"`
	Finesse      int  `yaml:"finesse"`
	Completed    bool `yaml:"completed"`
}

// Replay is the on-disk representation of a recorded game.
type Replay struct {
	Version    int            `yaml:"version"`
	Mode       string         `yaml:"mode"`
	Seed       uint32         `yaml:"seed"`
	RecordedAt time.Time      `yaml:"recorded_at"`
	Options    engine.Options `yaml:"options"`
	Result     *Result        `yaml:"result,omitempty"`
	Entries    []Entry        `yaml:"entries"`
}

// FileName returns the name Save writes the replay under:
// <goal>_<seconds>_<date>.yaml.
func (r *Replay) FileName() string {
	ms := 0
	if r.Result != nil {
		ms = r.Result.TotalTicks * r.Options.MsPerTick
	}
	return fmt.Sprintf("%d_%d.%03d_%s.yaml",
		r.Options.Goal, ms/1000, ms%1000, r.RecordedAt.Format("2006-01-02_15-04-05"))
}

// Save writes the replay into dir, creating it if needed, and returns the
// path of the new file.
func Save(dir string, r *Replay) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("replay: failed to create directory: %w", err)
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("replay: failed to encode: %w", err)
	}

	path := filepath.Join(dir, r.FileName())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("replay: failed to write %s: %w", path, err)
	}
	return path, nil
}

// Load reads and validates a replay file.
func Load(path string) (*Replay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replay: failed to read %s: %w", path, err)
	}

	var r Replay
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("replay: failed to parse %s: %w", path, err)
	}
	if r.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, r.Version)
	}
	if err := r.Options.Validate(); err != nil {
		return nil, fmt.Errorf("replay: %s: %w", path, err)
	}

	last := -1
	for i, e := range r.Entries {
		if e.Tick <= last {
			return nil, fmt.Errorf("replay: %s: entry %d at tick %d is out of order", path, i, e.Tick)
		}
		last = e.Tick
	}
	return &r, nil
}
