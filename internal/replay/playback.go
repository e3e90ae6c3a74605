package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/faststack/internal/control"
	"github.com/vovakirdan/faststack/internal/engine"
)

// ErrMismatch is returned by Verify when playback diverges from the result
// stored in the replay.
var ErrMismatch = errors.New("replay: playback does not match recorded result")

// Step feeds one tick of held keys through the controller into the engine.
// Live drivers and playback both go through it so they stay in lockstep.
func Step(e *engine.Engine, c *control.Controller, keys control.Keys) {
	e.Tick(c.Input(keys))
}

// Run plays r back without rendering. Recorded replays run for exactly
// their recorded frame count; replays without a result stop once the game
// ends or maxFrames ticks have passed.
func Run(r *Replay, maxFrames int) (*engine.Engine, error) {
	e, err := engine.New(r.Options, r.Seed)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	frames := maxFrames
	if r.Result != nil {
		frames = r.Result.Frames
	}

	c := control.New(r.Options)
	p := NewPlayer(r)
	for p.Tick() < frames && e.Running() {
		Step(e, c, p.Next())
	}
	return e, nil
}

// Verify replays r and checks the outcome against its stored result.
func Verify(r *Replay) (*engine.Engine, error) {
	if r.Result == nil {
		return nil, fmt.Errorf("replay: no recorded result to verify against")
	}

	e, err := Run(r, r.Result.Frames)
	if err != nil {
		return nil, err
	}

	stats := e.Stats()
	got := Result{
		Frames:       r.Result.Frames,
		TotalTicks:   e.TotalTicks(),
		LinesCleared: stats.LinesCleared,
		BlocksPlaced: stats.BlocksPlaced,
		KeysPressed:  stats.KeysPressed,
		Finesse:      stats.Finesse,
		Completed:    e.Completed(),
	}
	if got != *r.Result {
		return e, fmt.Errorf("%w: got %+v, want %+v", ErrMismatch, got, *r.Result)
	}
	return e, nil
}
