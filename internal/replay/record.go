package replay

import (
	"time"

	"github.com/vovakirdan/faststack/internal/control"
	"github.com/vovakirdan/faststack/internal/engine"
)

// Recorder collects key changes while a game is played.
type Recorder struct {
	replay Replay
	tick   int
	last   control.Keys
}

// NewRecorder starts a recording for a game built from seed and opts.
func NewRecorder(mode string, seed uint32, opts engine.Options, now time.Time) *Recorder {
	return &Recorder{
		replay: Replay{
			Version:    Version,
			Mode:       mode,
			Seed:       seed,
			RecordedAt: now,
			Options:    opts,
		},
	}
}

// Record notes the keys held for the next tick. Call it exactly once per
// engine tick, before the tick is run.
func (r *Recorder) Record(keys control.Keys) {
	if keys != r.last {
		r.replay.Entries = append(r.replay.Entries, Entry{Tick: r.tick, Keys: keys})
		r.last = keys
	}
	r.tick++
}

// Frames returns the number of ticks recorded so far.
func (r *Recorder) Frames() int {
	return r.tick
}

// Finish stamps the final state of e and returns the replay.
func (r *Recorder) Finish(e *engine.Engine) *Replay {
	stats := e.Stats()
	r.replay.Result = &Result{
		Frames:       r.tick,
		TotalTicks:   e.TotalTicks(),
		LinesCleared: stats.LinesCleared,
		BlocksPlaced: stats.BlocksPlaced,
		KeysPressed:  stats.KeysPressed,
		Finesse:      stats.Finesse,
		Completed:    e.Completed(),
	}
	out := r.replay
	out.Entries = append([]Entry(nil), r.replay.Entries...)
	return &out
}

// Player yields the recorded keys tick by tick.
type Player struct {
	entries []Entry
	next    int
	tick    int
	keys    control.Keys
}

// NewPlayer returns a player positioned at the first tick of r.
func NewPlayer(r *Replay) *Player {
	return &Player{entries: r.Entries}
}

// Next returns the keys held on the next tick. Ticks must be consumed in
// order; the player cannot seek.
func (p *Player) Next() control.Keys {
	for p.next < len(p.entries) && p.entries[p.next].Tick <= p.tick {
		p.keys = p.entries[p.next].Keys
		p.next++
	}
	p.tick++
	return p.keys
}

// Tick returns the number of ticks already played.
func (p *Player) Tick() int {
	return p.tick
}

// Exhausted reports whether every recorded key change has been played.
func (p *Player) Exhausted() bool {
	return p.next >= len(p.entries)
}
