package replay_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/faststack/internal/control"
	"github.com/vovakirdan/faststack/internal/engine"
	"github.com/vovakirdan/faststack/internal/replay"
)

// scriptedKeys is a deterministic key pattern that shifts, rotates, holds
// and hard drops pieces.
func scriptedKeys(tick int) control.Keys {
	var k control.Keys
	switch tick % 40 {
	case 2, 3, 4:
		k = k.With(control.KeyLeft)
	case 8:
		k = k.With(control.KeyRotR)
	case 12, 13:
		k = k.With(control.KeyRight).With(control.KeyDown)
	case 20:
		if tick%120 == 20 {
			k = k.With(control.KeyHold)
		}
	case 30:
		k = k.With(control.KeyUp)
	}
	return k
}

func recordGame(t *testing.T, opts engine.Options, seed uint32, frames int) (*replay.Replay, engine.Snapshot) {
	t.Helper()
	e, err := engine.New(opts, seed)
	require.NoError(t, err)

	c := control.New(opts)
	rec := replay.NewRecorder("sprint", seed, opts, time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC))
	for tick := 0; tick < frames && e.Running(); tick++ {
		keys := scriptedKeys(tick)
		rec.Record(keys)
		replay.Step(e, c, keys)
	}
	return rec.Finish(e), e.Snapshot()
}

func TestRecorderOnlyStoresChanges(t *testing.T) {
	rec := replay.NewRecorder("sprint", 1, engine.DefaultOptions(), time.Now())
	left := control.Keys(control.KeyLeft)

	rec.Record(0)
	rec.Record(left)
	rec.Record(left)
	rec.Record(left)
	rec.Record(0)
	rec.Record(0)

	e, err := engine.New(engine.DefaultOptions(), 1)
	require.NoError(t, err)
	r := rec.Finish(e)

	assert.Equal(t, []replay.Entry{{Tick: 1, Keys: left}, {Tick: 4, Keys: 0}}, r.Entries)
	assert.Equal(t, 6, r.Result.Frames)
}

func TestPlayerReplaysKeys(t *testing.T) {
	left := control.Keys(control.KeyLeft)
	r := &replay.Replay{Entries: []replay.Entry{{Tick: 1, Keys: left}, {Tick: 3, Keys: 0}}}
	p := replay.NewPlayer(r)

	var got []control.Keys
	for range 5 {
		got = append(got, p.Next())
	}
	assert.Equal(t, []control.Keys{0, left, left, 0, 0}, got)
	assert.True(t, p.Exhausted())
}

func TestRoundTripReproducesGame(t *testing.T) {
	opts := engine.DefaultOptions()
	r, want := recordGame(t, opts, 4242, 4000)
	require.NotZero(t, r.Result.BlocksPlaced)

	dir := t.TempDir()
	path, err := replay.Save(dir, r)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))

	loaded, err := replay.Load(path)
	require.NoError(t, err)
	assert.Equal(t, r.Seed, loaded.Seed)
	assert.Equal(t, r.Options, loaded.Options)
	assert.Equal(t, r.Entries, loaded.Entries)
	assert.True(t, r.RecordedAt.Equal(loaded.RecordedAt))

	e, err := replay.Verify(loaded)
	require.NoError(t, err)
	assert.Equal(t, want, e.Snapshot())
}

func TestVerifyDetectsTampering(t *testing.T) {
	r, _ := recordGame(t, engine.DefaultOptions(), 7, 2000)
	r.Result.LinesCleared += 3

	_, err := replay.Verify(r)
	assert.ErrorIs(t, err, replay.ErrMismatch)
}

func TestFileName(t *testing.T) {
	opts := engine.DefaultOptions()
	r := &replay.Replay{
		Options:    opts,
		RecordedAt: time.Date(2026, 3, 1, 12, 30, 5, 0, time.UTC),
		Result:     &replay.Result{TotalTicks: 3125},
	}
	assert.Equal(t, "40_50.000_2026-03-01_12-30-05.yaml", r.FileName())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := replay.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "version.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("version: 99\n"), 0o644))
	_, err = replay.Load(bad)
	assert.ErrorIs(t, err, replay.ErrVersion)

	garbage := filepath.Join(dir, "garbage.yaml")
	require.NoError(t, os.WriteFile(garbage, []byte("version: [\n"), 0o644))
	_, err = replay.Load(garbage)
	assert.Error(t, err)
}
