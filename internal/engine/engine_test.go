package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// quickOptions skips the countdown so the first piece spawns on the second tick.
func quickOptions() Options {
	opts := DefaultOptions()
	opts.ReadyPhaseLength = 0
	opts.GoPhaseLength = 0
	return opts
}

func newTestEngine(t *testing.T, opts Options, seed uint32) *Engine {
	t.Helper()
	e, err := New(opts, seed)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return e
}

// spawnFirst ticks through the countdown until a piece is in play.
func spawnFirst(t *testing.T, e *Engine) {
	t.Helper()
	for range 1000 {
		if _, ok := e.Piece(); ok {
			return
		}
		e.Tick(Input{})
	}
	t.Fatalf("no piece spawned, state %v", e.State())
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		desc   string
		mutate func(*Options)
	}{
		{"field too wide", func(o *Options) { o.FieldWidth = MaxGridWidth + 1 }},
		{"field too tall", func(o *Options) { o.FieldHeight = 24; o.FieldHidden = 2 }},
		{"preview empty", func(o *Options) { o.PreviewPieceCount = 0 }},
		{"preview too long", func(o *Options) { o.PreviewPieceCount = MaxPreviewCount + 1 }},
		{"zero tick", func(o *Options) { o.MsPerTick = 0 }},
		{"negative gravity", func(o *Options) { o.Gravity = -1 }},
		{"bad randomizer", func(o *Options) { o.Randomizer = 9 }},
		{"bad lock style", func(o *Options) { o.LockStyle = 9 }},
		{"negative are", func(o *Options) { o.AREDelay = -1 }},
		{"bad initial action", func(o *Options) { o.InitialActionStyle = 9 }},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			opts := DefaultOptions()
			test.mutate(&opts)
			if _, err := New(opts, 1); err == nil {
				t.Error("New() succeeded with invalid options")
			}
		})
	}
}

func TestCountdown(t *testing.T) {
	e := newTestEngine(t, DefaultOptions(), 1)
	opts := e.Options()

	e.Tick(Input{})
	if !e.Events().Has(EventReady) {
		t.Errorf("first tick events = %v, want ready", e.Events())
	}

	sawGo := false
	for e.State() == StateReady || e.State() == StateGo {
		e.Tick(Input{})
		if e.Events().Has(EventGo) {
			sawGo = true
		}
		if e.TotalTicksAll() > 1000 {
			t.Fatal("countdown never finished")
		}
	}

	if !sawGo {
		t.Error("countdown never reported go")
	}
	if e.State() != StateNewPiece {
		t.Errorf("state after countdown = %v, want NewPiece", e.State())
	}
	if e.TotalTicks() != 0 {
		t.Errorf("TotalTicks() = %d during countdown, want 0", e.TotalTicks())
	}

	countdown := opts.ReadyPhaseLength + opts.GoPhaseLength
	wantTicks := (countdown+opts.MsPerTick-1)/opts.MsPerTick + 1
	if e.TotalTicksAll() != wantTicks {
		t.Errorf("countdown took %d ticks, want %d", e.TotalTicksAll(), wantTicks)
	}
}

func TestReadyGoHold(t *testing.T) {
	e := newTestEngine(t, DefaultOptions(), 7)
	head := e.Preview()[0]

	e.Tick(Input{Extra: InputHold})
	if got, ok := e.Hold(); !ok || got != head {
		t.Fatalf("Hold() = %v, %v, want %v", got, ok, head)
	}

	// Only one countdown hold is allowed by default.
	e.Tick(Input{Extra: InputHold})
	if got, _ := e.Hold(); got != head {
		t.Errorf("second countdown hold replaced %v with %v", head, got)
	}
}

func TestSpawnCollisionEndsGame(t *testing.T) {
	e := newTestEngine(t, quickOptions(), 3)
	for x := range e.grid.Width() {
		for y := range 4 {
			e.grid.Set(x, y, Filled(PieceI))
		}
	}

	e.Tick(Input{})
	if e.State() != StateNewPiece {
		t.Fatalf("state = %v, want NewPiece", e.State())
	}

	e.Tick(Input{})
	if e.State() != StateGameOver {
		t.Errorf("state = %v, want GameOver", e.State())
	}
	if !e.Events().Has(EventGameOver) {
		t.Errorf("events = %v, want gameover", e.Events())
	}
	if e.Completed() {
		t.Error("top out reported as completed")
	}
}

func TestHoldTwiceFails(t *testing.T) {
	e := newTestEngine(t, quickOptions(), 11)
	spawnFirst(t, e)

	first, _ := e.Piece()
	head := e.Preview()[0]

	if !e.tryHold() {
		t.Fatal("first hold failed")
	}
	held, ok := e.Hold()
	if !ok || held != first.Type {
		t.Errorf("Hold() = %v, %v, want %v", held, ok, first.Type)
	}
	if p, _ := e.Piece(); p.Type != head {
		t.Errorf("active piece = %v, want queue head %v", p.Type, head)
	}

	before := e.Snapshot()
	if e.tryHold() {
		t.Error("second hold succeeded")
	}
	if diff := cmp.Diff(before, e.Snapshot()); diff != "" {
		t.Errorf("failed hold changed state (-before +after):\n%s", diff)
	}
}

func TestHoldInputSwapsBack(t *testing.T) {
	e := newTestEngine(t, quickOptions(), 11)
	spawnFirst(t, e)
	first, _ := e.Piece()

	e.Tick(Input{Extra: InputHold})
	if !e.Events().Has(EventHold) {
		t.Fatalf("events = %v, want hold", e.Events())
	}
	e.Tick(Input{Extra: InputHardDrop})
	e.Tick(Input{}) // Lines
	e.Tick(Input{}) // NewPiece

	e.Tick(Input{Extra: InputHold})
	p, _ := e.Piece()
	if p.Type != first.Type {
		t.Errorf("piece after swap = %v, want %v", p.Type, first.Type)
	}
}

func TestHardDropLocks(t *testing.T) {
	e := newTestEngine(t, quickOptions(), 5)
	spawnFirst(t, e)

	p, _ := e.Piece()
	ghost := e.GhostY()
	want := p
	want.Y = ghost

	e.Tick(Input{Extra: InputHardDrop})
	if e.State() != StateLines {
		t.Fatalf("state = %v, want Lines", e.State())
	}
	if !e.Events().Has(EventLock) {
		t.Errorf("events = %v, want lock", e.Events())
	}
	if _, ok := e.Piece(); ok {
		t.Error("piece still active after lock")
	}

	g := e.Grid()
	for _, b := range want.Blocks() {
		if c, _ := g.At(b.X, b.Y).Piece(); g.At(b.X, b.Y) == Empty || c != p.Type {
			t.Errorf("cell (%d,%d) not filled with %v", b.X, b.Y, p.Type)
		}
	}
	if got := e.Stats().BlocksPlaced; got != 1 {
		t.Errorf("BlocksPlaced = %d, want 1", got)
	}
	if got := e.Stats().Finesse; got != 0 {
		t.Errorf("Finesse = %d, want 0 for a spawn-position drop", got)
	}

	e.Tick(Input{})
	if e.State() != StateNewPiece {
		t.Errorf("state = %v, want NewPiece", e.State())
	}
}

func TestGravityAndLockDelay(t *testing.T) {
	opts := quickOptions()
	opts.Gravity = 32
	opts.LockDelay = 64
	e := newTestEngine(t, opts, 9)
	spawnFirst(t, e)

	start, _ := e.Piece()
	e.Tick(Input{})
	e.Tick(Input{})
	p, _ := e.Piece()
	if p.Y != start.Y+1 {
		t.Fatalf("piece fell to %d after two ticks, want %d", p.Y, start.Y+1)
	}

	for range 1000 {
		e.Tick(Input{})
		if e.State() == StateLanded {
			break
		}
	}
	if e.State() != StateLanded {
		t.Fatalf("state = %v, want Landed", e.State())
	}

	// 64ms of lock delay at 16ms per tick, the landing tick included.
	for range 2 {
		e.Tick(Input{})
		if e.State() != StateLanded {
			t.Fatalf("locked early, state %v", e.State())
		}
	}
	e.Tick(Input{})
	if e.State() != StateLines {
		t.Errorf("state = %v, want Lines", e.State())
	}
}

func TestMoveResetsLockTimer(t *testing.T) {
	opts := quickOptions()
	opts.Gravity = 0
	opts.LockDelay = 48
	e := newTestEngine(t, opts, 9)
	spawnFirst(t, e)

	e.Tick(Input{})
	if e.State() != StateLanded {
		t.Fatalf("state = %v, want Landed", e.State())
	}
	e.Tick(Input{Movement: -1, NewMovePress: true})
	p, _ := e.Piece()
	if p.LockTimer != opts.MsPerTick {
		t.Errorf("LockTimer = %d after move, want %d", p.LockTimer, opts.MsPerTick)
	}
	if p.MovementCount != 1 {
		t.Errorf("MovementCount = %d, want 1", p.MovementCount)
	}
}

func TestMovementStopsAtWall(t *testing.T) {
	e := newTestEngine(t, quickOptions(), 2)
	spawnFirst(t, e)

	e.Tick(Input{Movement: -MaxGridWidth})
	p, _ := e.Piece()
	for _, b := range p.Blocks() {
		if b.X < 0 {
			t.Fatalf("block %v left the field", b)
		}
	}
	if !e.collidesAt(p.X-1, p.Y, p.Theta) {
		t.Errorf("piece at x=%d is not against the left wall", p.X)
	}
}

func TestWallkickAndFloorkickLimit(t *testing.T) {
	e := newTestEngine(t, quickOptions(), 1)
	spawnFirst(t, e)

	e.spawn(PieceI)
	e.piece.Theta = R90
	e.piece.X = 7

	if !e.rotate(RotateAnticlockwise) {
		t.Fatal("kicked rotation failed")
	}
	if e.piece.X != 6 || e.piece.Theta != R0 {
		t.Errorf("after kick x=%d theta=%v, want x=6 R0", e.piece.X, e.piece.Theta)
	}
	if e.piece.FloorkickCount != 1 || e.piece.RotationCount != 1 {
		t.Errorf("FloorkickCount=%d RotationCount=%d, want 1 and 1", e.piece.FloorkickCount, e.piece.RotationCount)
	}

	// The limit of one kick is spent.
	e.piece.Theta = R90
	e.piece.X = 7
	before := e.piece
	if e.rotate(RotateAnticlockwise) {
		t.Error("rotation beyond floorkick limit succeeded")
	}
	if e.piece != before {
		t.Errorf("rejected rotation changed piece: %+v", e.piece)
	}
}

func TestGoalCompletesGame(t *testing.T) {
	opts := quickOptions()
	opts.Goal = 1
	e := newTestEngine(t, opts, 4)
	spawnFirst(t, e)

	p, _ := e.Piece()
	ghost := p
	ghost.Y = e.GhostY()
	bottom := e.grid.Height() - 1
	covered := map[int]bool{}
	for _, b := range ghost.Blocks() {
		if b.Y == bottom {
			covered[b.X] = true
		}
	}
	for x := range e.grid.Width() {
		if !covered[x] {
			e.grid.Set(x, bottom, Filled(PieceO))
		}
	}

	e.Tick(Input{Extra: InputHardDrop})
	e.Tick(Input{})

	if e.State() != StateGameOver {
		t.Fatalf("state = %v, want GameOver", e.State())
	}
	if !e.Completed() {
		t.Error("Completed() = false after reaching the goal")
	}
	if !e.Events().Has(EventClear1) {
		t.Errorf("events = %v, want single", e.Events())
	}
	if got := e.Stats().LinesCleared; got != 1 {
		t.Errorf("LinesCleared = %d, want 1", got)
	}
}

func TestRestartAndQuit(t *testing.T) {
	e := newTestEngine(t, quickOptions(), 21)
	spawnFirst(t, e)
	e.Tick(Input{Extra: InputHardDrop})

	fresh := newTestEngine(t, quickOptions(), 21)

	e.Tick(Input{Extra: InputRestart})
	if e.State() != StateRestart {
		t.Fatalf("state = %v, want Restart", e.State())
	}
	e.Tick(Input{})
	if diff := cmp.Diff(fresh.Snapshot(), e.Snapshot()); diff != "" {
		t.Errorf("restart did not reset the game (-fresh +got):\n%s", diff)
	}

	e.Tick(Input{Extra: InputQuit})
	if e.State() != StateQuit || e.Running() {
		t.Errorf("state = %v, want Quit", e.State())
	}
	ticks := e.TotalTicks()
	e.Tick(Input{Extra: InputHardDrop})
	if e.TotalTicks() != ticks {
		t.Error("quit game kept counting ticks")
	}
}

func TestDeterminism(t *testing.T) {
	// Two engines with the same seed and inputs must stay identical.
	script := func(tick int) Input {
		switch {
		case tick%37 == 0:
			return Input{Extra: InputHardDrop, NewKeys: 1}
		case tick%11 == 0:
			return Input{Rotation: RotateClockwise, NewKeys: 1}
		case tick%13 == 0:
			return Input{Movement: -2, NewMovePress: true, NewKeys: 1}
		case tick%17 == 0:
			return Input{Movement: 3, NewMovePress: true, NewKeys: 1}
		case tick%29 == 0:
			return Input{Extra: InputHold, NewKeys: 1}
		case tick%5 == 0:
			return Input{SoftDrop: true}
		}
		return Input{}
	}

	e1 := newTestEngine(t, DefaultOptions(), 12345)
	e2 := newTestEngine(t, DefaultOptions(), 12345)
	for tick := range 3000 {
		in := script(tick)
		e1.Tick(in)
		e2.Tick(in)
		if diff := cmp.Diff(e1.Snapshot(), e2.Snapshot()); diff != "" {
			t.Fatalf("tick %d: engines diverged (-e1 +e2):\n%s", tick, diff)
		}
	}

	if e1.Stats().BlocksPlaced == 0 {
		t.Error("script never placed a block")
	}

	e3 := newTestEngine(t, DefaultOptions(), 54321)
	for tick := range 3000 {
		e3.Tick(script(tick))
	}
	if cmp.Equal(e1.Snapshot(), e3.Snapshot()) {
		t.Error("different seeds produced identical games")
	}
}

func TestLockStyles(t *testing.T) {
	tests := []struct {
		style     LockStyle
		afterMove int // LockTimer after a sideways move on the floor
		afterDrop int // LockTimer after falling off a removed ledge
	}{
		{LockMove, 16, 16},
		{LockStep, 48, 16},
		{LockEntry, 48, 48},
	}
	for _, test := range tests {
		t.Run(test.style.String(), func(t *testing.T) {
			opts := quickOptions()
			opts.Gravity = 0
			opts.LockDelay = 1000
			opts.LockStyle = test.style

			t.Run("move", func(t *testing.T) {
				e := newTestEngine(t, opts, 5)
				spawnFirst(t, e)
				e.Tick(Input{})
				e.Tick(Input{})
				e.Tick(Input{Movement: -1, NewMovePress: true})

				p, _ := e.Piece()
				if p.MovementCount != 1 {
					t.Fatalf("piece did not move, MovementCount = %d", p.MovementCount)
				}
				if p.LockTimer != test.afterMove {
					t.Errorf("LockTimer = %d, want %d", p.LockTimer, test.afterMove)
				}
			})

			t.Run("drop", func(t *testing.T) {
				e := newTestEngine(t, opts, 5)
				shelf := e.grid.Height() - 5
				for x := range e.grid.Width() {
					e.grid.Set(x, shelf, Filled(PieceO))
				}
				spawnFirst(t, e)
				e.Tick(Input{})
				e.Tick(Input{})
				for x := range e.grid.Width() {
					e.grid.Set(x, shelf, Empty)
				}
				e.Tick(Input{})

				if e.State() != StateLanded {
					t.Fatalf("state = %v, want Landed", e.State())
				}
				p, _ := e.Piece()
				if p.LockTimer != test.afterDrop {
					t.Errorf("LockTimer = %d, want %d", p.LockTimer, test.afterDrop)
				}
			})
		})
	}
}

// enterARE drops the first piece and stops once the engine waits for the next.
func enterARE(t *testing.T, e *Engine) {
	t.Helper()
	spawnFirst(t, e)
	e.Tick(Input{Extra: InputHardDrop})
	e.Tick(Input{})
	if e.State() != StateARE {
		t.Fatalf("state = %v, want ARE", e.State())
	}
	if _, ok := e.Piece(); ok {
		t.Fatal("active piece during ARE")
	}
}

func TestAREDelay(t *testing.T) {
	opts := quickOptions()
	opts.AREDelay = 48
	e := newTestEngine(t, opts, 6)
	enterARE(t, e)

	start := e.TotalTicks()
	for range 3 {
		e.Tick(Input{Movement: -1})
		if e.State() != StateARE {
			t.Fatalf("ARE ended early after %d ticks", e.TotalTicks()-start)
		}
	}
	e.Tick(Input{})
	if e.State() != StateFalling {
		t.Errorf("state = %v, want Falling", e.State())
	}
	if got := e.TotalTicks() - start; got != 4 {
		t.Errorf("ARE counted %d ticks, want 4", got)
	}
}

func TestARECancellable(t *testing.T) {
	opts := quickOptions()
	opts.AREDelay = 1000
	opts.ARECancellable = true
	e := newTestEngine(t, opts, 6)
	enterARE(t, e)

	e.Tick(Input{})
	if e.State() != StateARE {
		t.Fatalf("idle tick cancelled ARE, state %v", e.State())
	}
	e.Tick(Input{Movement: 1, NewMovePress: true})
	if e.State() != StateFalling {
		t.Errorf("state = %v, want Falling", e.State())
	}
}

func TestNoAREGoesStraightToNewPiece(t *testing.T) {
	e := newTestEngine(t, quickOptions(), 6)
	spawnFirst(t, e)
	e.Tick(Input{Extra: InputHardDrop})
	e.Tick(Input{})
	if e.State() != StateNewPiece {
		t.Errorf("state = %v, want NewPiece", e.State())
	}
}

func TestInitialActions(t *testing.T) {
	tests := []struct {
		desc  string
		style InitialActionStyle
		in    Input
		theta Theta
		hold  bool
	}{
		{"irs", InitialActionPersistent, Input{HeldRotation: RotateClockwise}, R90, false},
		{"irs half turn", InitialActionPersistent, Input{HeldRotation: RotateHalf}, R180, false},
		{"ihs", InitialActionPersistent, Input{HeldHold: true}, R0, true},
		{"disabled", InitialActionNone, Input{HeldRotation: RotateClockwise, HeldHold: true}, R0, false},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			opts := quickOptions()
			opts.AREDelay = 16
			opts.InitialActionStyle = test.style
			e := newTestEngine(t, opts, 8)
			enterARE(t, e)

			queue := e.Preview()
			e.Tick(test.in)
			e.Tick(test.in)
			if e.State() != StateFalling {
				t.Fatalf("state = %v, want Falling", e.State())
			}

			p, _ := e.Piece()
			if p.Theta != test.theta {
				t.Errorf("Theta = %v, want %v", p.Theta, test.theta)
			}

			held, ok := e.Hold()
			if ok != test.hold {
				t.Fatalf("Hold() ok = %v, want %v", ok, test.hold)
			}
			if test.hold {
				if held != queue[0] || p.Type != queue[1] {
					t.Errorf("hold = %v, piece = %v; want %v and %v", held, p.Type, queue[0], queue[1])
				}
				if p.CanHold {
					t.Error("initial hold must use up the hold")
				}
			} else if p.Type != queue[0] {
				t.Errorf("piece = %v, want %v", p.Type, queue[0])
			}
		})
	}
}

func TestStyleText(t *testing.T) {
	for _, style := range []LockStyle{LockMove, LockStep, LockEntry} {
		text, err := style.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) failed: %v", style, err)
		}
		var got LockStyle
		if err := got.UnmarshalText(text); err != nil || got != style {
			t.Errorf("UnmarshalText(%q) = %v, %v; want %v", text, got, err, style)
		}
	}

	for _, style := range []InitialActionStyle{InitialActionNone, InitialActionPersistent} {
		text, err := style.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) failed: %v", style, err)
		}
		var got InitialActionStyle
		if err := got.UnmarshalText(text); err != nil || got != style {
			t.Errorf("UnmarshalText(%q) = %v, %v; want %v", text, got, err, style)
		}
	}

	var ls LockStyle
	if err := ls.UnmarshalText([]byte("sticky")); err == nil {
		t.Error("UnmarshalText accepted an unknown lock style")
	}
}
