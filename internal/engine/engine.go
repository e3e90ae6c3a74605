package engine

import "fmt"

// Engine is a single deterministic game. It is not safe for concurrent use;
// the driver owns it and calls Tick once per MsPerTick.
type Engine struct {
	opts     Options
	internal Internal
	rs       RotationSystem
	random   *Randomizer

	state    GameState
	grid     Grid
	piece    Piece
	hasPiece bool

	hold        PieceType
	hasHold     bool
	readyGoHold bool

	next [MaxPreviewCount]PieceType

	stats         Statistics
	totalTicks    int
	totalTicksAll int
	counter       int // Milliseconds elapsed in the Ready/Go countdown
	areTimer      int // Milliseconds waited for the next piece
	gravityAccum  int
	irs           RotationAmount
	ihs           bool
	events        Event
	completed     bool
}

// New validates opts and returns an engine in the Ready state.
func New(opts Options, seed uint32) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		opts:     opts,
		internal: Internal{Seed: seed},
		rs:       opts.RotationSystem,
	}
	e.Reset()
	return e, nil
}

// Reset restarts the game with the same seed and options.
func (e *Engine) Reset() {
	e.random = NewRandomizer(NewLLRand(e.internal.Seed), e.opts.Randomizer)

	e.state = StateReady
	e.grid = NewGrid(e.opts.FieldWidth, e.opts.FieldHeight+e.opts.FieldHidden)
	e.piece = Piece{}
	e.hasPiece = false

	e.hold = 0
	e.hasHold = false
	e.readyGoHold = true

	e.next = [MaxPreviewCount]PieceType{}
	for i := range e.opts.PreviewPieceCount {
		e.next[i] = e.random.Next()
	}

	e.stats = Statistics{}
	e.totalTicks = 0
	e.totalTicksAll = 0
	e.counter = 0
	e.areTimer = 0
	e.gravityAccum = 0
	e.irs = RotateNone
	e.ihs = false
	e.events = 0
	e.completed = false
}

// Tick advances the game by one MsPerTick step.
func (e *Engine) Tick(in Input) {
	e.events = 0
	e.totalTicksAll++

	switch {
	case in.Has(InputQuit):
		e.state = StateQuit
		return
	case in.Has(InputRestart):
		e.state = StateRestart
		return
	}

	switch e.state {
	case StateReady, StateGo:
		e.stats.KeysPressed += in.NewKeys
		e.tickCountdown(in)
		return

	case StateARE:
		e.stats.KeysPressed += in.NewKeys
		e.tickARE(in)

	case StateNewPiece:
		e.stats.KeysPressed += in.NewKeys
		e.spawnNext()

	case StateFalling, StateLanded:
		e.stats.KeysPressed += in.NewKeys
		e.tickActive(in)

	case StateLines:
		e.stats.KeysPressed += in.NewKeys
		e.tickLines()

	case StateRestart:
		e.Reset()
		return

	case StateGameOver, StateQuit:
		return
	}

	e.totalTicks++
}

func (e *Engine) tickCountdown(in Input) {
	if e.counter == 0 {
		e.events |= EventReady
	}

	if in.Has(InputHold) && e.readyGoHold {
		e.hold = e.popNext()
		e.hasHold = true
		e.events |= EventHold
		if !e.opts.InfiniteReadyGoHold {
			e.readyGoHold = false
		}
	}

	if e.state == StateReady && e.counter >= e.opts.ReadyPhaseLength {
		e.state = StateGo
		e.events |= EventGo
	}
	if e.counter >= e.opts.ReadyPhaseLength+e.opts.GoPhaseLength {
		e.state = StateNewPiece
	}

	e.counter += e.opts.MsPerTick
}

func (e *Engine) tickActive(in Input) {
	if in.Has(InputHardDrop) {
		e.piece.Y = e.GhostY()
		e.lockPiece()
		e.state = StateLines
		return
	}

	if in.Has(InputHold) && e.tryHold() {
		e.events |= EventHold
		if e.state == StateGameOver {
			return
		}
	}

	if in.NewMovePress {
		e.piece.MovementCount++
	}

	rotated := e.rotate(in.Rotation)

	moved := false
	dx, steps := 1, in.Movement
	if steps < 0 {
		dx, steps = -1, -steps
	}
	for range steps {
		if !e.tryMove(dx, 0) {
			break
		}
		moved = true
	}

	if rotated {
		e.events |= EventRotate
	}
	if moved {
		e.events |= EventMove
	}

	dropped := e.applyGravity(in.SoftDrop)

	switch e.opts.LockStyle {
	case LockMove:
		if rotated || moved || dropped {
			e.piece.LockTimer = 0
		}
	case LockStep:
		if dropped {
			e.piece.LockTimer = 0
		}
	}

	if !e.collidesAt(e.piece.X, e.piece.Y+1, e.piece.Theta) {
		e.state = StateFalling
		return
	}

	e.state = StateLanded
	e.piece.LockTimer += e.opts.MsPerTick
	if e.piece.LockTimer >= e.opts.LockDelay {
		e.lockPiece()
		e.state = StateLines
	}
}

// applyGravity moves the piece down by the gravity owed this tick and
// reports whether it moved.
func (e *Engine) applyGravity(softDrop bool) bool {
	rate := e.opts.Gravity
	if softDrop {
		rate = e.opts.SoftDropGravity
	}

	start := e.piece.Y
	if rate == 0 {
		e.piece.Y = e.GhostY()
		e.gravityAccum = 0
		return e.piece.Y > start
	}

	e.gravityAccum += e.opts.MsPerTick
	for e.gravityAccum >= rate {
		if !e.tryMove(0, 1) {
			e.gravityAccum = 0
			break
		}
		e.gravityAccum -= rate
	}
	return e.piece.Y > start
}

func (e *Engine) tickLines() {
	lines := e.grid.ClearLines()
	e.stats.LinesCleared += lines
	e.events |= clearEvent(lines)

	if e.opts.Goal > 0 && e.stats.LinesCleared >= e.opts.Goal {
		e.completed = true
		e.gameOver()
		return
	}

	if e.opts.AREDelay > 0 || e.opts.InitialActionStyle != InitialActionNone {
		e.areTimer = 0
		e.state = StateARE
		return
	}
	e.state = StateNewPiece
}

// tickARE waits out the entry delay. The next piece spawns on the tick the
// delay runs out, or on the first input when the delay is cancellable.
func (e *Engine) tickARE(in Input) {
	if e.opts.InitialActionStyle == InitialActionPersistent {
		e.irs = in.HeldRotation
		e.ihs = in.HeldHold
	}

	cancel := e.opts.ARECancellable &&
		(in.Rotation != RotateNone || in.Movement != 0 || in.SoftDrop || in.Extra != 0 ||
			e.irs != RotateNone || e.ihs)

	if cancel || e.areTimer >= e.opts.AREDelay {
		e.areTimer = 0
		e.spawnNext()
		return
	}
	e.areTimer += e.opts.MsPerTick
}

func (e *Engine) gameOver() {
	e.state = StateGameOver
	e.events |= EventGameOver
}

// popNext removes the head of the preview queue and refills its tail.
func (e *Engine) popNext() PieceType {
	n := e.opts.PreviewPieceCount
	head := e.next[0]
	copy(e.next[:n-1], e.next[1:n])
	e.next[n-1] = e.random.Next()
	return head
}

// spawnNext brings in the head of the queue, applying any initial rotation
// or hold before checking for a top out.
func (e *Engine) spawnNext() {
	e.spawn(e.popNext())

	irs, ihs := e.irs, e.ihs
	e.irs, e.ihs = RotateNone, false
	if irs != RotateNone {
		e.rotate(irs)
	}
	if ihs {
		if e.tryHold() {
			e.events |= EventHold
		}
		if e.state == StateGameOver {
			return
		}
	}

	if e.collidesAt(e.piece.X, e.piece.Y, e.piece.Theta) {
		e.gameOver()
		return
	}
	e.state = StateFalling
}

// spawn places a fresh piece of type t at the spawn pose and reports whether
// it fits.
func (e *Engine) spawn(t PieceType) bool {
	at := e.rs.SpawnOffset(e.opts)
	e.piece = NewPiece(t)
	e.piece.X = at.X
	e.piece.Y = at.Y
	e.piece.Theta = e.rs.SpawnTheta()
	e.hasPiece = true
	e.gravityAccum = 0
	return !e.collidesAt(e.piece.X, e.piece.Y, e.piece.Theta)
}

func (e *Engine) collidesAt(x, y int, theta Theta) bool {
	return e.grid.Collides(e.piece.blocksAt(x, y, theta))
}

func (e *Engine) tryMove(dx, dy int) bool {
	if e.collidesAt(e.piece.X+dx, e.piece.Y+dy, e.piece.Theta) {
		return false
	}
	e.piece.X += dx
	e.piece.Y += dy
	return true
}

// rotate turns the active piece by amount, trying the unkicked pose first and
// then each wallkick in order.
func (e *Engine) rotate(amount RotationAmount) bool {
	if amount == RotateNone || !e.hasPiece {
		return false
	}

	p := &e.piece
	target := p.Theta.Rotate(amount)

	if !e.collidesAt(p.X, p.Y, target) {
		p.Theta = target
		p.RotationCount++
		return true
	}

	for _, k := range e.rs.Kicks(p.Type, p.Theta, target) {
		if e.collidesAt(p.X+k.X, p.Y+k.Y, target) {
			continue
		}
		if e.opts.FloorkickLimit > 0 && p.FloorkickCount >= e.opts.FloorkickLimit {
			return false
		}
		p.X += k.X
		p.Y += k.Y
		p.Theta = target
		p.RotationCount++
		p.FloorkickCount++
		return true
	}
	return false
}

// tryHold swaps the active piece with the hold slot, or with the queue head
// when the slot is empty. The swapped-in piece re-spawns and may top out.
func (e *Engine) tryHold() bool {
	if !e.hasPiece || !e.piece.CanHold {
		return false
	}

	current := e.piece.Type
	var incoming PieceType
	if e.hasHold {
		incoming = e.hold
	} else {
		incoming = e.popNext()
	}
	e.hold = current
	e.hasHold = true

	fits := e.spawn(incoming)
	e.piece.CanHold = false
	if !fits {
		e.gameOver()
	}
	return true
}

func (e *Engine) lockPiece() {
	if !e.hasPiece {
		panic("engine: lock without an active piece")
	}

	cell := Filled(e.piece.Type)
	for _, b := range e.piece.Blocks() {
		e.grid.Set(b.X, b.Y, cell)
	}

	e.stats.BlocksPlaced++
	if e.opts.FieldWidth == FinesseFieldWidth {
		e.stats.Finesse += FinesseFaults(e.piece)
	}

	e.events |= EventLock
	e.hasPiece = false
}

// GhostY returns the row the active piece would land on if hard dropped.
func (e *Engine) GhostY() int {
	if !e.hasPiece {
		return 0
	}
	y := e.piece.Y
	for !e.collidesAt(e.piece.X, y+1, e.piece.Theta) {
		y++
	}
	return y
}

// State returns the current phase of the game.
func (e *Engine) State() GameState { return e.state }

// Grid returns a copy of the playfield.
func (e *Engine) Grid() Grid { return e.grid }

// Piece returns the active piece, if any.
func (e *Engine) Piece() (Piece, bool) { return e.piece, e.hasPiece }

// Hold returns the held piece type, if any.
func (e *Engine) Hold() (PieceType, bool) { return e.hold, e.hasHold }

// Preview returns the upcoming pieces, nearest first.
func (e *Engine) Preview() []PieceType {
	out := make([]PieceType, e.opts.PreviewPieceCount)
	copy(out, e.next[:e.opts.PreviewPieceCount])
	return out
}

// Stats returns the counters of the current game.
func (e *Engine) Stats() Statistics { return e.stats }

// Options returns the options the engine was built with.
func (e *Engine) Options() Options { return e.opts }

// Internal returns the seed and other identifying state of the game.
func (e *Engine) Internal() Internal { return e.internal }

// Events returns what happened during the last tick.
func (e *Engine) Events() Event { return e.events }

// Completed reports whether the game ended by reaching its goal.
func (e *Engine) Completed() bool { return e.completed }

// TotalTicksAll counts every tick, the countdown included.
func (e *Engine) TotalTicksAll() int { return e.totalTicksAll }

// TotalTicks counts the ticks of actual play, excluding the countdown.
func (e *Engine) TotalTicks() int { return e.totalTicks }

// ElapsedMs returns the in-game time in milliseconds.
func (e *Engine) ElapsedMs() int { return e.totalTicks * e.opts.MsPerTick }

// Running reports whether the engine still accepts gameplay input.
func (e *Engine) Running() bool {
	return e.state != StateGameOver && e.state != StateQuit
}

func (e *Engine) String() string {
	return fmt.Sprintf("engine(seed=%d state=%v tick=%d lines=%d)",
		e.internal.Seed, e.state, e.totalTicks, e.stats.LinesCleared)
}
