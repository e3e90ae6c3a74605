package control

import "github.com/vovakirdan/faststack/internal/engine"

// Controller converts held keys into engine.Input, one call per tick.
// It is owned by a single game and carries DAS state between ticks.
type Controller struct {
	msPerTick  int
	dasDelay   int
	dasSpeed   int
	fieldWidth int
	oneShotSD  bool

	last    Keys
	dir     int  // -1 left, 1 right, 0 idle
	held    int  // Milliseconds the current direction has been held
	charged bool // DAS delay has elapsed
	repeat  int  // Milliseconds accumulated towards the next auto shift
}

// New returns a controller using the timing options of opts.
func New(opts engine.Options) *Controller {
	return &Controller{
		msPerTick:  opts.MsPerTick,
		dasDelay:   opts.DASDelay,
		dasSpeed:   opts.DASSpeed,
		fieldWidth: opts.FieldWidth,
		oneShotSD:  opts.OneShotSoftDrop,
	}
}

// Reset forgets every held key and any DAS charge.
func (c *Controller) Reset() {
	c.last = 0
	c.resetShift(0)
}

func (c *Controller) resetShift(dir int) {
	c.dir = dir
	c.held = 0
	c.charged = false
	c.repeat = 0
}

// Input translates the keys held this tick.
func (c *Controller) Input(keys Keys) engine.Input {
	newKeys := keys &^ c.last
	c.last = keys

	in := engine.Input{
		NewKeys:      newKeys.Count(),
		NewMovePress: newKeys.Has(KeyLeft) || newKeys.Has(KeyRight),
		SoftDrop:     keys.Has(KeyDown),
		HeldHold:     keys.Has(KeyHold),
	}
	if c.oneShotSD {
		in.SoftDrop = newKeys.Has(KeyDown)
	}

	// Clockwise wins over anticlockwise, which wins over a half turn.
	switch {
	case keys.Has(KeyRotR):
		in.HeldRotation = engine.RotateClockwise
	case keys.Has(KeyRotL):
		in.HeldRotation = engine.RotateAnticlockwise
	case keys.Has(KeyRotH):
		in.HeldRotation = engine.RotateHalf
	}
	in.Movement = c.shift(keys)

	if newKeys.Has(KeyRotL) {
		in.Rotation--
	}
	if newKeys.Has(KeyRotR) {
		in.Rotation++
	}
	// A half turn overrides any quarter turns pressed in the same tick.
	if newKeys.Has(KeyRotH) {
		in.Rotation = engine.RotateHalf
	}

	if newKeys.Has(KeyHold) {
		in.Extra |= engine.InputHold
	}
	if newKeys.Has(KeyUp) {
		in.Extra |= engine.InputHardDrop
	}
	if newKeys.Has(KeyRestart) {
		in.Extra |= engine.InputRestart
	}
	if newKeys.Has(KeyQuit) {
		in.Extra |= engine.InputQuit
	}

	return in
}

// shift returns the horizontal movement for this tick. Left wins when both
// directions are held.
func (c *Controller) shift(keys Keys) int {
	dir := 0
	switch {
	case keys.Has(KeyLeft):
		dir = -1
	case keys.Has(KeyRight):
		dir = 1
	}

	if dir == 0 {
		c.resetShift(0)
		return 0
	}
	if dir != c.dir {
		c.resetShift(dir)
		return dir
	}

	c.held += c.msPerTick
	if c.held < c.dasDelay {
		return 0
	}
	if c.dasSpeed == 0 {
		return dir * c.fieldWidth
	}
	if !c.charged {
		c.charged = true
		c.repeat = 0
		return dir
	}

	c.repeat += c.msPerTick
	steps := c.repeat / c.dasSpeed
	c.repeat -= steps * c.dasSpeed
	return dir * steps
}
