package engine

import (
	"errors"
	"fmt"
)

// Options is the full set of game parameters. All durations are milliseconds.
// An Options value is copied into the engine at construction and is part of
// every replay header.
type Options struct {
	Goal int `yaml:"goal"` // Lines to clear; 0 plays forever

	FieldWidth  int `yaml:"field_width"`
	FieldHeight int `yaml:"field_height"` // Visible rows
	FieldHidden int `yaml:"field_hidden"` // Rows above the visible field

	RotationSystem RotationSystem `yaml:"rotation_system"`
	Randomizer     RandomizerKind `yaml:"randomizer"`

	DASSpeed int `yaml:"das_speed"` // 0 shifts to the wall at once
	DASDelay int `yaml:"das_delay"`

	MsPerTick    int `yaml:"ms_per_tick"`
	TicksPerDraw int `yaml:"ticks_per_draw"`

	FloorkickLimit  int       `yaml:"floorkick_limit"` // 0 means unlimited
	LockDelay       int       `yaml:"lock_delay"`
	LockStyle       LockStyle `yaml:"lock_style"`
	SoftDropGravity int       `yaml:"soft_drop_gravity"`  // Per cell; 0 drops to rest
	Gravity         int       `yaml:"gravity"`            // Per cell; 0 drops to rest
	OneShotSoftDrop bool      `yaml:"one_shot_soft_drop"` // Soft drop only on the press tick

	AREDelay           int                `yaml:"are_delay"` // Entry delay between pieces
	ARECancellable     bool               `yaml:"are_cancellable"`
	InitialActionStyle InitialActionStyle `yaml:"initial_action_style"`

	PreviewPieceCount int `yaml:"preview_piece_count"`

	ReadyPhaseLength    int  `yaml:"ready_phase_length"`
	GoPhaseLength       int  `yaml:"go_phase_length"`
	InfiniteReadyGoHold bool `yaml:"infinite_ready_go_hold"`
}

// DefaultOptions returns a 40 line sprint on a standard 10x20 field.
func DefaultOptions() Options {
	return Options{
		Goal:                40,
		FieldWidth:          10,
		FieldHeight:         20,
		FieldHidden:         2,
		RotationSystem:      RotationSRS,
		Randomizer:          RandomizerBag7,
		DASSpeed:            16,
		DASDelay:            150,
		MsPerTick:           16,
		TicksPerDraw:        1,
		FloorkickLimit:      1,
		LockDelay:           500,
		LockStyle:           LockMove,
		SoftDropGravity:     0,
		Gravity:             1000,
		OneShotSoftDrop:     false,
		AREDelay:            0,
		ARECancellable:      false,
		InitialActionStyle:  InitialActionNone,
		PreviewPieceCount:   4,
		ReadyPhaseLength:    833,
		GoPhaseLength:       833,
		InfiniteReadyGoHold: false,
	}
}

// Validate reports every option that the engine cannot run with.
func (o Options) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(o.Goal >= 0, "goal must not be negative, got %d", o.Goal)
	check(o.FieldWidth >= 4 && o.FieldWidth <= MaxGridWidth,
		"field_width must be within [4, %d], got %d", MaxGridWidth, o.FieldWidth)
	check(o.FieldHeight >= 4, "field_height must be at least 4, got %d", o.FieldHeight)
	check(o.FieldHidden >= 0, "field_hidden must not be negative, got %d", o.FieldHidden)
	check(o.FieldHeight+o.FieldHidden <= MaxGridHeight,
		"field_height + field_hidden must not exceed %d, got %d", MaxGridHeight, o.FieldHeight+o.FieldHidden)
	check(o.RotationSystem == RotationSRS, "unsupported rotation system %d", o.RotationSystem)
	check(o.Randomizer == RandomizerSimple || o.Randomizer == RandomizerBag7,
		"unsupported randomizer %d", o.Randomizer)
	check(o.DASSpeed >= 0, "das_speed must not be negative, got %d", o.DASSpeed)
	check(o.DASDelay >= 0, "das_delay must not be negative, got %d", o.DASDelay)
	check(o.MsPerTick >= 1, "ms_per_tick must be at least 1, got %d", o.MsPerTick)
	check(o.TicksPerDraw >= 1, "ticks_per_draw must be at least 1, got %d", o.TicksPerDraw)
	check(o.FloorkickLimit >= 0, "floorkick_limit must not be negative, got %d", o.FloorkickLimit)
	check(o.LockDelay >= 0, "lock_delay must not be negative, got %d", o.LockDelay)
	check(o.LockStyle <= LockEntry, "unsupported lock style %d", o.LockStyle)
	check(o.AREDelay >= 0, "are_delay must not be negative, got %d", o.AREDelay)
	check(o.InitialActionStyle <= InitialActionPersistent,
		"unsupported initial action style %d", o.InitialActionStyle)
	check(o.SoftDropGravity >= 0, "soft_drop_gravity must not be negative, got %d", o.SoftDropGravity)
	check(o.Gravity >= 0, "gravity must not be negative, got %d", o.Gravity)
	check(o.PreviewPieceCount >= 1 && o.PreviewPieceCount <= MaxPreviewCount,
		"preview_piece_count must be within [1, %d], got %d", MaxPreviewCount, o.PreviewPieceCount)
	check(o.ReadyPhaseLength >= 0, "ready_phase_length must not be negative, got %d", o.ReadyPhaseLength)
	check(o.GoPhaseLength >= 0, "go_phase_length must not be negative, got %d", o.GoPhaseLength)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("engine: invalid options: %w", errors.Join(errs...))
}

// LockStyle decides which actions reset the lock timer of a grounded piece.
type LockStyle uint8

const (
	// LockMove resets the timer on a successful move or rotation and
	// whenever gravity moves the piece down.
	LockMove LockStyle = iota

	// LockStep resets the timer only when gravity moves the piece down.
	LockStep

	// LockEntry never resets the timer; each piece gets LockDelay in total.
	LockEntry
)

var lockStyleNames = [...]string{LockMove: "move", LockStep: "step", LockEntry: "entry"}

func (s LockStyle) String() string {
	if int(s) < len(lockStyleNames) {
		return lockStyleNames[s]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (s LockStyle) MarshalText() ([]byte, error) {
	if int(s) >= len(lockStyleNames) {
		return nil, fmt.Errorf("engine: invalid lock style %d", s)
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *LockStyle) UnmarshalText(text []byte) error {
	for i, name := range lockStyleNames {
		if name == string(text) {
			*s = LockStyle(i)
			return nil
		}
	}
	return fmt.Errorf("engine: unknown lock style %q", text)
}

// InitialActionStyle controls initial rotation and hold (IRS/IHS): keys held
// while waiting for the next piece acting on it as it spawns.
type InitialActionStyle uint8

const (
	InitialActionNone InitialActionStyle = iota

	// InitialActionPersistent applies the rotation or hold keys still held
	// on the last tick before the piece spawns.
	InitialActionPersistent
)

var initialActionNames = [...]string{InitialActionNone: "none", InitialActionPersistent: "persistent"}

func (s InitialActionStyle) String() string {
	if int(s) < len(initialActionNames) {
		return initialActionNames[s]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (s InitialActionStyle) MarshalText() ([]byte, error) {
	if int(s) >= len(initialActionNames) {
		return nil, fmt.Errorf("engine: invalid initial action style %d", s)
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *InitialActionStyle) UnmarshalText(text []byte) error {
	for i, name := range initialActionNames {
		if name == string(text) {
			*s = InitialActionStyle(i)
			return nil
		}
	}
	return fmt.Errorf("engine: unknown initial action style %q", text)
}

// Internal holds engine state that is not an option but still identifies a game.
type Internal struct {
	Seed uint32
}

// Statistics are the per-game counters reported to players and hiscores.
type Statistics struct {
	KeysPressed  int
	BlocksPlaced int
	LinesCleared int
	Finesse      int // Presses beyond the minimum, summed over locked pieces
}
