package engine

import "strings"

// RotationAmount is a rotation request relative to the current pose.
type RotationAmount int8

const (
	RotateNone          RotationAmount = 0
	RotateClockwise     RotationAmount = 1
	RotateAnticlockwise RotationAmount = -1
	RotateHalf          RotationAmount = 2
)

// InputFlag carries one-shot actions for a tick.
type InputFlag uint8

const (
	InputHardDrop InputFlag = 1 << iota
	InputHold
	InputQuit
	InputRestart
)

// Input is the per-tick request produced by the control layer.
type Input struct {
	Rotation     RotationAmount
	Movement     int  // Signed cells to shift, clamped by collision
	NewMovePress bool // A horizontal key went down this tick
	SoftDrop     bool
	Extra        InputFlag
	NewKeys      int // Keys that went down this tick

	// Rotation and hold keys currently held, consumed while waiting for
	// the next piece.
	HeldRotation RotationAmount
	HeldHold     bool
}

// Has reports whether flag is set on the input.
func (in Input) Has(flag InputFlag) bool {
	return in.Extra&flag != 0
}

// GameState is the phase of the engine state machine.
type GameState uint8

const (
	StateReady GameState = iota
	StateGo
	StateFalling
	StateLanded
	StateNewPiece
	StateLines
	StateQuit
	StateGameOver
	StateRestart
	StateARE
)

func (s GameState) String() string {
	switch s {
	case StateReady:
		return "Ready"
	case StateGo:
		return "Go"
	case StateFalling:
		return "Falling"
	case StateLanded:
		return "Landed"
	case StateNewPiece:
		return "NewPiece"
	case StateLines:
		return "Lines"
	case StateQuit:
		return "Quit"
	case StateGameOver:
		return "GameOver"
	case StateRestart:
		return "Restart"
	case StateARE:
		return "ARE"
	default:
		return "Unknown"
	}
}

// Event is a bitmask of things that happened during the last tick.
type Event uint16

const (
	EventReady Event = 1 << iota
	EventGo
	EventMove
	EventRotate
	EventHold
	EventLock
	EventClear1
	EventClear2
	EventClear3
	EventClear4
	EventGameOver
)

var eventNames = [...]struct {
	ev   Event
	name string
}{
	{EventReady, "ready"},
	{EventGo, "go"},
	{EventMove, "move"},
	{EventRotate, "rotate"},
	{EventHold, "hold"},
	{EventLock, "lock"},
	{EventClear1, "single"},
	{EventClear2, "double"},
	{EventClear3, "triple"},
	{EventClear4, "quad"},
	{EventGameOver, "gameover"},
}

// Has reports whether every bit of ev is set.
func (e Event) Has(ev Event) bool {
	return e&ev == ev
}

func (e Event) String() string {
	if e == 0 {
		return "none"
	}
	var parts []string
	for _, n := range eventNames {
		if e&n.ev != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

func clearEvent(lines int) Event {
	switch lines {
	case 1:
		return EventClear1
	case 2:
		return EventClear2
	case 3:
		return EventClear3
	case 4:
		return EventClear4
	}
	return 0
}
