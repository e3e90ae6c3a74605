// Package engine implements the deterministic simulation core of faststack.
// It contains no terminal or storage dependencies so a game can be replayed
// bit-exactly from a seed, an Options snapshot and the per-tick input stream.
package engine

import "fmt"

// Compile-time limits shared by the engine and its collaborators.
const (
	// PieceTypeCount is the number of distinct piece types.
	PieceTypeCount = 7

	// PieceRotationCount is the number of rotation states of a piece.
	PieceRotationCount = 4

	// PieceBlockCount is the number of blocks in every piece.
	PieceBlockCount = 4

	// MaxGridWidth is the widest field the fixed grid storage can hold.
	MaxGridWidth = 20

	// MaxGridHeight is the tallest field (visible plus hidden rows) the grid can hold.
	MaxGridHeight = 25

	// MaxPreviewCount is the capacity of the next-piece queue.
	MaxPreviewCount = 5
)

// PieceType identifies one of the seven tetrominoes.
type PieceType uint8

const (
	PieceI PieceType = iota
	PieceJ
	PieceL
	PieceO
	PieceS
	PieceT
	PieceZ
)

// PieceTypes lists every piece type in ordinal order.
var PieceTypes = [PieceTypeCount]PieceType{PieceI, PieceJ, PieceL, PieceO, PieceS, PieceT, PieceZ}

// PieceTypeFromInt converts an ordinal into a PieceType.
// It panics if n is outside [0, PieceTypeCount).
func PieceTypeFromInt(n int) PieceType {
	if n < 0 || n >= PieceTypeCount {
		panic(fmt.Sprintf("engine: piece type ordinal %d out of range", n))
	}
	return PieceType(n)
}

// String returns the single letter name of the piece.
func (p PieceType) String() string {
	switch p {
	case PieceI:
		return "I"
	case PieceJ:
		return "J"
	case PieceL:
		return "L"
	case PieceO:
		return "O"
	case PieceS:
		return "S"
	case PieceT:
		return "T"
	case PieceZ:
		return "Z"
	default:
		return "?"
	}
}

// ParsePieceType parses a single letter piece name (case-insensitive).
func ParsePieceType(s string) (PieceType, error) {
	if len(s) == 1 {
		c := s[0]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		for _, p := range PieceTypes {
			if p.String()[0] == c {
				return p, nil
			}
		}
	}
	return 0, fmt.Errorf("engine: unknown piece type %q", s)
}

// Theta is an absolute rotation state, or a relative rotation amount.
type Theta uint8

const (
	R0 Theta = iota
	R90
	R180
	R270
)

// Rotate returns the rotation reached from t after applying amount.
func (t Theta) Rotate(amount RotationAmount) Theta {
	return Theta((int(t) + PieceRotationCount + int(amount)) & 3)
}

// Opposite reports whether u is the 180 degree rotation of t.
func (t Theta) Opposite(u Theta) bool {
	return (t+2)&3 == u
}

// Degrees returns the rotation in degrees.
func (t Theta) Degrees() int {
	return int(t) * 90
}

func (t Theta) String() string {
	return fmt.Sprintf("R%d", t.Degrees())
}

// ThetaFromDegrees converts 0, 90, 180 or 270 into a Theta.
func ThetaFromDegrees(deg int) (Theta, error) {
	switch deg {
	case 0:
		return R0, nil
	case 90:
		return R90, nil
	case 180:
		return R180, nil
	case 270:
		return R270, nil
	}
	return 0, fmt.Errorf("engine: rotation must be 0, 90, 180 or 270, got %d", deg)
}

// Offset is a cell offset or position delta. Y grows downward.
type Offset struct {
	X, Y int
}

// Piece is the active piece owned by an Engine.
type Piece struct {
	Type  PieceType
	X     int // Bounding box column
	Y     int // Bounding box row
	Theta Theta

	LockTimer      int // Milliseconds spent grounded since the last pose change
	RotationCount  int // Successful rotations
	MovementCount  int // Horizontal key presses
	FloorkickCount int // Rotations that needed a non-zero kick
	CanHold        bool
}

// NewPiece returns a piece of the given type at the origin.
func NewPiece(t PieceType) Piece {
	return Piece{Type: t, CanHold: true}
}

// Blocks returns the absolute grid cells occupied by the piece.
func (p Piece) Blocks() [PieceBlockCount]Offset {
	return p.blocksAt(p.X, p.Y, p.Theta)
}

func (p Piece) blocksAt(x, y int, theta Theta) [PieceBlockCount]Offset {
	blocks := PieceOffsets(p.Type, theta)
	for i := range blocks {
		blocks[i].X += x
		blocks[i].Y += y
	}
	return blocks
}
