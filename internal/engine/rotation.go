package engine

import "fmt"

// RotationSystem resolves piece shapes, spawn poses and wallkicks.
type RotationSystem uint8

const (
	// RotationSRS is the Super Rotation System.
	RotationSRS RotationSystem = iota
)

func (rs RotationSystem) String() string {
	switch rs {
	case RotationSRS:
		return "srs"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (rs RotationSystem) MarshalText() ([]byte, error) {
	if rs != RotationSRS {
		return nil, fmt.Errorf("engine: invalid rotation system %d", rs)
	}
	return []byte(rs.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (rs *RotationSystem) UnmarshalText(text []byte) error {
	if string(text) != "srs" {
		return fmt.Errorf("engine: unknown rotation system %q", text)
	}
	*rs = RotationSRS
	return nil
}

// pieceOffsets holds the cells of every piece in every rotation, relative to
// the top-left corner of its bounding box.
var pieceOffsets = [PieceTypeCount][PieceRotationCount][PieceBlockCount]Offset{
	PieceI: {
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
		{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
		{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
		{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
	},
	PieceJ: {
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 0}},
		{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
		{{0, 2}, {1, 0}, {1, 1}, {1, 2}},
	},
	PieceL: {
		{{0, 1}, {1, 1}, {2, 0}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		{{0, 1}, {0, 2}, {1, 1}, {2, 1}},
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
	},
	PieceO: {
		{{1, 0}, {1, 1}, {2, 0}, {2, 1}},
		{{1, 0}, {1, 1}, {2, 0}, {2, 1}},
		{{1, 0}, {1, 1}, {2, 0}, {2, 1}},
		{{1, 0}, {1, 1}, {2, 0}, {2, 1}},
	},
	PieceS: {
		{{0, 1}, {1, 0}, {1, 1}, {2, 0}},
		{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
		{{0, 2}, {1, 1}, {1, 2}, {2, 1}},
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
	PieceT: {
		{{0, 1}, {1, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 1}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 1}},
		{{0, 1}, {1, 0}, {1, 1}, {1, 2}},
	},
	PieceZ: {
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
		{{1, 1}, {1, 2}, {2, 0}, {2, 1}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
		{{0, 1}, {0, 2}, {1, 0}, {1, 1}},
	},
}

// PieceOffsets returns the four cells of t at rotation theta relative to the
// bounding box origin. Every rotation system shares this table.
func PieceOffsets(t PieceType, theta Theta) [PieceBlockCount]Offset {
	return pieceOffsets[t][theta&3]
}

// Kick tables are indexed by the rotation the piece is leaving. Offsets are
// in grid coordinates (y down) and exclude the unkicked test.
var (
	kicksJLSTZClockwise = [PieceRotationCount][]Offset{
		R0:   {{-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
		R90:  {{1, 0}, {1, 1}, {0, -2}, {1, -2}},
		R180: {{1, 0}, {1, -1}, {0, 2}, {1, 2}},
		R270: {{-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	}
	kicksJLSTZAnticlockwise = [PieceRotationCount][]Offset{
		R0:   {{1, 0}, {1, -1}, {0, 2}, {1, 2}},
		R90:  {{1, 0}, {1, 1}, {0, -2}, {1, -2}},
		R180: {{-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
		R270: {{-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	}
	kicksIClockwise = [PieceRotationCount][]Offset{
		R0:   {{-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
		R90:  {{-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
		R180: {{2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
		R270: {{1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
	}
	kicksIAnticlockwise = [PieceRotationCount][]Offset{
		R0:   {{-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
		R90:  {{2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
		R180: {{1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
		R270: {{-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
	}
)

// Kicks returns the ordered wallkick candidates for rotating t from current
// to target. The returned slice must not be modified. O pieces, identity
// rotations and 180 degree rotations have no kicks.
func (rs RotationSystem) Kicks(t PieceType, current, target Theta) []Offset {
	current &= 3
	target &= 3
	if t == PieceO || current == target || current.Opposite(target) {
		return nil
	}

	clockwise := current.Rotate(RotateClockwise) == target
	switch {
	case t == PieceI && clockwise:
		return kicksIClockwise[current]
	case t == PieceI:
		return kicksIAnticlockwise[current]
	case clockwise:
		return kicksJLSTZClockwise[current]
	default:
		return kicksJLSTZAnticlockwise[current]
	}
}

// SpawnTheta is the rotation every piece enters the field with.
func (rs RotationSystem) SpawnTheta() Theta {
	return R0
}

// SpawnOffset returns the bounding box position of a newly spawned piece.
// Row 0 is avoided so S and Z can still rotate upwards after spawning.
func (rs RotationSystem) SpawnOffset(opts Options) Offset {
	return Offset{
		X: opts.FieldWidth/2 - 2,
		Y: 1,
	}
}
