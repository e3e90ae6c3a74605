package engine

import "fmt"

// FinesseFieldWidth is the only field width finesse tables exist for.
const FinesseFieldWidth = 10

// positionDelta shifts the bounding box column to the leftmost occupied
// column of the piece.
var positionDelta = [PieceTypeCount][PieceRotationCount]int{
	PieceI: {0, 2, 0, 1},
	PieceJ: {0, 1, 0, 0},
	PieceL: {0, 1, 0, 0},
	PieceO: {1, 1, 1, 1},
	PieceS: {0, 1, 0, 0},
	PieceT: {0, 1, 0, 0},
	PieceZ: {0, 1, 0, 0},
}

var rotationDelta = [PieceTypeCount][PieceRotationCount]int{
	PieceI: {0, 1, 0, 1},
	PieceJ: {0, 1, 2, 1},
	PieceL: {0, 1, 2, 1},
	PieceO: {0, 0, 0, 0},
	PieceS: {0, 1, 0, 1},
	PieceT: {0, 1, 2, 1},
	PieceZ: {0, 1, 0, 1},
}

var (
	movesFlatI   = [FinesseFieldWidth]int{1, 2, 1, 0, 1, 2, 1, 0, 0, 0}
	movesFlat    = [FinesseFieldWidth]int{1, 2, 1, 0, 1, 2, 2, 1, 0, 0}
	movesRight   = [FinesseFieldWidth]int{1, 1, 2, 1, 0, 1, 2, 2, 1, 0}
	movesLeft    = [FinesseFieldWidth]int{1, 2, 1, 0, 1, 2, 2, 1, 1, 0}
	movesSZUp    = [FinesseFieldWidth]int{1, 1, 1, 0, 0, 1, 2, 1, 1, 0}
	movesIUp     = [FinesseFieldWidth]int{1, 1, 1, 1, 0, 0, 1, 1, 1, 1}
	movesSquareO = [FinesseFieldWidth]int{1, 2, 2, 1, 0, 1, 2, 2, 1, 0}
)

// movementDelta is the minimal number of horizontal key presses, indexed by
// the leftmost occupied column of the final placement.
var movementDelta = [PieceTypeCount][PieceRotationCount]*[FinesseFieldWidth]int{
	PieceI: {&movesFlatI, &movesIUp, &movesFlatI, &movesIUp},
	PieceJ: {&movesFlat, &movesRight, &movesFlatI, &movesLeft},
	PieceL: {&movesFlat, &movesRight, &movesFlatI, &movesLeft},
	PieceO: {&movesSquareO, &movesSquareO, &movesSquareO, &movesSquareO},
	PieceS: {&movesFlat, &movesSZUp, &movesFlat, &movesSZUp},
	PieceT: {&movesFlat, &movesRight, &movesFlat, &movesLeft},
	PieceZ: {&movesFlat, &movesSZUp, &movesFlat, &movesSZUp},
}

// MinimalMovesRequired returns the fewest rotation and movement presses
// needed to place t at bounding box column x with rotation theta on a
// 10-wide field. It panics if the placement cannot exist on such a field.
func MinimalMovesRequired(t PieceType, theta Theta, x int) (rotations, movements int) {
	if int(t) >= PieceTypeCount {
		panic(fmt.Sprintf("engine: invalid piece type %d", t))
	}
	if x >= FinesseFieldWidth {
		panic(fmt.Sprintf("engine: finesse column %d outside a %d-wide field", x, FinesseFieldWidth))
	}

	theta &= 3
	col := x + positionDelta[t][theta]
	if col < 0 || col >= FinesseFieldWidth {
		panic(fmt.Sprintf("engine: finesse column %d for %v %v at x=%d out of range", col, t, theta, x))
	}

	return rotationDelta[t][theta], movementDelta[t][theta][col]
}

// FinesseFaults returns the presses spent beyond the minimum for p.
func FinesseFaults(p Piece) int {
	rot, mov := MinimalMovesRequired(p.Type, p.Theta, p.X)
	return max(0, p.RotationCount-rot) + max(0, p.MovementCount-mov)
}

// FinesseColumns lists the bounding box columns at which t with rotation
// theta fits inside the finesse field, leftmost first.
func FinesseColumns(t PieceType, theta Theta) []int {
	blocks := PieceOffsets(t, theta)
	lo, hi := blocks[0].X, blocks[0].X
	for _, b := range blocks {
		lo = min(lo, b.X)
		hi = max(hi, b.X)
	}

	cols := make([]int, 0, FinesseFieldWidth)
	for x := -lo; x+hi < FinesseFieldWidth; x++ {
		cols = append(cols, x)
	}
	return cols
}
