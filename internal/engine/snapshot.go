package engine

// Snapshot captures the observable state of an engine for comparison in
// determinism and replay tests.
type Snapshot struct {
	State         GameState
	TotalTicks    int
	TotalTicksAll int
	Rows          []string
	Piece         Piece
	HasPiece      bool
	Hold          PieceType
	HasHold       bool
	Preview       []PieceType
	Stats         Statistics
	Completed     bool
}

// Snapshot returns the current observable state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		State:         e.state,
		TotalTicks:    e.totalTicks,
		TotalTicksAll: e.totalTicksAll,
		Rows:          e.grid.Rows(),
		Piece:         e.piece,
		HasPiece:      e.hasPiece,
		Hold:          e.hold,
		HasHold:       e.hasHold,
		Preview:       e.Preview(),
		Stats:         e.stats,
		Completed:     e.completed,
	}
}
