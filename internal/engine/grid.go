package engine

import (
	"fmt"
	"strings"
)

// Cell is one grid slot: zero when empty, otherwise the locked piece type plus one.
type Cell uint8

// Empty is the unoccupied cell.
const Empty Cell = 0

// Filled returns a cell holding a block of t.
func Filled(t PieceType) Cell {
	return Cell(t) + 1
}

// Piece returns the piece type of a filled cell.
func (c Cell) Piece() (PieceType, bool) {
	if c == Empty {
		return 0, false
	}
	return PieceType(c - 1), true
}

// Grid is the fixed-size playfield. Row 0 is the top hidden row.
type Grid struct {
	cells  [MaxGridHeight][MaxGridWidth]Cell
	width  int
	height int
}

// NewGrid returns an empty grid of the given playable size.
func NewGrid(width, height int) Grid {
	if width < 1 || width > MaxGridWidth || height < 1 || height > MaxGridHeight {
		panic(fmt.Sprintf("engine: grid size %dx%d exceeds %dx%d", width, height, MaxGridWidth, MaxGridHeight))
	}
	return Grid{width: width, height: height}
}

// Width returns the number of playable columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of playable rows, hidden rows included.
func (g *Grid) Height() int { return g.height }

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) mustBeInBounds(x, y int) {
	if !g.inBounds(x, y) {
		panic(fmt.Sprintf("engine: cell (%d,%d) outside %dx%d grid", x, y, g.width, g.height))
	}
}

// At returns the cell at (x, y). It panics outside the playable area.
func (g *Grid) At(x, y int) Cell {
	g.mustBeInBounds(x, y)
	return g.cells[y][x]
}

// Set stores c at (x, y). It panics outside the playable area.
func (g *Grid) Set(x, y int, c Cell) {
	g.mustBeInBounds(x, y)
	g.cells[y][x] = c
}

// Occupied reports whether (x, y) blocks a piece. Cells outside the
// playable area count as occupied.
func (g *Grid) Occupied(x, y int) bool {
	if !g.inBounds(x, y) {
		return true
	}
	return g.cells[y][x] != Empty
}

// Collides reports whether any of blocks overlaps the walls, floor or stack.
func (g *Grid) Collides(blocks [PieceBlockCount]Offset) bool {
	for _, b := range blocks {
		if g.Occupied(b.X, b.Y) {
			return true
		}
	}
	return false
}

func (g *Grid) rowFull(y int) bool {
	for x := range g.width {
		if g.cells[y][x] == Empty {
			return false
		}
	}
	return true
}

// ClearLines removes full rows, shifts the remaining rows down in their
// original order and returns the number of rows removed.
func (g *Grid) ClearLines() int {
	dst := g.height - 1
	for src := g.height - 1; src >= 0; src-- {
		if g.rowFull(src) {
			continue
		}
		if dst != src {
			g.cells[dst] = g.cells[src]
		}
		dst--
	}

	cleared := dst + 1
	for y := 0; y <= dst; y++ {
		g.cells[y] = [MaxGridWidth]Cell{}
	}
	return cleared
}

// Rows renders the playable area, one string per row, using '.' for empty
// cells and the piece letter otherwise.
func (g *Grid) Rows() []string {
	rows := make([]string, g.height)
	var sb strings.Builder
	for y := range g.height {
		sb.Reset()
		for x := range g.width {
			if t, ok := g.cells[y][x].Piece(); ok {
				sb.WriteString(t.String())
			} else {
				sb.WriteByte('.')
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}
