package tui

import (
	"fmt"

	"github.com/vovakirdan/faststack/internal/core"
	"github.com/vovakirdan/faststack/internal/engine"
)

// Board layout constants
const (
	cellWidth  = 2  // Screen columns per grid cell
	panelWidth = 14 // Width of the hold/stats and preview panels
	previewGap = 3  // Rows per preview piece
)

var pieceColors = [engine.PieceTypeCount]core.Color{
	engine.PieceI: core.ColorCyan,
	engine.PieceJ: core.ColorBlue,
	engine.PieceL: core.ColorOrange,
	engine.PieceO: core.ColorYellow,
	engine.PieceS: core.ColorGreen,
	engine.PieceT: core.ColorMagenta,
	engine.PieceZ: core.ColorRed,
}

// boardSize returns the screen size needed to draw a game with opts.
func boardSize(opts engine.Options) (width, height int) {
	width = panelWidth + opts.FieldWidth*cellWidth + 2 + 1 + panelWidth
	height = max(opts.FieldHeight+2, opts.PreviewPieceCount*previewGap+2)
	return width, height
}

// MinTerminalSize returns the terminal size a game view with opts needs,
// including the title, status and help lines.
func MinTerminalSize(opts engine.Options) (width, height int) {
	width, height = boardSize(opts)
	return width, height + 3
}

// FormatTime renders a duration in milliseconds as m:ss.mmm.
func FormatTime(ms int) string {
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%d:%02d.%03d", ms/60000, ms/1000%60, ms%1000)
}

// DrawGame draws the playfield, hold piece, preview queue and statistics of
// e onto s. The screen must be at least boardSize large.
func DrawGame(s *core.Screen, e *engine.Engine) {
	s.Clear()
	opts := e.Options()

	field := core.NewRect(panelWidth, 0, opts.FieldWidth*cellWidth+2, opts.FieldHeight+2)
	s.DrawBox(field, core.ColorGray)
	drawField(s, field.Inner(), e)

	// Left panel: hold and statistics
	s.DrawText(1, 1, "HOLD", core.ColorGray)
	if t, ok := e.Hold(); ok {
		color := pieceColors[t]
		if p, active := e.Piece(); active && !p.CanHold {
			color = core.ColorDarkGray
		}
		drawMiniPiece(s, 2, 2, opts.RotationSystem, t, color)
	}
	drawStats(s, 1, 6, e)

	// Right panel: preview queue
	right := field.Right() + 1
	s.DrawText(right+1, 1, "NEXT", core.ColorGray)
	for i, t := range e.Preview() {
		drawMiniPiece(s, right+2, 2+i*previewGap, opts.RotationSystem, t, pieceColors[t])
	}

	drawBanner(s, field, e)
}

func drawField(s *core.Screen, area core.Rect, e *engine.Engine) {
	opts := e.Options()
	grid := e.Grid()
	hidden := opts.FieldHidden

	set := func(x, y int, glyph string, color core.Color) {
		row := y - hidden
		if row < 0 || row >= area.H {
			return
		}
		s.DrawText(area.X+x*cellWidth, area.Y+row, glyph, color)
	}

	for y := hidden; y < grid.Height(); y++ {
		for x := range grid.Width() {
			if t, ok := grid.At(x, y).Piece(); ok {
				set(x, y, "██", pieceColors[t])
			} else {
				set(x, y, " .", core.ColorDarkGray)
			}
		}
	}

	p, ok := e.Piece()
	if !ok || (e.State() != engine.StateFalling && e.State() != engine.StateLanded) {
		return
	}

	ghost := p
	ghost.Y = e.GhostY()
	for _, b := range ghost.Blocks() {
		set(b.X, b.Y, "[]", core.ColorDarkGray)
	}
	for _, b := range p.Blocks() {
		set(b.X, b.Y, "██", pieceColors[p.Type])
	}
}

// drawMiniPiece draws t in its spawn orientation with the top block row at y.
func drawMiniPiece(s *core.Screen, x, y int, rs engine.RotationSystem, t engine.PieceType, color core.Color) {
	blocks := engine.PieceOffsets(t, rs.SpawnTheta())
	top := blocks[0].Y
	for _, b := range blocks {
		top = min(top, b.Y)
	}
	for _, b := range blocks {
		s.DrawText(x+b.X*cellWidth, y+b.Y-top, "██", color)
	}
}

func drawStats(s *core.Screen, x, y int, e *engine.Engine) {
	stats := e.Stats()
	opts := e.Options()
	ms := e.ElapsedMs()

	lines := fmt.Sprintf("%d", stats.LinesCleared)
	if opts.Goal > 0 {
		lines = fmt.Sprintf("%d/%d", stats.LinesCleared, opts.Goal)
	}

	pps := 0.0
	if ms > 0 {
		pps = float64(stats.BlocksPlaced) * 1000 / float64(ms)
	}
	kpp := 0.0
	if stats.BlocksPlaced > 0 {
		kpp = float64(stats.KeysPressed) / float64(stats.BlocksPlaced)
	}

	rows := []struct {
		label, value string
	}{
		{"TIME", FormatTime(ms)},
		{"LINES", lines},
		{"PIECES", fmt.Sprintf("%d %.2f/s", stats.BlocksPlaced, pps)},
		{"KEYS/PIECE", fmt.Sprintf("%.2f", kpp)},
		{"FINESSE", fmt.Sprintf("%d", stats.Finesse)},
	}
	for i, r := range rows {
		s.DrawText(x, y+i*2, r.label, core.ColorGray)
		s.DrawText(x+1, y+i*2+1, r.value, core.ColorWhite)
	}
}

// drawBanner overlays the countdown or the end-of-game message.
func drawBanner(s *core.Screen, field core.Rect, e *engine.Engine) {
	mid := field.Y + field.H/2
	switch e.State() {
	case engine.StateReady:
		s.DrawTextCentered(field, mid, " READY ", core.ColorBrightYellow)
	case engine.StateGo:
		s.DrawTextCentered(field, mid, "  GO!  ", core.ColorBrightGreen)
	case engine.StateGameOver:
		if e.Completed() {
			s.DrawTextCentered(field, mid-1, " FINISH ", core.ColorBrightGreen)
			s.DrawTextCentered(field, mid, " "+FormatTime(e.ElapsedMs())+" ", core.ColorBrightWhite)
		} else {
			s.DrawTextCentered(field, mid, " GAME OVER ", core.ColorBrightRed)
		}
	}
}
