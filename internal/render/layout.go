package render

import (
	"math"

	"git.lost.host/meutraa/beatsmash/internal/game"
)

// Layout places targets on the terminal. Targets fall from row 1 towards the
// hit bar, reaching it at their offset.
type Layout struct {
	Rows, Columns int
	BarRow        int // rows from the bottom
	Spacing       int // columns between lanes
}

func (l Layout) HitRow() int {
	return l.Rows - l.BarRow
}

func (l Layout) Column(lane game.Lane) int {
	middle := l.Columns / 2
	return middle + (int(lane)-game.NLanes/2)*l.Spacing
}

// Row is where a target due at offset is drawn at position, given it appears
// at the top lookahead ms before its offset
func (l Layout) Row(offset, position, lookahead float64) int {
	hit := l.HitRow()
	if lookahead <= 0 {
		return hit
	}
	return hit - int(math.Round((offset-position)/lookahead*float64(hit-1)))
}

// Visible is whether row is inside the playing field
func (l Layout) Visible(row int) bool {
	return row > 0 && row <= l.Rows
}
