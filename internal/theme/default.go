package theme

import (
	"fmt"
	"image/color"

	"git.lost.host/meutraa/beatsmash/internal/game"
)

type DefaultTheme struct {
}

func (t *DefaultTheme) RenderTarget(lane game.Lane, kind game.Kind) string {
	sym := tapSym
	if kind == game.Held {
		sym = heldSym
	}
	return paint(LaneColor(lane), sym)
}

func (t *DefaultTheme) RenderHold(lane game.Lane) string {
	return paint(LaneColor(lane), holdSym)
}

func (t *DefaultTheme) RenderHitField(lane game.Lane) string {
	if !lane.Valid() {
		return barSym
	}
	return paint(LaneColor(lane), barSyms[lane])
}

func (t *DefaultTheme) RenderJudgement(q game.Quality) string {
	return paint(judgementColors[q], q.String())
}

const (
	tapSym  = "⬤"
	heldSym = "◆"
	holdSym = "┃"
	barSym  = "-"
)

var (
	barSyms    = [game.NLanes]string{"D", "F", "␣", "J", "K"}
	laneColors = [game.NLanes]color.RGBA{
		{236, 30, 0, 255},  // D red
		{0, 118, 236, 255}, // F blue
		{236, 195, 0, 255}, // Space yellow
		{0, 118, 236, 255}, // J blue
		{236, 30, 0, 255},  // K red
	}
	judgementColors = map[game.Quality]color.RGBA{
		game.Great: {173, 236, 236, 255},
		game.Good:  {0, 236, 128, 255},
		game.Bad:   {236, 128, 0, 255},
		game.Miss:  {236, 30, 0, 255},
	}
	otherColor = color.RGBA{255, 255, 255, 255}
)

func LaneColor(lane game.Lane) color.RGBA {
	if !lane.Valid() {
		return otherColor
	}
	return laneColors[lane]
}

func paint(c color.RGBA, s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}
