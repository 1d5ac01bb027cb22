package theme

import "git.lost.host/meutraa/beatsmash/internal/game"

type Theme interface {
	RenderTarget(lane game.Lane, kind game.Kind) string
	RenderHold(lane game.Lane) string
	RenderHitField(lane game.Lane) string
	RenderJudgement(q game.Quality) string
}
