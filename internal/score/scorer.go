package score

import (
	"time"

	"git.lost.host/meutraa/beatsmash/internal/game"
)

type Scorer interface {
	Init(path string) error
	Deinit()

	// Save the result of this run
	Save(summary game.Summary) error

	// Load every previous run of the chart, newest first
	Load(sum string) ([]History, error)

	// Best is the highest scoring previous run of the chart
	Best(sum string) (History, bool, error)
}

type History struct {
	ID       string
	PlayedAt time.Time
	Summary  game.Summary
}
