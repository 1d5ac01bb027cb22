package main

import (
	"time"

	"git.lost.host/meutraa/beatsmash/internal/clock"
	"git.lost.host/meutraa/beatsmash/internal/driver"
	"git.lost.host/meutraa/beatsmash/internal/game"
	"git.lost.host/meutraa/beatsmash/internal/score"
)

// autoplay presses every target the moment it is due, except every nth one
type autoplay struct {
	judge     *score.Judge
	missEvery int
	seen      int
	skipped   map[score.Target]bool
}

func (a *autoplay) play(position float64) {
	for _, t := range a.judge.Pending() {
		if t.Entry.Offset > position || a.skipped[t] {
			continue
		}
		a.seen++
		if a.missEvery > 0 && a.seen%a.missEvery == 0 {
			a.skipped[t] = true
			continue
		}
		a.judge.Press(t.Entry.Lane, position)
	}
}

// simulate runs a whole chart against a manual clock, one frame at a time
func simulate(chart *game.Chart, windows score.Windows, preRoll, frame time.Duration, missEvery int) game.Summary {
	if frame <= 0 {
		frame = time.Millisecond
	}
	length := time.Duration(chart.Schedule.Last() * float64(time.Millisecond))
	clk := clock.NewManual(length, preRoll)

	judge := score.NewJudge()
	judge.Windows = windows
	bot := &autoplay{judge: judge, missEvery: missEvery, skipped: map[score.Target]bool{}}

	d := driver.New(chart, driver.Deps{Clock: clk, Sink: judge, Health: judge, Tally: judge})
	for d.Step() {
		bot.play(clk.Position())
		judge.Sweep(clk.Position())
		clk.Advance(frame)
	}
	summary, _ := d.Summary()
	return summary
}
