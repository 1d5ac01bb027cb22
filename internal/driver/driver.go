// Package driver walks a chart's schedule against the song position, releasing
// every group of beats that is due and deciding when the run is over.
package driver

import (
	"git.lost.host/meutraa/beatsmash/internal/game"
)

// Clock is the song position source. Every value is in ms.
type Clock interface {
	Position() float64
	// Length is how long the song is, not counting the pre-roll
	Length() float64
	// PreRoll is how long the clock runs before the audio starts
	PreRoll() float64
}

// Sink receives every released entry, it is expected to put the target on
// screen and judge it
type Sink interface {
	Release(offset int, e game.Entry)
}

type Health interface {
	Dead() bool
}

// Tally is read once, when the run ends
type Tally interface {
	Counts() game.Counts
	Score() int
	MaxCombo() int
}

type Deps struct {
	Clock  Clock
	Sink   Sink
	Health Health
	Tally  Tally
}

// Driver is not safe for concurrent use, Tick must only ever be called from a
// single goroutine. A finished driver can not be restarted.
type Driver struct {
	chart  *game.Chart
	deps   Deps
	cursor *game.Cursor

	lookahead  float64
	exhausted  bool
	terminated bool
	released   int

	summary game.Summary

	// OnFinish is called once, with the final summary
	OnFinish func(game.Summary)
}

func New(chart *game.Chart, deps Deps) *Driver {
	cursor := chart.Schedule.Cursor()
	return &Driver{
		chart:     chart,
		deps:      deps,
		cursor:    cursor,
		lookahead: deps.Clock.PreRoll(),
		exhausted: cursor.Exhausted(),
	}
}

// Lookahead is how long before its offset a group is released
func (d *Driver) Lookahead() float64 {
	return d.lookahead
}

// Step ticks at the clock's current position
func (d *Driver) Step() bool {
	return d.Tick(d.deps.Clock.Position())
}

// Tick releases everything due at position and reports whether the run is
// still going
func (d *Driver) Tick(position float64) bool {
	if d.terminated {
		return false
	}

	if !d.exhausted {
		d.release(position)
	}

	if d.deps.Health.Dead() {
		d.finish(position, false)
	} else if position >= d.deps.Clock.Length()+d.lookahead {
		d.finish(position, true)
	}

	return !d.terminated
}

// release catches up on every due group, a long frame can release many
func (d *Driver) release(position float64) {
	for {
		offset, group, ok := d.cursor.Current()
		if !ok {
			d.exhausted = true
			return
		}
		if float64(offset)-position > d.lookahead {
			return
		}
		for _, e := range group {
			d.deps.Sink.Release(offset, e)
		}
		d.released++
		if !d.cursor.Advance() {
			d.exhausted = true
			return
		}
	}
}

func (d *Driver) finish(position float64, completed bool) {
	counts := d.deps.Tally.Counts()
	grade := game.GradeF
	if completed {
		grade = game.GradeFor(counts.Points(), d.chart.MaxScore)
	}
	d.summary = game.Summary{
		ChartSum:  d.chart.Sum,
		Grade:     grade,
		Score:     d.deps.Tally.Score(),
		MaxCombo:  d.deps.Tally.MaxCombo(),
		Counts:    counts,
		Completed: completed,
		Position:  position,
	}
	d.terminated = true
	if nil != d.OnFinish {
		d.OnFinish(d.summary)
	}
}

func (d *Driver) Exhausted() bool {
	return d.exhausted
}

func (d *Driver) Terminated() bool {
	return d.terminated
}

// Released is the number of groups handed to the sink so far
func (d *Driver) Released() int {
	return d.released
}

// Summary is only valid once the driver has terminated
func (d *Driver) Summary() (game.Summary, bool) {
	return d.summary, d.terminated
}
