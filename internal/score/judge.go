package score

import (
	"math"

	"git.lost.host/meutraa/beatsmash/internal/game"
)

// Windows are the largest distances in ms from a target's offset that still
// count for each quality
type Windows struct {
	Great, Good, Bad float64
}

var DefaultWindows = Windows{Great: 50, Good: 100, Bad: 150}

func (w Windows) quality(distance float64) (game.Quality, bool) {
	switch {
	case distance <= w.Great:
		return game.Great, true
	case distance <= w.Good:
		return game.Good, true
	case distance <= w.Bad:
		return game.Bad, true
	}
	return game.Miss, false
}

const (
	MaxHealth = 100

	// Health gained or lost per quality
	healthGreat = 2
	healthGood  = 1
	healthBad   = -5
	healthMiss  = -10
)

type Target struct {
	Group int // The schedule offset the target was released with
	Entry game.Entry
}

type Judgement struct {
	Target   Target
	Quality  game.Quality
	Distance float64 // Signed, positive when hit early
	At       float64
}

// Judge takes every released beat, judges key presses against them and keeps
// the tally of the run. It is not safe for concurrent use.
type Judge struct {
	Windows Windows

	pending [game.NLanes][]Target

	counts   game.Counts
	combo    int
	maxCombo int
	score    int
	health   int

	OnJudge func(Judgement)
}

func NewJudge() *Judge {
	return &Judge{
		Windows: DefaultWindows,
		health:  MaxHealth,
	}
}

// Release queues a target on its lane, groups arrive in ascending order so
// every lane stays sorted
func (j *Judge) Release(offset int, e game.Entry) {
	if !e.Lane.Valid() {
		return
	}
	j.pending[e.Lane] = append(j.pending[e.Lane], Target{Group: offset, Entry: e})
}

// Press judges the closest pending target on the lane. Nothing is judged when
// the closest target is outside of every window.
func (j *Judge) Press(lane game.Lane, position float64) (Judgement, bool) {
	if !lane.Valid() {
		return Judgement{}, false
	}
	targets := j.pending[lane]
	closest := -1
	best := math.Inf(1)
	for i, t := range targets {
		d := math.Abs(t.Entry.Offset - position)
		if d < best {
			best = d
			closest = i
		} else {
			// already found the closest
			break
		}
	}
	if closest < 0 {
		return Judgement{}, false
	}
	q, ok := j.Windows.quality(best)
	if !ok {
		return Judgement{}, false
	}

	t := targets[closest]
	j.pending[lane] = append(targets[:closest:closest], targets[closest+1:]...)
	judgement := Judgement{
		Target:   t,
		Quality:  q,
		Distance: t.Entry.Offset - position,
		At:       position,
	}
	j.apply(judgement)
	return judgement, true
}

// Sweep misses every target that can no longer be hit
func (j *Judge) Sweep(position float64) []Judgement {
	missed := []Judgement{}
	for lane := range j.pending {
		targets := j.pending[lane]
		n := 0
		for n < len(targets) && position-targets[n].Entry.Offset > j.Windows.Bad {
			judgement := Judgement{
				Target:   targets[n],
				Quality:  game.Miss,
				Distance: targets[n].Entry.Offset - position,
				At:       position,
			}
			j.apply(judgement)
			missed = append(missed, judgement)
			n++
		}
		j.pending[lane] = targets[n:]
	}
	return missed
}

func (j *Judge) apply(judgement Judgement) {
	q := judgement.Quality
	j.counts.Add(q)
	switch q {
	case game.Miss:
		j.combo = 0
		j.health += healthMiss
	case game.Bad:
		j.combo++
		j.health += healthBad
	case game.Good:
		j.combo++
		j.health += healthGood
	case game.Great:
		j.combo++
		j.health += healthGreat
	}
	if j.combo > j.maxCombo {
		j.maxCombo = j.combo
	}
	if j.health > MaxHealth {
		j.health = MaxHealth
	} else if j.health < 0 {
		j.health = 0
	}
	// Every 10 in a row is worth another full hit
	j.score += q.Points() + q.Points()*j.combo/10

	if nil != j.OnJudge {
		j.OnJudge(judgement)
	}
}

// Pending is every target released but not yet judged, ordered by lane
func (j *Judge) Pending() []Target {
	all := []Target{}
	for _, targets := range j.pending {
		all = append(all, targets...)
	}
	return all
}

func (j *Judge) Dead() bool {
	return j.health <= 0
}

func (j *Judge) Health() int {
	return j.health
}

func (j *Judge) Counts() game.Counts {
	return j.counts
}

func (j *Judge) Score() int {
	return j.score
}

func (j *Judge) Combo() int {
	return j.combo
}

func (j *Judge) MaxCombo() int {
	return j.maxCombo
}
