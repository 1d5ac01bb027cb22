package clock

import "time"

// Manual is a clock that only moves when told to
type Manual struct {
	position float64
	length   float64
	preRoll  float64
}

// NewManual starts at -preRoll like a song that is about to play
func NewManual(length, preRoll time.Duration) *Manual {
	return &Manual{
		position: -Millis(preRoll),
		length:   Millis(length),
		preRoll:  Millis(preRoll),
	}
}

// Set moves the clock to position, a position in the past is ignored
func (m *Manual) Set(position float64) {
	if position > m.position {
		m.position = position
	}
}

func (m *Manual) Advance(d time.Duration) {
	if d > 0 {
		m.position += Millis(d)
	}
}

func (m *Manual) Position() float64 {
	return m.position
}

func (m *Manual) Length() float64 {
	return m.length
}

func (m *Manual) PreRoll() float64 {
	return m.preRoll
}
