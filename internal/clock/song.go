package clock

import (
	"sync"
	"time"

	"github.com/faiface/beep"
)

// Song reports the position of a playing stream. Before the stream has
// started playing the position counts up from -preRoll towards 0.
type Song struct {
	stream  beep.StreamSeeker
	format  beep.Format
	preRoll time.Duration
	lock    sync.Locker

	now   func() time.Time
	start time.Time
	ended time.Time // when the stream ran out, zero until then
	last  float64
}

// NewSong takes the lock that guards the stream while it is being played,
// which is speaker.Lock/Unlock for a stream played through the speaker
func NewSong(stream beep.StreamSeeker, format beep.Format, preRoll time.Duration, lock sync.Locker) *Song {
	if nil == lock {
		lock = &sync.Mutex{}
	}
	return &Song{
		stream:  stream,
		format:  format,
		preRoll: preRoll,
		lock:    lock,
		now:     time.Now,
	}
}

// Start begins the pre-roll, the stream should be played preRoll later
func (s *Song) Start() {
	s.start = s.now()
	s.last = -Millis(s.preRoll)
}

// Position follows the stream while it plays. Once the stream has run out
// the position keeps counting with wall time, so the run can still end.
func (s *Song) Position() float64 {
	s.lock.Lock()
	played, length := s.stream.Position(), s.stream.Len()
	s.lock.Unlock()

	var pos float64
	switch {
	case length > 0 && played >= length:
		if s.ended.IsZero() {
			s.ended = s.now()
		}
		pos = Millis(s.format.SampleRate.D(length)) + Millis(s.now().Sub(s.ended))
	case played > 0:
		pos = Millis(s.format.SampleRate.D(played))
	default:
		pos = Millis(s.now().Sub(s.start)) - Millis(s.preRoll)
		// Waiting on the speaker to pick up the stream
		if pos > 0 {
			pos = 0
		}
	}

	if pos < s.last {
		return s.last
	}
	s.last = pos
	return pos
}

func (s *Song) Length() float64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	return Millis(s.format.SampleRate.D(s.stream.Len()))
}

func (s *Song) PreRoll() float64 {
	return Millis(s.preRoll)
}

// Millis converts d to the float ms every clock reports in
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
