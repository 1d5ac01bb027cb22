package clock

import (
	"testing"
	"time"

	"git.lost.host/meutraa/beatsmash/internal/driver"
	"git.lost.host/meutraa/beatsmash/internal/game"
	"github.com/faiface/beep"
)

type fakeStream struct {
	length, position int
}

func (f *fakeStream) Stream(samples [][2]float64) (int, bool) {
	n := len(samples)
	if f.position+n > f.length {
		n = f.length - f.position
	}
	f.position += n
	return n, n > 0
}

func (f *fakeStream) Err() error    { return nil }
func (f *fakeStream) Len() int      { return f.length }
func (f *fakeStream) Position() int { return f.position }
func (f *fakeStream) Seek(p int) error {
	f.position = p
	return nil
}

type countingLock struct {
	locks, unlocks int
}

func (c *countingLock) Lock()   { c.locks++ }
func (c *countingLock) Unlock() { c.unlocks++ }

func newTestSong(stream *fakeStream, lock *countingLock) (*Song, *time.Time) {
	format := beep.Format{SampleRate: 1000, NumChannels: 2, Precision: 2}
	s := NewSong(stream, format, 1500*time.Millisecond, lock)
	now := time.Unix(1000, 0)
	s.now = func() time.Time { return now }
	s.Start()
	return s, &now
}

func TestSongPreRoll(t *testing.T) {
	stream := &fakeStream{length: 60000}
	s, now := newTestSong(stream, &countingLock{})

	if s.Position() != -1500 {
		t.Fatalf("expected -1500 at start, got %v", s.Position())
	}
	*now = now.Add(time.Second)
	if s.Position() != -500 {
		t.Fatalf("expected -500 a second in, got %v", s.Position())
	}
	// the speaker has not picked up the stream yet
	*now = now.Add(time.Second)
	if s.Position() != 0 {
		t.Fatalf("expected position to hold at 0, got %v", s.Position())
	}
}

func TestSongFollowsStream(t *testing.T) {
	stream := &fakeStream{length: 60000}
	lock := &countingLock{}
	s, now := newTestSong(stream, lock)
	*now = now.Add(2 * time.Second)

	stream.Stream(make([][2]float64, 250))
	if s.Position() != 250 {
		t.Fatalf("expected 250ms of a 1000Hz stream, got %v", s.Position())
	}
	if s.Length() != 60000 {
		t.Fatalf("expected length 60000, got %v", s.Length())
	}
	if s.PreRoll() != 1500 {
		t.Fatalf("expected pre-roll 1500, got %v", s.PreRoll())
	}
	if lock.locks == 0 || lock.locks != lock.unlocks {
		t.Fatalf("expected balanced locking, got %d/%d", lock.locks, lock.unlocks)
	}
}

func TestSongNeverGoesBack(t *testing.T) {
	stream := &fakeStream{length: 60000}
	s, _ := newTestSong(stream, &countingLock{})
	stream.Stream(make([][2]float64, 5000))
	if s.Position() != 5000 {
		t.Fatalf("expected 5000, got %v", s.Position())
	}
	stream.Seek(1000)
	if s.Position() != 5000 {
		t.Fatalf("expected position to hold after a seek back, got %v", s.Position())
	}
}

func TestSongKeepsRunningAfterStream(t *testing.T) {
	stream := &fakeStream{length: 3000}
	s, now := newTestSong(stream, &countingLock{})
	*now = now.Add(1500 * time.Millisecond)
	stream.Stream(make([][2]float64, 3000))

	if s.Position() != 3000 {
		t.Fatalf("expected 3000 when the stream runs out, got %v", s.Position())
	}
	*now = now.Add(time.Second)
	if s.Position() != 4000 {
		t.Fatalf("expected wall time to carry on after the stream, got %v", s.Position())
	}
}

type idle struct{}

func (idle) Release(int, game.Entry) {}
func (idle) Dead() bool              { return false }
func (idle) Counts() game.Counts     { return game.Counts{} }
func (idle) Score() int              { return 0 }
func (idle) MaxCombo() int           { return 0 }

func TestSongRunCompletes(t *testing.T) {
	b := game.NewBuilder()
	b.Add(1000, game.Entry{Lane: game.LaneD, Kind: game.Tap, Offset: 1000, Duration: game.NoDuration})
	chart := &game.Chart{Schedule: b.Build(), MaxScore: game.BestScore}

	stream := &fakeStream{length: 3000}
	s, now := newTestSong(stream, &countingLock{})
	d := driver.New(chart, driver.Deps{Clock: s, Sink: idle{}, Health: idle{}, Tally: idle{}})

	frame := 10 * time.Millisecond
	for i := 0; i < 10000 && d.Step(); i++ {
		*now = now.Add(frame)
		// the speaker picks the stream up once the pre-roll is over
		if s.Position() >= 0 {
			stream.Stream(make([][2]float64, 10))
		}
	}

	summary, ok := d.Summary()
	if !ok || !summary.Completed {
		t.Fatalf("expected the run to complete after the stream ran out, got %+v at %v", summary, s.Position())
	}
	if summary.Position < s.Length()+s.PreRoll() {
		t.Fatalf("expected completion past %v, got %v", s.Length()+s.PreRoll(), summary.Position)
	}
}

func TestManual(t *testing.T) {
	m := NewManual(10*time.Second, 500*time.Millisecond)
	if m.Position() != -500 || m.Length() != 10000 || m.PreRoll() != 500 {
		t.Fatalf("unexpected manual clock %+v", m)
	}
	m.Advance(16 * time.Millisecond)
	if m.Position() != -484 {
		t.Fatalf("expected -484, got %v", m.Position())
	}
	m.Set(1000)
	m.Set(10)
	m.Advance(-time.Second)
	if m.Position() != 1000 {
		t.Fatalf("expected manual clock to never go back, got %v", m.Position())
	}
}

func TestMillis(t *testing.T) {
	if Millis(1500*time.Microsecond) != 1.5 || Millis(2*time.Second) != 2000 {
		t.Fatalf("unexpected conversion %v %v", Millis(1500*time.Microsecond), Millis(2*time.Second))
	}
}
