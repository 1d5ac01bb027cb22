package game

import "errors"

type Kind uint8

const (
	Tap Kind = iota
	Held
	KindUninit
)

var ErrUnknownKind = errors.New("unknown beat type")

// ParseKind only looks at the first character of the field
func ParseKind(field string) (Kind, error) {
	if len(field) == 0 {
		return KindUninit, ErrUnknownKind
	}
	switch field[0] {
	case '0':
		return Tap, nil
	case '1':
		return Held, nil
	}
	return KindUninit, ErrUnknownKind
}

func (k Kind) String() string {
	switch k {
	case Tap:
		return "Tap"
	case Held:
		return "Held"
	}
	return "UnInit"
}

// NoDuration marks an entry that has no hold length
const NoDuration = -1

type Entry struct {
	Lane     Lane
	Kind     Kind
	Offset   float64 // The time the target should be hit, in ms from song start
	Duration int     // Hold length in ms, NoDuration for taps
}

func (e Entry) HasDuration() bool {
	return e.Duration >= 0
}

// End is the time the target should be let go, which is Offset for anything
// that is not held
func (e Entry) End() float64 {
	if e.Kind == Held && e.HasDuration() {
		return e.Offset + float64(e.Duration)
	}
	return e.Offset
}
