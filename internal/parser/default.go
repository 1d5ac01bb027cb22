package parser

import (
	"crypto/sha256"
	"encoding/base64"
	"io"
	"io/ioutil"
	"strconv"
	"strings"

	"git.lost.host/meutraa/beatsmash/internal/game"
	"github.com/pkg/errors"
)

type DefaultParser struct{}

// field holds either a parsed value or the reason it could not be parsed
type field[T any] struct {
	value T
	err   error
}

func (f field[T]) ok() bool {
	return f.err == nil
}

type record struct {
	line     int
	offset   field[int]
	lane     field[game.Lane]
	kind     field[game.Kind]
	duration *field[int] // nil when the line has no fourth value
}

func (p *DefaultParser) Parse(file string) (*game.Chart, []Diagnostic, error) {
	data, err := ioutil.ReadFile(file)
	if nil != err {
		return nil, nil, errors.Wrapf(err, "unable to read chart %v", file)
	}
	chart, diags := p.ParseText(string(data))
	return chart, diags, nil
}

func (p *DefaultParser) ParseReader(r io.Reader) (*game.Chart, []Diagnostic, error) {
	data, err := ioutil.ReadAll(r)
	if nil != err {
		return nil, nil, errors.Wrap(err, "unable to read chart")
	}
	chart, diags := p.ParseText(string(data))
	return chart, diags, nil
}

// ParseText never fails, a chart that is unusable results in an empty
// schedule that is worth nothing
func (p *DefaultParser) ParseText(text string) (*game.Chart, []Diagnostic) {
	str := strings.ReplaceAll(text, "\r", "")
	diags := []Diagnostic{}
	builder := game.NewBuilder()
	chart := &game.Chart{Sum: sum(str)}

	if strings.TrimSpace(str) == "" {
		diags = append(diags, Diagnostic{Line: 1, Err: ErrEmptyChart, Dropped: true})
		chart.Schedule = builder.Build()
		return chart, diags
	}

	lines := strings.Split(str, "\n")

	// The first line is always metadata, even when it looks like a beat
	tempo, err := strconv.ParseFloat(strings.TrimSpace(lines[0]), 64)
	if nil != err {
		diags = append(diags, Diagnostic{Line: 1, Field: "tempo", Err: ErrTempo})
	} else {
		chart.Tempo = tempo
	}

	for i, line := range lines[1:] {
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		rec, ds := p.parseLine(i+2, line)
		diags = append(diags, ds...)
		if nil == rec {
			continue
		}
		entry, ds, keep := insertable(rec)
		diags = append(diags, ds...)
		if keep {
			builder.Add(rec.offset.value, entry)
		}
	}

	chart.Schedule = builder.Build()
	if chart.Schedule.Entries() == 0 {
		diags = append(diags, Diagnostic{Line: len(lines), Err: ErrNoEvents})
	}
	chart.MaxScore = game.BestScore * chart.Schedule.Entries()
	return chart, diags
}

// parseLine splits the line and parses every value on its own, a nil record
// means the line could not even be split into the expected fields
func (p *DefaultParser) parseLine(n int, line string) (*record, []Diagnostic) {
	values := strings.Split(line, ",")
	for i := range values {
		values[i] = strings.TrimSpace(values[i])
	}
	if len(values) < 3 {
		return nil, []Diagnostic{{Line: n, Err: ErrFieldCount, Dropped: true}}
	}

	rec := &record{line: n}

	offset, err := strconv.Atoi(values[0])
	if nil != err {
		rec.offset.err = ErrOffset
	} else if offset < 0 {
		rec.offset.err = ErrNegativeOffset
	}
	rec.offset.value = offset

	lane, err := game.ParseLane(values[1])
	rec.lane = field[game.Lane]{value: lane, err: err}

	kind, err := game.ParseKind(values[2])
	rec.kind = field[game.Kind]{value: kind, err: err}

	if len(values) > 3 {
		duration, err := strconv.Atoi(values[3])
		if nil != err || duration < 0 {
			err = ErrDuration
		}
		rec.duration = &field[int]{value: duration, err: err}
	}
	return rec, nil
}

// insertable decides whether a parsed record belongs in the schedule.
// Records without a usable offset, lane or type are dropped, a bad duration
// only loses the duration.
func insertable(rec *record) (game.Entry, []Diagnostic, bool) {
	diags := []Diagnostic{}
	drop := func(name string, err error) {
		diags = append(diags, Diagnostic{Line: rec.line, Field: name, Err: err, Dropped: true})
	}
	if !rec.offset.ok() {
		drop("offset", rec.offset.err)
	}
	if !rec.lane.ok() {
		drop("lane", rec.lane.err)
	}
	if !rec.kind.ok() {
		drop("type", rec.kind.err)
	}
	if len(diags) > 0 {
		return game.Entry{}, diags, false
	}

	entry := game.Entry{
		Lane:     rec.lane.value,
		Kind:     rec.kind.value,
		Offset:   float64(rec.offset.value),
		Duration: game.NoDuration,
	}

	keep := func(name string, err error) {
		diags = append(diags, Diagnostic{Line: rec.line, Field: name, Err: err})
	}
	switch {
	case nil == rec.duration:
		if entry.Kind == game.Held {
			keep("duration", ErrMissingDuration)
		}
	case !rec.duration.ok():
		keep("duration", rec.duration.err)
	default:
		entry.Duration = rec.duration.value
		if entry.Kind == game.Tap {
			keep("duration", ErrTapDuration)
		}
	}
	return entry, diags, true
}

func sum(str string) string {
	s := sha256.Sum256([]byte(str))
	return base64.StdEncoding.EncodeToString(s[:])
}
