package parser

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyChart      = errors.New("chart has no metadata line")
	ErrNoEvents        = errors.New("chart has no event lines")
	ErrTempo           = errors.New("metadata line is not a tempo")
	ErrFieldCount      = errors.New("expected offset, lane and type")
	ErrOffset          = errors.New("offset is not an integer")
	ErrNegativeOffset  = errors.New("offset is negative")
	ErrDuration        = errors.New("duration is not a non-negative integer")
	ErrMissingDuration = errors.New("held beat has no duration")
	ErrTapDuration     = errors.New("tap beat has a duration")
)

// Diagnostic is a problem found on one line of a chart
type Diagnostic struct {
	Line    int    // 1 based
	Field   string // Empty when the whole line is at fault
	Err     error
	Dropped bool // The line did not make it into the schedule
}

func (d Diagnostic) Error() string {
	action := "kept"
	if d.Dropped {
		action = "dropped"
	}
	if d.Field == "" {
		return fmt.Sprintf("line %d: %v (%s)", d.Line, d.Err, action)
	}
	return fmt.Sprintf("line %d: %s: %v (%s)", d.Line, d.Field, d.Err, action)
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}
