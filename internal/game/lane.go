package game

import "errors"

type Lane uint8

const (
	LaneD Lane = iota
	LaneF
	LaneSpace
	LaneJ
	LaneK
	LaneUninit
)

// NLanes is the number of playable lanes, LaneUninit excluded
const NLanes = int(LaneUninit)

var ErrUnknownLane = errors.New("unknown lane code")

var laneCodes = map[string]Lane{
	"D":     LaneD,
	"F":     LaneF,
	"Space": LaneSpace,
	"J":     LaneJ,
	"K":     LaneK,
}

// ParseLane matches the chart code exactly, so "d" or " D" are not lanes
func ParseLane(code string) (Lane, error) {
	lane, ok := laneCodes[code]
	if !ok {
		return LaneUninit, ErrUnknownLane
	}
	return lane, nil
}

func (l Lane) Valid() bool {
	return l < LaneUninit
}

func (l Lane) String() string {
	switch l {
	case LaneD:
		return "D"
	case LaneF:
		return "F"
	case LaneSpace:
		return "Space"
	case LaneJ:
		return "J"
	case LaneK:
		return "K"
	}
	return "UnInit"
}
