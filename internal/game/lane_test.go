package game

import (
	"errors"
	"testing"
)

var laneTests = map[string]Lane{
	"D":     LaneD,
	"F":     LaneF,
	"Space": LaneSpace,
	"J":     LaneJ,
	"K":     LaneK,
	"d":     LaneUninit,
	"space": LaneUninit,
	"":      LaneUninit,
	"L":     LaneUninit,
}

func TestParseLane(t *testing.T) {
	for code, expected := range laneTests {
		lane, err := ParseLane(code)
		if lane != expected {
			t.Log("code    ", code)
			t.Log("lane    ", lane)
			t.Log("expected", expected)
			t.Fail()
		}
		if expected == LaneUninit && !errors.Is(err, ErrUnknownLane) {
			t.Fatalf("expected ErrUnknownLane for %q, got %v", code, err)
		}
		if expected != LaneUninit && lane.String() != code {
			t.Fatalf("expected %v to print as %q", lane, code)
		}
	}
}

var kindTests = map[string]Kind{
	"0":   Tap,
	"1":   Held,
	"10":  Held,
	"0x":  Tap,
	"2":   KindUninit,
	"":    KindUninit,
	" 0":  KindUninit,
	"Tap": KindUninit,
}

func TestParseKind(t *testing.T) {
	for field, expected := range kindTests {
		kind, err := ParseKind(field)
		if kind != expected {
			t.Log("field   ", field)
			t.Log("kind    ", kind)
			t.Log("expected", expected)
			t.Fail()
		}
		if (expected == KindUninit) != (err != nil) {
			t.Fatalf("unexpected error %v for %q", err, field)
		}
	}
}

func TestEntryEnd(t *testing.T) {
	tap := Entry{Kind: Tap, Offset: 100, Duration: NoDuration}
	held := Entry{Kind: Held, Offset: 100, Duration: 250}
	heldNoDuration := Entry{Kind: Held, Offset: 100, Duration: NoDuration}
	if tap.End() != 100 || held.End() != 350 || heldNoDuration.End() != 100 {
		t.Fatal("unexpected entry end")
	}
	if tap.HasDuration() || !held.HasDuration() {
		t.Fatal("unexpected HasDuration")
	}
}
