package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"git.lost.host/meutraa/beatsmash/internal/game"
	"git.lost.host/meutraa/beatsmash/internal/parser"
	"git.lost.host/meutraa/beatsmash/internal/score"
	"git.lost.host/meutraa/beatsmash/internal/testdata"
)

func parse(text string) *game.Chart {
	p := parser.DefaultParser{}
	chart, _ := p.ParseText(text)
	return chart
}

func TestSimulatePerfect(t *testing.T) {
	chart := parse(testdata.Chart(20, 250))
	s := simulate(chart, score.DefaultWindows, 1500*time.Millisecond, 4*time.Millisecond, 0)
	if !s.Completed || s.Grade != game.GradeA {
		t.Fatalf("expected a clear with an A, got %+v", s)
	}
	if s.Counts != (game.Counts{Great: 20}) || s.MaxCombo != 20 {
		t.Fatalf("expected 20 greats in a row, got %+v", s)
	}
	if s.ChartSum != chart.Sum {
		t.Fatal("expected the summary to identify the chart")
	}
	if s.Position < chart.Schedule.Last()+1500 {
		t.Fatalf("run ended early at %v", s.Position)
	}
}

func TestSimulateHalf(t *testing.T) {
	chart := parse(testdata.Chart(20, 250))
	s := simulate(chart, score.DefaultWindows, 1500*time.Millisecond, 4*time.Millisecond, 2)
	if !s.Completed || s.Counts != (game.Counts{Great: 10, Miss: 10}) {
		t.Fatalf("expected half the targets hit, got %+v", s)
	}
	// 50% of the possible points
	if s.Grade != game.GradeC || s.MaxCombo != 1 {
		t.Fatalf("expected a C without a combo, got %+v", s)
	}
}

func TestSimulateDeath(t *testing.T) {
	chart := parse(testdata.Chart(40, 250))
	s := simulate(chart, score.DefaultWindows, 500*time.Millisecond, 10*time.Millisecond, 1)
	if s.Completed || s.Grade != game.GradeF {
		t.Fatalf("expected death, got %+v", s)
	}
	if s.Counts.Miss != score.MaxHealth/10 {
		t.Fatalf("expected to die on the 10th miss, got %+v", s.Counts)
	}
}

func TestSimulateEmpty(t *testing.T) {
	s := simulate(parse(testdata.MetadataOnly), score.DefaultWindows, time.Second, 0, 0)
	if !s.Completed || s.Grade != game.GradeA || s.Counts.Total() != 0 {
		t.Fatalf("expected an empty chart to clear with an A, got %+v", s)
	}
}

func TestSimulateGroups(t *testing.T) {
	// Every lane at once, twice
	text := "120\n1000,D,0\n1000,F,0\n1000,Space,0\n1000,J,0\n1000,K,1,300\n2000,D,0\n2000,K,0"
	s := simulate(parse(text), score.DefaultWindows, time.Second, 16*time.Millisecond, 0)
	if s.Counts.Great != 7 || s.Grade != game.GradeA {
		t.Fatalf("expected every target in both groups hit, got %+v", s)
	}
}

func TestReport(t *testing.T) {
	p := parser.DefaultParser{}
	chart, diags := p.ParseText(testdata.Malformed)
	var out bytes.Buffer
	report(&out, chart, diags)
	for _, expected := range []string{
		"Entries:  4",
		"Max score:  1200",
		"line 2: offset: offset is not an integer (dropped)",
		"line 5: duration: duration is not a non-negative integer (kept)",
		"8 problems, 5 lines dropped",
	} {
		if !strings.Contains(out.String(), expected) {
			t.Log(out.String())
			t.Fatalf("expected report to contain %q", expected)
		}
	}
}

func TestFindFiles(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := findFiles(dir); !errors.Is(err, ErrNoChart) {
		t.Fatalf("expected ErrNoChart in an empty directory, got %v", err)
	}

	chart := filepath.Join(dir, "song.btmp")
	if err := os.WriteFile(chart, []byte(testdata.RoundTrip), 0o644); nil != err {
		t.Fatal(err)
	}
	if _, _, err := findFiles(dir); nil == err || errors.Is(err, ErrNoChart) {
		t.Fatalf("expected missing audio to be reported, got %v", err)
	}

	audio := filepath.Join(dir, "song.OGG")
	if err := os.WriteFile(audio, []byte{}, 0o644); nil != err {
		t.Fatal(err)
	}
	chartFile, audioFile, err := findFiles(dir)
	if nil != err || chartFile != chart || audioFile != audio {
		t.Fatalf("unexpected files %v %v %v", chartFile, audioFile, err)
	}
}

func TestCheck(t *testing.T) {
	file := filepath.Join(t.TempDir(), "chart.txt")
	if err := os.WriteFile(file, []byte(testdata.RoundTrip), 0o644); nil != err {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := check(&out, file); nil != err {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Groups:  2") || !strings.Contains(out.String(), "0 problems") {
		t.Fatalf("unexpected report %q", out.String())
	}
}

func TestPrintHistory(t *testing.T) {
	var out bytes.Buffer
	printHistory(&out, []score.History{
		{ID: "1", PlayedAt: time.Unix(0, 0).UTC(), Summary: game.Summary{Grade: game.GradeB, Score: 4200}},
	})
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[1], "4200") || !strings.Contains(lines[1], "B") {
		t.Fatalf("unexpected history %q", out.String())
	}
}

func TestDelayedStoppedNeverRuns(t *testing.T) {
	ran := make(chan struct{}, 1)
	d := after(20*time.Millisecond, func() { ran <- struct{}{} })
	d.Stop()
	time.Sleep(60 * time.Millisecond)
	if len(ran) != 0 {
		t.Fatal("expected a stopped start to never run")
	}
}

func TestDelayedRuns(t *testing.T) {
	ran := make(chan struct{}, 1)
	d := after(time.Millisecond, func() { ran <- struct{}{} })
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("expected the start to run after its delay")
	}
	// stopping after it ran is harmless
	d.Stop()
}
