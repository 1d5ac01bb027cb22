package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"git.lost.host/meutraa/beatsmash/internal/config"
	"git.lost.host/meutraa/beatsmash/internal/game"
	"git.lost.host/meutraa/beatsmash/internal/parser"
	"git.lost.host/meutraa/beatsmash/internal/score"
)

var ErrNoChart = errors.New("no chart selected")

func main() {
	if err := run(os.Args[1:]); nil != err {
		log.Fatalln(err)
	}
}

func run(args []string) error {
	switch config.Parse(args) {
	case config.Play.FullCommand():
		return play(*config.Directory)
	case config.Check.FullCommand():
		return check(os.Stdout, *config.CheckChart)
	case config.Simulate.FullCommand():
		return simulateChart(os.Stdout, *config.SimulateChart)
	case config.History.FullCommand():
		return history(os.Stdout, *config.HistoryChart)
	}
	return nil
}

func play(directory string) error {
	p := &Program{}
	if err := p.Init(directory); nil != err {
		return err
	}
	defer p.Deinit()

	summary, err := p.Run()
	if nil != err {
		return err
	}
	printSummary(os.Stdout, summary)
	return nil
}

func loadChart(file string) (*game.Chart, error) {
	var psr parser.Parser = &parser.DefaultParser{}
	chart, diags, err := psr.Parse(file)
	if nil != err {
		return nil, err
	}
	for _, d := range diags {
		log.Println(d)
	}
	return chart, nil
}

func check(w io.Writer, file string) error {
	var psr parser.Parser = &parser.DefaultParser{}
	chart, diags, err := psr.Parse(file)
	if nil != err {
		return err
	}
	report(w, chart, diags)
	return nil
}

func report(w io.Writer, chart *game.Chart, diags []parser.Diagnostic) {
	s := chart.Schedule
	fmt.Fprintf(w, "      Tempo:  %v\n", chart.Tempo)
	fmt.Fprintf(w, "     Groups:  %v\n", s.Len())
	fmt.Fprintf(w, "    Entries:  %v\n", s.Entries())
	fmt.Fprintf(w, "  Max score:  %v\n", chart.MaxScore)
	if keys := s.Keys(); len(keys) > 0 {
		fmt.Fprintf(w, "      First:  %v ms\n", keys[0])
		fmt.Fprintf(w, "        End:  %v ms\n", s.Last())
	}

	lanes := make([]int, game.NLanes)
	held := 0
	for _, k := range s.Keys() {
		for _, e := range s.Group(k) {
			lanes[e.Lane]++
			if e.Kind == game.Held {
				held++
			}
		}
	}
	fmt.Fprintf(w, "       Held:  %v\n", held)
	for i, count := range lanes {
		fmt.Fprintf(w, "%11v:  %v\n", game.Lane(i), count)
	}

	dropped := 0
	for _, d := range diags {
		if d.Dropped {
			dropped++
		}
		fmt.Fprintln(w, d)
	}
	fmt.Fprintf(w, "%v problems, %v lines dropped\n", len(diags), dropped)
}

func simulateChart(w io.Writer, file string) error {
	chart, err := loadChart(file)
	if nil != err {
		return err
	}
	summary := simulate(chart, config.Windows(), *config.PreRoll, *config.FramePeriod, *config.MissEvery)
	printSummary(w, summary)

	if !*config.Save {
		return nil
	}
	var scorer score.Scorer = &score.DefaultScorer{}
	if err := scorer.Init(*config.Database); nil != err {
		return err
	}
	defer scorer.Deinit()
	return scorer.Save(summary)
}

func history(w io.Writer, file string) error {
	chart, err := loadChart(file)
	if nil != err {
		return err
	}
	var scorer score.Scorer = &score.DefaultScorer{}
	if err := scorer.Init(*config.Database); nil != err {
		return err
	}
	defer scorer.Deinit()

	histories, err := scorer.Load(chart.Sum)
	if nil != err {
		return err
	}
	printHistory(w, histories)
	return nil
}

func printSummary(w io.Writer, s game.Summary) {
	result := "Cleared"
	if !s.Completed {
		result = "Failed"
	}
	fmt.Fprintf(w, "%v at %.0f ms\n", result, s.Position)
	fmt.Fprintf(w, "      Grade:  %v\n", s.Grade)
	fmt.Fprintf(w, "      Score:  %v\n", s.Score)
	fmt.Fprintf(w, "  Max combo:  %v\n", s.MaxCombo)
	fmt.Fprintf(w, "      Great:  %v\n", s.Counts.Great)
	fmt.Fprintf(w, "       Good:  %v\n", s.Counts.Good)
	fmt.Fprintf(w, "        Bad:  %v\n", s.Counts.Bad)
	fmt.Fprintf(w, "       Miss:  %v\n", s.Counts.Miss)
}

func printHistory(w io.Writer, histories []score.History) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYED\tGRADE\tSCORE\tCOMBO\tGREAT\tGOOD\tBAD\tMISS")
	for _, h := range histories {
		s := h.Summary
		fmt.Fprintf(tw, "%v\t%v\t%v\t%v\t%v\t%v\t%v\t%v\n",
			h.PlayedAt.Format(time.RFC3339), s.Grade, s.Score, s.MaxCombo,
			s.Counts.Great, s.Counts.Good, s.Counts.Bad, s.Counts.Miss)
	}
	tw.Flush()
}
