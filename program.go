package main

import (
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"git.lost.host/meutraa/beatsmash/internal/clock"
	"git.lost.host/meutraa/beatsmash/internal/config"
	"git.lost.host/meutraa/beatsmash/internal/driver"
	"git.lost.host/meutraa/beatsmash/internal/game"
	"git.lost.host/meutraa/beatsmash/internal/input"
	"git.lost.host/meutraa/beatsmash/internal/parser"
	"git.lost.host/meutraa/beatsmash/internal/render"
	"git.lost.host/meutraa/beatsmash/internal/score"
	"git.lost.host/meutraa/beatsmash/internal/theme"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

// speakerLock guards streams that are being played by the speaker
type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// delayed runs a func once after a delay unless stopped first. Once Stop
// returns the func is either done or will never run.
type delayed struct {
	lock    sync.Mutex
	stopped bool
	timer   *time.Timer
}

func after(d time.Duration, f func()) *delayed {
	s := &delayed{}
	s.timer = time.AfterFunc(d, func() {
		s.lock.Lock()
		defer s.lock.Unlock()
		if !s.stopped {
			f()
		}
	})
	return s
}

func (s *delayed) Stop() {
	s.timer.Stop()
	s.lock.Lock()
	s.stopped = true
	s.lock.Unlock()
}

type Program struct {
	Parser   parser.Parser
	Scorer   score.Scorer
	Theme    theme.Theme
	Renderer render.Renderer

	audioFile, chartFile string
	chart                *game.Chart
	best                 *score.History

	streamer beep.StreamSeekCloser
	format   beep.Format

	layout render.Layout
	judge  *score.Judge
	driver *driver.Driver
	clock  *clock.Song
	keys   *input.Keys

	judgement string
}

// findFiles picks the chart and audio out of a song directory
func findFiles(directory string) (chartFile, audioFile string, err error) {
	err = filepath.Walk(directory, func(p string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		switch strings.ToLower(path.Ext(info.Name())) {
		case ".ogg", ".mp3", ".wav":
			audioFile = p
		case ".txt", ".btmp":
			chartFile = p
		}
		return nil
	})
	if nil != err {
		return "", "", fmt.Errorf("unable to walk song directory: %w", err)
	}
	if chartFile == "" {
		return "", "", fmt.Errorf("%w: no .txt or .btmp file in %v", ErrNoChart, directory)
	}
	if audioFile == "" {
		return "", "", fmt.Errorf("unable to find .mp3/.ogg/.wav file in %v", directory)
	}
	return chartFile, audioFile, nil
}

func decode(file string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, beep.Format{}, err
	}
	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch strings.ToLower(path.Ext(file)) {
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		streamer, format, err = mp3.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("unable to decode %v: %w", file, err)
	}
	return streamer, format, nil
}

func (p *Program) Init(directory string) error {
	// Ensure our Default implementations are used as interfaces
	p.Parser = &parser.DefaultParser{}
	p.Scorer = &score.DefaultScorer{}
	p.Theme = &theme.DefaultTheme{}
	p.Renderer = &render.DefaultRenderer{}

	var err error
	p.chartFile, p.audioFile, err = findFiles(directory)
	if nil != err {
		return err
	}

	var diags []parser.Diagnostic
	p.chart, diags, err = p.Parser.Parse(p.chartFile)
	if nil != err {
		return err
	}
	for _, d := range diags {
		log.Println(d)
	}

	if err := p.Scorer.Init(*config.Database); nil != err {
		return err
	}
	if best, ok, err := p.Scorer.Best(p.chart.Sum); nil != err {
		log.Println("unable to load best run", err)
	} else if ok {
		p.best = &best
	}

	log.Printf("Opening %v (%v)\n", p.audioFile, p.chartFile)
	p.streamer, p.format, err = decode(p.audioFile)
	if nil != err {
		return err
	}
	return nil
}

func (p *Program) Deinit() {
	if nil != p.streamer {
		p.streamer.Close()
	}
	p.Scorer.Deinit()
}

// Run plays the song until it ends, the player dies or quits
func (p *Program) Run() (game.Summary, error) {
	if err := speaker.Init(p.format.SampleRate, p.format.SampleRate.N(time.Second/30)); nil != err {
		return game.Summary{}, fmt.Errorf("unable to open speaker: %w", err)
	}
	defer speaker.Clear()

	p.clock = clock.NewSong(p.streamer, p.format, *config.PreRoll, speakerLock{})
	p.judge = score.NewJudge()
	p.judge.Windows = config.Windows()
	p.judge.OnJudge = func(j score.Judgement) {
		p.judgement = p.Theme.RenderJudgement(j.Quality)
	}
	p.driver = driver.New(p.chart, driver.Deps{
		Clock:  p.clock,
		Sink:   p.judge,
		Health: p.judge,
		Tally:  p.judge,
	})
	p.driver.OnFinish = func(s game.Summary) {
		if err := p.Scorer.Save(s); nil != err {
			log.Println(err)
		}
	}

	var err error
	p.keys, err = input.Open(128)
	if nil != err {
		return game.Summary{}, err
	}
	defer p.keys.Close()

	if err := p.Renderer.Init(); nil != err {
		return game.Summary{}, err
	}
	if err := p.Resize(); nil != err {
		p.Renderer.Deinit()
		return game.Summary{}, err
	}

	p.clock.Start()
	start := after(*config.PreRoll, func() { speaker.Play(p.streamer) })
	// Runs before speaker.Clear, a quit during the pre-roll never plays
	defer start.Stop()

	p.Renderer.RenderLoop(*config.FramePeriod, func() bool {
		position := p.clock.Position()
		if !p.Update(position) {
			return false
		}
		running := p.driver.Tick(position)
		p.Render(position)
		return running
	})

	if err := p.Renderer.Deinit(); nil != err {
		log.Println("unable to restore terminal", err)
	}

	summary, ok := p.driver.Summary()
	if !ok {
		// Quit before the run was over
		summary = game.Summary{
			ChartSum: p.chart.Sum,
			Grade:    game.GradeF,
			Score:    p.judge.Score(),
			MaxCombo: p.judge.MaxCombo(),
			Counts:   p.judge.Counts(),
			Position: p.clock.Position(),
		}
	}
	return summary, nil
}

func (p *Program) Resize() error {
	columns, rows, err := p.Renderer.Size()
	if nil != err {
		return err
	}
	p.layout = render.Layout{
		Rows:    rows,
		Columns: columns,
		BarRow:  int(*config.BarRow),
		Spacing: int(*config.ColumnSpacing),
	}
	return nil
}

// Update applies the keys pressed since the last frame, false means quit
func (p *Program) Update(position float64) bool {
	for _, action := range p.keys.Drain() {
		if action.Quit {
			return false
		}
		if _, ok := p.judge.Press(action.Lane, position); !ok {
			p.Renderer.AddDecoration(p.layout.Column(action.Lane), p.layout.HitRow()+1, "·", 12)
		}
	}
	p.judge.Sweep(position)
	return true
}

func (p *Program) Render(position float64) {
	lookahead := p.driver.Lookahead()
	hitRow := p.layout.HitRow()

	for lane := game.LaneD; lane < game.LaneUninit; lane++ {
		col := p.layout.Column(lane)
		p.Renderer.Fill(hitRow, col, p.Theme.RenderHitField(lane))
		if p.layout.Visible(hitRow + 2) {
			p.Renderer.FillColor(hitRow+2, col, theme.LaneColor(lane), lane.String())
		}
	}

	for _, t := range p.judge.Pending() {
		col := p.layout.Column(t.Entry.Lane)
		row := p.layout.Row(t.Entry.Offset, position, lookahead)
		if t.Entry.Kind == game.Held && t.Entry.HasDuration() {
			end := p.layout.Row(t.Entry.End(), position, lookahead)
			for r := end; r < row; r++ {
				if p.layout.Visible(r) {
					p.Renderer.Fill(r, col, p.Theme.RenderHold(t.Entry.Lane))
				}
			}
		}
		if p.layout.Visible(row) {
			p.Renderer.Fill(row, col, p.Theme.RenderTarget(t.Entry.Lane, t.Entry.Kind))
		}
	}

	side := p.layout.Column(game.LaneD) - 24
	if side < 2 {
		side = 2
	}
	p.Renderer.Fill(2, side, fmt.Sprintf("   Position:  %8.0f ms", position))
	p.Renderer.Fill(3, side, fmt.Sprintf("     Health:  %8v", p.judge.Health()))
	p.Renderer.Fill(4, side, fmt.Sprintf("      Score:  %8v", p.judge.Score()))
	p.Renderer.Fill(5, side, fmt.Sprintf("      Combo:  %8v", p.judge.Combo()))
	if nil != p.best {
		p.Renderer.Fill(6, side, fmt.Sprintf("       Best:  %8v", p.best.Summary.Score))
	}
	counts := p.judge.Counts()
	for i, line := range []string{
		fmt.Sprintf("      Great:  %8v", counts.Great),
		fmt.Sprintf("       Good:  %8v", counts.Good),
		fmt.Sprintf("        Bad:  %8v", counts.Bad),
		fmt.Sprintf("       Miss:  %8v", counts.Miss),
	} {
		p.Renderer.Fill(8+i, side, line)
	}
	if p.judgement != "" {
		p.Renderer.Fill(hitRow-2, p.layout.Column(game.LaneSpace)-2, p.judgement)
	}
}
