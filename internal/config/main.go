package config

import (
	"git.lost.host/meutraa/beatsmash/internal/clock"
	"git.lost.host/meutraa/beatsmash/internal/score"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New("beatsmash", "Terminal rhythm game")

	Database    = app.Flag("db", "Score history database").Default("./scores.db").String()
	PreRoll     = app.Flag("preroll", "Time between targets appearing and reaching the bar, before the audio starts").Default("1.5s").Short('p').Duration()
	FramePeriod = app.Flag("frame-period", "Render frame period").Default("4ms").Duration()
	great       = app.Flag("great", "Great window").Default("50ms").Duration()
	good        = app.Flag("good", "Good window").Default("100ms").Duration()
	bad         = app.Flag("bad", "Bad window").Default("150ms").Duration()

	Play          = app.Command("play", "Play the chart in a song directory").Default()
	Directory     = Play.Arg("directory", "Song/chart directory").Required().ExistingDir()
	BarRow        = Play.Flag("bar-row", "Rows from the bottom to render the hit bar at").Default("4").Uint()
	ColumnSpacing = Play.Flag("spacing", "Columns between lanes").Default("6").Short('S').Uint()

	Check      = app.Command("check", "Parse a chart and report problems")
	CheckChart = Check.Arg("chart", "Chart file").Required().ExistingFile()

	Simulate      = app.Command("simulate", "Autoplay a chart without audio and print the result")
	SimulateChart = Simulate.Arg("chart", "Chart file").Required().ExistingFile()
	MissEvery     = Simulate.Flag("miss-every", "Let every nth target go by, 0 to hit all of them").Default("0").Int()
	Save          = Simulate.Flag("save", "Save the result to the score history").Bool()

	History      = app.Command("history", "List previous runs of a chart")
	HistoryChart = History.Arg("chart", "Chart file").Required().ExistingFile()
)

func init() {
	app.Version("0.3.0")
	app.HelpFlag.Short('h')
}

// Parse reads the command line and returns the selected command
func Parse(args []string) string {
	return kingpin.MustParse(app.Parse(args))
}

func Windows() score.Windows {
	return score.Windows{
		Great: clock.Millis(*great),
		Good:  clock.Millis(*good),
		Bad:   clock.Millis(*bad),
	}
}
