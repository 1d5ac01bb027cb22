package game

type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F" // Only given when the player dies
)

// GradeFor maps the percentage of possible points earned to a letter.
// A chart with nothing to score is always an A.
func GradeFor(points, possible int) Grade {
	if possible == 0 {
		return GradeA
	}
	return gradeForRatio(float64(points) / float64(possible) * 100)
}

func gradeForRatio(ratio float64) Grade {
	switch {
	case ratio > 80:
		return GradeA
	case ratio > 60:
		return GradeB
	case ratio > 40:
		return GradeC
	}
	return GradeD
}

// Summary is the final state of a run, read by the results view
type Summary struct {
	ChartSum  string
	Grade     Grade
	Score     int
	MaxCombo  int
	Counts    Counts
	Completed bool    // false when the run ended in death
	Position  float64 // Song position the run ended at, in ms
}
