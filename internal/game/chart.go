package game

type Chart struct {
	Tempo    float64 // From the metadata line, 0 when it could not be read
	Schedule *Schedule
	MaxScore int    // BestScore for every scheduled entry
	Sum      string // Identifies the chart content in score history
}
