package game

type Quality uint8

const (
	Great Quality = iota
	Good
	Bad
	Miss
)

// Points awarded per hit quality
const (
	ScoreGreat = 300
	ScoreGood  = 100
	ScoreBad   = 50
	ScoreMiss  = 0

	BestScore = ScoreGreat
)

func (q Quality) Points() int {
	switch q {
	case Great:
		return ScoreGreat
	case Good:
		return ScoreGood
	case Bad:
		return ScoreBad
	}
	return ScoreMiss
}

func (q Quality) String() string {
	switch q {
	case Great:
		return "Great"
	case Good:
		return "Good"
	case Bad:
		return "Bad"
	}
	return "Miss"
}

type Counts struct {
	Great, Good, Bad, Miss int
}

func (c *Counts) Add(q Quality) {
	switch q {
	case Great:
		c.Great++
	case Good:
		c.Good++
	case Bad:
		c.Bad++
	default:
		c.Miss++
	}
}

// Points is the unmultiplied score these counts are worth
func (c Counts) Points() int {
	return c.Great*ScoreGreat + c.Good*ScoreGood + c.Bad*ScoreBad
}

func (c Counts) Total() int {
	return c.Great + c.Good + c.Bad + c.Miss
}
