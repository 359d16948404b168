package domain

// ScoresKey is the fixed storage key for the cumulative tallies.
const ScoresKey = "connect4-scores"

type Scores struct {
	Player1 int `json:"player1"`
	Player2 int `json:"player2"`
	Draws   int `json:"draws"`
}

// RecordWin returns the tallies with one more win for player.
func (s Scores) RecordWin(player PlayerID) Scores {
	switch player {
	case Player1:
		s.Player1++
	case Player2:
		s.Player2++
	}
	return s
}

func (s Scores) RecordDraw() Scores {
	s.Draws++
	return s
}
