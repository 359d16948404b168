package domain

import "time"

// GameRecord is a finished game as archived: the move log is authoritative,
// Board is kept for quick display. GameID names this one game; SessionID is
// the live session it was played in, which may host several games.
type GameRecord struct {
	GameID     string     `json:"gameId"`
	SessionID  string     `json:"sessionId"`
	Mode       Mode       `json:"mode"`
	Moves      []int      `json:"moves"`
	Status     GameStatus `json:"status"`
	Winner     PlayerID   `json:"winner"`
	Board      Board      `json:"board"`
	CreatedAt  time.Time  `json:"createdAt"`
	FinishedAt time.Time  `json:"finishedAt"`
}

// Duration of the game in whole seconds.
func (r GameRecord) DurationSeconds() int {
	return int(r.FinishedAt.Sub(r.CreatedAt).Seconds())
}
