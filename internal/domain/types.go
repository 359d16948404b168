package domain

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Opponent returns the other player. Empty maps to Empty.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

// Label is the wire name used in replay snapshots ("player_1"/"player_2").
func (p PlayerID) Label() string {
	switch p {
	case Player1:
		return "player_1"
	case Player2:
		return "player_2"
	}
	return ""
}

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// to represent the game status
type GameStatus string

const (
	StatusWaiting GameStatus = "waiting"
	StatusPending GameStatus = "pending"
	StatusWin     GameStatus = "win"
	StatusDraw    GameStatus = "draw"
)

// IsFinished reports whether no further moves are accepted.
func (s GameStatus) IsFinished() bool {
	return s == StatusWin || s == StatusDraw
}

// Mode fixes who plays the second seat for the lifetime of a game.
type Mode string

const (
	ModePvP Mode = "pvp"
	ModeAI  Mode = "ai"
)

func (m Mode) Valid() bool {
	return m == ModePvP || m == ModeAI
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn Error = "invalid column"
	ErrColumnFull    Error = "column is full"
	ErrIllegalMove   Error = "move not allowed in current state"
)
