package bot

import (
	"errors"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

var ErrNoMoves = errors.New("no playable column")

// Agent picks a column for player on board.
type Agent interface {
	ChooseMove(board domain.Board, player domain.PlayerID) (int, error)
}

// simulate drops player into column on a copy of board and reports whether
// that disc completes a four.
func simulate(board domain.Board, column int, player domain.PlayerID) bool {
	next, row, err := domain.ApplyMove(board, column, player)
	if err != nil {
		return false
	}
	return domain.DetectWin(next, row, column) != nil
}
