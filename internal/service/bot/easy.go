package bot

import (
	"math/rand"
	"sync"
	"time"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

// Easy looks one ply ahead: take a win, else block the opponent's win,
// else play a random open column. Columns are tried in ascending order so
// only the fallback depends on the random source.
type Easy struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewEasy(rng *rand.Rand) *Easy {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Easy{rng: rng}
}

func (e *Easy) ChooseMove(board domain.Board, botPlayer domain.PlayerID) (int, error) {
	validColumns := board.ValidColumns()
	if len(validColumns) == 0 {
		return -1, ErrNoMoves
	}

	for _, col := range validColumns {
		if simulate(board, col, botPlayer) {
			return col, nil
		}
	}

	opponent := botPlayer.Opponent()
	for _, col := range validColumns {
		if simulate(board, col, opponent) {
			return col, nil
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return validColumns[e.rng.Intn(len(validColumns))], nil
}
