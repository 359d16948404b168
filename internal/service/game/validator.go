package game

import (
	"fmt"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

// Steps maps "step_N" to the snapshot after the N-th accepted move.
type Steps map[string]domain.StepSnapshot

// StepLabel formats the key for step n.
func StepLabel(n int) string {
	return fmt.Sprintf("step_%d", n)
}

// Validate replays a raw move log. step_0 is the empty waiting board. Moves
// into a full or out-of-range column are dropped without an entry and do not
// pass the turn. Replay stops emitting at the first win; draw is reported
// only on the last supplied move.
func Validate(moves []int) Steps {
	steps := Steps{
		StepLabel(0): {
			Player1:    []domain.Position{},
			Player2:    []domain.Position{},
			BoardState: domain.StatusWaiting,
		},
	}

	board := domain.NewBoard()
	positions := map[domain.PlayerID][]domain.Position{}
	player := domain.Player1
	accepted := 0

	for i, column := range moves {
		next, row, err := domain.ApplyMove(board, column, player)
		if err != nil {
			continue
		}
		board = next
		accepted++
		positions[player] = append(positions[player], domain.Position{Row: row, Column: column})

		snap := domain.StepSnapshot{
			Player1:    append([]domain.Position{}, positions[domain.Player1]...),
			Player2:    append([]domain.Position{}, positions[domain.Player2]...),
			BoardState: domain.StatusPending,
		}

		win := domain.DetectWin(board, row, column)
		switch {
		case win != nil:
			snap.BoardState = domain.StatusWin
			snap.Winner = win
		case i == len(moves)-1 && board.IsFull():
			snap.BoardState = domain.StatusDraw
		}

		steps[StepLabel(accepted)] = snap
		if win != nil {
			break
		}
		player = player.Opponent()
	}

	return steps
}
