package bot

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

func play(t *testing.T, moves ...int) domain.Board {
	t.Helper()
	b := domain.NewBoard()
	player := domain.Player1
	for _, m := range moves {
		var err error
		b, _, err = domain.ApplyMove(b, m, player)
		require.NoError(t, err)
		player = player.Opponent()
	}
	return b
}

func TestEasyTakesWin(t *testing.T) {
	// player 2 has three stacked in column 4, player 1 threatens column 0
	b := play(t, 0, 4, 0, 4, 0, 4, 6)
	col, err := NewEasy(rand.New(rand.NewSource(1))).ChooseMove(b, domain.Player2)
	require.NoError(t, err)
	assert.Equal(t, 4, col, "winning beats blocking")
}

func TestEasyBlocks(t *testing.T) {
	b := play(t, 1, 6, 2, 6, 3)
	col, err := NewEasy(rand.New(rand.NewSource(1))).ChooseMove(b, domain.Player2)
	require.NoError(t, err)
	// player 1 holds 1,2,3 on the bottom row; both 0 and 4 complete it,
	// the lowest column wins
	assert.Equal(t, 0, col)
}

func TestEasyRandomFallbackIsDeterministicPerSeed(t *testing.T) {
	b := play(t, 3)
	first, err := NewEasy(rand.New(rand.NewSource(42))).ChooseMove(b, domain.Player2)
	require.NoError(t, err)
	second, err := NewEasy(rand.New(rand.NewSource(42))).ChooseMove(b, domain.Player2)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Contains(t, b.ValidColumns(), first)
}

func TestEasyOnlyPicksOpenColumns(t *testing.T) {
	b := play(t, 0, 0, 0, 0, 0, 0)
	agent := NewEasy(rand.New(rand.NewSource(7)))
	for i := 0; i < 50; i++ {
		col, err := agent.ChooseMove(b, domain.Player1)
		require.NoError(t, err)
		assert.NotEqual(t, 0, col)
	}
}

func TestEasyFullBoard(t *testing.T) {
	var b domain.Board
	for r := 0; r < domain.Rows; r++ {
		for c := 0; c < domain.Columns; c++ {
			b[r][c] = domain.Player1
		}
	}
	_, err := NewEasy(nil).ChooseMove(b, domain.Player2)
	assert.ErrorIs(t, err, ErrNoMoves)
}
