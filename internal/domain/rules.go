package domain

// axes in check order: horizontal, vertical, diagonal \, diagonal /.
// Each axis is two opposite rays walked outward from the placed disc.
var axes = [4][2][2]int{
	{{0, 1}, {0, -1}},
	{{1, 0}, {-1, 0}},
	{{1, 1}, {-1, -1}},
	{{1, -1}, {-1, 1}},
}

// ApplyMove drops player's disc into column and returns the resulting board
// with the landing row. The input board is not modified.
func ApplyMove(board Board, column int, player PlayerID) (Board, int, error) {
	if column < 0 || column >= Columns {
		return board, -1, ErrInvalidColumn
	}

	row, ok := board.LowestEmptyRow(column)
	if !ok {
		return board, -1, ErrColumnFull
	}

	board[row][column] = player
	return board, row, nil
}

// DetectWin checks the lines through (row, column) for a run of ToWin discs
// matching the disc at that cell. The first qualifying axis wins and its
// first ToWin positions are returned: the placed cell, then ray 1, then ray 2.
// Returns nil for an empty or out-of-range cell.
func DetectWin(board Board, row, column int) *WinnerInfo {
	origin := Position{Row: row, Column: column}
	if !origin.InBounds() {
		return nil
	}
	player := board[row][column]
	if player == Empty {
		return nil
	}

	for _, axis := range axes {
		positions := []Position{origin}
		for _, ray := range axis {
			positions = append(positions, walkRay(board, origin, ray[0], ray[1], player)...)
		}

		if len(positions) >= ToWin {
			return &WinnerInfo{
				Player:    player,
				Positions: positions[:ToWin:ToWin],
			}
		}
	}

	return nil
}

// walkRay collects consecutive cells of player from origin (exclusive)
// in one direction.
func walkRay(board Board, origin Position, deltaRow, deltaCol int, player PlayerID) []Position {
	var out []Position
	p := Position{Row: origin.Row + deltaRow, Column: origin.Column + deltaCol}
	for p.InBounds() && board[p.Row][p.Column] == player {
		out = append(out, p)
		p.Row += deltaRow
		p.Column += deltaCol
	}
	return out
}

// IsDraw is true when the last move did not win and no column is left.
func IsDraw(board Board, win *WinnerInfo) bool {
	return win == nil && board.IsFull()
}
