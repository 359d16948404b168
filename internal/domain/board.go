package domain

// Board is the 6x7 grid. Row 0 is the top, row Rows-1 the bottom.
// Being an array, assigning a Board copies it.
type Board [Rows][Columns]PlayerID

func NewBoard() Board {
	return Board{}
}

// Clone returns an independent copy.
func (b Board) Clone() Board {
	return b
}

// LowestEmptyRow scans a column bottom-up. ok is false when the column is
// full or out of range.
func (b *Board) LowestEmptyRow(column int) (int, bool) {
	if column < 0 || column >= Columns {
		return -1, false
	}

	// here board[0] represents the top row, so a taken top cell means full
	if b[0][column] != Empty {
		return -1, false
	}

	for row := Rows - 1; row >= 0; row-- {
		if b[row][column] == Empty {
			return row, true
		}
	}
	return -1, false
}

func (b *Board) IsFull() bool {
	for c := 0; c < Columns; c++ {
		if b[0][c] == Empty {
			return false
		}
	}
	return true
}

func (b *Board) At(p Position) PlayerID {
	if !p.InBounds() {
		return Empty
	}
	return b[p.Row][p.Column]
}

// Discs counts the occupied cells.
func (b *Board) Discs() int {
	n := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			if b[r][c] != Empty {
				n++
			}
		}
	}
	return n
}

// ValidColumns lists the non-full columns in ascending order.
func (b *Board) ValidColumns() []int {
	cols := make([]int, 0, Columns)
	for c := 0; c < Columns; c++ {
		if b[0][c] == Empty {
			cols = append(cols, c)
		}
	}
	return cols
}

// Ints converts the board to plain ints for storage and transport.
func (b *Board) Ints() [][]int {
	out := make([][]int, Rows)
	for r := range out {
		out[r] = make([]int, Columns)
		for c := range out[r] {
			out[r][c] = int(b[r][c])
		}
	}
	return out
}

// BoardFromInts is the inverse of Ints. Unknown values become Empty.
func BoardFromInts(cells [][]int) Board {
	var b Board
	for r := 0; r < Rows && r < len(cells); r++ {
		for c := 0; c < Columns && c < len(cells[r]); c++ {
			switch PlayerID(cells[r][c]) {
			case Player1, Player2:
				b[r][c] = PlayerID(cells[r][c])
			}
		}
	}
	return b
}
