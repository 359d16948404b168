package domain

// HistoryEntry is the board after a move together with the move itself and
// its outcome, so any index can be restored without replaying.
type HistoryEntry struct {
	Index  int         `json:"index"`
	Board  Board       `json:"board"`
	Column int         `json:"column"`
	Row    int         `json:"row"`
	Player PlayerID    `json:"player"`
	Winner *WinnerInfo `json:"winner,omitempty"`
	Draw   bool        `json:"draw"`
}

// Status derives the game status right after this entry's move.
func (e HistoryEntry) Status() GameStatus {
	switch {
	case e.Winner != nil:
		return StatusWin
	case e.Draw:
		return StatusDraw
	}
	return StatusPending
}

// History is a linear move history. Recording after an undo discards the
// undone branch; index -1 is the empty board.
type History struct {
	entries []HistoryEntry
	index   int
}

func NewHistory() *History {
	return &History{index: -1}
}

// Record truncates everything past the current index and appends entry.
func (h *History) Record(entry HistoryEntry) {
	h.entries = append(h.entries[:h.index+1], entry)
	h.index = len(h.entries) - 1
	h.entries[h.index].Index = h.index
}

// Undo moves back by step, clamping at -1. It reports whether the index moved.
func (h *History) Undo(step int) bool {
	if h.index < 0 || step <= 0 {
		return false
	}
	h.index -= step
	if h.index < -1 {
		h.index = -1
	}
	return true
}

// Redo moves forward by step, clamping at the last entry.
func (h *History) Redo(step int) bool {
	last := len(h.entries) - 1
	if h.index >= last || step <= 0 {
		return false
	}
	h.index += step
	if h.index > last {
		h.index = last
	}
	return true
}

func (h *History) Current() Board {
	if h.index < 0 {
		return NewBoard()
	}
	return h.entries[h.index].Board
}

// CurrentEntry returns the entry at the index; ok is false at -1.
func (h *History) CurrentEntry() (HistoryEntry, bool) {
	if h.index < 0 {
		return HistoryEntry{}, false
	}
	return h.entries[h.index], true
}

// NextPlayer is derived from the parity of index+1, never stored.
func (h *History) NextPlayer() PlayerID {
	if (h.index+1)%2 == 0 {
		return Player1
	}
	return Player2
}

// Moves returns the columns played up to and including the current index.
func (h *History) Moves() []int {
	moves := make([]int, 0, h.index+1)
	for _, e := range h.entries[:h.index+1] {
		moves = append(moves, e.Column)
	}
	return moves
}

func (h *History) Index() int    { return h.index }
func (h *History) Len() int      { return len(h.entries) }
func (h *History) CanUndo() bool { return h.index >= 0 }
func (h *History) CanRedo() bool { return h.index < len(h.entries)-1 }

func (h *History) Reset() {
	h.entries = nil
	h.index = -1
}
