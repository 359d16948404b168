package domain

import (
	"encoding/json"
	"fmt"
)

// Position identifies a cell. It travels as a two-element [row, col] array.
type Position struct {
	Row    int
	Column int
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < Rows && p.Column >= 0 && p.Column < Columns
}

func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.Row, p.Column})
}

func (p *Position) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("position must be a [row, col] pair: %w", err)
	}
	p.Row, p.Column = pair[0], pair[1]
	return nil
}

// WinnerInfo is the winning player and the four aligned cells in the order
// they were discovered.
type WinnerInfo struct {
	Player    PlayerID
	Positions []Position
}

type winnerJSON struct {
	Who       string     `json:"who"`
	Positions []Position `json:"positions"`
}

func (w WinnerInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(winnerJSON{Who: w.Player.Label(), Positions: w.Positions})
}

func (w *WinnerInfo) UnmarshalJSON(data []byte) error {
	var raw winnerJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Who {
	case "player_1":
		w.Player = Player1
	case "player_2":
		w.Player = Player2
	default:
		return fmt.Errorf("unknown winner %q", raw.Who)
	}
	w.Positions = raw.Positions
	return nil
}

// StepSnapshot is the replay view of one step.
type StepSnapshot struct {
	Player1    []Position  `json:"player_1"`
	Player2    []Position  `json:"player_2"`
	BoardState GameStatus  `json:"board_state"`
	Winner     *WinnerInfo `json:"winner,omitempty"`
}
