package websocket

import (
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/game"
)

// ClientMessage is what a browser sends over the game socket.
type ClientMessage struct {
	Type   string      `json:"type"` // "make_move", "undo", "redo", "reset", "start"
	Column *int        `json:"column,omitempty"`
	Mode   domain.Mode `json:"mode,omitempty"`
	Token  string      `json:"token,omitempty"`
}

// ServerMessage is pushed to every subscriber of a game.
type ServerMessage struct {
	Type    string     `json:"type"` // "state", "frame", "error"
	GameID  string     `json:"gameId,omitempty"`
	Drop    *game.Drop `json:"drop,omitempty"`
	View    *game.View `json:"view,omitempty"`
	Message string     `json:"message,omitempty"`
}
