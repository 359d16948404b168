package game

import (
	"errors"
	"fmt"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

var (
	ErrBusy        = fmt.Errorf("%w: another move is in progress", domain.ErrIllegalMove)
	ErrGameOver    = fmt.Errorf("%w: game is over", domain.ErrIllegalMove)
	ErrNotStarted  = fmt.Errorf("%w: game not started", domain.ErrIllegalMove)
	ErrInvalidMode = errors.New("invalid game mode")
	ErrNotFound    = errors.New("game not found")
)
