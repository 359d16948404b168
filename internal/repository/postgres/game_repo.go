package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

type GameRepo struct {
	DB *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{DB: db}
}

// SaveGame archives a finished game (UPSERT to handle retries of the same
// game; every game played in a session has its own GameID)
func (r *GameRepo) SaveGame(ctx context.Context, rec domain.GameRecord) error {
	movesJSON, err := json.Marshal(rec.Moves)
	if err != nil {
		return fmt.Errorf("failed to marshal moves: %w", err)
	}
	boardJSON, err := json.Marshal(rec.Board.Ints())
	if err != nil {
		return fmt.Errorf("failed to marshal board state: %w", err)
	}

	query := `
	INSERT INTO game (game_id, session_id, mode, moves, status, winner, total_moves, duration_seconds, board_state, created_at, finished_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (game_id) DO UPDATE SET
		moves = EXCLUDED.moves,
		status = EXCLUDED.status,
		winner = EXCLUDED.winner,
		total_moves = EXCLUDED.total_moves,
		duration_seconds = EXCLUDED.duration_seconds,
		board_state = EXCLUDED.board_state,
		finished_at = EXCLUDED.finished_at;
	`

	_, err = r.DB.ExecContext(ctx, query, rec.GameID, rec.SessionID, string(rec.Mode), movesJSON, string(rec.Status),
		int(rec.Winner), len(rec.Moves), rec.DurationSeconds(), boardJSON, rec.CreatedAt, rec.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert game record: %w", err)
	}
	return nil
}

const selectGame = `
	SELECT game_id, session_id, mode, moves, status, winner, board_state, created_at, finished_at
	FROM game
`

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (*domain.GameRecord, error) {
	var (
		rec       domain.GameRecord
		mode      string
		status    string
		winner    int
		movesJSON []byte
		boardJSON []byte
	)
	if err := row.Scan(&rec.GameID, &rec.SessionID, &mode, &movesJSON, &status, &winner, &boardJSON, &rec.CreatedAt, &rec.FinishedAt); err != nil {
		return nil, err
	}

	rec.Mode = domain.Mode(mode)
	rec.Status = domain.GameStatus(status)
	rec.Winner = domain.PlayerID(winner)

	if err := json.Unmarshal(movesJSON, &rec.Moves); err != nil {
		return nil, fmt.Errorf("failed to unmarshal moves: %w", err)
	}
	if boardJSON != nil {
		var cells [][]int
		if err := json.Unmarshal(boardJSON, &cells); err != nil {
			return nil, fmt.Errorf("failed to unmarshal board state: %w", err)
		}
		rec.Board = domain.BoardFromInts(cells)
	}
	return &rec, nil
}

// GetGameByID returns nil, nil when the game is unknown.
func (r *GameRepo) GetGameByID(ctx context.Context, gameID string) (*domain.GameRecord, error) {
	rec, err := scanGame(r.DB.QueryRowContext(ctx, selectGame+` WHERE game_id = $1;`, gameID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}
	return rec, nil
}

// ListGames returns the most recently finished games first.
func (r *GameRepo) ListGames(ctx context.Context, limit int) ([]domain.GameRecord, error) {
	rows, err := r.DB.QueryContext(ctx, selectGame+` ORDER BY finished_at DESC LIMIT $1;`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game history: %w", err)
	}
	defer rows.Close()

	games := []domain.GameRecord{}
	for rows.Next() {
		rec, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		games = append(games, *rec)
	}
	return games, rows.Err()
}
