package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

type ScoreRepo struct {
	DB *sql.DB
}

func NewScoreRepo(db *sql.DB) *ScoreRepo {
	return &ScoreRepo{DB: db}
}

// LoadScores reads the tallies row; a missing row is all zeros.
func (r *ScoreRepo) LoadScores(ctx context.Context) (domain.Scores, error) {
	query := `SELECT player1, player2, draws FROM scores WHERE key = $1;`

	var s domain.Scores
	err := r.DB.QueryRowContext(ctx, query, domain.ScoresKey).Scan(&s.Player1, &s.Player2, &s.Draws)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Scores{}, nil
	}
	if err != nil {
		return domain.Scores{}, fmt.Errorf("failed to load scores: %w", err)
	}
	return s, nil
}

func (r *ScoreRepo) SaveScores(ctx context.Context, s domain.Scores) error {
	query := `
	INSERT INTO scores (key, player1, player2, draws, updated_at)
	VALUES ($1, $2, $3, $4, NOW())
	ON CONFLICT (key) DO UPDATE SET
		player1 = EXCLUDED.player1,
		player2 = EXCLUDED.player2,
		draws = EXCLUDED.draws,
		updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.DB.ExecContext(ctx, query, domain.ScoresKey, s.Player1, s.Player2, s.Draws); err != nil {
		return fmt.Errorf("failed to save scores: %w", err)
	}
	return nil
}
