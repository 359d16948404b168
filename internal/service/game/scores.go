package game

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

type ScoreRepository interface {
	LoadScores(ctx context.Context) (domain.Scores, error)
	SaveScores(ctx context.Context, scores domain.Scores) error
}

const scoreSaveTimeout = 5 * time.Second

// ScoreBook holds the cumulative tallies shared by every game. It reads the
// repository once at startup and writes through on every change.
type ScoreBook struct {
	mu     sync.Mutex
	scores domain.Scores
	repo   ScoreRepository
}

// NewScoreBook loads the stored tallies. A failing or empty store starts
// from zero.
func NewScoreBook(ctx context.Context, repo ScoreRepository) *ScoreBook {
	sb := &ScoreBook{repo: repo}
	if repo == nil {
		return sb
	}

	scores, err := repo.LoadScores(ctx)
	if err != nil {
		log.Printf("[SCORES] Could not load scores, starting from zero: %v", err)
		return sb
	}
	sb.scores = scores
	return sb
}

func (sb *ScoreBook) Scores() domain.Scores {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.scores
}

func (sb *ScoreBook) RecordWin(player domain.PlayerID) domain.Scores {
	return sb.update(func(s domain.Scores) domain.Scores { return s.RecordWin(player) })
}

func (sb *ScoreBook) RecordDraw() domain.Scores {
	return sb.update(domain.Scores.RecordDraw)
}

// Clear zeroes the tallies.
func (sb *ScoreBook) Clear() domain.Scores {
	return sb.update(func(domain.Scores) domain.Scores { return domain.Scores{} })
}

func (sb *ScoreBook) update(fn func(domain.Scores) domain.Scores) domain.Scores {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	sb.scores = fn(sb.scores)
	if sb.repo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), scoreSaveTimeout)
		defer cancel()
		if err := sb.repo.SaveScores(ctx, sb.scores); err != nil {
			log.Printf("[SCORES] Error saving scores: %v", err)
		}
	}
	return sb.scores
}
