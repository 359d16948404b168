package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

// ScoreStore keeps the tallies as one JSON value under domain.ScoresKey.
type ScoreStore struct {
	client *redis.Client
}

func NewScoreStore(client *redis.Client) *ScoreStore {
	return &ScoreStore{client: client}
}

// LoadScores returns zeros when the key is absent or unreadable.
func (s *ScoreStore) LoadScores(ctx context.Context) (domain.Scores, error) {
	scores, _, err := s.lookup(ctx)
	return scores, err
}

func (s *ScoreStore) SaveScores(ctx context.Context, scores domain.Scores) error {
	data, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("failed to marshal scores: %w", err)
	}
	if err := s.client.Set(ctx, domain.ScoresKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store scores: %w", err)
	}
	return nil
}

// lookup reports whether a usable value was found.
func (s *ScoreStore) lookup(ctx context.Context) (domain.Scores, bool, error) {
	raw, err := s.client.Get(ctx, domain.ScoresKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Scores{}, false, nil
	}
	if err != nil {
		return domain.Scores{}, false, fmt.Errorf("failed to read scores: %w", err)
	}

	var scores domain.Scores
	if err := json.Unmarshal(raw, &scores); err != nil {
		log.Printf("[REDIS] Ignoring malformed scores value: %v", err)
		return domain.Scores{}, false, nil
	}
	return scores, true, nil
}

type ScoreRepository interface {
	LoadScores(ctx context.Context) (domain.Scores, error)
	SaveScores(ctx context.Context, scores domain.Scores) error
}

// CachedScores sits in front of a primary store. Reads prefer the cache;
// writes go to the primary first and then refresh the cache.
type CachedScores struct {
	cache   *ScoreStore
	primary ScoreRepository
}

func NewCachedScores(cache *ScoreStore, primary ScoreRepository) *CachedScores {
	return &CachedScores{cache: cache, primary: primary}
}

func (c *CachedScores) LoadScores(ctx context.Context) (domain.Scores, error) {
	scores, ok, err := c.cache.lookup(ctx)
	if err != nil {
		log.Printf("[REDIS] Cache read failed, using database: %v", err)
	} else if ok {
		return scores, nil
	}

	scores, err = c.primary.LoadScores(ctx)
	if err != nil {
		return domain.Scores{}, err
	}
	if err := c.cache.SaveScores(ctx, scores); err != nil {
		log.Printf("[REDIS] Failed to warm scores cache: %v", err)
	}
	return scores, nil
}

func (c *CachedScores) SaveScores(ctx context.Context, scores domain.Scores) error {
	if err := c.primary.SaveScores(ctx, scores); err != nil {
		return err
	}
	if err := c.cache.SaveScores(ctx, scores); err != nil {
		// a stale cache would win over the database on the next load
		log.Printf("[REDIS] Failed to refresh scores cache, dropping key: %v", err)
		c.cache.client.Del(ctx, domain.ScoresKey)
	}
	return nil
}
