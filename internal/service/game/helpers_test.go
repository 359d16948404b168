package game

import (
	"context"
	"errors"
	"sync"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

// scriptedAgent replays a fixed list of columns.
type scriptedAgent struct {
	mu   sync.Mutex
	cols []int
}

func (a *scriptedAgent) ChooseMove(domain.Board, domain.PlayerID) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.cols) == 0 {
		return -1, errors.New("script exhausted")
	}
	col := a.cols[0]
	a.cols = a.cols[1:]
	return col, nil
}

type memScores struct {
	mu      sync.Mutex
	scores  domain.Scores
	saves   int
	loadErr error
}

func (m *memScores) LoadScores(context.Context) (domain.Scores, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scores, m.loadErr
}

func (m *memScores) SaveScores(_ context.Context, s domain.Scores) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = s
	m.saves++
	return nil
}

type chanGames struct {
	saved chan domain.GameRecord
}

func newChanGames() *chanGames {
	return &chanGames{saved: make(chan domain.GameRecord, 4)}
}

func (c *chanGames) SaveGame(_ context.Context, r domain.GameRecord) error {
	c.saved <- r
	return nil
}

type recorder struct {
	mu     sync.Mutex
	frames []Frame
}

func (r *recorder) Publish(_ string, f Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, f)
}

func (r *recorder) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Frame(nil), r.frames...)
}
