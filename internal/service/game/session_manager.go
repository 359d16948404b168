package game

import (
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/iamasit07/connect4-engine/pkg/uid"
)

// GameSession pairs a controller with the pacer that reveals its moves.
type GameSession struct {
	*Controller
	Pacer *Pacer
}

// Move submits a column through the pacer.
func (gs *GameSession) Move(column int) (*Turn, error) {
	return gs.Pacer.Submit(column)
}

func (gs *GameSession) Start(mode domain.Mode) (View, error) {
	return gs.broadcast(gs.Controller.Start(mode))
}

func (gs *GameSession) Reset() (View, error) {
	return gs.broadcast(gs.Controller.Reset())
}

func (gs *GameSession) Undo() (View, error) {
	return gs.broadcast(gs.Controller.Undo())
}

func (gs *GameSession) Redo() (View, error) {
	return gs.broadcast(gs.Controller.Redo())
}

func (gs *GameSession) broadcast(view View, err error) (View, error) {
	if err == nil {
		gs.Pacer.Broadcast(view)
	}
	return view, err
}

// SessionSummary is the listing form of a live game.
type SessionSummary struct {
	GameID    string            `json:"gameId"`
	Mode      domain.Mode       `json:"mode"`
	Status    domain.GameStatus `json:"status"`
	MoveCount int               `json:"moveCount"`
	StartedAt string            `json:"startedAt"`
}

// SessionManager manages active game sessions
type SessionManager struct {
	Session map[string]*GameSession // gameID → GameSession
	mu      sync.RWMutex

	scores     *ScoreBook
	repo       GameRepository
	publisher  Publisher
	newAgent   func() bot.Agent
	dropDelay  time.Duration
	thinkDelay time.Duration
}

func NewSessionManager(scores *ScoreBook, repo GameRepository, publisher Publisher, dropDelay, thinkDelay time.Duration) *SessionManager {
	return &SessionManager{
		Session:    make(map[string]*GameSession),
		scores:     scores,
		repo:       repo,
		publisher:  publisher,
		newAgent:   func() bot.Agent { return bot.NewEasy(nil) },
		dropDelay:  dropDelay,
		thinkDelay: thinkDelay,
	}
}

// SetAgentFactory replaces how AI opponents are built for new sessions.
func (sm *SessionManager) SetAgentFactory(fn func() bot.Agent) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.newAgent = fn
}

func (sm *SessionManager) Scores() *ScoreBook {
	return sm.scores
}

// CreateSession registers a new game already started in mode.
func (sm *SessionManager) CreateSession(mode domain.Mode) (*GameSession, error) {
	if !mode.Valid() {
		return nil, ErrInvalidMode
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	ctrl := NewController(uid.GenerateGameID(), sm.newAgent(), sm.scores, sm.repo)
	if _, err := ctrl.Start(mode); err != nil {
		return nil, err
	}
	session := &GameSession{
		Controller: ctrl,
		Pacer:      NewPacer(ctrl, sm.publisher, sm.dropDelay, sm.thinkDelay),
	}
	sm.Session[ctrl.GameID] = session

	log.Printf("[SESSION] Created session %s (%s)", ctrl.GameID, mode)
	return session, nil
}

func (sm *SessionManager) GetSessionByGameID(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.Session[gameID]
	return session, exists
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.Session[gameID]; !exists {
		return ErrNotFound
	}
	log.Printf("[SESSION] Removing session %s", gameID)
	delete(sm.Session, gameID)
	return nil
}

// GetActiveGames lists sessions oldest first.
func (sm *SessionManager) GetActiveGames() []SessionSummary {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	games := make([]SessionSummary, 0, len(sm.Session))
	for _, s := range sm.Session {
		view := s.View()
		games = append(games, SessionSummary{
			GameID:    s.GameID,
			Mode:      view.Mode,
			Status:    view.Status,
			MoveCount: len(view.Moves),
			StartedAt: s.CreatedAt.Format(time.RFC3339),
		})
	}
	sort.Slice(games, func(i, j int) bool { return games[i].StartedAt < games[j].StartedAt })
	return games
}

// CleanupOldSessions drops sessions idle for longer than maxIdle, skipping
// any with a move in flight. Returns how many were removed.
func (sm *SessionManager) CleanupOldSessions(maxIdle time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	count := 0
	now := time.Now()
	for gameID, session := range sm.Session {
		if session.Busy() {
			continue
		}
		if now.Sub(session.LastActivity()) > maxIdle {
			delete(sm.Session, gameID)
			count++
		}
	}

	if count > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d stale game sessions", count)
	}
	return count
}
