package game

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/iamasit07/connect4-engine/pkg/uid"
)

type GameRepository interface {
	SaveGame(ctx context.Context, record domain.GameRecord) error
}

// Drop is one disc that landed during a turn.
type Drop struct {
	Player domain.PlayerID `json:"player"`
	Column int             `json:"column"`
	Row    int             `json:"row"`
	AI     bool            `json:"ai"`
}

// Frame is what a renderer shows after one step: the drop (if any) and the
// resulting view.
type Frame struct {
	Drop *Drop `json:"drop,omitempty"`
	View View  `json:"view"`
}

// Turn is the fully computed result of one move intake: the human drop and,
// in AI mode, the reply that followed it.
type Turn struct {
	Frames []Frame `json:"frames"`
}

// Final returns the view after the last drop of the turn.
func (t Turn) Final() View {
	return t.Frames[len(t.Frames)-1].View
}

// settle marks the last frame as taken after the gate was released.
func (t *Turn) settle() {
	t.Frames[len(t.Frames)-1].View.Busy = false
}

// View is the read-only state handed to presentation.
type View struct {
	GameID        string            `json:"gameId"`
	Mode          domain.Mode       `json:"mode"`
	Status        domain.GameStatus `json:"status"`
	Board         domain.Board      `json:"board"`
	CurrentPlayer domain.PlayerID   `json:"currentPlayer"`
	Winner        domain.PlayerID   `json:"winner,omitempty"`
	WinningCells  []domain.Position `json:"winningCells"`
	Moves         []int             `json:"moves"`
	CanUndo       bool              `json:"canUndo"`
	CanRedo       bool              `json:"canRedo"`
	Scores        domain.Scores     `json:"scores"`
	Busy          bool              `json:"busy"`
}

// Controller owns the state of one game: mode, status, history and the
// in-flight gate. All methods are safe for concurrent use; mutating calls
// made while the gate is held fail with ErrBusy instead of queueing.
type Controller struct {
	GameID    string
	CreatedAt time.Time

	mu         sync.Mutex
	mode       domain.Mode
	roundID    string // archive key of the game in progress
	status     domain.GameStatus
	history    *domain.History
	winner     *domain.WinnerInfo
	busy       bool
	startedAt  time.Time
	lastActive time.Time
	agent      bot.Agent
	scores     *ScoreBook
	repo       GameRepository
}

// NewController returns a controller in the waiting state. agent is used for
// AI mode; scores and repo may be nil.
func NewController(gameID string, agent bot.Agent, scores *ScoreBook, repo GameRepository) *Controller {
	if agent == nil {
		agent = bot.NewEasy(nil)
	}
	if scores == nil {
		scores = NewScoreBook(context.Background(), nil)
	}
	now := time.Now()
	return &Controller{
		GameID:     gameID,
		CreatedAt:  now,
		mode:       domain.ModePvP,
		status:     domain.StatusWaiting,
		history:    domain.NewHistory(),
		lastActive: now,
		agent:      agent,
		scores:     scores,
		repo:       repo,
	}
}

// Busy reports whether a move is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// LastActivity is the time of the last accepted mutation.
func (c *Controller) LastActivity() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}

// Start begins a new game in mode, discarding any current one.
func (c *Controller) Start(mode domain.Mode) (View, error) {
	if !mode.Valid() {
		return View{}, ErrInvalidMode
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy {
		return c.viewLocked(), ErrBusy
	}

	c.clearLocked()
	c.mode = mode
	c.roundID = uid.GenerateGameID()
	c.status = domain.StatusPending
	c.startedAt = time.Now()
	log.Debugf("[GAME] Game %s started in %s mode", c.GameID, mode)
	return c.viewLocked(), nil
}

// Reset returns to waiting. Cumulative scores are untouched.
func (c *Controller) Reset() (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy {
		return c.viewLocked(), ErrBusy
	}

	c.clearLocked()
	c.status = domain.StatusWaiting
	return c.viewLocked(), nil
}

// Play applies a move for the player to move and, in AI mode, the AI reply.
func (c *Controller) Play(column int) (*Turn, error) {
	if !c.tryHold() {
		return nil, ErrBusy
	}

	turn, err := c.playHeld(column)
	c.release()
	if err != nil {
		return nil, err
	}
	turn.settle()
	return turn, nil
}

// Undo steps back one move, or a human move plus its AI reply in AI mode.
func (c *Controller) Undo() (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy {
		return c.viewLocked(), ErrBusy
	}

	if c.history.Undo(c.undoStepLocked()) {
		c.rederiveLocked()
	}
	return c.viewLocked(), nil
}

func (c *Controller) Redo() (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy {
		return c.viewLocked(), ErrBusy
	}

	if c.history.Redo(c.redoStepLocked()) {
		c.rederiveLocked()
	}
	return c.viewLocked(), nil
}

func (c *Controller) tryHold() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy {
		return false
	}
	c.busy = true
	return true
}

func (c *Controller) release() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

// playHeld computes the whole turn. The caller holds the gate.
func (c *Controller) playHeld(column int) (*Turn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.status == domain.StatusWaiting:
		return nil, ErrNotStarted
	case c.status.IsFinished():
		return nil, ErrGameOver
	}

	drop, err := c.dropLocked(column, false)
	if err != nil {
		return nil, err
	}
	turn := &Turn{Frames: []Frame{c.frameLocked(drop)}}

	if c.mode == domain.ModeAI && c.status == domain.StatusPending && c.history.NextPlayer() == domain.Player2 {
		aiColumn, err := c.agent.ChooseMove(c.history.Current(), domain.Player2)
		if err != nil {
			// cannot happen on a pending board; the human move stands
			log.Printf("[BOT] Error choosing move for game %s: %v", c.GameID, err)
		} else if aiDrop, err := c.dropLocked(aiColumn, true); err != nil {
			log.Printf("[BOT] Error applying move for game %s: %v", c.GameID, err)
		} else {
			turn.Frames = append(turn.Frames, c.frameLocked(aiDrop))
		}
	}

	if c.status.IsFinished() {
		c.finishLocked()
		// scores changed after the frames were taken
		turn.Frames[len(turn.Frames)-1].View.Scores = c.scores.Scores()
	}

	c.lastActive = time.Now()
	return turn, nil
}

func (c *Controller) dropLocked(column int, ai bool) (*Drop, error) {
	player := c.history.NextPlayer()
	board, row, err := domain.ApplyMove(c.history.Current(), column, player)
	if err != nil {
		return nil, err
	}

	win := domain.DetectWin(board, row, column)
	c.history.Record(domain.HistoryEntry{
		Board:  board,
		Column: column,
		Row:    row,
		Player: player,
		Winner: win,
		Draw:   domain.IsDraw(board, win),
	})
	c.rederiveLocked()

	return &Drop{Player: player, Column: column, Row: row, AI: ai}, nil
}

// finishLocked books the result of a live win or draw.
func (c *Controller) finishLocked() {
	var winner domain.PlayerID
	if c.status == domain.StatusWin {
		winner = c.winner.Player
		c.scores.RecordWin(winner)
		log.Printf("[GAME] Game %s won by %s after %d moves", c.GameID, winner.Label(), c.history.Index()+1)
	} else {
		c.scores.RecordDraw()
		log.Printf("[GAME] Game %s ended in a draw", c.GameID)
	}

	if c.repo == nil {
		return
	}
	record := domain.GameRecord{
		GameID:     c.roundID,
		SessionID:  c.GameID,
		Mode:       c.mode,
		Moves:      c.history.Moves(),
		Status:     c.status,
		Winner:     winner,
		Board:      c.history.Current(),
		CreatedAt:  c.startedAt,
		FinishedAt: time.Now(),
	}
	c.saveGameAsync(record)
}

// Saves game data in background so the move is not held up by the database.
func (c *Controller) saveGameAsync(record domain.GameRecord) {
	repo := c.repo
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := repo.SaveGame(ctx, record); err != nil {
			log.Printf("[GAME] Error saving game %s (session %s): %v", record.GameID, record.SessionID, err)
		} else {
			log.Printf("[GAME] Game %s (session %s) saved successfully", record.GameID, record.SessionID)
		}
	}()
}

// undoStepLocked is 1 in pvp. In AI mode a human move and its reply go
// together; an even index means the human made the last, game-ending move
// and nothing followed it.
func (c *Controller) undoStepLocked() int {
	if c.mode != domain.ModeAI || c.history.Index()%2 == 0 {
		return 1
	}
	return 2
}

// redoStepLocked relies on History clamping at the last entry when only a
// game-ending human move is left to redo.
func (c *Controller) redoStepLocked() int {
	if c.mode != domain.ModeAI {
		return 1
	}
	return 2
}

// rederiveLocked recomputes status and winner from the current entry.
func (c *Controller) rederiveLocked() {
	entry, ok := c.history.CurrentEntry()
	if !ok {
		c.winner = nil
		if c.status != domain.StatusWaiting {
			c.status = domain.StatusPending
		}
		return
	}
	c.status = entry.Status()
	c.winner = entry.Winner
}

func (c *Controller) clearLocked() {
	c.history.Reset()
	c.winner = nil
	c.lastActive = time.Now()
}

func (c *Controller) frameLocked(drop *Drop) Frame {
	return Frame{Drop: drop, View: c.viewLocked()}
}

func (c *Controller) viewLocked() View {
	v := View{
		GameID:        c.GameID,
		Mode:          c.mode,
		Status:        c.status,
		Board:         c.history.Current(),
		CurrentPlayer: c.history.NextPlayer(),
		WinningCells:  []domain.Position{},
		Moves:         c.history.Moves(),
		CanUndo:       c.history.CanUndo(),
		CanRedo:       c.history.CanRedo(),
		Scores:        c.scores.Scores(),
		Busy:          c.busy,
	}
	if c.winner != nil {
		v.Winner = c.winner.Player
		v.WinningCells = append(v.WinningCells, c.winner.Positions...)
	}
	return v
}
