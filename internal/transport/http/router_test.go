package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/iamasit07/connect4-engine/internal/service/game"
)

var testSecret = []byte("router-test-secret")

const (
	oldID     = "5f0c6a3e-9b1d-4c7e-8a2f-3d4e5f607182"
	missingID = "0b7e2d94-1c3a-4f5b-9e6d-7a8b9c0d1e2f"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeArchive struct {
	games []domain.GameRecord
	err   error
	limit int
	gets  int
}

func (f *fakeArchive) ListGames(_ context.Context, limit int) ([]domain.GameRecord, error) {
	f.limit = limit
	return f.games, f.err
}

func (f *fakeArchive) GetGameByID(_ context.Context, gameID string) (*domain.GameRecord, error) {
	f.gets++
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.games {
		if f.games[i].GameID == gameID {
			return &f.games[i], nil
		}
	}
	return nil, nil
}

type testServer struct {
	t        *testing.T
	router   *gin.Engine
	sessions *game.SessionManager
}

func newTestServer(t *testing.T, archive GameArchive) *testServer {
	t.Helper()
	sm := game.NewSessionManager(game.NewScoreBook(context.Background(), nil), nil, nil, 0, 0)
	sm.SetAgentFactory(func() bot.Agent { return bot.NewEasy(rand.New(rand.NewSource(1))) })

	router := NewRouter(RouterConfig{
		Sessions:     sm,
		Archive:      archive,
		JWTSecret:    testSecret,
		GameTokenTTL: time.Hour,
	})
	return &testServer{t: t, router: router, sessions: sm}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) create(mode domain.Mode) createGameResponse {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/games", "", gin.H{"mode": mode})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var resp createGameResponse
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (s *testServer) move(g createGameResponse, column int) *httptest.ResponseRecorder {
	s.t.Helper()
	return s.do(http.MethodPost, "/api/games/"+g.GameID+"/moves", g.Token, gin.H{"column": column})
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestCreateGame(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodPost, "/api/games", "", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	resp := decode[createGameResponse](t, w)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, domain.ModePvP, resp.View.Mode)
	assert.Equal(t, domain.StatusPending, resp.View.Status)
	assert.Equal(t, domain.Player1, resp.View.CurrentPlayer)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "game_token_"+resp.GameID, cookies[0].Name)

	w = s.do(http.MethodGet, "/api/games/"+resp.GameID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateGameBadMode(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do(http.MethodPost, "/api/games", "", gin.H{"mode": "solo"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUnknownGame(t *testing.T) {
	s := newTestServer(t, nil)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/games/"+missingID, "", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/games/nope", "", nil).Code)
}

func TestMoveRequiresToken(t *testing.T) {
	s := newTestServer(t, nil)
	g := s.create(domain.ModePvP)
	other := s.create(domain.ModePvP)

	w := s.do(http.MethodPost, "/api/games/"+g.GameID+"/moves", "", gin.H{"column": 3})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/games/"+g.GameID+"/moves", other.Token, gin.H{"column": 3})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMakeMove(t *testing.T) {
	s := newTestServer(t, nil)
	g := s.create(domain.ModePvP)

	w := s.move(g, 3)
	require.Equal(t, http.StatusOK, w.Code)
	turn := decode[game.Turn](t, w)

	require.Len(t, turn.Frames, 1)
	assert.Equal(t, &game.Drop{Player: domain.Player1, Column: 3, Row: 5}, turn.Frames[0].Drop)
	final := turn.Final()
	assert.Equal(t, domain.Player1, final.Board[5][3])
	assert.Equal(t, domain.Player2, final.CurrentPlayer)
	assert.Equal(t, []int{3}, final.Moves)
	assert.False(t, final.Busy)
}

func TestMakeMoveErrors(t *testing.T) {
	s := newTestServer(t, nil)
	g := s.create(domain.ModePvP)

	w := s.do(http.MethodPost, "/api/games/"+g.GameID+"/moves", g.Token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, http.StatusBadRequest, s.move(g, 7).Code)
	assert.Equal(t, http.StatusBadRequest, s.move(g, -1).Code)

	for i := 0; i < domain.Rows; i++ {
		require.Equal(t, http.StatusOK, s.move(g, 0).Code)
	}
	assert.Equal(t, http.StatusConflict, s.move(g, 0).Code)
}

func TestWinUpdatesScores(t *testing.T) {
	s := newTestServer(t, nil)
	g := s.create(domain.ModePvP)

	var w *httptest.ResponseRecorder
	for _, col := range []int{0, 1, 0, 1, 0, 1, 0} {
		w = s.move(g, col)
		require.Equal(t, http.StatusOK, w.Code)
	}
	final := decode[game.Turn](t, w).Final()
	assert.Equal(t, domain.StatusWin, final.Status)
	assert.Equal(t, domain.Player1, final.Winner)
	assert.Len(t, final.WinningCells, domain.ToWin)
	assert.Equal(t, 1, final.Scores.Player1)

	assert.Equal(t, http.StatusConflict, s.move(g, 2).Code)

	scores := decode[domain.Scores](t, s.do(http.MethodGet, "/api/scores", "", nil))
	assert.Equal(t, domain.Scores{Player1: 1}, scores)

	cleared := decode[domain.Scores](t, s.do(http.MethodDelete, "/api/scores", "", nil))
	assert.Equal(t, domain.Scores{}, cleared)
}

func TestUndoRedoReset(t *testing.T) {
	s := newTestServer(t, nil)
	g := s.create(domain.ModePvP)
	base := "/api/games/" + g.GameID

	s.move(g, 2)
	s.move(g, 4)

	view := decode[game.View](t, s.do(http.MethodPost, base+"/undo", g.Token, nil))
	assert.Equal(t, []int{2}, view.Moves)
	assert.True(t, view.CanRedo)
	assert.Equal(t, domain.Player2, view.CurrentPlayer)

	view = decode[game.View](t, s.do(http.MethodPost, base+"/redo", g.Token, nil))
	assert.Equal(t, []int{2, 4}, view.Moves)
	assert.False(t, view.CanRedo)

	view = decode[game.View](t, s.do(http.MethodPost, base+"/reset", g.Token, nil))
	assert.Equal(t, domain.StatusWaiting, view.Status)
	assert.Empty(t, view.Moves)

	assert.Equal(t, http.StatusConflict, s.move(g, 0).Code)

	view = decode[game.View](t, s.do(http.MethodPost, base+"/start", g.Token, gin.H{"mode": "ai"}))
	assert.Equal(t, domain.StatusPending, view.Status)
	assert.Equal(t, domain.ModeAI, view.Mode)
}

func TestAIModeMoveIncludesReply(t *testing.T) {
	s := newTestServer(t, nil)
	g := s.create(domain.ModeAI)

	w := s.move(g, 3)
	require.Equal(t, http.StatusOK, w.Code)
	turn := decode[game.Turn](t, w)

	require.Len(t, turn.Frames, 2)
	assert.False(t, turn.Frames[0].Drop.AI)
	assert.True(t, turn.Frames[1].Drop.AI)
	assert.Equal(t, domain.Player2, turn.Frames[1].Drop.Player)
	assert.Equal(t, domain.Player1, turn.Final().CurrentPlayer)
	assert.Len(t, turn.Final().Moves, 2)
}

func TestListAndEndGames(t *testing.T) {
	s := newTestServer(t, nil)
	g := s.create(domain.ModePvP)
	s.create(domain.ModeAI)

	games := decode[[]game.SessionSummary](t, s.do(http.MethodGet, "/api/games", "", nil))
	assert.Len(t, games, 2)

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/games/"+g.GameID, g.Token, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/games/"+g.GameID, "", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/games/"+g.GameID, g.Token, nil).Code)
}

func TestValidateEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodPost, "/api/validate", "", gin.H{"moves": []int{0, 1, 0, 1, 0, 1, 0}})
	require.Equal(t, http.StatusOK, w.Code)
	steps := decode[game.Steps](t, w)

	assert.Len(t, steps, 8)
	assert.Equal(t, domain.StatusWin, steps["step_7"].BoardState)
	require.NotNil(t, steps["step_7"].Winner)
	assert.Equal(t, domain.Player1, steps["step_7"].Winner.Player)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/validate", "", gin.H{"moves": "abc"}).Code)
}

func TestHistoryUnavailable(t *testing.T) {
	s := newTestServer(t, nil)
	assert.Equal(t, http.StatusServiceUnavailable, s.do(http.MethodGet, "/api/history", "", nil).Code)
}

func TestHistory(t *testing.T) {
	start := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	archive := &fakeArchive{games: []domain.GameRecord{{
		GameID:     oldID,
		Mode:       domain.ModeAI,
		Moves:      []int{3, 3, 4, 4, 5, 5, 6},
		Status:     domain.StatusWin,
		Winner:     domain.Player1,
		CreatedAt:  start,
		FinishedAt: start.Add(time.Minute),
	}}}
	s := newTestServer(t, archive)

	items := decode[[]gameHistoryItem](t, s.do(http.MethodGet, "/api/history?limit=500", "", nil))
	require.Len(t, items, 1)
	assert.Equal(t, maxHistoryLimit, archive.limit)
	assert.Equal(t, "player_1", items[0].Winner)
	assert.Equal(t, 7, items[0].MovesCount)
	assert.Equal(t, 60, items[0].DurationSeconds)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/history?limit=0", "", nil).Code)

	details := decode[gameDetails](t, s.do(http.MethodGet, "/api/history/"+oldID, "", nil))
	assert.Equal(t, oldID, details.Game.GameID)
	assert.Equal(t, domain.StatusWin, details.Steps["step_7"].BoardState)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/history/"+missingID, "", nil).Code)

	gets := archive.gets
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/history/not-a-game", "", nil).Code)
	assert.Equal(t, gets, archive.gets, "malformed id must not reach the archive")

	archive.err = errors.New("db down")
	assert.Equal(t, http.StatusInternalServerError, s.do(http.MethodGet, "/api/history", "", nil).Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(domain.ErrInvalidColumn))
	assert.Equal(t, http.StatusConflict, statusFor(domain.ErrColumnFull))
	assert.Equal(t, http.StatusConflict, statusFor(game.ErrBusy))
	assert.Equal(t, http.StatusConflict, statusFor(game.ErrGameOver))
	assert.Equal(t, http.StatusNotFound, statusFor(game.ErrNotFound))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}
