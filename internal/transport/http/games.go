package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/game"
	"github.com/iamasit07/connect4-engine/pkg/auth"
	"github.com/iamasit07/connect4-engine/pkg/httputil"
	"github.com/iamasit07/connect4-engine/pkg/uid"
)

type GameHandler struct {
	Sessions      *game.SessionManager
	Secret        []byte
	TokenTTL      time.Duration
	SecureCookies bool
}

func NewGameHandler(sm *game.SessionManager, secret []byte, tokenTTL time.Duration, secureCookies bool) *GameHandler {
	return &GameHandler{Sessions: sm, Secret: secret, TokenTTL: tokenTTL, SecureCookies: secureCookies}
}

type modeRequest struct {
	Mode domain.Mode `json:"mode"`
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

type createGameResponse struct {
	GameID string    `json:"gameId"`
	Token  string    `json:"token"`
	View   game.View `json:"view"`
}

// bindMode reads an optional {"mode": ...} body; an empty body means pvp.
func bindMode(c *gin.Context) (domain.Mode, bool) {
	var req modeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return "", false
	}
	if req.Mode == "" {
		req.Mode = domain.ModePvP
	}
	return req.Mode, true
}

// CreateGame starts a new game and hands the caller its seat token.
func (h *GameHandler) CreateGame(c *gin.Context) {
	mode, ok := bindMode(c)
	if !ok {
		return
	}

	session, err := h.Sessions.CreateSession(mode)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := auth.GenerateGameToken(session.GameID, h.Secret, h.TokenTTL)
	if err != nil {
		h.Sessions.RemoveSession(session.GameID)
		log.Printf("[HTTP] Failed to sign token for game %s: %v", session.GameID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create game"})
		return
	}

	httputil.SetGameCookie(c.Writer, session.GameID, token, h.TokenTTL, h.SecureCookies)
	c.JSON(http.StatusCreated, createGameResponse{
		GameID: session.GameID,
		Token:  token,
		View:   session.View(),
	})
}

func (h *GameHandler) session(c *gin.Context) (*game.GameSession, bool) {
	gameID := c.Param("id")
	if !uid.IsGameID(gameID) {
		respondError(c, game.ErrNotFound)
		return nil, false
	}
	session, exists := h.Sessions.GetSessionByGameID(gameID)
	if !exists {
		respondError(c, game.ErrNotFound)
		return nil, false
	}
	return session, true
}

func (h *GameHandler) GetGame(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session.View())
}

// MakeMove drops a disc for the player to move. The response carries every
// frame of the turn, including the AI reply in ai mode.
func (h *GameHandler) MakeMove(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column is required"})
		return
	}

	turn, err := session.Move(*req.Column)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, turn)
}

func (h *GameHandler) StartGame(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	mode, ok := bindMode(c)
	if !ok {
		return
	}
	h.respondView(c)(session.Start(mode))
}

func (h *GameHandler) ResetGame(c *gin.Context) {
	if session, ok := h.session(c); ok {
		h.respondView(c)(session.Reset())
	}
}

func (h *GameHandler) Undo(c *gin.Context) {
	if session, ok := h.session(c); ok {
		h.respondView(c)(session.Undo())
	}
}

func (h *GameHandler) Redo(c *gin.Context) {
	if session, ok := h.session(c); ok {
		h.respondView(c)(session.Redo())
	}
}

// EndGame discards a live game.
func (h *GameHandler) EndGame(c *gin.Context) {
	gameID := c.Param("id")
	if err := h.Sessions.RemoveSession(gameID); err != nil {
		respondError(c, err)
		return
	}
	httputil.ClearGameCookie(c.Writer, gameID)
	c.Status(http.StatusNoContent)
}

func (h *GameHandler) respondView(c *gin.Context) func(game.View, error) {
	return func(view game.View, err error) {
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}
