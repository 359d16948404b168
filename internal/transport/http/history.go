package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/game"
	"github.com/iamasit07/connect4-engine/pkg/uid"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// GameArchive reads finished games.
type GameArchive interface {
	ListGames(ctx context.Context, limit int) ([]domain.GameRecord, error)
	GetGameByID(ctx context.Context, gameID string) (*domain.GameRecord, error)
}

type HistoryHandler struct {
	Archive GameArchive
}

func NewHistoryHandler(archive GameArchive) *HistoryHandler {
	return &HistoryHandler{Archive: archive}
}

type gameHistoryItem struct {
	ID              string            `json:"id"`
	Mode            domain.Mode       `json:"mode"`
	Result          domain.GameStatus `json:"result"`
	Winner          string            `json:"winner,omitempty"`
	MovesCount      int               `json:"movesCount"`
	DurationSeconds int               `json:"durationSeconds"`
	FinishedAt      string            `json:"finishedAt"`
}

type gameDetails struct {
	Game  domain.GameRecord `json:"game"`
	Steps game.Steps        `json:"steps"`
}

func (h *HistoryHandler) available(c *gin.Context) bool {
	if h.Archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Game history is not configured"})
		return false
	}
	return true
}

func (h *HistoryHandler) GetHistory(c *gin.Context) {
	if !h.available(c) {
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	games, err := h.Archive.ListGames(c.Request.Context(), limit)
	if err != nil {
		log.Printf("[HTTP] Failed to fetch history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}

	history := make([]gameHistoryItem, 0, len(games))
	for _, g := range games {
		history = append(history, gameHistoryItem{
			ID:              g.GameID,
			Mode:            g.Mode,
			Result:          g.Status,
			Winner:          g.Winner.Label(),
			MovesCount:      len(g.Moves),
			DurationSeconds: g.DurationSeconds(),
			FinishedAt:      g.FinishedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, history)
}

// GetGameDetails returns the archived game and its move log replayed step
// by step.
func (h *HistoryHandler) GetGameDetails(c *gin.Context) {
	if !h.available(c) {
		return
	}
	if !uid.IsGameID(c.Param("id")) {
		respondError(c, game.ErrNotFound)
		return
	}

	rec, err := h.Archive.GetGameByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Printf("[HTTP] Failed to fetch game %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch game"})
		return
	}
	if rec == nil {
		respondError(c, game.ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, gameDetails{Game: *rec, Steps: game.Validate(rec.Moves)})
}
