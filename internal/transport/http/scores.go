package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/iamasit07/connect4-engine/internal/service/game"
)

type ScoresHandler struct {
	Scores *game.ScoreBook
}

func NewScoresHandler(scores *game.ScoreBook) *ScoresHandler {
	return &ScoresHandler{Scores: scores}
}

func (h *ScoresHandler) GetScores(c *gin.Context) {
	c.JSON(http.StatusOK, h.Scores.Scores())
}

func (h *ScoresHandler) ClearScores(c *gin.Context) {
	scores := h.Scores.Clear()
	log.Println("[SCORES] Scores cleared")
	c.JSON(http.StatusOK, scores)
}
