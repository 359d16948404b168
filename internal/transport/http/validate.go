package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect4-engine/internal/service/game"
)

type validateRequest struct {
	Moves []int `json:"moves" binding:"required"`
}

// ValidateMoves replays a move log and returns its step mapping.
func ValidateMoves(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "moves must be an array of column indexes"})
		return
	}
	c.JSON(http.StatusOK, game.Validate(req.Moves))
}
