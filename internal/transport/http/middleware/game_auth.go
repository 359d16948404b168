package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/iamasit07/connect4-engine/pkg/auth"
	"github.com/iamasit07/connect4-engine/pkg/httputil"
)

// GameAuthMiddleware requires a seat token for the game named by the :id
// route parameter.
func GameAuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID := c.Param("id")

		tokenString, err := httputil.GetTokenFromRequest(c.Request, gameID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if err := auth.AuthorizeGame(tokenString, gameID, secret); err != nil {
			log.Debugf("[AUTH] Rejected token for game %s: %v", gameID, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Next()
	}
}
