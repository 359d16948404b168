package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect4-engine/internal/service/game"
	"github.com/iamasit07/connect4-engine/internal/transport/http/middleware"
)

type RouterConfig struct {
	Sessions       *game.SessionManager
	Archive        GameArchive // nil disables history
	WebSocket      gin.HandlerFunc
	AllowedOrigins []string
	JWTSecret      []byte
	GameTokenTTL   time.Duration
	SecureCookies  bool
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	gameHandler := NewGameHandler(cfg.Sessions, cfg.JWTSecret, cfg.GameTokenTTL, cfg.SecureCookies)
	watchHandler := NewWatchHandler(cfg.Sessions)
	scoresHandler := NewScoresHandler(cfg.Sessions.Scores())
	historyHandler := NewHistoryHandler(cfg.Archive)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	api := router.Group("/api")
	{
		api.POST("/games", gameHandler.CreateGame)
		api.GET("/games", watchHandler.GetLiveGames)
		api.GET("/games/:id", gameHandler.GetGame)

		api.POST("/validate", ValidateMoves)

		api.GET("/scores", scoresHandler.GetScores)
		api.DELETE("/scores", scoresHandler.ClearScores)

		api.GET("/history", historyHandler.GetHistory)
		api.GET("/history/:id", historyHandler.GetGameDetails)
	}

	// Seat-token routes
	seat := api.Group("/games/:id")
	seat.Use(middleware.GameAuthMiddleware(cfg.JWTSecret))
	{
		seat.POST("/moves", gameHandler.MakeMove)
		seat.POST("/start", gameHandler.StartGame)
		seat.POST("/reset", gameHandler.ResetGame)
		seat.POST("/undo", gameHandler.Undo)
		seat.POST("/redo", gameHandler.Redo)
		seat.DELETE("", gameHandler.EndGame)
	}

	if cfg.WebSocket != nil {
		router.GET("/ws/games/:id", cfg.WebSocket)
	}

	return router
}
