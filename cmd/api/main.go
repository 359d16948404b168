package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/iamasit07/connect4-engine/internal/config"
	"github.com/iamasit07/connect4-engine/internal/repository/postgres"
	"github.com/iamasit07/connect4-engine/internal/repository/redis"
	"github.com/iamasit07/connect4-engine/internal/service/cleanup"
	"github.com/iamasit07/connect4-engine/internal/service/game"
	transportHttp "github.com/iamasit07/connect4-engine/internal/transport/http"
	"github.com/iamasit07/connect4-engine/internal/transport/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()
	cfg.SetupLogging()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. Persistence (optional: without a database scores live in memory)
	var (
		db        *sql.DB
		scoreRepo game.ScoreRepository
		gameRepo  game.GameRepository
		archive   transportHttp.GameArchive
	)
	if cfg.DatabaseURL != "" {
		var err error
		db, err = postgres.Open(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
		if err != nil {
			log.Fatalf("Database unreachable: %v", err)
		}
		defer db.Close()

		log.Println("Running database migrations...")
		if err := postgres.RunMigrations(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Database migration completed successfully")

		games := postgres.NewGameRepo(db)
		scoreRepo = postgres.NewScoreRepo(db)
		gameRepo = games
		archive = games
	} else {
		log.Println("DATABASE_URL not set; scores and history will not persist")
	}

	// 1b. Redis caches scores in front of Postgres, or stores them alone
	if err := redis.InitRedis(); err != nil {
		log.Printf("Failed to initialize Redis: %v", err)
	}
	defer redis.CloseRedis()

	if redis.IsRedisEnabled() && redis.RedisClient != nil {
		store := redis.NewScoreStore(redis.RedisClient)
		if scoreRepo != nil {
			scoreRepo = redis.NewCachedScores(store, scoreRepo)
		} else {
			scoreRepo = store
		}
	}

	// 2. Services
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	scores := game.NewScoreBook(ctx, scoreRepo)
	connManager := websocket.NewConnectionManager()
	sessionManager := game.NewSessionManager(scores, gameRepo, connManager, cfg.DropDelay, cfg.AIThinkDelay)

	// 3. Background workers
	cleanup.NewWorker(sessionManager, cfg.SessionIdleTimeout, cfg.CleanupInterval).Start(ctx)

	// 4. HTTP + WebSocket
	secret := []byte(cfg.JWTSecret)
	wsHandler := websocket.NewHandler(connManager, sessionManager, secret, cfg.AllowedOrigins)
	routerCfg := transportHttp.RouterConfig{
		Sessions:       sessionManager,
		Archive:        archive,
		WebSocket:      wsHandler.HandleWebSocket,
		AllowedOrigins: cfg.AllowedOrigins,
		JWTSecret:      secret,
		GameTokenTTL:   cfg.GameTokenTTL,
		SecureCookies:  cfg.IsProduction(),
	}
	router := transportHttp.NewRouter(routerCfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")

	stop()
	connManager.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
