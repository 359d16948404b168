package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/game"
	"github.com/iamasit07/connect4-engine/pkg/auth"
	"github.com/iamasit07/connect4-engine/pkg/httputil"
	"github.com/iamasit07/connect4-engine/pkg/uid"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	Secret         []byte
	Upgrader       websocket.Upgrader
}

// NewHandler creates a new WebSocket handler. allowedOrigins empty means any
// origin may connect.
func NewHandler(cm *ConnectionManager, sm *game.SessionManager, secret []byte, allowedOrigins []string) *Handler {
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		Secret:         secret,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || len(allowedOrigins) == 0 {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == origin {
						return true
					}
				}
				return false
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket upgrades GET /ws/games/:id. Anyone may watch; a valid seat
// token (cookie, header or ?token=) is needed to play.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	gameID := c.Param("id")
	if !uid.IsGameID(gameID) {
		c.JSON(http.StatusNotFound, gin.H{"error": game.ErrNotFound.Error()})
		return
	}
	if _, exists := h.SessionManager.GetSessionByGameID(gameID); !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": game.ErrNotFound.Error()})
		return
	}

	canPlay := false
	if token, err := httputil.GetTokenFromRequest(c.Request, gameID); err == nil {
		canPlay = auth.AuthorizeGame(token, gameID, h.Secret) == nil
	}

	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(gameID, conn, canPlay)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(gameID string, conn *websocket.Conn, canPlay bool) {
	client := h.ConnManager.AddConnection(gameID, conn)
	log.Printf("[WS] Connection opened for game %s (player: %v)", gameID, canPlay)

	done := make(chan struct{})
	defer func() {
		close(done)
		h.ConnManager.RemoveConnection(gameID, conn)
		log.Printf("[WS] Connection closed for game %s", gameID)
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Keep-alive pinger
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}()

	if session, exists := h.SessionManager.GetSessionByGameID(gameID); exists {
		view := session.View()
		client.send(ServerMessage{Type: "state", GameID: gameID, View: &view})
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Client of game %s disconnected unexpectedly: %v", gameID, err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			client.send(errorMessage(gameID, "Invalid message format"))
			continue
		}

		// A watcher may claim the seat later by sending its token
		if msg.Token != "" {
			if err := auth.AuthorizeGame(msg.Token, gameID, h.Secret); err != nil {
				client.send(errorMessage(gameID, "Invalid token"))
				continue
			}
			canPlay = true
		}

		if !canPlay {
			client.send(errorMessage(gameID, "Spectators cannot play"))
			continue
		}

		if err := h.processMessage(gameID, msg); err != nil {
			client.send(errorMessage(gameID, err.Error()))
		}
	}
}

// processMessage routes specific actions. Successful actions reach every
// subscriber through the session's pacer, so only errors are returned.
func (h *Handler) processMessage(gameID string, msg ClientMessage) error {
	session, exists := h.SessionManager.GetSessionByGameID(gameID)
	if !exists {
		return game.ErrNotFound
	}

	var err error
	switch msg.Type {
	case "make_move":
		if msg.Column == nil {
			return domain.ErrInvalidColumn
		}
		_, err = session.Move(*msg.Column)
	case "undo":
		_, err = session.Undo()
	case "redo":
		_, err = session.Redo()
	case "reset":
		_, err = session.Reset()
	case "start":
		mode := msg.Mode
		if mode == "" {
			mode = domain.ModePvP
		}
		_, err = session.Start(mode)
	case "":
		// token-only message
	default:
		log.Printf("[WS] Unknown message type %q for game %s", msg.Type, gameID)
		return errUnknownType
	}
	return err
}

func errorMessage(gameID, text string) ServerMessage {
	return ServerMessage{Type: "error", GameID: gameID, Message: text}
}

var errUnknownType = domain.Error("unknown message type")
