package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/iamasit07/connect4-engine/internal/service/game"
)

const writeWait = 10 * time.Second

type connection struct {
	conn *websocket.Conn

	// gorilla connections allow one concurrent writer
	writeMu sync.Mutex
}

func (c *connection) send(message ServerMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(message)
}

// ConnectionManager tracks the sockets watching each game and fans frames
// out to them. It implements game.Publisher.
type ConnectionManager struct {
	games map[string]map[*websocket.Conn]*connection
	mu    sync.RWMutex // Protects the maps themselves
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		games: make(map[string]map[*websocket.Conn]*connection),
	}
}

func (cm *ConnectionManager) AddConnection(gameID string, conn *websocket.Conn) *connection {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	subscribers, exists := cm.games[gameID]
	if !exists {
		subscribers = make(map[*websocket.Conn]*connection)
		cm.games[gameID] = subscribers
	}
	c := &connection{conn: conn}
	subscribers[conn] = c
	return c
}

// RemoveConnection closes conn and forgets it. Unknown connections are
// ignored.
func (cm *ConnectionManager) RemoveConnection(gameID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	subscribers, exists := cm.games[gameID]
	if !exists {
		return
	}
	if _, ok := subscribers[conn]; !ok {
		return
	}
	conn.Close()
	delete(subscribers, conn)
	if len(subscribers) == 0 {
		delete(cm.games, gameID)
	}
}

func (cm *ConnectionManager) SubscriberCount(gameID string) int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.games[gameID])
}

func (cm *ConnectionManager) subscribers(gameID string) []*connection {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	conns := make([]*connection, 0, len(cm.games[gameID]))
	for _, c := range cm.games[gameID] {
		conns = append(conns, c)
	}
	return conns
}

// BroadcastMessage sends message to every subscriber of gameID in turn, so
// frames of one game arrive in publish order. Dead sockets are dropped.
func (cm *ConnectionManager) BroadcastMessage(gameID string, message ServerMessage) {
	for _, c := range cm.subscribers(gameID) {
		if err := c.send(message); err != nil {
			log.Printf("[WS] Dropping subscriber of game %s: %v", gameID, err)
			cm.RemoveConnection(gameID, c.conn)
		}
	}
}

func (cm *ConnectionManager) Publish(gameID string, frame game.Frame) {
	view := frame.View
	cm.BroadcastMessage(gameID, ServerMessage{
		Type:   "frame",
		GameID: gameID,
		Drop:   frame.Drop,
		View:   &view,
	})
}

// CloseAll disconnects every socket, used on shutdown.
func (cm *ConnectionManager) CloseAll() {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	for gameID, subscribers := range cm.games {
		for conn := range subscribers {
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(time.Second))
			conn.Close()
		}
		delete(cm.games, gameID)
	}
}
