package model

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/chess-arena/internal/ws"
)

// Conn is the part of a websocket connection a game writes to.
// *websocket.Conn satisfies it.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// GameConnections holds one connection per player or spectator.
type GameConnections struct {
	connections map[string]Conn
	mu          sync.RWMutex
	// writeMu serializes writes; a websocket allows one concurrent writer.
	writeMu sync.Mutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

func (gc *GameConnections) snapshot() map[string]Conn {
	gc.mu.RLock()
	defer gc.mu.RUnlock()

	active := make(map[string]Conn, len(gc.connections))
	for id, conn := range gc.connections {
		active[id] = conn
	}
	return active
}

// drop removes conn if it is still the registered connection for id.
func (gc *GameConnections) drop(id string, conn Conn) {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	if gc.connections[id] == conn {
		delete(gc.connections, id)
	}
}

func (gc *GameConnections) Count() int {
	gc.mu.RLock()
	defer gc.mu.RUnlock()
	return len(gc.connections)
}

// RegisterConnection attaches a player's connection and sends them the
// current state. Seated players and, while a seat is open, spectators may
// connect. A second connection for the same player is closed.
func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.mu.Lock()
	isAuthorized := g.isSeated(playerID) || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return ErrNotInGame
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		g.connections.mu.Unlock()
		log.Warnw("rejecting duplicate connection", "gameId", g.ID, "playerId", playerID)
		g.connections.writeMu.Lock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		g.connections.writeMu.Unlock()
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Infow("registered connection", "gameId", g.ID, "playerId", playerID, "conn", fmt.Sprintf("%p", conn))

	g.broadcastState()
	return nil
}

func (g *Game) isSeated(playerID string) bool {
	_, ok := g.colorOf(playerID)
	return ok
}

// UnregisterConnection detaches conn if it is still the player's current
// connection.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.drop(playerID, conn)
	log.Debugw("unregistered connection", "gameId", g.ID, "playerId", playerID)
}

func (g *Game) Connections() int {
	return g.connections.Count()
}

// broadcastState sends the current state to every connection. It must be
// called without g.mu held. Connections that fail are dropped.
func (g *Game) broadcastState() {
	state := g.GetState()
	payload, err := json.Marshal(state)
	if err != nil {
		log.Errorw("failed to marshal state", "gameId", g.ID, "error", err)
		return
	}
	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: payload}

	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()
	for playerID, conn := range g.connections.snapshot() {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnw("failed to send state", "gameId", g.ID, "playerId", playerID, "error", err)
			g.connections.drop(playerID, conn)
		}
	}
}

// Send writes a single message to one player's connection.
func (g *Game) Send(playerID string, msg ws.Message) error {
	conn, ok := g.connections.snapshot()[playerID]
	if !ok {
		return ErrNotInGame
	}
	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()
	return conn.WriteJSON(msg)
}
