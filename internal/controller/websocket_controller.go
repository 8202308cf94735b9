package controller

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/chess-arena/internal/chess"
	"github.com/benbeisheim/chess-arena/internal/model"
	"github.com/benbeisheim/chess-arena/internal/service"
	"github.com/benbeisheim/chess-arena/internal/ws"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection serves a player's game channel until it closes.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Warnw("failed to register connection", "gameId", gameID, "playerId", playerID, "error", err)
		c.WriteJSON(ws.ErrorMessage(err.Error()))
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugw("read error", "gameId", gameID, "playerId", playerID, "error", err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debugw("parse error", "gameId", gameID, "playerId", playerID, "error", err)
			wsc.sendError(gameID, playerID, c, "malformed message")
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.Debugw("handle error", "gameId", gameID, "playerId", playerID, "type", msg.Type, "error", err)
			wsc.sendError(gameID, playerID, c, err.Error())
		}
	}
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		return wsc.gameService.HandleMove(gameID, playerID, move)

	case ws.MessageTypePromotion:
		var p ws.PromotionPayload
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &p); err != nil {
				return err
			}
		}
		return wsc.gameService.HandlePromotion(gameID, playerID, chess.PieceType(p.Piece))

	case ws.MessageTypeResign:
		return wsc.gameService.Resign(gameID, playerID)

	case ws.MessageTypeDrawOffer:
		return wsc.gameService.OfferDraw(gameID, playerID)

	case ws.MessageTypeDraw:
		return wsc.gameService.AcceptDraw(gameID, playerID)
	}
	return fmt.Errorf("unknown message type: %s", msg.Type)
}

// sendError goes through the game so it does not race its broadcasts.
func (wsc *WebSocketController) sendError(gameID, playerID string, c *websocket.Conn, errorMsg string) {
	if err := wsc.gameService.Send(gameID, playerID, ws.ErrorMessage(errorMsg)); err != nil {
		c.WriteJSON(ws.ErrorMessage(errorMsg))
	}
}

// HandleMatchmaking holds a player's matchmaking channel open and forwards
// the match-found event when it arrives.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID, _ := c.Locals("playerID").(string)

	events := make(chan string, 1)
	if err := wsc.gameService.RegisterMatchmakingChannel(playerID, events); err != nil {
		c.WriteJSON(ws.ErrorMessage(err.Error()))
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID, events)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event, ok := <-events:
		if !ok {
			return
		}
		if err := c.WriteMessage(websocket.TextMessage, []byte(event)); err != nil {
			log.Warnw("match event not delivered", "playerId", playerID, "error", err)
			return
		}
		log.Infow("match event delivered", "playerId", playerID)
	case <-closed:
	}
}
