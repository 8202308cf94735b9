package controller

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/benbeisheim/chess-arena/internal/chess"
	"github.com/benbeisheim/chess-arena/internal/service"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

func playerID(c *fiber.Ctx) string {
	id, _ := c.Locals("playerID").(string)
	return id
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req service.CreateGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	gameID, color, err := gc.gameService.CreateGame(playerID(c), req)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
		"color":   color,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	log.Debugw("join game", "gameId", gameID, "playerId", playerID(c))

	color, err := gc.gameService.JoinGame(gameID, playerID(c))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(gameState)
}

// LegalMoves answers GET /game/:gameId/moves?row=&col=.
func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	from := chess.Square{Row: c.QueryInt("row", -1), Col: c.QueryInt("col", -1)}
	if !from.InBounds() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "row and col must be between 0 and 7",
		})
	}
	moves, err := gc.gameService.LegalMoves(c.Params("gameId"), from)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"from":  from,
		"moves": moves,
	})
}

func (gc *GameController) BoardSVG(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := gc.gameService.RenderBoard(c.Params("gameId"), playerID(c), &buf); err != nil {
		return sendError(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(buf.Bytes())
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	if err := gc.gameService.JoinMatchmaking(playerID(c)); err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

type bestMoveRequest struct {
	FEN        string `json:"fen"`
	Difficulty int    `json:"difficulty"`
}

// BestMove answers POST /analysis/bestmove.
func (gc *GameController) BestMove(c *fiber.Ctx) error {
	var req bestMoveRequest
	if err := c.BodyParser(&req); err != nil || req.FEN == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "fen is required",
		})
	}
	m, err := gc.gameService.BestMove(req.FEN, req.Difficulty)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"move":  m.String(),
		"from":  m.From(),
		"to":    m.To(),
		"score": m.Score,
	})
}
