package service

import (
	"fmt"
	"io"
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/chess-arena/internal/chess"
	"github.com/benbeisheim/chess-arena/internal/engine"
	"github.com/benbeisheim/chess-arena/internal/model"
	"github.com/benbeisheim/chess-arena/internal/render"
	"github.com/benbeisheim/chess-arena/internal/setup"
	"github.com/benbeisheim/chess-arena/internal/ws"
)

type GameService struct {
	gameManager *GameManager
	searcher    *engine.Searcher

	// computer replies in flight
	thinking sync.WaitGroup
}

func NewGameService(gameManager *GameManager, searcher *engine.Searcher) *GameService {
	if searcher == nil {
		searcher = engine.Default
	}
	return &GameService{
		gameManager: gameManager,
		searcher:    searcher,
	}
}

// CreateGameRequest describes a new game. FEN is optional.
type CreateGameRequest struct {
	Mode          model.Mode  `json:"mode"`
	Difficulty    int         `json:"difficulty"`
	ComputerColor chess.Color `json:"computerColor"`
	FEN           string      `json:"fen"`
}

// CreateGame sets up a game and seats the creator. In a computer game that
// the computer opens, its first move is started right away.
func (gs *GameService) CreateGame(playerID string, req CreateGameRequest) (string, chess.Color, error) {
	opts := model.Options{Mode: model.ModePvP}
	switch req.Mode {
	case "", model.ModePvP:
	case model.ModeComputer:
		opts.Mode = model.ModeComputer
		opts.Difficulty = engine.Difficulty(req.Difficulty).Clamp()
		opts.ComputerColor = req.ComputerColor
		if !opts.ComputerColor.Valid() {
			opts.ComputerColor = chess.Black
		}
	default:
		return "", "", fmt.Errorf("%w %q", model.ErrUnknownMode, req.Mode)
	}
	if req.FEN != "" {
		s, err := setup.ParseFEN(req.FEN)
		if err != nil {
			return "", "", fmt.Errorf("failed to create game: %w", err)
		}
		opts.Setup = &s
	}

	game := gs.gameManager.CreateGame(opts)
	color, err := game.AddPlayer(playerID)
	if err != nil {
		return "", "", fmt.Errorf("failed to create game: %w", err)
	}
	log.Infow("game created", "gameId", game.ID, "playerId", playerID, "mode", opts.Mode, "difficulty", opts.Difficulty)

	gs.scheduleComputerMove(game)
	return game.ID, color, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (chess.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.WSMove) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	if err := game.MakeMove(playerID, move); err != nil {
		return err
	}
	gs.scheduleComputerMove(game)
	return nil
}

func (gs *GameService) HandlePromotion(gameID string, playerID string, piece chess.PieceType) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	if err := game.ResolvePromotion(playerID, piece); err != nil {
		return err
	}
	gs.scheduleComputerMove(game)
	return nil
}

func (gs *GameService) Resign(gameID string, playerID string) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Resign(playerID)
}

func (gs *GameService) OfferDraw(gameID string, playerID string) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.OfferDraw(playerID)
}

func (gs *GameService) AcceptDraw(gameID string, playerID string) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.AcceptDraw(playerID)
}

func (gs *GameService) LegalMoves(gameID string, from chess.Square) ([]model.SimpleMove, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalMovesFrom(from), nil
}

// RenderBoard writes an SVG snapshot of the game, seen from the player's
// side.
func (gs *GameService) RenderBoard(gameID string, playerID string, w io.Writer) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	pos, toMove := game.Position()
	state := game.GetState()

	opts := render.Options{}
	if color, ok := game.ColorOf(playerID); ok && color == chess.Black {
		opts.Flip = true
	}
	if state.LastMove != nil {
		m := chess.NewMove(state.LastMove.From, state.LastMove.To)
		opts.LastMove = &m
	}
	if state.IsCheck {
		opts.Check = toMove
	}
	render.SVG(w, pos, opts)
	return nil
}

// BestMove searches a position given as FEN without creating a game.
func (gs *GameService) BestMove(fen string, difficulty int) (chess.Move, error) {
	s, err := setup.ParseFEN(fen)
	if err != nil {
		return chess.Move{}, err
	}
	legal := engine.LegalMoves(s.Position, s.ToMove)
	d := engine.Difficulty(difficulty).Clamp()
	m, ok := gs.searcher.SelectMove(s.Position, legal, d, s.ToMove == chess.White)
	if !ok {
		return chess.Move{}, fmt.Errorf("%s has no legal moves: %w", s.ToMove, model.ErrGameOver)
	}
	log.Debugw("analysis", "fen", fen, "difficulty", d, "move", m.String(), "score", m.Score)
	return m, nil
}

// scheduleComputerMove starts the computer's reply if it is the computer's
// turn.
func (gs *GameService) scheduleComputerMove(game *model.Game) {
	if game.Mode() != model.ModeComputer {
		return
	}
	gs.thinking.Add(1)
	go func() {
		defer gs.thinking.Done()
		gs.playComputerMove(game)
	}()
}

func (gs *GameService) playComputerMove(game *model.Game) {
	pos, toMove, ok := game.Snapshot()
	if !ok {
		return
	}
	legal := engine.LegalMoves(pos, toMove)
	d := game.Difficulty()
	m, ok := gs.searcher.SelectMove(pos, legal, d, toMove == chess.White)
	if !ok {
		return
	}
	if err := game.ApplyComputerMove(m); err != nil {
		log.Warnw("computer move rejected", "gameId", game.ID, "move", m.String(), "error", err)
		return
	}
	log.Infow("computer moved", "gameId", game.ID, "difficulty", d, "strategy", d.Strategy(), "move", m.String(), "score", m.Score)
}

// Wait blocks until every computer reply started so far has been played.
func (gs *GameService) Wait() {
	gs.thinking.Wait()
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

// Send writes one message to a player's game connection.
func (gs *GameService) Send(gameID string, playerID string, msg ws.Message) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Send(playerID, msg)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	return gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID, ch)
}
