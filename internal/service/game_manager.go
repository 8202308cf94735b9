package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/benbeisheim/chess-arena/internal/chess"
	"github.com/benbeisheim/chess-arena/internal/model"
	"github.com/benbeisheim/chess-arena/internal/ws"
)

// finishedGameRetention is how long a finished game stays reachable for
// late state requests before the sweep drops it.
const finishedGameRetention = 10 * time.Minute

// GameManager is the registry of live games and the matchmaking loop.
type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan string
	clockTime        time.Duration
	retention        time.Duration
	mu               sync.RWMutex
}

// NewGameManager starts the matchmaking loop, which pairs queued players and
// flags expired clocks every interval until ctx is done.
func NewGameManager(ctx context.Context, interval, clockTime time.Duration) *GameManager {
	gm := &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
		clockTime:        clockTime,
		retention:        finishedGameRetention,
	}
	go gm.processMatchmaking(ctx, interval)
	return gm
}

func (gm *GameManager) processMatchmaking(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for gm.matchOnce() {
			}
			gm.sweepClocks()
			gm.pruneFinished(time.Now())
		}
	}
}

// matchOnce pairs the two longest waiting players into a new game. It
// reports whether a game was created.
func (gm *GameManager) matchOnce() bool {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	player1, player2, ok := gm.queue.GetNextPair()
	if !ok {
		return false
	}

	gameID := uuid.New().String()
	game := model.NewGame(gameID, model.Options{Mode: model.ModePvP, ClockTime: gm.clockTime})
	gm.games[gameID] = game

	for _, p := range []model.Player{player1, player2} {
		color, err := game.AddPlayer(p.ID)
		if err != nil {
			log.Errorw("adding matched player", "gameId", gameID, "playerId", p.ID, "error", err)
			continue
		}
		p.Color = color
		if !gm.notifyMatch(p, gameID) {
			log.Warnw("matched player not listening", "gameId", gameID, "playerId", p.ID)
		}
	}
	log.Infow("match found", "gameId", gameID, "white", player1.ID, "black", player2.ID)
	return true
}

// notifyMatch sends the seated player a matchFound message and retires their
// channel. Must be called with gm.mu held.
func (gm *GameManager) notifyMatch(p model.Player, gameID string) bool {
	ch, ok := gm.matchingChannels[p.ID]
	if !ok {
		return false
	}
	msg, err := ws.NewMessage(ws.MessageTypeMatchFound, model.MatchFoundEvent{GameID: gameID, Color: p.Color})
	if err != nil {
		log.Errorw("building match event", "playerId", p.ID, "error", err)
		return false
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Errorw("marshal match event", "playerId", p.ID, "error", err)
		return false
	}
	select {
	case ch <- string(payload):
		delete(gm.matchingChannels, p.ID)
		close(ch)
		return true
	default:
		return false
	}
}

// sweepClocks ends games whose side to move has run out of time.
func (gm *GameManager) sweepClocks() {
	gm.mu.RLock()
	games := make([]*model.Game, 0, len(gm.games))
	for _, g := range gm.games {
		games = append(games, g)
	}
	gm.mu.RUnlock()

	for _, g := range games {
		if g.CheckTimeout() {
			log.Infow("flag fell", "gameId", g.ID)
		}
	}
}

// pruneFinished drops games that ended more than the retention period
// before now.
func (gm *GameManager) pruneFinished(now time.Time) int {
	gm.mu.RLock()
	var stale []*model.Game
	for _, g := range gm.games {
		if ended, ok := g.EndedAt(); ok && now.Sub(ended) > gm.retention {
			stale = append(stale, g)
		}
	}
	gm.mu.RUnlock()
	if len(stale) == 0 {
		return 0
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	for _, g := range stale {
		delete(gm.games, g.ID)
	}
	log.Infow("finished games pruned", "count", len(stale), "live", len(gm.games))
	return len(stale)
}

func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	log.Debugw("registering matchmaking channel", "playerId", playerID)

	if existing, ok := gm.matchingChannels[playerID]; ok {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
	return nil
}

// UnregisterMatchmakingChannel forgets the player's channel, if it is still
// ch, and takes them out of the queue. The channel is not closed here.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if gm.matchingChannels[playerID] == ch {
		delete(gm.matchingChannels, playerID)
		gm.queue.Remove(playerID)
	}
}

// CreateGame registers a new game under a fresh id.
func (gm *GameManager) CreateGame(opts model.Options) *model.Game {
	if opts.ClockTime <= 0 {
		opts.ClockTime = gm.clockTime
	}
	gameID := uuid.New().String()
	game := model.NewGame(gameID, opts)

	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.games[gameID] = game
	return game
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("game %q: %w", gameID, model.ErrGameNotFound)
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (chess.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	if err := gm.queue.AddPlayer(model.Player{ID: playerID}); err != nil {
		return fmt.Errorf("join matchmaking: %w", err)
	}
	log.Infow("player queued", "playerId", playerID, "waiting", gm.queue.Size())
	return nil
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}

func (gm *GameManager) Len() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}
