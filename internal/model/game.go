package model

import (
	"slices"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/benbeisheim/chess-arena/internal/chess"
	"github.com/benbeisheim/chess-arena/internal/engine"
	"github.com/benbeisheim/chess-arena/internal/setup"
)

type Mode string

const (
	ModePvP      Mode = "pvp"
	ModeComputer Mode = "computer"
)

// DefaultClockTime is each side's starting time when Options leaves it unset.
const DefaultClockTime = 600 * time.Second

// Options configures a new game. The zero value is a pvp game from the
// standard position.
type Options struct {
	Mode          Mode
	Difficulty    engine.Difficulty
	ComputerColor chess.Color
	Setup         *setup.Setup
	ClockTime     time.Duration
}

// Game is a single game session and its observers. All exported methods are
// safe for concurrent use.
type Game struct {
	ID string

	mu         sync.Mutex
	mode       Mode
	difficulty engine.Difficulty
	computer   chess.Color
	pos        *chess.Position
	toMove     chess.Color
	halfMove   int
	moveNumber int
	outcome    chess.Outcome
	endedAt    time.Time
	pending    *chess.Move
	drawOffer  chess.Color
	state      GameState

	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
}

type GameState struct {
	Sound          string         `json:"sound"`
	Board          *BoardState    `json:"boardState"`
	FEN            string         `json:"fen"`
	ToMove         chess.Color    `json:"toMove"`
	HalfMoveClock  int            `json:"halfMoveClock"`
	MoveHistory    []Move         `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	IsCheck        bool           `json:"isCheck"`
	Resolve        *string        `json:"resolve"`
	Winner         chess.Color    `json:"winner,omitempty"`
	Mode           Mode           `json:"mode"`
	Difficulty     int            `json:"difficulty,omitempty"`
	Players        struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
	PromotionSquare        *chess.Square `json:"promotionSquare"`
	PendingMoveDestination *chess.Square `json:"pendingMoveDestination"`
	DrawOffer              chess.Color   `json:"drawOffer,omitempty"`
	LastMove               *SimpleMove   `json:"lastMove"`
}

func NewGame(id string, opts Options) *Game {
	clockTime := opts.ClockTime
	if clockTime <= 0 {
		clockTime = DefaultClockTime
	}
	g := &Game{
		ID:          id,
		mode:        ModePvP,
		pos:         chess.NewPosition(),
		toMove:      chess.White,
		moveNumber:  1,
		state:       newGameState(),
		connections: NewGameConnections(),
		whiteClock:  NewClock(clockTime),
		blackClock:  NewClock(clockTime),
	}
	if opts.Setup != nil {
		g.pos = opts.Setup.Position.Clone()
		g.toMove = opts.Setup.ToMove
		g.halfMove = opts.Setup.HalfMoveClock
	}
	if opts.Mode == ModeComputer {
		g.mode = ModeComputer
		g.difficulty = opts.Difficulty.Clamp()
		g.computer = opts.ComputerColor
		if !g.computer.Valid() {
			g.computer = chess.Black
		}
		g.slot(g.computer).ID = "computer"
		g.slot(g.computer).Computer = true
	}
	g.state.Mode = g.mode
	g.state.Difficulty = int(g.difficulty)
	g.classify()
	g.refreshState()
	return g
}

func newGameState() GameState {
	s := GameState{
		MoveHistory:    make([]Move, 0),
		CapturedPieces: newCapturedPieces(),
	}
	s.Players.White = ClientPlayer{Color: chess.White}
	s.Players.Black = ClientPlayer{Color: chess.Black}
	return s
}

func (g *Game) slot(c chess.Color) *ClientPlayer {
	if c == chess.White {
		return &g.state.Players.White
	}
	return &g.state.Players.Black
}

func (g *Game) clock(c chess.Color) *Clock {
	if c == chess.White {
		return g.whiteClock
	}
	return g.blackClock
}

// AddPlayer seats a player in the first free slot, White first. A player
// already seated gets their color back.
func (g *Game) AddPlayer(playerID string) (chess.Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	log.Debugw("adding player", "gameId", g.ID, "playerId", playerID)

	if c, ok := g.colorOf(playerID); ok {
		return c, nil
	}
	for _, c := range []chess.Color{chess.White, chess.Black} {
		if p := g.slot(c); p.ID == "" {
			p.ID = playerID
			return c, nil
		}
	}
	return "", ErrGameFull
}

func (g *Game) colorOf(playerID string) (chess.Color, bool) {
	if playerID == "" {
		return "", false
	}
	switch playerID {
	case g.state.Players.White.ID:
		return chess.White, !g.state.Players.White.Computer
	case g.state.Players.Black.ID:
		return chess.Black, !g.state.Players.Black.Computer
	}
	return "", false
}

func (g *Game) ColorOf(playerID string) (chess.Color, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.colorOf(playerID)
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	_, ok := g.ColorOf(playerID)
	return ok
}

func (g *Game) canSpectate() bool {
	return g.state.Players.White.ID == "" || g.state.Players.Black.ID == ""
}

func (g *Game) Mode() Mode {
	return g.mode
}

func (g *Game) Difficulty() engine.Difficulty {
	return g.difficulty
}

func (g *Game) ComputerColor() chess.Color {
	return g.computer
}

// GetState returns a copy of the client view with fresh clock readings. The
// copy shares no slices with the game, so it can be encoded after the lock is
// released.
func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.checkTimeout()
	g.state.Players.White.TimeLeft = g.whiteClock.Tenths()
	g.state.Players.Black.TimeLeft = g.blackClock.Tenths()

	state := g.state
	state.MoveHistory = slices.Clone(g.state.MoveHistory)
	state.CapturedPieces = CapturedPieces{
		White: slices.Clone(g.state.CapturedPieces.White),
		Black: slices.Clone(g.state.CapturedPieces.Black),
	}
	return state
}

// EndedAt reports when the game finished, or false while it is still on.
func (g *Game) EndedAt() (time.Time, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.endedAt, !g.endedAt.IsZero()
}

func (g *Game) Outcome() chess.Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.outcome
}

// Position returns a copy of the current position and the side to move.
func (g *Game) Position() (*chess.Position, chess.Color) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pos.Clone(), g.toMove
}

// MakeMove plays a human move. A promoting move without a valid Promotion
// is parked until ResolvePromotion.
func (g *Game) MakeMove(playerID string, move WSMove) error {
	if err := g.makeMove(playerID, move); err != nil {
		return err
	}
	g.broadcastState()
	return nil
}

func (g *Game) makeMove(playerID string, move WSMove) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	log.Debugw("making move", "gameId", g.ID, "playerId", playerID, "move", move.Move().String())

	color, err := g.checkTurn(playerID)
	if err != nil {
		return err
	}
	if g.pending != nil {
		return ErrPromotionPending
	}

	m := move.Move()
	if !engine.IsValidMove(g.pos, m.FromRow, m.FromCol, m.ToRow, m.ToCol, color) {
		return ErrIllegalMove
	}
	if engine.NeedsPromotion(g.pos, m) {
		switch {
		case move.Promotion == "":
			g.pending = &m
			to, from := m.To(), m.From()
			g.state.PromotionSquare = &from
			g.state.PendingMoveDestination = &to
			return nil
		case !move.Promotion.PromotionChoice():
			return ErrInvalidPromotion
		}
	}
	g.commit(m, engine.Promote(move.Promotion), false)
	return nil
}

// checkTurn resolves the player's color and requires it to be their move in
// a live game.
func (g *Game) checkTurn(playerID string) (chess.Color, error) {
	g.checkTimeout()
	if g.outcome.Over() {
		return "", ErrGameOver
	}
	color, ok := g.colorOf(playerID)
	if !ok {
		return "", ErrNotInGame
	}
	if color != g.toMove {
		return "", ErrNotYourTurn
	}
	return color, nil
}

// ResolvePromotion completes a parked promotion. An empty piece declines it:
// the move is dropped and the board is unchanged.
func (g *Game) ResolvePromotion(playerID string, piece chess.PieceType) error {
	if err := g.resolvePromotion(playerID, piece); err != nil {
		return err
	}
	g.broadcastState()
	return nil
}

func (g *Game) resolvePromotion(playerID string, piece chess.PieceType) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := g.checkTurn(playerID); err != nil {
		return err
	}
	if g.pending == nil {
		return ErrNoPendingPromotion
	}
	if piece != "" && !piece.PromotionChoice() {
		return ErrInvalidPromotion
	}

	m := *g.pending
	g.pending = nil
	g.state.PromotionSquare = nil
	g.state.PendingMoveDestination = nil
	if piece == "" {
		log.Debugw("promotion declined", "gameId", g.ID, "move", m.String())
		return nil
	}
	g.commit(m, engine.Promote(piece), false)
	return nil
}

// commit applies a validated move and advances turn, clocks, history and
// outcome. It reports false if the promotion chooser declined.
func (g *Game) commit(m chess.Move, choose engine.PromotionChooser, computer bool) bool {
	mover := g.toMove
	var promotion chess.PieceType
	if engine.NeedsPromotion(g.pos, m) {
		promotion, _ = choose(mover, m.To())
	}
	san := notation(g.pos, m, promotion)

	r, ok := engine.Commit(g.pos, m, choose)
	if !ok {
		return false
	}

	g.clock(mover).Stop()
	g.halfMove = engine.NextHalfMoveClock(g.halfMove, r)
	g.toMove = mover.Opposite()
	if mover == chess.Black {
		g.moveNumber++
	}
	g.drawOffer = ""

	g.state.Sound = "move"
	if r.IsCapture() {
		g.state.Sound = "capture"
		g.state.CapturedPieces.add(mover, r.Captured)
	}
	if r.Promotion != "" {
		g.state.Sound = "promote"
	}

	if o, ok := engine.KingCapturedOutcome(r); ok {
		g.outcome = o
	} else {
		g.classify()
	}
	switch {
	case g.outcome.Kind == chess.OutcomeCheckmate:
		san += "#"
	case engine.InCheck(g.pos, g.toMove):
		san += "+"
		g.state.Sound = "check"
	}

	ply := &Ply{
		Piece:     r.Piece,
		From:      m.From(),
		To:        m.To(),
		Promotion: r.Promotion,
		Notation:  san,
		Computer:  computer,
	}
	if r.IsCapture() {
		captured := r.Captured
		ply.CapturedPiece = &captured
	}
	g.appendPly(mover, ply)

	last := newSimpleMove(m)
	g.state.LastMove = &last

	if g.outcome.Over() {
		g.finish()
	} else {
		g.clock(g.toMove).Start()
	}
	g.refreshState()
	log.Infow("move committed", "gameId", g.ID, "color", mover, "move", san, "outcome", g.outcome.String())
	return true
}

func (g *Game) appendPly(mover chess.Color, ply *Ply) {
	history := g.state.MoveHistory
	if mover == chess.White || len(history) == 0 || history[len(history)-1].BlackPly != nil {
		history = append(history, Move{})
	}
	if mover == chess.White {
		history[len(history)-1].WhitePly = ply
	} else {
		history[len(history)-1].BlackPly = ply
	}
	g.state.MoveHistory = history
}

func (g *Game) classify() {
	g.outcome = engine.Classify(g.pos, g.toMove, g.halfMove)
}

// finish stops both clocks once an outcome is set.
func (g *Game) finish() {
	g.endedAt = time.Now()
	g.whiteClock.Stop()
	g.blackClock.Stop()
	g.pending = nil
	g.drawOffer = ""
	g.state.PromotionSquare = nil
	g.state.PendingMoveDestination = nil
	g.state.Sound = "gameEnd"
	log.Infow("game over", "gameId", g.ID, "outcome", g.outcome.String())
}

// checkTimeout ends the game when the side to move has run out of time.
func (g *Game) checkTimeout() bool {
	if g.outcome.Over() || !g.clock(g.toMove).Expired() {
		return false
	}
	g.outcome = chess.Outcome{Kind: chess.OutcomeTimeout, Winner: g.toMove.Opposite()}
	g.finish()
	g.refreshState()
	return true
}

// CheckTimeout flags the side to move if their clock has expired and tells
// observers. It reports whether the game ended.
func (g *Game) CheckTimeout() bool {
	g.mu.Lock()
	ended := g.checkTimeout()
	g.mu.Unlock()

	if ended {
		g.broadcastState()
	}
	return ended
}

func (g *Game) Resign(playerID string) error {
	if err := g.resign(playerID); err != nil {
		return err
	}
	g.broadcastState()
	return nil
}

func (g *Game) resign(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, ok := g.colorOf(playerID)
	if !ok {
		return ErrNotInGame
	}
	if g.outcome.Over() {
		return ErrGameOver
	}
	g.outcome = chess.Outcome{Kind: chess.OutcomeResignation, Winner: color.Opposite()}
	g.finish()
	g.refreshState()
	return nil
}

// OfferDraw records a draw offer from the player. The computer never accepts.
func (g *Game) OfferDraw(playerID string) error {
	if err := g.offerDraw(playerID); err != nil {
		return err
	}
	g.broadcastState()
	return nil
}

func (g *Game) offerDraw(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, ok := g.colorOf(playerID)
	if !ok {
		return ErrNotInGame
	}
	if g.outcome.Over() {
		return ErrGameOver
	}
	g.drawOffer = color
	g.refreshState()
	return nil
}

// AcceptDraw ends the game by agreement if the opponent has an offer open.
func (g *Game) AcceptDraw(playerID string) error {
	if err := g.acceptDraw(playerID); err != nil {
		return err
	}
	g.broadcastState()
	return nil
}

func (g *Game) acceptDraw(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, ok := g.colorOf(playerID)
	if !ok {
		return ErrNotInGame
	}
	if g.outcome.Over() {
		return ErrGameOver
	}
	if g.drawOffer != color.Opposite() {
		return ErrNoDrawOffer
	}
	g.outcome = chess.Outcome{Kind: chess.OutcomeAgreement}
	g.finish()
	g.refreshState()
	return nil
}

// LegalMovesFrom lists the legal moves of the piece on sq.
func (g *Game) LegalMovesFrom(sq chess.Square) []SimpleMove {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.outcome.Over() || !sq.InBounds() {
		return []SimpleMove{}
	}
	return simpleMoves(engine.LegalMovesFrom(g.pos, sq))
}

// Snapshot returns a private copy of the position when the computer is to
// move. It reports false in pvp games, on the human's turn and once the game
// is over.
func (g *Game) Snapshot() (*chess.Position, chess.Color, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.mode != ModeComputer || g.outcome.Over() || g.toMove != g.computer {
		return nil, "", false
	}
	return g.pos.Clone(), g.toMove, true
}

// ApplyComputerMove plays the computer's move, promoting to a queen.
func (g *Game) ApplyComputerMove(m chess.Move) error {
	if err := g.applyComputerMove(m); err != nil {
		return err
	}
	g.broadcastState()
	return nil
}

func (g *Game) applyComputerMove(m chess.Move) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.checkTimeout()
	if g.outcome.Over() {
		return ErrGameOver
	}
	if g.mode != ModeComputer || g.toMove != g.computer {
		return ErrNotYourTurn
	}
	if !engine.IsValidMove(g.pos, m.FromRow, m.FromCol, m.ToRow, m.ToCol, g.computer) {
		return ErrIllegalMove
	}
	g.commit(m, engine.AutoQueen, true)
	return nil
}

// refreshState rebuilds the derived parts of the client view.
func (g *Game) refreshState() {
	g.state.Board = newBoardState(g.pos)
	g.state.FEN = setup.FEN(g.pos, g.toMove, g.halfMove, g.moveNumber)
	g.state.ToMove = g.toMove
	g.state.HalfMoveClock = g.halfMove
	g.state.IsCheck = engine.InCheck(g.pos, g.toMove)
	g.state.DrawOffer = g.drawOffer
	g.state.Resolve = nil
	g.state.Winner = ""
	if g.outcome.Over() {
		kind := string(g.outcome.Kind)
		g.state.Resolve = &kind
		g.state.Winner = g.outcome.Winner
	}
}
