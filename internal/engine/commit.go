package engine

import "github.com/benbeisheim/chess-arena/internal/chess"

// PromotionChooser supplies the replacement piece for a pawn reaching its
// last row. Returning false declines, and the move is not committed.
type PromotionChooser func(c chess.Color, sq chess.Square) (chess.PieceType, bool)

// AutoQueen always promotes to a queen.
func AutoQueen(chess.Color, chess.Square) (chess.PieceType, bool) {
	return chess.Queen, true
}

// Promote returns a chooser that answers with t.
func Promote(t chess.PieceType) PromotionChooser {
	return func(chess.Color, chess.Square) (chess.PieceType, bool) {
		return t, t != ""
	}
}

// Result describes a committed move.
type Result struct {
	Move      chess.Move      `json:"move"`
	Piece     chess.Piece     `json:"piece"`
	Captured  chess.Piece     `json:"captured"`
	Promotion chess.PieceType `json:"promotion,omitempty"`
}

func (r Result) IsCapture() bool    { return !r.Captured.IsZero() }
func (r Result) IsPawnMove() bool   { return r.Piece.Type == chess.Pawn }
func (r Result) KingCaptured() bool { return r.Captured.Type == chess.King }

// ResetsClock reports whether the move resets the half-move clock.
func (r Result) ResetsClock() bool {
	return r.IsPawnMove() || r.IsCapture()
}

// NextHalfMoveClock advances the fifty-move counter past r.
func NextHalfMoveClock(prev int, r Result) int {
	if r.ResetsClock() {
		return 0
	}
	return prev + 1
}

// NeedsPromotion reports whether m takes a pawn to its last row.
func NeedsPromotion(pos *chess.Position, m chess.Move) bool {
	piece, ok := pos.Get(m.FromRow, m.FromCol)
	return ok && piece.Type == chess.Pawn && m.ToRow == piece.Color.LastRow()
}

// Commit plays m on pos. Legality is the caller's responsibility. When the
// move promotes, choose is asked for the new piece type before anything is
// changed; if it declines or names a type a pawn cannot become, Commit
// reports false and pos is left untouched.
func Commit(pos *chess.Position, m chess.Move, choose PromotionChooser) (Result, bool) {
	piece, ok := pos.Get(m.FromRow, m.FromCol)
	if !ok || !m.To().InBounds() {
		return Result{}, false
	}

	var promotion chess.PieceType
	if NeedsPromotion(pos, m) {
		if choose == nil {
			return Result{}, false
		}
		t, ok := choose(piece.Color, m.To())
		if !ok || !t.PromotionChoice() {
			return Result{}, false
		}
		promotion = t
	}

	captured := pos.Apply(m)
	if promotion != "" {
		pos.Set(m.ToRow, m.ToCol, chess.NewPiece(piece.Color, promotion))
	}
	return Result{Move: m, Piece: piece, Captured: captured, Promotion: promotion}, true
}
