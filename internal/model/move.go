package model

import (
	"fmt"

	"github.com/benbeisheim/chess-arena/internal/chess"
)

// WSMove is a move as sent by a client. Promotion may be left empty, in which
// case a promoting move waits for ResolvePromotion.
type WSMove struct {
	From      chess.Square    `json:"from"`
	To        chess.Square    `json:"to"`
	Promotion chess.PieceType `json:"promotion"`
}

func (m WSMove) Move() chess.Move {
	return chess.NewMove(m.From, m.To)
}

// Ply is one half-move of the history.
type Ply struct {
	Piece         chess.Piece     `json:"piece"`
	From          chess.Square    `json:"from"`
	To            chess.Square    `json:"to"`
	CapturedPiece *chess.Piece    `json:"capturedPiece"`
	Promotion     chess.PieceType `json:"promotion"`
	Notation      string          `json:"notation"`
	Computer      bool            `json:"computer"`
}

// Move pairs White's ply with Black's reply. WhitePly is nil for a history
// that starts with Black to move.
type Move struct {
	WhitePly *Ply `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

type SimpleMove struct {
	From chess.Square `json:"from"`
	To   chess.Square `json:"to"`
}

func newSimpleMove(m chess.Move) SimpleMove {
	return SimpleMove{From: m.From(), To: m.To()}
}

func simpleMoves(moves []chess.Move) []SimpleMove {
	out := make([]SimpleMove, len(moves))
	for i, m := range moves {
		out[i] = newSimpleMove(m)
	}
	return out
}

// notation writes the move in short algebraic form without disambiguation.
// It must be called before the move is applied.
func notation(pos *chess.Position, m chess.Move, promotion chess.PieceType) string {
	piece, _ := pos.Get(m.FromRow, m.FromCol)
	capture := ""
	if _, ok := pos.Get(m.ToRow, m.ToCol); ok {
		capture = "x"
	}
	pawnFile := ""
	if piece.Type == chess.Pawn && m.FromCol != m.ToCol {
		pawnFile = m.From().File()
	}
	suffix := ""
	if promotion != "" {
		suffix = "=" + promotion.Notation()
	}
	return fmt.Sprintf("%s%s%s%s%s", piece.Type.Notation(), pawnFile, capture, m.To().Notation(), suffix)
}
