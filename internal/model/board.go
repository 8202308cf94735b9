package model

import "github.com/benbeisheim/chess-arena/internal/chess"

// BoardState is the client view of a position.
type BoardState struct {
	Board             [][]*chess.Piece `json:"board"`
	BlackKingPosition *chess.Square    `json:"blackKingPosition"`
	WhiteKingPosition *chess.Square    `json:"whiteKingPosition"`
}

func newBoardState(pos *chess.Position) *BoardState {
	board := &BoardState{Board: pos.Grid()}
	if sq, ok := pos.FindKing(chess.White); ok {
		board.WhiteKingPosition = &sq
	}
	if sq, ok := pos.FindKing(chess.Black); ok {
		board.BlackKingPosition = &sq
	}
	return board
}

type CapturedPieces struct {
	White []chess.Piece `json:"white"`
	Black []chess.Piece `json:"black"`
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]chess.Piece, 0),
		Black: make([]chess.Piece, 0),
	}
}

// add records a piece taken by the capturing color.
func (c *CapturedPieces) add(by chess.Color, p chess.Piece) {
	if by == chess.White {
		c.White = append(c.White, p)
		return
	}
	c.Black = append(c.Black, p)
}
