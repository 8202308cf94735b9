// Package chess holds the board data model shared by the rules engine, the
// game sessions and the renderers.
package chess

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Notation returns the SAN prefix for the piece type. Pawns have none.
func (t PieceType) Notation() string {
	switch t {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

// Valid reports whether t is one of the six piece types.
func (t PieceType) Valid() bool {
	switch t {
	case King, Queen, Rook, Bishop, Knight, Pawn:
		return true
	}
	return false
}

// PromotionChoice reports whether a pawn may be promoted to t.
func (t PieceType) PromotionChoice() bool {
	switch t {
	case Queen, Rook, Bishop, Knight:
		return true
	}
	return false
}

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) Valid() bool {
	return c == White || c == Black
}

// Forward is the row delta of a pawn advance. White moves toward row 0.
func (c Color) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

// PawnRow is the row pawns of color c start on.
func (c Color) PawnRow() int {
	if c == White {
		return 6
	}
	return 1
}

// LastRow is the row on which pawns of color c promote.
func (c Color) LastRow() int {
	if c == White {
		return 0
	}
	return 7
}

// Piece is an immutable color and type pair. The zero Piece marks an empty
// square.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

func NewPiece(c Color, t PieceType) Piece {
	return Piece{Type: t, Color: c}
}

func (p Piece) IsZero() bool {
	return p.Type == ""
}

// Letter returns the FEN letter of p: upper case for White, lower case for
// Black, '.' for an empty square.
func (p Piece) Letter() byte {
	var l byte
	switch p.Type {
	case King:
		l = 'K'
	case Queen:
		l = 'Q'
	case Rook:
		l = 'R'
	case Bishop:
		l = 'B'
	case Knight:
		l = 'N'
	case Pawn:
		l = 'P'
	default:
		return '.'
	}
	if p.Color == Black {
		l += 'a' - 'A'
	}
	return l
}

var (
	whiteGlyphs = map[PieceType]string{King: "♔", Queen: "♕", Rook: "♖", Bishop: "♗", Knight: "♘", Pawn: "♙"}
	blackGlyphs = map[PieceType]string{King: "♚", Queen: "♛", Rook: "♜", Bishop: "♝", Knight: "♞", Pawn: "♟"}
)

// Glyph returns the unicode chess symbol for p.
func (p Piece) Glyph() string {
	if p.Color == White {
		return whiteGlyphs[p.Type]
	}
	return blackGlyphs[p.Type]
}
