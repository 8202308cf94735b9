// Package setup loads positions from FEN text. It is the injection point for
// positions that do not start from the standard layout.
package setup

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/benbeisheim/chess-arena/internal/chess"
	notnil "github.com/notnil/chess"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

var ErrInvalidFEN = errors.New("invalid FEN")

// Setup is a loaded position together with the side to move and the
// half-move clock. Castling rights and en-passant squares are read but
// discarded.
type Setup struct {
	Position      *chess.Position
	ToMove        chess.Color
	HalfMoveClock int
}

var pieceTypes = map[notnil.PieceType]chess.PieceType{
	notnil.King:   chess.King,
	notnil.Queen:  chess.Queen,
	notnil.Rook:   chess.Rook,
	notnil.Bishop: chess.Bishop,
	notnil.Knight: chess.Knight,
	notnil.Pawn:   chess.Pawn,
}

// Load wraps an externally supplied grid, such as a saved game, with the side
// to move. Like FromGrid it does not check the grid for missing kings.
func Load(grid [][]*chess.Piece, toMove chess.Color) Setup {
	if !toMove.Valid() {
		toMove = chess.White
	}
	return Setup{Position: chess.FromGrid(grid), ToMove: toMove}
}

// ParseFEN reads a FEN record. The clock fields may be omitted.
func ParseFEN(fen string) (Setup, error) {
	fields := strings.Fields(fen)
	switch len(fields) {
	case 4:
		fields = append(fields, "0", "1")
	case 5:
		fields = append(fields, "1")
	case 6:
	default:
		return Setup{}, fmt.Errorf("%w: expected 4 to 6 fields, got %d", ErrInvalidFEN, len(fields))
	}
	halfMove, err := strconv.Atoi(fields[4])
	if err != nil || halfMove < 0 {
		return Setup{}, fmt.Errorf("%w: bad half-move clock %q", ErrInvalidFEN, fields[4])
	}

	opt, err := notnil.FEN(strings.Join(fields, " "))
	if err != nil {
		return Setup{}, fmt.Errorf("%w: %w", ErrInvalidFEN, err)
	}
	game := notnil.NewGame(opt)
	board := game.Position().Board()

	pos := &chess.Position{}
	for sq := notnil.A1; sq <= notnil.H8; sq++ {
		p := board.Piece(sq)
		if p == notnil.NoPiece {
			continue
		}
		color := chess.White
		if p.Color() == notnil.Black {
			color = chess.Black
		}
		pos.Set(7-int(sq.Rank()), int(sq.File()), chess.NewPiece(color, pieceTypes[p.Type()]))
	}

	toMove := chess.White
	if game.Position().Turn() == notnil.Black {
		toMove = chess.Black
	}
	return Setup{Position: pos, ToMove: toMove, HalfMoveClock: halfMove}, nil
}

var fenPieces = map[chess.Piece]notnil.Piece{
	chess.NewPiece(chess.White, chess.King):   notnil.WhiteKing,
	chess.NewPiece(chess.White, chess.Queen):  notnil.WhiteQueen,
	chess.NewPiece(chess.White, chess.Rook):   notnil.WhiteRook,
	chess.NewPiece(chess.White, chess.Bishop): notnil.WhiteBishop,
	chess.NewPiece(chess.White, chess.Knight): notnil.WhiteKnight,
	chess.NewPiece(chess.White, chess.Pawn):   notnil.WhitePawn,
	chess.NewPiece(chess.Black, chess.King):   notnil.BlackKing,
	chess.NewPiece(chess.Black, chess.Queen):  notnil.BlackQueen,
	chess.NewPiece(chess.Black, chess.Rook):   notnil.BlackRook,
	chess.NewPiece(chess.Black, chess.Bishop): notnil.BlackBishop,
	chess.NewPiece(chess.Black, chess.Knight): notnil.BlackKnight,
	chess.NewPiece(chess.Black, chess.Pawn):   notnil.BlackPawn,
}

// FEN writes the position as a FEN record with no castling rights and no
// en-passant square.
func FEN(pos *chess.Position, toMove chess.Color, halfMoveClock, moveNumber int) string {
	squares := map[notnil.Square]notnil.Piece{}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p, ok := pos.Get(row, col); ok {
				squares[notnil.Square((7-row)*8+col)] = fenPieces[p]
			}
		}
	}
	side := "w"
	if toMove == chess.Black {
		side = "b"
	}
	return fmt.Sprintf("%s %s - - %d %d", notnil.NewBoard(squares).String(), side, halfMoveClock, max(moveNumber, 1))
}
