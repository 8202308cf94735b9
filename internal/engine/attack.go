// Package engine implements the chess rules and the computer opponent on top
// of the chess data model: attack detection, move validation and
// generation, end-of-game classification, material evaluation and the
// minimax / alpha-beta search.
package engine

import "github.com/benbeisheim/chess-arena/internal/chess"

type direction struct {
	dr, dc int
}

var (
	rookDirs   = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	knightDirs = []direction{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingDirs   = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// IsSquareAttacked reports whether any piece of color by attacks the square
// (row, col). It is the single attack test used for check detection and for
// keeping kings off attacked squares.
func IsSquareAttacked(pos *chess.Position, row, col int, by chess.Color) bool {
	// An attacking pawn sits one row behind the target relative to its own
	// direction of travel.
	pawnRow := row - by.Forward()
	for _, dc := range []int{-1, 1} {
		if isPiece(pos, pawnRow, col+dc, by, chess.Pawn) {
			return true
		}
	}
	for _, d := range knightDirs {
		if isPiece(pos, row+d.dr, col+d.dc, by, chess.Knight) {
			return true
		}
	}
	if rayAttacked(pos, row, col, by, rookDirs, chess.Rook) {
		return true
	}
	if rayAttacked(pos, row, col, by, bishopDirs, chess.Bishop) {
		return true
	}
	for _, d := range kingDirs {
		if isPiece(pos, row+d.dr, col+d.dc, by, chess.King) {
			return true
		}
	}
	return false
}

// rayAttacked walks each direction until the first occupied square, which
// attacks only if it is a slider of the matching type or a queen.
func rayAttacked(pos *chess.Position, row, col int, by chess.Color, dirs []direction, slider chess.PieceType) bool {
	for _, d := range dirs {
		r, c := row+d.dr, col+d.dc
		for chess.InBounds(r, c) {
			if piece, ok := pos.Get(r, c); ok {
				if piece.Color == by && (piece.Type == slider || piece.Type == chess.Queen) {
					return true
				}
				break
			}
			r, c = r+d.dr, c+d.dc
		}
	}
	return false
}

func isPiece(pos *chess.Position, row, col int, c chess.Color, t chess.PieceType) bool {
	piece, ok := pos.Get(row, col)
	return ok && piece.Color == c && piece.Type == t
}

// InCheck reports whether the king of color c is attacked. A board without
// that king is never in check.
func InCheck(pos *chess.Position, c chess.Color) bool {
	king, ok := pos.FindKing(c)
	if !ok {
		return false
	}
	return IsSquareAttacked(pos, king.Row, king.Col, c.Opposite())
}
