package engine

import "github.com/benbeisheim/chess-arena/internal/chess"

// LegalMoves returns every legal move for color c in row-major order of
// source square, then destination square. Search tie-breaks depend on this
// order.
func LegalMoves(pos *chess.Position, c chess.Color) []chess.Move {
	moves := []chess.Move{}
	for fromRow := 0; fromRow < 8; fromRow++ {
		for fromCol := 0; fromCol < 8; fromCol++ {
			piece, ok := pos.Get(fromRow, fromCol)
			if !ok || piece.Color != c {
				continue
			}
			moves = appendMovesFrom(moves, pos, fromRow, fromCol, c)
		}
	}
	return moves
}

// LegalMovesFrom returns the legal moves of the piece on the given square,
// for whichever side owns it.
func LegalMovesFrom(pos *chess.Position, from chess.Square) []chess.Move {
	piece, ok := pos.Get(from.Row, from.Col)
	if !ok {
		return []chess.Move{}
	}
	return appendMovesFrom([]chess.Move{}, pos, from.Row, from.Col, piece.Color)
}

// HasLegalMoves reports whether color c has at least one legal move.
func HasLegalMoves(pos *chess.Position, c chess.Color) bool {
	for fromRow := 0; fromRow < 8; fromRow++ {
		for fromCol := 0; fromCol < 8; fromCol++ {
			for toRow := 0; toRow < 8; toRow++ {
				for toCol := 0; toCol < 8; toCol++ {
					if IsValidMove(pos, fromRow, fromCol, toRow, toCol, c) {
						return true
					}
				}
			}
		}
	}
	return false
}

func appendMovesFrom(moves []chess.Move, pos *chess.Position, fromRow, fromCol int, c chess.Color) []chess.Move {
	for toRow := 0; toRow < 8; toRow++ {
		for toCol := 0; toCol < 8; toCol++ {
			if IsValidMove(pos, fromRow, fromCol, toRow, toCol, c) {
				moves = append(moves, chess.Move{FromRow: fromRow, FromCol: fromCol, ToRow: toRow, ToCol: toCol})
			}
		}
	}
	return moves
}
