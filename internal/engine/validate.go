package engine

import "github.com/benbeisheim/chess-arena/internal/chess"

// IsValidMove reports whether mover may move the piece on (fromRow, fromCol)
// to (toRow, toCol). The position is never modified; self-check is detected
// by playing the move on a scratch clone.
func IsValidMove(pos *chess.Position, fromRow, fromCol, toRow, toCol int, mover chess.Color) bool {
	if !chess.InBounds(toRow, toCol) {
		return false
	}
	piece, ok := pos.Get(fromRow, fromCol)
	if !ok || piece.Color != mover {
		return false
	}
	if target, ok := pos.Get(toRow, toCol); ok && target.Color == mover {
		return false
	}
	if !validShape(pos, piece, fromRow, fromCol, toRow, toCol) {
		return false
	}

	scratch := pos.Clone()
	scratch.MovePiece(fromRow, fromCol, toRow, toCol)
	if InCheck(scratch, mover) {
		return false
	}

	// Checked against the original board as well; the clone test above
	// already covers it for every reachable position.
	if piece.Type == chess.King && IsSquareAttacked(pos, toRow, toCol, mover.Opposite()) {
		return false
	}
	return true
}

// validShape applies the per-piece movement rules, including path blocking,
// without looking at king safety.
func validShape(pos *chess.Position, piece chess.Piece, fromRow, fromCol, toRow, toCol int) bool {
	dr, dc := toRow-fromRow, toCol-fromCol
	adr, adc := abs(dr), abs(dc)
	if adr == 0 && adc == 0 {
		return false
	}

	switch piece.Type {
	case chess.Pawn:
		return validPawnShape(pos, piece.Color, fromRow, fromCol, toRow, toCol)
	case chess.Knight:
		return (adr == 2 && adc == 1) || (adr == 1 && adc == 2)
	case chess.Bishop:
		return adr == adc && pathClear(pos, fromRow, fromCol, toRow, toCol)
	case chess.Rook:
		return (dr == 0 || dc == 0) && pathClear(pos, fromRow, fromCol, toRow, toCol)
	case chess.Queen:
		return (adr == adc || dr == 0 || dc == 0) && pathClear(pos, fromRow, fromCol, toRow, toCol)
	case chess.King:
		return adr <= 1 && adc <= 1
	}
	return false
}

func validPawnShape(pos *chess.Position, c chess.Color, fromRow, fromCol, toRow, toCol int) bool {
	forward := c.Forward()
	dr, dc := toRow-fromRow, toCol-fromCol
	_, occupied := pos.Get(toRow, toCol)

	switch {
	case dc == 0 && dr == forward:
		return !occupied
	case dc == 0 && dr == 2*forward:
		if fromRow != c.PawnRow() || occupied {
			return false
		}
		_, blocked := pos.Get(fromRow+forward, fromCol)
		return !blocked
	case abs(dc) == 1 && dr == forward:
		target, ok := pos.Get(toRow, toCol)
		return ok && target.Color == c.Opposite()
	}
	return false
}

// pathClear reports whether every square strictly between the two squares
// of a straight or diagonal line is empty.
func pathClear(pos *chess.Position, fromRow, fromCol, toRow, toCol int) bool {
	stepR, stepC := sign(toRow-fromRow), sign(toCol-fromCol)
	r, c := fromRow+stepR, fromCol+stepC
	for r != toRow || c != toCol {
		if _, ok := pos.Get(r, c); ok {
			return false
		}
		r, c = r+stepR, c+stepC
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
