package engine

import "github.com/benbeisheim/chess-arena/internal/chess"

// Weights are the material values and the check penalty used by Evaluate.
type Weights struct {
	Pawn, Knight, Bishop, Rook, Queen, King int
	CheckPenalty                            int
}

var (
	// LightWeights are used by the shallow minimax tier.
	LightWeights = Weights{Pawn: 1, Knight: 3, Bishop: 3, Rook: 5, Queen: 9, King: 100, CheckPenalty: 50}
	// HeavyWeights are used by the alpha-beta tiers.
	HeavyWeights = Weights{Pawn: 1, Knight: 3, Bishop: 3, Rook: 5, Queen: 9, King: 1000, CheckPenalty: 500}
)

func (w Weights) value(t chess.PieceType) int {
	switch t {
	case chess.Pawn:
		return w.Pawn
	case chess.Knight:
		return w.Knight
	case chess.Bishop:
		return w.Bishop
	case chess.Rook:
		return w.Rook
	case chess.Queen:
		return w.Queen
	case chess.King:
		return w.King
	}
	return 0
}

// Evaluate returns White's material minus Black's, less the check penalty
// for whichever side is currently in check. Positive favours White.
func Evaluate(pos *chess.Position, w Weights) int {
	score := 0
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece, ok := pos.Get(row, col)
			if !ok {
				continue
			}
			if piece.Color == chess.White {
				score += w.value(piece.Type)
			} else {
				score -= w.value(piece.Type)
			}
		}
	}
	if InCheck(pos, chess.White) {
		score -= w.CheckPenalty
	}
	if InCheck(pos, chess.Black) {
		score += w.CheckPenalty
	}
	return score
}
