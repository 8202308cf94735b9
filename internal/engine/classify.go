package engine

import "github.com/benbeisheim/chess-arena/internal/chess"

// FiftyMoveLimit is the half-move clock value at which the game is drawn.
const FiftyMoveLimit = 100

// Classify decides whether the game is over with toMove to play. A side
// without a king is outside the rules and always classifies as in progress.
func Classify(pos *chess.Position, toMove chess.Color, halfMoveClock int) chess.Outcome {
	king, ok := pos.FindKing(toMove)
	if !ok {
		return chess.Outcome{}
	}
	if !HasLegalMoves(pos, toMove) {
		if IsSquareAttacked(pos, king.Row, king.Col, toMove.Opposite()) {
			return chess.Outcome{Kind: chess.OutcomeCheckmate, Winner: toMove.Opposite()}
		}
		return chess.Outcome{Kind: chess.OutcomeStalemate}
	}
	if halfMoveClock >= FiftyMoveLimit {
		return chess.Outcome{Kind: chess.OutcomeDraw}
	}
	return chess.Outcome{}
}

// KingCapturedOutcome reports a win for the mover when the move took a king.
// Legal moves never capture a king, so this only fires on boards assembled
// outside the rules; it is kept alongside checkmate detection.
func KingCapturedOutcome(r Result) (chess.Outcome, bool) {
	if !r.KingCaptured() {
		return chess.Outcome{}, false
	}
	return chess.Outcome{Kind: chess.OutcomeKingCaptured, Winner: r.Piece.Color}, true
}
