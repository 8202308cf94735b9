package chess

type OutcomeKind string

const (
	OutcomeNone         OutcomeKind = ""
	OutcomeCheckmate    OutcomeKind = "checkmate"
	OutcomeStalemate    OutcomeKind = "stalemate"
	OutcomeDraw         OutcomeKind = "draw"
	OutcomeKingCaptured OutcomeKind = "kingCaptured"

	// Session results, decided outside the rules engine.
	OutcomeResignation OutcomeKind = "resignation"
	OutcomeAgreement   OutcomeKind = "agreement"
	OutcomeTimeout     OutcomeKind = "timeout"
)

// Outcome is the result of a game. Winner is empty for draws and for games
// still in progress.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Winner Color       `json:"winner,omitempty"`
}

func (o Outcome) Over() bool {
	return o.Kind != OutcomeNone
}

func (o Outcome) String() string {
	switch {
	case o.Kind == OutcomeNone:
		return "in progress"
	case o.Winner == "":
		return string(o.Kind)
	}
	return string(o.Kind) + ", " + string(o.Winner) + " wins"
}
