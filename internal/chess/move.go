package chess

import (
	"fmt"
	"strings"
)

// Move relocates a piece from one square to another. Score is filled in by
// the search and is not part of the move's identity.
type Move struct {
	FromRow int `json:"fromRow"`
	FromCol int `json:"fromCol"`
	ToRow   int `json:"toRow"`
	ToCol   int `json:"toCol"`
	Score   int `json:"score"`
}

func NewMove(from, to Square) Move {
	return Move{FromRow: from.Row, FromCol: from.Col, ToRow: to.Row, ToCol: to.Col}
}

func (m Move) From() Square { return Square{Row: m.FromRow, Col: m.FromCol} }
func (m Move) To() Square   { return Square{Row: m.ToRow, Col: m.ToCol} }

// SameSquares compares moves by their squares only, ignoring Score.
func (m Move) SameSquares(o Move) bool {
	return m.FromRow == o.FromRow && m.FromCol == o.FromCol && m.ToRow == o.ToRow && m.ToCol == o.ToCol
}

// String returns the move in long algebraic form, e.g. "e2e4".
func (m Move) String() string {
	return m.From().Notation() + m.To().Notation()
}

// ParseMove reads a long algebraic move such as "e2e4". A trailing
// promotion letter is accepted and ignored; promotion is chosen separately.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("invalid move %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %w", s, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %w", s, err)
	}
	return NewMove(from, to), nil
}

// ContainsMove reports whether moves holds a move with the same squares as m.
func ContainsMove(moves []Move, m Move) bool {
	for _, candidate := range moves {
		if candidate.SameSquares(m) {
			return true
		}
	}
	return false
}
