package chess

import "fmt"

// Square addresses a cell of the 8x8 grid. Row 0 is Black's back rank, row 7
// White's.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func InBounds(row, col int) bool {
	return row >= 0 && row < 8 && col >= 0 && col < 8
}

func (s Square) InBounds() bool {
	return InBounds(s.Row, s.Col)
}

// Notation returns the algebraic name of the square, e.g. "e4".
func (s Square) Notation() string {
	return fmt.Sprintf("%c%d", s.Col+'a', 8-s.Row)
}

// File returns the file letter of the square.
func (s Square) File() string {
	return fmt.Sprintf("%c", s.Col+'a')
}

// ParseSquare converts an algebraic square name into a Square.
func ParseSquare(name string) (Square, error) {
	if len(name) != 2 {
		return Square{}, fmt.Errorf("invalid square %q", name)
	}
	sq := Square{Row: 8 - int(name[1]-'0'), Col: int(name[0] - 'a')}
	if !sq.InBounds() {
		return Square{}, fmt.Errorf("invalid square %q", name)
	}
	return sq, nil
}
