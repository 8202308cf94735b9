package chess

import "strings"

// Position is the 8x8 grid of pieces. It is a plain value: copying a
// Position copies the whole board.
type Position struct {
	cells [8][8]Piece
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewPosition returns the standard initial layout with Black on rows 0-1 and
// White on rows 6-7.
func NewPosition() *Position {
	p := &Position{}
	for col, t := range backRank {
		p.cells[0][col] = NewPiece(Black, t)
		p.cells[1][col] = NewPiece(Black, Pawn)
		p.cells[6][col] = NewPiece(White, Pawn)
		p.cells[7][col] = NewPiece(White, t)
	}
	return p
}

// FromGrid builds a Position from an externally supplied grid. Nil entries
// are empty squares and cells outside 8x8 are ignored. The grid is not
// checked for well-formedness; a missing king is the caller's concern.
func FromGrid(grid [][]*Piece) *Position {
	p := &Position{}
	for row := range grid {
		for col, piece := range grid[row] {
			if piece != nil {
				p.Set(row, col, *piece)
			}
		}
	}
	return p
}

// Get returns the piece on (row, col). Out-of-range coordinates and empty
// squares both report false.
func (p *Position) Get(row, col int) (Piece, bool) {
	if !InBounds(row, col) {
		return Piece{}, false
	}
	piece := p.cells[row][col]
	return piece, !piece.IsZero()
}

// Set places piece on (row, col); the zero Piece empties the square.
// Out-of-range coordinates are ignored.
func (p *Position) Set(row, col int, piece Piece) {
	if !InBounds(row, col) {
		return
	}
	p.cells[row][col] = piece
}

func (p *Position) Clear(row, col int) {
	p.Set(row, col, Piece{})
}

// MovePiece relocates whatever occupies the source square to the destination,
// overwriting it, and returns the overwritten piece. No legality is checked.
func (p *Position) MovePiece(fromRow, fromCol, toRow, toCol int) Piece {
	if !InBounds(fromRow, fromCol) || !InBounds(toRow, toCol) {
		return Piece{}
	}
	captured := p.cells[toRow][toCol]
	p.cells[toRow][toCol] = p.cells[fromRow][fromCol]
	p.cells[fromRow][fromCol] = Piece{}
	return captured
}

// Apply executes m with MovePiece.
func (p *Position) Apply(m Move) Piece {
	return p.MovePiece(m.FromRow, m.FromCol, m.ToRow, m.ToCol)
}

func (p *Position) Clone() *Position {
	c := *p
	return &c
}

// FindKing scans the board for the king of color c.
func (p *Position) FindKing(c Color) (Square, bool) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p.cells[row][col] == (Piece{Type: King, Color: c}) {
				return Square{Row: row, Col: col}, true
			}
		}
	}
	return Square{}, false
}

// Grid returns a copy of the board as rows of nullable pieces.
func (p *Position) Grid() [][]*Piece {
	grid := make([][]*Piece, 8)
	for row := range grid {
		grid[row] = make([]*Piece, 8)
		for col := range grid[row] {
			if piece := p.cells[row][col]; !piece.IsZero() {
				grid[row][col] = &piece
			}
		}
	}
	return grid
}

// String draws the board with FEN letters, row 0 first.
func (p *Position) String() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sb.WriteByte(p.cells[row][col].Letter())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
