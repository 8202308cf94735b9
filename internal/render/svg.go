// Package render draws positions as SVG images.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/benbeisheim/chess-arena/internal/chess"
)

const (
	squareSize = 60
	margin     = 20
	boardSize  = 8 * squareSize
)

// Options control what is highlighted on the board.
type Options struct {
	// Flip draws the board from Black's side.
	Flip bool
	// LastMove is highlighted when set.
	LastMove *chess.Move
	// Check marks the king of this color, if any.
	Check chess.Color
}

// SVG writes an image of pos to w.
func SVG(w io.Writer, pos *chess.Position, opts Options) {
	canvas := svg.New(w)
	canvas.Start(boardSize+2*margin, boardSize+2*margin)
	canvas.Rect(0, 0, boardSize+2*margin, boardSize+2*margin, "fill:#312e2b")

	var highlights map[chess.Square]bool
	if opts.LastMove != nil {
		highlights = map[chess.Square]bool{opts.LastMove.From(): true, opts.LastMove.To(): true}
	}
	var checked chess.Square
	inCheck := false
	if opts.Check != "" {
		checked, inCheck = pos.FindKing(opts.Check)
	}

	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			x, y := origin(row, col, opts.Flip)
			sq := chess.Square{Row: row, Col: col}
			canvas.Rect(x, y, squareSize, squareSize, "fill:"+squareColor(sq, highlights[sq], inCheck && sq == checked))

			if p, ok := pos.Get(row, col); ok {
				canvas.Text(x+squareSize/2, y+squareSize*3/4, p.Glyph(),
					"text-anchor:middle;font-size:44px;font-family:sans-serif;fill:#000")
			}
		}
	}
	drawCoordinates(canvas, opts.Flip)
	canvas.End()
}

func origin(row, col int, flip bool) (int, int) {
	if flip {
		row, col = 7-row, 7-col
	}
	return margin + col*squareSize, margin + row*squareSize
}

func squareColor(sq chess.Square, highlighted, checked bool) string {
	switch {
	case checked:
		return "#e06666"
	case highlighted:
		return "#f6f669"
	case (sq.Row+sq.Col)%2 == 0:
		return "#f0d9b5"
	}
	return "#b58863"
}

func drawCoordinates(canvas *svg.SVG, flip bool) {
	style := "text-anchor:middle;font-size:12px;font-family:sans-serif;fill:#bababa"
	for i := 0; i < 8; i++ {
		sq := chess.Square{Row: i, Col: i}
		x, y := origin(i, i, flip)
		canvas.Text(x+squareSize/2, margin+boardSize+margin*3/4, sq.File(), style)
		canvas.Text(margin/2, y+squareSize/2+4, fmt.Sprint(8-i), style)
	}
}
