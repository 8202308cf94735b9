package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/benbeisheim/chess-arena/internal/chess"
)

const promotionFEN = "4k3/1P6/8/8/8/8/6p1/4K3 w - - 0 1"

func TestCommitPromotion(t *testing.T) {
	tests := []struct {
		name   string
		move   string
		choose PromotionChooser
		ok     bool
		want   chess.Piece
	}{
		{"white to knight", "b7b8", Promote(chess.Knight), true, chess.NewPiece(chess.White, chess.Knight)},
		{"white auto queen", "b7b8", AutoQueen, true, chess.NewPiece(chess.White, chess.Queen)},
		{"black to rook", "g2g1", Promote(chess.Rook), true, chess.NewPiece(chess.Black, chess.Rook)},
		{"declined", "b7b8", func(chess.Color, chess.Square) (chess.PieceType, bool) { return "", false }, false, chess.Piece{}},
		{"no chooser", "b7b8", nil, false, chess.Piece{}},
		{"king is not a promotion", "b7b8", Promote(chess.King), false, chess.Piece{}},
		{"pawn is not a promotion", "b7b8", Promote(chess.Pawn), false, chess.Piece{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustFEN(t, promotionFEN)
			before := s.Position.String()
			m := mustMove(t, tt.move)

			r, ok := Commit(s.Position, m, tt.choose)
			if ok != tt.ok {
				t.Fatalf("Commit() ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				if got := s.Position.String(); got != before {
					t.Errorf("declined promotion changed the board:\n%s", got)
				}
				return
			}
			if got, _ := s.Position.Get(m.ToRow, m.ToCol); got != tt.want {
				t.Errorf("promoted piece = %v, want %v", got, tt.want)
			}
			if r.Promotion != tt.want.Type {
				t.Errorf("Result.Promotion = %v, want %v", r.Promotion, tt.want.Type)
			}
			if _, ok := s.Position.Get(m.FromRow, m.FromCol); ok {
				t.Error("source square still occupied")
			}
		})
	}
}

func TestCommitAsksChooserWithSquare(t *testing.T) {
	s := mustFEN(t, promotionFEN)
	var gotColor chess.Color
	var gotSquare chess.Square
	Commit(s.Position, mustMove(t, "g2g1"), func(c chess.Color, sq chess.Square) (chess.PieceType, bool) {
		gotColor, gotSquare = c, sq
		return chess.Queen, true
	})
	if gotColor != chess.Black || gotSquare != (chess.Square{Row: 7, Col: 6}) {
		t.Errorf("chooser called with %v %v, want black g1", gotColor, gotSquare)
	}
}

func TestCommitEmptySource(t *testing.T) {
	pos := chess.NewPosition()
	if _, ok := Commit(pos, mustMove(t, "e4e5"), AutoQueen); ok {
		t.Error("Commit from an empty square succeeded")
	}
}

func TestHalfMoveClock(t *testing.T) {
	pawn := chess.NewPiece(chess.White, chess.Pawn)
	knight := chess.NewPiece(chess.White, chess.Knight)
	tests := []struct {
		name string
		prev int
		r    Result
		want int
	}{
		{"quiet piece move", 7, Result{Piece: knight}, 8},
		{"pawn move resets", 7, Result{Piece: pawn}, 0},
		{"capture resets", 7, Result{Piece: knight, Captured: chess.NewPiece(chess.Black, chess.Bishop)}, 0},
		{"reaches limit", 99, Result{Piece: knight}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextHalfMoveClock(tt.prev, tt.r); got != tt.want {
				t.Errorf("NextHalfMoveClock(%d) = %d, want %d", tt.prev, got, tt.want)
			}
		})
	}
}

func TestFiftyMoveShuffle(t *testing.T) {
	s := mustFEN(t, "4k3/8/8/8/8/8/8/RN2K3 w - - 0 1")
	pos, toMove, clock := s.Position, s.ToMove, 0
	shuffle := map[chess.Color][]string{
		chess.White: {"b1c3", "c3b1"},
		chess.Black: {"e8d8", "d8e8"},
	}
	for ply := 0; ply < FiftyMoveLimit; ply++ {
		if got := Classify(pos, toMove, clock); got.Over() {
			t.Fatalf("game over at ply %d: %v", ply, got)
		}
		m := mustMove(t, shuffle[toMove][(ply/2)%2])
		r, ok := Commit(pos, m, nil)
		if !ok {
			t.Fatalf("Commit(%s) failed at ply %d", m, ply)
		}
		clock = NextHalfMoveClock(clock, r)
		toMove = toMove.Opposite()
	}
	want := chess.Outcome{Kind: chess.OutcomeDraw}
	if diff := cmp.Diff(want, Classify(pos, toMove, clock)); diff != "" {
		t.Errorf("Classify after 100 quiet plies mismatch (-want +got):\n%s", diff)
	}
}
