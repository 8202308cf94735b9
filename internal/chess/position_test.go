package chess

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewPosition(t *testing.T) {
	p := NewPosition()
	want := "rnbqkbnr\npppppppp\n........\n........\n........\n........\nPPPPPPPP\nRNBQKBNR\n"
	if diff := cmp.Diff(want, p.String()); diff != "" {
		t.Errorf("NewPosition() mismatch (-want +got):\n%s", diff)
	}
	king, ok := p.FindKing(White)
	if !ok || king != (Square{Row: 7, Col: 4}) {
		t.Errorf("FindKing(White) = %v, %v, want e1", king, ok)
	}
}

func TestPositionOutOfRange(t *testing.T) {
	p := NewPosition()
	for _, sq := range []Square{{-1, 0}, {0, -1}, {8, 0}, {0, 8}} {
		if piece, ok := p.Get(sq.Row, sq.Col); ok || !piece.IsZero() {
			t.Errorf("Get(%d, %d) = %v, %v, want empty", sq.Row, sq.Col, piece, ok)
		}
		p.Set(sq.Row, sq.Col, NewPiece(White, Queen))
	}
	before := p.String()
	if captured := p.MovePiece(6, 4, 9, 4); !captured.IsZero() {
		t.Errorf("MovePiece off board captured %v", captured)
	}
	if got := p.String(); got != before {
		t.Errorf("out-of-range operations changed the board:\n%s", got)
	}
}

func TestCloneDoesNotShareState(t *testing.T) {
	p := NewPosition()
	before := p.String()

	c := p.Clone()
	c.MovePiece(6, 4, 4, 4)
	c.Clear(0, 0)

	if got := p.String(); got != before {
		t.Errorf("original mutated through clone:\n%s", got)
	}
	if _, ok := c.Get(4, 4); !ok {
		t.Error("clone did not receive the move")
	}
}

func TestMovePieceCaptures(t *testing.T) {
	p := &Position{}
	p.Set(4, 4, NewPiece(White, Rook))
	p.Set(0, 4, NewPiece(Black, Knight))

	captured := p.MovePiece(4, 4, 0, 4)
	if captured != NewPiece(Black, Knight) {
		t.Errorf("MovePiece captured = %v, want black knight", captured)
	}
	if got, _ := p.Get(0, 4); got != NewPiece(White, Rook) {
		t.Errorf("Get(0, 4) = %v, want white rook", got)
	}
	if _, ok := p.Get(4, 4); ok {
		t.Error("source square still occupied")
	}
}

func TestFindKingMissing(t *testing.T) {
	p := &Position{}
	p.Set(3, 3, NewPiece(Black, King))
	if _, ok := p.FindKing(White); ok {
		t.Error("FindKing(White) found a king on a board without one")
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		in      string
		want    Move
		wantErr bool
	}{
		{"e2e4", Move{FromRow: 6, FromCol: 4, ToRow: 4, ToCol: 4}, false},
		{"g8f6", Move{FromRow: 0, FromCol: 6, ToRow: 2, ToCol: 5}, false},
		{"a7a8q", Move{FromRow: 1, FromCol: 0, ToRow: 0, ToCol: 0}, false},
		{"e9e4", Move{}, true},
		{"e2", Move{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMove(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMove(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseMove(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}
