package engine

import (
	"testing"

	"github.com/benbeisheim/chess-arena/internal/chess"
	"github.com/benbeisheim/chess-arena/internal/setup"
)

// mustFEN loads a FEN record or fails the test.
func mustFEN(t testing.TB, fen string) setup.Setup {
	t.Helper()
	s, err := setup.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q) error: %v", fen, err)
	}
	return s
}

// mustMove parses a long algebraic move or fails the test.
func mustMove(t testing.TB, s string) chess.Move {
	t.Helper()
	m, err := chess.ParseMove(s)
	if err != nil {
		t.Fatalf("ParseMove(%q) error: %v", s, err)
	}
	return m
}

func moveStrings(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}
