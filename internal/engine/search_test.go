package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/benbeisheim/chess-arena/internal/chess"
)

func TestDifficultyTiers(t *testing.T) {
	tests := []struct {
		d        Difficulty
		clamped  Difficulty
		strategy Strategy
		depth    int
		weights  Weights
	}{
		{-3, Random, StrategyRandom, 0, LightWeights},
		{Random, Random, StrategyRandom, 0, LightWeights},
		{Easy, Easy, StrategyMinimax, 2, LightWeights},
		{Medium, Medium, StrategyAlphaBeta, 3, HeavyWeights},
		{Hard, Hard, StrategyParallelAlphaBeta, 4, HeavyWeights},
		{Expert, Expert, StrategyParallelAlphaBeta, 5, HeavyWeights},
		{42, Expert, StrategyParallelAlphaBeta, 5, HeavyWeights},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			if got := tt.d.Clamp(); got != tt.clamped {
				t.Errorf("Clamp() = %v, want %v", got, tt.clamped)
			}
			if got := tt.d.Strategy(); got != tt.strategy {
				t.Errorf("Strategy() = %v, want %v", got, tt.strategy)
			}
			if got := tt.d.Depth(); got != tt.depth {
				t.Errorf("Depth() = %d, want %d", got, tt.depth)
			}
			if got := tt.d.Weights(); got != tt.weights {
				t.Errorf("Weights() = %+v, want %+v", got, tt.weights)
			}
		})
	}
}

func TestSelectMoveNoLegalMoves(t *testing.T) {
	s := NewSearcher()
	for d := Random; d <= Expert; d++ {
		if _, ok := s.SelectMove(chess.NewPosition(), nil, d, true); ok {
			t.Errorf("%v: SelectMove with no legal moves reported ok", d)
		}
	}
}

func TestSelectMoveRandomSingleChoice(t *testing.T) {
	s := NewSearcher(WithRand(rand.New(rand.NewPCG(1, 2))))
	only := mustMove(t, "e2e4")
	for i := 0; i < 10; i++ {
		got, ok := s.SelectMove(chess.NewPosition(), []chess.Move{only}, Random, true)
		if !ok || !got.SameSquares(only) {
			t.Fatalf("SelectMove() = %v, %v; want %v", got, ok, only)
		}
	}
}

func TestSelectMoveRandomIsSeeded(t *testing.T) {
	pos := chess.NewPosition()
	legal := LegalMoves(pos, chess.White)
	pick := func() []string {
		s := NewSearcher(WithRand(rand.New(rand.NewPCG(7, 7))))
		var out []string
		for i := 0; i < 8; i++ {
			m, _ := s.SelectMove(pos, legal, Random, true)
			out = append(out, m.String())
		}
		return out
	}
	if diff := cmp.Diff(pick(), pick()); diff != "" {
		t.Errorf("same seed gave different picks (-first +second):\n%s", diff)
	}
}

func TestSelectMoveReturnsLegalMove(t *testing.T) {
	s := mustFEN(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	legal := LegalMoves(s.Position, chess.White)
	searcher := NewSearcher(WithWorkers(3))
	for d := Random; d <= Expert; d++ {
		t.Run(d.String(), func(t *testing.T) {
			before := s.Position.String()
			m, ok := searcher.SelectMove(s.Position, legal, d, true)
			if !ok {
				t.Fatal("SelectMove() reported no move")
			}
			if !chess.ContainsMove(legal, m) {
				t.Errorf("SelectMove() = %v, not among the legal moves", m)
			}
			if got := s.Position.String(); got != before {
				t.Errorf("search mutated the root position:\n%s", got)
			}
		})
	}
}

func TestSelectMoveTakesHangingQueen(t *testing.T) {
	s := mustFEN(t, "q7/8/7k/8/8/8/8/R5K1 w - - 0 1")
	legal := LegalMoves(s.Position, chess.White)
	for d := Easy; d <= Expert; d++ {
		t.Run(d.String(), func(t *testing.T) {
			m, ok := NewSearcher(WithWorkers(2)).SelectMove(s.Position, legal, d, true)
			if !ok || m.String() != "a1a8" {
				t.Errorf("SelectMove() = %v, want a1a8", m)
			}
		})
	}
}

func TestSelectMoveBlackMinimizes(t *testing.T) {
	s := mustFEN(t, "r5k1/8/8/8/8/7K/8/Q7 b - - 0 1")
	legal := LegalMoves(s.Position, chess.Black)
	m, ok := NewSearcher().SelectMove(s.Position, legal, Easy, false)
	if !ok || m.String() != "a8a1" {
		t.Errorf("SelectMove() = %v, want a8a1", m)
	}
}

func TestPruningDoesNotChangeResult(t *testing.T) {
	fens := []string{
		"4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1",
		"q7/8/7k/8/8/8/8/R5K1 w - - 0 1",
		"r5k1/8/8/8/8/7K/8/Q7 b - - 0 1",
		"4k3/8/8/8/8/8/3q4/R3K3 w - - 0 1",
	}
	var s Searcher
	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			st := mustFEN(t, fen)
			legal := LegalMoves(st.Position, st.ToMove)
			for _, d := range []Difficulty{Easy, Medium} {
				plain := s.searchRoot(st.Position, legal, d, st.ToMove, false)
				pruned := s.searchRoot(st.Position, legal, d, st.ToMove, true)
				if diff := cmp.Diff(plain, pruned); diff != "" {
					t.Errorf("depth %d: alpha-beta differs from minimax (-minimax +alphabeta):\n%s", d.Depth(), diff)
				}
			}
		})
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	fens := []string{
		"4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1",
		"q7/8/7k/8/8/8/8/R5K1 w - - 0 1",
		"r5k1/8/8/8/8/7K/8/Q7 b - - 0 1",
	}
	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			st := mustFEN(t, fen)
			legal := LegalMoves(st.Position, st.ToMove)
			for _, d := range []Difficulty{Medium, Expert} {
				seq := NewSearcher().searchRoot(st.Position, legal, d, st.ToMove, true)
				for _, workers := range []int{1, 4} {
					par := NewSearcher(WithWorkers(workers)).searchParallel(st.Position, legal, d, st.ToMove)
					if !seq.SameSquares(par) || seq.Score != par.Score {
						t.Errorf("%s workers=%d: parallel = %v (%d), sequential = %v (%d)", d, workers, par, par.Score, seq, seq.Score)
					}
				}
			}
		})
	}
}

func TestRootResultsTieBreak(t *testing.T) {
	legal := []chess.Move{mustMove(t, "a2a3"), mustMove(t, "b2b3"), mustMove(t, "c2c3")}
	r := newRootResults(len(legal))
	r.record(2, 5)
	r.record(1, 5)
	r.record(0, 1)

	if got := r.best(legal, true); got.String() != "b2b3" || got.Score != 5 {
		t.Errorf("best(max) = %v (%d), want b2b3 (5)", got, got.Score)
	}
	if got := r.best(legal, false); got.String() != "a2a3" || got.Score != 1 {
		t.Errorf("best(min) = %v (%d), want a2a3 (1)", got, got.Score)
	}
}
