package engine

import (
	"math"
	"math/rand/v2"
	"runtime"
	"sync"

	"github.com/benbeisheim/chess-arena/internal/chess"
)

const (
	minScore = math.MinInt
	maxScore = math.MaxInt
)

// Searcher picks moves for the computer opponent. A Searcher is safe for
// concurrent use.
type Searcher struct {
	workers int

	mu  sync.Mutex
	rng *rand.Rand
}

type SearcherOption func(*Searcher)

// WithWorkers bounds the goroutines used by the parallel tiers.
func WithWorkers(n int) SearcherOption {
	return func(s *Searcher) {
		if n >= 1 {
			s.workers = n
		}
	}
}

// WithRand sets the random source of the Random tier.
func WithRand(r *rand.Rand) SearcherOption {
	return func(s *Searcher) {
		s.rng = r
	}
}

func NewSearcher(opts ...SearcherOption) *Searcher {
	s := &Searcher{workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SelectMove chooses one of legal for the side to move, which is White when
// maximizingIsWhite is set. The returned move carries its search score. It
// reports false only when legal is empty.
func (s *Searcher) SelectMove(pos *chess.Position, legal []chess.Move, d Difficulty, maximizingIsWhite bool) (chess.Move, bool) {
	if len(legal) == 0 {
		return chess.Move{}, false
	}
	toMove := chess.Black
	if maximizingIsWhite {
		toMove = chess.White
	}

	switch d.Strategy() {
	case StrategyRandom:
		return legal[s.intN(len(legal))], true
	case StrategyMinimax:
		return s.searchRoot(pos, legal, d, toMove, false), true
	case StrategyAlphaBeta:
		return s.searchRoot(pos, legal, d, toMove, true), true
	}
	return s.searchParallel(pos, legal, d, toMove), true
}

func (s *Searcher) intN(n int) int {
	if s.rng == nil {
		return rand.IntN(n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// searchRoot runs the sequential tiers. The first move reaching the best
// score is kept.
func (s *Searcher) searchRoot(pos *chess.Position, legal []chess.Move, d Difficulty, toMove chess.Color, prune bool) chess.Move {
	w := d.Weights()
	maximizing := toMove == chess.White
	alpha, beta := minScore, maxScore

	var best chess.Move
	found := false
	for _, m := range legal {
		child := pos.Clone()
		child.Apply(m)

		var score int
		if prune {
			score = alphaBeta(child, d.Depth()-1, alpha, beta, toMove.Opposite(), w)
		} else {
			score = minimax(child, d.Depth()-1, toMove.Opposite(), w)
		}
		m.Score = score

		if !found || better(score, best.Score, maximizing) {
			best, found = m, true
		}
		if prune {
			if maximizing && best.Score > alpha {
				alpha = best.Score
			}
			if !maximizing && best.Score < beta {
				beta = best.Score
			}
		}
	}
	return best
}

func better(score, best int, maximizing bool) bool {
	if maximizing {
		return score > best
	}
	return score < best
}

// minimax scores pos with toMove to play, depth plies deep.
func minimax(pos *chess.Position, depth int, toMove chess.Color, w Weights) int {
	if depth <= 0 {
		return Evaluate(pos, w)
	}
	moves := LegalMoves(pos, toMove)
	if len(moves) == 0 {
		return Evaluate(pos, w)
	}

	maximizing := toMove == chess.White
	best := maxScore
	if maximizing {
		best = minScore
	}
	for _, m := range moves {
		child := pos.Clone()
		child.Apply(m)
		score := minimax(child, depth-1, toMove.Opposite(), w)
		if better(score, best, maximizing) {
			best = score
		}
	}
	return best
}

// alphaBeta is minimax with pruning once beta <= alpha.
func alphaBeta(pos *chess.Position, depth, alpha, beta int, toMove chess.Color, w Weights) int {
	if depth <= 0 {
		return Evaluate(pos, w)
	}
	moves := LegalMoves(pos, toMove)
	if len(moves) == 0 {
		return Evaluate(pos, w)
	}

	if toMove == chess.White {
		best := minScore
		for _, m := range moves {
			child := pos.Clone()
			child.Apply(m)
			best = max(best, alphaBeta(child, depth-1, alpha, beta, chess.Black, w))
			alpha = max(alpha, best)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := maxScore
	for _, m := range moves {
		child := pos.Clone()
		child.Apply(m)
		best = min(best, alphaBeta(child, depth-1, alpha, beta, chess.White, w))
		beta = min(beta, best)
		if beta <= alpha {
			break
		}
	}
	return best
}

// Default is the Searcher used by the package-level SelectMove.
var Default = NewSearcher()

// SelectMove chooses a move with the Default searcher.
func SelectMove(pos *chess.Position, legal []chess.Move, d Difficulty, maximizingIsWhite bool) (chess.Move, bool) {
	return Default.SelectMove(pos, legal, d, maximizingIsWhite)
}
