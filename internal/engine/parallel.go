package engine

import (
	"sync"

	"github.com/benbeisheim/chess-arena/internal/chess"
)

// rootTask is one root move handed to a search worker.
type rootTask struct {
	index int
	move  chess.Move
}

// rootResults collects worker scores by root index, so the reduction does
// not depend on the order in which workers finish.
type rootResults struct {
	mu     sync.Mutex
	scores []int
}

func newRootResults(n int) *rootResults {
	return &rootResults{scores: make([]int, n)}
}

func (r *rootResults) record(index, score int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores[index] = score
}

// best reduces the recorded scores in generation order; the first move
// reaching the best score wins.
func (r *rootResults) best(legal []chess.Move, maximizing bool) chess.Move {
	r.mu.Lock()
	defer r.mu.Unlock()

	best := legal[0]
	best.Score = r.scores[0]
	for i := 1; i < len(legal); i++ {
		if better(r.scores[i], best.Score, maximizing) {
			best = legal[i]
			best.Score = r.scores[i]
		}
	}
	return best
}

// searchParallel scores every root move on its own worker. Each worker
// clones the root position before playing its move and runs a sequential
// full-window alpha-beta below it; only the root ply is parallel.
func (s *Searcher) searchParallel(pos *chess.Position, legal []chess.Move, d Difficulty, toMove chess.Color) chess.Move {
	w := d.Weights()
	depth := d.Depth() - 1
	results := newRootResults(len(legal))

	tasks := make(chan rootTask)
	var wg sync.WaitGroup
	for i := 0; i < min(s.workers, len(legal)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				child := pos.Clone()
				child.Apply(t.move)
				results.record(t.index, alphaBeta(child, depth, minScore, maxScore, toMove.Opposite(), w))
			}
		}()
	}

	for i, m := range legal {
		tasks <- rootTask{index: i, move: m}
	}
	close(tasks)
	wg.Wait()

	return results.best(legal, toMove == chess.White)
}
