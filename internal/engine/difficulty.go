package engine

import "fmt"

// Difficulty selects the computer opponent's search strategy and depth.
type Difficulty int

const (
	Random Difficulty = iota + 1
	Easy
	Medium
	Hard
	Expert
)

// Strategy is the move-selection algorithm a difficulty maps to.
type Strategy int

const (
	StrategyRandom Strategy = iota
	StrategyMinimax
	StrategyAlphaBeta
	StrategyParallelAlphaBeta
)

func (s Strategy) String() string {
	switch s {
	case StrategyRandom:
		return "random"
	case StrategyMinimax:
		return "minimax"
	case StrategyAlphaBeta:
		return "alphabeta"
	case StrategyParallelAlphaBeta:
		return "parallel-alphabeta"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Clamp limits d to the supported range.
func (d Difficulty) Clamp() Difficulty {
	switch {
	case d < Random:
		return Random
	case d > Expert:
		return Expert
	}
	return d
}

// Depth is the number of plies searched, including the root move.
func (d Difficulty) Depth() int {
	d = d.Clamp()
	if d == Random {
		return 0
	}
	return int(d)
}

func (d Difficulty) Strategy() Strategy {
	switch d.Clamp() {
	case Random:
		return StrategyRandom
	case Easy:
		return StrategyMinimax
	case Medium:
		return StrategyAlphaBeta
	}
	return StrategyParallelAlphaBeta
}

func (d Difficulty) Weights() Weights {
	if d.Clamp() <= Easy {
		return LightWeights
	}
	return HeavyWeights
}

func (d Difficulty) String() string {
	switch d.Clamp() {
	case Random:
		return "random"
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return "expert"
}
