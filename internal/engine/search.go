// Package engine picks moves for the computer side with a fixed-depth
// minimax search and alpha-beta pruning.
package engine

import "github.com/benbeisheim/checkers-backend/internal/checkers"

const (
	DefaultDepth = 4

	scoreInf = 1 << 30
)

type Stats struct {
	Nodes   int `json:"nodes"`
	Cutoffs int `json:"cutoffs"`
}

type Result struct {
	Score int           `json:"score"`
	Move  checkers.Move `json:"move"`
	Found bool          `json:"found"`
	Stats Stats         `json:"stats"`
}

// Search runs alpha-beta from the point of view of side, which is to move on
// board. Scores are material from side's perspective, so the root always
// maximises. The board passed in is never modified.
func Search(board checkers.Board, depth int, side checkers.Side) Result {
	var stats Stats
	score, move, found := alphaBeta(&board, depth, side, side, -scoreInf, scoreInf, &stats)
	return Result{Score: score, Move: move, Found: found, Stats: stats}
}

// MiniMax is Search without pruning. It visits every node and returns the
// same score, which makes it the reference for alpha-beta.
func MiniMax(board checkers.Board, depth int, side checkers.Side) Result {
	var stats Stats
	score, move, found := miniMax(&board, depth, side, side, &stats)
	return Result{Score: score, Move: move, Found: found, Stats: stats}
}

// ChooseMove returns the Opponent's move for board, or false when the search
// stops before choosing one.
func ChooseMove(board checkers.Board, depth int) (checkers.Move, bool) {
	res := Search(board, depth, checkers.SideOpponent)
	return res.Move, res.Found
}

// terminal stops the search when the depth is used up or when either side is
// out of moves, whichever side is to move.
func terminal(b *checkers.Board, depth int) bool {
	return depth <= 0 || !checkers.HasMoves(b, checkers.SidePlayer) || !checkers.HasMoves(b, checkers.SideOpponent)
}

func evaluate(b *checkers.Board, perspective checkers.Side) int {
	score := checkers.Evaluate(b)
	if perspective == checkers.SideOpponent {
		return -score
	}
	return score
}

func alphaBeta(b *checkers.Board, depth int, perspective, toMove checkers.Side, alpha, beta int, stats *Stats) (int, checkers.Move, bool) {
	stats.Nodes++
	if terminal(b, depth) {
		return evaluate(b, perspective), checkers.Move{}, false
	}

	var best checkers.Move
	found := false
	if toMove == perspective {
		maxEval := -scoreInf
		for _, m := range checkers.MovesForSide(b, toMove) {
			child := *b
			checkers.ApplyMove(&child, m)
			eval, _, _ := alphaBeta(&child, depth-1, perspective, toMove.Other(), alpha, beta, stats)
			if eval > maxEval {
				maxEval, best, found = eval, m, true
			}
			alpha = max(alpha, eval)
			if beta <= alpha {
				stats.Cutoffs++
				break
			}
		}
		return maxEval, best, found
	}

	minEval := scoreInf
	for _, m := range checkers.MovesForSide(b, toMove) {
		child := *b
		checkers.ApplyMove(&child, m)
		eval, _, _ := alphaBeta(&child, depth-1, perspective, toMove.Other(), alpha, beta, stats)
		if eval < minEval {
			minEval, best, found = eval, m, true
		}
		beta = min(beta, eval)
		if beta <= alpha {
			stats.Cutoffs++
			break
		}
	}
	return minEval, best, found
}

func miniMax(b *checkers.Board, depth int, perspective, toMove checkers.Side, stats *Stats) (int, checkers.Move, bool) {
	stats.Nodes++
	if terminal(b, depth) {
		return evaluate(b, perspective), checkers.Move{}, false
	}

	maximizing := toMove == perspective
	bestEval := scoreInf
	if maximizing {
		bestEval = -scoreInf
	}
	var best checkers.Move
	found := false
	for _, m := range checkers.MovesForSide(b, toMove) {
		child := *b
		checkers.ApplyMove(&child, m)
		eval, _, _ := miniMax(&child, depth-1, perspective, toMove.Other(), stats)
		// Strict comparisons keep the first best move, as alphaBeta does.
		if (maximizing && eval > bestEval) || (!maximizing && eval < bestEval) {
			bestEval, best, found = eval, m, true
		}
	}
	return bestEval, best, found
}
