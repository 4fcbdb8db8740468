// Package negamax implements the depth-limited search engine. It uses the
// move generator to enumerate candidates lazily and the equity calculator
// to score leaves.
package negamax

// thanks Wikipedia:
/*
function negamax(node, depth, α, β, color) is
    if depth = 0 or node is a terminal node then
        return color × the heuristic value of node
    ...
    foreach child in childNodes do
        value := max(value, −negamax(child, depth − 1, −β, −α, −color))
        α := max(α, value)
        if α ≥ β then
            break (* cut-off *)
    return value
*/

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/flanker/board"
	"github.com/domino14/flanker/equity"
	"github.com/domino14/flanker/move"
	"github.com/domino14/flanker/movegen"
	"github.com/domino14/flanker/zobrist"
)

const HugeNumber = float32(1e7)

var ErrNoMoves = errors.New("no moves to search")

// RootTask is one root-level candidate handed to the solver, tagged with
// its global enumeration index so results from split workers can be merged
// with a single stable tie-break order.
type RootTask struct {
	Move  move.Move
	Index int
}

// RootResult is the exact negamax score of one root move.
type RootResult struct {
	Move  move.Move
	Index int
	Score float32
}

func (r RootResult) String() string {
	// debug purposes only
	return fmt.Sprintf("<score: %f move: %s>", r.Score, r.Move.ShortDescription())
}

// Solver searches a position to a fixed depth. A Solver is owned by a
// single worker; it holds no shared mutable state, so independent solvers
// can run concurrently over the same (immutable) board.
type Solver struct {
	rootGen movegen.MoveGenerator
	calc    equity.Calculator

	zobrist                 *zobrist.Zobrist
	ttable                  *TranspositionTable
	transpositionTableOptim bool

	nodes uint64
}

// Init initializes the solver.
func (s *Solver) Init(gen movegen.MoveGenerator, calc equity.Calculator) error {
	if gen == nil || calc == nil {
		return errors.New("solver needs a move generator and a calculator")
	}
	s.rootGen = gen
	s.calc = calc
	return nil
}

// EnableTranspositionTable allocates a per-solver transposition table sized
// from the given fraction of physical memory. The table is an optimization
// only; scores are identical with it off, which is the default.
func (s *Solver) EnableTranspositionTable(fractionOfMemory float64) {
	s.zobrist = &zobrist.Zobrist{}
	s.zobrist.Initialize()
	s.ttable = &TranspositionTable{}
	s.ttable.Reset(fractionOfMemory)
	s.transpositionTableOptim = true
}

func max(x, y float32) float32 {
	if x < y {
		return y
	}
	return x
}

func min(x, y float32) float32 {
	if x < y {
		return x
	}
	return y
}

// child returns the position after m. A pass leaves the board unchanged.
func child(b board.Board, m move.Move) board.Board {
	if m.IsPass() {
		return b
	}
	return b.MustApply(m.Side(), m.Row(), m.Col())
}

func (s *Solver) negamax(ctx context.Context, nodeKey uint64, b board.Board,
	side board.Side, depth int, α, β float32) (float32, error) {

	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.nodes++

	alphaOrig := α
	if s.transpositionTableOptim {
		if entry, ok := s.ttable.lookup(nodeKey); ok && int(entry.depth) >= depth {
			switch entry.flag {
			case TTExact:
				return entry.score, nil
			case TTLower:
				α = max(α, entry.score)
			case TTUpper:
				β = min(β, entry.score)
			}
			if α >= β {
				return entry.score, nil
			}
		}
	}

	if depth <= 0 || b.IsTerminal() {
		return s.calc.Score(b, side), nil
	}

	// Each recursion level owns its generator; candidates are produced one
	// at a time, interleaved with the recursive evaluation below.
	gen := movegen.NewCursorGenerator()
	gen.Reset(b, side)

	bestValue := -HugeNumber
	for m, ok := gen.Next(); ok; m, ok = gen.Next() {
		childBoard := child(b, m)
		childKey := nodeKey
		if s.transpositionTableOptim {
			childKey = s.zobrist.AddMove(nodeKey, b, m)
		}
		value, err := s.negamax(ctx, childKey, childBoard, side.Other(), depth-1, -β, -α)
		if err != nil {
			return 0, err
		}
		if -value > bestValue {
			bestValue = -value
		}
		α = max(α, bestValue)
		if α >= β {
			break // beta cut-off
		}
	}

	if s.transpositionTableOptim {
		entry := tableEntry{score: bestValue, depth: uint8(depth)}
		if bestValue <= alphaOrig {
			entry.flag = TTUpper
		} else if bestValue >= β {
			entry.flag = TTLower
		} else {
			entry.flag = TTExact
		}
		s.ttable.store(nodeKey, entry)
	}
	return bestValue, nil
}

// SolveSubset computes the exact negamax score of each root task: the root
// move is applied (one ply spent) and the child position is searched at
// depth-1 with a full window, so scores from disjoint subsets are directly
// comparable when merged. This is the worker entry point for the split
// search; Solve uses it for the solo path as well.
func (s *Solver) SolveSubset(ctx context.Context, b board.Board, side board.Side,
	depth int, tasks []RootTask) ([]RootResult, error) {

	results := make([]RootResult, 0, len(tasks))
	for _, t := range tasks {
		childBoard := child(b, t.Move)
		childKey := uint64(0)
		if s.transpositionTableOptim {
			childKey = s.zobrist.AddMove(s.zobrist.Hash(b, side), b, t.Move)
		}
		score, err := s.negamax(ctx, childKey, childBoard, side.Other(), depth-1,
			-HugeNumber, HugeNumber)
		if err != nil {
			return nil, err
		}
		results = append(results, RootResult{Move: t.Move, Index: t.Index, Score: -score})
	}
	return results, nil
}

// Solve searches every root move at the given depth and returns the best
// move and its score. Ties break toward the earlier move in enumeration
// order, which keeps repeated searches of the same position deterministic.
func (s *Solver) Solve(ctx context.Context, b board.Board, side board.Side,
	depth int) (move.Move, float32, error) {

	tstart := time.Now()
	s.nodes = 0

	roots := s.rootGen.GenAll(b, side)
	if len(roots) == 0 {
		return move.Move{}, 0, ErrNoMoves
	}
	tasks := make([]RootTask, len(roots))
	for i, m := range roots {
		tasks[i] = RootTask{Move: m, Index: i}
	}

	results, err := s.SolveSubset(ctx, b, side, depth, tasks)
	if err != nil {
		return move.Move{}, 0, err
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.Score > best.Score {
			best = r
		}
	}

	log.Debug().
		Int("depth", depth).
		Int("root-moves", len(roots)).
		Uint64("nodes", s.nodes).
		Float32("best-score", best.Score).
		Str("best-move", best.Move.ShortDescription()).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("solve-returning")

	return best.Move, best.Score, nil
}

// Nodes returns the number of nodes visited by the last Solve call.
func (s *Solver) Nodes() uint64 {
	return s.nodes
}
