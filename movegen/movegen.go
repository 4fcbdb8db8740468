// Package movegen contains the legal-move enumerator. Generation is lazy
// and resumable: a generator scans the board one cell at a time and can be
// suspended between Next calls at no cost, which lets the search interleave
// candidate production with recursion instead of materializing full move
// lists, and lets parallel workers each own an independent generator over
// the same immutable board.
package movegen

import (
	"github.com/domino14/flanker/board"
	"github.com/domino14/flanker/move"
)

// MoveGenerator is an interface for lazily enumerating legal moves for a
// (board, side) pair. If the side has no legal placement, the sequence
// yields the single pass move and then ends.
type MoveGenerator interface {
	Reset(b board.Board, side board.Side)
	Next() (move.Move, bool)
	GenAll(b board.Board, side board.Side) []move.Move
}

// CursorGenerator enumerates placements in row-major order. It carries no
// state beyond its scan cursor, so a fresh generator can be created for any
// position and resuming after a suspension never re-examines earlier cells.
type CursorGenerator struct {
	b       board.Board
	side    board.Side
	cursor  int // next cell to examine, row-major index
	emitted int // placements produced since the last Reset
	done    bool
}

// NewCursorGenerator creates a generator. Reset must be called before Next.
func NewCursorGenerator() *CursorGenerator {
	return &CursorGenerator{done: true}
}

// Reset points the generator at a new position. Any previous enumeration
// state is discarded.
func (g *CursorGenerator) Reset(b board.Board, side board.Side) {
	g.b = b
	g.side = side
	g.cursor = 0
	g.emitted = 0
	g.done = false
}

// Next returns the next legal move and true, or the zero move and false
// when the sequence is exhausted. The first call after a Reset on a
// position with no legal placement yields the pass move.
func (g *CursorGenerator) Next() (move.Move, bool) {
	if g.done {
		return move.Move{}, false
	}
	for g.cursor < board.Dim*board.Dim {
		row := g.cursor / board.Dim
		col := g.cursor % board.Dim
		g.cursor++
		if g.b.LegalAt(g.side, row, col) {
			g.emitted++
			return move.NewPlacement(g.side, row, col), true
		}
	}
	g.done = true
	if g.emitted == 0 {
		return move.NewPass(g.side), true
	}
	return move.Move{}, false
}

// GenAll materializes the full move sequence for a position. It is a
// convenience for callers like the root splitter that need the complete
// candidate list with stable indices.
func (g *CursorGenerator) GenAll(b board.Board, side board.Side) []move.Move {
	g.Reset(b, side)
	var moves []move.Move
	for m, ok := g.Next(); ok; m, ok = g.Next() {
		moves = append(moves, m)
	}
	g.Reset(b, side)
	return moves
}
