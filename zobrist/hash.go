// Package zobrist hashes game positions for the transposition table.
// https://en.wikipedia.org/wiki/Zobrist_hashing
package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/flanker/board"
	"github.com/domino14/flanker/move"
)

const bignum = 1<<63 - 2

// color indexes into the per-cell table.
const (
	darkIdx = iota
	lightIdx
	numColors
)

// Zobrist generates 64-bit hashes for (board, side to move) pairs.
type Zobrist struct {
	posTable  [board.Dim * board.Dim][numColors]uint64
	lightTurn uint64
}

// Initialize fills the random tables. Must be called once before hashing.
func (z *Zobrist) Initialize() {
	for i := range z.posTable {
		for j := range z.posTable[i] {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	z.lightTurn = frand.Uint64n(bignum) + 1
}

func colorIdx(c board.CellState) int {
	if c == board.Dark {
		return darkIdx
	}
	return lightIdx
}

// Hash computes the full hash of a position from scratch.
func (z *Zobrist) Hash(b board.Board, sideToMove board.Side) uint64 {
	key := uint64(0)
	for row := 0; row < board.Dim; row++ {
		for col := 0; col < board.Dim; col++ {
			c := b.Cell(row, col)
			if c == board.Empty {
				continue
			}
			key ^= z.posTable[row*board.Dim+col][colorIdx(c)]
		}
	}
	if sideToMove == board.Light {
		key ^= z.lightTurn
	}
	return key
}

// AddMove incrementally updates key for a move played on the board the key
// was computed for: the placed disc enters in the mover's color, every
// flipped disc leaves the opponent's color and enters the mover's, and the
// turn toggles. A pass only toggles the turn.
func (z *Zobrist) AddMove(key uint64, b board.Board, m move.Move) uint64 {
	if !m.IsPass() {
		mover := m.Side()
		opp := mover.Other()
		key ^= z.posTable[m.Row()*board.Dim+m.Col()][colorIdx(mover)]
		for _, f := range b.FlipsFor(mover, m.Row(), m.Col()) {
			sq := f.Row*board.Dim + f.Col
			key ^= z.posTable[sq][colorIdx(opp)]
			key ^= z.posTable[sq][colorIdx(mover)]
		}
	}
	key ^= z.lightTurn
	return key
}
