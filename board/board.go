// Package board implements the 8x8 disc-flipping game board. Boards are
// plain value types; Apply returns a fresh board and never mutates its
// receiver, so boards can be shared freely between search workers without
// any locking.
package board

import (
	"errors"

	"github.com/cespare/xxhash"
)

// Dim is the board dimension. The game is always played on 8x8.
const Dim = 8

// CellState is the contents of a single cell.
type CellState uint8

const (
	Empty CellState = iota
	Dark
	Light
)

// Side is the color of a player; it is always Dark or Light.
type Side = CellState

func (c CellState) String() string {
	switch c {
	case Dark:
		return "Dark"
	case Light:
		return "Light"
	}
	return "Empty"
}

// Other returns the opposing side.
func (c CellState) Other() Side {
	switch c {
	case Dark:
		return Light
	case Light:
		return Dark
	}
	return Empty
}

// Coord is a cell position, zero-indexed from the top-left corner.
type Coord struct {
	Row, Col int
}

var ErrIllegalPlacement = errors.New("placement does not flip any discs")

// The 8 scan directions for flip-runs.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Board is a full game position. It does not track whose turn it is; the
// side to move travels alongside the board through the search.
type Board struct {
	cells [Dim * Dim]CellState
}

// StartPosition returns the fixed four-disc center opening.
func StartPosition() Board {
	var b Board
	b.setCell(3, 3, Light)
	b.setCell(4, 4, Light)
	b.setCell(3, 4, Dark)
	b.setCell(4, 3, Dark)
	return b
}

func onBoard(row, col int) bool {
	return row >= 0 && row < Dim && col >= 0 && col < Dim
}

// Cell returns the state of the cell at (row, col).
func (b Board) Cell(row, col int) CellState {
	return b.cells[row*Dim+col]
}

func (b *Board) setCell(row, col int, c CellState) {
	b.cells[row*Dim+col] = c
}

// runLength returns the number of opposing discs that placing side's disc
// at (row, col) would flip along one direction, or 0 if the run does not
// terminate in side's own color before the edge or an empty cell.
func (b Board) runLength(side Side, row, col, dr, dc int) int {
	opp := side.Other()
	n := 0
	r, c := row+dr, col+dc
	for onBoard(r, c) && b.Cell(r, c) == opp {
		n++
		r, c = r+dr, c+dc
	}
	if n == 0 || !onBoard(r, c) || b.Cell(r, c) != side {
		return 0
	}
	return n
}

// LegalAt returns true iff placing side's disc at (row, col) flips at least
// one opposing disc.
func (b Board) LegalAt(side Side, row, col int) bool {
	if !onBoard(row, col) || b.Cell(row, col) != Empty {
		return false
	}
	for _, d := range directions {
		if b.runLength(side, row, col, d[0], d[1]) > 0 {
			return true
		}
	}
	return false
}

// FlipsFor returns the cells that would change color if side placed a disc
// at (row, col). An empty result means the placement is illegal.
func (b Board) FlipsFor(side Side, row, col int) []Coord {
	if !onBoard(row, col) || b.Cell(row, col) != Empty {
		return nil
	}
	var flips []Coord
	for _, d := range directions {
		n := b.runLength(side, row, col, d[0], d[1])
		for i := 1; i <= n; i++ {
			flips = append(flips, Coord{row + d[0]*i, col + d[1]*i})
		}
	}
	return flips
}

// Apply places side's disc at (row, col) and recolors every flip-run,
// returning the resulting board. The receiver is not modified. It returns
// ErrIllegalPlacement if the placement flips nothing.
func (b Board) Apply(side Side, row, col int) (Board, error) {
	if !onBoard(row, col) || b.Cell(row, col) != Empty {
		return b, ErrIllegalPlacement
	}
	next := b
	flipped := 0
	for _, d := range directions {
		n := b.runLength(side, row, col, d[0], d[1])
		for i := 1; i <= n; i++ {
			next.setCell(row+d[0]*i, col+d[1]*i, side)
		}
		flipped += n
	}
	if flipped == 0 {
		return b, ErrIllegalPlacement
	}
	next.setCell(row, col, side)
	return next, nil
}

// MustApply is Apply for callers that have already established legality,
// such as the search recursion enumerating generated moves.
func (b Board) MustApply(side Side, row, col int) Board {
	next, err := b.Apply(side, row, col)
	if err != nil {
		panic(err)
	}
	return next
}

// HasAnyLegalMove returns true if side can place a disc anywhere.
func (b Board) HasAnyLegalMove(side Side) bool {
	for row := 0; row < Dim; row++ {
		for col := 0; col < Dim; col++ {
			if b.LegalAt(side, row, col) {
				return true
			}
		}
	}
	return false
}

// IsTerminal returns true when neither side has a legal move. The board
// does not have to be full.
func (b Board) IsTerminal() bool {
	return !b.HasAnyLegalMove(Dark) && !b.HasAnyLegalMove(Light)
}

// DiscCount returns the number of discs of the given color.
func (b Board) DiscCount(side Side) int {
	n := 0
	for _, c := range b.cells {
		if c == side {
			n++
		}
	}
	return n
}

// Empties returns the number of empty cells. It keys the evaluation's
// game-phase weighting.
func (b Board) Empties() int {
	n := 0
	for _, c := range b.cells {
		if c == Empty {
			n++
		}
	}
	return n
}

// MobilityCount returns the number of legal placements for side.
func (b Board) MobilityCount(side Side) int {
	n := 0
	for row := 0; row < Dim; row++ {
		for col := 0; col < Dim; col++ {
			if b.LegalAt(side, row, col) {
				n++
			}
		}
	}
	return n
}

// Fingerprint returns a fast 64-bit digest of the position, suitable for
// caches and test assertions. It does not include the side to move.
func (b Board) Fingerprint() uint64 {
	var raw [Dim * Dim]byte
	for i, c := range b.cells {
		raw[i] = byte(c)
	}
	return xxhash.Sum64(raw[:])
}
