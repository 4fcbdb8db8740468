// Package equity contains static board evaluation. The engine is meant to
// be a weak, fast player: the calculator is a shallow weighted heuristic,
// not a tuned evaluation function, and its weights are a tunable parameter
// rather than a contract.
package equity

import (
	"github.com/domino14/flanker/board"
)

// Calculator scores a board from one side's perspective. Implementations
// must be deterministic and side-consistent:
// Score(b, Dark) == -Score(b, Light).
type Calculator interface {
	Score(b board.Board, side board.Side) float32
}

// Weights are the term weights for one game phase.
type Weights struct {
	Disc       float32 // disc-count differential
	Corner     float32 // corner occupancy differential
	Mobility   float32 // legal-move-count differential
	Positional float32 // edge/positional table differential
}

// Positional cell values. Corners are handled by their own term; this
// table carries the edge-stability shape: edges good, cells adjacent to
// corners dangerous, center mildly neutral.
var posTable = [board.Dim][board.Dim]float32{
	{0, -3, 11, 8, 8, 11, -3, 0},
	{-3, -7, -4, 1, 1, -4, -7, -3},
	{11, -4, 2, 2, 2, 2, -4, 11},
	{8, 1, 2, -3, -3, 2, 1, 8},
	{8, 1, 2, -3, -3, 2, 1, 8},
	{11, -4, 2, 2, 2, 2, -4, 11},
	{-3, -7, -4, 1, 1, -4, -7, -3},
	{0, -3, 11, 8, 8, 11, -3, 0},
}

var corners = [4]board.Coord{{Row: 0, Col: 0}, {Row: 0, Col: board.Dim - 1},
	{Row: board.Dim - 1, Col: 0}, {Row: board.Dim - 1, Col: board.Dim - 1}}

// EndgameEmpties is the empty-cell count at which the calculator switches
// to endgame weighting, where raw disc count dominates.
const EndgameEmpties = 12

// StaticCalculator is the default phase-keyed heuristic.
type StaticCalculator struct {
	opening Weights
	endgame Weights
}

// NewStaticCalculator creates a calculator with the default weights.
func NewStaticCalculator() *StaticCalculator {
	return &StaticCalculator{
		opening: Weights{Disc: 1, Corner: 50, Mobility: 8, Positional: 1},
		endgame: Weights{Disc: 20, Corner: 50, Mobility: 2, Positional: 0.25},
	}
}

// NewStaticCalculatorWithWeights creates a calculator with caller-supplied
// phase weights, for tuning experiments.
func NewStaticCalculatorWithWeights(opening, endgame Weights) *StaticCalculator {
	return &StaticCalculator{opening: opening, endgame: endgame}
}

// Score computes the weighted differential sum for side. Every term is an
// (own - opponent) differential, so side-consistency holds by construction.
func (c *StaticCalculator) Score(b board.Board, side board.Side) float32 {
	opp := side.Other()
	empties := b.Empties()

	w := c.opening
	if empties <= EndgameEmpties {
		w = c.endgame
		// Disc differential ramps up sharply as the board fills.
		w.Disc += float32(EndgameEmpties-empties) * 2
	}

	discs := float32(b.DiscCount(side) - b.DiscCount(opp))
	mobility := float32(b.MobilityCount(side) - b.MobilityCount(opp))

	var cornerDiff float32
	for _, corner := range corners {
		switch b.Cell(corner.Row, corner.Col) {
		case side:
			cornerDiff++
		case opp:
			cornerDiff--
		}
	}

	var positional float32
	for row := 0; row < board.Dim; row++ {
		for col := 0; col < board.Dim; col++ {
			switch b.Cell(row, col) {
			case side:
				positional += posTable[row][col]
			case opp:
				positional -= posTable[row][col]
			}
		}
	}

	return w.Disc*discs + w.Corner*cornerDiff + w.Mobility*mobility +
		w.Positional*positional
}
