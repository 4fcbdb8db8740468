// Package move defines the Move type: a disc placement at a board
// coordinate, or a pass when the side to move has no legal placement.
package move

import (
	"fmt"
	"strings"

	"github.com/domino14/flanker/board"
)

// Move is a single turn action. Moves are small value types; they are
// created by the move generator or parsed from user input.
type Move struct {
	row  int
	col  int
	side board.Side
	pass bool
}

// NewPlacement creates a disc placement at (row, col).
func NewPlacement(side board.Side, row, col int) Move {
	return Move{row: row, col: col, side: side}
}

// NewPass creates the distinguished pass move for a side with no legal
// placement. A pass does not change the board, only the turn.
func NewPass(side board.Side) Move {
	return Move{side: side, pass: true}
}

func (m Move) Row() int         { return m.row }
func (m Move) Col() int         { return m.col }
func (m Move) Side() board.Side { return m.side }
func (m Move) IsPass() bool     { return m.pass }

// Equals compares all fields of two moves.
func (m Move) Equals(o Move) bool {
	return m == o
}

// ShortDescription returns the move in game coordinates (file letter then
// rank number, e.g. "d3"), or "(pass)".
func (m Move) ShortDescription() string {
	if m.pass {
		return "(pass)"
	}
	return fmt.Sprintf("%c%d", 'a'+m.col, m.row+1)
}

// String provides a string just for debugging purposes.
func (m Move) String() string {
	if m.pass {
		return fmt.Sprintf("<action: pass side: %v>", m.side)
	}
	return fmt.Sprintf("<action: place %v side: %v>", m.ShortDescription(), m.side)
}

// ParseCoord parses a coordinate like "d3" or "D3" into (row, col).
func ParseCoord(coord string) (int, int, error) {
	coord = strings.ToLower(strings.TrimSpace(coord))
	if len(coord) != 2 {
		return 0, 0, fmt.Errorf("badly formatted coordinate %q", coord)
	}
	col := int(coord[0] - 'a')
	row := int(coord[1] - '1')
	if row < 0 || row >= board.Dim || col < 0 || col >= board.Dim {
		return 0, 0, fmt.Errorf("coordinate %q is off the board", coord)
	}
	return row, col, nil
}

// FromCoord builds a placement move from a user coordinate string.
func FromCoord(side board.Side, coord string) (Move, error) {
	row, col, err := ParseCoord(coord)
	if err != nil {
		return Move{}, err
	}
	return NewPlacement(side, row, col), nil
}
