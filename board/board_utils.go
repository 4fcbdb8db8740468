package board

import (
	"fmt"
	"strings"
)

const (
	darkRune  = 'X'
	lightRune = 'O'
	emptyRune = '.'
)

// String renders the board as a grid with file letters and rank numbers,
// for logs and the console shell.
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("   a b c d e f g h\n")
	for row := 0; row < Dim; row++ {
		fmt.Fprintf(&sb, "%d  ", row+1)
		for col := 0; col < Dim; col++ {
			r := emptyRune
			switch b.Cell(row, col) {
			case Dark:
				r = darkRune
			case Light:
				r = lightRune
			}
			sb.WriteRune(r)
			sb.WriteRune(' ')
		}
		fmt.Fprintf(&sb, " %d\n", row+1)
	}
	sb.WriteString("   a b c d e f g h\n")
	return sb.String()
}

// FromText parses a board from the same text layout that String emits,
// minus the coordinate decorations: eight lines of eight runes, where 'X'
// is dark, 'O' is light and '.' is empty. It is mostly useful for setting
// up test positions.
func FromText(text string) (Board, error) {
	var b Board
	rows := []string{}
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) != Dim {
		return b, fmt.Errorf("expected %d rows, got %d", Dim, len(rows))
	}
	for ri, row := range rows {
		cells := strings.Fields(row)
		if len(cells) == 1 && len(row) == Dim {
			// Allow the compact form with no spaces between cells.
			cells = strings.Split(row, "")
		}
		if len(cells) != Dim {
			return b, fmt.Errorf("row %d: expected %d cells, got %d", ri+1, Dim, len(cells))
		}
		for ci, cell := range cells {
			switch cell {
			case string(darkRune):
				b.setCell(ri, ci, Dark)
			case string(lightRune):
				b.setCell(ri, ci, Light)
			case string(emptyRune):
			default:
				return b, fmt.Errorf("row %d col %d: unknown cell %q", ri+1, ci+1, cell)
			}
		}
	}
	return b, nil
}
