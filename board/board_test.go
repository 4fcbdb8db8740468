package board

import (
	"testing"

	"github.com/matryer/is"
)

// bruteForceLegal is an independent implementation of the flanking rule,
// used to cross-check LegalAt.
func bruteForceLegal(b Board, side Side, row, col int) bool {
	if b.Cell(row, col) != Empty {
		return false
	}
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if directionFlanks(b, side, row, col, dr, dc) {
				return true
			}
		}
	}
	return false
}

func directionFlanks(b Board, side Side, row, col, dr, dc int) bool {
	opp := side.Other()
	seenOpp := false
	for r, c := row+dr, col+dc; r >= 0 && r < Dim && c >= 0 && c < Dim; r, c = r+dr, c+dc {
		switch b.Cell(r, c) {
		case opp:
			seenOpp = true
		case side:
			return seenOpp
		default:
			return false
		}
	}
	return false
}

// playout applies pick(#legal moves) repeatedly for up to maxTurns turns,
// alternating sides and passing when needed, and calls visit on every
// intermediate board. Deterministic for a deterministic pick.
func playout(t *testing.T, maxTurns int, pick func(n int) int, visit func(b Board)) {
	t.Helper()
	b := StartPosition()
	side := Dark
	for turn := 0; turn < maxTurns && !b.IsTerminal(); turn++ {
		visit(b)
		var legal []Coord
		for row := 0; row < Dim; row++ {
			for col := 0; col < Dim; col++ {
				if b.LegalAt(side, row, col) {
					legal = append(legal, Coord{row, col})
				}
			}
		}
		if len(legal) == 0 {
			side = side.Other()
			continue
		}
		mv := legal[pick(len(legal))]
		next, err := b.Apply(side, mv.Row, mv.Col)
		if err != nil {
			t.Fatalf("legal move failed to apply: %v", err)
		}
		b = next
		side = side.Other()
	}
	visit(b)
}

func TestStartPosition(t *testing.T) {
	is := is.New(t)
	b := StartPosition()
	is.Equal(b.DiscCount(Dark), 2)
	is.Equal(b.DiscCount(Light), 2)
	is.Equal(b.Empties(), 60)
	is.Equal(b.Cell(3, 4), Dark)
	is.Equal(b.Cell(4, 3), Dark)
	is.Equal(b.Cell(3, 3), Light)
	is.Equal(b.Cell(4, 4), Light)
	is.True(!b.IsTerminal())
}

func TestOpeningLegalMoves(t *testing.T) {
	is := is.New(t)
	b := StartPosition()
	// The four canonical first moves for Dark: d3, c4, f5, e6.
	want := map[Coord]bool{
		{2, 3}: true, {3, 2}: true, {4, 5}: true, {5, 4}: true,
	}
	for row := 0; row < Dim; row++ {
		for col := 0; col < Dim; col++ {
			is.Equal(b.LegalAt(Dark, row, col), want[Coord{row, col}])
		}
	}
	is.Equal(b.MobilityCount(Dark), 4)
	is.Equal(b.MobilityCount(Light), 4)
}

func TestLegalAtMatchesBruteForce(t *testing.T) {
	picks := []func(n int) int{
		func(n int) int { return 0 },
		func(n int) int { return n - 1 },
		func(n int) int { return n / 2 },
	}
	for _, pick := range picks {
		playout(t, 60, pick, func(b Board) {
			for row := 0; row < Dim; row++ {
				for col := 0; col < Dim; col++ {
					for _, side := range []Side{Dark, Light} {
						got := b.LegalAt(side, row, col)
						want := bruteForceLegal(b, side, row, col)
						if got != want {
							t.Fatalf("LegalAt(%v, %d, %d) = %v, brute force says %v\n%v",
								side, row, col, got, want, b)
						}
					}
				}
			}
		})
	}
}

func TestApplyProperties(t *testing.T) {
	is := is.New(t)
	playout(t, 60, func(n int) int { return 0 }, func(b Board) {
		for _, side := range []Side{Dark, Light} {
			for row := 0; row < Dim; row++ {
				for col := 0; col < Dim; col++ {
					if !b.LegalAt(side, row, col) {
						continue
					}
					flips := b.FlipsFor(side, row, col)
					is.True(len(flips) > 0) // a legal move must flip something
					next, err := b.Apply(side, row, col)
					is.NoErr(err)
					// Total grows by exactly one; the mover gains the flips
					// plus the placed disc; the opponent loses exactly the
					// flips.
					total := b.DiscCount(Dark) + b.DiscCount(Light)
					is.Equal(next.DiscCount(Dark)+next.DiscCount(Light), total+1)
					is.Equal(next.DiscCount(side), b.DiscCount(side)+len(flips)+1)
					is.Equal(next.DiscCount(side.Other()), b.DiscCount(side.Other())-len(flips))
					// The input board is untouched.
					is.Equal(b.Cell(row, col), Empty)
				}
			}
		}
	})
}

func TestApplyIllegal(t *testing.T) {
	is := is.New(t)
	b := StartPosition()
	_, err := b.Apply(Dark, 0, 0)
	is.Equal(err, ErrIllegalPlacement)
	// Occupied cell.
	_, err = b.Apply(Dark, 3, 3)
	is.Equal(err, ErrIllegalPlacement)
	// Off the board.
	_, err = b.Apply(Dark, -1, 8)
	is.Equal(err, ErrIllegalPlacement)
}

func TestSamplePositions(t *testing.T) {
	is := is.New(t)
	is.True(!VsDarkStuck.HasAnyLegalMove(Dark))
	is.True(VsDarkStuck.HasAnyLegalMove(Light))
	is.True(!VsDarkStuck.IsTerminal())

	is.Equal(VsFullBoard.Empties(), 0)
	is.True(VsFullBoard.IsTerminal())

	is.True(VsMidgame.HasAnyLegalMove(Dark))
	is.True(VsMidgame.HasAnyLegalMove(Light))
}

func TestFromTextRoundTrip(t *testing.T) {
	is := is.New(t)
	for _, b := range []Board{StartPosition(), VsDarkStuck, VsMidgame, VsFullBoard} {
		// String output includes coordinates; strip them back off.
		parsed, err := FromText(stripCoords(b.String()))
		is.NoErr(err)
		is.Equal(parsed, b)
	}
}

func stripCoords(display string) string {
	lines := []string{}
	rows := 0
	for _, line := range splitLines(display) {
		if len(line) < 4 || line[0] < '1' || line[0] > '8' {
			continue
		}
		lines = append(lines, line[3:3+Dim*2])
		rows++
	}
	out := ""
	for _, l := range lines {
		out += l + "\n"
	}
	return out
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func TestFingerprint(t *testing.T) {
	is := is.New(t)
	a := StartPosition()
	b := a.MustApply(Dark, 2, 3)
	is.True(a.Fingerprint() != b.Fingerprint())
	is.Equal(a.Fingerprint(), StartPosition().Fingerprint())
}

func BenchmarkApply(b *testing.B) {
	pos := StartPosition()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pos.MustApply(Dark, 2, 3)
	}
}

func BenchmarkMobilityCount(b *testing.B) {
	pos := VsMidgame
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pos.MobilityCount(Dark)
	}
}
