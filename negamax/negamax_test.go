package negamax

import (
	"context"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/flanker/board"
	"github.com/domino14/flanker/equity"
	"github.com/domino14/flanker/move"
	"github.com/domino14/flanker/movegen"
)

func newSolver(t *testing.T) *Solver {
	t.Helper()
	s := &Solver{}
	err := s.Init(movegen.NewCursorGenerator(), equity.NewStaticCalculator())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSolveOpening(t *testing.T) {
	is := is.New(t)
	s := newSolver(t)

	for depth := 1; depth <= 4; depth++ {
		m, _, err := s.Solve(context.Background(), board.StartPosition(), board.Dark, depth)
		is.NoErr(err)
		is.True(!m.IsPass())
		// Must be one of the four canonical openings.
		is.True(board.StartPosition().LegalAt(board.Dark, m.Row(), m.Col()))
	}
}

func TestSolveDeterminism(t *testing.T) {
	is := is.New(t)
	s := newSolver(t)

	first, firstScore, err := s.Solve(context.Background(), board.VsMidgame, board.Light, 3)
	is.NoErr(err)
	for i := 0; i < 3; i++ {
		m, score, err := s.Solve(context.Background(), board.VsMidgame, board.Light, 3)
		is.NoErr(err)
		is.True(m.Equals(first))
		is.Equal(score, firstScore)
	}
}

func TestSolvePassOnlyPosition(t *testing.T) {
	is := is.New(t)
	s := newSolver(t)

	m, _, err := s.Solve(context.Background(), board.VsDarkStuck, board.Dark, 3)
	is.NoErr(err)
	is.True(m.IsPass())
}

func TestSolveDepthOneIsGreedy(t *testing.T) {
	is := is.New(t)
	calc := equity.NewStaticCalculator()
	s := &Solver{}
	is.NoErr(s.Init(movegen.NewCursorGenerator(), calc))

	b := board.VsMidgame
	got, gotScore, err := s.Solve(context.Background(), b, board.Dark, 1)
	is.NoErr(err)

	// At depth 1 the solver must pick the first move maximizing the static
	// eval of the resulting position, from the mover's perspective.
	gen := movegen.NewCursorGenerator()
	var best move.Move
	bestScore := -HugeNumber
	for _, m := range gen.GenAll(b, board.Dark) {
		child := b.MustApply(m.Side(), m.Row(), m.Col())
		// Score from the opponent's view, negated.
		v := -calc.Score(child, board.Light)
		if v > bestScore {
			bestScore = v
			best = m
		}
	}
	is.True(got.Equals(best))
	is.Equal(gotScore, bestScore)
}

func TestSolveSubsetMatchesSolve(t *testing.T) {
	is := is.New(t)
	s := newSolver(t)
	b := board.VsMidgame
	depth := 3

	gen := movegen.NewCursorGenerator()
	roots := gen.GenAll(b, board.Dark)
	is.True(len(roots) > 1)
	tasks := make([]RootTask, len(roots))
	for i, m := range roots {
		tasks[i] = RootTask{Move: m, Index: i}
	}

	results, err := s.SolveSubset(context.Background(), b, board.Dark, depth, tasks)
	is.NoErr(err)
	is.Equal(len(results), len(roots))

	best := results[0]
	for _, r := range results[1:] {
		if r.Score > best.Score {
			best = r
		}
	}
	m, score, err := s.Solve(context.Background(), b, board.Dark, depth)
	is.NoErr(err)
	is.True(m.Equals(best.Move))
	is.Equal(score, best.Score)
}

func TestTranspositionTableDoesNotChangeScores(t *testing.T) {
	for _, b := range []board.Board{board.StartPosition(), board.VsMidgame} {
		plain := newSolver(t)
		cached := newSolver(t)
		cached.EnableTranspositionTable(0.001)

		_, plainScore, err := plain.Solve(context.Background(), b, board.Dark, 4)
		assert.NoError(t, err)
		_, cachedScore, err := cached.Solve(context.Background(), b, board.Dark, 4)
		assert.NoError(t, err)
		assert.Equal(t, plainScore, cachedScore)
	}
}

func TestSolveCancellation(t *testing.T) {
	is := is.New(t)
	s := newSolver(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := s.Solve(ctx, board.StartPosition(), board.Dark, 4)
	is.Equal(err, context.Canceled)
}

func BenchmarkSolveDepth4(b *testing.B) {
	s := &Solver{}
	if err := s.Init(movegen.NewCursorGenerator(), equity.NewStaticCalculator()); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, err := s.Solve(context.Background(), board.StartPosition(), board.Dark, 4)
		if err != nil {
			b.Fatal(err)
		}
	}
}
