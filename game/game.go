// Package game encapsulates turn flow for a single match: the current
// board, whose turn it is, the player mode, and the move history. It does
// not choose moves; CPU turns are delegated to the turnplayer coordinator
// by the caller.
package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/flanker/board"
	"github.com/domino14/flanker/move"
)

// Mode determines which sides are played by the CPU.
type Mode int

const (
	ManVsCPU Mode = iota // human is Dark
	CPUVsMan             // human is Light
	CPUVsCPU
	ManVsMan
)

func (m Mode) String() string {
	switch m {
	case ManVsCPU:
		return "man-vs-cpu"
	case CPUVsMan:
		return "cpu-vs-man"
	case CPUVsCPU:
		return "cpu-vs-cpu"
	case ManVsMan:
		return "man-vs-man"
	}
	return "unknown"
}

// PlayState is whether the match is still in progress.
type PlayState int

const (
	StatePlaying PlayState = iota
	StateGameOver
)

var (
	ErrGameOver      = errors.New("the game is over")
	ErrNotYourTurn   = errors.New("move is not for the side on turn")
	ErrIllegalPass   = errors.New("side has a legal placement; cannot pass")
	ErrNothingToUndo = errors.New("no moves to undo")
)

type position struct {
	b      board.Board
	onturn board.Side
	played move.Move
}

// Game is a single match in progress.
type Game struct {
	board   board.Board
	onturn  board.Side
	mode    Mode
	playing PlayState
	history []position
}

// NewGame starts a match from the standard opening position. Dark moves
// first.
func NewGame(mode Mode) *Game {
	return &Game{
		board:  board.StartPosition(),
		onturn: board.Dark,
		mode:   mode,
	}
}

func (g *Game) Board() board.Board     { return g.board }
func (g *Game) SideOnTurn() board.Side { return g.onturn }
func (g *Game) Mode() Mode             { return g.mode }
func (g *Game) Playing() PlayState     { return g.playing }
func (g *Game) Turn() int              { return len(g.history) }

// CPUOnTurn reports whether the side on turn is CPU-controlled under the
// current mode.
func (g *Game) CPUOnTurn() bool {
	switch g.mode {
	case CPUVsCPU:
		return true
	case ManVsMan:
		return false
	case ManVsCPU:
		return g.onturn == board.Light
	case CPUVsMan:
		return g.onturn == board.Dark
	}
	return false
}

// Scores returns the disc counts for Dark and Light.
func (g *Game) Scores() (int, int) {
	return g.board.DiscCount(board.Dark), g.board.DiscCount(board.Light)
}

// PlayMove validates and applies m for the side on turn, records it in the
// history, and advances the turn. A pass is accepted only when the side on
// turn truly has no placement. The game ends when the resulting board is
// terminal.
func (g *Game) PlayMove(m move.Move) error {
	if g.playing != StatePlaying {
		return ErrGameOver
	}
	if m.Side() != g.onturn {
		return ErrNotYourTurn
	}

	next := g.board
	if m.IsPass() {
		if g.board.HasAnyLegalMove(g.onturn) {
			return ErrIllegalPass
		}
	} else {
		applied, err := g.board.Apply(m.Side(), m.Row(), m.Col())
		if err != nil {
			return fmt.Errorf("illegal move %s: %w", m.ShortDescription(), err)
		}
		next = applied
	}

	g.history = append(g.history, position{b: g.board, onturn: g.onturn, played: m})
	g.board = next
	g.onturn = g.onturn.Other()

	if g.board.IsTerminal() {
		g.playing = StateGameOver
		dark, light := g.Scores()
		log.Info().Int("dark", dark).Int("light", light).Msg("game-over")
	}
	return nil
}

// Undo reverts the last played move, restoring the previous board and side
// on turn. Callers that want to roll back to the last human decision point
// call it repeatedly while CPUOnTurn is true.
func (g *Game) Undo() error {
	if len(g.history) == 0 {
		return ErrNothingToUndo
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.board = last.b
	g.onturn = last.onturn
	g.playing = StatePlaying
	return nil
}

// LastMove returns the most recently played move, if any.
func (g *Game) LastMove() (move.Move, bool) {
	if len(g.history) == 0 {
		return move.Move{}, false
	}
	return g.history[len(g.history)-1].played, true
}

// History returns the played moves in order.
func (g *Game) History() []move.Move {
	moves := make([]move.Move, len(g.history))
	for i, p := range g.history {
		moves[i] = p.played
	}
	return moves
}
