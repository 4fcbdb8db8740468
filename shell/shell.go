// Package shell is the interactive console front-end: it renders the board
// as text, accepts human moves, and drives CPU turns through the
// coordinator. It exists for development and CPU-vs-CPU testing; a
// graphical front-end would call the same game and turnplayer APIs.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/flanker/config"
	"github.com/domino14/flanker/game"
	"github.com/domino14/flanker/move"
	"github.com/domino14/flanker/movegen"
	"github.com/domino14/flanker/turnplayer"
)

var errExit = errors.New("sending quit signal")

// ShellController owns the readline loop and the current game.
type ShellController struct {
	l *readline.Instance

	cfg         *config.Config
	curGame     *game.Game
	coordinator *turnplayer.Coordinator
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "new [mode] - start a game; mode is one of mvc, cvm, cvc, mvm (default mvc)\n")
	io.WriteString(w, "play <coord> - place a disc for the human side, e.g. play d3\n")
	io.WriteString(w, "pass - pass (only legal when you have no placement)\n")
	io.WriteString(w, "gen - list legal moves for the side on turn\n")
	io.WriteString(w, "cpu - let the CPU take the current turn\n")
	io.WriteString(w, "auto - play the game out CPU vs CPU from here\n")
	io.WriteString(w, "show - print the board\n")
	io.WriteString(w, "score - print the disc counts\n")
	io.WriteString(w, "undo - take back the last move\n")
	io.WriteString(w, "set depth <n> - change the search depth\n")
	io.WriteString(w, "exit - quit\n")
}

// NewShellController creates the readline instance and the coordinator.
func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mflanker>\033[0m ",
		HistoryFile:     "/tmp/flanker-readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	return &ShellController{
		l:           l,
		cfg:         cfg,
		coordinator: turnplayer.New(cfg),
	}
}

func parseMode(arg string) (game.Mode, error) {
	switch strings.ToLower(arg) {
	case "", "mvc":
		return game.ManVsCPU, nil
	case "cvm":
		return game.CPUVsMan, nil
	case "cvc":
		return game.CPUVsCPU, nil
	case "mvm":
		return game.ManVsMan, nil
	}
	return 0, fmt.Errorf("unknown mode %q; use mvc, cvm, cvc, or mvm", arg)
}

func (sc *ShellController) requireGame() error {
	if sc.curGame == nil {
		return errors.New("no game in progress; start one with `new`")
	}
	return nil
}

func (sc *ShellController) showBoard() {
	g := sc.curGame
	showMessage(g.Board().String(), sc.l.Stderr())
	dark, light := g.Scores()
	if g.Playing() == game.StateGameOver {
		showMessage(fmt.Sprintf("game over. dark (X) %d - light (O) %d", dark, light), sc.l.Stderr())
		return
	}
	showMessage(fmt.Sprintf("dark (X) %d - light (O) %d; %v to move", dark, light, g.SideOnTurn()), sc.l.Stderr())
}

// cpuTurn lets the coordinator take the current turn.
func (sc *ShellController) cpuTurn(ctx context.Context) error {
	g := sc.curGame
	m, err := sc.coordinator.ChooseMove(ctx, g.Board(), g.SideOnTurn())
	if err != nil {
		return err
	}
	showMessage(fmt.Sprintf("cpu (%v) plays %s", m.Side(), m.ShortDescription()), sc.l.Stderr())
	return g.PlayMove(m)
}

// maybeRunCPU runs CPU turns until it is a human's turn or the game ends.
func (sc *ShellController) maybeRunCPU(ctx context.Context) error {
	for sc.curGame.Playing() == game.StatePlaying && sc.curGame.CPUOnTurn() {
		if err := sc.cpuTurn(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (sc *ShellController) handleNew(args []string) error {
	modeArg := ""
	if len(args) > 0 {
		modeArg = args[0]
	}
	mode, err := parseMode(modeArg)
	if err != nil {
		return err
	}
	sc.curGame = game.NewGame(mode)
	showMessage(fmt.Sprintf("new game: %v", mode), sc.l.Stderr())
	if err := sc.maybeRunCPU(context.Background()); err != nil {
		return err
	}
	sc.showBoard()
	return nil
}

func (sc *ShellController) handlePlay(args []string) error {
	if err := sc.requireGame(); err != nil {
		return err
	}
	if len(args) != 1 {
		return errors.New("play needs a coordinate, e.g. `play d3`")
	}
	g := sc.curGame
	m, err := move.FromCoord(g.SideOnTurn(), args[0])
	if err != nil {
		return err
	}
	// Reject illegal input here; it never reaches the engine.
	if !g.Board().LegalAt(m.Side(), m.Row(), m.Col()) {
		return fmt.Errorf("%s is not a legal move for %v", m.ShortDescription(), m.Side())
	}
	if err := g.PlayMove(m); err != nil {
		return err
	}
	if err := sc.maybeRunCPU(context.Background()); err != nil {
		return err
	}
	sc.showBoard()
	return nil
}

func (sc *ShellController) handlePass() error {
	if err := sc.requireGame(); err != nil {
		return err
	}
	g := sc.curGame
	if err := g.PlayMove(move.NewPass(g.SideOnTurn())); err != nil {
		return err
	}
	if err := sc.maybeRunCPU(context.Background()); err != nil {
		return err
	}
	sc.showBoard()
	return nil
}

func (sc *ShellController) handleGen() error {
	if err := sc.requireGame(); err != nil {
		return err
	}
	g := sc.curGame
	gen := movegen.NewCursorGenerator()
	moves := gen.GenAll(g.Board(), g.SideOnTurn())
	descs := make([]string, len(moves))
	for i, m := range moves {
		descs[i] = m.ShortDescription()
	}
	showMessage(fmt.Sprintf("%v to move: %s", g.SideOnTurn(), strings.Join(descs, " ")), sc.l.Stderr())
	return nil
}

func (sc *ShellController) handleAuto() error {
	if err := sc.requireGame(); err != nil {
		return err
	}
	g := sc.curGame
	for g.Playing() == game.StatePlaying {
		if err := sc.cpuTurn(context.Background()); err != nil {
			return err
		}
	}
	sc.showBoard()
	return nil
}

func (sc *ShellController) handleUndo() error {
	if err := sc.requireGame(); err != nil {
		return err
	}
	g := sc.curGame
	if err := g.Undo(); err != nil {
		return err
	}
	// Also unwind any CPU replies so the human is back on turn.
	for g.CPUOnTurn() && g.Turn() > 0 {
		if err := g.Undo(); err != nil {
			return err
		}
	}
	sc.showBoard()
	return nil
}

func (sc *ShellController) handleSet(args []string) error {
	if len(args) != 2 {
		return errors.New("set needs a key and a value, e.g. `set depth 4`")
	}
	switch args[0] {
	case "depth":
		depth, err := strconv.Atoi(args[1])
		if err != nil || depth < 1 {
			return fmt.Errorf("bad depth %q", args[1])
		}
		sc.cfg.Set(config.ConfigSearchDepth, depth)
		showMessage(fmt.Sprintf("search depth set to %d", depth), sc.l.Stderr())
		return nil
	case "workers":
		workers, err := strconv.Atoi(args[1])
		if err != nil || workers < 1 {
			return fmt.Errorf("bad worker count %q", args[1])
		}
		sc.cfg.Set(config.ConfigWorkers, workers)
		showMessage(fmt.Sprintf("workers set to %d", workers), sc.l.Stderr())
		return nil
	}
	return fmt.Errorf("unknown setting %q", args[0])
}

func (sc *ShellController) handle(line string) error {
	fields, err := shellquote.Split(line)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "new":
		return sc.handleNew(args)
	case "play":
		return sc.handlePlay(args)
	case "pass":
		return sc.handlePass()
	case "gen":
		return sc.handleGen()
	case "cpu":
		if err := sc.requireGame(); err != nil {
			return err
		}
		if err := sc.cpuTurn(context.Background()); err != nil {
			return err
		}
		sc.showBoard()
		return nil
	case "auto":
		return sc.handleAuto()
	case "show":
		if err := sc.requireGame(); err != nil {
			return err
		}
		sc.showBoard()
		return nil
	case "score":
		if err := sc.requireGame(); err != nil {
			return err
		}
		dark, light := sc.curGame.Scores()
		showMessage(fmt.Sprintf("dark (X) %d - light (O) %d", dark, light), sc.l.Stderr())
		return nil
	case "undo":
		return sc.handleUndo()
	case "set":
		return sc.handleSet(args)
	case "help":
		usage(sc.l.Stderr())
		return nil
	case "bye", "exit", "quit":
		return errExit
	}
	return fmt.Errorf("unknown command %q; try `help`", cmd)
}

// Loop runs the readline loop until exit or EOF.
func (sc *ShellController) Loop() {
	defer sc.l.Close()
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := sc.handle(line); err != nil {
			if errors.Is(err, errExit) {
				break
			}
			showMessage("error: "+err.Error(), sc.l.Stderr())
			log.Debug().Err(err).Str("line", line).Msg("command-error")
		}
	}
	log.Info().Msg("exiting shell")
}
