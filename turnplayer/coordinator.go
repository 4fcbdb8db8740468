// Package turnplayer chooses the CPU's move for a turn. The coordinator
// splits root candidates across two search workers when a second worker can
// be provisioned, and falls back to a single sequential search when it
// cannot. Both paths run the same solver, so the fallback changes
// throughput only, never results.
package turnplayer

import (
	"context"
	"runtime"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/flanker/board"
	"github.com/domino14/flanker/config"
	"github.com/domino14/flanker/equity"
	"github.com/domino14/flanker/move"
	"github.com/domino14/flanker/movegen"
	"github.com/domino14/flanker/negamax"
)

// State is the coordinator's phase within a single ChooseMove call. It is
// exported for observability; transitions are logged at debug level.
type State int

const (
	Idle State = iota
	Splitting
	RunningDual
	RunningSolo
	Merging
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Splitting:
		return "splitting"
	case RunningDual:
		return "running-dual"
	case RunningSolo:
		return "running-solo"
	case Merging:
		return "merging"
	case Done:
		return "done"
	}
	return "unknown"
}

// Coordinator drives move selection for CPU turns. It is not safe for
// concurrent ChooseMove calls; the surrounding game loop issues one turn
// at a time.
type Coordinator struct {
	cfg   *config.Config
	calc  equity.Calculator
	state State

	// capabilityProbe reports whether a second worker can be provisioned.
	// Swappable so tests can force either path.
	capabilityProbe func() bool
}

// New creates a coordinator with the default static calculator.
func New(cfg *config.Config) *Coordinator {
	c := &Coordinator{cfg: cfg, calc: equity.NewStaticCalculator()}
	c.capabilityProbe = c.secondWorkerAvailable
	return c
}

// SetCalculator replaces the evaluation function.
func (c *Coordinator) SetCalculator(calc equity.Calculator) {
	c.calc = calc
}

// SetCapabilityProbe overrides the second-worker probe; tests use this to
// pin the dual or solo path.
func (c *Coordinator) SetCapabilityProbe(probe func() bool) {
	c.capabilityProbe = probe
}

// State returns the coordinator's current phase.
func (c *Coordinator) State() State {
	return c.state
}

func (c *Coordinator) setState(s State) {
	log.Debug().Stringer("from", c.state).Stringer("to", s).Msg("coordinator-state")
	c.state = s
}

// secondWorkerAvailable is the capability probe for the split path. It
// runs once per turn, before any work is dispatched; a negative answer
// selects the solo path cleanly with no resources half-acquired.
func (c *Coordinator) secondWorkerAvailable() bool {
	if c.cfg.GetInt(config.ConfigWorkers) < 2 {
		return false
	}
	if runtime.NumCPU() < 2 {
		log.Debug().Msg("single-cpu-machine; using solo path")
		return false
	}
	free := memory.FreeMemory()
	floor := c.cfg.GetUint64(config.ConfigWorkerMemoryFloor)
	if free < floor {
		log.Warn().Uint64("free-bytes", free).Uint64("floor-bytes", floor).
			Msg("not enough free memory for a second worker; using solo path")
		return false
	}
	return true
}

func (c *Coordinator) newSolver() (*negamax.Solver, error) {
	s := &negamax.Solver{}
	if err := s.Init(movegen.NewCursorGenerator(), c.calc); err != nil {
		return nil, err
	}
	if c.cfg.GetBool(config.ConfigTTEnabled) {
		s.EnableTranspositionTable(c.cfg.GetFloat64(config.ConfigTTMemFraction))
	}
	return s, nil
}

// ChooseMove picks side's move on b. It always returns a legal placement,
// or the pass move when side has none. Worker-provisioning failure is
// never an error, only a slower path; the only error cause is context
// cancellation.
func (c *Coordinator) ChooseMove(ctx context.Context, b board.Board, side board.Side) (move.Move, error) {
	defer c.setState(Idle)
	c.setState(Splitting)

	depth := c.cfg.GetInt(config.ConfigSearchDepth)

	// Enumerate root moves once; the global index assigned here is the
	// shared tie-break order for both execution paths.
	gen := movegen.NewCursorGenerator()
	roots := gen.GenAll(b, side)
	tasks := lo.Map(roots, func(m move.Move, i int) negamax.RootTask {
		return negamax.RootTask{Move: m, Index: i}
	})

	if len(tasks) == 1 {
		// A forced move (or a pass) needs no search.
		c.setState(Done)
		return tasks[0].Move, nil
	}

	var results []negamax.RootResult
	if c.capabilityProbe() {
		c.setState(RunningDual)
		// Even/odd split: order affects load balance only, not results.
		subsets := [2][]negamax.RootTask{}
		for i, t := range tasks {
			subsets[i%2] = append(subsets[i%2], t)
		}
		partials := [2][]negamax.RootResult{}
		g, gctx := errgroup.WithContext(ctx)
		for w := 0; w < 2; w++ {
			w := w
			g.Go(func() error {
				solver, err := c.newSolver()
				if err != nil {
					return err
				}
				res, err := solver.SolveSubset(gctx, b, side, depth, subsets[w])
				if err != nil {
					return err
				}
				partials[w] = res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return move.Move{}, err
		}
		c.setState(Merging)
		results = lo.Flatten(partials[:])
	} else {
		c.setState(RunningSolo)
		solver, err := c.newSolver()
		if err != nil {
			return move.Move{}, err
		}
		results, err = solver.SolveSubset(ctx, b, side, depth, tasks)
		if err != nil {
			return move.Move{}, err
		}
	}

	best := pickBest(results)
	log.Info().
		Stringer("side", side).
		Int("depth", depth).
		Int("root-moves", len(tasks)).
		Str("move", best.Move.ShortDescription()).
		Float32("score", best.Score).
		Msg("choose-move")
	c.setState(Done)
	return best.Move, nil
}

// pickBest returns the highest-scored result; ties break toward the lower
// global root index, regardless of which worker produced it.
func pickBest(results []negamax.RootResult) negamax.RootResult {
	best := results[0]
	for _, r := range results[1:] {
		if r.Score > best.Score || (r.Score == best.Score && r.Index < best.Index) {
			best = r
		}
	}
	return best
}
